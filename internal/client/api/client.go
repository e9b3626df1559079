// Package api implements a typed HTTP client for the recipebox server. It
// keeps the session token issued at login and attaches it to subsequent
// requests as a bearer credential.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// User is an account as returned by the server. Password material never
// appears in API responses.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Recipe mirrors the server's recipe representation. Author is the owner's
// username, populated on reads.
type Recipe struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Ingredients  string    `json:"ingredients"`
	Instructions string    `json:"instructions"`
	Difficulty   string    `json:"difficulty"`
	Image        string    `json:"image,omitempty"`
	UserID       string    `json:"userId"`
	CreatedAt    time.Time `json:"createdAt"`
	Author       string    `json:"author,omitempty"`
}

// CreateRecipeRequest carries the fields for creating a recipe. Difficulty
// and Image are optional.
type CreateRecipeRequest struct {
	Name         string `json:"name"`
	Ingredients  string `json:"ingredients"`
	Instructions string `json:"instructions"`
	Difficulty   string `json:"difficulty,omitempty"`
	Image        string `json:"image,omitempty"`
}

type authResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Client talks to the recipebox HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// New constructs a Client for the server at baseURL. timeout bounds every
// request.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// LoggedIn reports whether the client holds a session token.
func (c *Client) LoggedIn() bool {
	return c.token != ""
}

// Logout discards the session token.
func (c *Client) Logout() {
	c.token = ""
}

func (c *Client) do(ctx context.Context, method, path string, reqBody, respBody any) error {
	var reader *bytes.Reader
	if reqBody != nil {
		data, err := json.Marshal(reqBody)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var er errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&er)
		return statusError(resp.StatusCode, er.Error)
	}

	if respBody != nil {
		if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
			return err
		}
	}
	return nil
}

// Register creates an account and stores the issued session token.
func (c *Client) Register(ctx context.Context, username, email, password string) (*User, error) {
	var resp authResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	c.token = resp.Token
	return resp.User, nil
}

// Login authenticates and stores the issued session token.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	var resp authResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	c.token = resp.Token
	return resp.User, nil
}

// UpdatePassword changes the logged-in user's password. The current session
// token stays valid.
func (c *Client) UpdatePassword(ctx context.Context, currentPassword, newPassword string) error {
	return c.do(ctx, http.MethodPut, "/api/auth/password", map[string]string{
		"currentPassword": currentPassword,
		"newPassword":     newPassword,
	}, nil)
}

// Recipes returns every recipe, newest first.
func (c *Client) Recipes(ctx context.Context) ([]Recipe, error) {
	var result []Recipe
	if err := c.do(ctx, http.MethodGet, "/api/recipes", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// MyRecipes returns the logged-in user's recipes, newest first.
func (c *Client) MyRecipes(ctx context.Context) ([]Recipe, error) {
	var result []Recipe
	if err := c.do(ctx, http.MethodGet, "/api/recipes/user", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Recipe returns a single recipe by id.
func (c *Client) Recipe(ctx context.Context, id string) (*Recipe, error) {
	var result Recipe
	if err := c.do(ctx, http.MethodGet, "/api/recipes/"+id, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateRecipe creates a recipe owned by the logged-in user.
func (c *Client) CreateRecipe(ctx context.Context, in CreateRecipeRequest) (*Recipe, error) {
	var result Recipe
	if err := c.do(ctx, http.MethodPost, "/api/recipes", in, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteRecipe deletes a recipe the logged-in user owns.
func (c *Client) DeleteRecipe(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/recipes/"+id, nil, nil)
}
