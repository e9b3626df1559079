package rest

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/recipebox/recipebox/internal/common"
	"github.com/recipebox/recipebox/internal/dbx"
	"github.com/recipebox/recipebox/internal/logging"
	"github.com/recipebox/recipebox/internal/server/config"
	"github.com/recipebox/recipebox/internal/server/models"
	recipesrepo "github.com/recipebox/recipebox/internal/server/repositories/recipes"
	usersrepo "github.com/recipebox/recipebox/internal/server/repositories/users"
	"github.com/recipebox/recipebox/internal/server/services"
)

// In-memory repositories backing real services, so handler tests exercise
// the full request path: routing, auth middleware, parsing, business rules
// and the error-to-status mapping.

type memUsersRepo struct {
	seq   int
	users map[string]*models.User
}

func (m *memUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return nil, common.ErrorDuplicateEmail
		}
	}
	m.seq++
	u.ID = fmt.Sprintf("u-%d", m.seq)
	u.CreatedAt = time.Now()
	m.users[u.ID] = u
	return u, nil
}

func (m *memUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (m *memUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *memUsersRepo) UpdatePassword(ctx context.Context, id string, hash string) error {
	u, ok := m.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.PasswordHash = hash
	return nil
}

type memRecipesRepo struct {
	seq     int
	clock   time.Time
	recipes map[string]*models.Recipe
	users   *memUsersRepo
}

func (m *memRecipesRepo) Create(ctx context.Context, r *models.Recipe) (*models.Recipe, error) {
	m.seq++
	r.ID = fmt.Sprintf("r-%d", m.seq)
	m.clock = m.clock.Add(time.Minute)
	r.CreatedAt = m.clock
	copied := *r
	m.recipes[r.ID] = &copied
	return r, nil
}

func (m *memRecipesRepo) annotate(r models.Recipe) *models.Recipe {
	if u, err := m.users.GetByID(context.Background(), r.UserID); err == nil {
		r.AuthorName = u.Username
	}
	return &r
}

func (m *memRecipesRepo) GetByID(ctx context.Context, id string) (*models.Recipe, error) {
	r, ok := m.recipes[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return m.annotate(*r), nil
}

func (m *memRecipesRepo) ListAll(ctx context.Context) ([]*models.Recipe, error) {
	var result []*models.Recipe
	for _, r := range m.recipes {
		result = append(result, m.annotate(*r))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *memRecipesRepo) ListByUser(ctx context.Context, userID string) ([]*models.Recipe, error) {
	var result []*models.Recipe
	for _, r := range m.recipes {
		if r.UserID == userID {
			copied := *r
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *memRecipesRepo) Update(ctx context.Context, r *models.Recipe) error {
	stored, ok := m.recipes[r.ID]
	if !ok {
		return common.ErrorNotFound
	}
	stored.Name = r.Name
	stored.Ingredients = r.Ingredients
	stored.Instructions = r.Instructions
	stored.Difficulty = r.Difficulty
	stored.Image = r.Image
	return nil
}

func (m *memRecipesRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.recipes[id]; !ok {
		return common.ErrorNotFound
	}
	delete(m.recipes, id)
	return nil
}

type memRepoManager struct {
	u *memUsersRepo
	r *memRecipesRepo
}

func newMemRepoManager() *memRepoManager {
	u := &memUsersRepo{users: make(map[string]*models.User)}
	return &memRepoManager{
		u: u,
		r: &memRecipesRepo{
			clock:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
			recipes: make(map[string]*models.Recipe),
			users:   u,
		},
	}
}

func (m *memRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *memRepoManager) Users(db dbx.DBTX) usersrepo.Repository      { return m.u }
func (m *memRepoManager) Recipes(db dbx.DBTX) recipesrepo.Repository  { return m.r }

// stubPresigner replaces the S3-backed image service in handler tests.
type stubPresigner struct {
	key string
	url string
	err error
}

func (p *stubPresigner) GetPresignedPutUrl(ctx context.Context) (string, string, error) {
	return p.key, p.url, p.err
}

func newTestServer(t *testing.T) (*Server, *stubPresigner) {
	t.Helper()

	cfg := &config.Config{
		SecretKey:             "test-secret",
		TokenValidityDuration: time.Hour,
		BcryptCost:            4, // min cost keeps the test suite fast
	}
	m := newMemRepoManager()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	presigner := &stubPresigner{key: "recipes/2025/06/01/abc", url: "https://s3.test/put"}

	s, err := NewServer(":0", logger, services.NewUserService(nil, m, cfg), services.NewRecipeService(nil, m), presigner)
	require.NoError(t, err)
	return s, presigner
}

// doJSON performs a request against the fiber app and decodes the JSON reply
// into a generic map. token, if non-empty, is sent as a bearer credential.
func doJSON(t *testing.T, s *Server, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp.StatusCode, decoded
}

// doJSONList is doJSON for endpoints returning a JSON array.
func doJSONList(t *testing.T, s *Server, method, path, token string) (int, []map[string]any) {
	t.Helper()

	req, err := http.NewRequest(method, path, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded []map[string]any
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	}
	return resp.StatusCode, decoded
}

// registerUser creates an account through the API and returns its id and token.
func registerUser(t *testing.T, s *Server, username, email string) (string, string) {
	t.Helper()

	status, body := doJSON(t, s, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, status)

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	token, ok := body["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)
	return user["id"].(string), token
}

// createRecipe creates a recipe through the API and returns its id.
func createRecipe(t *testing.T, s *Server, token, name string) string {
	t.Helper()

	status, body := doJSON(t, s, http.MethodPost, "/api/recipes", token, map[string]string{
		"name":         name,
		"ingredients":  "flour, water",
		"instructions": "mix and bake",
	})
	require.Equal(t, http.StatusCreated, status)
	return body["id"].(string)
}
