// Package cli implements the interactive recipebox client: a small REPL over
// the server's HTTP API for browsing and managing recipes from a terminal.
package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/recipebox/recipebox/internal/client/api"
	"github.com/recipebox/recipebox/internal/client/config"
)

// recipeAPI is the surface of api.Client the commands use. Tests provide a
// lightweight stub.
type recipeAPI interface {
	Register(ctx context.Context, username, email, password string) (*api.User, error)
	Login(ctx context.Context, email, password string) (*api.User, error)
	UpdatePassword(ctx context.Context, currentPassword, newPassword string) error
	Recipes(ctx context.Context) ([]api.Recipe, error)
	MyRecipes(ctx context.Context) ([]api.Recipe, error)
	Recipe(ctx context.Context, id string) (*api.Recipe, error)
	CreateRecipe(ctx context.Context, in api.CreateRecipeRequest) (*api.Recipe, error)
	DeleteRecipe(ctx context.Context, id string) error
	LoggedIn() bool
	Logout()
}

type App struct {
	config   *config.Config
	client   recipeAPI
	userName string
	reader   *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	client := api.New(c.ServerEndpointAddr, c.RequestTimeout)
	return &App{config: c, client: client, reader: bufio.NewReader(os.Stdin)}, nil
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.client.LoggedIn()
}
