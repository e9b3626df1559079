// Package rest exposes the recipebox services over a JSON-over-HTTP API.
// It owns routing, request parsing, bearer-token resolution and the mapping
// of service errors to transport status codes; all business rules live in
// the services it wraps.
package rest

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/recipebox/recipebox/internal/logging"
	"github.com/recipebox/recipebox/internal/server/services"
)

// ImagePresigner is the slice of the image service the API needs.
type ImagePresigner interface {
	GetPresignedPutUrl(ctx context.Context) (key string, url string, err error)
}

type Server struct {
	address string
	app     *fiber.App
	logger  logging.Logger
	users   *services.UserService
	recipes *services.RecipeService
	images  ImagePresigner
}

func NewServer(a string, l logging.Logger, us *services.UserService, rs *services.RecipeService, is ImagePresigner) (*Server, error) {
	s := &Server{
		address: a,
		logger:  l.With("module", "rest_server"),
		users:   us,
		recipes: rs,
		images:  is,
	}

	s.app = fiber.New(fiber.Config{
		ErrorHandler: s.errorHandler,
	})
	s.setupRoutes()

	return s, nil
}

func (s *Server) setupRoutes() {
	api := s.app.Group("/api")

	authRoutes := api.Group("/auth")
	authRoutes.Post("/register", s.Register)
	authRoutes.Post("/login", s.Login)
	authRoutes.Put("/password", s.requireAuth, s.UpdatePassword)

	recipeRoutes := api.Group("/recipes")
	recipeRoutes.Get("/", s.ListRecipes)
	recipeRoutes.Post("/", s.requireAuth, s.CreateRecipe)
	// before /:id so "user" is not taken for a recipe id
	recipeRoutes.Get("/user", s.requireAuth, s.ListMyRecipes)
	recipeRoutes.Get("/:id", s.GetRecipe)
	recipeRoutes.Put("/:id", s.requireAuth, s.UpdateRecipe)
	recipeRoutes.Delete("/:id", s.requireAuth, s.DeleteRecipe)

	api.Post("/uploads", s.requireAuth, s.CreateUpload)
}

// Run starts the HTTP listener and shuts it down gracefully when ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		_ = s.app.Shutdown()
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := s.app.Listen(s.address); err != nil {
		return err
	}

	return nil
}
