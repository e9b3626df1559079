package rest

import (
	"github.com/gofiber/fiber/v2"

	"github.com/recipebox/recipebox/internal/server/services"
)

type createRecipeRequest struct {
	Name         string `json:"name"`
	Ingredients  string `json:"ingredients"`
	Instructions string `json:"instructions"`
	Difficulty   string `json:"difficulty"`
	Image        string `json:"image"`
}

// updateRecipeRequest uses pointers so absent fields are distinguishable
// from empty ones: only supplied fields are merged into the stored recipe.
type updateRecipeRequest struct {
	Name         *string `json:"name"`
	Ingredients  *string `json:"ingredients"`
	Instructions *string `json:"instructions"`
	Difficulty   *string `json:"difficulty"`
	Image        *string `json:"image"`
}

// CreateRecipe handles POST /api/recipes.
func (s *Server) CreateRecipe(c *fiber.Ctx) error {
	var req createRecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "failed to parse request body"})
	}

	recipe, err := s.recipes.Create(c.UserContext(), callerID(c), services.RecipeInput{
		Name:         req.Name,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		Difficulty:   req.Difficulty,
		Image:        req.Image,
	})
	if err != nil {
		return s.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(recipe)
}

// ListRecipes handles GET /api/recipes.
func (s *Server) ListRecipes(c *fiber.Ctx) error {
	recipes, err := s.recipes.List(c.UserContext())
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(recipes)
}

// GetRecipe handles GET /api/recipes/:id.
func (s *Server) GetRecipe(c *fiber.Ctx) error {
	recipe, err := s.recipes.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(recipe)
}

// ListMyRecipes handles GET /api/recipes/user.
func (s *Server) ListMyRecipes(c *fiber.Ctx) error {
	recipes, err := s.recipes.ListByOwner(c.UserContext(), callerID(c))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(recipes)
}

// UpdateRecipe handles PUT /api/recipes/:id.
func (s *Server) UpdateRecipe(c *fiber.Ctx) error {
	var req updateRecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "failed to parse request body"})
	}

	recipe, err := s.recipes.Update(c.UserContext(), callerID(c), c.Params("id"), services.RecipeUpdate{
		Name:         req.Name,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		Difficulty:   req.Difficulty,
		Image:        req.Image,
	})
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(recipe)
}

// DeleteRecipe handles DELETE /api/recipes/:id.
func (s *Server) DeleteRecipe(c *fiber.Ctx) error {
	if err := s.recipes.Delete(c.UserContext(), callerID(c), c.Params("id")); err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "recipe deleted successfully"})
}

type uploadResponse struct {
	Key       string `json:"key"`
	UploadURL string `json:"uploadUrl"`
}

// CreateUpload handles POST /api/uploads: it hands the caller a short-lived
// presigned URL to PUT a recipe image to.
func (s *Server) CreateUpload(c *fiber.Ctx) error {
	key, url, err := s.images.GetPresignedPutUrl(c.UserContext())
	if err != nil {
		return s.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(uploadResponse{Key: key, UploadURL: url})
}
