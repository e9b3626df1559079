package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/recipebox/recipebox/internal/common"
	"github.com/recipebox/recipebox/internal/server/models"
	"github.com/recipebox/recipebox/internal/server/repositories/repomanager"
)

// RecipeInput carries the client-supplied fields for creating a recipe.
// Difficulty defaults to Easy when empty; Image is optional.
type RecipeInput struct {
	Name         string
	Ingredients  string
	Instructions string
	Difficulty   string
	Image        string
}

// RecipeUpdate carries a partial update. Nil fields keep their prior values.
// Owner, id and creation time are never client-mutable.
type RecipeUpdate struct {
	Name         *string
	Ingredients  *string
	Instructions *string
	Difficulty   *string
	Image        *string
}

// RecipeService provides CRUD over recipes, enforcing single-owner access on
// every mutation. Reads are unrestricted.
type RecipeService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewRecipeService constructs a RecipeService on top of the repositories.
func NewRecipeService(db *sql.DB, m repomanager.RepositoryManager) *RecipeService {
	return &RecipeService{db: db, repomanager: m}
}

// Create validates in and persists a new recipe owned by callerUserID.
func (s *RecipeService) Create(ctx context.Context, callerUserID string, in RecipeInput) (*models.Recipe, error) {
	recipe := &models.Recipe{
		Name:         strings.TrimSpace(in.Name),
		Ingredients:  in.Ingredients,
		Instructions: in.Instructions,
		Difficulty:   in.Difficulty,
		Image:        in.Image,
		UserID:       callerUserID,
	}

	if recipe.Difficulty == "" {
		recipe.Difficulty = models.DifficultyEasy
	}
	if err := validateRecipe(recipe); err != nil {
		return nil, err
	}

	repo := s.repomanager.Recipes(s.db)
	created, err := repo.Create(ctx, recipe)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return created, nil
}

// List returns every recipe, newest first, annotated with the owner's
// username. Pagination is a presentation concern of the caller.
func (s *RecipeService) List(ctx context.Context) ([]*models.Recipe, error) {
	repo := s.repomanager.Recipes(s.db)
	result, err := repo.ListAll(ctx)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return result, nil
}

// Get returns a single recipe with the owner's username annotated.
func (s *RecipeService) Get(ctx context.Context, id string) (*models.Recipe, error) {
	repo := s.repomanager.Recipes(s.db)
	recipe, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return recipe, nil
}

// ListByOwner returns the caller's recipes, newest first.
func (s *RecipeService) ListByOwner(ctx context.Context, callerUserID string) ([]*models.Recipe, error) {
	repo := s.repomanager.Recipes(s.db)
	result, err := repo.ListByUser(ctx, callerUserID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return result, nil
}

// Update merges upd into the stored recipe and persists it. Existence is
// checked before ownership, so a missing id is NotFound even for strangers.
// Concurrent updates to the same recipe are last-write-wins.
func (s *RecipeService) Update(ctx context.Context, callerUserID, id string, upd RecipeUpdate) (*models.Recipe, error) {
	repo := s.repomanager.Recipes(s.db)

	recipe, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	if recipe.UserID != callerUserID {
		return nil, common.ErrorForbidden
	}

	if upd.Name != nil {
		recipe.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Ingredients != nil {
		recipe.Ingredients = *upd.Ingredients
	}
	if upd.Instructions != nil {
		recipe.Instructions = *upd.Instructions
	}
	if upd.Difficulty != nil {
		recipe.Difficulty = *upd.Difficulty
	}
	if upd.Image != nil {
		recipe.Image = *upd.Image
	}

	if err := validateRecipe(recipe); err != nil {
		return nil, err
	}

	if err := repo.Update(ctx, recipe); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	return recipe, nil
}

// Delete permanently removes the recipe. Same gate order as Update: NotFound
// before Forbidden.
func (s *RecipeService) Delete(ctx context.Context, callerUserID, id string) error {
	repo := s.repomanager.Recipes(s.db)

	recipe, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}

	if recipe.UserID != callerUserID {
		return common.ErrorForbidden
	}

	if err := repo.Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}

	return nil
}

func validateRecipe(r *models.Recipe) error {
	if r.Name == "" {
		return fmt.Errorf("%w: name is required", common.ErrorValidation)
	}
	if r.Ingredients == "" {
		return fmt.Errorf("%w: ingredients are required", common.ErrorValidation)
	}
	if r.Instructions == "" {
		return fmt.Errorf("%w: instructions are required", common.ErrorValidation)
	}
	if !models.ValidDifficulty(r.Difficulty) {
		return fmt.Errorf("%w: difficulty must be one of Easy, Medium, Hard", common.ErrorValidation)
	}
	return nil
}
