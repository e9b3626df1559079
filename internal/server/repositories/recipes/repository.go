package recipes

import (
	"context"

	"github.com/recipebox/recipebox/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error)
	GetByID(ctx context.Context, id string) (*models.Recipe, error)
	ListAll(ctx context.Context) ([]*models.Recipe, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Recipe, error)
	Update(ctx context.Context, recipe *models.Recipe) error
	Delete(ctx context.Context, id string) error
}
