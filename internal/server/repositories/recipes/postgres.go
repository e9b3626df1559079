// Package recipes provides the PostgreSQL-backed repository for recipe
// records and their owner-username read joins.
package recipes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/recipebox/recipebox/internal/common"
	"github.com/recipebox/recipebox/internal/dbx"
	"github.com/recipebox/recipebox/internal/server/models"
)

// PostgresRepository implements recipe storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new recipe and returns it with the store-assigned id and
// creation time. Owner and difficulty are validated by the service layer;
// the difficulty CHECK constraint is the backstop.
func (r *PostgresRepository) Create(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	query := `
		INSERT INTO recipes (name, ingredients, instructions, difficulty, image, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		recipe.Name, recipe.Ingredients, recipe.Instructions,
		recipe.Difficulty, recipe.Image, recipe.UserID).Scan(&recipe.ID, &recipe.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return recipe, nil
}

// GetByID returns a single recipe with the owner's username joined in.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Recipe, error) {
	query := `
		SELECT r.id, r.name, r.ingredients, r.instructions, r.difficulty,
		       r.image, r.user_id, r.created_at, u.username
		FROM recipes r
		JOIN users u ON u.id = r.user_id
		WHERE r.id = $1
	`
	recipe := &models.Recipe{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&recipe.ID, &recipe.Name, &recipe.Ingredients, &recipe.Instructions,
		&recipe.Difficulty, &recipe.Image, &recipe.UserID, &recipe.CreatedAt,
		&recipe.AuthorName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return recipe, nil
}

// ListAll returns every recipe, newest first, with owner usernames joined in.
func (r *PostgresRepository) ListAll(ctx context.Context) ([]*models.Recipe, error) {
	query := `
		SELECT r.id, r.name, r.ingredients, r.instructions, r.difficulty,
		       r.image, r.user_id, r.created_at, u.username
		FROM recipes r
		JOIN users u ON u.id = r.user_id
		ORDER BY r.created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select recipes: %w", err)
	}
	defer rows.Close()

	var result []*models.Recipe
	for rows.Next() {
		var item models.Recipe
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Ingredients, &item.Instructions,
			&item.Difficulty, &item.Image, &item.UserID, &item.CreatedAt,
			&item.AuthorName,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ListByUser returns the given user's recipes, newest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Recipe, error) {
	query := `
		SELECT id, name, ingredients, instructions, difficulty, image, user_id, created_at
		FROM recipes
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select recipes: %w", err)
	}
	defer rows.Close()

	var result []*models.Recipe
	for rows.Next() {
		var item models.Recipe
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Ingredients, &item.Instructions,
			&item.Difficulty, &item.Image, &item.UserID, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update writes the mutable fields of recipe. Owner, id and created_at are
// never touched; the service merges partial updates before calling this.
func (r *PostgresRepository) Update(ctx context.Context, recipe *models.Recipe) error {
	query := `
		UPDATE recipes
		SET name = $2, ingredients = $3, instructions = $4, difficulty = $5, image = $6
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		recipe.ID, recipe.Name, recipe.Ingredients, recipe.Instructions,
		recipe.Difficulty, recipe.Image)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// Delete permanently removes the recipe with the given id.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM recipes WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
