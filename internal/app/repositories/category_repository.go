package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lucasferr/cursada/internal/app/models"
	"github.com/lucasferr/cursada/internal/pkg/apperrors"
	"github.com/lucasferr/cursada/internal/pkg/dberrors"
)

// CategoryRepository handles database operations for categories
type CategoryRepository struct {
	db *pgxpool.Pool
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{
		db: db,
	}
}

// Create inserts a new category
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (name, image_url)
		VALUES ($1, $2)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, category.Name, category.ImageURL).Scan(&category.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "categories_name_key") {
			return apperrors.ErrCategoryAlreadyExists
		}
		return fmt.Errorf("error creating category: %w", err)
	}

	return nil
}

// GetByID retrieves a category by ID
func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	query := `
		SELECT id, name, image_url
		FROM categories
		WHERE id = $1
	`

	var category models.Category
	err := r.db.QueryRow(ctx, query, id).Scan(
		&category.ID,
		&category.Name,
		&category.ImageURL,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("error retrieving category: %w", err)
	}

	return &category, nil
}

// GetAll retrieves all categories ordered by name
func (r *CategoryRepository) GetAll(ctx context.Context) ([]*models.Category, error) {
	query := `
		SELECT id, name, image_url
		FROM categories
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		var category models.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.ImageURL); err != nil {
			return nil, err
		}
		categories = append(categories, &category)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}

// Update updates an existing category
func (r *CategoryRepository) Update(ctx context.Context, category *models.Category) error {
	query := `
		UPDATE categories
		SET name = $1, image_url = $2
		WHERE id = $3
	`

	cmdTag, err := r.db.Exec(ctx, query, category.Name, category.ImageURL, category.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "categories_name_key") {
			return apperrors.ErrCategoryAlreadyExists
		}
		return fmt.Errorf("error updating category: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCategoryNotFound
	}

	return nil
}

// Delete deletes a category by ID. Courses referencing the category keep
// existing with a null category.
func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting category: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCategoryNotFound
	}

	return nil
}
