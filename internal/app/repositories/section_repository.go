package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lucasferr/cursada/internal/app/models"
	"github.com/lucasferr/cursada/internal/pkg/apperrors"
)

// SectionRepository handles database operations for course sections
type SectionRepository struct {
	db *pgxpool.Pool
}

// NewSectionRepository creates a new section repository
func NewSectionRepository(db *pgxpool.Pool) *SectionRepository {
	return &SectionRepository{
		db: db,
	}
}

// Create inserts a new section for a course
func (r *SectionRepository) Create(ctx context.Context, section *models.Section) error {
	query := `
		INSERT INTO sections (course_id, title, description, video_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		section.CourseID, section.Title, section.Description, section.VideoURL,
	).Scan(&section.ID)
	if err != nil {
		return fmt.Errorf("error creating section: %w", err)
	}

	return nil
}

// GetByID retrieves a section by ID
func (r *SectionRepository) GetByID(ctx context.Context, id int64) (*models.Section, error) {
	query := `
		SELECT id, course_id, title, description, video_url
		FROM sections
		WHERE id = $1
	`

	var section models.Section
	err := r.db.QueryRow(ctx, query, id).Scan(
		&section.ID,
		&section.CourseID,
		&section.Title,
		&section.Description,
		&section.VideoURL,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSectionNotFound
		}
		return nil, fmt.Errorf("error retrieving section: %w", err)
	}

	return &section, nil
}

// GetByCourse retrieves all sections of a course
func (r *SectionRepository) GetByCourse(ctx context.Context, courseID int64) ([]*models.Section, error) {
	query := `
		SELECT id, course_id, title, description, video_url
		FROM sections
		WHERE course_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []*models.Section
	for rows.Next() {
		var section models.Section
		if err := rows.Scan(
			&section.ID,
			&section.CourseID,
			&section.Title,
			&section.Description,
			&section.VideoURL,
		); err != nil {
			return nil, err
		}
		sections = append(sections, &section)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sections, nil
}

// Update updates an existing section
func (r *SectionRepository) Update(ctx context.Context, section *models.Section) error {
	query := `
		UPDATE sections
		SET title = $1, description = $2, video_url = $3
		WHERE id = $4
	`

	cmdTag, err := r.db.Exec(ctx, query, section.Title, section.Description, section.VideoURL, section.ID)
	if err != nil {
		return fmt.Errorf("error updating section: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSectionNotFound
	}

	return nil
}

// Delete deletes a section by ID
func (r *SectionRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM sections WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting section: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSectionNotFound
	}

	return nil
}
