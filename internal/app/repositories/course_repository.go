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

// CourseRepository handles database operations for courses and their sections
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
	}
}

// Create inserts a new course. Courses start unpublished.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (category_id, name, description, image_url, video_url, published)
		VALUES ($1, $2, $3, $4, $5, FALSE)
		RETURNING id, published, created_at
	`

	err := r.db.QueryRow(ctx, query,
		course.CategoryID, course.Name, course.Description, course.ImageURL, course.VideoURL,
	).Scan(&course.ID, &course.Published, &course.CreatedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrCategoryNotFound
		}
		return fmt.Errorf("error creating course: %w", err)
	}

	return nil
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	query := `
		SELECT id, category_id, name, description, image_url, video_url, published, created_at
		FROM courses
		WHERE id = $1
	`

	var course models.Course
	err := r.db.QueryRow(ctx, query, id).Scan(
		&course.ID,
		&course.CategoryID,
		&course.Name,
		&course.Description,
		&course.ImageURL,
		&course.VideoURL,
		&course.Published,
		&course.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return &course, nil
}

// GetAll retrieves all courses with their enrollment counts, ordered by name
func (r *CourseRepository) GetAll(ctx context.Context) ([]*models.Course, error) {
	query := `
		SELECT c.id, c.category_id, c.name, c.description, c.image_url, c.video_url, c.published, c.created_at,
		       COUNT(e.id) AS enrolled_count
		FROM courses c
		LEFT JOIN enrollments e ON e.course_id = c.id
		GROUP BY c.id
		ORDER BY c.name
	`

	return r.queryCoursesWithCount(ctx, query)
}

// GetPublished retrieves all published courses ordered by name
func (r *CourseRepository) GetPublished(ctx context.Context) ([]*models.Course, error) {
	query := `
		SELECT id, category_id, name, description, image_url, video_url, published, created_at
		FROM courses
		WHERE published = TRUE
		ORDER BY name
	`

	return r.queryCourses(ctx, query)
}

// SearchPublishedByName searches published courses with a case-insensitive
// name match
func (r *CourseRepository) SearchPublishedByName(ctx context.Context, name string) ([]*models.Course, error) {
	query := `
		SELECT id, category_id, name, description, image_url, video_url, published, created_at
		FROM courses
		WHERE published = TRUE AND name ILIKE '%' || $1 || '%'
		ORDER BY name
	`

	return r.queryCourses(ctx, query, name)
}

// GetByCategory retrieves published courses belonging to a category
func (r *CourseRepository) GetByCategory(ctx context.Context, categoryID int64) ([]*models.Course, error) {
	query := `
		SELECT id, category_id, name, description, image_url, video_url, published, created_at
		FROM courses
		WHERE published = TRUE AND category_id = $1
		ORDER BY name
	`

	return r.queryCourses(ctx, query, categoryID)
}

// GetPopular retrieves published courses ordered by enrollment count
func (r *CourseRepository) GetPopular(ctx context.Context, limit int) ([]*models.Course, error) {
	query := `
		SELECT c.id, c.category_id, c.name, c.description, c.image_url, c.video_url, c.published, c.created_at,
		       COUNT(e.id) AS enrolled_count
		FROM courses c
		LEFT JOIN enrollments e ON e.course_id = c.id
		WHERE c.published = TRUE
		GROUP BY c.id
		ORDER BY enrolled_count DESC, c.name
		LIMIT $1
	`

	return r.queryCoursesWithCount(ctx, query, limit)
}

// Update updates a course's editable fields. The published flag is not
// touched here; publishing is a separate one-way operation.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	query := `
		UPDATE courses
		SET category_id = $1, name = $2, description = $3, image_url = $4, video_url = $5
		WHERE id = $6
	`

	cmdTag, err := r.db.Exec(ctx, query,
		course.CategoryID, course.Name, course.Description, course.ImageURL, course.VideoURL, course.ID)
	if err != nil {
		return fmt.Errorf("error updating course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// Publish flips the published flag to true. The WHERE clause makes the
// transition one-way and idempotent-safe: re-publishing affects no rows.
func (r *CourseRepository) Publish(ctx context.Context, id int64) (bool, error) {
	cmdTag, err := r.db.Exec(ctx, `UPDATE courses SET published = TRUE WHERE id = $1 AND published = FALSE`, id)
	if err != nil {
		return false, fmt.Errorf("error publishing course: %w", err)
	}

	return cmdTag.RowsAffected() > 0, nil
}

// Delete deletes a course by ID
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// CountPublished returns the number of published courses
func (r *CourseRepository) CountPublished(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(id) FROM courses WHERE published = TRUE`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting published courses: %w", err)
	}
	return count, nil
}

// CountUnpublished returns the number of unpublished courses
func (r *CourseRepository) CountUnpublished(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(id) FROM courses WHERE published = FALSE`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting unpublished courses: %w", err)
	}
	return count, nil
}

func (r *CourseRepository) queryCourses(ctx context.Context, query string, args ...interface{}) ([]*models.Course, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(
			&course.ID,
			&course.CategoryID,
			&course.Name,
			&course.Description,
			&course.ImageURL,
			&course.VideoURL,
			&course.Published,
			&course.CreatedAt,
		); err != nil {
			return nil, err
		}
		courses = append(courses, &course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}

func (r *CourseRepository) queryCoursesWithCount(ctx context.Context, query string, args ...interface{}) ([]*models.Course, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(
			&course.ID,
			&course.CategoryID,
			&course.Name,
			&course.Description,
			&course.ImageURL,
			&course.VideoURL,
			&course.Published,
			&course.CreatedAt,
			&course.EnrolledCount,
		); err != nil {
			return nil, err
		}
		courses = append(courses, &course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}
