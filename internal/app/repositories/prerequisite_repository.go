package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lucasferr/cursada/internal/app/models"
	"github.com/lucasferr/cursada/internal/pkg/apperrors"
	"github.com/lucasferr/cursada/internal/pkg/dberrors"
)

// PrerequisiteRepository handles database operations for prerequisite edges
type PrerequisiteRepository struct {
	db *pgxpool.Pool
}

// NewPrerequisiteRepository creates a new prerequisite repository
func NewPrerequisiteRepository(db *pgxpool.Pool) *PrerequisiteRepository {
	return &PrerequisiteRepository{
		db: db,
	}
}

// Insert adds a prerequisite edge. Duplicate edges are a no-op; the return
// value reports whether the edge already existed.
func (r *PrerequisiteRepository) Insert(ctx context.Context, courseID, requiredCourseID int64) (alreadyExisted bool, err error) {
	query := `
		INSERT INTO course_prerequisites (course_id, required_course_id)
		VALUES ($1, $2)
		ON CONFLICT (course_id, required_course_id) DO NOTHING
	`

	cmdTag, err := r.db.Exec(ctx, query, courseID, requiredCourseID)
	if err != nil {
		// Either course can disappear between the service's existence check
		// and the insert.
		if dberrors.IsForeignKeyViolation(err) {
			return false, apperrors.ErrCourseNotFound
		}
		return false, fmt.Errorf("error creating prerequisite: %w", err)
	}

	return cmdTag.RowsAffected() == 0, nil
}

// Delete removes a prerequisite edge. Returns whether a row was removed;
// false means there was nothing to remove, which is not an error.
func (r *PrerequisiteRepository) Delete(ctx context.Context, courseID, requiredCourseID int64) (bool, error) {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM course_prerequisites WHERE course_id = $1 AND required_course_id = $2`,
		courseID, requiredCourseID)
	if err != nil {
		return false, fmt.Errorf("error deleting prerequisite: %w", err)
	}

	return cmdTag.RowsAffected() > 0, nil
}

// RequiredFor returns the courses required before enrolling in courseID,
// ordered by name for stable display
func (r *PrerequisiteRepository) RequiredFor(ctx context.Context, courseID int64) ([]*models.Course, error) {
	query := `
		SELECT c.id, c.category_id, c.name, c.description, c.image_url, c.video_url, c.published, c.created_at
		FROM course_prerequisites p
		JOIN courses c ON c.id = p.required_course_id
		WHERE p.course_id = $1
		ORDER BY c.name
	`

	return r.queryEdgeCourses(ctx, query, courseID)
}

// RequiredIDs returns just the IDs of the courses required for courseID
func (r *PrerequisiteRepository) RequiredIDs(ctx context.Context, courseID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx,
		`SELECT required_course_id FROM course_prerequisites WHERE course_id = $1`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}

// Requiring returns the courses for which courseID is a prerequisite,
// ordered by name
func (r *PrerequisiteRepository) Requiring(ctx context.Context, courseID int64) ([]*models.Course, error) {
	query := `
		SELECT c.id, c.category_id, c.name, c.description, c.image_url, c.video_url, c.published, c.created_at
		FROM course_prerequisites p
		JOIN courses c ON c.id = p.course_id
		WHERE p.required_course_id = $1
		ORDER BY c.name
	`

	return r.queryEdgeCourses(ctx, query, courseID)
}

// CoursesWithPrerequisites lists the distinct courses that have at least one
// prerequisite defined, for the administrative overview
func (r *PrerequisiteRepository) CoursesWithPrerequisites(ctx context.Context) ([]*models.Course, error) {
	query := `
		SELECT DISTINCT c.id, c.category_id, c.name, c.description, c.image_url, c.video_url, c.published, c.created_at
		FROM course_prerequisites p
		JOIN courses c ON c.id = p.course_id
		ORDER BY c.name
	`

	return r.queryEdgeCourses(ctx, query)
}

func (r *PrerequisiteRepository) queryEdgeCourses(ctx context.Context, query string, args ...interface{}) ([]*models.Course, error) {
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
