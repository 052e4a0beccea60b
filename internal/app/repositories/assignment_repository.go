package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lucasferr/cursada/internal/app/models"
	"github.com/lucasferr/cursada/internal/pkg/apperrors"
	"github.com/lucasferr/cursada/internal/pkg/dberrors"
)

// AssignmentRepository handles database operations for instructor assignments
type AssignmentRepository struct {
	db *pgxpool.Pool
}

// NewAssignmentRepository creates a new assignment repository
func NewAssignmentRepository(db *pgxpool.Pool) *AssignmentRepository {
	return &AssignmentRepository{
		db: db,
	}
}

// Create assigns an instructor to a course
func (r *AssignmentRepository) Create(ctx context.Context, assignment *models.InstructorAssignment) error {
	query := `
		INSERT INTO course_instructors (course_id, user_id)
		VALUES ($1, $2)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, assignment.CourseID, assignment.UserID).Scan(&assignment.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "course_instructors_course_user_key") {
			return apperrors.ErrAlreadyAssigned
		}
		return fmt.Errorf("error creating assignment: %w", err)
	}

	return nil
}

// Delete removes an instructor assignment by ID
func (r *AssignmentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM course_instructors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting assignment: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAssignmentNotFound
	}

	return nil
}

// IsInstructorOf checks whether the user is assigned as instructor of the course
func (r *AssignmentRepository) IsInstructorOf(ctx context.Context, userID, courseID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM course_instructors WHERE user_id = $1 AND course_id = $2)`,
		userID, courseID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking instructor assignment: %w", err)
	}

	return exists, nil
}

// ListWithDetail lists all assignments with instructor and course detail
func (r *AssignmentRepository) ListWithDetail(ctx context.Context) ([]*models.InstructorAssignment, error) {
	query := `
		SELECT a.id, a.course_id, a.user_id,
		       u.first_name, u.last_name, u.email,
		       c.name, c.published
		FROM course_instructors a
		JOIN users u ON u.id = a.user_id
		JOIN courses c ON c.id = a.course_id
		ORDER BY c.name, u.last_name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []*models.InstructorAssignment
	for rows.Next() {
		var assignment models.InstructorAssignment
		var instructor models.User
		var course models.Course
		if err := rows.Scan(
			&assignment.ID,
			&assignment.CourseID,
			&assignment.UserID,
			&instructor.FirstName,
			&instructor.LastName,
			&instructor.Email,
			&course.Name,
			&course.Published,
		); err != nil {
			return nil, err
		}
		instructor.ID = assignment.UserID
		course.ID = assignment.CourseID
		assignment.Instructor = &instructor
		assignment.Course = &course
		assignments = append(assignments, &assignment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}

// CoursesOfInstructor lists the courses taught by an instructor
func (r *AssignmentRepository) CoursesOfInstructor(ctx context.Context, userID int64) ([]*models.Course, error) {
	query := `
		SELECT c.id, c.category_id, c.name, c.description, c.image_url, c.video_url, c.published, c.created_at
		FROM course_instructors a
		JOIN courses c ON c.id = a.course_id
		WHERE a.user_id = $1
		ORDER BY c.name
	`

	rows, err := r.db.Query(ctx, query, userID)
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
