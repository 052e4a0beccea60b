package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lucasferr/cursada/internal/app/models"
	"github.com/lucasferr/cursada/internal/pkg/apperrors"
	"github.com/lucasferr/cursada/internal/pkg/dberrors"
)

// EnrollmentRepository handles database operations for enrollments
type EnrollmentRepository struct {
	db *pgxpool.Pool
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
	}
}

// Create inserts a new enrollment row with a null grade and returns its ID.
// The unique constraint on (user_id, course_id) is the authoritative
// at-most-once guard; a violation is reported as ErrAlreadyEnrolled.
func (r *EnrollmentRepository) Create(ctx context.Context, userID, courseID int64, enrolledAt time.Time) (int64, error) {
	query := `
		INSERT INTO enrollments (user_id, course_id, enrolled_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query, userID, courseID, enrolledAt).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "enrollments_user_course_key") {
			return 0, apperrors.ErrAlreadyEnrolled
		}
		return 0, fmt.Errorf("error creating enrollment: %w", err)
	}

	return id, nil
}

// Exists checks whether an enrollment exists for (user, course)
func (r *EnrollmentRepository) Exists(ctx context.Context, userID, courseID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM enrollments WHERE user_id = $1 AND course_id = $2)`,
		userID, courseID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking enrollment existence: %w", err)
	}

	return exists, nil
}

// UpdateGrade upserts the grade of an existing enrollment. A nil grade
// clears it. Returns ErrNotEnrolled when no row matches.
func (r *EnrollmentRepository) UpdateGrade(ctx context.Context, userID, courseID int64, grade *float64) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE enrollments SET grade = $1 WHERE user_id = $2 AND course_id = $3`,
		grade, userID, courseID)
	if err != nil {
		return fmt.Errorf("error updating grade: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotEnrolled
	}

	return nil
}

// GradeOf returns the current grade of an enrollment, nil when ungraded
func (r *EnrollmentRepository) GradeOf(ctx context.Context, userID, courseID int64) (*float64, error) {
	var grade *float64
	err := r.db.QueryRow(ctx,
		`SELECT grade FROM enrollments WHERE user_id = $1 AND course_id = $2`,
		userID, courseID).Scan(&grade)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotEnrolled
		}
		return nil, fmt.Errorf("error retrieving grade: %w", err)
	}

	return grade, nil
}

// HasPassed checks whether the student has an enrollment in the course with
// a recorded grade at or above the threshold. A missing row counts as not
// passed, same as an ungraded one.
func (r *EnrollmentRepository) HasPassed(ctx context.Context, userID, courseID int64, threshold float64) (bool, error) {
	var passed bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM enrollments
			WHERE user_id = $1 AND course_id = $2 AND grade IS NOT NULL AND grade >= $3
		)`, userID, courseID, threshold).Scan(&passed)
	if err != nil {
		return false, fmt.Errorf("error checking course approval: %w", err)
	}

	return passed, nil
}

// Delete removes an enrollment by ID. Returns whether a row was removed.
func (r *EnrollmentRepository) Delete(ctx context.Context, id int64) (bool, error) {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM enrollments WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("error deleting enrollment: %w", err)
	}

	return cmdTag.RowsAffected() > 0, nil
}

// ListWithDetail lists all enrollments with course and student detail,
// newest first
func (r *EnrollmentRepository) ListWithDetail(ctx context.Context) ([]*models.Enrollment, error) {
	query := `
		SELECT e.id, e.user_id, e.course_id, e.enrolled_at, e.grade,
		       c.name, u.first_name, u.last_name, u.email
		FROM enrollments e
		JOIN courses c ON c.id = e.course_id
		JOIN users u ON u.id = e.user_id
		ORDER BY e.enrolled_at DESC, e.id DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var enrollments []*models.Enrollment
	for rows.Next() {
		var enrollment models.Enrollment
		var course models.Course
		var student models.User
		if err := rows.Scan(
			&enrollment.ID,
			&enrollment.UserID,
			&enrollment.CourseID,
			&enrollment.EnrolledAt,
			&enrollment.Grade,
			&course.Name,
			&student.FirstName,
			&student.LastName,
			&student.Email,
		); err != nil {
			return nil, err
		}
		course.ID = enrollment.CourseID
		student.ID = enrollment.UserID
		enrollment.Course = &course
		enrollment.Student = &student
		enrollments = append(enrollments, &enrollment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return enrollments, nil
}

// StudentsOfCourse lists the enrolled students of a course with their grades
func (r *EnrollmentRepository) StudentsOfCourse(ctx context.Context, courseID int64) ([]*models.Enrollment, error) {
	query := `
		SELECT e.id, e.user_id, e.course_id, e.enrolled_at, e.grade,
		       u.first_name, u.last_name, u.email
		FROM enrollments e
		JOIN users u ON u.id = e.user_id
		WHERE e.course_id = $1
		ORDER BY u.last_name, u.first_name
	`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var enrollments []*models.Enrollment
	for rows.Next() {
		var enrollment models.Enrollment
		var student models.User
		if err := rows.Scan(
			&enrollment.ID,
			&enrollment.UserID,
			&enrollment.CourseID,
			&enrollment.EnrolledAt,
			&enrollment.Grade,
			&student.FirstName,
			&student.LastName,
			&student.Email,
		); err != nil {
			return nil, err
		}
		student.ID = enrollment.UserID
		enrollment.Student = &student
		enrollments = append(enrollments, &enrollment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return enrollments, nil
}

// CoursesOfStudent lists the courses a student is enrolled in, with grade
func (r *EnrollmentRepository) CoursesOfStudent(ctx context.Context, userID int64) ([]*models.Enrollment, error) {
	query := `
		SELECT e.id, e.user_id, e.course_id, e.enrolled_at, e.grade,
		       c.name, c.description, c.image_url, c.published
		FROM enrollments e
		JOIN courses c ON c.id = e.course_id
		WHERE e.user_id = $1
		ORDER BY c.name
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var enrollments []*models.Enrollment
	for rows.Next() {
		var enrollment models.Enrollment
		var course models.Course
		if err := rows.Scan(
			&enrollment.ID,
			&enrollment.UserID,
			&enrollment.CourseID,
			&enrollment.EnrolledAt,
			&enrollment.Grade,
			&course.Name,
			&course.Description,
			&course.ImageURL,
			&course.Published,
		); err != nil {
			return nil, err
		}
		course.ID = enrollment.CourseID
		enrollment.Course = &course
		enrollments = append(enrollments, &enrollment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return enrollments, nil
}

// CountAll returns the total number of enrollments
func (r *EnrollmentRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(id) FROM enrollments`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting enrollments: %w", err)
	}
	return count, nil
}
