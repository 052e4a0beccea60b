package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lucasferr/cursada/internal/app/models"
	"github.com/lucasferr/cursada/internal/pkg/apperrors"
	"github.com/lucasferr/cursada/internal/pkg/email"
	"github.com/lucasferr/cursada/internal/pkg/logger"
)

// EnrollmentStore is the persistence surface the enrollment service needs.
// *repositories.EnrollmentRepository satisfies it; tests use fakes.
type EnrollmentStore interface {
	Create(ctx context.Context, userID, courseID int64, enrolledAt time.Time) (int64, error)
	Exists(ctx context.Context, userID, courseID int64) (bool, error)
	UpdateGrade(ctx context.Context, userID, courseID int64, grade *float64) error
	GradeOf(ctx context.Context, userID, courseID int64) (*float64, error)
	Delete(ctx context.Context, id int64) (bool, error)
	ListWithDetail(ctx context.Context) ([]*models.Enrollment, error)
	StudentsOfCourse(ctx context.Context, courseID int64) ([]*models.Enrollment, error)
	CoursesOfStudent(ctx context.Context, userID int64) ([]*models.Enrollment, error)
}

// InstructorChecker answers whether a user teaches a course.
// *repositories.AssignmentRepository satisfies it.
type InstructorChecker interface {
	IsInstructorOf(ctx context.Context, userID, courseID int64) (bool, error)
}

// UserGetter fetches a single user. *repositories.UserRepository satisfies it.
type UserGetter interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// PrerequisiteChecker is the slice of PrerequisiteService the enrollment
// service depends on.
type PrerequisiteChecker interface {
	UnmetPrerequisites(ctx context.Context, studentID, courseID int64) ([]string, error)
}

// EnrollmentService handles enrollment, unenrollment and grading.
type EnrollmentService interface {
	Enroll(ctx context.Context, caller models.CallerContext, courseID int64) (int64, error)
	Unenroll(ctx context.Context, enrollmentID int64) error
	RecordGrade(ctx context.Context, userID, courseID int64, grade *float64) error
	GradeOf(ctx context.Context, userID, courseID int64) (*float64, error)
	ListEnrollments(ctx context.Context) ([]*models.Enrollment, error)
	StudentsOfCourse(ctx context.Context, courseID int64) ([]*models.Enrollment, error)
	CoursesOfStudent(ctx context.Context, userID int64) ([]*models.Enrollment, error)
}

type enrollmentService struct {
	enrollments EnrollmentStore
	courses     CourseGetter
	users       UserGetter
	assignments InstructorChecker
	prereqs     PrerequisiteChecker
	emails      email.EmailService
	baseURL     string
	now         func() time.Time
}

// NewEnrollmentService creates a new enrollment service. now supplies the
// enrollment date and may be nil, in which case time.Now is used.
func NewEnrollmentService(
	enrollments EnrollmentStore,
	courses CourseGetter,
	users UserGetter,
	assignments InstructorChecker,
	prereqs PrerequisiteChecker,
	emails email.EmailService,
	baseURL string,
	now func() time.Time,
) EnrollmentService {
	if now == nil {
		now = time.Now
	}
	return &enrollmentService{
		enrollments: enrollments,
		courses:     courses,
		users:       users,
		assignments: assignments,
		prereqs:     prereqs,
		emails:      emails,
		baseURL:     baseURL,
		now:         now,
	}
}

// Enroll enrolls the caller in the given course after running the
// precondition checks in order: course exists and is published, not already
// enrolled, not an instructor of the course, not an admin, all prerequisites
// passed. The unique constraint on (user, course) remains the authoritative
// guard against concurrent duplicates; a violation surfaces as
// ErrAlreadyEnrolled regardless of what the earlier existence check saw.
func (s *enrollmentService) Enroll(ctx context.Context, caller models.CallerContext, courseID int64) (int64, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return 0, courseLookupErr(err)
	}
	if !course.Published {
		return 0, apperrors.ErrCourseNotPublished
	}

	enrolled, err := s.enrollments.Exists(ctx, caller.UserID, courseID)
	if err != nil {
		return 0, storageFailure(err)
	}
	if enrolled {
		return 0, apperrors.ErrAlreadyEnrolled
	}

	teaches, err := s.assignments.IsInstructorOf(ctx, caller.UserID, courseID)
	if err != nil {
		return 0, storageFailure(err)
	}
	if teaches {
		return 0, apperrors.ErrAlreadyInstructor
	}

	if caller.IsAdmin() {
		return 0, apperrors.ErrAdminCannotEnroll
	}

	missing, err := s.prereqs.UnmetPrerequisites(ctx, caller.UserID, courseID)
	if err != nil {
		return 0, err
	}
	if len(missing) > 0 {
		return 0, apperrors.NewUnmetPrerequisitesError(missing)
	}

	id, err := s.enrollments.Create(ctx, caller.UserID, courseID, s.now())
	if err != nil {
		if errors.Is(err, apperrors.ErrAlreadyEnrolled) {
			return 0, err
		}
		return 0, storageFailure(err)
	}

	s.sendConfirmation(caller.UserID, course)

	return id, nil
}

// sendConfirmation fires the confirmation email without blocking the
// enrollment response. Failures are logged and never propagated.
func (s *enrollmentService) sendConfirmation(userID int64, course *models.Course) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		user, err := s.users.GetByID(ctx, userID)
		if err != nil {
			logger.Error().Err(err).Int64("userID", userID).Msg("Could not load user for enrollment confirmation email")
			return
		}

		courseURL := fmt.Sprintf("%s/courses/%d", s.baseURL, course.ID)
		if err := s.emails.SendEnrollmentConfirmation(user.Email, user.FullName(), course.Name, courseURL); err != nil {
			logger.Error().Err(err).
				Str("email", user.Email).
				Int64("courseID", course.ID).
				Msg("Failed to send enrollment confirmation email")
		}
	}()
}

// Unenroll deletes an enrollment by its ID. This is an administrative
// operation; students have no self-service unenroll.
func (s *enrollmentService) Unenroll(ctx context.Context, enrollmentID int64) error {
	removed, err := s.enrollments.Delete(ctx, enrollmentID)
	if err != nil {
		return storageFailure(err)
	}
	if !removed {
		return apperrors.ErrNotEnrolled
	}

	return nil
}

// RecordGrade sets or clears the student's grade for the course. A nil grade
// clears any previously recorded grade. Grade values are not range-checked
// here; what counts as a passing grade is the prerequisite check's concern.
func (s *enrollmentService) RecordGrade(ctx context.Context, userID, courseID int64, grade *float64) error {
	if err := s.enrollments.UpdateGrade(ctx, userID, courseID, grade); err != nil {
		if errors.Is(err, apperrors.ErrNotEnrolled) {
			return err
		}
		return storageFailure(err)
	}

	return nil
}

// GradeOf returns the student's grade for the course. A nil grade with a nil
// error means the student is enrolled but ungraded.
func (s *enrollmentService) GradeOf(ctx context.Context, userID, courseID int64) (*float64, error) {
	grade, err := s.enrollments.GradeOf(ctx, userID, courseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotEnrolled) {
			return nil, err
		}
		return nil, storageFailure(err)
	}

	return grade, nil
}

// ListEnrollments returns every enrollment with course and student detail
func (s *enrollmentService) ListEnrollments(ctx context.Context) ([]*models.Enrollment, error) {
	enrollments, err := s.enrollments.ListWithDetail(ctx)
	if err != nil {
		return nil, storageFailure(err)
	}

	return enrollments, nil
}

// StudentsOfCourse returns the enrollments in a course with student detail
func (s *enrollmentService) StudentsOfCourse(ctx context.Context, courseID int64) ([]*models.Enrollment, error) {
	enrollments, err := s.enrollments.StudentsOfCourse(ctx, courseID)
	if err != nil {
		return nil, storageFailure(err)
	}

	return enrollments, nil
}

// CoursesOfStudent returns the student's enrollments with course detail
func (s *enrollmentService) CoursesOfStudent(ctx context.Context, userID int64) ([]*models.Enrollment, error) {
	enrollments, err := s.enrollments.CoursesOfStudent(ctx, userID)
	if err != nil {
		return nil, storageFailure(err)
	}

	return enrollments, nil
}
