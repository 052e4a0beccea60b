package services

import (
	"context"
	"errors"

	"github.com/lucasferr/cursada/internal/app/models"
	"github.com/lucasferr/cursada/internal/app/repositories"
	"github.com/lucasferr/cursada/internal/pkg/apperrors"
)

// AssignmentService links instructor accounts to the courses they teach.
type AssignmentService interface {
	AssignInstructor(ctx context.Context, courseID, userID int64) (*models.InstructorAssignment, error)
	UnassignInstructor(ctx context.Context, id int64) error
	ListAssignments(ctx context.Context) ([]*models.InstructorAssignment, error)
	CoursesOfInstructor(ctx context.Context, userID int64) ([]*models.Course, error)
	IsInstructorOf(ctx context.Context, userID, courseID int64) (bool, error)
}

type assignmentService struct {
	assignments *repositories.AssignmentRepository
	courses     *repositories.CourseRepository
	users       *repositories.UserRepository
	enrollments *repositories.EnrollmentRepository
}

// NewAssignmentService creates a new instructor assignment service
func NewAssignmentService(
	assignments *repositories.AssignmentRepository,
	courses *repositories.CourseRepository,
	users *repositories.UserRepository,
	enrollments *repositories.EnrollmentRepository,
) AssignmentService {
	return &assignmentService{
		assignments: assignments,
		courses:     courses,
		users:       users,
		enrollments: enrollments,
	}
}

// AssignInstructor makes the user an instructor of the course. The user must
// hold the INSTRUCTOR role and must not be enrolled in the course as a
// student.
func (s *assignmentService) AssignInstructor(ctx context.Context, courseID, userID int64) (*models.InstructorAssignment, error) {
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		return nil, courseLookupErr(err)
	}

	role, err := s.users.RoleOf(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, err
		}
		return nil, storageFailure(err)
	}
	if role != models.RoleInstructor {
		return nil, apperrors.ErrPermissionDenied
	}

	enrolled, err := s.enrollments.Exists(ctx, userID, courseID)
	if err != nil {
		return nil, storageFailure(err)
	}
	if enrolled {
		return nil, apperrors.ErrAlreadyEnrolled
	}

	assignment := &models.InstructorAssignment{CourseID: courseID, UserID: userID}
	if err := s.assignments.Create(ctx, assignment); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyAssigned) {
			return nil, err
		}
		return nil, storageFailure(err)
	}

	return assignment, nil
}

// UnassignInstructor removes an instructor assignment by its ID
func (s *assignmentService) UnassignInstructor(ctx context.Context, id int64) error {
	if err := s.assignments.Delete(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrAssignmentNotFound) {
			return err
		}
		return storageFailure(err)
	}
	return nil
}

// ListAssignments returns every assignment with course and instructor detail
func (s *assignmentService) ListAssignments(ctx context.Context) ([]*models.InstructorAssignment, error) {
	assignments, err := s.assignments.ListWithDetail(ctx)
	if err != nil {
		return nil, storageFailure(err)
	}
	return assignments, nil
}

// CoursesOfInstructor returns the courses the instructor teaches
func (s *assignmentService) CoursesOfInstructor(ctx context.Context, userID int64) ([]*models.Course, error) {
	courses, err := s.assignments.CoursesOfInstructor(ctx, userID)
	if err != nil {
		return nil, storageFailure(err)
	}
	return courses, nil
}

// IsInstructorOf reports whether the user teaches the course
func (s *assignmentService) IsInstructorOf(ctx context.Context, userID, courseID int64) (bool, error) {
	teaches, err := s.assignments.IsInstructorOf(ctx, userID, courseID)
	if err != nil {
		return false, storageFailure(err)
	}
	return teaches, nil
}
