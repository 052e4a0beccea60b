package services

import (
	"fmt"

	"github.com/lucasferr/cursada/internal/pkg/apperrors"
)

// Services defined in this package:
// - AuthService: registration, login and token refresh
// - CategoryService: category management
// - CourseService: course and section management, publishing, search
// - PrerequisiteService: prerequisite edges and satisfaction queries
// - EnrollmentService: the single mutating entry point for enrollment,
//   plus grading and rosters
// - AssignmentService: instructor-to-course assignments
// - StatsService: administrative dashboard counters

// storageFailure wraps an unexpected data-store error as a transient
// failure the caller may retry. Domain errors are never wrapped with it.
func storageFailure(err error) error {
	return fmt.Errorf("%w: %v", apperrors.ErrStorageUnavailable, err)
}
