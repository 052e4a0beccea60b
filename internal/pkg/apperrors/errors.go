package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors
var (
	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")

	// Infrastructure errors. ErrStorageUnavailable marks transient data-store
	// failures; callers may retry, the services never do.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// Course and category errors
var (
	ErrCourseNotFound        = errors.New("course not found")
	ErrCourseNotPublished    = errors.New("course is not published")
	ErrCategoryNotFound      = errors.New("category not found")
	ErrCategoryAlreadyExists = errors.New("category with this name already exists")
	ErrSectionNotFound       = errors.New("section not found")
)

// Enrollment errors
var (
	ErrAlreadyEnrolled   = errors.New("student is already enrolled in this course")
	ErrAlreadyInstructor = errors.New("instructors cannot enroll in their own course")
	ErrAdminCannotEnroll = errors.New("administrators cannot enroll in courses")
	ErrNotEnrolled       = errors.New("no enrollment exists for this student and course")
)

// Prerequisite errors
var (
	ErrSelfPrerequisite   = errors.New("a course cannot be its own prerequisite")
	ErrPrerequisiteCycle  = errors.New("prerequisite would create a cycle")
	ErrPrerequisitesUnmet = errors.New("prerequisites unmet")
	ErrAssignmentNotFound = errors.New("instructor assignment not found")
	ErrAlreadyAssigned    = errors.New("instructor is already assigned to this course")
)

// UnmetPrerequisitesError reports every prerequisite course the student has
// not passed, so callers can present a complete remediation message.
type UnmetPrerequisitesError struct {
	Missing []string
}

// Error implements the error interface
func (e *UnmetPrerequisitesError) Error() string {
	return fmt.Sprintf("prerequisites unmet: %s", strings.Join(e.Missing, ", "))
}

// Unwrap makes the error match ErrPrerequisitesUnmet via errors.Is
func (e *UnmetPrerequisitesError) Unwrap() error {
	return ErrPrerequisitesUnmet
}

// NewUnmetPrerequisitesError creates an error carrying all unmet course names
func NewUnmetPrerequisitesError(missing []string) *UnmetPrerequisitesError {
	return &UnmetPrerequisitesError{Missing: missing}
}
