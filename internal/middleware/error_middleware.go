package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lucasferr/cursada/internal/app/models/dto"
	"github.com/lucasferr/cursada/internal/pkg/apperrors"
	"github.com/lucasferr/cursada/internal/pkg/logger"
)

// HandleAPIError maps service errors to HTTP responses. Controllers call it
// for any error a service returns.
func HandleAPIError(c *gin.Context, err error) {
	// Unmet prerequisites carry the missing course names as details
	var unmet *apperrors.UnmetPrerequisitesError
	if errors.As(err, &unmet) {
		detail := dto.NewErrorDetail(dto.ErrorCodePrerequisitesUnmet, "Prerequisites not met").
			WithDetails(unmet.Missing)
		c.JSON(http.StatusConflict, dto.NewErrorResponse(detail))
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrAccountDisabled):
		respond(c, http.StatusForbidden, dto.ErrorCodeAccountDisabled, "Account is disabled")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respond(c, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied")

	case errors.Is(err, apperrors.ErrCourseNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Course not found")
	case errors.Is(err, apperrors.ErrCategoryNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Category not found")
	case errors.Is(err, apperrors.ErrSectionNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Section not found")
	case errors.Is(err, apperrors.ErrUserNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "User not found")
	case errors.Is(err, apperrors.ErrAssignmentNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Assignment not found")

	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already exists")
	case errors.Is(err, apperrors.ErrCategoryAlreadyExists):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Category already exists")
	case errors.Is(err, apperrors.ErrAlreadyAssigned):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Instructor already assigned to this course")

	case errors.Is(err, apperrors.ErrAlreadyEnrolled):
		respond(c, http.StatusConflict, dto.ErrorCodeAlreadyEnrolled, "Already enrolled in this course")
	case errors.Is(err, apperrors.ErrAlreadyInstructor):
		respond(c, http.StatusConflict, dto.ErrorCodeEnrollmentForbidden, "Instructors cannot enroll in their own course")
	case errors.Is(err, apperrors.ErrAdminCannotEnroll):
		respond(c, http.StatusForbidden, dto.ErrorCodeEnrollmentForbidden, "Administrators cannot enroll in courses")
	case errors.Is(err, apperrors.ErrNotEnrolled):
		respond(c, http.StatusNotFound, dto.ErrorCodeNotEnrolled, "Not enrolled in this course")
	case errors.Is(err, apperrors.ErrCourseNotPublished):
		respond(c, http.StatusConflict, dto.ErrorCodeCourseNotPublished, "Course is not published")

	case errors.Is(err, apperrors.ErrSelfPrerequisite):
		respond(c, http.StatusBadRequest, dto.ErrorCodeSelfPrerequisite, "A course cannot be its own prerequisite")
	case errors.Is(err, apperrors.ErrPrerequisiteCycle):
		respond(c, http.StatusConflict, dto.ErrorCodePrerequisiteCycle, "Prerequisite would create a cycle")

	case errors.Is(err, apperrors.ErrValidationFailed):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed")

	case errors.Is(err, apperrors.ErrStorageUnavailable):
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Storage unavailable")
		respond(c, http.StatusServiceUnavailable, dto.ErrorCodeStorageError, "Service temporarily unavailable")

	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled error")
		respond(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

func respond(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}
