package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucasferr/cursada/internal/app/models/dto"
	"github.com/lucasferr/cursada/internal/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func handleError(t *testing.T, err error) (*httptest.ResponseRecorder, dto.ErrorResponse) {
	t.Helper()

	recorder := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(recorder)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	HandleAPIError(ctx, err)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return recorder, body
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{"course not found", apperrors.ErrCourseNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"already enrolled", apperrors.ErrAlreadyEnrolled, http.StatusConflict, dto.ErrorCodeAlreadyEnrolled},
		{"not enrolled", apperrors.ErrNotEnrolled, http.StatusNotFound, dto.ErrorCodeNotEnrolled},
		{"course not published", apperrors.ErrCourseNotPublished, http.StatusConflict, dto.ErrorCodeCourseNotPublished},
		{"instructor cannot enroll", apperrors.ErrAlreadyInstructor, http.StatusConflict, dto.ErrorCodeEnrollmentForbidden},
		{"admin cannot enroll", apperrors.ErrAdminCannotEnroll, http.StatusForbidden, dto.ErrorCodeEnrollmentForbidden},
		{"self prerequisite", apperrors.ErrSelfPrerequisite, http.StatusBadRequest, dto.ErrorCodeSelfPrerequisite},
		{"prerequisite cycle", apperrors.ErrPrerequisiteCycle, http.StatusConflict, dto.ErrorCodePrerequisiteCycle},
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
		{"email exists", apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{"storage unavailable", apperrors.ErrStorageUnavailable, http.StatusServiceUnavailable, dto.ErrorCodeStorageError},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder, body := handleError(t, tt.err)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantCode, body.Error.Code)
		})
	}
}

func TestHandleAPIErrorUnmetPrerequisites(t *testing.T) {
	err := apperrors.NewUnmetPrerequisitesError([]string{"Algebra I", "Algebra II"})

	recorder, body := handleError(t, err)

	assert.Equal(t, http.StatusConflict, recorder.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, dto.ErrorCodePrerequisitesUnmet, body.Error.Code)

	details, ok := body.Error.Details.([]interface{})
	require.True(t, ok)
	assert.Equal(t, []interface{}{"Algebra I", "Algebra II"}, details)
}

func TestHandleAPIErrorWrappedStorageFailure(t *testing.T) {
	// Services wrap transient failures in ErrStorageUnavailable
	wrapped := errors.Join(apperrors.ErrStorageUnavailable, errors.New("connection reset"))

	recorder, body := handleError(t, wrapped)

	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Equal(t, dto.ErrorCodeStorageError, body.Error.Code)
}
