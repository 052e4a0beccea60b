package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateConstraintError(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "enrollments_user_course_key"}

	assert.True(t, IsDuplicateConstraintError(dup, "enrollments_user_course_key"))
	assert.False(t, IsDuplicateConstraintError(dup, "users_email_key"))

	wrapped := fmt.Errorf("error creating enrollment: %w", dup)
	assert.True(t, IsDuplicateConstraintError(wrapped, "enrollments_user_course_key"))

	assert.False(t, IsDuplicateConstraintError(errors.New("connection refused"), "enrollments_user_course_key"))
	assert.False(t, IsDuplicateConstraintError(nil, "enrollments_user_course_key"))
}

func TestIsForeignKeyViolation(t *testing.T) {
	fk := &pgconn.PgError{Code: "23503", ConstraintName: "courses_category_id_fkey"}

	assert.True(t, IsForeignKeyViolation(fk))
	assert.True(t, IsForeignKeyViolation(fmt.Errorf("error creating course: %w", fk)))
	assert.False(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsForeignKeyViolation(nil))
}
