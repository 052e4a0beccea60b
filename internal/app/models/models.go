package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent    RoleType = "STUDENT"
	RoleInstructor RoleType = "INSTRUCTOR"
	RoleAdmin      RoleType = "ADMIN"
)

// CallerContext identifies the authenticated user performing an operation.
// Services receive it explicitly instead of reading request-scoped state.
type CallerContext struct {
	UserID int64
	Role   RoleType
}

// IsAdmin reports whether the caller holds the administrator role
func (c CallerContext) IsAdmin() bool {
	return c.Role == RoleAdmin
}
