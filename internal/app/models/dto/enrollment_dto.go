package dto

import (
	"time"

	"github.com/lucasferr/cursada/internal/app/models"
)

// EnrollRequest represents an enrollment request
type EnrollRequest struct {
	CourseID int64 `json:"courseId" binding:"required,min=1"`
}

// GradeRequest represents a grade assignment. A null grade clears any
// previously recorded grade.
type GradeRequest struct {
	UserID int64    `json:"userId" binding:"required,min=1"`
	Grade  *float64 `json:"grade"`
}

// EnrollmentResponse represents enrollment information
type EnrollmentResponse struct {
	ID         int64           `json:"id"`
	UserID     int64           `json:"userId"`
	CourseID   int64           `json:"courseId"`
	EnrolledAt time.Time       `json:"enrolledAt"`
	Grade      *float64        `json:"grade,omitempty"`
	Course     *CourseResponse `json:"course,omitempty"`
	Student    *UserResponse   `json:"student,omitempty"`
}

// ToEnrollmentResponse maps an enrollment model to its response representation
func ToEnrollmentResponse(enrollment *models.Enrollment) EnrollmentResponse {
	resp := EnrollmentResponse{
		ID:         enrollment.ID,
		UserID:     enrollment.UserID,
		CourseID:   enrollment.CourseID,
		EnrolledAt: enrollment.EnrolledAt,
		Grade:      enrollment.Grade,
	}
	if enrollment.Course != nil {
		course := ToCourseResponse(enrollment.Course)
		resp.Course = &course
	}
	if enrollment.Student != nil {
		student := ToUserResponse(enrollment.Student)
		resp.Student = &student
	}
	return resp
}

// ToEnrollmentResponses maps a slice of enrollment models
func ToEnrollmentResponses(enrollments []*models.Enrollment) []EnrollmentResponse {
	responses := make([]EnrollmentResponse, 0, len(enrollments))
	for _, enrollment := range enrollments {
		responses = append(responses, ToEnrollmentResponse(enrollment))
	}
	return responses
}
