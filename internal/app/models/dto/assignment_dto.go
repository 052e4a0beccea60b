package dto

import "github.com/lucasferr/cursada/internal/app/models"

// AssignInstructorRequest represents an instructor assignment request
type AssignInstructorRequest struct {
	CourseID int64 `json:"courseId" binding:"required,min=1"`
	UserID   int64 `json:"userId" binding:"required,min=1"`
}

// AssignmentResponse represents instructor assignment information
type AssignmentResponse struct {
	ID         int64           `json:"id"`
	CourseID   int64           `json:"courseId"`
	UserID     int64           `json:"userId"`
	Course     *CourseResponse `json:"course,omitempty"`
	Instructor *UserResponse   `json:"instructor,omitempty"`
}

// ToAssignmentResponse maps an assignment model to its response representation
func ToAssignmentResponse(assignment *models.InstructorAssignment) AssignmentResponse {
	resp := AssignmentResponse{
		ID:       assignment.ID,
		CourseID: assignment.CourseID,
		UserID:   assignment.UserID,
	}
	if assignment.Course != nil {
		course := ToCourseResponse(assignment.Course)
		resp.Course = &course
	}
	if assignment.Instructor != nil {
		instructor := ToUserResponse(assignment.Instructor)
		resp.Instructor = &instructor
	}
	return resp
}

// ToAssignmentResponses maps a slice of assignment models
func ToAssignmentResponses(assignments []*models.InstructorAssignment) []AssignmentResponse {
	responses := make([]AssignmentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		responses = append(responses, ToAssignmentResponse(assignment))
	}
	return responses
}
