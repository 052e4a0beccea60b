package dto

import (
	"time"

	"github.com/lucasferr/cursada/internal/app/models"
)

// CreateCourseRequest represents course creation data
type CreateCourseRequest struct {
	Name        string  `json:"name" binding:"required,min=3,max=200"`
	Description *string `json:"description"`
	CategoryID  *int64  `json:"categoryId" binding:"omitempty,min=1"`
	VideoURL    *string `json:"videoUrl" binding:"omitempty,url"`
}

// UpdateCourseRequest represents course update data
type UpdateCourseRequest struct {
	Name        string  `json:"name" binding:"omitempty,min=3,max=200"`
	Description *string `json:"description"`
	CategoryID  *int64  `json:"categoryId" binding:"omitempty,min=1"`
	VideoURL    *string `json:"videoUrl" binding:"omitempty,url"`
}

// CourseResponse represents course information
type CourseResponse struct {
	ID            int64             `json:"id"`
	Name          string            `json:"name"`
	Description   *string           `json:"description,omitempty"`
	ImageURL      *string           `json:"imageUrl,omitempty"`
	VideoURL      *string           `json:"videoUrl,omitempty"`
	Published     bool              `json:"published"`
	CreatedAt     time.Time         `json:"createdAt"`
	Category      *CategoryResponse `json:"category,omitempty"`
	EnrolledCount int64             `json:"enrolledCount"`
}

// SectionRequest represents section creation or update data
type SectionRequest struct {
	Title       string  `json:"title" binding:"required,min=3,max=200"`
	Description *string `json:"description"`
	VideoURL    *string `json:"videoUrl" binding:"omitempty,url"`
}

// SectionResponse represents section information
type SectionResponse struct {
	ID          int64   `json:"id"`
	CourseID    int64   `json:"courseId"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	VideoURL    *string `json:"videoUrl,omitempty"`
}

// ToCourseResponse maps a course model to its response representation
func ToCourseResponse(course *models.Course) CourseResponse {
	resp := CourseResponse{
		ID:            course.ID,
		Name:          course.Name,
		Description:   course.Description,
		ImageURL:      course.ImageURL,
		VideoURL:      course.VideoURL,
		Published:     course.Published,
		CreatedAt:     course.CreatedAt,
		EnrolledCount: course.EnrolledCount,
	}
	if course.Category != nil {
		category := ToCategoryResponse(course.Category)
		resp.Category = &category
	}
	return resp
}

// ToCourseResponses maps a slice of course models
func ToCourseResponses(courses []*models.Course) []CourseResponse {
	responses := make([]CourseResponse, 0, len(courses))
	for _, course := range courses {
		responses = append(responses, ToCourseResponse(course))
	}
	return responses
}

// ToSectionResponse maps a section model to its response representation
func ToSectionResponse(section *models.Section) SectionResponse {
	return SectionResponse{
		ID:          section.ID,
		CourseID:    section.CourseID,
		Title:       section.Title,
		Description: section.Description,
		VideoURL:    section.VideoURL,
	}
}

// ToSectionResponses maps a slice of section models
func ToSectionResponses(sections []*models.Section) []SectionResponse {
	responses := make([]SectionResponse, 0, len(sections))
	for _, section := range sections {
		responses = append(responses, ToSectionResponse(section))
	}
	return responses
}
