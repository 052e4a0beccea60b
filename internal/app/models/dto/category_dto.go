package dto

import "github.com/lucasferr/cursada/internal/app/models"

// CategoryRequest represents category creation or update data
type CategoryRequest struct {
	Name     string  `json:"name" binding:"required,min=2,max=100"`
	ImageURL *string `json:"imageUrl" binding:"omitempty,url"`
}

// CategoryResponse represents category information
type CategoryResponse struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	ImageURL *string `json:"imageUrl,omitempty"`
}

// ToCategoryResponse maps a category model to its response representation
func ToCategoryResponse(category *models.Category) CategoryResponse {
	return CategoryResponse{
		ID:       category.ID,
		Name:     category.Name,
		ImageURL: category.ImageURL,
	}
}

// ToCategoryResponses maps a slice of category models
func ToCategoryResponses(categories []*models.Category) []CategoryResponse {
	responses := make([]CategoryResponse, 0, len(categories))
	for _, category := range categories {
		responses = append(responses, ToCategoryResponse(category))
	}
	return responses
}
