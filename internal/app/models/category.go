package models

// Category groups courses for browsing
type Category struct {
	ID       int64   `json:"id" db:"id"`
	Name     string  `json:"name" db:"name"`
	ImageURL *string `json:"imageUrl,omitempty" db:"image_url"` // Nullable
}
