package models

import "time"

// Course represents a course offered on the platform.
// Published is a one-way transition: unpublished courses are invisible to
// students and can never go back once published.
type Course struct {
	ID          int64     `json:"id" db:"id"`
	CategoryID  *int64    `json:"categoryId,omitempty" db:"category_id"` // Nullable
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"` // Nullable
	ImageURL    *string   `json:"imageUrl,omitempty" db:"image_url"`      // Nullable
	VideoURL    *string   `json:"videoUrl,omitempty" db:"video_url"`      // Nullable
	Published   bool      `json:"published" db:"published"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Category      *Category `json:"category,omitempty"`
	EnrolledCount int64     `json:"enrolledCount,omitempty"`
}

// Section represents a content section inside a course
type Section struct {
	ID          int64   `json:"id" db:"id"`
	CourseID    int64   `json:"courseId" db:"course_id"`
	Title       string  `json:"title" db:"title"`
	Description *string `json:"description,omitempty" db:"description"`
	VideoURL    *string `json:"videoUrl,omitempty" db:"video_url"`
}
