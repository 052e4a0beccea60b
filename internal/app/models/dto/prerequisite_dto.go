package dto

// AddPrerequisiteRequest represents a prerequisite edge to create
type AddPrerequisiteRequest struct {
	RequiredCourseID int64 `json:"requiredCourseId" binding:"required,min=1"`
}

// PrerequisiteResponse describes the outcome of adding a prerequisite edge
type PrerequisiteResponse struct {
	CourseID         int64 `json:"courseId"`
	RequiredCourseID int64 `json:"requiredCourseId"`
	AlreadyExisted   bool  `json:"alreadyExisted"`
}

// UnmetPrerequisitesResponse lists the required courses a student has not
// yet passed
type UnmetPrerequisitesResponse struct {
	CourseID int64    `json:"courseId"`
	Missing  []string `json:"missing"`
	Eligible bool     `json:"eligible"`
}
