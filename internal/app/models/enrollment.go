package models

import "time"

// Enrollment records a student's registration in a course. Grade is null
// until the instructor records one; the row is unique per (user, course).
type Enrollment struct {
	ID         int64     `json:"id" db:"id"`
	UserID     int64     `json:"userId" db:"user_id"`
	CourseID   int64     `json:"courseId" db:"course_id"`
	EnrolledAt time.Time `json:"enrolledAt" db:"enrolled_at"`
	Grade      *float64  `json:"grade,omitempty" db:"grade"` // Nullable, null means not yet graded

	// Relations (populated when needed)
	Course  *Course `json:"course,omitempty"`
	Student *User   `json:"student,omitempty"`
}

// Prerequisite is a directed requirement edge: to enroll in CourseID, the
// student must have passed RequiredCourseID. Self-edges are forbidden.
type Prerequisite struct {
	CourseID         int64 `json:"courseId" db:"course_id"`
	RequiredCourseID int64 `json:"requiredCourseId" db:"required_course_id"`
}

// InstructorAssignment links an instructor to a course they teach. Distinct
// from Enrollment: an instructor of a course is never an enrolled student of
// that course.
type InstructorAssignment struct {
	ID       int64 `json:"id" db:"id"`
	CourseID int64 `json:"courseId" db:"course_id"`
	UserID   int64 `json:"userId" db:"user_id"`

	// Relations (populated when needed)
	Course     *Course `json:"course,omitempty"`
	Instructor *User   `json:"instructor,omitempty"`
}
