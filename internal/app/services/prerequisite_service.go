package services

import (
	"context"
	"errors"

	"github.com/lucasferr/cursada/internal/app/models"
	"github.com/lucasferr/cursada/internal/pkg/apperrors"
)

// PrerequisiteStore is the persistence surface the prerequisite service
// needs. *repositories.PrerequisiteRepository satisfies it; tests use fakes.
type PrerequisiteStore interface {
	Insert(ctx context.Context, courseID, requiredCourseID int64) (alreadyExisted bool, err error)
	Delete(ctx context.Context, courseID, requiredCourseID int64) (removed bool, err error)
	RequiredFor(ctx context.Context, courseID int64) ([]*models.Course, error)
	RequiredIDs(ctx context.Context, courseID int64) ([]int64, error)
	Requiring(ctx context.Context, courseID int64) ([]*models.Course, error)
	CoursesWithPrerequisites(ctx context.Context) ([]*models.Course, error)
}

// PassingStore answers whether a student has passed a course.
// *repositories.EnrollmentRepository satisfies it.
type PassingStore interface {
	HasPassed(ctx context.Context, userID, courseID int64, threshold float64) (bool, error)
}

// CourseGetter fetches a single course. *repositories.CourseRepository
// satisfies it.
type CourseGetter interface {
	GetByID(ctx context.Context, id int64) (*models.Course, error)
}

// PrerequisiteService maintains the prerequisite edge set and answers
// satisfaction queries.
type PrerequisiteService interface {
	AddPrerequisite(ctx context.Context, courseID, requiredCourseID int64) (alreadyExisted bool, err error)
	RemovePrerequisite(ctx context.Context, courseID, requiredCourseID int64) (removed bool, err error)
	PrerequisitesOf(ctx context.Context, courseID int64) ([]*models.Course, error)
	UnmetPrerequisites(ctx context.Context, studentID, courseID int64) ([]string, error)
	CoursesRequiringThis(ctx context.Context, courseID int64) ([]*models.Course, error)
	CoursesWithPrerequisites(ctx context.Context) ([]*models.Course, error)
}

type prerequisiteService struct {
	prereqs     PrerequisiteStore
	enrollments PassingStore
	courses     CourseGetter
	threshold   float64
}

// NewPrerequisiteService creates a new prerequisite service. threshold is
// the minimum grade, inclusive, at which a course counts as passed.
func NewPrerequisiteService(prereqs PrerequisiteStore, enrollments PassingStore, courses CourseGetter, threshold float64) PrerequisiteService {
	return &prerequisiteService{
		prereqs:     prereqs,
		enrollments: enrollments,
		courses:     courses,
		threshold:   threshold,
	}
}

// AddPrerequisite registers requiredCourseID as a prerequisite of courseID.
// Self-edges are rejected, duplicate edges succeed idempotently, and an edge
// that would close a cycle through existing edges is rejected.
func (s *prerequisiteService) AddPrerequisite(ctx context.Context, courseID, requiredCourseID int64) (bool, error) {
	if courseID == requiredCourseID {
		return false, apperrors.ErrSelfPrerequisite
	}

	// Both endpoints must exist
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		return false, courseLookupErr(err)
	}
	if _, err := s.courses.GetByID(ctx, requiredCourseID); err != nil {
		return false, courseLookupErr(err)
	}

	reachable, err := s.dependsOn(ctx, requiredCourseID, courseID)
	if err != nil {
		return false, storageFailure(err)
	}
	if reachable {
		return false, apperrors.ErrPrerequisiteCycle
	}

	alreadyExisted, err := s.prereqs.Insert(ctx, courseID, requiredCourseID)
	if err != nil {
		return false, storageFailure(err)
	}

	return alreadyExisted, nil
}

// dependsOn reports whether `from` transitively requires `target`, walking
// the requirement edges breadth-first.
func (s *prerequisiteService) dependsOn(ctx context.Context, from, target int64) (bool, error) {
	visited := map[int64]bool{from: true}
	queue := []int64{from}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		required, err := s.prereqs.RequiredIDs(ctx, current)
		if err != nil {
			return false, err
		}

		for _, id := range required {
			if id == target {
				return true, nil
			}
			if !visited[id] {
				visited[id] = true
				queue = append(queue, id)
			}
		}
	}

	return false, nil
}

// RemovePrerequisite deletes the edge if present. A false result means there
// was nothing to remove, which is not an error.
func (s *prerequisiteService) RemovePrerequisite(ctx context.Context, courseID, requiredCourseID int64) (bool, error) {
	removed, err := s.prereqs.Delete(ctx, courseID, requiredCourseID)
	if err != nil {
		return false, storageFailure(err)
	}

	return removed, nil
}

// PrerequisitesOf returns the required courses for courseID, ordered by name
func (s *prerequisiteService) PrerequisitesOf(ctx context.Context, courseID int64) ([]*models.Course, error) {
	required, err := s.prereqs.RequiredFor(ctx, courseID)
	if err != nil {
		return nil, storageFailure(err)
	}

	return required, nil
}

// UnmetPrerequisites returns the names of every required course the student
// has not passed. An empty result means the student may enroll. The check is
// point-in-time: edges added later are not enforced retroactively.
func (s *prerequisiteService) UnmetPrerequisites(ctx context.Context, studentID, courseID int64) ([]string, error) {
	required, err := s.prereqs.RequiredFor(ctx, courseID)
	if err != nil {
		return nil, storageFailure(err)
	}

	var missing []string
	for _, course := range required {
		passed, err := s.enrollments.HasPassed(ctx, studentID, course.ID, s.threshold)
		if err != nil {
			return nil, storageFailure(err)
		}
		if !passed {
			missing = append(missing, course.Name)
		}
	}

	return missing, nil
}

// CoursesRequiringThis returns the courses for which courseID is a
// prerequisite
func (s *prerequisiteService) CoursesRequiringThis(ctx context.Context, courseID int64) ([]*models.Course, error) {
	requiring, err := s.prereqs.Requiring(ctx, courseID)
	if err != nil {
		return nil, storageFailure(err)
	}

	return requiring, nil
}

// CoursesWithPrerequisites lists the courses that have at least one
// prerequisite, for the administrative overview
func (s *prerequisiteService) CoursesWithPrerequisites(ctx context.Context) ([]*models.Course, error) {
	courses, err := s.prereqs.CoursesWithPrerequisites(ctx)
	if err != nil {
		return nil, storageFailure(err)
	}

	return courses, nil
}

// courseLookupErr keeps not-found as a domain error and wraps anything else
// as a transient storage failure.
func courseLookupErr(err error) error {
	if errors.Is(err, apperrors.ErrCourseNotFound) {
		return err
	}
	return storageFailure(err)
}
