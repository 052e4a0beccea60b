package services

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"github.com/lucasferr/cursada/internal/app/models"
	"github.com/lucasferr/cursada/internal/app/repositories"
	"github.com/lucasferr/cursada/internal/pkg/apperrors"
	"github.com/lucasferr/cursada/internal/pkg/filestorage"
)

// CourseService handles the course catalog: CRUD, publication, search and
// sections.
type CourseService interface {
	CreateCourse(ctx context.Context, course *models.Course) (*models.Course, error)
	GetCourse(ctx context.Context, id int64) (*models.Course, error)
	GetAllCourses(ctx context.Context) ([]*models.Course, error)
	GetPublishedCourses(ctx context.Context) ([]*models.Course, error)
	SearchCourses(ctx context.Context, name string) ([]*models.Course, error)
	GetCoursesByCategory(ctx context.Context, categoryID int64) ([]*models.Course, error)
	GetPopularCourses(ctx context.Context, limit int) ([]*models.Course, error)
	UpdateCourse(ctx context.Context, course *models.Course) (*models.Course, error)
	PublishCourse(ctx context.Context, id int64) error
	DeleteCourse(ctx context.Context, id int64) error
	UploadCourseImage(ctx context.Context, courseID int64, file *multipart.FileHeader) (string, error)

	CreateSection(ctx context.Context, section *models.Section) (*models.Section, error)
	GetSectionsByCourse(ctx context.Context, courseID int64) ([]*models.Section, error)
	UpdateSection(ctx context.Context, section *models.Section) (*models.Section, error)
	DeleteSection(ctx context.Context, id int64) error
}

type courseService struct {
	courses    *repositories.CourseRepository
	sections   *repositories.SectionRepository
	categories *repositories.CategoryRepository
	storage    *filestorage.LocalStorage
}

// NewCourseService creates a new course service
func NewCourseService(
	courses *repositories.CourseRepository,
	sections *repositories.SectionRepository,
	categories *repositories.CategoryRepository,
	storage *filestorage.LocalStorage,
) CourseService {
	return &courseService{
		courses:    courses,
		sections:   sections,
		categories: categories,
		storage:    storage,
	}
}

// CreateCourse creates a course in the unpublished state
func (s *courseService) CreateCourse(ctx context.Context, course *models.Course) (*models.Course, error) {
	course.Name = strings.TrimSpace(course.Name)
	if course.Name == "" {
		return nil, apperrors.ErrValidationFailed
	}

	if course.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *course.CategoryID); err != nil {
			if errors.Is(err, apperrors.ErrCategoryNotFound) {
				return nil, err
			}
			return nil, storageFailure(err)
		}
	}

	if err := s.courses.Create(ctx, course); err != nil {
		return nil, storageFailure(err)
	}

	return course, nil
}

// GetCourse returns the course with the given ID
func (s *courseService) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return nil, courseLookupErr(err)
	}
	return course, nil
}

// GetAllCourses returns every course, published or not
func (s *courseService) GetAllCourses(ctx context.Context) ([]*models.Course, error) {
	courses, err := s.courses.GetAll(ctx)
	if err != nil {
		return nil, storageFailure(err)
	}
	return courses, nil
}

// GetPublishedCourses returns the published catalog
func (s *courseService) GetPublishedCourses(ctx context.Context) ([]*models.Course, error) {
	courses, err := s.courses.GetPublished(ctx)
	if err != nil {
		return nil, storageFailure(err)
	}
	return courses, nil
}

// SearchCourses searches published courses by name, case-insensitively. An
// empty query returns the full published catalog.
func (s *courseService) SearchCourses(ctx context.Context, name string) ([]*models.Course, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return s.GetPublishedCourses(ctx)
	}

	courses, err := s.courses.SearchPublishedByName(ctx, name)
	if err != nil {
		return nil, storageFailure(err)
	}
	return courses, nil
}

// GetCoursesByCategory returns the published courses in a category
func (s *courseService) GetCoursesByCategory(ctx context.Context, categoryID int64) ([]*models.Course, error) {
	if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
		if errors.Is(err, apperrors.ErrCategoryNotFound) {
			return nil, err
		}
		return nil, storageFailure(err)
	}

	courses, err := s.courses.GetByCategory(ctx, categoryID)
	if err != nil {
		return nil, storageFailure(err)
	}
	return courses, nil
}

// GetPopularCourses returns the published courses with the most enrollments
func (s *courseService) GetPopularCourses(ctx context.Context, limit int) ([]*models.Course, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	courses, err := s.courses.GetPopular(ctx, limit)
	if err != nil {
		return nil, storageFailure(err)
	}
	return courses, nil
}

// UpdateCourse updates the course's editable fields. Publication state is
// not touched here; use PublishCourse.
func (s *courseService) UpdateCourse(ctx context.Context, course *models.Course) (*models.Course, error) {
	existing, err := s.courses.GetByID(ctx, course.ID)
	if err != nil {
		return nil, courseLookupErr(err)
	}

	course.Name = strings.TrimSpace(course.Name)
	if course.Name == "" {
		course.Name = existing.Name
	}

	if course.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *course.CategoryID); err != nil {
			if errors.Is(err, apperrors.ErrCategoryNotFound) {
				return nil, err
			}
			return nil, storageFailure(err)
		}
	}

	if err := s.courses.Update(ctx, course); err != nil {
		return nil, storageFailure(err)
	}

	return s.GetCourse(ctx, course.ID)
}

// PublishCourse makes the course visible and enrollable. Publication is
// one-way; publishing an already published course is a no-op.
func (s *courseService) PublishCourse(ctx context.Context, id int64) error {
	if _, err := s.courses.GetByID(ctx, id); err != nil {
		return courseLookupErr(err)
	}

	if _, err := s.courses.Publish(ctx, id); err != nil {
		return storageFailure(err)
	}

	return nil
}

// DeleteCourse removes a course and, through the schema's cascades, its
// sections, enrollments and prerequisite edges
func (s *courseService) DeleteCourse(ctx context.Context, id int64) error {
	if _, err := s.courses.GetByID(ctx, id); err != nil {
		return courseLookupErr(err)
	}

	if err := s.courses.Delete(ctx, id); err != nil {
		return storageFailure(err)
	}

	return nil
}

// UploadCourseImage stores the uploaded image and saves its URL on the course
func (s *courseService) UploadCourseImage(ctx context.Context, courseID int64, file *multipart.FileHeader) (string, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return "", courseLookupErr(err)
	}

	url, err := s.storage.SaveFileWithPath(file, "courses")
	if err != nil {
		return "", err
	}

	previous := course.ImageURL
	course.ImageURL = &url
	if err := s.courses.Update(ctx, course); err != nil {
		_ = s.storage.DeleteFile(url)
		return "", storageFailure(err)
	}

	// Replaced images are not referenced anymore; removal is best effort
	if previous != nil {
		_ = s.storage.DeleteFile(*previous)
	}

	return url, nil
}

// CreateSection adds a section to a course
func (s *courseService) CreateSection(ctx context.Context, section *models.Section) (*models.Section, error) {
	if _, err := s.courses.GetByID(ctx, section.CourseID); err != nil {
		return nil, courseLookupErr(err)
	}

	section.Title = strings.TrimSpace(section.Title)
	if section.Title == "" {
		return nil, apperrors.ErrValidationFailed
	}

	if err := s.sections.Create(ctx, section); err != nil {
		return nil, storageFailure(err)
	}

	return section, nil
}

// GetSectionsByCourse returns the course's sections in order
func (s *courseService) GetSectionsByCourse(ctx context.Context, courseID int64) ([]*models.Section, error) {
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		return nil, courseLookupErr(err)
	}

	sections, err := s.sections.GetByCourse(ctx, courseID)
	if err != nil {
		return nil, storageFailure(err)
	}
	return sections, nil
}

// UpdateSection updates a section's fields
func (s *courseService) UpdateSection(ctx context.Context, section *models.Section) (*models.Section, error) {
	if _, err := s.sections.GetByID(ctx, section.ID); err != nil {
		if errors.Is(err, apperrors.ErrSectionNotFound) {
			return nil, err
		}
		return nil, storageFailure(err)
	}

	if err := s.sections.Update(ctx, section); err != nil {
		return nil, storageFailure(err)
	}

	return s.sections.GetByID(ctx, section.ID)
}

// DeleteSection removes a section
func (s *courseService) DeleteSection(ctx context.Context, id int64) error {
	if _, err := s.sections.GetByID(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrSectionNotFound) {
			return err
		}
		return storageFailure(err)
	}

	if err := s.sections.Delete(ctx, id); err != nil {
		return storageFailure(err)
	}

	return nil
}
