package services

import (
	"context"

	"github.com/lucasferr/cursada/internal/app/models"
	"github.com/lucasferr/cursada/internal/app/repositories"
)

// PlatformStats is the administrative dashboard summary.
type PlatformStats struct {
	PublishedCourses   int64            `json:"publishedCourses"`
	UnpublishedCourses int64            `json:"unpublishedCourses"`
	TotalEnrollments   int64            `json:"totalEnrollments"`
	PopularCourses     []*models.Course `json:"popularCourses"`
}

// StatsService aggregates catalog and enrollment counts.
type StatsService interface {
	GetPlatformStats(ctx context.Context) (*PlatformStats, error)
}

type statsService struct {
	courses     *repositories.CourseRepository
	enrollments *repositories.EnrollmentRepository
}

// NewStatsService creates a new stats service
func NewStatsService(courses *repositories.CourseRepository, enrollments *repositories.EnrollmentRepository) StatsService {
	return &statsService{courses: courses, enrollments: enrollments}
}

func (s *statsService) GetPlatformStats(ctx context.Context) (*PlatformStats, error) {
	published, err := s.courses.CountPublished(ctx)
	if err != nil {
		return nil, storageFailure(err)
	}

	unpublished, err := s.courses.CountUnpublished(ctx)
	if err != nil {
		return nil, storageFailure(err)
	}

	total, err := s.enrollments.CountAll(ctx)
	if err != nil {
		return nil, storageFailure(err)
	}

	popular, err := s.courses.GetPopular(ctx, 5)
	if err != nil {
		return nil, storageFailure(err)
	}

	return &PlatformStats{
		PublishedCourses:   published,
		UnpublishedCourses: unpublished,
		TotalEnrollments:   total,
		PopularCourses:     popular,
	}, nil
}
