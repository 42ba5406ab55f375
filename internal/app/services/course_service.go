package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/lmsadmin/internal/app/models"
	"github.com/yigit/lmsadmin/internal/app/repositories"
	"github.com/yigit/lmsadmin/internal/metrics"
	"github.com/yigit/lmsadmin/internal/pkg/apperrors"
	"github.com/yigit/lmsadmin/internal/pkg/validation"
)

// CourseService defines the interface for course catalog operations
type CourseService interface {
	AddCourse(ctx context.Context, courseName string) (*models.Course, error)
	ListCourses(ctx context.Context) ([]*models.Course, error)
	UpdateCourse(ctx context.Context, id int64, courseName string) (*models.Course, error)
	// DeleteCourse returns the deleted course so its name can be echoed back
	DeleteCourse(ctx context.Context, id int64) (*models.Course, error)
}

// courseServiceImpl implements the CourseService interface
type courseServiceImpl struct {
	courseRepo repositories.ICourseRepository
	logger     zerolog.Logger
}

// NewCourseService creates a new course service instance
func NewCourseService(courseRepo repositories.ICourseRepository, logger zerolog.Logger) CourseService {
	return &courseServiceImpl{
		courseRepo: courseRepo,
		logger:     logger,
	}
}

func (s *courseServiceImpl) validateCourseName(courseName string) (string, error) {
	name := validation.NormalizeCourseName(courseName)
	if msg := validation.NewStringValidation(name).WithMaxLength(validation.CourseNameMaxLength).Validate(); msg != "" {
		return "", apperrors.NewFieldError("course_name", msg)
	}
	return name, nil
}

// AddCourse creates a course
func (s *courseServiceImpl) AddCourse(ctx context.Context, courseName string) (*models.Course, error) {
	name, err := s.validateCourseName(courseName)
	if err != nil {
		return nil, err
	}

	course, err := s.courseRepo.Create(ctx, name)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseAlreadyExists) {
			return nil, apperrors.NewDuplicateError(err, fmt.Sprintf("%s is already present", name))
		}
		return nil, fmt.Errorf("error creating course: %w", err)
	}

	metrics.Record(metrics.EventCourseCreated)
	s.logger.Info().Int64("courseID", course.ID).Str("courseName", course.CourseName).Msg("Course created")
	return course, nil
}

// ListCourses retrieves all courses
func (s *courseServiceImpl) ListCourses(ctx context.Context) ([]*models.Course, error) {
	courses, err := s.courseRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}
	return courses, nil
}

// UpdateCourse renames an existing course
func (s *courseServiceImpl) UpdateCourse(ctx context.Context, id int64, courseName string) (*models.Course, error) {
	name, err := s.validateCourseName(courseName)
	if err != nil {
		return nil, err
	}

	if err := s.courseRepo.Update(ctx, id, name); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrCourseNotFound):
			return nil, apperrors.NewNotFoundError(err, "Course with given id does not exist")
		case errors.Is(err, apperrors.ErrCourseAlreadyExists):
			return nil, apperrors.NewDuplicateError(err, fmt.Sprintf("%s is already present", name))
		}
		return nil, fmt.Errorf("error updating course: %w", err)
	}

	metrics.Record(metrics.EventCourseUpdated)
	s.logger.Info().Int64("courseID", id).Str("courseName", name).Msg("Course renamed")
	return &models.Course{ID: id, CourseName: name}, nil
}

// DeleteCourse deletes a course together with its bucket entries and mapping records
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.courseRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return nil, apperrors.NewNotFoundError(err, "Course not found with this id")
		}
		return nil, fmt.Errorf("error deleting course: %w", err)
	}

	metrics.Record(metrics.EventCourseDeleted)
	s.logger.Info().Int64("courseID", course.ID).Str("courseName", course.CourseName).Msg("Course deleted")
	return course, nil
}
