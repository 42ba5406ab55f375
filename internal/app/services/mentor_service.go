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
)

// MentorService defines mentor listing and bucket management
type MentorService interface {
	// AddCoursesToMentor adds every course to the mentor's bucket or none of them
	AddCoursesToMentor(ctx context.Context, mentorID int64, courseIDs []int64) (*models.Mentor, error)
	RemoveCourseFromMentor(ctx context.Context, mentorID, courseID int64) (*models.Course, error)
	ListMentors(ctx context.Context) ([]*models.Mentor, error)
	GetMentorDetail(ctx context.Context, mentorID int64) (*models.Mentor, error)
}

type mentorServiceImpl struct {
	mentorRepo repositories.IMentorRepository
	courseRepo repositories.ICourseRepository
	logger     zerolog.Logger
}

// NewMentorService creates a new mentor service instance
func NewMentorService(mentorRepo repositories.IMentorRepository, courseRepo repositories.ICourseRepository, logger zerolog.Logger) MentorService {
	return &mentorServiceImpl{
		mentorRepo: mentorRepo,
		courseRepo: courseRepo,
		logger:     logger,
	}
}

func courseNotFound(err error, courseID int64) error {
	return apperrors.NewNotFoundError(err, fmt.Sprintf("Course with this id %d is not found", courseID))
}

func (s *mentorServiceImpl) getMentor(ctx context.Context, mentorID int64) (*models.Mentor, error) {
	mentor, err := s.mentorRepo.GetByID(ctx, mentorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrMentorNotFound) {
			return nil, apperrors.NewNotFoundError(err, "Mentor id does not exist")
		}
		return nil, fmt.Errorf("error retrieving mentor: %w", err)
	}
	return mentor, nil
}

// AddCoursesToMentor implements MentorService
func (s *mentorServiceImpl) AddCoursesToMentor(ctx context.Context, mentorID int64, courseIDs []int64) (*models.Mentor, error) {
	mentor, err := s.getMentor(ctx, mentorID)
	if err != nil {
		return nil, err
	}

	for _, courseID := range courseIDs {
		if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
			if errors.Is(err, apperrors.ErrCourseNotFound) {
				return nil, courseNotFound(err, courseID)
			}
			return nil, fmt.Errorf("error retrieving course: %w", err)
		}
	}

	if err := s.mentorRepo.AssignCourses(ctx, mentorID, courseIDs); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrCourseAlreadyAssigned):
			return nil, apperrors.NewDuplicateError(err, "This course is already added")
		case errors.Is(err, apperrors.ErrMentorNotFound):
			return nil, apperrors.NewNotFoundError(err, "Mentor id does not exist")
		case errors.Is(err, apperrors.ErrCourseNotFound):
			// deleted between the lookup above and the insert
			return nil, apperrors.NewNotFoundError(err, "Course does not exist")
		}
		return nil, fmt.Errorf("error assigning courses: %w", err)
	}

	metrics.Record(metrics.EventMentorCoursesAssigned)
	s.logger.Info().Int64("mentorID", mentorID).Ints64("courseIDs", courseIDs).Msg("Courses added to mentor")
	return mentor, nil
}

// RemoveCourseFromMentor implements MentorService
func (s *mentorServiceImpl) RemoveCourseFromMentor(ctx context.Context, mentorID, courseID int64) (*models.Course, error) {
	mentor, err := s.getMentor(ctx, mentorID)
	if err != nil {
		return nil, err
	}

	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return nil, courseNotFound(err, courseID)
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	if err := s.mentorRepo.RemoveCourse(ctx, mentorID, courseID); err != nil {
		if errors.Is(err, apperrors.ErrCourseNotAssigned) {
			return nil, apperrors.NewNotFoundError(err,
				fmt.Sprintf("%s is not in %s's course list", course.CourseName, mentor.DisplayName()))
		}
		return nil, fmt.Errorf("error removing course from mentor: %w", err)
	}

	metrics.Record(metrics.EventMentorCourseRemoved)
	s.logger.Info().Int64("mentorID", mentorID).Int64("courseID", courseID).Msg("Course removed from mentor")
	return course, nil
}

// ListMentors returns every mentor; an empty table is reported as not found
func (s *mentorServiceImpl) ListMentors(ctx context.Context) ([]*models.Mentor, error) {
	mentors, err := s.mentorRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving mentors: %w", err)
	}
	if len(mentors) == 0 {
		return nil, apperrors.NewNotFoundError(apperrors.ErrMentorNotFound, "No records found")
	}
	return mentors, nil
}

// GetMentorDetail implements MentorService
func (s *mentorServiceImpl) GetMentorDetail(ctx context.Context, mentorID int64) (*models.Mentor, error) {
	mentor, err := s.mentorRepo.GetByID(ctx, mentorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrMentorNotFound) {
			return nil, apperrors.NewNotFoundError(err, fmt.Sprintf("Mentor with id %d does not exist", mentorID))
		}
		return nil, fmt.Errorf("error retrieving mentor: %w", err)
	}
	return mentor, nil
}
