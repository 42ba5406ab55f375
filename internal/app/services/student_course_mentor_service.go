package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/lmsadmin/internal/app/models"
	"github.com/yigit/lmsadmin/internal/app/models/dto"
	"github.com/yigit/lmsadmin/internal/app/repositories"
	"github.com/yigit/lmsadmin/internal/metrics"
	"github.com/yigit/lmsadmin/internal/pkg/apperrors"
)

// StudentCourseMentorService manages the student/course/mentor mapping records
type StudentCourseMentorService interface {
	ListMappings(ctx context.Context) ([]*models.StudentCourseMentorView, error)
	CreateMapping(ctx context.Context, actorID int64, req *dto.StudentCourseMentorRequest) (*models.StudentCourseMentor, error)
	UpdateMapping(ctx context.Context, actorID, recordID int64, req *dto.StudentCourseMentorUpdateRequest) (*models.StudentCourseMentor, error)
}

type studentCourseMentorServiceImpl struct {
	mappingRepo repositories.IStudentCourseMentorRepository
	studentRepo repositories.IStudentRepository
	courseRepo  repositories.ICourseRepository
	mentorRepo  repositories.IMentorRepository
	logger      zerolog.Logger
}

// NewStudentCourseMentorService creates a new mapping service instance
func NewStudentCourseMentorService(
	mappingRepo repositories.IStudentCourseMentorRepository,
	studentRepo repositories.IStudentRepository,
	courseRepo repositories.ICourseRepository,
	mentorRepo repositories.IMentorRepository,
	logger zerolog.Logger,
) StudentCourseMentorService {
	return &studentCourseMentorServiceImpl{
		mappingRepo: mappingRepo,
		studentRepo: studentRepo,
		courseRepo:  courseRepo,
		mentorRepo:  mentorRepo,
		logger:      logger,
	}
}

func invalidPK(id int64) string {
	return fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id)
}

// resolveReferences loads the referenced rows, collecting one field error per unknown id,
// and then asks the mentor repository whether the course is in the mentor's bucket.
func (s *studentCourseMentorServiceImpl) resolveReferences(ctx context.Context, studentID, courseID, mentorID int64) error {
	var fieldErr *apperrors.CustomError
	addField := func(field string, id int64) {
		if fieldErr == nil {
			fieldErr = &apperrors.CustomError{Err: apperrors.ErrValidationFailed, Message: "Invalid reference"}
		}
		fieldErr.WithField(field, invalidPK(id))
	}

	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		if !errors.Is(err, apperrors.ErrStudentNotFound) {
			return fmt.Errorf("error retrieving student: %w", err)
		}
		addField("student", studentID)
	}

	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrCourseNotFound) {
			return fmt.Errorf("error retrieving course: %w", err)
		}
		addField("course", courseID)
	}

	mentor, err := s.mentorRepo.GetByID(ctx, mentorID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrMentorNotFound) {
			return fmt.Errorf("error retrieving mentor: %w", err)
		}
		addField("mentor", mentorID)
	}

	if fieldErr != nil {
		return fieldErr
	}

	inBucket, err := s.mentorRepo.HasCourse(ctx, mentor.ID, course.ID)
	if err != nil {
		return fmt.Errorf("error checking mentor bucket: %w", err)
	}
	if !inBucket {
		metrics.Record(metrics.EventMappingBucketViolation)
		return apperrors.NewCustomError(apperrors.ErrCourseNotInMentorBucket,
			fmt.Sprintf("%s is not in %s's bucket", course.CourseName, mentor.DisplayName()))
	}
	return nil
}

// ListMappings implements StudentCourseMentorService
func (s *studentCourseMentorServiceImpl) ListMappings(ctx context.Context) ([]*models.StudentCourseMentorView, error) {
	views, err := s.mappingRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving mappings: %w", err)
	}
	return views, nil
}

// CreateMapping implements StudentCourseMentorService
func (s *studentCourseMentorServiceImpl) CreateMapping(ctx context.Context, actorID int64, req *dto.StudentCourseMentorRequest) (*models.StudentCourseMentor, error) {
	if err := s.resolveReferences(ctx, req.Student, req.Course, req.Mentor); err != nil {
		if errors.Is(err, apperrors.ErrCourseNotInMentorBucket) {
			s.logger.Info().Int64("courseID", req.Course).Int64("mentorID", req.Mentor).Msg("Mapping rejected, course not in mentor bucket")
		}
		return nil, err
	}

	actor := actorRef(actorID)
	record := &models.StudentCourseMentor{
		StudentID: req.Student,
		CourseID:  req.Course,
		MentorID:  req.Mentor,
		CreatedBy: actor,
		UpdatedBy: actor,
	}
	if err := s.mappingRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("error creating mapping: %w", err)
	}

	metrics.Record(metrics.EventMappingCreated)
	s.logger.Info().Int64("recordID", record.ID).Int64("actorID", actorID).Msg("Mapping record created")
	return record, nil
}

// UpdateMapping implements StudentCourseMentorService
func (s *studentCourseMentorServiceImpl) UpdateMapping(ctx context.Context, actorID, recordID int64, req *dto.StudentCourseMentorUpdateRequest) (*models.StudentCourseMentor, error) {
	record, err := s.mappingRepo.GetByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, apperrors.ErrMappingNotFound) {
			return nil, apperrors.NewNotFoundError(err, fmt.Sprintf("record with id %d does not exist", recordID))
		}
		return nil, fmt.Errorf("error retrieving mapping: %w", err)
	}

	studentID := record.StudentID
	if req.Student != nil {
		studentID = *req.Student
	}

	if err := s.resolveReferences(ctx, studentID, req.Course, req.Mentor); err != nil {
		return nil, err
	}

	record.StudentID = studentID
	record.CourseID = req.Course
	record.MentorID = req.Mentor
	record.UpdatedBy = actorRef(actorID)
	if err := s.mappingRepo.Update(ctx, record); err != nil {
		if errors.Is(err, apperrors.ErrMappingNotFound) {
			return nil, apperrors.NewNotFoundError(err, fmt.Sprintf("record with id %d does not exist", recordID))
		}
		return nil, fmt.Errorf("error updating mapping: %w", err)
	}

	metrics.Record(metrics.EventMappingUpdated)
	s.logger.Info().Int64("recordID", record.ID).Int64("actorID", actorID).Msg("Mapping record updated")
	return record, nil
}

// actorRef returns nil for anonymous actors so the column stays NULL
func actorRef(actorID int64) *int64 {
	if actorID <= 0 {
		return nil
	}
	return &actorID
}
