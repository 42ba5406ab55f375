package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/lmsadmin/internal/app/models"
	"github.com/yigit/lmsadmin/internal/pkg/apperrors"
	"github.com/yigit/lmsadmin/internal/pkg/dberrors"
	"github.com/yigit/lmsadmin/internal/pkg/logger"
)

const coursesNameKey = "courses_course_name_key"

var courseColumns = []string{"id", "course_name", "created_at", "updated_at"}

// CourseRepository handles course database operations
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a course, failing with ErrCourseAlreadyExists on a name clash
func (r *CourseRepository) Create(ctx context.Context, courseName string) (*models.Course, error) {
	sql, args, err := r.sb.Insert("courses").
		Columns("course_name").
		Values(courseName).
		Suffix("RETURNING id, course_name, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build create course query: %w", err)
	}

	course := &models.Course{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&course.ID, &course.CourseName, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, coursesNameKey) {
			return nil, apperrors.ErrCourseAlreadyExists
		}
		logger.Error().Err(err).Str("courseName", courseName).Msg("Error executing create course query")
		return nil, fmt.Errorf("error creating course: %w", err)
	}

	return course, nil
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns...).
		From("courses").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course := &models.Course{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&course.ID, &course.CourseName, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error scanning course row")
		return nil, fmt.Errorf("error getting course by ID: %w", err)
	}

	return course, nil
}

// GetAll retrieves every course ordered by id
func (r *CourseRepository) GetAll(ctx context.Context) ([]*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns...).
		From("courses").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get all courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all courses query")
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		course := &models.Course{}
		if err := rows.Scan(&course.ID, &course.CourseName, &course.CreatedAt, &course.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}

	return courses, nil
}

// Update renames a course
func (r *CourseRepository) Update(ctx context.Context, id int64, courseName string) error {
	sql, args, err := r.sb.Update("courses").
		Set("course_name", courseName).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update course query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, coursesNameKey) {
			return apperrors.ErrCourseAlreadyExists
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error executing update course query")
		return fmt.Errorf("error updating course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// Delete removes a course and returns the deleted row. Bucket entries and mapping
// records referencing it are removed by ON DELETE CASCADE.
func (r *CourseRepository) Delete(ctx context.Context, id int64) (*models.Course, error) {
	sql, args, err := r.sb.Delete("courses").
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING id, course_name, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build delete course query: %w", err)
	}

	course := &models.Course{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&course.ID, &course.CourseName, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error executing delete course query")
		return nil, fmt.Errorf("error deleting course: %w", err)
	}

	return course, nil
}
