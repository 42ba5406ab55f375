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

var mappingColumns = []string{"id", "student_id", "course_id", "mentor_id", "created_by", "updated_by", "created_at", "updated_at"}

// StudentCourseMentorRepository handles student_course_mentors rows
type StudentCourseMentorRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentCourseMentorRepository creates a new StudentCourseMentorRepository
func NewStudentCourseMentorRepository(db *pgxpool.Pool) *StudentCourseMentorRepository {
	return &StudentCourseMentorRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetAll returns every mapping record expanded with student, course and mentor names
func (r *StudentCourseMentorRepository) GetAll(ctx context.Context) ([]*models.StudentCourseMentorView, error) {
	sql, args, err := r.sb.Select(
		"scm.id", "scm.student_id", "scm.course_id", "scm.mentor_id",
		"scm.created_by", "scm.updated_by", "scm.created_at", "scm.updated_at",
		"TRIM(su.first_name || ' ' || su.last_name)", "su.email",
		"c.course_name",
		"TRIM(mu.first_name || ' ' || mu.last_name)", "mu.email",
	).
		From("student_course_mentors scm").
		Join("students s ON s.id = scm.student_id").
		Join("users su ON su.id = s.user_id").
		Join("courses c ON c.id = scm.course_id").
		Join("mentors m ON m.id = scm.mentor_id").
		Join("users mu ON mu.id = m.user_id").
		OrderBy("scm.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get all mappings query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all mappings query")
		return nil, fmt.Errorf("error querying mappings: %w", err)
	}
	defer rows.Close()

	views := []*models.StudentCourseMentorView{}
	for rows.Next() {
		v := &models.StudentCourseMentorView{}
		if err := rows.Scan(
			&v.ID, &v.StudentID, &v.CourseID, &v.MentorID,
			&v.CreatedBy, &v.UpdatedBy, &v.CreatedAt, &v.UpdatedAt,
			&v.StudentName, &v.StudentEmail,
			&v.CourseName,
			&v.MentorName, &v.MentorEmail,
		); err != nil {
			return nil, fmt.Errorf("error scanning mapping row: %w", err)
		}
		views = append(views, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating mapping rows: %w", err)
	}

	return views, nil
}

// GetByID retrieves a mapping record
func (r *StudentCourseMentorRepository) GetByID(ctx context.Context, id int64) (*models.StudentCourseMentor, error) {
	sql, args, err := r.sb.Select(mappingColumns...).
		From("student_course_mentors").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get mapping query: %w", err)
	}

	rec := &models.StudentCourseMentor{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&rec.ID, &rec.StudentID, &rec.CourseID, &rec.MentorID,
		&rec.CreatedBy, &rec.UpdatedBy, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrMappingNotFound
		}
		logger.Error().Err(err).Int64("recordID", id).Msg("Error scanning mapping row")
		return nil, fmt.Errorf("error getting mapping by ID: %w", err)
	}

	return rec, nil
}

// Create inserts a mapping record and fills its id and timestamps
func (r *StudentCourseMentorRepository) Create(ctx context.Context, rec *models.StudentCourseMentor) error {
	sql, args, err := r.sb.Insert("student_course_mentors").
		Columns("student_id", "course_id", "mentor_id", "created_by", "updated_by").
		Values(rec.StudentID, rec.CourseID, rec.MentorID, rec.CreatedBy, rec.UpdatedBy).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create mapping query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		logger.Error().Err(err).Int64("studentID", rec.StudentID).Int64("courseID", rec.CourseID).Int64("mentorID", rec.MentorID).Msg("Error creating mapping")
		return fmt.Errorf("error creating mapping: %w", err)
	}
	return nil
}

// Update overwrites student, course and mentor of an existing record
func (r *StudentCourseMentorRepository) Update(ctx context.Context, rec *models.StudentCourseMentor) error {
	sql, args, err := r.sb.Update("student_course_mentors").
		SetMap(map[string]interface{}{
			"student_id": rec.StudentID,
			"course_id":  rec.CourseID,
			"mentor_id":  rec.MentorID,
			"updated_by": rec.UpdatedBy,
			"updated_at": squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": rec.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update mapping query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&rec.UpdatedAt); err != nil {
		if dberrors.IsNoRows(err) {
			return apperrors.ErrMappingNotFound
		}
		logger.Error().Err(err).Int64("recordID", rec.ID).Msg("Error updating mapping")
		return fmt.Errorf("error updating mapping: %w", err)
	}
	return nil
}
