package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/lmsadmin/internal/app/models"
	"github.com/yigit/lmsadmin/internal/db"
	"github.com/yigit/lmsadmin/internal/pkg/apperrors"
	"github.com/yigit/lmsadmin/internal/pkg/dberrors"
	"github.com/yigit/lmsadmin/internal/pkg/logger"
)

// MentorRepository handles mentors and the mentor_courses bucket table
type MentorRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewMentorRepository creates a new MentorRepository
func NewMentorRepository(db *pgxpool.Pool) *MentorRepository {
	return &MentorRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// selectMentors joins each mentor with its user and aggregates the bucket into an array
func (r *MentorRepository) selectMentors() squirrel.SelectBuilder {
	return r.sb.Select(
		"m.id", "m.user_id",
		"u.id", "u.email", "u.first_name", "u.last_name", "u.role_type", "u.is_active", "u.created_at", "u.updated_at",
		"COALESCE(array_agg(mc.course_id ORDER BY mc.course_id) FILTER (WHERE mc.course_id IS NOT NULL), '{}')",
	).
		From("mentors m").
		Join("users u ON u.id = m.user_id").
		LeftJoin("mentor_courses mc ON mc.mentor_id = m.id").
		GroupBy("m.id", "u.id")
}

func scanMentor(row pgx.Row) (*models.Mentor, error) {
	mentor := &models.Mentor{User: &models.User{}}
	u := mentor.User
	err := row.Scan(
		&mentor.ID, &mentor.UserID,
		&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.RoleType, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
		&mentor.CourseIDs,
	)
	if err != nil {
		return nil, err
	}
	return mentor, nil
}

// GetByID retrieves a mentor with its user and bucket
func (r *MentorRepository) GetByID(ctx context.Context, id int64) (*models.Mentor, error) {
	sql, args, err := r.selectMentors().Where(squirrel.Eq{"m.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get mentor query: %w", err)
	}

	mentor, err := scanMentor(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrMentorNotFound
		}
		logger.Error().Err(err).Int64("mentorID", id).Msg("Error scanning mentor row")
		return nil, fmt.Errorf("error getting mentor by ID: %w", err)
	}

	return mentor, nil
}

// GetAll retrieves every mentor ordered by id
func (r *MentorRepository) GetAll(ctx context.Context) ([]*models.Mentor, error) {
	sql, args, err := r.selectMentors().OrderBy("m.id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get all mentors query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all mentors query")
		return nil, fmt.Errorf("error querying mentors: %w", err)
	}
	defer rows.Close()

	mentors := []*models.Mentor{}
	for rows.Next() {
		mentor, err := scanMentor(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning mentor row: %w", err)
		}
		mentors = append(mentors, mentor)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating mentor rows: %w", err)
	}

	return mentors, nil
}

// AssignCourses adds courseIDs to the mentor's bucket in one transaction. The first id that
// is already in the bucket aborts the whole call with ErrCourseAlreadyAssigned.
func (r *MentorRepository) AssignCourses(ctx context.Context, mentorID int64, courseIDs []int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		lockSQL, lockArgs, err := r.sb.Select("id").
			From("mentors").
			Where(squirrel.Eq{"id": mentorID}).
			Suffix("FOR UPDATE").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build lock mentor query: %w", err)
		}

		var id int64
		if err := tx.QueryRow(ctx, lockSQL, lockArgs...).Scan(&id); err != nil {
			if dberrors.IsNoRows(err) {
				return apperrors.ErrMentorNotFound
			}
			return fmt.Errorf("error locking mentor: %w", err)
		}

		for _, courseID := range courseIDs {
			assigned, err := r.hasCourse(ctx, tx, mentorID, courseID)
			if err != nil {
				return err
			}
			if assigned {
				logger.Info().Int64("mentorID", mentorID).Int64("courseID", courseID).Msg("Duplicate mentor course entry blocked")
				return apperrors.ErrCourseAlreadyAssigned
			}

			insertSQL, insertArgs, err := r.sb.Insert("mentor_courses").
				Columns("mentor_id", "course_id").
				Values(mentorID, courseID).
				ToSql()
			if err != nil {
				return fmt.Errorf("failed to build assign course query: %w", err)
			}

			if _, err := tx.Exec(ctx, insertSQL, insertArgs...); err != nil {
				if dberrors.IsForeignKeyError(err) {
					return apperrors.ErrCourseNotFound
				}
				if dberrors.IsDuplicateKeyError(err) {
					return apperrors.ErrCourseAlreadyAssigned
				}
				return fmt.Errorf("error assigning course %d: %w", courseID, err)
			}
		}
		return nil
	})
}

// RemoveCourse deletes one course from the bucket
func (r *MentorRepository) RemoveCourse(ctx context.Context, mentorID, courseID int64) error {
	sql, args, err := r.sb.Delete("mentor_courses").
		Where(squirrel.Eq{"mentor_id": mentorID, "course_id": courseID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build remove course query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("mentorID", mentorID).Int64("courseID", courseID).Msg("Error removing mentor course")
		return fmt.Errorf("error removing course from mentor: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotAssigned
	}

	return nil
}

// HasCourse reports whether courseID is in the mentor's bucket
func (r *MentorRepository) HasCourse(ctx context.Context, mentorID, courseID int64) (bool, error) {
	return r.hasCourse(ctx, r.db, mentorID, courseID)
}

func (r *MentorRepository) hasCourse(ctx context.Context, q db.Querier, mentorID, courseID int64) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("mentor_courses").
		Where(squirrel.Eq{"mentor_id": mentorID, "course_id": courseID}).
		Prefix("SELECT EXISTS (").Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build mentor course exists query: %w", err)
	}

	var exists bool
	if err := q.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking mentor course: %w", err)
	}
	return exists, nil
}

// createMentor inserts the mentor row of a freshly created user
func createMentor(ctx context.Context, q db.Querier, sb squirrel.StatementBuilderType, userID int64) (int64, error) {
	sql, args, err := sb.Insert("mentors").
		Columns("user_id").
		Values(userID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create mentor query: %w", err)
	}

	var id int64
	if err := q.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("error creating mentor: %w", err)
	}
	return id, nil
}
