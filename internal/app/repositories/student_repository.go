package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/lmsadmin/internal/app/models"
	"github.com/yigit/lmsadmin/internal/db"
	"github.com/yigit/lmsadmin/internal/pkg/apperrors"
	"github.com/yigit/lmsadmin/internal/pkg/dberrors"
	"github.com/yigit/lmsadmin/internal/pkg/logger"
)

// StudentRepository handles student database operations
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetByID retrieves a student with its user
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	sql, args, err := r.sb.Select("s.id", "s.user_id", "u.id", "u.email", "u.first_name", "u.last_name", "u.role_type", "u.is_active").
		From("students s").
		Join("users u ON u.id = s.user_id").
		Where(squirrel.Eq{"s.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student := &models.Student{User: &models.User{}}
	u := student.User
	err = r.db.QueryRow(ctx, sql, args...).Scan(&student.ID, &student.UserID, &u.ID, &u.Email, &u.FirstName, &u.LastName, &u.RoleType, &u.IsActive)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("studentID", id).Msg("Error scanning student row")
		return nil, fmt.Errorf("error getting student by ID: %w", err)
	}

	return student, nil
}

// createStudent inserts the student row of a freshly created user
func createStudent(ctx context.Context, q db.Querier, sb squirrel.StatementBuilderType, userID int64) (int64, error) {
	sql, args, err := sb.Insert("students").
		Columns("user_id").
		Values(userID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create student query: %w", err)
	}

	var id int64
	if err := q.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("error creating student: %w", err)
	}
	return id, nil
}
