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

// usersEmailKey is the unique constraint on users.email in migrations/000001_init.up.sql
const usersEmailKey = "users_email_key"

var userColumns = []string{
	"id", "email", "password", "first_name", "last_name", "role_type",
	"is_active", "created_at", "updated_at", "last_login_at",
}

// UserRepository handles user database operations
type UserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName, &user.RoleType,
		&user.IsActive, &user.CreatedAt, &user.UpdatedAt, &user.LastLoginAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("userID", id).Msg("Error scanning user row")
		return nil, fmt.Errorf("error getting user by ID: %w", err)
	}
	return user, nil
}

// GetByEmail retrieves a user by email, compared case-insensitively
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns...).
		From("users").
		Where(squirrel.Expr("LOWER(email) = LOWER(?)", email)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user by email query: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Str("email", email).Msg("Error scanning user row")
		return nil, fmt.Errorf("error getting user by email: %w", err)
	}
	return user, nil
}

// CreateWithProfile inserts the user and, for mentors and students, the profile row.
// user.ID and the timestamps are filled on success.
func (r *UserRepository) CreateWithProfile(ctx context.Context, user *models.User) (int64, error) {
	var profileID int64
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := r.sb.Insert("users").
			Columns("email", "password", "first_name", "last_name", "role_type", "is_active").
			Values(user.Email, user.Password, user.FirstName, user.LastName, user.RoleType, user.IsActive).
			Suffix("RETURNING id, created_at, updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build create user query: %w", err)
		}

		if err := tx.QueryRow(ctx, sql, args...).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt); err != nil {
			if dberrors.IsDuplicateConstraintError(err, usersEmailKey) {
				return apperrors.ErrEmailAlreadyExists
			}
			return fmt.Errorf("error creating user: %w", err)
		}

		switch user.RoleType {
		case models.RoleMentor:
			profileID, err = createMentor(ctx, tx, r.sb, user.ID)
		case models.RoleStudent:
			profileID, err = createStudent(ctx, tx, r.sb, user.ID)
		}
		return err
	})
	if err != nil {
		return 0, err
	}

	logger.Info().Int64("userID", user.ID).Str("role", string(user.RoleType)).Int64("profileID", profileID).Msg("User created")
	return profileID, nil
}

// UpdateLastLogin stamps the user's last successful login
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID int64) error {
	sql, args, err := r.sb.Update("users").
		Set("last_login_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update last login query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error updating last login: %w", err)
	}
	return nil
}
