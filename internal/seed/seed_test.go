package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/lmsadmin/internal/app/models"
	"github.com/yigit/lmsadmin/internal/config"
	"github.com/yigit/lmsadmin/internal/pkg/apperrors"
	"github.com/yigit/lmsadmin/internal/pkg/auth"
)

type stubUserRepo struct {
	users     map[string]*models.User
	lookupErr error
	created   []*models.User
}

func (r *stubUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if r.lookupErr != nil {
		return nil, r.lookupErr
	}
	if u, ok := r.users[email]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *stubUserRepo) CreateWithProfile(_ context.Context, user *models.User) (int64, error) {
	user.ID = int64(len(r.created) + 1)
	r.created = append(r.created, user)
	return 0, nil
}

func (r *stubUserRepo) UpdateLastLogin(context.Context, int64) error { return nil }

func adminConfig(email string) *config.Config {
	cfg := &config.Config{}
	cfg.Admin.Email = email
	cfg.Admin.Password = "admin-password"
	cfg.Admin.FirstName = "Site"
	cfg.Admin.LastName = "Admin"
	return cfg
}

func TestCreateDefaultAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("creates admin when absent", func(t *testing.T) {
		repo := &stubUserRepo{users: map[string]*models.User{}}

		err := CreateDefaultAdmin(ctx, repo, adminConfig(" Admin@LMS.local "), zerolog.Nop())
		require.NoError(t, err)

		require.Len(t, repo.created, 1)
		admin := repo.created[0]
		assert.Equal(t, "admin@lms.local", admin.Email)
		assert.Equal(t, models.RoleAdmin, admin.RoleType)
		assert.True(t, admin.IsActive)
		assert.NotEqual(t, "admin-password", admin.Password)
		assert.True(t, auth.CheckPassword(admin.Password, "admin-password"))
	})

	t.Run("skips existing admin", func(t *testing.T) {
		repo := &stubUserRepo{users: map[string]*models.User{
			"admin@lms.local": {ID: 7, Email: "admin@lms.local", RoleType: models.RoleAdmin},
		}}

		require.NoError(t, CreateDefaultAdmin(ctx, repo, adminConfig("admin@lms.local"), zerolog.Nop()))
		assert.Empty(t, repo.created)
	})

	t.Run("no admin configured", func(t *testing.T) {
		repo := &stubUserRepo{users: map[string]*models.User{}}

		require.NoError(t, CreateDefaultAdmin(ctx, repo, &config.Config{}, zerolog.Nop()))
		assert.Empty(t, repo.created)
	})

	t.Run("lookup failure is returned", func(t *testing.T) {
		boom := errors.New("connection refused")
		repo := &stubUserRepo{users: map[string]*models.User{}, lookupErr: boom}

		err := CreateDefaultAdmin(ctx, repo, adminConfig("admin@lms.local"), zerolog.Nop())
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
		assert.Empty(t, repo.created)
	})
}
