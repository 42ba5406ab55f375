//go:build integration

package repositories

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/yigit/lmsadmin/internal/app/migrations"
	"github.com/yigit/lmsadmin/internal/app/models"
	"github.com/yigit/lmsadmin/internal/pkg/apperrors"
)

// setupTestDB starts a throwaway Postgres, applies the migrations and returns a pool on it
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(
		ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("lms_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	migrationURL := "pgx5://" + strings.TrimPrefix(dsn, "postgres://")
	require.NoError(t, migrations.NewMigrator(migrationURL, zerolog.Nop()).MigrateFromDirectory("../../../migrations"))

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pool
}

func newUser(email string, role models.RoleType) *models.User {
	return &models.User{
		Email:     email,
		Password:  "$2a$10$abcdefghijklmnopqrstuu",
		FirstName: strings.Split(email, "@")[0],
		LastName:  "Tester",
		RoleType:  role,
		IsActive:  true,
	}
}

func TestRepositoriesIntegration(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories(setupTestDB(t))

	admin := newUser("admin@lms.test", models.RoleAdmin)
	profileID, err := repos.UserRepository.CreateWithProfile(ctx, admin)
	require.NoError(t, err)
	assert.Zero(t, profileID)

	t.Run("users", func(t *testing.T) {
		_, err := repos.UserRepository.CreateWithProfile(ctx, newUser("admin@lms.test", models.RoleStudent))
		assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)

		found, err := repos.UserRepository.GetByEmail(ctx, "Admin@LMS.test")
		require.NoError(t, err)
		assert.Equal(t, admin.ID, found.ID)
		assert.Nil(t, found.LastLoginAt)

		require.NoError(t, repos.UserRepository.UpdateLastLogin(ctx, admin.ID))
		found, err = repos.UserRepository.GetByID(ctx, admin.ID)
		require.NoError(t, err)
		assert.NotNil(t, found.LastLoginAt)

		_, err = repos.UserRepository.GetByID(ctx, 99999)
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})

	t.Run("courses", func(t *testing.T) {
		course, err := repos.CourseRepository.Create(ctx, "Chemistry")
		require.NoError(t, err)

		_, err = repos.CourseRepository.Create(ctx, "Chemistry")
		assert.ErrorIs(t, err, apperrors.ErrCourseAlreadyExists)

		require.NoError(t, repos.CourseRepository.Update(ctx, course.ID, "Organic Chemistry"))
		assert.ErrorIs(t, repos.CourseRepository.Update(ctx, 99999, "Nothing"), apperrors.ErrCourseNotFound)

		got, err := repos.CourseRepository.GetByID(ctx, course.ID)
		require.NoError(t, err)
		assert.Equal(t, "Organic Chemistry", got.CourseName)

		deleted, err := repos.CourseRepository.Delete(ctx, course.ID)
		require.NoError(t, err)
		assert.Equal(t, "Organic Chemistry", deleted.CourseName)

		_, err = repos.CourseRepository.Delete(ctx, course.ID)
		assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
	})

	t.Run("mentor bucket and mapping records", func(t *testing.T) {
		algebra, err := repos.CourseRepository.Create(ctx, "Algebra")
		require.NoError(t, err)
		physics, err := repos.CourseRepository.Create(ctx, "Physics")
		require.NoError(t, err)

		mentorUser := newUser("mark@lms.test", models.RoleMentor)
		mentorID, err := repos.UserRepository.CreateWithProfile(ctx, mentorUser)
		require.NoError(t, err)
		require.NotZero(t, mentorID)

		studentUser := newUser("sara@lms.test", models.RoleStudent)
		studentID, err := repos.UserRepository.CreateWithProfile(ctx, studentUser)
		require.NoError(t, err)
		require.NotZero(t, studentID)

		require.NoError(t, repos.MentorRepository.AssignCourses(ctx, mentorID, []int64{algebra.ID}))

		// Physics would be fine but Algebra is a duplicate: nothing is written.
		err = repos.MentorRepository.AssignCourses(ctx, mentorID, []int64{physics.ID, algebra.ID})
		assert.ErrorIs(t, err, apperrors.ErrCourseAlreadyAssigned)

		mentor, err := repos.MentorRepository.GetByID(ctx, mentorID)
		require.NoError(t, err)
		assert.Equal(t, []int64{algebra.ID}, mentor.CourseIDs)
		assert.Equal(t, mentorUser.ID, mentor.UserID)
		assert.Equal(t, "mark Tester", mentor.DisplayName())

		assert.ErrorIs(t, repos.MentorRepository.AssignCourses(ctx, 99999, []int64{algebra.ID}), apperrors.ErrMentorNotFound)

		student, err := repos.StudentRepository.GetByID(ctx, studentID)
		require.NoError(t, err)
		assert.Equal(t, studentUser.ID, student.UserID)

		rec := &models.StudentCourseMentor{
			StudentID: studentID,
			CourseID:  algebra.ID,
			MentorID:  mentorID,
			CreatedBy: &admin.ID,
			UpdatedBy: &admin.ID,
		}
		require.NoError(t, repos.StudentCourseMentorRepository.Create(ctx, rec))
		require.NotZero(t, rec.ID)

		views, err := repos.StudentCourseMentorRepository.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, "sara Tester", views[0].StudentName)
		assert.Equal(t, "Algebra", views[0].CourseName)
		assert.Equal(t, "mark Tester", views[0].MentorName)

		missing := &models.StudentCourseMentor{ID: 99999, StudentID: studentID, CourseID: algebra.ID, MentorID: mentorID}
		assert.ErrorIs(t, repos.StudentCourseMentorRepository.Update(ctx, missing), apperrors.ErrMappingNotFound)

		require.NoError(t, repos.MentorRepository.RemoveCourse(ctx, mentorID, algebra.ID))
		has, err := repos.MentorRepository.HasCourse(ctx, mentorID, algebra.ID)
		require.NoError(t, err)
		assert.False(t, has)

		// Deleting a course cascades to the mapping records that reference it.
		_, err = repos.CourseRepository.Delete(ctx, algebra.ID)
		require.NoError(t, err)
		_, err = repos.StudentCourseMentorRepository.GetByID(ctx, rec.ID)
		assert.ErrorIs(t, err, apperrors.ErrMappingNotFound)
	})
}
