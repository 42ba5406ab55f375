package repositories

import (
	"context"

	"github.com/yigit/lmsadmin/internal/app/models"
)

// ICourseRepository defines the course catalog operations
type ICourseRepository interface {
	Create(ctx context.Context, courseName string) (*models.Course, error)
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	GetAll(ctx context.Context) ([]*models.Course, error)
	Update(ctx context.Context, id int64, courseName string) error
	Delete(ctx context.Context, id int64) (*models.Course, error)
}

// IMentorRepository defines mentor and mentor bucket operations
type IMentorRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Mentor, error)
	GetAll(ctx context.Context) ([]*models.Mentor, error)
	// AssignCourses adds every course id to the bucket, or none of them
	AssignCourses(ctx context.Context, mentorID int64, courseIDs []int64) error
	RemoveCourse(ctx context.Context, mentorID, courseID int64) error
	HasCourse(ctx context.Context, mentorID, courseID int64) (bool, error)
}

// IStudentRepository defines student lookups
type IStudentRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Student, error)
}

// IStudentCourseMentorRepository defines mapping record operations
type IStudentCourseMentorRepository interface {
	GetAll(ctx context.Context) ([]*models.StudentCourseMentorView, error)
	GetByID(ctx context.Context, id int64) (*models.StudentCourseMentor, error)
	Create(ctx context.Context, record *models.StudentCourseMentor) error
	Update(ctx context.Context, record *models.StudentCourseMentor) error
}

// IUserRepository defines the interface for user-related database operations
type IUserRepository interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// CreateWithProfile inserts the user and its mentor or student row atomically and
	// returns the profile id (0 for admins).
	CreateWithProfile(ctx context.Context, user *models.User) (int64, error)
	UpdateLastLogin(ctx context.Context, userID int64) error
}
