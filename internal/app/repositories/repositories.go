package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository                *UserRepository
	CourseRepository              *CourseRepository
	MentorRepository              *MentorRepository
	StudentRepository             *StudentRepository
	StudentCourseMentorRepository *StudentCourseMentorRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:                NewUserRepository(db),
		CourseRepository:              NewCourseRepository(db),
		MentorRepository:              NewMentorRepository(db),
		StudentRepository:             NewStudentRepository(db),
		StudentCourseMentorRepository: NewStudentCourseMentorRepository(db),
	}
}
