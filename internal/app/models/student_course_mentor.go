package models

import "time"

// StudentCourseMentor records that a student is taught a course by a mentor.
// CourseID must belong to the mentor's bucket when the record is written.
type StudentCourseMentor struct {
	ID        int64     `json:"id" db:"id"`
	StudentID int64     `json:"student" db:"student_id"`
	CourseID  int64     `json:"course" db:"course_id"`
	MentorID  int64     `json:"mentor" db:"mentor_id"`
	CreatedBy *int64    `json:"created_by,omitempty" db:"created_by"`
	UpdatedBy *int64    `json:"updated_by,omitempty" db:"updated_by"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// StudentCourseMentorView is the expanded, read-only projection of a mapping record
type StudentCourseMentorView struct {
	StudentCourseMentor
	StudentName  string
	StudentEmail string
	CourseName   string
	MentorName   string
	MentorEmail  string
}
