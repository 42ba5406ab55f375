package dto

import (
	"time"

	"github.com/yigit/lmsadmin/internal/app/models"
)

// StudentCourseMentorRequest is the body of the mapping create endpoint
type StudentCourseMentorRequest struct {
	Student int64 `json:"student" binding:"required,gt=0"`
	Course  int64 `json:"course" binding:"required,gt=0"`
	Mentor  int64 `json:"mentor" binding:"required,gt=0"`
}

// StudentCourseMentorUpdateRequest changes the course and mentor of a record.
// Student is optional and keeps the current value when omitted.
type StudentCourseMentorUpdateRequest struct {
	Student *int64 `json:"student" binding:"omitempty,gt=0"`
	Course  int64  `json:"course" binding:"required,gt=0"`
	Mentor  int64  `json:"mentor" binding:"required,gt=0"`
}

// StudentCourseMentorReadResponse is the expanded read serialization of a mapping record
type StudentCourseMentorReadResponse struct {
	ID           int64     `json:"id"`
	Student      int64     `json:"student"`
	StudentName  string    `json:"student_name"`
	StudentEmail string    `json:"student_email"`
	Course       int64     `json:"course"`
	CourseName   string    `json:"course_name"`
	Mentor       int64     `json:"mentor"`
	MentorName   string    `json:"mentor_name"`
	MentorEmail  string    `json:"mentor_email"`
	CreatedBy    *int64    `json:"created_by,omitempty"`
	UpdatedBy    *int64    `json:"updated_by,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewStudentCourseMentorReadResponses converts mapping views, never returning nil
func NewStudentCourseMentorReadResponses(views []*models.StudentCourseMentorView) []StudentCourseMentorReadResponse {
	out := make([]StudentCourseMentorReadResponse, 0, len(views))
	for _, v := range views {
		out = append(out, StudentCourseMentorReadResponse{
			ID:           v.ID,
			Student:      v.StudentID,
			StudentName:  v.StudentName,
			StudentEmail: v.StudentEmail,
			Course:       v.CourseID,
			CourseName:   v.CourseName,
			Mentor:       v.MentorID,
			MentorName:   v.MentorName,
			MentorEmail:  v.MentorEmail,
			CreatedBy:    v.CreatedBy,
			UpdatedBy:    v.UpdatedBy,
			CreatedAt:    v.CreatedAt,
			UpdatedAt:    v.UpdatedAt,
		})
	}
	return out
}
