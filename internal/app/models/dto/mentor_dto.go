package dto

import "github.com/yigit/lmsadmin/internal/app/models"

// CourseMentorRequest lists the course ids to add to a mentor's bucket
type CourseMentorRequest struct {
	Course []int64 `json:"course" binding:"required,min=1,dive,gt=0"`
}

// MentorResponse mirrors the mentor row: id, user reference and bucket
type MentorResponse struct {
	ID     int64   `json:"id"`
	Mentor int64   `json:"mentor"`
	Course []int64 `json:"course"`
}

// MentorDetailResponse merges the mentor row with its person record in one flat object
type MentorDetailResponse struct {
	ID        int64   `json:"id"`
	Mentor    int64   `json:"mentor"`
	Course    []int64 `json:"course"`
	Email     string  `json:"email"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	FullName  string  `json:"full_name"`
	IsActive  bool    `json:"is_active"`
}

// NewMentorResponse converts a mentor model
func NewMentorResponse(m *models.Mentor) MentorResponse {
	courses := m.CourseIDs
	if courses == nil {
		courses = []int64{}
	}
	return MentorResponse{ID: m.ID, Mentor: m.UserID, Course: courses}
}

// NewMentorDetailResponse merges the mentor with its loaded user relation
func NewMentorDetailResponse(m *models.Mentor) MentorDetailResponse {
	base := NewMentorResponse(m)
	detail := MentorDetailResponse{
		ID:     base.ID,
		Mentor: base.Mentor,
		Course: base.Course,
	}
	if m.User != nil {
		detail.Email = m.User.Email
		detail.FirstName = m.User.FirstName
		detail.LastName = m.User.LastName
		detail.FullName = m.User.FullName()
		detail.IsActive = m.User.IsActive
	}
	return detail
}
