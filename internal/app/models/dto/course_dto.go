package dto

import "github.com/yigit/lmsadmin/internal/app/models"

// CourseRequest is the body of add-course and update-course
type CourseRequest struct {
	CourseName string `json:"course_name" binding:"required,max=255"`
}

// CourseResponse is the serialized form of a course
type CourseResponse struct {
	ID         int64  `json:"id"`
	CourseName string `json:"course_name"`
}

// NewCourseResponses converts a course list, never returning nil
func NewCourseResponses(courses []*models.Course) []CourseResponse {
	out := make([]CourseResponse, 0, len(courses))
	for _, c := range courses {
		out = append(out, CourseResponse{ID: c.ID, CourseName: c.CourseName})
	}
	return out
}
