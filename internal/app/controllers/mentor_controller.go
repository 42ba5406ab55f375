package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/lmsadmin/internal/app/models/dto"
	"github.com/yigit/lmsadmin/internal/app/services"
	"github.com/yigit/lmsadmin/internal/middleware"
	"github.com/yigit/lmsadmin/internal/pkg/helpers"
)

// MentorController handles mentor listing and course bucket endpoints
type MentorController struct {
	mentorService services.MentorService
}

// NewMentorController creates a new MentorController
func NewMentorController(mentorService services.MentorService) *MentorController {
	return &MentorController{
		mentorService: mentorService,
	}
}

// AddCourseToMentor adds courses to a mentor's bucket, all of them or none
// @Summary Assign courses to a mentor
// @Tags mentors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param mentor_id path int true "Mentor ID"
// @Param request body dto.CourseMentorRequest true "Course ids"
// @Success 200 {object} dto.APIResponse "New course added to <mentor>'s course list"
// @Failure 400 {object} dto.APIResponse "This course is already added"
// @Failure 404 {object} dto.APIResponse "Mentor id does not exist"
// @Router /course-mentor/{mentor_id}/ [put]
func (c *MentorController) AddCourseToMentor(ctx *gin.Context) {
	mentorID, err := helpers.ParseIDParam(ctx, "mentor_id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.CourseMentorRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	mentor, err := c.mentorService.AddCoursesToMentor(ctx.Request.Context(), mentorID, req.Course)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Message(fmt.Sprintf("New course added to %s's course list", mentor.DisplayName())))
}

// RemoveCourseFromMentor removes one course from a mentor's bucket
// @Summary Unassign a course from a mentor
// @Tags mentors
// @Produce json
// @Security BearerAuth
// @Param mentor_id path int true "Mentor ID"
// @Param course_id path int true "Course ID"
// @Success 200 {object} dto.APIResponse "<course> is removed"
// @Failure 404 {object} dto.APIResponse "Mentor, course or assignment not found"
// @Router /course-mentor/{mentor_id}/{course_id}/ [delete]
func (c *MentorController) RemoveCourseFromMentor(ctx *gin.Context) {
	mentorID, err := helpers.ParseIDParam(ctx, "mentor_id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	courseID, err := helpers.ParseIDParam(ctx, "course_id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	course, err := c.mentorService.RemoveCourseFromMentor(ctx.Request.Context(), mentorID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Message(fmt.Sprintf("%s is removed", course.CourseName)))
}

// ListMentors returns every mentor
// @Summary List mentors
// @Tags mentors
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{response=[]dto.MentorResponse}
// @Failure 404 {object} dto.APIResponse "No records found"
// @Router /all-mentors/ [get]
func (c *MentorController) ListMentors(ctx *gin.Context) {
	mentors, err := c.mentorService.ListMentors(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	out := make([]dto.MentorResponse, 0, len(mentors))
	for _, m := range mentors {
		out = append(out, dto.NewMentorResponse(m))
	}
	ctx.JSON(http.StatusOK, dto.Data(out))
}

// GetMentorDetail returns the mentor merged with its person record
// @Summary Mentor details
// @Tags mentors
// @Produce json
// @Security BearerAuth
// @Param mentor_id path int true "Mentor ID"
// @Success 200 {object} dto.APIResponse{response=dto.MentorDetailResponse}
// @Failure 404 {object} dto.APIResponse "Mentor with id <id> does not exist"
// @Router /mentor-details/{mentor_id}/ [get]
func (c *MentorController) GetMentorDetail(ctx *gin.Context) {
	mentorID, err := helpers.ParseIDParam(ctx, "mentor_id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	mentor, err := c.mentorService.GetMentorDetail(ctx.Request.Context(), mentorID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Data(dto.NewMentorDetailResponse(mentor)))
}
