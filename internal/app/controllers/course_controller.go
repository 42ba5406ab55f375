package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/lmsadmin/internal/app/models/dto"
	"github.com/yigit/lmsadmin/internal/app/services"
	"github.com/yigit/lmsadmin/internal/middleware"
	"github.com/yigit/lmsadmin/internal/pkg/apperrors"
	"github.com/yigit/lmsadmin/internal/pkg/helpers"
)

// CourseController handles the course catalog endpoints
type CourseController struct {
	courseService services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService) *CourseController {
	return &CourseController{
		courseService: courseService,
	}
}

// AddCourse handles course creation
// @Summary Add a course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CourseRequest true "Course name"
// @Success 201 {object} dto.APIResponse "<name> is added in course"
// @Failure 400 {object} dto.APIResponse "Validation error or <name> is already present"
// @Failure 401 {object} dto.APIResponse "Unauthenticated"
// @Failure 403 {object} dto.APIResponse "Not an admin"
// @Router /add-course/ [post]
func (c *CourseController) AddCourse(ctx *gin.Context) {
	var req dto.CourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	course, err := c.courseService.AddCourse(ctx.Request.Context(), req.CourseName)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.Message(fmt.Sprintf("%s is added in course", course.CourseName)))
}

// ListCourses returns every course
// @Summary List courses
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{response=[]dto.CourseResponse}
// @Router /all-courses/ [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	courses, err := c.courseService.ListCourses(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Data(dto.NewCourseResponses(courses)))
}

// UpdateCourse renames a course
// @Summary Rename a course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.CourseRequest true "New course name"
// @Success 200 {object} dto.APIResponse "Course is updated"
// @Failure 400 {object} dto.APIResponse "Validation error or <name> is already present"
// @Failure 404 {object} dto.APIResponse "Course with given id does not exist"
// @Router /update-course/{id}/ [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	id, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.CourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if _, err := c.courseService.UpdateCourse(ctx.Request.Context(), id, req.CourseName); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Message("Course is updated"))
}

// DeleteCourse deletes a course. A missing id answers 200 with a not found message,
// matching the behaviour existing clients depend on.
// @Summary Delete a course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse "<name> is deleted, or Course not found with this id"
// @Router /delete-course/{id}/ [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	course, err := c.courseService.DeleteCourse(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			msg, _ := apperrors.MessageOf(err)
			ctx.JSON(http.StatusOK, dto.Message(msg))
			return
		}
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Message(fmt.Sprintf("%s is deleted", course.CourseName)))
}
