package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/lmsadmin/internal/app/models/dto"
	"github.com/yigit/lmsadmin/internal/app/services"
	"github.com/yigit/lmsadmin/internal/middleware"
	"github.com/yigit/lmsadmin/internal/pkg/helpers"
)

// StudentCourseMentorController handles the mapping record endpoints
type StudentCourseMentorController struct {
	mappingService services.StudentCourseMentorService
}

// NewStudentCourseMentorController creates a new StudentCourseMentorController
func NewStudentCourseMentorController(mappingService services.StudentCourseMentorService) *StudentCourseMentorController {
	return &StudentCourseMentorController{
		mappingService: mappingService,
	}
}

// ListMappings returns every mapping record with expanded names
// @Summary List student course mentor records
// @Tags mappings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{response=[]dto.StudentCourseMentorReadResponse}
// @Router /student-course-mentor/ [get]
func (c *StudentCourseMentorController) ListMappings(ctx *gin.Context) {
	views, err := c.mappingService.ListMappings(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Data(dto.NewStudentCourseMentorReadResponses(views)))
}

// CreateMapping links a student to a course taught by a mentor
// @Summary Create a student course mentor record
// @Tags mappings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.StudentCourseMentorRequest true "Student, course and mentor ids"
// @Success 200 {object} dto.APIResponse "Record added"
// @Failure 400 {object} dto.APIResponse "Unknown or missing references"
// @Failure 404 {object} dto.APIResponse "<course> is not in <mentor>'s bucket"
// @Router /student-course-mentor/ [post]
func (c *StudentCourseMentorController) CreateMapping(ctx *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(ctx)

	var req dto.StudentCourseMentorRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if _, err := c.mappingService.CreateMapping(ctx.Request.Context(), principal.UserID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Message("Record added"))
}

// UpdateMapping changes an existing mapping record
// @Summary Update a student course mentor record
// @Tags mappings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param record_id path int true "Record ID"
// @Param request body dto.StudentCourseMentorUpdateRequest true "Course and mentor ids, student optional"
// @Success 200 {object} dto.APIResponse "Record updated"
// @Failure 404 {object} dto.APIResponse "record with id <id> does not exist, or course not in bucket"
// @Router /student-course-mentor/{record_id}/ [put]
func (c *StudentCourseMentorController) UpdateMapping(ctx *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(ctx)

	recordID, err := helpers.ParseIDParam(ctx, "record_id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.StudentCourseMentorUpdateRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if _, err := c.mappingService.UpdateMapping(ctx.Request.Context(), principal.UserID, recordID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Message("Record updated"))
}
