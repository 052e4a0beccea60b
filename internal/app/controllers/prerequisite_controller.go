package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lucasferr/cursada/internal/app/models/dto"
	"github.com/lucasferr/cursada/internal/app/services"
	"github.com/lucasferr/cursada/internal/middleware"
)

// PrerequisiteController handles prerequisite edge operations
type PrerequisiteController struct {
	prerequisiteService services.PrerequisiteService
}

// NewPrerequisiteController creates a new PrerequisiteController
func NewPrerequisiteController(prerequisiteService services.PrerequisiteService) *PrerequisiteController {
	return &PrerequisiteController{prerequisiteService: prerequisiteService}
}

// AddPrerequisite registers a prerequisite for a course
// @Summary Add a prerequisite
// @Description Marks another course as required before enrolling in this one. Adding an existing edge succeeds without change.
// @Tags prerequisites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.AddPrerequisiteRequest true "Required course"
// @Success 201 {object} dto.APIResponse{data=dto.PrerequisiteResponse} "Prerequisite added"
// @Failure 400 {object} dto.ErrorResponse "A course cannot require itself"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Edge would create a cycle"
// @Router /courses/{id}/prerequisites [post]
func (c *PrerequisiteController) AddPrerequisite(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.AddPrerequisiteRequest
	if !bindJSON(ctx, &req) {
		return
	}

	alreadyExisted, err := c.prerequisiteService.AddPrerequisite(ctx.Request.Context(), courseID, req.RequiredCourseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	status := http.StatusCreated
	if alreadyExisted {
		status = http.StatusOK
	}

	ctx.JSON(status, dto.NewAPIResponse(dto.PrerequisiteResponse{
		CourseID:         courseID,
		RequiredCourseID: req.RequiredCourseID,
		AlreadyExisted:   alreadyExisted,
	}))
}

// RemovePrerequisite deletes a prerequisite edge
// @Summary Remove a prerequisite
// @Tags prerequisites
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param requiredId path int true "Required course ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Prerequisite removed"
// @Failure 404 {object} dto.ErrorResponse "Edge not found"
// @Router /courses/{id}/prerequisites/{requiredId} [delete]
func (c *PrerequisiteController) RemovePrerequisite(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	requiredID, ok := parseIDParam(ctx, "requiredId")
	if !ok {
		return
	}

	removed, err := c.prerequisiteService.RemovePrerequisite(ctx.Request.Context(), courseID, requiredID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if !removed {
		detail := dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Prerequisite not found")
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(detail))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Prerequisite removed"}))
}

// GetPrerequisites lists a course's prerequisites
// @Summary List prerequisites of a course
// @Tags prerequisites
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseResponse} "Required courses"
// @Router /courses/{id}/prerequisites [get]
func (c *PrerequisiteController) GetPrerequisites(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	required, err := c.prerequisiteService.PrerequisitesOf(ctx.Request.Context(), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.ToCourseResponses(required)))
}

// GetEligibility reports whether the caller meets a course's prerequisites
// @Summary Check own eligibility for a course
// @Description Lists the required courses the caller has not passed yet
// @Tags prerequisites
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.UnmetPrerequisitesResponse} "Eligibility"
// @Router /courses/{id}/prerequisites/eligibility [get]
func (c *PrerequisiteController) GetEligibility(ctx *gin.Context) {
	caller, ok := middleware.Caller(ctx)
	if !ok {
		detail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
		return
	}

	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	missing, err := c.prerequisiteService.UnmetPrerequisites(ctx.Request.Context(), caller.UserID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.UnmetPrerequisitesResponse{
		CourseID: courseID,
		Missing:  missing,
		Eligible: len(missing) == 0,
	}))
}

// GetDependentCourses lists the courses that require this one
// @Summary List courses requiring this course
// @Tags prerequisites
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseResponse} "Dependent courses"
// @Router /courses/{id}/dependents [get]
func (c *PrerequisiteController) GetDependentCourses(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	dependents, err := c.prerequisiteService.CoursesRequiringThis(ctx.Request.Context(), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.ToCourseResponses(dependents)))
}

// ListCoursesWithPrerequisites lists the courses that have prerequisites
// @Summary List courses that have prerequisites
// @Tags prerequisites
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseResponse} "Courses"
// @Router /prerequisites/courses [get]
func (c *PrerequisiteController) ListCoursesWithPrerequisites(ctx *gin.Context) {
	courses, err := c.prerequisiteService.CoursesWithPrerequisites(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.ToCourseResponses(courses)))
}
