package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lucasferr/cursada/internal/app/models/dto"
	"github.com/lucasferr/cursada/internal/app/services"
	"github.com/lucasferr/cursada/internal/middleware"
)

// AssignmentController handles instructor assignment operations
type AssignmentController struct {
	assignmentService services.AssignmentService
}

// NewAssignmentController creates a new AssignmentController
func NewAssignmentController(assignmentService services.AssignmentService) *AssignmentController {
	return &AssignmentController{assignmentService: assignmentService}
}

// AssignInstructor assigns an instructor to a course
// @Summary Assign an instructor to a course
// @Description The user must hold the INSTRUCTOR role and must not be enrolled in the course
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AssignInstructorRequest true "Course and instructor"
// @Success 201 {object} dto.APIResponse{data=dto.AssignmentResponse} "Instructor assigned"
// @Failure 403 {object} dto.ErrorResponse "User is not an instructor"
// @Failure 409 {object} dto.ErrorResponse "Already assigned or enrolled in the course"
// @Router /assignments [post]
func (c *AssignmentController) AssignInstructor(ctx *gin.Context) {
	var req dto.AssignInstructorRequest
	if !bindJSON(ctx, &req) {
		return
	}

	assignment, err := c.assignmentService.AssignInstructor(ctx.Request.Context(), req.CourseID, req.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.ToAssignmentResponse(assignment)))
}

// UnassignInstructor removes an instructor assignment
// @Summary Remove an instructor assignment
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Assignment removed"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Router /assignments/{id} [delete]
func (c *AssignmentController) UnassignInstructor(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.assignmentService.UnassignInstructor(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Assignment removed"}))
}

// ListAssignments lists every instructor assignment
// @Summary List instructor assignments
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.AssignmentResponse} "Assignments"
// @Router /assignments [get]
func (c *AssignmentController) ListAssignments(ctx *gin.Context) {
	assignments, err := c.assignmentService.ListAssignments(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.ToAssignmentResponses(assignments)))
}

// GetMyCourses lists the courses the calling instructor teaches
// @Summary List own teaching assignments
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseResponse} "Courses"
// @Router /assignments/me [get]
func (c *AssignmentController) GetMyCourses(ctx *gin.Context) {
	caller, ok := middleware.Caller(ctx)
	if !ok {
		detail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
		return
	}

	courses, err := c.assignmentService.CoursesOfInstructor(ctx.Request.Context(), caller.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.ToCourseResponses(courses)))
}
