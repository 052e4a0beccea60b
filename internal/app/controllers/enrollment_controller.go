package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lucasferr/cursada/internal/app/models/dto"
	"github.com/lucasferr/cursada/internal/app/services"
	"github.com/lucasferr/cursada/internal/middleware"
)

// EnrollmentController handles enrollment and grading operations
type EnrollmentController struct {
	enrollmentService services.EnrollmentService
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService services.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{enrollmentService: enrollmentService}
}

// Enroll enrolls the caller in a course
// @Summary Enroll in a course
// @Description Enrolls the authenticated student in a published course after checking prerequisites
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.EnrollRequest true "Course to enroll in"
// @Success 201 {object} dto.APIResponse{data=dto.EnrollmentResponse} "Enrolled"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Already enrolled, unpublished course or unmet prerequisites"
// @Failure 403 {object} dto.ErrorResponse "Administrators cannot enroll"
// @Router /enrollments [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	caller, ok := middleware.Caller(ctx)
	if !ok {
		detail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
		return
	}

	var req dto.EnrollRequest
	if !bindJSON(ctx, &req) {
		return
	}

	id, err := c.enrollmentService.Enroll(ctx.Request.Context(), caller, req.CourseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.EnrollmentResponse{
		ID:       id,
		UserID:   caller.UserID,
		CourseID: req.CourseID,
	}))
}

// Unenroll removes an enrollment (administrative)
// @Summary Remove an enrollment
// @Description Deletes an enrollment by its ID. Administrative operation.
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enrollment ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Enrollment removed"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Router /enrollments/{id} [delete]
func (c *EnrollmentController) Unenroll(ctx *gin.Context) {
	enrollmentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.enrollmentService.Unenroll(ctx.Request.Context(), enrollmentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Enrollment removed"}))
}

// GetMyEnrollments lists the caller's enrollments
// @Summary List own enrollments
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.EnrollmentResponse} "Enrollments"
// @Router /enrollments/me [get]
func (c *EnrollmentController) GetMyEnrollments(ctx *gin.Context) {
	caller, ok := middleware.Caller(ctx)
	if !ok {
		detail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
		return
	}

	enrollments, err := c.enrollmentService.CoursesOfStudent(ctx.Request.Context(), caller.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.ToEnrollmentResponses(enrollments)))
}

// ListEnrollments lists every enrollment
// @Summary List all enrollments
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.EnrollmentResponse} "Enrollments"
// @Router /enrollments [get]
func (c *EnrollmentController) ListEnrollments(ctx *gin.Context) {
	enrollments, err := c.enrollmentService.ListEnrollments(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.ToEnrollmentResponses(enrollments)))
}

// GetCourseStudents lists the students enrolled in a course
// @Summary List students of a course
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.EnrollmentResponse} "Enrollments"
// @Router /courses/{id}/students [get]
func (c *EnrollmentController) GetCourseStudents(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	enrollments, err := c.enrollmentService.StudentsOfCourse(ctx.Request.Context(), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.ToEnrollmentResponses(enrollments)))
}

// RecordGrade sets or clears a student's grade in a course
// @Summary Record a grade
// @Description Sets the student's grade for the course. A null grade clears it.
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.GradeRequest true "Student and grade"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Grade recorded"
// @Failure 404 {object} dto.ErrorResponse "Student not enrolled"
// @Router /courses/{id}/grades [put]
func (c *EnrollmentController) RecordGrade(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.GradeRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.enrollmentService.RecordGrade(ctx.Request.Context(), req.UserID, courseID, req.Grade); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Grade recorded"}))
}

// GetMyGrade returns the caller's grade in a course
// @Summary Get own grade in a course
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse "Grade, null when ungraded"
// @Failure 404 {object} dto.ErrorResponse "Not enrolled"
// @Router /courses/{id}/grades/me [get]
func (c *EnrollmentController) GetMyGrade(ctx *gin.Context) {
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

	grade, err := c.enrollmentService.GradeOf(ctx.Request.Context(), caller.UserID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(gin.H{"grade": grade}))
}
