package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lucasferr/cursada/internal/app/models"
	"github.com/lucasferr/cursada/internal/app/models/dto"
	"github.com/lucasferr/cursada/internal/app/services"
	"github.com/lucasferr/cursada/internal/middleware"
)

// CourseController handles course catalog operations
type CourseController struct {
	courseService services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService) *CourseController {
	return &CourseController{courseService: courseService}
}

// CreateCourse handles course creation
// @Summary Create a course
// @Description Creates a new course in the unpublished state
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCourseRequest true "Course information"
// @Success 201 {object} dto.APIResponse{data=dto.CourseResponse} "Course created"
// @Failure 404 {object} dto.ErrorResponse "Category not found"
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if !bindJSON(ctx, &req) {
		return
	}

	course := &models.Course{
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		VideoURL:    req.VideoURL,
	}

	created, err := c.courseService.CreateCourse(ctx.Request.Context(), course)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.ToCourseResponse(created)))
}

// GetPublishedCourses lists the published catalog
// @Summary List published courses
// @Description Returns published courses, optionally filtered by name
// @Tags courses
// @Produce json
// @Param name query string false "Filter by name, case-insensitive"
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseResponse} "Courses"
// @Router /courses [get]
func (c *CourseController) GetPublishedCourses(ctx *gin.Context) {
	courses, err := c.courseService.SearchCourses(ctx.Request.Context(), ctx.Query("name"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.ToCourseResponses(courses)))
}

// GetAllCourses lists every course including unpublished ones
// @Summary List all courses
// @Description Returns every course, published or not
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseResponse} "Courses"
// @Router /courses/all [get]
func (c *CourseController) GetAllCourses(ctx *gin.Context) {
	courses, err := c.courseService.GetAllCourses(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.ToCourseResponses(courses)))
}

// GetPopularCourses lists the most enrolled courses
// @Summary List popular courses
// @Description Returns published courses ordered by enrollment count
// @Tags courses
// @Produce json
// @Param limit query int false "Maximum results, default 10"
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseResponse} "Courses"
// @Router /courses/popular [get]
func (c *CourseController) GetPopularCourses(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	courses, err := c.courseService.GetPopularCourses(ctx.Request.Context(), limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.ToCourseResponses(courses)))
}

// GetCoursesByCategory lists the published courses in a category
// @Summary List courses by category
// @Tags courses
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseResponse} "Courses"
// @Failure 404 {object} dto.ErrorResponse "Category not found"
// @Router /categories/{id}/courses [get]
func (c *CourseController) GetCoursesByCategory(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	courses, err := c.courseService.GetCoursesByCategory(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.ToCourseResponses(courses)))
}

// GetCourse retrieves a course by ID
// @Summary Get course by ID
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse} "Course"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	course, err := c.courseService.GetCourse(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.ToCourseResponse(course)))
}

// UpdateCourse updates a course's editable fields
// @Summary Update a course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.UpdateCourseRequest true "Course information"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse} "Course updated"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateCourseRequest
	if !bindJSON(ctx, &req) {
		return
	}

	course := &models.Course{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		VideoURL:    req.VideoURL,
	}

	updated, err := c.courseService.UpdateCourse(ctx.Request.Context(), course)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.ToCourseResponse(updated)))
}

// PublishCourse makes a course visible and enrollable
// @Summary Publish a course
// @Description Publication is one-way; publishing an already published course is a no-op
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Course published"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id}/publish [post]
func (c *CourseController) PublishCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.courseService.PublishCourse(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Course published"}))
}

// DeleteCourse removes a course
// @Summary Delete a course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Course deleted"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.courseService.DeleteCourse(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Course deleted"}))
}

// UploadCourseImage uploads a course image
// @Summary Upload course image
// @Tags courses
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param image formData file true "Image file"
// @Success 200 {object} dto.APIResponse "Image uploaded"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id}/image [post]
func (c *CourseController) UploadCourseImage(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	file, err := ctx.FormFile("image")
	if err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Image file is required").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	url, err := c.courseService.UploadCourseImage(ctx.Request.Context(), id, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(gin.H{"imageUrl": url}))
}

// CreateSection adds a section to a course
// @Summary Create a section
// @Tags sections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.SectionRequest true "Section information"
// @Success 201 {object} dto.APIResponse{data=dto.SectionResponse} "Section created"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id}/sections [post]
func (c *CourseController) CreateSection(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.SectionRequest
	if !bindJSON(ctx, &req) {
		return
	}

	section := &models.Section{
		CourseID:    courseID,
		Title:       req.Title,
		Description: req.Description,
		VideoURL:    req.VideoURL,
	}

	created, err := c.courseService.CreateSection(ctx.Request.Context(), section)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.ToSectionResponse(created)))
}

// GetSections lists a course's sections
// @Summary List sections of a course
// @Tags sections
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.SectionResponse} "Sections"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id}/sections [get]
func (c *CourseController) GetSections(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	sections, err := c.courseService.GetSectionsByCourse(ctx.Request.Context(), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.ToSectionResponses(sections)))
}

// UpdateSection updates a section
// @Summary Update a section
// @Tags sections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Section ID"
// @Param request body dto.SectionRequest true "Section information"
// @Success 200 {object} dto.APIResponse{data=dto.SectionResponse} "Section updated"
// @Failure 404 {object} dto.ErrorResponse "Section not found"
// @Router /sections/{id} [put]
func (c *CourseController) UpdateSection(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.SectionRequest
	if !bindJSON(ctx, &req) {
		return
	}

	section := &models.Section{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		VideoURL:    req.VideoURL,
	}

	updated, err := c.courseService.UpdateSection(ctx.Request.Context(), section)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.ToSectionResponse(updated)))
}

// DeleteSection removes a section
// @Summary Delete a section
// @Tags sections
// @Produce json
// @Security BearerAuth
// @Param id path int true "Section ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Section deleted"
// @Failure 404 {object} dto.ErrorResponse "Section not found"
// @Router /sections/{id} [delete]
func (c *CourseController) DeleteSection(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.courseService.DeleteSection(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Section deleted"}))
}
