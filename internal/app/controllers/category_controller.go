package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lucasferr/cursada/internal/app/models"
	"github.com/lucasferr/cursada/internal/app/models/dto"
	"github.com/lucasferr/cursada/internal/app/services"
	"github.com/lucasferr/cursada/internal/middleware"
)

// CategoryController handles category operations
type CategoryController struct {
	categoryService services.CategoryService
}

// NewCategoryController creates a new CategoryController
func NewCategoryController(categoryService services.CategoryService) *CategoryController {
	return &CategoryController{categoryService: categoryService}
}

// CreateCategory handles category creation
// @Summary Create a category
// @Description Creates a new course category with a unique name
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CategoryRequest true "Category information"
// @Success 201 {object} dto.APIResponse{data=dto.CategoryResponse} "Category created"
// @Failure 409 {object} dto.ErrorResponse "Category already exists"
// @Router /categories [post]
func (c *CategoryController) CreateCategory(ctx *gin.Context) {
	var req dto.CategoryRequest
	if !bindJSON(ctx, &req) {
		return
	}

	category := &models.Category{Name: req.Name, ImageURL: req.ImageURL}
	created, err := c.categoryService.CreateCategory(ctx.Request.Context(), category)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.ToCategoryResponse(created)))
}

// GetAllCategories lists every category
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.CategoryResponse} "Categories"
// @Router /categories [get]
func (c *CategoryController) GetAllCategories(ctx *gin.Context) {
	categories, err := c.categoryService.GetAllCategories(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.ToCategoryResponses(categories)))
}

// GetCategory retrieves a category by ID
// @Summary Get category by ID
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} dto.APIResponse{data=dto.CategoryResponse} "Category"
// @Failure 404 {object} dto.ErrorResponse "Category not found"
// @Router /categories/{id} [get]
func (c *CategoryController) GetCategory(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	category, err := c.categoryService.GetCategory(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.ToCategoryResponse(category)))
}

// UpdateCategory updates a category
// @Summary Update a category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Param request body dto.CategoryRequest true "Category information"
// @Success 200 {object} dto.APIResponse{data=dto.CategoryResponse} "Category updated"
// @Failure 404 {object} dto.ErrorResponse "Category not found"
// @Router /categories/{id} [put]
func (c *CategoryController) UpdateCategory(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CategoryRequest
	if !bindJSON(ctx, &req) {
		return
	}

	category := &models.Category{ID: id, Name: req.Name, ImageURL: req.ImageURL}
	updated, err := c.categoryService.UpdateCategory(ctx.Request.Context(), category)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.ToCategoryResponse(updated)))
}

// DeleteCategory deletes a category
// @Summary Delete a category
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Category deleted"
// @Failure 404 {object} dto.ErrorResponse "Category not found"
// @Router /categories/{id} [delete]
func (c *CategoryController) DeleteCategory(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.categoryService.DeleteCategory(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Category deleted"}))
}
