package delivery

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"category_service/internal/domain"
	"category_service/internal/middleware"
	"category_service/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type CategoryHandler struct {
	useCase usecase.CategoryUseCase
	log     *logrus.Logger
}

func NewCategoryHandler(uc usecase.CategoryUseCase, logger *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *CategoryHandler) RegisterRoutes(router gin.IRouter) {
	categories := router.Group("/categories")
	{
		categories.POST("", h.CreateCategory)
		categories.GET("", h.ListCategories)
		categories.GET("/by-name", h.GetCategoryByName)
		categories.GET("/:id", h.GetCategoryByID)
		categories.PATCH("/:id", h.UpdateCategory)
		categories.DELETE("/:id", h.DeleteCategory)
	}
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var in domain.CreateCategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.log.Warnf("Handler: Failed to bind JSON for create category: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	created, err := h.useCase.CreateCategory(middleware.BearerToken(c), in)
	if err != nil {
		h.log.Warnf("Handler: Failed to create category '%s': %v", in.Name, err)
		RespondError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "Category created successfully", created)
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, ok := h.categoryID(c)
	if !ok {
		return
	}

	var in domain.UpdateCategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.log.Warnf("Handler: Failed to bind JSON for update category ID %d: %v", id, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	updated, err := h.useCase.UpdateCategory(middleware.BearerToken(c), id, in)
	if err != nil {
		h.log.Warnf("Handler: Failed to update category ID %d: %v", id, err)
		RespondError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Category updated successfully", updated)
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := h.categoryID(c)
	if !ok {
		return
	}

	if err := h.useCase.DeleteCategory(middleware.BearerToken(c), id); err != nil {
		h.log.Warnf("Handler: Failed to delete category ID %d: %v", id, err)
		RespondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *CategoryHandler) GetCategoryByID(c *gin.Context) {
	id, ok := h.categoryID(c)
	if !ok {
		return
	}

	category, err := h.useCase.GetCategoryByID(id)
	if err != nil {
		h.log.Warnf("Handler: Failed to get category by ID %d: %v", id, err)
		RespondError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Category retrieved successfully", category)
}

func (h *CategoryHandler) GetCategoryByName(c *gin.Context) {
	name := c.Query("name")

	category, err := h.useCase.GetCategoryByName(name)
	if err != nil {
		h.log.Warnf("Handler: Failed to get category by name '%s': %v", name, err)
		RespondError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Category retrieved successfully", category)
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	params, err := parseListParams(c)
	if err != nil {
		h.log.Warnf("Handler: Rejected list query: %v", err)
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	categories, err := h.useCase.ListCategories(params)
	if err != nil {
		h.log.Errorf("Handler: Failed to list categories: %v", err)
		RespondError(c, err)
		return
	}

	// A full page means there may be another one behind it.
	normalized := params.Normalize()
	SuccessResponse(c, http.StatusOK, "Categories retrieved successfully", PagedCategories{
		Items:       categories,
		Page:        normalized.Page,
		Limit:       normalized.Limit,
		HasNextPage: len(categories) == normalized.Limit,
	})
}

func (h *CategoryHandler) categoryID(c *gin.Context) (int, bool) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		h.log.Warnf("Handler: Invalid category ID parameter: %s", idStr)
		ErrorResponse(c, http.StatusBadRequest, "Invalid category ID format")
		return 0, false
	}
	return id, true
}

// parseListParams reads page, limit and the sort query parameter. Sort comes
// in as a JSON array of {orderBy, order} pairs, e.g.
// ?sort=[{"orderBy":"name","order":"ASC"}].
func parseListParams(c *gin.Context) (domain.ListParams, error) {
	params := domain.ListParams{}

	if pageStr := c.Query("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return params, fmt.Errorf("invalid value for query parameter 'page': %s", pageStr)
		}
		params.Page = page
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			return params, fmt.Errorf("invalid value for query parameter 'limit': %s", limitStr)
		}
		params.Limit = limit
	}
	if sortStr := c.Query("sort"); sortStr != "" {
		if err := json.Unmarshal([]byte(sortStr), &params.Sort); err != nil {
			return params, fmt.Errorf("invalid value for query parameter 'sort': %s", sortStr)
		}
	}
	return params, nil
}
