package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nemopss/spendwise/models"
)

// GetCategories godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {array} models.Category
// @Failure 500 {object} models.ErrorResponse
// @Router /api/categories [get]
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// CreateCategory godoc
// @Summary Add a category
// @Tags categories
// @Accept json
// @Produce json
// @Param category body models.CreateCategory true "Category"
// @Success 201 {object} models.Category
// @Failure 400 {object} models.ErrorResponse
// @Router /api/categories [post]
// @Router /api/categories/add [post]
func (h *Handler) CreateCategory(c *gin.Context) {
	var in models.CreateCategory
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}

	category, err := h.categories.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}
