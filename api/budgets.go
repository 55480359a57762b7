package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nemopss/spendwise/models"
)

// GetBudgets godoc
// @Summary List the caller's budgets
// @Tags budgets
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.Budget
// @Failure 401 {object} models.ErrorResponse
// @Router /api/budgets [get]
func (h *Handler) GetBudgets(c *gin.Context) {
	budgets, err := h.budgets.List(c.Request.Context(), currentIdentity(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, budgets)
}

// CreateBudget godoc
// @Summary Create a monthly budget
// @Tags budgets
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param budget body models.CreateBudget true "Budget"
// @Success 201 {object} models.Budget
// @Failure 400 {object} models.ErrorResponse
// @Router /api/budgets [post]
func (h *Handler) CreateBudget(c *gin.Context) {
	var in models.CreateBudget
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}

	b, err := h.budgets.Create(c.Request.Context(), in, currentIdentity(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// UpdateBudget godoc
// @Summary Update a budget
// @Tags budgets
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Budget ID"
// @Param budget body models.UpdateBudget true "Fields to change"
// @Success 200 {object} models.Budget
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/budgets/{id} [patch]
func (h *Handler) UpdateBudget(c *gin.Context) {
	var patch models.UpdateBudget
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}

	b, err := h.budgets.Update(c.Request.Context(), c.Param("id"), patch, currentIdentity(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// DeleteBudget godoc
// @Summary Delete a budget
// @Tags budgets
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Budget ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/budgets/{id} [delete]
func (h *Handler) DeleteBudget(c *gin.Context) {
	if err := h.budgets.Delete(c.Request.Context(), c.Param("id"), currentIdentity(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Budget deleted"})
}
