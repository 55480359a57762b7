package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nemopss/spendwise/stats"
)

// CategoryStats godoc
// @Summary Spending per category
// @Tags stats
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} stats.CategoryTotal
// @Router /api/stats/categories [get]
func (h *Handler) CategoryStats(c *gin.Context) {
	list, err := h.transactions.List(c.Request.Context(), currentIdentity(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats.ByCategory(list.Transactions))
}

// MonthlyStats godoc
// @Summary Spending per month
// @Tags stats
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} stats.MonthTotal
// @Router /api/stats/monthly [get]
func (h *Handler) MonthlyStats(c *gin.Context) {
	list, err := h.transactions.List(c.Request.Context(), currentIdentity(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats.ByMonth(list.Transactions))
}

// BudgetStats godoc
// @Summary Budgeted against spent, per budget
// @Tags stats
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} stats.BudgetStatus
// @Router /api/stats/budgets [get]
func (h *Handler) BudgetStats(c *gin.Context) {
	ctx := c.Request.Context()
	who := currentIdentity(c)

	budgets, err := h.budgets.List(ctx, who)
	if err != nil {
		respondError(c, err)
		return
	}
	list, err := h.transactions.List(ctx, who)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats.BudgetComparison(budgets, list.Transactions))
}
