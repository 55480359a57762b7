package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nemopss/spendwise/models"
)

// GetTransactions godoc
// @Summary List the caller's transactions
// @Description Newest first. recentTransactions holds the first six.
// @Tags transactions
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} models.GetTransactionsResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /api/transactions [get]
func (h *Handler) GetTransactions(c *gin.Context) {
	list, err := h.transactions.List(c.Request.Context(), currentIdentity(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.GetTransactionsResponse{
		Transactions:       list.Transactions,
		RecentTransactions: list.Recent,
		Total:              len(list.Transactions),
	})
}

// CreateTransaction godoc
// @Summary Create a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param transaction body models.CreateTransaction true "Transaction"
// @Success 201 {object} models.Transaction
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /api/transactions [post]
func (h *Handler) CreateTransaction(c *gin.Context) {
	var in models.CreateTransaction
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}

	t, err := h.transactions.Create(c.Request.Context(), in, currentIdentity(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// GetTransaction godoc
// @Summary Get one of the caller's transactions
// @Tags transactions
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Transaction ID"
// @Success 200 {object} models.Transaction
// @Failure 404 {object} models.ErrorResponse
// @Router /api/transactions/{id} [get]
func (h *Handler) GetTransaction(c *gin.Context) {
	t, err := h.transactions.Get(c.Request.Context(), c.Param("id"), currentIdentity(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// UpdateTransaction godoc
// @Summary Update a transaction
// @Description Only the fields present in the body change.
// @Tags transactions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Transaction ID"
// @Param transaction body models.UpdateTransaction true "Fields to change"
// @Success 200 {object} models.Transaction
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/transactions/{id} [patch]
// @Router /api/transactions/{id} [put]
func (h *Handler) UpdateTransaction(c *gin.Context) {
	var patch models.UpdateTransaction
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}

	t, err := h.transactions.Update(c.Request.Context(), c.Param("id"), patch, currentIdentity(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// DeleteTransaction godoc
// @Summary Delete a transaction
// @Tags transactions
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Transaction ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/transactions/{id} [delete]
func (h *Handler) DeleteTransaction(c *gin.Context) {
	if err := h.transactions.Delete(c.Request.Context(), c.Param("id"), currentIdentity(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Transaction deleted"})
}

// SeedTransactions godoc
// @Summary Insert a year of sample transactions
// @Description Available only when SEED_ENABLED is set.
// @Tags transactions
// @Produce json
// @Security ApiKeyAuth
// @Success 201 {object} models.SeedResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/transactions/seed [post]
func (h *Handler) SeedTransactions(c *gin.Context) {
	if !h.seedEnabled {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Not found"})
		return
	}

	n, err := h.transactions.Seed(c.Request.Context(), newRand(), h.now(), currentIdentity(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.SeedResponse{Message: "Dummy transactions inserted!", Count: n})
}
