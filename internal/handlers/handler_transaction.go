package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/famledger/family_finance_app/internal/core/domain"
	portssvc "github.com/famledger/family_finance_app/internal/core/ports/services"
	"github.com/famledger/family_finance_app/internal/dto"
)

type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{transactionService: ts}
}

// registerTransactionRoutes registers the ledger routes.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(transactionService)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.GET("", h.listTransactions)
		transactions.GET("/summary", h.summarizeByCategory)
		transactions.GET("/:transactionID", h.getTransactionByID)
		transactions.PATCH("/:transactionID", h.updateTransaction)
		transactions.DELETE("/:transactionID", h.deleteTransaction)
	}
}

// createTransaction godoc
// @Summary Record a ledger entry
// @Description Records an income or expense entry. The stored sign is derived from the category type, and the response carries the balance after the write.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.CreateTransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	txn, balance, err := h.transactionService.CreateTransaction(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create transaction")
		return
	}

	c.JSON(http.StatusCreated, dto.CreateTransactionResponse{
		Transaction: dto.ToTransactionResponse(txn),
		Balance:     balance,
	})
}

// listTransactions godoc
// @Summary List ledger entries
// @Description Lists the caller's transactions. Optional filters: category, type (INCOME or EXPENSE), from/to (RFC3339).
// @Tags transactions
// @Produce json
// @Param category query string false "Category ID"
// @Param type query string false "INCOME or EXPENSE"
// @Param from query string false "Window start (RFC3339)"
// @Param to query string false "Window end (RFC3339)"
// @Success 200 {array} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	if categoryID := c.Query("category"); categoryID != "" {
		txns, err := h.transactionService.ListTransactionsByCategory(ctx, userID, categoryID)
		if err != nil {
			respondServiceError(c, err, "Failed to list transactions")
			return
		}
		c.JSON(http.StatusOK, dto.ToTransactionResponses(txns))
		return
	}

	if txnType := c.Query("type"); txnType != "" {
		var (
			txns []domain.Transaction
			err  error
		)
		switch txnType {
		case "INCOME":
			txns, err = h.transactionService.ListIncomeTransactions(ctx, userID)
		case "EXPENSE":
			txns, err = h.transactionService.ListExpenseTransactions(ctx, userID)
		default:
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "type must be INCOME or EXPENSE"})
			return
		}
		if err != nil {
			respondServiceError(c, err, "Failed to list transactions")
			return
		}
		c.JSON(http.StatusOK, dto.ToTransactionResponses(txns))
		return
	}

	fromStr, toStr := c.Query("from"), c.Query("to")
	if fromStr != "" || toStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "from must be an RFC3339 timestamp"})
			return
		}
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "to must be an RFC3339 timestamp"})
			return
		}
		txns, err := h.transactionService.ListTransactionsByDateRange(ctx, userID, from, to)
		if err != nil {
			respondServiceError(c, err, "Failed to list transactions")
			return
		}
		c.JSON(http.StatusOK, dto.ToTransactionResponses(txns))
		return
	}

	txns, err := h.transactionService.ListTransactions(ctx, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponses(txns))
}

// getTransactionByID godoc
// @Summary Get a ledger entry
// @Tags transactions
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transactionID} [get]
func (h *transactionHandler) getTransactionByID(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), userID, c.Param("transactionID"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// updateTransaction godoc
// @Summary Update a ledger entry
// @Description Patches a transaction. The balance adjustment is recomputed and applied atomically.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Param transaction body dto.UpdateTransactionRequest true "Fields to change"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transactionID} [patch]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	txn, err := h.transactionService.UpdateTransaction(c.Request.Context(), userID, c.Param("transactionID"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to update transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// deleteTransaction godoc
// @Summary Delete a ledger entry
// @Description Removes a transaction and reverses its balance effect.
// @Tags transactions
// @Param transactionID path string true "Transaction ID"
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transactionID} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), userID, c.Param("transactionID")); err != nil {
		respondServiceError(c, err, "Failed to delete transaction")
		return
	}
	c.Status(http.StatusNoContent)
}

// summarizeByCategory godoc
// @Summary Per-category ledger summary
// @Description Groups the caller's ledger by category with signed totals and entry counts.
// @Tags transactions
// @Produce json
// @Success 200 {array} dto.CategorySummaryResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/summary [get]
func (h *transactionHandler) summarizeByCategory(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	summary, err := h.transactionService.SummarizeByCategory(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to summarize transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ToCategorySummaryResponses(summary))
}
