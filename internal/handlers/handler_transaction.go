package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/bankingmngt/banking_mngt_backend/internal/apperrors"
	portssvc "github.com/bankingmngt/banking_mngt_backend/internal/core/ports/services"
	"github.com/bankingmngt/banking_mngt_backend/internal/dto"
	"github.com/bankingmngt/banking_mngt_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests related to transfers.
type transactionHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(ls portssvc.LedgerSvcFacade) *transactionHandler {
	return &transactionHandler{
		ledgerService: ls,
	}
}

// RegisterTransactionRoutes registers routes related to transfers.
func RegisterTransactionRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newTransactionHandler(ledgerService)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.processTransaction)
	}
}

// processTransaction godoc
// @Summary Process a transfer between two accounts
// @Description Atomically debits the source account, credits the destination account and records the transfer
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transfer body dto.CreateTransferRequest true "Transfer details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input, non-positive amount or self transfer"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Source or destination account not found"
// @Failure 422 {object} map[string]string "Insufficient funds"
// @Failure 500 {object} map[string]string "Failed to process transfer"
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) processTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for processTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	principalID, ok := middleware.GetPrincipalFromCtx(c.Request.Context())
	if !ok {
		logger.Error("Principal not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.ledgerService.ProcessTransaction(c.Request.Context(), req, principalID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidAmount), errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Transfer rejected by validation", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Transfer references missing account", slog.String("error", err.Error()))
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrInsufficientFunds):
			logger.Warn("Transfer rejected for insufficient funds",
				slog.Int64("from", req.FromAccountID),
				slog.String("amount", req.Amount.String()),
			)
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": apperrors.ErrInsufficientFunds.Error()})
		default:
			logger.Error("Failed to process transfer", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process transfer"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}
