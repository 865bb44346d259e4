package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/player_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/player_tracker/internal/core/ports/services"
	"github.com/SscSPs/player_tracker/internal/dto"
	"github.com/SscSPs/player_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// financialHandler handles the append-only financial ledger. There are no update or delete routes.
type financialHandler struct {
	financialService portssvc.FinancialSvcFacade
}

func registerFinancialRoutes(rg *gin.RouterGroup, financialService portssvc.FinancialSvcFacade) {
	h := &financialHandler{financialService: financialService}
	txns := rg.Group("/financial-transactions")
	{
		txns.POST("", h.recordTransaction)
		txns.GET("", h.listTransactions)
		txns.GET("/:id", h.getTransaction)
	}
}

// recordTransaction godoc
// @Summary Record a buy-in or payout
// @Description Appends a ledger row. Pit bosses record cash and chip buy-ins, cashiers record payouts. Replaying the Idempotency-Key returns the original row.
// @Tags financial
// @Accept json
// @Produce json
// @Param Idempotency-Key header string true "Idempotency key"
// @Param transaction body dto.RecordFinancialTransactionRequest true "Transaction"
// @Success 201 {object} middleware.Envelope{data=dto.RecordFinancialTransactionResponse}
// @Success 200 {object} middleware.Envelope{data=dto.RecordFinancialTransactionResponse} "Replayed"
// @Failure 400 {object} middleware.Envelope
// @Failure 403 {object} middleware.Envelope "Role may not record this transaction"
// @Failure 409 {object} middleware.Envelope "Idempotency key reused with a different payload"
// @Security BearerAuth
// @Router /financial-transactions [post]
func (h *financialHandler) recordTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.RecordFinancialTransactionRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.financialService.RecordTransaction(c.Request.Context(), actor, middleware.GetIdempotencyKey(c), req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	status := http.StatusCreated
	if !resp.Created {
		status = http.StatusOK
		logger.Info("Financial transaction replayed", slog.String("transaction_id", resp.Transaction.TransactionID))
	}
	middleware.RespondOK(c, status, resp)
}

// listTransactions godoc
// @Summary List ledger rows
// @Description Newest first, filtered by player, visit or gaming day, paged with nextToken
// @Tags financial
// @Produce json
// @Param playerID query string false "Player ID"
// @Param visitID query string false "Visit ID"
// @Param gamingDay query string false "Gaming day, YYYY-MM-DD"
// @Param limit query int false "Page size (max 200)"
// @Param nextToken query string false "Token of the next page"
// @Success 200 {object} middleware.Envelope{data=dto.ListFinancialTransactionsResponse}
// @Failure 400 {object} middleware.Envelope
// @Security BearerAuth
// @Router /financial-transactions [get]
func (h *financialHandler) listTransactions(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var params dto.ListFinancialTransactionsParams
	if !bindQuery(c, &params) {
		return
	}
	resp, err := h.financialService.ListTransactions(c.Request.Context(), actor, params)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusOK, resp)
}

// getTransaction godoc
// @Summary Get a ledger row
// @Tags financial
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} middleware.Envelope{data=domain.FinancialTransaction}
// @Failure 404 {object} middleware.Envelope
// @Security BearerAuth
// @Router /financial-transactions/{id} [get]
func (h *financialHandler) getTransaction(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	txnID, ok := pathID(c, "id", domain.ErrTxnNotFound)
	if !ok {
		return
	}
	txn, err := h.financialService.GetTransaction(c.Request.Context(), actor, txnID)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusOK, txn)
}
