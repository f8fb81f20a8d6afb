//go:generate mockgen -package=handler -destination=mock.go -source=transaction_handler.go
package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"auction-services/internal/models"
	"auction-services/internal/reporting"
	"auction-services/services/transaction/helpers"
	"auction-services/utils"

	"github.com/gin-gonic/gin"
)

type TransactionServiceInterface interface {
	CreateTransaction(ctx context.Context, auctionID, buyerID string, amount float64) (models.Transaction, error)
	GetTransaction(ctx context.Context, id string) (models.Transaction, error)
	ListTransactions(ctx context.Context) ([]models.Transaction, error)
	ListTransactionsByAuction(ctx context.Context, auctionID string) ([]models.Transaction, error)
	ListTransactionsByUser(ctx context.Context, userID string) ([]models.Transaction, error)
	ConfirmTransaction(ctx context.Context, id string) (models.Transaction, error)
	RefundTransaction(ctx context.Context, id, reason string) (models.Transaction, error)
	Report(ctx context.Context, windows []reporting.Window) (reporting.Report[models.TransactionStats], error)
}

type TransactionHandler struct {
	service TransactionServiceInterface
}

func NewTransactionHandler(service TransactionServiceInterface) *TransactionHandler {
	return &TransactionHandler{service: service}
}

func (h *TransactionHandler) fail(c *gin.Context, handlerName string, err error, fields map[string]any) {
	status, message := helpers.MapErrorToHTTP(err)
	utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
	fields["handler"] = handlerName
	fields["error"] = err.Error()
	if status >= http.StatusInternalServerError {
		utils.Error(handlerName+": "+message, fields)
		return
	}
	utils.Warn(handlerName+": "+message, fields)
}

func (h *TransactionHandler) respondList(c *gin.Context, txs []models.Transaction) {
	if txs == nil {
		txs = []models.Transaction{}
	}
	utils.JSONResponse(c, http.StatusOK, txs, "transactions retrieved successfully")
}

// CreateTransactionHandler handles POST /transactions
func (h *TransactionHandler) CreateTransactionHandler(c *gin.Context) {
	var req helpers.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleBindError(c, "CreateTransactionHandler", err)
		return
	}

	tx, err := h.service.CreateTransaction(c.Request.Context(), req.AuctionID, req.BuyerID, req.Amount)
	if err != nil {
		h.fail(c, "CreateTransactionHandler", err, map[string]any{"auction_id": req.AuctionID, "buyer_id": req.BuyerID})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, tx, "transaction created successfully")
	utils.LogSuccess("CreateTransactionHandler", "transaction created successfully", map[string]any{
		"transaction_id": tx.ID,
		"auction_id":     tx.AuctionID,
		"amount":         tx.Amount,
	})
}

// GetTransactionHandler handles GET /transactions/:id
func (h *TransactionHandler) GetTransactionHandler(c *gin.Context) {
	id := c.Param("id")
	tx, err := h.service.GetTransaction(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "GetTransactionHandler", err, map[string]any{"transaction_id": id})
		return
	}
	utils.JSONResponse(c, http.StatusOK, tx, "transaction retrieved successfully")
}

// ListTransactionsHandler handles GET /transactions
func (h *TransactionHandler) ListTransactionsHandler(c *gin.Context) {
	txs, err := h.service.ListTransactions(c.Request.Context())
	if err != nil {
		h.fail(c, "ListTransactionsHandler", err, map[string]any{})
		return
	}
	h.respondList(c, txs)
}

// ListAuctionTransactionsHandler handles GET /transactions/auction/:auction_id
func (h *TransactionHandler) ListAuctionTransactionsHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	txs, err := h.service.ListTransactionsByAuction(c.Request.Context(), auctionID)
	if err != nil {
		h.fail(c, "ListAuctionTransactionsHandler", err, map[string]any{"auction_id": auctionID})
		return
	}
	h.respondList(c, txs)
}

// ListUserTransactionsHandler handles GET /transactions/user/:user_id
func (h *TransactionHandler) ListUserTransactionsHandler(c *gin.Context) {
	userID := c.Param("user_id")
	txs, err := h.service.ListTransactionsByUser(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, "ListUserTransactionsHandler", err, map[string]any{"user_id": userID})
		return
	}
	h.respondList(c, txs)
}

// ConfirmTransactionHandler handles PUT /transactions/:id/confirm
func (h *TransactionHandler) ConfirmTransactionHandler(c *gin.Context) {
	id := c.Param("id")
	tx, err := h.service.ConfirmTransaction(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "ConfirmTransactionHandler", err, map[string]any{"transaction_id": id})
		return
	}

	utils.JSONResponse(c, http.StatusOK, tx, "transaction confirmed successfully")
	utils.LogSuccess("ConfirmTransactionHandler", "transaction confirmed successfully", map[string]any{
		"transaction_id": tx.ID,
		"auction_id":     tx.AuctionID,
	})
}

// RefundTransactionHandler handles PUT /transactions/:id/refund
func (h *TransactionHandler) RefundTransactionHandler(c *gin.Context) {
	id := c.Param("id")
	var req helpers.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.HandleBindError(c, "RefundTransactionHandler", err)
		return
	}
	if req.Reason == "" {
		req.Reason = c.Query("reason")
	}

	tx, err := h.service.RefundTransaction(c.Request.Context(), id, req.Reason)
	if err != nil {
		h.fail(c, "RefundTransactionHandler", err, map[string]any{"transaction_id": id})
		return
	}

	utils.JSONResponse(c, http.StatusOK, tx, "transaction refunded successfully")
	utils.LogSuccess("RefundTransactionHandler", "transaction refunded successfully", map[string]any{
		"transaction_id": tx.ID,
		"reason":         req.Reason,
	})
}

// MetricsHandler handles GET /metrics
func (h *TransactionHandler) MetricsHandler(c *gin.Context) {
	windows, err := reporting.ParseWindows(c.Query("windows"))
	if err != nil {
		h.fail(c, "MetricsHandler", err, map[string]any{"windows": c.Query("windows")})
		return
	}

	report, err := h.service.Report(c.Request.Context(), windows)
	if err != nil {
		h.fail(c, "MetricsHandler", err, map[string]any{})
		return
	}
	utils.JSONResponse(c, http.StatusOK, report, "transaction metrics retrieved successfully")
}
