//go:generate mockgen -package=handler -destination=mock.go -source=auction_handler.go
package handler

import (
	"context"
	"fmt"
	"net/http"

	auction "auction-services/internal/auctionService"
	"auction-services/internal/auctionerrors"
	"auction-services/internal/models"
	"auction-services/internal/reporting"
	"auction-services/services/auction/helpers"
	"auction-services/utils"

	"github.com/gin-gonic/gin"
)

type AuctionServiceInterface interface {
	CreateAuction(ctx context.Context, a models.Auction) (models.Auction, error)
	GetAuction(ctx context.Context, id string) (models.Auction, error)
	ListAuctions(ctx context.Context) ([]models.Auction, error)
	UpdateAuction(ctx context.Context, id string, update auction.AuctionUpdate) (models.Auction, error)
	CancelAuction(ctx context.Context, id string) (models.Auction, error)
	StartAuction(ctx context.Context, id string) (models.Auction, error)
	EndAuction(ctx context.Context, id string) (models.Auction, error)
	RaisePrice(ctx context.Context, id string, price float64) (models.Auction, error)
	ListAuctionBids(ctx context.Context, id string) ([]models.Bid, error)
	ListAuctionsByUser(ctx context.Context, userID string) ([]models.Auction, error)
	Report(ctx context.Context, windows []reporting.Window) (reporting.Report[models.AuctionStats], error)
}

type AuctionHandler struct {
	service AuctionServiceInterface
}

func NewAuctionHandler(service AuctionServiceInterface) *AuctionHandler {
	return &AuctionHandler{service: service}
}

func (h *AuctionHandler) fail(c *gin.Context, handlerName string, err error, fields map[string]any) {
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

// CreateAuctionHandler handles POST /auctions
func (h *AuctionHandler) CreateAuctionHandler(c *gin.Context) {
	var req helpers.CreateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleBindError(c, "CreateAuctionHandler", err)
		return
	}

	created, err := h.service.CreateAuction(c.Request.Context(), req.ToModel())
	if err != nil {
		h.fail(c, "CreateAuctionHandler", err, map[string]any{"item_id": req.ItemID})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, created, "auction created successfully")
	utils.LogSuccess("CreateAuctionHandler", "auction created successfully", map[string]any{
		"auction_id":     created.ID,
		"item_id":        created.ItemID,
		"starting_price": created.StartingPrice,
	})
}

// GetAuctionHandler handles GET /auctions/:id
func (h *AuctionHandler) GetAuctionHandler(c *gin.Context) {
	id := c.Param("id")
	a, err := h.service.GetAuction(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "GetAuctionHandler", err, map[string]any{"auction_id": id})
		return
	}
	utils.JSONResponse(c, http.StatusOK, a, "auction retrieved successfully")
}

// ListAuctionsHandler handles GET /auctions
func (h *AuctionHandler) ListAuctionsHandler(c *gin.Context) {
	auctions, err := h.service.ListAuctions(c.Request.Context())
	if err != nil {
		h.fail(c, "ListAuctionsHandler", err, map[string]any{})
		return
	}
	if auctions == nil {
		auctions = []models.Auction{}
	}
	utils.JSONResponse(c, http.StatusOK, auctions, "auctions retrieved successfully")
}

// UpdateAuctionHandler handles PUT /auctions/:id
func (h *AuctionHandler) UpdateAuctionHandler(c *gin.Context) {
	id := c.Param("id")
	var req helpers.UpdateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleBindError(c, "UpdateAuctionHandler", err)
		return
	}
	if req.CurrentPrice != nil {
		err := fmt.Errorf("current_price can only be raised through PUT /auctions/%s/current_price: %w", id, auctionerrors.ErrInvalidAuction)
		h.fail(c, "UpdateAuctionHandler", err, map[string]any{"auction_id": id})
		return
	}

	updated, err := h.service.UpdateAuction(c.Request.Context(), id, auction.AuctionUpdate{
		StartTime:     req.StartTime,
		EndDate:       req.EndDate,
		StartingPrice: req.StartingPrice,
		Status:        req.Status,
	})
	if err != nil {
		h.fail(c, "UpdateAuctionHandler", err, map[string]any{"auction_id": id})
		return
	}

	utils.JSONResponse(c, http.StatusOK, updated, "auction updated successfully")
	utils.LogSuccess("UpdateAuctionHandler", "auction updated successfully", map[string]any{
		"auction_id": id,
		"status":     updated.Status.String(),
	})
}

// CancelAuctionHandler handles DELETE /auctions/:id; auctions are soft-cancelled, never removed
func (h *AuctionHandler) CancelAuctionHandler(c *gin.Context) {
	id := c.Param("id")
	cancelled, err := h.service.CancelAuction(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "CancelAuctionHandler", err, map[string]any{"auction_id": id})
		return
	}

	utils.JSONResponse(c, http.StatusOK, cancelled, "auction cancelled successfully")
	utils.LogSuccess("CancelAuctionHandler", "auction cancelled successfully", map[string]any{"auction_id": id})
}

// StartAuctionHandler handles PUT /auctions/:id/start
func (h *AuctionHandler) StartAuctionHandler(c *gin.Context) {
	id := c.Param("id")
	started, err := h.service.StartAuction(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "StartAuctionHandler", err, map[string]any{"auction_id": id})
		return
	}

	utils.JSONResponse(c, http.StatusOK, started, "auction started successfully")
	utils.LogSuccess("StartAuctionHandler", "auction started successfully", map[string]any{
		"auction_id": id,
		"start_time": started.StartTime,
	})
}

// EndAuctionHandler handles PUT /auctions/:id/end
func (h *AuctionHandler) EndAuctionHandler(c *gin.Context) {
	id := c.Param("id")
	ended, err := h.service.EndAuction(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "EndAuctionHandler", err, map[string]any{"auction_id": id})
		return
	}

	utils.JSONResponse(c, http.StatusOK, ended, "auction ended successfully")
	utils.LogSuccess("EndAuctionHandler", "auction ended successfully", map[string]any{
		"auction_id":  id,
		"final_price": ended.CurrentPrice,
	})
}

// UpdatePriceHandler handles PUT /auctions/:id/current_price
func (h *AuctionHandler) UpdatePriceHandler(c *gin.Context) {
	id := c.Param("id")
	var req helpers.UpdatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleBindError(c, "UpdatePriceHandler", err)
		return
	}

	raised, err := h.service.RaisePrice(c.Request.Context(), id, req.CurrentPrice)
	if err != nil {
		h.fail(c, "UpdatePriceHandler", err, map[string]any{"auction_id": id, "price": req.CurrentPrice})
		return
	}

	utils.JSONResponse(c, http.StatusOK, raised, "auction price updated successfully")
	utils.LogSuccess("UpdatePriceHandler", "auction price updated successfully", map[string]any{
		"auction_id": id,
		"price":      raised.CurrentPrice,
	})
}

// ListAuctionBidsHandler handles GET /auctions/:id/bids
func (h *AuctionHandler) ListAuctionBidsHandler(c *gin.Context) {
	id := c.Param("id")
	bids, err := h.service.ListAuctionBids(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "ListAuctionBidsHandler", err, map[string]any{"auction_id": id})
		return
	}
	if bids == nil {
		bids = []models.Bid{}
	}
	utils.JSONResponse(c, http.StatusOK, bids, "bids retrieved successfully")
}

// ListUserAuctionsHandler handles GET /auctions/user/:user_id
func (h *AuctionHandler) ListUserAuctionsHandler(c *gin.Context) {
	userID := c.Param("user_id")
	auctions, err := h.service.ListAuctionsByUser(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, "ListUserAuctionsHandler", err, map[string]any{"user_id": userID})
		return
	}
	if auctions == nil {
		auctions = []models.Auction{}
	}
	utils.JSONResponse(c, http.StatusOK, auctions, "auctions retrieved successfully")
}

// MetricsHandler handles GET /metrics
func (h *AuctionHandler) MetricsHandler(c *gin.Context) {
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
	utils.JSONResponse(c, http.StatusOK, report, "auction metrics retrieved successfully")
}
