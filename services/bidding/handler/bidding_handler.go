//go:generate mockgen -package=handler -destination=mock.go -source=bidding_handler.go
package handler

import (
	"context"
	"fmt"
	"net/http"

	"auction-services/internal/models"
	"auction-services/internal/reporting"
	"auction-services/services/bidding/helpers"
	"auction-services/utils"

	"github.com/gin-gonic/gin"
)

type BiddingServiceInterface interface {
	PlaceBid(ctx context.Context, auctionID, bidderID string, amount float64) (models.Bid, error)
	GetBid(ctx context.Context, id string) (models.Bid, error)
	ListBids(ctx context.Context) ([]models.Bid, error)
	DeleteBid(ctx context.Context, id string) error
	ListBidsByAuction(ctx context.Context, auctionID string) ([]models.Bid, error)
	ListBidsByBidder(ctx context.Context, bidderID string) ([]models.Bid, error)
	HighestBid(ctx context.Context, auctionID string) (models.Bid, error)
	Report(ctx context.Context, windows []reporting.Window) (reporting.Report[models.BidStats], error)
}

type BiddingHandler struct {
	service BiddingServiceInterface
}

func NewBiddingHandler(service BiddingServiceInterface) *BiddingHandler {
	return &BiddingHandler{service: service}
}

func (h *BiddingHandler) fail(c *gin.Context, handlerName string, err error, fields map[string]any) {
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

// RecordBidHandler handles POST /bids
func (h *BiddingHandler) RecordBidHandler(c *gin.Context) {
	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleBindError(c, "RecordBidHandler", err)
		return
	}

	bid, err := h.service.PlaceBid(c.Request.Context(), req.AuctionID, req.BidderID, req.Amount)
	if err != nil {
		h.fail(c, "RecordBidHandler", err, map[string]any{
			"auction_id": req.AuctionID,
			"bidder_id":  req.BidderID,
			"amount":     req.Amount,
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, bid, "bid recorded successfully")
	utils.LogSuccess("RecordBidHandler", "bid recorded successfully", map[string]any{
		"bid_id":     bid.ID,
		"auction_id": bid.AuctionID,
		"bidder_id":  bid.BidderID,
		"amount":     bid.Amount,
	})
}

// GetBidHandler handles GET /bids/:id
func (h *BiddingHandler) GetBidHandler(c *gin.Context) {
	id := c.Param("id")
	bid, err := h.service.GetBid(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "GetBidHandler", err, map[string]any{"bid_id": id})
		return
	}
	utils.JSONResponse(c, http.StatusOK, bid, "bid retrieved successfully")
}

// ListBidsHandler handles GET /bids
func (h *BiddingHandler) ListBidsHandler(c *gin.Context) {
	bids, err := h.service.ListBids(c.Request.Context())
	if err != nil {
		h.fail(c, "ListBidsHandler", err, map[string]any{})
		return
	}
	if bids == nil {
		bids = []models.Bid{}
	}
	utils.JSONResponse(c, http.StatusOK, bids, "bids retrieved successfully")
}

// DeleteBidHandler handles DELETE /bids/:id
func (h *BiddingHandler) DeleteBidHandler(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.DeleteBid(c.Request.Context(), id); err != nil {
		h.fail(c, "DeleteBidHandler", err, map[string]any{"bid_id": id})
		return
	}

	c.Status(http.StatusNoContent)
	utils.LogSuccess("DeleteBidHandler", "bid deleted successfully", map[string]any{"bid_id": id})
}

// GetBidsByAuctionHandler handles GET /bids/auction/:auction_id
func (h *BiddingHandler) GetBidsByAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	bids, err := h.service.ListBidsByAuction(c.Request.Context(), auctionID)
	if err != nil {
		h.fail(c, "GetBidsByAuctionHandler", err, map[string]any{"auction_id": auctionID})
		return
	}
	if bids == nil {
		bids = []models.Bid{}
	}

	utils.JSONResponse(c, http.StatusOK, bids, "bids retrieved successfully")
	utils.LogSuccess("GetBidsByAuctionHandler", "bids retrieved successfully", map[string]any{
		"auction_id": auctionID,
		"count":      len(bids),
	})
}

// GetBidsByUserHandler handles GET /bids/user/:user_id
func (h *BiddingHandler) GetBidsByUserHandler(c *gin.Context) {
	userID := c.Param("user_id")
	bids, err := h.service.ListBidsByBidder(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, "GetBidsByUserHandler", err, map[string]any{"user_id": userID})
		return
	}
	if bids == nil {
		bids = []models.Bid{}
	}
	utils.JSONResponse(c, http.StatusOK, bids, "bids retrieved successfully")
}

// GetHighestBidHandler handles GET /bids/auction/:auction_id/highest
func (h *BiddingHandler) GetHighestBidHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	bid, err := h.service.HighestBid(c.Request.Context(), auctionID)
	if err != nil {
		h.fail(c, "GetHighestBidHandler", err, map[string]any{"auction_id": auctionID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, bid, "highest bid retrieved successfully")
	utils.LogSuccess("GetHighestBidHandler", "highest bid retrieved successfully", map[string]any{
		"bid_id":     bid.ID,
		"auction_id": bid.AuctionID,
		"bidder_id":  bid.BidderID,
		"amount":     bid.Amount,
	})
}

// MetricsHandler handles GET /metrics
func (h *BiddingHandler) MetricsHandler(c *gin.Context) {
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
	utils.JSONResponse(c, http.StatusOK, report, "bid metrics retrieved successfully")
}
