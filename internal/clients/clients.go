package clients

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"auction-services/internal/models"
)

// Downstream target names, used for breakers and metrics labels
const (
	TargetAuction      = "auction"
	TargetBidding      = "bidding"
	TargetItem         = "item"
	TargetNotification = "notification"
)

// NotifyRequest is the body of POST /notifications/auction/:id/new
type NotifyRequest struct {
	AuctionID string                  `json:"-"`
	Type      models.NotificationType `json:"type"`
	UserIDs   []string                `json:"user_ids"`
	Message   string                  `json:"message"`
	Metadata  models.Metadata         `json:"metadata,omitempty"`
}

type AuctionClient struct {
	peer *peer
}

// NewAuctionClient returns a client for the Auction Registry at baseURL, calling on behalf of service.
func NewAuctionClient(service, baseURL string, timeout time.Duration) *AuctionClient {
	return &AuctionClient{peer: newPeer(service, TargetAuction, baseURL, timeout)}
}

func (c *AuctionClient) GetAuction(ctx context.Context, id string) (models.Auction, error) {
	var auction models.Auction
	err := c.peer.call(ctx, http.MethodGet, "/auctions/"+url.PathEscape(id), nil, &auction)
	return auction, err
}

// RaisePrice asks the registry to raise the auction's current price to price.
func (c *AuctionClient) RaisePrice(ctx context.Context, id string, price float64) (models.Auction, error) {
	var auction models.Auction
	body := map[string]float64{"current_price": price}
	err := c.peer.call(ctx, http.MethodPut, "/auctions/"+url.PathEscape(id)+"/current_price", body, &auction)
	return auction, err
}

func (c *AuctionClient) EndAuction(ctx context.Context, id string) error {
	return c.peer.call(ctx, http.MethodPut, "/auctions/"+url.PathEscape(id)+"/end", nil, nil)
}

type BiddingClient struct {
	peer *peer
}

func NewBiddingClient(service, baseURL string, timeout time.Duration) *BiddingClient {
	return &BiddingClient{peer: newPeer(service, TargetBidding, baseURL, timeout)}
}

func (c *BiddingClient) ListBidsByAuction(ctx context.Context, auctionID string) ([]models.Bid, error) {
	bids := []models.Bid{}
	err := c.peer.call(ctx, http.MethodGet, "/bids/auction/"+url.PathEscape(auctionID), nil, &bids)
	return bids, err
}

func (c *BiddingClient) HighestBid(ctx context.Context, auctionID string) (models.Bid, error) {
	var bid models.Bid
	err := c.peer.call(ctx, http.MethodGet, "/bids/auction/"+url.PathEscape(auctionID)+"/highest", nil, &bid)
	return bid, err
}

type ItemClient struct {
	peer *peer
}

func NewItemClient(service, baseURL string, timeout time.Duration) *ItemClient {
	return &ItemClient{peer: newPeer(service, TargetItem, baseURL, timeout)}
}

func (c *ItemClient) GetItem(ctx context.Context, id string) (models.Item, error) {
	var item models.Item
	err := c.peer.call(ctx, http.MethodGet, "/items/"+url.PathEscape(id), nil, &item)
	return item, err
}

func (c *ItemClient) ListItemsByOwner(ctx context.Context, ownerID string) ([]models.Item, error) {
	items := []models.Item{}
	err := c.peer.call(ctx, http.MethodGet, "/items/user/"+url.PathEscape(ownerID), nil, &items)
	return items, err
}

type NotificationClient struct {
	peer *peer
}

func NewNotificationClient(service, baseURL string, timeout time.Duration) *NotificationClient {
	return &NotificationClient{peer: newPeer(service, TargetNotification, baseURL, timeout)}
}

// NotifyUsers fans one message out to req.UserIDs and returns the recipient count.
func (c *NotificationClient) NotifyUsers(ctx context.Context, req NotifyRequest) (int, error) {
	var out struct {
		RecipientCount int `json:"recipient_count"`
	}
	err := c.peer.call(ctx, http.MethodPost, "/notifications/auction/"+url.PathEscape(req.AuctionID)+"/new", req, &out)
	return out.RecipientCount, err
}
