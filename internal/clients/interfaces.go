//go:generate mockgen -package=clients -destination=mock.go -source=interfaces.go
package clients

import (
	"context"

	"auction-services/internal/models"
)

// AuctionAPI is the Auction Registry as seen by its peers
type AuctionAPI interface {
	GetAuction(ctx context.Context, id string) (models.Auction, error)
	RaisePrice(ctx context.Context, id string, price float64) (models.Auction, error)
	EndAuction(ctx context.Context, id string) error
}

// BiddingAPI is the Bidding Service as seen by its peers
type BiddingAPI interface {
	ListBidsByAuction(ctx context.Context, auctionID string) ([]models.Bid, error)
	HighestBid(ctx context.Context, auctionID string) (models.Bid, error)
}

// ItemAPI is the Item Registry as seen by its peers
type ItemAPI interface {
	GetItem(ctx context.Context, id string) (models.Item, error)
	ListItemsByOwner(ctx context.Context, ownerID string) ([]models.Item, error)
}

// NotificationAPI is the Notification Service fan-out endpoint
type NotificationAPI interface {
	NotifyUsers(ctx context.Context, req NotifyRequest) (int, error)
}
