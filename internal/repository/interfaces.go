//go:generate mockgen -package=repository -destination=mock.go -source=interfaces.go

package repository

import (
	"context"
	"time"

	"auction-services/internal/models"
)

// AuctionStore persists auctions for the auction registry
type AuctionStore interface {
	CreateAuction(ctx context.Context, auction models.Auction) error
	GetAuction(ctx context.Context, id string) (models.Auction, error)
	ListAuctions(ctx context.Context) ([]models.Auction, error)
	ListAuctionsByItems(ctx context.Context, itemIDs []string) ([]models.Auction, error)
	// UpdateAuctionDetails overwrites timing and starting price. Status and current price are left alone.
	UpdateAuctionDetails(ctx context.Context, auction models.Auction) error
	// TransitionAuction moves the auction from one status to another only if it is currently in from.
	TransitionAuction(ctx context.Context, id string, from, to models.AuctionStatus) error
	// RestartAuction stamps a new start time on an Active auction.
	RestartAuction(ctx context.Context, id string, startTime time.Time) error
	// RaisePrice sets current_price only if the auction is Active and the price is strictly higher.
	RaisePrice(ctx context.Context, id string, price float64) (models.Auction, error)
	AuctionStats(ctx context.Context, since time.Time) (models.AuctionStats, error)
}

// BidStore persists bids for the bidding service
type BidStore interface {
	CreateBid(ctx context.Context, bid models.Bid) error
	GetBid(ctx context.Context, id string) (models.Bid, error)
	ListBids(ctx context.Context) ([]models.Bid, error)
	DeleteBid(ctx context.Context, id string) error
	ListBidsByAuction(ctx context.Context, auctionID string) ([]models.Bid, error)
	ListBidsByBidder(ctx context.Context, bidderID string) ([]models.Bid, error)
	// HighestBid breaks amount ties by earliest bid time, then by smallest id.
	HighestBid(ctx context.Context, auctionID string) (models.Bid, error)
	BidStats(ctx context.Context, since time.Time) (models.BidStats, error)
}

// TransactionStore persists transactions for the transaction service
type TransactionStore interface {
	CreateTransaction(ctx context.Context, tx models.Transaction) error
	GetTransaction(ctx context.Context, id string) (models.Transaction, error)
	ListTransactions(ctx context.Context) ([]models.Transaction, error)
	ListTransactionsByAuction(ctx context.Context, auctionID string) ([]models.Transaction, error)
	ListTransactionsByBuyer(ctx context.Context, buyerID string) ([]models.Transaction, error)
	TransitionTransaction(ctx context.Context, id string, from, to models.TransactionStatus) (models.Transaction, error)
	TransactionStats(ctx context.Context, since time.Time) (models.TransactionStats, error)
}

// NotificationStore persists notifications for the notification service
type NotificationStore interface {
	CreateNotifications(ctx context.Context, notifications []models.Notification) error
	GetNotification(ctx context.Context, id string) (models.Notification, error)
	ListNotificationsByUser(ctx context.Context, userID string, unreadOnly bool, limit int) ([]models.Notification, error)
	// MarkNotificationRead sets is_read; read_at keeps the time of the first read.
	MarkNotificationRead(ctx context.Context, id string, at time.Time) (models.Notification, error)
	DeleteNotification(ctx context.Context, id string) error
	NotificationStats(ctx context.Context, since time.Time) (models.NotificationStats, error)
}

// ItemStore persists items for the item registry
type ItemStore interface {
	CreateItem(ctx context.Context, item models.Item) error
	GetItem(ctx context.Context, id string) (models.Item, error)
	ListItems(ctx context.Context) ([]models.Item, error)
	UpdateItem(ctx context.Context, item models.Item) error
	DeleteItem(ctx context.Context, id string) error
	ListItemsByCategory(ctx context.Context, categoryID string) ([]models.Item, error)
	ListItemsByOwner(ctx context.Context, ownerID string) ([]models.Item, error)
}

// UserStore persists users for the auth service
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) error
	GetUser(ctx context.Context, id string) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	ListUsers(ctx context.Context, skip, limit int) ([]models.User, error)
	UpdateUser(ctx context.Context, user models.User) error
	DeleteUser(ctx context.Context, id string) error
	UserStats(ctx context.Context, since time.Time) (models.UserStats, error)
}

// Store is the full storage surface implemented by MemoryRepo and GormRepo
type Store interface {
	AuctionStore
	BidStore
	TransactionStore
	NotificationStore
	ItemStore
	UserStore
}
