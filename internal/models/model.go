package models

import "time"

// Metadata is an opaque key/value payload attached to a notification
type Metadata map[string]any

// User represents a registered participant
type User struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36"`
	FirstName    string    `json:"first_name" gorm:"size:100"`
	LastName     string    `json:"last_name" gorm:"size:100"`
	Email        string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"index"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Item represents something that can be put up for auction
type Item struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text"`
	CategoryID  string    `json:"category_id" gorm:"size:64;index"`
	OwnerID     string    `json:"owner_id" gorm:"size:36;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Auction represents the sale of an item
type Auction struct {
	ID            string        `json:"id" gorm:"primaryKey;size:36"`
	ItemID        string        `json:"item_id" gorm:"size:36;index;not null"`
	StartTime     time.Time     `json:"start_time"`
	EndDate       time.Time     `json:"end_date"`
	StartingPrice float64       `json:"starting_price"`
	CurrentPrice  float64       `json:"current_price"`
	Status        AuctionStatus `json:"status" gorm:"type:varchar(16);index;not null"`
	CreatedAt     time.Time     `json:"created_at" gorm:"index"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// Bid represents a bidder's offer on an auction
type Bid struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	AuctionID string    `json:"auction_id" gorm:"size:36;index;not null"`
	BidderID  string    `json:"bidder_id" gorm:"size:36;index;not null"`
	Amount    float64   `json:"amount"`
	BidTime   time.Time `json:"bid_time" gorm:"index"`
}

// Transaction represents a payment record for an auction
type Transaction struct {
	ID              string            `json:"id" gorm:"primaryKey;size:36"`
	AuctionID       string            `json:"auction_id" gorm:"size:36;index;not null"`
	BuyerID         string            `json:"buyer_id" gorm:"size:36;index;not null"`
	Amount          float64           `json:"amount"`
	Status          TransactionStatus `json:"status" gorm:"type:varchar(16);index;not null"`
	TransactionDate time.Time         `json:"transaction_date" gorm:"index"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// Notification is a per-user message about an auction event
type Notification struct {
	ID        string           `json:"id" gorm:"primaryKey;size:36"`
	UserID    string           `json:"user_id" gorm:"size:36;index;not null"`
	Type      NotificationType `json:"type" gorm:"type:varchar(32);not null"`
	Message   string           `json:"message" gorm:"type:text"`
	Metadata  Metadata         `json:"metadata" gorm:"serializer:json;type:text"`
	IsRead    bool             `json:"is_read"`
	ReadAt    *time.Time       `json:"read_at"`
	CreatedAt time.Time        `json:"created_at" gorm:"index"`
}

// AuctionStats aggregates auctions created within a reporting window
type AuctionStats struct {
	Total        int64   `json:"total"`
	Active       int64   `json:"active"`
	Closed       int64   `json:"closed"`
	Cancelled    int64   `json:"cancelled"`
	AveragePrice float64 `json:"average_current_price"`
}

// BidStats aggregates bids placed within a reporting window
type BidStats struct {
	Total         int64   `json:"total"`
	AverageAmount float64 `json:"average_amount"`
	MaxAmount     float64 `json:"max_amount"`
}

// TransactionStats aggregates transactions created within a reporting window
type TransactionStats struct {
	Total         int64   `json:"total"`
	Pending       int64   `json:"pending"`
	Completed     int64   `json:"completed"`
	Failed        int64   `json:"failed"`
	Refunded      int64   `json:"refunded"`
	TotalAmount   float64 `json:"total_amount"`
	AverageAmount float64 `json:"average_amount"`
}

// NotificationStats aggregates notifications sent within a reporting window
type NotificationStats struct {
	Total  int64 `json:"total"`
	Read   int64 `json:"read"`
	Unread int64 `json:"unread"`
}

// UserStats aggregates users registered within a reporting window
type UserStats struct {
	Total int64 `json:"total"`
}
