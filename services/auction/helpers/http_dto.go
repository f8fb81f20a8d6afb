package helpers

import (
	"time"

	"auction-services/internal/models"
)

// Request DTOs
type CreateAuctionRequest struct {
	ItemID        string                `json:"item_id" binding:"required"`
	StartTime     *time.Time            `json:"start_time"`
	EndDate       time.Time             `json:"end_date" binding:"required"`
	StartingPrice float64               `json:"starting_price" binding:"gte=0"`
	CurrentPrice  *float64              `json:"current_price" binding:"omitempty,gte=0"`
	Status        *models.AuctionStatus `json:"status"`
}

// ToModel converts the request into an auction; unset fields are defaulted by the service
func (r CreateAuctionRequest) ToModel() models.Auction {
	a := models.Auction{
		ItemID:        r.ItemID,
		EndDate:       r.EndDate.UTC(),
		StartingPrice: r.StartingPrice,
	}
	if r.StartTime != nil {
		a.StartTime = r.StartTime.UTC()
	}
	if r.CurrentPrice != nil {
		a.CurrentPrice = *r.CurrentPrice
	}
	if r.Status != nil {
		a.Status = *r.Status
	}
	return a
}

// UpdateAuctionRequest is the body of PUT /auctions/:id. current_price is only accepted so it can be rejected.
type UpdateAuctionRequest struct {
	StartTime     *time.Time            `json:"start_time"`
	EndDate       *time.Time            `json:"end_date"`
	StartingPrice *float64              `json:"starting_price" binding:"omitempty,gte=0"`
	CurrentPrice  *float64              `json:"current_price"`
	Status        *models.AuctionStatus `json:"status"`
}

type UpdatePriceRequest struct {
	CurrentPrice float64 `json:"current_price" binding:"required,gt=0"`
}
