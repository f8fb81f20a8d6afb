package helpers

// Request DTOs
type CreateTransactionRequest struct {
	AuctionID string  `json:"auction_id" binding:"required"`
	BuyerID   string  `json:"buyer_id" binding:"required"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
}

// RefundRequest is the optional body of PUT /transactions/:id/refund; ?reason= is accepted too
type RefundRequest struct {
	Reason string `json:"reason"`
}
