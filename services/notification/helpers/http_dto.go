package helpers

import "auction-services/internal/models"

// Request DTOs
type CreateNotificationRequest struct {
	UserID   string                  `json:"user_id" binding:"required"`
	Type     models.NotificationType `json:"type" binding:"required"`
	Message  string                  `json:"message"`
	Metadata models.Metadata         `json:"metadata"`
}

type BroadcastRequest struct {
	Type     models.NotificationType `json:"type" binding:"required"`
	UserIDs  []string                `json:"user_ids"`
	Message  string                  `json:"message"`
	Metadata models.Metadata         `json:"metadata"`
}

type ItemSoldRequest struct {
	BuyerID string `json:"buyer_id" binding:"required"`
	OwnerID string `json:"owner_id" binding:"required"`
}

// ListQuery binds ?unread_only=&limit= on GET /notifications/user/:user_id
type ListQuery struct {
	UnreadOnly bool `form:"unread_only"`
	Limit      int  `form:"limit" binding:"gte=0"`
}

// Response DTOs
type BroadcastResponse struct {
	RecipientCount int `json:"recipient_count"`
}
