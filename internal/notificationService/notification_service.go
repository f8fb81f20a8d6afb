package notification

import (
	"context"
	"fmt"
	"time"

	"auction-services/internal/auctionerrors"
	"auction-services/internal/models"
	"auction-services/internal/reporting"
	"auction-services/internal/repository"
	"auction-services/utils"

	"github.com/samber/lo"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// Broadcast is one message fanned out to several users of an auction
type Broadcast struct {
	Type     models.NotificationType
	UserIDs  []string
	Message  string
	Metadata models.Metadata
}

// NotificationService stores per-user notifications. It makes no outbound calls.
type NotificationService struct {
	repo repository.NotificationStore
	now  func() time.Time
}

// NewNotificationService creates a new NotificationService instance
func NewNotificationService(repo repository.NotificationStore) *NotificationService {
	return &NotificationService{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (s *NotificationService) build(userID string, typ models.NotificationType, message string, metadata models.Metadata) models.Notification {
	return models.Notification{
		ID:        utils.GenerateID(),
		UserID:    userID,
		Type:      typ,
		Message:   message,
		Metadata:  metadata,
		CreatedAt: s.now(),
	}
}

// CreateNotification stores a single notification
func (s *NotificationService) CreateNotification(ctx context.Context, userID string, typ models.NotificationType, message string, metadata models.Metadata) (models.Notification, error) {
	if userID == "" {
		return models.Notification{}, fmt.Errorf("service: %w - missing user_id", auctionerrors.ErrInvalidNotification)
	}
	if !typ.Valid() {
		return models.Notification{}, fmt.Errorf("service: %w - unknown type", auctionerrors.ErrInvalidNotification)
	}

	n := s.build(userID, typ, message, metadata)
	if err := s.repo.CreateNotifications(ctx, []models.Notification{n}); err != nil {
		return models.Notification{}, fmt.Errorf("service: failed to create notification for user %s: %w", userID, err)
	}
	return n, nil
}

// ListForUser returns a user's notifications, newest first. limit <= 0 means DefaultListLimit.
func (s *NotificationService) ListForUser(ctx context.Context, userID string, unreadOnly bool, limit int) ([]models.Notification, error) {
	switch {
	case limit <= 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}

	notifications, err := s.repo.ListNotificationsByUser(ctx, userID, unreadOnly, limit)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list notifications for user %s: %w", userID, err)
	}
	return notifications, nil
}

// MarkRead flags a notification as read; read_at keeps the first read time
func (s *NotificationService) MarkRead(ctx context.Context, id string) (models.Notification, error) {
	n, err := s.repo.MarkNotificationRead(ctx, id, s.now())
	if err != nil {
		return models.Notification{}, fmt.Errorf("service: failed to mark notification %s read: %w", id, err)
	}
	return n, nil
}

// DeleteNotification removes a notification
func (s *NotificationService) DeleteNotification(ctx context.Context, id string) error {
	if err := s.repo.DeleteNotification(ctx, id); err != nil {
		return fmt.Errorf("service: failed to delete notification %s: %w", id, err)
	}
	return nil
}

// NotifyAuctionUsers creates one notification per distinct user in a single batch and returns how many were sent
func (s *NotificationService) NotifyAuctionUsers(ctx context.Context, auctionID string, b Broadcast) (int, error) {
	if !b.Type.Valid() {
		return 0, fmt.Errorf("service: %w - unknown type", auctionerrors.ErrInvalidNotification)
	}
	recipients := lo.Uniq(lo.Compact(b.UserIDs))
	if len(recipients) == 0 {
		return 0, fmt.Errorf("service: %w - no recipients", auctionerrors.ErrInvalidNotification)
	}

	metadata := b.Metadata
	if len(metadata) == 0 {
		metadata = models.Metadata{"auction_id": auctionID}
	}

	batch := lo.Map(recipients, func(userID string, _ int) models.Notification {
		return s.build(userID, b.Type, b.Message, metadata)
	})
	if err := s.repo.CreateNotifications(ctx, batch); err != nil {
		return 0, fmt.Errorf("service: failed to notify users of auction %s: %w", auctionID, err)
	}
	return len(batch), nil
}

// NotifyItemSold tells the buyer about the purchase and the owner about the sale
func (s *NotificationService) NotifyItemSold(ctx context.Context, itemID, buyerID, ownerID string) ([]models.Notification, error) {
	if itemID == "" || buyerID == "" || ownerID == "" {
		return nil, fmt.Errorf("service: %w - item_id, buyer_id and owner_id are required", auctionerrors.ErrInvalidNotification)
	}

	metadata := models.Metadata{"item_id": itemID}
	batch := []models.Notification{
		s.build(buyerID, models.NotificationItemPurchased, fmt.Sprintf("You've successfully purchased item #%s", itemID), metadata),
		s.build(ownerID, models.NotificationItemSold, fmt.Sprintf("Your item #%s has been sold", itemID), metadata),
	}
	if err := s.repo.CreateNotifications(ctx, batch); err != nil {
		return nil, fmt.Errorf("service: failed to notify sale of item %s: %w", itemID, err)
	}
	return batch, nil
}

// Report aggregates notification stats over the requested trailing windows
func (s *NotificationService) Report(ctx context.Context, windows []reporting.Window) (reporting.Report[models.NotificationStats], error) {
	report, err := reporting.Build(ctx, s.now(), windows, s.repo.NotificationStats)
	if err != nil {
		return reporting.Report[models.NotificationStats]{}, fmt.Errorf("service: failed to build notification report: %w", err)
	}
	return report, nil
}
