package transaction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"auction-services/internal/auctionerrors"
	"auction-services/internal/clients"
	"auction-services/internal/config"
	"auction-services/internal/events"
	"auction-services/internal/models"
	"auction-services/internal/patterns"
	"auction-services/internal/reporting"
	"auction-services/internal/repository"
	"auction-services/utils"
)

// TransactionService settles auctions: confirm closes the auction, refund reverses a completed payment
type TransactionService struct {
	repo        repository.TransactionStore
	auctions    clients.AuctionAPI
	notifier    clients.NotificationAPI
	publisher   events.Publisher
	callTimeout time.Duration
	now         func() time.Time
}

// NewTransactionService creates a new TransactionService instance
func NewTransactionService(
	repo repository.TransactionStore,
	auctions clients.AuctionAPI,
	notifier clients.NotificationAPI,
	publisher events.Publisher,
	callTimeout time.Duration,
) *TransactionService {
	return &TransactionService{
		repo:        repo,
		auctions:    auctions,
		notifier:    notifier,
		publisher:   publisher,
		callTimeout: callTimeout,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// CreateTransaction records a Pending payment. The auction state is not checked.
func (s *TransactionService) CreateTransaction(ctx context.Context, auctionID, buyerID string, amount float64) (models.Transaction, error) {
	if auctionID == "" || buyerID == "" {
		return models.Transaction{}, fmt.Errorf("service: %w - missing auction_id or buyer_id", auctionerrors.ErrInvalidTransaction)
	}
	if amount <= 0 {
		return models.Transaction{}, fmt.Errorf("service: %w - non-positive amount", auctionerrors.ErrInvalidTransaction)
	}

	now := s.now()
	tx := models.Transaction{
		ID:              utils.GenerateID(),
		AuctionID:       auctionID,
		BuyerID:         buyerID,
		Amount:          amount,
		Status:          models.TransactionPending,
		TransactionDate: now,
		UpdatedAt:       now,
	}
	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return models.Transaction{}, fmt.Errorf("service: failed to create transaction for auction %s: %w", auctionID, err)
	}

	s.publish(ctx, events.TransactionCreated, tx)
	return tx, nil
}

// GetTransaction returns a single transaction
func (s *TransactionService) GetTransaction(ctx context.Context, id string) (models.Transaction, error) {
	tx, err := s.repo.GetTransaction(ctx, id)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("service: failed to get transaction %s: %w", id, err)
	}
	return tx, nil
}

// ListTransactions returns every transaction
func (s *TransactionService) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	txs, err := s.repo.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list transactions: %w", err)
	}
	return txs, nil
}

// ListTransactionsByAuction returns the transactions of an auction
func (s *TransactionService) ListTransactionsByAuction(ctx context.Context, auctionID string) ([]models.Transaction, error) {
	txs, err := s.repo.ListTransactionsByAuction(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list transactions for auction %s: %w", auctionID, err)
	}
	return txs, nil
}

// ListTransactionsByUser returns the transactions a user paid for
func (s *TransactionService) ListTransactionsByUser(ctx context.Context, userID string) ([]models.Transaction, error) {
	txs, err := s.repo.ListTransactionsByBuyer(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list transactions for user %s: %w", userID, err)
	}
	return txs, nil
}

// ConfirmTransaction moves a Pending transaction to Completed, then closes the auction and tells the buyer.
// A second confirm fails with an invalid state error.
func (s *TransactionService) ConfirmTransaction(ctx context.Context, id string) (models.Transaction, error) {
	tx, err := s.repo.TransitionTransaction(ctx, id, models.TransactionPending, models.TransactionCompleted)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("service: failed to confirm transaction %s: %w", id, err)
	}

	patterns.BestEffort(ctx, config.ServiceTransaction, "end_auction", s.callTimeout, func(ctx context.Context) error {
		return s.auctions.EndAuction(ctx, tx.AuctionID)
	})

	patterns.BestEffort(ctx, config.ServiceTransaction, "notify_payment_confirmed", s.callTimeout, func(ctx context.Context) error {
		_, err := s.notifier.NotifyUsers(ctx, clients.NotifyRequest{
			AuctionID: tx.AuctionID,
			Type:      models.NotificationPaymentConfirmed,
			UserIDs:   []string{tx.BuyerID},
			Message:   fmt.Sprintf("Your payment for auction #%s has been confirmed", tx.AuctionID),
			Metadata:  models.Metadata{"auction_id": tx.AuctionID, "transaction_id": tx.ID},
		})
		return err
	})

	s.publish(ctx, events.TransactionConfirmed, tx)
	return tx, nil
}

// RefundTransaction moves a Completed transaction to Refunded and tells the buyer why
func (s *TransactionService) RefundTransaction(ctx context.Context, id, reason string) (models.Transaction, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return models.Transaction{}, fmt.Errorf("service: %w - refund reason is required", auctionerrors.ErrInvalidTransaction)
	}

	tx, err := s.repo.TransitionTransaction(ctx, id, models.TransactionCompleted, models.TransactionRefunded)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("service: failed to refund transaction %s: %w", id, err)
	}

	patterns.BestEffort(ctx, config.ServiceTransaction, "notify_refund_processed", s.callTimeout, func(ctx context.Context) error {
		_, err := s.notifier.NotifyUsers(ctx, clients.NotifyRequest{
			AuctionID: tx.AuctionID,
			Type:      models.NotificationRefundProcessed,
			UserIDs:   []string{tx.BuyerID},
			Message:   fmt.Sprintf("Refund for auction #%s has been processed. Reason: %s", tx.AuctionID, reason),
			Metadata: models.Metadata{
				"auction_id":     tx.AuctionID,
				"transaction_id": tx.ID,
				"reason":         reason,
			},
		})
		return err
	})

	s.publish(ctx, events.TransactionRefunded, tx)
	return tx, nil
}

// Report aggregates transaction stats over the requested trailing windows
func (s *TransactionService) Report(ctx context.Context, windows []reporting.Window) (reporting.Report[models.TransactionStats], error) {
	report, err := reporting.Build(ctx, s.now(), windows, s.repo.TransactionStats)
	if err != nil {
		return reporting.Report[models.TransactionStats]{}, fmt.Errorf("service: failed to build transaction report: %w", err)
	}
	return report, nil
}

func (s *TransactionService) publish(ctx context.Context, routingKey string, tx models.Transaction) {
	patterns.BestEffort(ctx, config.ServiceTransaction, "publish_"+strings.ReplaceAll(routingKey, ".", "_"), s.callTimeout, func(ctx context.Context) error {
		return s.publisher.Publish(ctx, events.Event{
			Type:       routingKey,
			EntityID:   tx.ID,
			AuctionID:  tx.AuctionID,
			UserID:     tx.BuyerID,
			Amount:     tx.Amount,
			OccurredAt: s.now(),
		})
	})
}
