package auction

import (
	"context"
	"errors"
	"fmt"
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

	"github.com/samber/lo"
)

// AuctionUpdate carries the fields of PUT /auctions/:id; nil fields are left unchanged
type AuctionUpdate struct {
	StartTime     *time.Time
	EndDate       *time.Time
	StartingPrice *float64
	Status        *models.AuctionStatus
}

// AuctionService owns the auction lifecycle and pricing state
type AuctionService struct {
	repo        repository.AuctionStore
	bidding     clients.BiddingAPI
	items       clients.ItemAPI
	notifier    clients.NotificationAPI
	publisher   events.Publisher
	callTimeout time.Duration
	now         func() time.Time
}

// NewAuctionService creates a new AuctionService instance
func NewAuctionService(
	repo repository.AuctionStore,
	bidding clients.BiddingAPI,
	items clients.ItemAPI,
	notifier clients.NotificationAPI,
	publisher events.Publisher,
	callTimeout time.Duration,
) *AuctionService {
	return &AuctionService{
		repo:        repo,
		bidding:     bidding,
		items:       items,
		notifier:    notifier,
		publisher:   publisher,
		callTimeout: callTimeout,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// CreateAuction validates and stores a new auction. It always starts Active.
func (s *AuctionService) CreateAuction(ctx context.Context, auction models.Auction) (models.Auction, error) {
	now := s.now()
	if auction.StartTime.IsZero() {
		auction.StartTime = now
	}
	if auction.Status == models.AuctionStatusUnknown {
		auction.Status = models.AuctionActive
	}
	if auction.CurrentPrice == 0 {
		auction.CurrentPrice = auction.StartingPrice
	}
	if err := validateAuction(auction); err != nil {
		return models.Auction{}, err
	}
	if auction.Status != models.AuctionActive {
		return models.Auction{}, fmt.Errorf("service: %w - new auctions must be Active, got %s", auctionerrors.ErrInvalidAuction, auction.Status)
	}

	auction.ID = utils.GenerateID()
	auction.CreatedAt = now
	auction.UpdatedAt = now

	if err := s.repo.CreateAuction(ctx, auction); err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to create auction for item %s: %w", auction.ItemID, err)
	}
	return auction, nil
}

func validateAuction(a models.Auction) error {
	switch {
	case a.ItemID == "":
		return fmt.Errorf("service: %w - missing item_id", auctionerrors.ErrInvalidAuction)
	case a.StartingPrice < 0:
		return fmt.Errorf("service: %w - negative starting price", auctionerrors.ErrInvalidAuction)
	case a.CurrentPrice < a.StartingPrice:
		return fmt.Errorf("service: %w - current price %.2f below starting price %.2f", auctionerrors.ErrInvalidAuction, a.CurrentPrice, a.StartingPrice)
	case !a.EndDate.After(a.StartTime):
		return fmt.Errorf("service: %w - end_date must be after start_time", auctionerrors.ErrInvalidAuction)
	}
	return nil
}

// GetAuction returns a single auction
func (s *AuctionService) GetAuction(ctx context.Context, id string) (models.Auction, error) {
	auction, err := s.repo.GetAuction(ctx, id)
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to get auction %s: %w", id, err)
	}
	return auction, nil
}

// ListAuctions returns every auction
func (s *AuctionService) ListAuctions(ctx context.Context) ([]models.Auction, error) {
	auctions, err := s.repo.ListAuctions(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list auctions: %w", err)
	}
	return auctions, nil
}

// UpdateAuction changes timing, starting price and, through a legal transition, status.
// The current price is only ever changed by RaisePrice.
func (s *AuctionService) UpdateAuction(ctx context.Context, id string, update AuctionUpdate) (models.Auction, error) {
	auction, err := s.repo.GetAuction(ctx, id)
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to get auction %s: %w", id, err)
	}

	detailsChanged := update.StartTime != nil || update.EndDate != nil || update.StartingPrice != nil
	if detailsChanged {
		if auction.Status.Terminal() {
			return models.Auction{}, fmt.Errorf("service: auction %s is %s: %w", id, auction.Status, auctionerrors.ErrIllegalTransition)
		}
		if update.StartTime != nil {
			auction.StartTime = update.StartTime.UTC()
		}
		if update.EndDate != nil {
			auction.EndDate = update.EndDate.UTC()
		}
		if update.StartingPrice != nil {
			auction.StartingPrice = *update.StartingPrice
		}
		if err := validateAuction(auction); err != nil {
			return models.Auction{}, err
		}
		if err := s.repo.UpdateAuctionDetails(ctx, auction); err != nil {
			return models.Auction{}, fmt.Errorf("service: failed to update auction %s: %w", id, err)
		}
	}

	if update.Status != nil && *update.Status != auction.Status {
		if _, _, err := s.moveTo(ctx, id, *update.Status); err != nil {
			return models.Auction{}, err
		}
	}

	return s.GetAuction(ctx, id)
}

// CancelAuction soft-deletes an auction. Cancelling twice is not an error.
func (s *AuctionService) CancelAuction(ctx context.Context, id string) (models.Auction, error) {
	auction, _, err := s.moveTo(ctx, id, models.AuctionCancelled)
	return auction, err
}

// StartAuction stamps a new start time on an Active auction and tells the item owner.
func (s *AuctionService) StartAuction(ctx context.Context, id string) (models.Auction, error) {
	auction, err := s.repo.GetAuction(ctx, id)
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to get auction %s: %w", id, err)
	}
	if auction.Status.Terminal() {
		return models.Auction{}, fmt.Errorf("service: cannot start auction %s in status %s: %w", id, auction.Status, auctionerrors.ErrIllegalTransition)
	}
	if err := s.repo.RestartAuction(ctx, id, s.now()); err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to start auction %s: %w", id, err)
	}

	auction, err = s.repo.GetAuction(ctx, id)
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to reload auction %s: %w", id, err)
	}

	patterns.BestEffort(ctx, config.ServiceAuction, "notify_auction_started", s.callTimeout, func(ctx context.Context) error {
		item, err := s.items.GetItem(ctx, auction.ItemID)
		if err != nil {
			return err
		}
		if item.OwnerID == "" {
			return nil
		}
		_, err = s.notifier.NotifyUsers(ctx, clients.NotifyRequest{
			AuctionID: id,
			Type:      models.NotificationAuctionStarted,
			UserIDs:   []string{item.OwnerID},
			Message:   fmt.Sprintf("Your auction for %q has started", item.Name),
		})
		return err
	})

	return auction, nil
}

// EndAuction closes an Active auction and hands it to settlement. Ending twice is not an error.
func (s *AuctionService) EndAuction(ctx context.Context, id string) (models.Auction, error) {
	auction, changed, err := s.moveTo(ctx, id, models.AuctionClosed)
	if err != nil {
		return models.Auction{}, err
	}
	if changed {
		patterns.BestEffort(ctx, config.ServiceAuction, "publish_auction_ended", s.callTimeout, func(ctx context.Context) error {
			return s.publisher.Publish(ctx, events.Event{
				Type:       events.AuctionEnded,
				EntityID:   id,
				AuctionID:  id,
				Amount:     auction.CurrentPrice,
				OccurredAt: s.now(),
			})
		})
	}
	return auction, nil
}

// RaisePrice applies a conditional price raise; equal or lower prices fail with a stale price error.
func (s *AuctionService) RaisePrice(ctx context.Context, id string, price float64) (models.Auction, error) {
	if price <= 0 {
		return models.Auction{}, fmt.Errorf("service: %w - non-positive price", auctionerrors.ErrInvalidAuction)
	}
	auction, err := s.repo.RaisePrice(ctx, id, price)
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to raise price of auction %s: %w", id, err)
	}
	return auction, nil
}

// ListAuctionBids proxies to the bidding service
func (s *AuctionService) ListAuctionBids(ctx context.Context, id string) ([]models.Bid, error) {
	if _, err := s.repo.GetAuction(ctx, id); err != nil {
		return nil, fmt.Errorf("service: failed to get auction %s: %w", id, err)
	}
	bids, err := s.bidding.ListBidsByAuction(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: failed to fetch bids for auction %s: %w", id, err)
	}
	return bids, nil
}

// ListAuctionsByUser returns the auctions of every item the user owns
func (s *AuctionService) ListAuctionsByUser(ctx context.Context, userID string) ([]models.Auction, error) {
	items, err := s.items.ListItemsByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to fetch items of user %s: %w", userID, err)
	}
	if len(items) == 0 {
		return []models.Auction{}, nil
	}

	itemIDs := lo.Map(items, func(i models.Item, _ int) string { return i.ID })
	auctions, err := s.repo.ListAuctionsByItems(ctx, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list auctions of user %s: %w", userID, err)
	}
	return auctions, nil
}

// HandleAuctionEnded notifies the winning bidder of a closed auction.
func (s *AuctionService) HandleAuctionEnded(ctx context.Context, auctionID string) error {
	winner, err := s.bidding.HighestBid(ctx, auctionID)
	if errors.Is(err, auctionerrors.ErrNotFound) {
		utils.Info("settlement: auction ended without bids", map[string]any{"auction_id": auctionID})
		return nil
	}
	if err != nil {
		return fmt.Errorf("service: failed to fetch winning bid for auction %s: %w", auctionID, err)
	}

	patterns.BestEffort(ctx, config.ServiceAuction, "notify_auction_ended", s.callTimeout, func(ctx context.Context) error {
		_, err := s.notifier.NotifyUsers(ctx, clients.NotifyRequest{
			AuctionID: auctionID,
			Type:      models.NotificationAuctionEnded,
			UserIDs:   []string{winner.BidderID},
			Message:   fmt.Sprintf("You won the auction with a bid of %.2f", winner.Amount),
			Metadata: models.Metadata{
				"auction_id": auctionID,
				"bid_id":     winner.ID,
				"amount":     winner.Amount,
			},
		})
		return err
	})

	utils.Info("settlement: winner notified", map[string]any{
		"auction_id": auctionID,
		"bid_id":     winner.ID,
		"bidder_id":  winner.BidderID,
	})
	return nil
}

// Report aggregates auction stats over the requested trailing windows
func (s *AuctionService) Report(ctx context.Context, windows []reporting.Window) (reporting.Report[models.AuctionStats], error) {
	report, err := reporting.Build(ctx, s.now(), windows, s.repo.AuctionStats)
	if err != nil {
		return reporting.Report[models.AuctionStats]{}, fmt.Errorf("service: failed to build auction report: %w", err)
	}
	return report, nil
}

// moveTo applies a legal status transition. changed is false when the auction was already in status to.
func (s *AuctionService) moveTo(ctx context.Context, id string, to models.AuctionStatus) (models.Auction, bool, error) {
	auction, err := s.repo.GetAuction(ctx, id)
	if err != nil {
		return models.Auction{}, false, fmt.Errorf("service: failed to get auction %s: %w", id, err)
	}
	if auction.Status == to {
		return auction, false, nil
	}
	if !auction.Status.CanTransitionTo(to) {
		return models.Auction{}, false, fmt.Errorf("service: cannot move auction %s from %s to %s: %w", id, auction.Status, to, auctionerrors.ErrIllegalTransition)
	}

	if err := s.repo.TransitionAuction(ctx, id, auction.Status, to); err != nil {
		if errors.Is(err, auctionerrors.ErrIllegalTransition) {
			// a concurrent request may already have made the same move
			if current, getErr := s.repo.GetAuction(ctx, id); getErr == nil && current.Status == to {
				return current, false, nil
			}
		}
		return models.Auction{}, false, fmt.Errorf("service: failed to move auction %s to %s: %w", id, to, err)
	}

	auction, err = s.repo.GetAuction(ctx, id)
	if err != nil {
		return models.Auction{}, false, fmt.Errorf("service: failed to reload auction %s: %w", id, err)
	}
	return auction, true, nil
}
