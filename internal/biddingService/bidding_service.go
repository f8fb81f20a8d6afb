package bidding

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"auction-services/internal/auctionerrors"
	"auction-services/internal/clients"
	"auction-services/internal/config"
	"auction-services/internal/events"
	"auction-services/internal/metrics"
	"auction-services/internal/models"
	"auction-services/internal/patterns"
	"auction-services/internal/reporting"
	"auction-services/internal/repository"
	"auction-services/utils"

	"github.com/samber/lo"
)

// PriceSyncer queues a price that could not be pushed to the auction registry
type PriceSyncer interface {
	Enqueue(ctx context.Context, auctionID string, price float64) error
}

// BiddingService defines the business logic for auction bidding
type BiddingService struct {
	repo        repository.BidStore
	auctions    clients.AuctionAPI
	notifier    clients.NotificationAPI
	prices      PriceSyncer
	publisher   events.Publisher
	callTimeout time.Duration
	now         func() time.Time

	// serializes check-then-insert per auction within this instance
	locks sync.Map
}

// NewBiddingService creates a new BiddingService instance
func NewBiddingService(
	repo repository.BidStore,
	auctions clients.AuctionAPI,
	notifier clients.NotificationAPI,
	prices PriceSyncer,
	publisher events.Publisher,
	callTimeout time.Duration,
) *BiddingService {
	return &BiddingService{
		repo:        repo,
		auctions:    auctions,
		notifier:    notifier,
		prices:      prices,
		publisher:   publisher,
		callTimeout: callTimeout,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *BiddingService) lock(auctionID string) func() {
	mu, _ := s.locks.LoadOrStore(auctionID, &sync.Mutex{})
	m := mu.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}

// PlaceBid validates a bid against the auction registry, records it and propagates the new price
func (s *BiddingService) PlaceBid(ctx context.Context, auctionID, bidderID string, amount float64) (models.Bid, error) {
	if err := validateBidInput(auctionID, bidderID, amount); err != nil {
		return models.Bid{}, err
	}

	auction, err := s.auctions.GetAuction(ctx, auctionID)
	switch {
	case errors.Is(err, auctionerrors.ErrNotFound):
		return models.Bid{}, fmt.Errorf("service: %w - auction %s", auctionerrors.ErrUnknownAuction, auctionID)
	case err != nil:
		return models.Bid{}, fmt.Errorf("service: failed to fetch auction %s: %w", auctionID, err)
	}
	if auction.Status != models.AuctionActive {
		return models.Bid{}, fmt.Errorf("service: %w - auction %s is %s", auctionerrors.ErrAuctionNotActive, auctionID, auction.Status)
	}

	unlock := s.lock(auctionID)
	bid, previous, err := s.recordBid(ctx, auction, bidderID, amount)
	unlock()
	if err != nil {
		return models.Bid{}, err
	}

	s.pushPrice(ctx, bid)
	s.notifyBid(ctx, bid, previous)

	patterns.BestEffort(ctx, config.ServiceBidding, "publish_bid_placed", s.callTimeout, func(ctx context.Context) error {
		return s.publisher.Publish(ctx, events.Event{
			Type:       events.BidPlaced,
			EntityID:   bid.ID,
			AuctionID:  bid.AuctionID,
			UserID:     bid.BidderID,
			Amount:     bid.Amount,
			OccurredAt: bid.BidTime,
		})
	})

	return bid, nil
}

// validateBidInput checks input validity
func validateBidInput(auctionID, bidderID string, amount float64) error {
	if auctionID == "" || bidderID == "" {
		return fmt.Errorf("service: %w - missing auction_id or bidder_id", auctionerrors.ErrInvalidBid)
	}
	if amount <= 0 {
		return fmt.Errorf("service: %w - non-positive bid amount", auctionerrors.ErrInvalidBid)
	}
	return nil
}

// recordBid persists the bid if it beats both the registry price and the highest bid recorded here.
// previous is the bidder who held the highest bid before, if any.
func (s *BiddingService) recordBid(ctx context.Context, auction models.Auction, bidderID string, amount float64) (models.Bid, string, error) {
	floor := auction.CurrentPrice
	var previous string

	highest, err := s.repo.HighestBid(ctx, auction.ID)
	switch {
	case err == nil:
		previous = highest.BidderID
		floor = max(floor, highest.Amount)
	case !errors.Is(err, auctionerrors.ErrNoBids):
		return models.Bid{}, "", fmt.Errorf("service: failed to check highest bid: %w", err)
	}

	if amount <= floor {
		return models.Bid{}, "", fmt.Errorf("service: %w - current price is %.2f", auctionerrors.ErrBidTooLow, floor)
	}

	bid := models.Bid{
		ID:        utils.GenerateID(),
		AuctionID: auction.ID,
		BidderID:  bidderID,
		Amount:    amount,
		BidTime:   s.now(),
	}
	if err := s.repo.CreateBid(ctx, bid); err != nil {
		return models.Bid{}, "", fmt.Errorf("service: failed to record bid for auction %s by user %s: %w", auction.ID, bidderID, err)
	}
	return bid, previous, nil
}

// pushPrice raises the registry price to the bid amount. Unavailability is handed to the price syncer.
func (s *BiddingService) pushPrice(ctx context.Context, bid models.Bid) {
	ctx = context.WithoutCancel(ctx)
	fields := map[string]any{"auction_id": bid.AuctionID, "bid_id": bid.ID, "amount": bid.Amount}

	callCtx, cancel := patterns.WithTimeout(ctx, s.callTimeout)
	_, err := s.auctions.RaisePrice(callCtx, bid.AuctionID, bid.Amount)
	cancel()

	switch {
	case err == nil:
		return
	case errors.Is(err, auctionerrors.ErrStalePrice):
		utils.Info("PlaceBid: registry already holds a higher price", fields)
		return
	case errors.Is(err, auctionerrors.ErrDownstreamUnavailable):
		fields["error"] = err.Error()
		if qErr := s.prices.Enqueue(ctx, bid.AuctionID, bid.Amount); qErr != nil {
			metrics.BestEffortFailures.WithLabelValues(config.ServiceBidding, "price_sync_enqueue").Inc()
			fields["queue_error"] = qErr.Error()
			utils.Error("PlaceBid: price update lost", fields)
			return
		}
		utils.Warn("PlaceBid: price update queued for reconciliation", fields)
	default:
		metrics.BestEffortFailures.WithLabelValues(config.ServiceBidding, "raise_price").Inc()
		fields["error"] = err.Error()
		utils.Warn("PlaceBid: price update rejected", fields)
	}
}

// notifyBid tells the bidder and the previously highest bidder about the new bid
func (s *BiddingService) notifyBid(ctx context.Context, bid models.Bid, previous string) {
	recipients := lo.Uniq(lo.Compact([]string{bid.BidderID, previous}))

	patterns.BestEffort(ctx, config.ServiceBidding, "notify_new_bid", s.callTimeout, func(ctx context.Context) error {
		_, err := s.notifier.NotifyUsers(ctx, clients.NotifyRequest{
			AuctionID: bid.AuctionID,
			Type:      models.NotificationNewBid,
			UserIDs:   recipients,
			Message:   fmt.Sprintf("New bid of %.2f placed", bid.Amount),
			Metadata: models.Metadata{
				"auction_id": bid.AuctionID,
				"bid_id":     bid.ID,
				"amount":     bid.Amount,
			},
		})
		return err
	})
}

// GetBid returns a single bid
func (s *BiddingService) GetBid(ctx context.Context, id string) (models.Bid, error) {
	bid, err := s.repo.GetBid(ctx, id)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to get bid %s: %w", id, err)
	}
	return bid, nil
}

// ListBids returns every bid
func (s *BiddingService) ListBids(ctx context.Context) ([]models.Bid, error) {
	bids, err := s.repo.ListBids(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list bids: %w", err)
	}
	return bids, nil
}

// DeleteBid removes a bid while its auction is still Active
func (s *BiddingService) DeleteBid(ctx context.Context, id string) error {
	bid, err := s.repo.GetBid(ctx, id)
	if err != nil {
		return fmt.Errorf("service: failed to get bid %s: %w", id, err)
	}

	auction, err := s.auctions.GetAuction(ctx, bid.AuctionID)
	switch {
	case errors.Is(err, auctionerrors.ErrNotFound):
		return fmt.Errorf("service: %w - auction %s", auctionerrors.ErrUnknownAuction, bid.AuctionID)
	case err != nil:
		return fmt.Errorf("service: failed to fetch auction %s: %w", bid.AuctionID, err)
	}
	if auction.Status != models.AuctionActive {
		return fmt.Errorf("service: %w - cannot delete bid on %s auction", auctionerrors.ErrAuctionNotActive, auction.Status)
	}

	if err := s.repo.DeleteBid(ctx, id); err != nil {
		return fmt.Errorf("service: failed to delete bid %s: %w", id, err)
	}
	return nil
}

// ListBidsByAuction returns all bids for a specific auction
func (s *BiddingService) ListBidsByAuction(ctx context.Context, auctionID string) ([]models.Bid, error) {
	if auctionID == "" {
		return nil, fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrInvalidBid)
	}

	bids, err := s.repo.ListBidsByAuction(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for auction %s: %w", auctionID, err)
	}
	return bids, nil
}

// ListBidsByBidder returns all bids a user has placed
func (s *BiddingService) ListBidsByBidder(ctx context.Context, bidderID string) ([]models.Bid, error) {
	if bidderID == "" {
		return nil, fmt.Errorf("service: %w - empty user ID", auctionerrors.ErrInvalidBid)
	}

	bids, err := s.repo.ListBidsByBidder(ctx, bidderID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for user %s: %w", bidderID, err)
	}
	return bids, nil
}

// HighestBid returns the highest bid for a specific auction
func (s *BiddingService) HighestBid(ctx context.Context, auctionID string) (models.Bid, error) {
	if auctionID == "" {
		return models.Bid{}, fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrInvalidBid)
	}

	highest, err := s.repo.HighestBid(ctx, auctionID)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to get highest bid for auction %s: %w", auctionID, err)
	}
	return highest, nil
}

// Report aggregates bid stats over the requested trailing windows
func (s *BiddingService) Report(ctx context.Context, windows []reporting.Window) (reporting.Report[models.BidStats], error) {
	report, err := reporting.Build(ctx, s.now(), windows, s.repo.BidStats)
	if err != nil {
		return reporting.Report[models.BidStats]{}, fmt.Errorf("service: failed to build bid report: %w", err)
	}
	return report, nil
}
