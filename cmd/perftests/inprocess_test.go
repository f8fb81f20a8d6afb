package perftests

import (
	"context"
	"fmt"
	"time"

	bidding "auction-services/internal/biddingService"
	"auction-services/internal/clients"
	"auction-services/internal/config"
	"auction-services/internal/events"
	"auction-services/internal/models"
	notification "auction-services/internal/notificationService"
	"auction-services/internal/pricesync"
	"auction-services/internal/repository"
)

// registry serves the bidding service's auction calls straight from a store, skipping HTTP
type registry struct {
	store repository.AuctionStore
}

func (r registry) GetAuction(ctx context.Context, id string) (models.Auction, error) {
	return r.store.GetAuction(ctx, id)
}

func (r registry) RaisePrice(ctx context.Context, id string, price float64) (models.Auction, error) {
	return r.store.RaisePrice(ctx, id, price)
}

func (r registry) EndAuction(ctx context.Context, id string) error {
	return r.store.TransitionAuction(ctx, id, models.AuctionActive, models.AuctionClosed)
}

// inbox delivers fan-outs to an in-process notification service
type inbox struct {
	svc *notification.NotificationService
}

func (n inbox) NotifyUsers(ctx context.Context, req clients.NotifyRequest) (int, error) {
	return n.svc.NotifyAuctionUsers(ctx, req.AuctionID, notification.Broadcast{
		Type:     req.Type,
		UserIDs:  req.UserIDs,
		Message:  req.Message,
		Metadata: req.Metadata,
	})
}

func auctionID(i int) string { return fmt.Sprintf("auction_%d", i) }

// setupRepo creates a bidding service over numAuctions Active auctions starting at startingPrice
func setupRepo(numAuctions int, startingPrice float64) (*repository.MemoryRepo, *bidding.BiddingService) {
	repo := repository.NewMemoryRepo()
	now := time.Now().UTC()
	for i := range numAuctions {
		_ = repo.CreateAuction(context.Background(), models.Auction{
			ID:            auctionID(i),
			ItemID:        fmt.Sprintf("item_%d", i),
			StartTime:     now,
			EndDate:       now.Add(time.Hour),
			StartingPrice: startingPrice,
			CurrentPrice:  startingPrice,
			Status:        models.AuctionActive,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}

	auctions := registry{store: repo}
	svc := bidding.NewBiddingService(
		repo,
		auctions,
		inbox{svc: notification.NewNotificationService(repo)},
		pricesync.NewReconciler(pricesync.NewMemoryQueue(1024), auctions, config.PriceSyncConfig{MaxAttempts: 3, BaseBackoff: time.Millisecond}),
		events.LogPublisher{},
		time.Second,
	)
	return repo, svc
}
