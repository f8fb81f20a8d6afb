package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	auction "auction-services/internal/auctionService"
	bidding "auction-services/internal/biddingService"
	"auction-services/internal/clients"
	"auction-services/internal/config"
	"auction-services/internal/events"
	item "auction-services/internal/itemService"
	"auction-services/internal/models"
	notification "auction-services/internal/notificationService"
	"auction-services/internal/pricesync"
	"auction-services/internal/repository"
	"auction-services/internal/server"
	transaction "auction-services/internal/transactionService"
	user "auction-services/internal/userService"
	"auction-services/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		utils.Fatal("invalid configuration", map[string]any{"error": err.Error()})
	}
	utils.SetService(cfg.Service)
	if err := utils.SetLevel(cfg.LogLevel); err != nil {
		utils.Warn("unknown log level, keeping info", map[string]any{"level": cfg.LogLevel})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		utils.Fatal("service stopped with error", map[string]any{"service": cfg.Service, "error": err.Error()})
	}
}

// app holds what a running service must release on shutdown
type app struct {
	cfg     config.Config
	workers sync.WaitGroup
	closers []func() error
}

func (a *app) onClose(fn func() error) {
	a.closers = append(a.closers, fn)
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			utils.Warn("failed to release resource", map[string]any{"error": err.Error()})
		}
	}
}

// spawn runs a background worker until ctx is cancelled
func (a *app) spawn(ctx context.Context, name string, fn func(context.Context) error) {
	a.workers.Add(1)
	go func() {
		defer a.workers.Done()
		if err := fn(ctx); err != nil {
			utils.Error("background worker stopped", map[string]any{"worker": name, "error": err.Error()})
		}
	}()
}

func run(ctx context.Context, cfg config.Config) error {
	a := &app{cfg: cfg}
	defer a.close()

	store, err := a.openStore(ctx)
	if err != nil {
		return err
	}

	router, err := a.buildRouter(ctx, store)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.ServerURL,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		utils.Info("Starting auction server", map[string]any{"service": cfg.Service, "addr": cfg.ServerURL})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("listen on %s: %w", cfg.ServerURL, err)
		}
	case <-ctx.Done():
	}

	utils.Info("shutting down", map[string]any{"service": cfg.Service})
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.Warn("graceful shutdown failed", map[string]any{"error": err.Error()})
	}
	a.workers.Wait()
	return nil
}

func (a *app) openStore(ctx context.Context) (repository.Store, error) {
	if a.cfg.DB.Driver == config.DriverMemory {
		repo := repository.NewMemoryRepo()
		if a.cfg.SeedItems && a.cfg.Service == config.ServiceItem {
			prepopulateItems(repo)
		}
		return repo, nil
	}

	db, err := repository.Open(a.cfg.DB)
	if err != nil {
		return nil, err
	}
	repo := repository.NewGormRepo(db)
	a.onClose(repo.Close)
	if err := repo.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("migrate %s database: %w", a.cfg.DB.Driver, err)
	}
	return repo, nil
}

func (a *app) publisher() events.Publisher {
	if a.cfg.RabbitMQ.URL == "" {
		return events.LogPublisher{}
	}
	p := events.NewAMQPPublisher(a.cfg.RabbitMQ.URL, a.cfg.RabbitMQ.Exchange)
	a.onClose(p.Close)
	return p
}

func (a *app) priceSyncQueue(ctx context.Context) (pricesync.Queue, error) {
	if a.cfg.Redis.Addr == "" {
		return pricesync.NewMemoryQueue(1024), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     a.cfg.Redis.Addr,
		Password: a.cfg.Redis.Password,
		DB:       a.cfg.Redis.DB,
	})
	a.onClose(client.Close)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis at %s: %w", a.cfg.Redis.Addr, err)
	}
	queue, err := pricesync.NewRedisQueue(client, a.cfg.Redis.PriceSyncKey)
	if err != nil {
		return nil, err
	}
	return queue, nil
}

// buildRouter wires the selected service with its storage, peers and workers
func (a *app) buildRouter(ctx context.Context, store repository.Store) (*gin.Engine, error) {
	peers := a.cfg.Peers
	svc := a.cfg.Service

	switch svc {
	case config.ServiceAuction:
		auctionSvc := auction.NewAuctionService(
			store,
			clients.NewBiddingClient(svc, peers.BiddingURL, peers.Timeout),
			clients.NewItemClient(svc, peers.ItemURL, peers.Timeout),
			clients.NewNotificationClient(svc, peers.NotificationURL, peers.Timeout),
			a.publisher(),
			peers.Timeout,
		)
		if a.cfg.RabbitMQ.URL != "" {
			consumer := events.NewSettlementConsumer(a.cfg.RabbitMQ.URL, a.cfg.RabbitMQ.Exchange, auctionSvc)
			a.spawn(ctx, "settlement-consumer", consumer.Run)
		}
		return server.SetupAuctionRouter(auctionSvc), nil

	case config.ServiceBidding:
		queue, err := a.priceSyncQueue(ctx)
		if err != nil {
			return nil, err
		}
		auctions := clients.NewAuctionClient(svc, peers.AuctionURL, peers.Timeout)
		reconciler := pricesync.NewReconciler(queue, auctions, a.cfg.PriceSync)
		a.spawn(ctx, "price-sync", reconciler.Run)

		return server.SetupBiddingRouter(bidding.NewBiddingService(
			store,
			auctions,
			clients.NewNotificationClient(svc, peers.NotificationURL, peers.Timeout),
			reconciler,
			a.publisher(),
			peers.Timeout,
		)), nil

	case config.ServiceTransaction:
		return server.SetupTransactionRouter(transaction.NewTransactionService(
			store,
			clients.NewAuctionClient(svc, peers.AuctionURL, peers.Timeout),
			clients.NewNotificationClient(svc, peers.NotificationURL, peers.Timeout),
			a.publisher(),
			peers.Timeout,
		)), nil

	case config.ServiceNotification:
		return server.SetupNotificationRouter(notification.NewNotificationService(store)), nil

	case config.ServiceItem:
		return server.SetupItemRouter(item.NewItemService(store)), nil

	case config.ServiceUser:
		return server.SetupUserRouter(user.NewUserService(store, a.cfg.Auth)), nil
	}
	return nil, fmt.Errorf("unknown service %q", svc)
}

// prepopulateItems adds sample items to the in-memory repo
func prepopulateItems(repo *repository.MemoryRepo) {
	now := time.Now().UTC()
	items := []models.Item{
		{ID: "item1", Name: "title1", Description: "description1", CategoryID: "general", OwnerID: "user1"},
		{ID: "item2", Name: "title2", Description: "Description2", CategoryID: "general", OwnerID: "user2"},
		{ID: "item3", Name: "title3", Description: "Description3", CategoryID: "collectibles", OwnerID: "user1"},
	}

	for _, it := range items {
		it.CreatedAt, it.UpdatedAt = now, now
		repo.AddItem(it)
	}
}
