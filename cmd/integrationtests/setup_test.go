package integrationtests

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	auction "auction-services/internal/auctionService"
	bidding "auction-services/internal/biddingService"
	"auction-services/internal/clients"
	"auction-services/internal/config"
	"auction-services/internal/events"
	item "auction-services/internal/itemService"
	notification "auction-services/internal/notificationService"
	"auction-services/internal/pricesync"
	"auction-services/internal/repository"
	"auction-services/internal/server"
	transaction "auction-services/internal/transactionService"
	user "auction-services/internal/userService"

	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const peerTimeout = 2 * time.Second

// lateHandler lets a server start before the router it serves exists,
// so services that call each other can learn each other's URLs first.
type lateHandler struct {
	h atomic.Pointer[gin.Engine]
}

func (l *lateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	l.h.Load().ServeHTTP(w, r)
}

// Cluster is one running instance of every service, each with its own in-memory store
type Cluster struct {
	Auction      *httptest.Server
	Bidding      *httptest.Server
	Transaction  *httptest.Server
	Notification *httptest.Server
	Item         *httptest.Server
	User         *httptest.Server

	// PriceSync holds raises the bidding service could not deliver
	PriceSync *pricesync.MemoryQueue
}

// SetupCluster starts all six services on httptest servers and wires them through their HTTP clients.
func SetupCluster(t *testing.T) *Cluster {
	t.Helper()
	gin.SetMode(gin.TestMode)

	names := []string{
		config.ServiceAuction, config.ServiceBidding, config.ServiceTransaction,
		config.ServiceNotification, config.ServiceItem, config.ServiceUser,
	}
	handlers := make(map[string]*lateHandler, len(names))
	servers := make(map[string]*httptest.Server, len(names))
	for _, name := range names {
		handlers[name] = &lateHandler{}
		servers[name] = httptest.NewServer(handlers[name])
		t.Cleanup(servers[name].Close)
	}

	auctionURL := servers[config.ServiceAuction].URL
	biddingURL := servers[config.ServiceBidding].URL
	itemURL := servers[config.ServiceItem].URL
	notificationURL := servers[config.ServiceNotification].URL

	queue := pricesync.NewMemoryQueue(64)
	priceSync := pricesync.NewReconciler(
		queue,
		clients.NewAuctionClient(config.ServiceBidding, auctionURL, peerTimeout),
		config.PriceSyncConfig{MaxAttempts: 3, BaseBackoff: 10 * time.Millisecond},
	)

	handlers[config.ServiceAuction].h.Store(server.SetupAuctionRouter(auction.NewAuctionService(
		repository.NewMemoryRepo(),
		clients.NewBiddingClient(config.ServiceAuction, biddingURL, peerTimeout),
		clients.NewItemClient(config.ServiceAuction, itemURL, peerTimeout),
		clients.NewNotificationClient(config.ServiceAuction, notificationURL, peerTimeout),
		events.LogPublisher{},
		peerTimeout,
	)))
	handlers[config.ServiceBidding].h.Store(server.SetupBiddingRouter(bidding.NewBiddingService(
		repository.NewMemoryRepo(),
		clients.NewAuctionClient(config.ServiceBidding, auctionURL, peerTimeout),
		clients.NewNotificationClient(config.ServiceBidding, notificationURL, peerTimeout),
		priceSync,
		events.LogPublisher{},
		peerTimeout,
	)))
	handlers[config.ServiceTransaction].h.Store(server.SetupTransactionRouter(transaction.NewTransactionService(
		repository.NewMemoryRepo(),
		clients.NewAuctionClient(config.ServiceTransaction, auctionURL, peerTimeout),
		clients.NewNotificationClient(config.ServiceTransaction, notificationURL, peerTimeout),
		events.LogPublisher{},
		peerTimeout,
	)))
	handlers[config.ServiceNotification].h.Store(server.SetupNotificationRouter(
		notification.NewNotificationService(repository.NewMemoryRepo()),
	))
	handlers[config.ServiceItem].h.Store(server.SetupItemRouter(
		item.NewItemService(repository.NewMemoryRepo()),
	))
	handlers[config.ServiceUser].h.Store(server.SetupUserRouter(user.NewUserService(
		repository.NewMemoryRepo(),
		config.AuthConfig{JWTSecret: "integration-secret", JWTTTL: time.Hour, BcryptCost: bcrypt.MinCost},
	)))

	return &Cluster{
		Auction:      servers[config.ServiceAuction],
		Bidding:      servers[config.ServiceBidding],
		Transaction:  servers[config.ServiceTransaction],
		Notification: servers[config.ServiceNotification],
		Item:         servers[config.ServiceItem],
		User:         servers[config.ServiceUser],
		PriceSync:    queue,
	}
}

// Response is the decoded success or error envelope
type Response struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

// ExecuteRequest sends body as JSON to srv and decodes the envelope. 204 responses decode to an empty Response.
func ExecuteRequest(t *testing.T, srv *httptest.Server, method, path string, body any) (int, Response) {
	t.Helper()
	req := resty.New().SetBaseURL(srv.URL).R().SetContext(context.Background())
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	resp, err := req.Execute(method, path)
	require.NoError(t, err)

	var env Response
	if resp.StatusCode() != http.StatusNoContent {
		require.NoError(t, json.Unmarshal(resp.Body(), &env), "body: %s", resp.String())
	}
	return resp.StatusCode(), env
}

// ExecuteRequestAndParse is ExecuteRequest plus decoding the data field into out
func ExecuteRequestAndParse(t *testing.T, srv *httptest.Server, method, path string, body, out any) (int, Response) {
	t.Helper()
	status, env := ExecuteRequest(t, srv, method, path, body)
	if status < http.StatusBadRequest && out != nil {
		require.NoError(t, json.Unmarshal(env.Data, out))
	}
	return status, env
}
