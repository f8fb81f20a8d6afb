package server

import (
	"net/http"

	"auction-services/internal/config"
	"auction-services/internal/metrics"
	auctionhandler "auction-services/services/auction/handler"
	biddinghandler "auction-services/services/bidding/handler"
	itemhandler "auction-services/services/item/handler"
	notificationhandler "auction-services/services/notification/handler"
	transactionhandler "auction-services/services/transaction/handler"
	userhandler "auction-services/services/user/handler"
	"auction-services/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewEngine returns a gin engine with the middleware and probes every service shares
func NewEngine(service string) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())                        // recover from panics
	router.Use(RequestLoggerMiddleware(service))      // custom request logging
	router.Use(metrics.PrometheusMiddleware(service)) // request counters and latency

	router.GET("/health", func(c *gin.Context) {
		utils.JSONResponse(c, http.StatusOK, gin.H{"service": service}, "ok")
	})
	router.GET("/metrics/prometheus", gin.WrapH(promhttp.Handler()))
	return router
}

// SetupAuctionRouter configures the Auction Registry routes
func SetupAuctionRouter(service auctionhandler.AuctionServiceInterface) *gin.Engine {
	router := NewEngine(config.ServiceAuction)
	h := auctionhandler.NewAuctionHandler(service)

	auctions := router.Group("/auctions")
	{
		auctions.POST("", h.CreateAuctionHandler)
		auctions.GET("", h.ListAuctionsHandler)
		auctions.GET("/:id", h.GetAuctionHandler)
		auctions.PUT("/:id", h.UpdateAuctionHandler)
		auctions.DELETE("/:id", h.CancelAuctionHandler)
		auctions.PUT("/:id/start", h.StartAuctionHandler)
		auctions.PUT("/:id/end", h.EndAuctionHandler)
		auctions.PUT("/:id/current_price", h.UpdatePriceHandler)
		auctions.GET("/:id/bids", h.ListAuctionBidsHandler)
		auctions.GET("/user/:user_id", h.ListUserAuctionsHandler)
	}
	router.GET("/metrics", h.MetricsHandler)

	return router
}

// SetupBiddingRouter configures the Bidding Service routes
func SetupBiddingRouter(service biddinghandler.BiddingServiceInterface) *gin.Engine {
	router := NewEngine(config.ServiceBidding)
	h := biddinghandler.NewBiddingHandler(service)

	bids := router.Group("/bids")
	{
		bids.POST("", h.RecordBidHandler)
		bids.GET("", h.ListBidsHandler)
		bids.GET("/:id", h.GetBidHandler)
		bids.DELETE("/:id", h.DeleteBidHandler)
		bids.GET("/auction/:auction_id", h.GetBidsByAuctionHandler)
		bids.GET("/auction/:auction_id/highest", h.GetHighestBidHandler)
		bids.GET("/user/:user_id", h.GetBidsByUserHandler)
	}
	router.GET("/metrics", h.MetricsHandler)

	return router
}

// SetupTransactionRouter configures the Transaction Service routes
func SetupTransactionRouter(service transactionhandler.TransactionServiceInterface) *gin.Engine {
	router := NewEngine(config.ServiceTransaction)
	h := transactionhandler.NewTransactionHandler(service)

	transactions := router.Group("/transactions")
	{
		transactions.POST("", h.CreateTransactionHandler)
		transactions.GET("", h.ListTransactionsHandler)
		transactions.GET("/:id", h.GetTransactionHandler)
		transactions.PUT("/:id/confirm", h.ConfirmTransactionHandler)
		transactions.PUT("/:id/refund", h.RefundTransactionHandler)
		transactions.GET("/auction/:auction_id", h.ListAuctionTransactionsHandler)
		transactions.GET("/user/:user_id", h.ListUserTransactionsHandler)
	}
	router.GET("/metrics", h.MetricsHandler)

	return router
}

// SetupNotificationRouter configures the Notification Service routes
func SetupNotificationRouter(service notificationhandler.NotificationServiceInterface) *gin.Engine {
	router := NewEngine(config.ServiceNotification)
	h := notificationhandler.NewNotificationHandler(service)

	notifications := router.Group("/notifications")
	{
		notifications.POST("", h.CreateNotificationHandler)
		notifications.GET("/user/:user_id", h.ListUserNotificationsHandler)
		notifications.PUT("/:id/read", h.MarkReadHandler)
		notifications.DELETE("/:id", h.DeleteNotificationHandler)
		notifications.POST("/auction/:auction_id/new", h.NotifyAuctionUsersHandler)
		notifications.POST("/item/:item_id/sold", h.NotifyItemSoldHandler)
	}
	router.GET("/metrics", h.MetricsHandler)

	return router
}

// SetupItemRouter configures the Item Registry routes
func SetupItemRouter(service itemhandler.ItemServiceInterface) *gin.Engine {
	router := NewEngine(config.ServiceItem)
	h := itemhandler.NewItemHandler(service)

	items := router.Group("/items")
	{
		items.POST("", h.CreateItemHandler)
		items.GET("", h.ListItemsHandler)
		items.GET("/:id", h.GetItemHandler)
		items.PUT("/:id", h.UpdateItemHandler)
		items.DELETE("/:id", h.DeleteItemHandler)
		items.GET("/category/:category_id", h.ListCategoryItemsHandler)
		items.GET("/user/:user_id", h.ListUserItemsHandler)
	}

	return router
}

// SetupUserRouter configures the Auth/User Service routes
func SetupUserRouter(service userhandler.UserServiceInterface) *gin.Engine {
	router := NewEngine(config.ServiceUser)
	h := userhandler.NewUserHandler(service)

	users := router.Group("/users")
	{
		users.POST("", h.RegisterHandler)
		users.GET("", h.ListUsersHandler)
		users.GET("/:id", h.GetUserHandler)
		users.PUT("/:id", h.UpdateUserHandler)
		users.DELETE("/:id", h.DeleteUserHandler)
	}

	auth := router.Group("/auth")
	{
		auth.POST("/login", h.LoginHandler)
		auth.GET("/me", h.RequireToken, h.MeHandler)
	}
	router.GET("/metrics", h.MetricsHandler)

	return router
}
