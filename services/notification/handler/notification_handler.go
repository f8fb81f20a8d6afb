//go:generate mockgen -package=handler -destination=mock.go -source=notification_handler.go
package handler

import (
	"context"
	"fmt"
	"net/http"

	"auction-services/internal/models"
	notification "auction-services/internal/notificationService"
	"auction-services/internal/reporting"
	"auction-services/services/notification/helpers"
	"auction-services/utils"

	"github.com/gin-gonic/gin"
)

type NotificationServiceInterface interface {
	CreateNotification(ctx context.Context, userID string, typ models.NotificationType, message string, metadata models.Metadata) (models.Notification, error)
	ListForUser(ctx context.Context, userID string, unreadOnly bool, limit int) ([]models.Notification, error)
	MarkRead(ctx context.Context, id string) (models.Notification, error)
	DeleteNotification(ctx context.Context, id string) error
	NotifyAuctionUsers(ctx context.Context, auctionID string, b notification.Broadcast) (int, error)
	NotifyItemSold(ctx context.Context, itemID, buyerID, ownerID string) ([]models.Notification, error)
	Report(ctx context.Context, windows []reporting.Window) (reporting.Report[models.NotificationStats], error)
}

type NotificationHandler struct {
	service NotificationServiceInterface
}

func NewNotificationHandler(service NotificationServiceInterface) *NotificationHandler {
	return &NotificationHandler{service: service}
}

func (h *NotificationHandler) fail(c *gin.Context, handlerName string, err error, fields map[string]any) {
	status, message := helpers.MapErrorToHTTP(err)
	utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
	fields["handler"] = handlerName
	fields["error"] = err.Error()
	if status >= http.StatusInternalServerError {
		utils.Error(handlerName+": "+message, fields)
		return
	}
	utils.Warn(handlerName+": "+message, fields)
}

// CreateNotificationHandler handles POST /notifications
func (h *NotificationHandler) CreateNotificationHandler(c *gin.Context) {
	var req helpers.CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleBindError(c, "CreateNotificationHandler", err)
		return
	}

	n, err := h.service.CreateNotification(c.Request.Context(), req.UserID, req.Type, req.Message, req.Metadata)
	if err != nil {
		h.fail(c, "CreateNotificationHandler", err, map[string]any{"user_id": req.UserID})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, n, "notification created successfully")
	utils.LogSuccess("CreateNotificationHandler", "notification created successfully", map[string]any{
		"notification_id": n.ID,
		"user_id":         n.UserID,
		"type":            n.Type.String(),
	})
}

// ListUserNotificationsHandler handles GET /notifications/user/:user_id
func (h *NotificationHandler) ListUserNotificationsHandler(c *gin.Context) {
	userID := c.Param("user_id")
	var q helpers.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.HandleBindError(c, "ListUserNotificationsHandler", err)
		return
	}

	notifications, err := h.service.ListForUser(c.Request.Context(), userID, q.UnreadOnly, q.Limit)
	if err != nil {
		h.fail(c, "ListUserNotificationsHandler", err, map[string]any{"user_id": userID})
		return
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	utils.JSONResponse(c, http.StatusOK, notifications, "notifications retrieved successfully")
}

// MarkReadHandler handles PUT /notifications/:id/read
func (h *NotificationHandler) MarkReadHandler(c *gin.Context) {
	id := c.Param("id")
	n, err := h.service.MarkRead(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "MarkReadHandler", err, map[string]any{"notification_id": id})
		return
	}
	utils.JSONResponse(c, http.StatusOK, n, "notification marked as read")
}

// DeleteNotificationHandler handles DELETE /notifications/:id
func (h *NotificationHandler) DeleteNotificationHandler(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.DeleteNotification(c.Request.Context(), id); err != nil {
		h.fail(c, "DeleteNotificationHandler", err, map[string]any{"notification_id": id})
		return
	}

	c.Status(http.StatusNoContent)
	utils.LogSuccess("DeleteNotificationHandler", "notification deleted successfully", map[string]any{"notification_id": id})
}

// NotifyAuctionUsersHandler handles POST /notifications/auction/:auction_id/new
func (h *NotificationHandler) NotifyAuctionUsersHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	var req helpers.BroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleBindError(c, "NotifyAuctionUsersHandler", err)
		return
	}

	count, err := h.service.NotifyAuctionUsers(c.Request.Context(), auctionID, notification.Broadcast{
		Type:     req.Type,
		UserIDs:  req.UserIDs,
		Message:  req.Message,
		Metadata: req.Metadata,
	})
	if err != nil {
		h.fail(c, "NotifyAuctionUsersHandler", err, map[string]any{"auction_id": auctionID})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.BroadcastResponse{RecipientCount: count}, "notifications sent successfully")
	utils.LogSuccess("NotifyAuctionUsersHandler", "notifications sent successfully", map[string]any{
		"auction_id": auctionID,
		"type":       req.Type.String(),
		"recipients": count,
	})
}

// NotifyItemSoldHandler handles POST /notifications/item/:item_id/sold
func (h *NotificationHandler) NotifyItemSoldHandler(c *gin.Context) {
	itemID := c.Param("item_id")
	var req helpers.ItemSoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleBindError(c, "NotifyItemSoldHandler", err)
		return
	}

	sent, err := h.service.NotifyItemSold(c.Request.Context(), itemID, req.BuyerID, req.OwnerID)
	if err != nil {
		h.fail(c, "NotifyItemSoldHandler", err, map[string]any{"item_id": itemID})
		return
	}
	utils.JSONResponse(c, http.StatusCreated, sent, "item sale notifications sent successfully")
}

// MetricsHandler handles GET /metrics
func (h *NotificationHandler) MetricsHandler(c *gin.Context) {
	windows, err := reporting.ParseWindows(c.Query("windows"))
	if err != nil {
		h.fail(c, "MetricsHandler", err, map[string]any{"windows": c.Query("windows")})
		return
	}

	report, err := h.service.Report(c.Request.Context(), windows)
	if err != nil {
		h.fail(c, "MetricsHandler", err, map[string]any{})
		return
	}
	utils.JSONResponse(c, http.StatusOK, report, "notification metrics retrieved successfully")
}
