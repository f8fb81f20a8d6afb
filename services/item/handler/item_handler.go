//go:generate mockgen -package=handler -destination=mock.go -source=item_handler.go
package handler

import (
	"context"
	"fmt"
	"net/http"

	"auction-services/internal/models"
	"auction-services/services/item/helpers"
	"auction-services/utils"

	"github.com/gin-gonic/gin"
)

type ItemServiceInterface interface {
	CreateItem(ctx context.Context, item models.Item) (models.Item, error)
	GetItem(ctx context.Context, id string) (models.Item, error)
	ListItems(ctx context.Context) ([]models.Item, error)
	UpdateItem(ctx context.Context, id string, item models.Item) (models.Item, error)
	DeleteItem(ctx context.Context, id string) error
	ListItemsByCategory(ctx context.Context, categoryID string) ([]models.Item, error)
	ListItemsByOwner(ctx context.Context, ownerID string) ([]models.Item, error)
}

type ItemHandler struct {
	service ItemServiceInterface
}

func NewItemHandler(service ItemServiceInterface) *ItemHandler {
	return &ItemHandler{service: service}
}

func (h *ItemHandler) fail(c *gin.Context, handlerName string, err error, fields map[string]any) {
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

func (h *ItemHandler) respondList(c *gin.Context, items []models.Item) {
	if items == nil {
		items = []models.Item{}
	}
	utils.JSONResponse(c, http.StatusOK, items, "items retrieved successfully")
}

// CreateItemHandler handles POST /items
func (h *ItemHandler) CreateItemHandler(c *gin.Context) {
	var req helpers.ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleBindError(c, "CreateItemHandler", err)
		return
	}

	item, err := h.service.CreateItem(c.Request.Context(), req.ToModel())
	if err != nil {
		h.fail(c, "CreateItemHandler", err, map[string]any{"name": req.Name})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, item, "item created successfully")
	utils.LogSuccess("CreateItemHandler", "item created successfully", map[string]any{
		"item_id":  item.ID,
		"owner_id": item.OwnerID,
	})
}

// GetItemHandler handles GET /items/:id
func (h *ItemHandler) GetItemHandler(c *gin.Context) {
	id := c.Param("id")
	item, err := h.service.GetItem(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "GetItemHandler", err, map[string]any{"item_id": id})
		return
	}
	utils.JSONResponse(c, http.StatusOK, item, "item retrieved successfully")
}

// ListItemsHandler handles GET /items
func (h *ItemHandler) ListItemsHandler(c *gin.Context) {
	items, err := h.service.ListItems(c.Request.Context())
	if err != nil {
		h.fail(c, "ListItemsHandler", err, map[string]any{})
		return
	}
	h.respondList(c, items)
}

// UpdateItemHandler handles PUT /items/:id
func (h *ItemHandler) UpdateItemHandler(c *gin.Context) {
	id := c.Param("id")
	var req helpers.ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleBindError(c, "UpdateItemHandler", err)
		return
	}

	item, err := h.service.UpdateItem(c.Request.Context(), id, req.ToModel())
	if err != nil {
		h.fail(c, "UpdateItemHandler", err, map[string]any{"item_id": id})
		return
	}

	utils.JSONResponse(c, http.StatusOK, item, "item updated successfully")
	utils.LogSuccess("UpdateItemHandler", "item updated successfully", map[string]any{"item_id": id})
}

// DeleteItemHandler handles DELETE /items/:id
func (h *ItemHandler) DeleteItemHandler(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.DeleteItem(c.Request.Context(), id); err != nil {
		h.fail(c, "DeleteItemHandler", err, map[string]any{"item_id": id})
		return
	}

	c.Status(http.StatusNoContent)
	utils.LogSuccess("DeleteItemHandler", "item deleted successfully", map[string]any{"item_id": id})
}

// ListCategoryItemsHandler handles GET /items/category/:category_id
func (h *ItemHandler) ListCategoryItemsHandler(c *gin.Context) {
	categoryID := c.Param("category_id")
	items, err := h.service.ListItemsByCategory(c.Request.Context(), categoryID)
	if err != nil {
		h.fail(c, "ListCategoryItemsHandler", err, map[string]any{"category_id": categoryID})
		return
	}
	h.respondList(c, items)
}

// ListUserItemsHandler handles GET /items/user/:user_id
func (h *ItemHandler) ListUserItemsHandler(c *gin.Context) {
	userID := c.Param("user_id")
	items, err := h.service.ListItemsByOwner(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, "ListUserItemsHandler", err, map[string]any{"user_id": userID})
		return
	}
	h.respondList(c, items)
}
