//go:generate mockgen -package=handler -destination=mock.go -source=user_handler.go
package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"auction-services/internal/auctionerrors"
	"auction-services/internal/models"
	"auction-services/internal/reporting"
	user "auction-services/internal/userService"
	"auction-services/services/user/helpers"
	"auction-services/utils"

	"github.com/gin-gonic/gin"
)

// CurrentUserKey is the gin context key RequireToken stores the authenticated user under
const CurrentUserKey = "current_user"

type UserServiceInterface interface {
	Register(ctx context.Context, reg user.Registration) (models.User, error)
	GetUser(ctx context.Context, id string) (models.User, error)
	ListUsers(ctx context.Context, skip, limit int) ([]models.User, error)
	UpdateUser(ctx context.Context, id string, p user.Profile) (models.User, error)
	DeleteUser(ctx context.Context, id string) error
	Login(ctx context.Context, email, password string) (user.Token, error)
	VerifyToken(ctx context.Context, raw string) (models.User, error)
	Report(ctx context.Context, windows []reporting.Window) (reporting.Report[models.UserStats], error)
}

type UserHandler struct {
	service UserServiceInterface
}

func NewUserHandler(service UserServiceInterface) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) fail(c *gin.Context, handlerName string, err error, fields map[string]any) {
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

// RegisterHandler handles POST /users
func (h *UserHandler) RegisterHandler(c *gin.Context) {
	var req helpers.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleBindError(c, "RegisterHandler", err)
		return
	}

	u, err := h.service.Register(c.Request.Context(), user.Registration{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		h.fail(c, "RegisterHandler", err, map[string]any{"email": req.Email})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, u, "user registered successfully")
	utils.LogSuccess("RegisterHandler", "user registered successfully", map[string]any{"user_id": u.ID})
}

// GetUserHandler handles GET /users/:id
func (h *UserHandler) GetUserHandler(c *gin.Context) {
	id := c.Param("id")
	u, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "GetUserHandler", err, map[string]any{"user_id": id})
		return
	}
	utils.JSONResponse(c, http.StatusOK, u, "user retrieved successfully")
}

// ListUsersHandler handles GET /users?skip=&limit=
func (h *UserHandler) ListUsersHandler(c *gin.Context) {
	var q helpers.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.HandleBindError(c, "ListUsersHandler", err)
		return
	}

	users, err := h.service.ListUsers(c.Request.Context(), q.Skip, q.Limit)
	if err != nil {
		h.fail(c, "ListUsersHandler", err, map[string]any{"skip": q.Skip, "limit": q.Limit})
		return
	}
	if users == nil {
		users = []models.User{}
	}
	utils.JSONResponse(c, http.StatusOK, users, "users retrieved successfully")
}

// UpdateUserHandler handles PUT /users/:id
func (h *UserHandler) UpdateUserHandler(c *gin.Context) {
	id := c.Param("id")
	var req helpers.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleBindError(c, "UpdateUserHandler", err)
		return
	}

	u, err := h.service.UpdateUser(c.Request.Context(), id, user.Profile{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		h.fail(c, "UpdateUserHandler", err, map[string]any{"user_id": id})
		return
	}

	utils.JSONResponse(c, http.StatusOK, u, "user updated successfully")
	utils.LogSuccess("UpdateUserHandler", "user updated successfully", map[string]any{"user_id": id})
}

// DeleteUserHandler handles DELETE /users/:id
func (h *UserHandler) DeleteUserHandler(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.DeleteUser(c.Request.Context(), id); err != nil {
		h.fail(c, "DeleteUserHandler", err, map[string]any{"user_id": id})
		return
	}

	c.Status(http.StatusNoContent)
	utils.LogSuccess("DeleteUserHandler", "user deleted successfully", map[string]any{"user_id": id})
}

// LoginHandler handles POST /auth/login
func (h *UserHandler) LoginHandler(c *gin.Context) {
	var req helpers.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleBindError(c, "LoginHandler", err)
		return
	}

	token, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, "LoginHandler", err, map[string]any{"email": req.Email})
		return
	}
	utils.JSONResponse(c, http.StatusOK, token, "login successful")
}

// RequireToken authenticates "Authorization: Bearer <token>" and stores the user under CurrentUserKey
func (h *UserHandler) RequireToken(c *gin.Context) {
	raw, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	if !ok || strings.TrimSpace(raw) == "" {
		h.fail(c, "RequireToken", fmt.Errorf("missing bearer token: %w", auctionerrors.ErrInvalidToken), map[string]any{})
		c.Abort()
		return
	}

	u, err := h.service.VerifyToken(c.Request.Context(), strings.TrimSpace(raw))
	if err != nil {
		h.fail(c, "RequireToken", err, map[string]any{})
		c.Abort()
		return
	}
	c.Set(CurrentUserKey, u)
	c.Next()
}

// MeHandler handles GET /auth/me
func (h *UserHandler) MeHandler(c *gin.Context) {
	u, ok := c.Get(CurrentUserKey)
	if !ok {
		h.fail(c, "MeHandler", auctionerrors.ErrInvalidToken, map[string]any{})
		return
	}
	utils.JSONResponse(c, http.StatusOK, u, "current user retrieved successfully")
}

// MetricsHandler handles GET /metrics
func (h *UserHandler) MetricsHandler(c *gin.Context) {
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
	utils.JSONResponse(c, http.StatusOK, report, "user metrics retrieved successfully")
}
