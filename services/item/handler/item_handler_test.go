package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"auction-services/internal/auctionerrors"
	item "auction-services/internal/itemService"
	"auction-services/internal/models"
	"auction-services/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func itemRouter(service ItemServiceInterface) *gin.Engine {
	h := NewItemHandler(service)
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/items", h.CreateItemHandler)
	router.GET("/items", h.ListItemsHandler)
	router.GET("/items/:id", h.GetItemHandler)
	router.PUT("/items/:id", h.UpdateItemHandler)
	router.DELETE("/items/:id", h.DeleteItemHandler)
	router.GET("/items/category/:category_id", h.ListCategoryItemsHandler)
	router.GET("/items/user/:user_id", h.ListUserItemsHandler)
	return router
}

func do(t *testing.T, router *gin.Engine, method, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code == http.StatusNoContent {
		return w.Code, nil
	}
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

// Drives the handler against the real service and in-memory store
func TestItemHandlerLifecycle(t *testing.T) {
	t.Parallel()
	router := itemRouter(item.NewItemService(repository.NewMemoryRepo()))

	status, resp := do(t, router, http.MethodPost, "/items", `{"name":"  Vintage Clock ","category_id":"antiques","owner_id":"owner-1"}`)
	require.Equal(t, http.StatusCreated, status)
	created := resp["data"].(map[string]any)
	id := created["id"].(string)
	require.Equal(t, "Vintage Clock", created["name"])

	status, _ = do(t, router, http.MethodPost, "/items", `{"name":"Chair","category_id":"furniture","owner_id":"owner-2"}`)
	require.Equal(t, http.StatusCreated, status)

	status, resp = do(t, router, http.MethodGet, "/items/"+id, "")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "antiques", resp["data"].(map[string]any)["category_id"])

	status, resp = do(t, router, http.MethodGet, "/items/category/antiques", "")
	require.Equal(t, http.StatusOK, status)
	require.Len(t, resp["data"], 1)

	status, resp = do(t, router, http.MethodGet, "/items/user/owner-2", "")
	require.Equal(t, http.StatusOK, status)
	require.Len(t, resp["data"], 1)

	status, resp = do(t, router, http.MethodPut, "/items/"+id, `{"name":"Grandfather Clock","category_id":"antiques","owner_id":"owner-1"}`)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Grandfather Clock", resp["data"].(map[string]any)["name"])

	status, resp = do(t, router, http.MethodPut, "/items/"+id, `{"name":"   "}`)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, auctionerrors.CodeValidation, resp["code"])

	status, _ = do(t, router, http.MethodDelete, "/items/"+id, "")
	require.Equal(t, http.StatusNoContent, status)

	status, resp = do(t, router, http.MethodGet, "/items/"+id, "")
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, "item not found", resp["message"])

	status, resp = do(t, router, http.MethodGet, "/items", "")
	require.Equal(t, http.StatusOK, status)
	require.Len(t, resp["data"], 1)
}

func TestItemHandlerErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		mockSetup      func(m *MockItemServiceInterface)
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "create without name",
			method:         http.MethodPost,
			path:           "/items",
			body:           `{"category_id":"antiques"}`,
			mockSetup:      func(*MockItemServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   auctionerrors.CodeValidation,
		},
		{
			name:   "list fails",
			method: http.MethodGet,
			path:   "/items",
			mockSetup: func(m *MockItemServiceInterface) {
				m.EXPECT().ListItems(gomock.Any()).Return(nil, errors.New("disk full"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   auctionerrors.CodeInternal,
		},
		{
			name:   "delete missing",
			method: http.MethodDelete,
			path:   "/items/i9",
			mockSetup: func(m *MockItemServiceInterface) {
				m.EXPECT().DeleteItem(gomock.Any(), "i9").Return(auctionerrors.ErrItemNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   auctionerrors.CodeNotFound,
		},
		{
			name:   "owner listing empty",
			method: http.MethodGet,
			path:   "/items/user/nobody",
			mockSetup: func(m *MockItemServiceInterface) {
				m.EXPECT().ListItemsByOwner(gomock.Any(), "nobody").Return([]models.Item(nil), nil)
			},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			mockService := NewMockItemServiceInterface(ctrl)
			tt.mockSetup(mockService)

			status, resp := do(t, itemRouter(mockService), tt.method, tt.path, tt.body)
			require.Equal(t, tt.expectedStatus, status)
			if tt.expectedCode != "" {
				require.Equal(t, tt.expectedCode, resp["code"])
				return
			}
			require.Equal(t, []any{}, resp["data"])
		})
	}
}
