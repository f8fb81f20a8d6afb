package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	auction "auction-services/internal/auctionService"
	"auction-services/internal/auctionerrors"
	"auction-services/internal/models"
	"auction-services/internal/reporting"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*gin.Engine, *MockAuctionServiceInterface) {
	ctrl := gomock.NewController(t)
	mockService := NewMockAuctionServiceInterface(ctrl)
	h := NewAuctionHandler(mockService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/auctions", h.CreateAuctionHandler)
	router.GET("/auctions/:id", h.GetAuctionHandler)
	router.PUT("/auctions/:id", h.UpdateAuctionHandler)
	router.DELETE("/auctions/:id", h.CancelAuctionHandler)
	router.PUT("/auctions/:id/end", h.EndAuctionHandler)
	router.PUT("/auctions/:id/current_price", h.UpdatePriceHandler)
	router.GET("/auctions/:id/bids", h.ListAuctionBidsHandler)
	router.GET("/metrics", h.MetricsHandler)
	return router, mockService
}

func perform(t *testing.T, router *gin.Engine, method, path string, body any) (int, map[string]any) {
	t.Helper()
	var raw []byte
	switch b := body.(type) {
	case nil:
	case string:
		raw = []byte(b)
	default:
		var err error
		raw, err = json.Marshal(b)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func sampleAuction(status models.AuctionStatus, price float64) models.Auction {
	now := time.Now().UTC()
	return models.Auction{
		ID:            "a1",
		ItemID:        "item-1",
		StartTime:     now,
		EndDate:       now.Add(time.Hour),
		StartingPrice: 100,
		CurrentPrice:  price,
		Status:        status,
	}
}

func TestCreateAuctionHandler(t *testing.T) {
	t.Parallel()
	end := time.Now().Add(time.Hour).UTC().Truncate(time.Second)

	tests := []struct {
		name           string
		body           any
		mockSetup      func(m *MockAuctionServiceInterface)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "created",
			body: map[string]any{"item_id": "item-1", "starting_price": 100, "end_date": end},
			mockSetup: func(m *MockAuctionServiceInterface) {
				m.EXPECT().CreateAuction(gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, a models.Auction) (models.Auction, error) {
					require.Equal(t, "item-1", a.ItemID)
					require.Equal(t, 100.0, a.StartingPrice)
					require.True(t, end.Equal(a.EndDate))
					return sampleAuction(models.AuctionActive, 100), nil
				})
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "legacy status spelling accepted",
			body: map[string]any{"item_id": "item-1", "end_date": end, "status": "ACTIVE"},
			mockSetup: func(m *MockAuctionServiceInterface) {
				m.EXPECT().CreateAuction(gomock.Any(), gomock.Any()).Return(sampleAuction(models.AuctionActive, 0), nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "unknown status",
			body:           map[string]any{"item_id": "item-1", "end_date": end, "status": "Paused"},
			mockSetup:      func(*MockAuctionServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   auctionerrors.CodeValidation,
		},
		{
			name:           "missing item",
			body:           map[string]any{"end_date": end},
			mockSetup:      func(*MockAuctionServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   auctionerrors.CodeValidation,
		},
		{
			name:           "invalid json",
			body:           `{invalid json}`,
			mockSetup:      func(*MockAuctionServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   auctionerrors.CodeValidation,
		},
		{
			name: "service rejects",
			body: map[string]any{"item_id": "item-1", "end_date": end},
			mockSetup: func(m *MockAuctionServiceInterface) {
				m.EXPECT().CreateAuction(gomock.Any(), gomock.Any()).Return(models.Auction{}, auctionerrors.ErrInvalidAuction)
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   auctionerrors.CodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			router, mockService := newTestRouter(t)
			tt.mockSetup(mockService)

			status, resp := perform(t, router, http.MethodPost, "/auctions", tt.body)
			require.Equal(t, tt.expectedStatus, status)
			if tt.expectedCode != "" {
				require.Equal(t, tt.expectedCode, resp["code"])
				return
			}
			data := resp["data"].(map[string]any)
			require.Equal(t, "a1", data["id"])
			require.Equal(t, "Active", data["status"])
		})
	}
}

func TestAuctionStateHandlers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		method         string
		path           string
		body           any
		mockSetup      func(m *MockAuctionServiceInterface)
		expectedStatus int
		expectedCode   string
	}{
		{
			name:   "get missing auction",
			method: http.MethodGet,
			path:   "/auctions/a1",
			mockSetup: func(m *MockAuctionServiceInterface) {
				m.EXPECT().GetAuction(gomock.Any(), "a1").Return(models.Auction{}, fmt.Errorf("repo: %w", auctionerrors.ErrAuctionNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   auctionerrors.CodeNotFound,
		},
		{
			name:   "end",
			method: http.MethodPut,
			path:   "/auctions/a1/end",
			mockSetup: func(m *MockAuctionServiceInterface) {
				m.EXPECT().EndAuction(gomock.Any(), "a1").Return(sampleAuction(models.AuctionClosed, 150), nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "end cancelled auction",
			method: http.MethodPut,
			path:   "/auctions/a1/end",
			mockSetup: func(m *MockAuctionServiceInterface) {
				m.EXPECT().EndAuction(gomock.Any(), "a1").Return(models.Auction{}, auctionerrors.ErrIllegalTransition)
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   auctionerrors.CodeInvalidState,
		},
		{
			name:   "cancel",
			method: http.MethodDelete,
			path:   "/auctions/a1",
			mockSetup: func(m *MockAuctionServiceInterface) {
				m.EXPECT().CancelAuction(gomock.Any(), "a1").Return(sampleAuction(models.AuctionCancelled, 100), nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "raise price",
			method: http.MethodPut,
			path:   "/auctions/a1/current_price",
			body:   map[string]any{"current_price": 150},
			mockSetup: func(m *MockAuctionServiceInterface) {
				m.EXPECT().RaisePrice(gomock.Any(), "a1", 150.0).Return(sampleAuction(models.AuctionActive, 150), nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "stale price",
			method: http.MethodPut,
			path:   "/auctions/a1/current_price",
			body:   map[string]any{"current_price": 120},
			mockSetup: func(m *MockAuctionServiceInterface) {
				m.EXPECT().RaisePrice(gomock.Any(), "a1", 120.0).Return(models.Auction{}, auctionerrors.ErrPriceNotHigher)
			},
			expectedStatus: http.StatusConflict,
			expectedCode:   auctionerrors.CodeStalePrice,
		},
		{
			name:           "zero price",
			method:         http.MethodPut,
			path:           "/auctions/a1/current_price",
			body:           map[string]any{"current_price": 0},
			mockSetup:      func(*MockAuctionServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   auctionerrors.CodeValidation,
		},
		{
			name:   "update status",
			method: http.MethodPut,
			path:   "/auctions/a1",
			body:   map[string]any{"status": "Closed"},
			mockSetup: func(m *MockAuctionServiceInterface) {
				closed := models.AuctionClosed
				m.EXPECT().UpdateAuction(gomock.Any(), "a1", auction.AuctionUpdate{Status: &closed}).Return(sampleAuction(models.AuctionClosed, 100), nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "update cannot set price",
			method:         http.MethodPut,
			path:           "/auctions/a1",
			body:           map[string]any{"current_price": 10},
			mockSetup:      func(*MockAuctionServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   auctionerrors.CodeValidation,
		},
		{
			name:   "bids proxy down",
			method: http.MethodGet,
			path:   "/auctions/a1/bids",
			mockSetup: func(m *MockAuctionServiceInterface) {
				m.EXPECT().ListAuctionBids(gomock.Any(), "a1").Return(nil, auctionerrors.ErrDownstreamUnavailable)
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedCode:   auctionerrors.CodeDownstreamUnavailable,
		},
		{
			name:   "metrics",
			method: http.MethodGet,
			path:   "/metrics?windows=day",
			mockSetup: func(m *MockAuctionServiceInterface) {
				m.EXPECT().Report(gomock.Any(), []reporting.Window{reporting.Day}).Return(reporting.Report[models.AuctionStats]{
					Total:   models.AuctionStats{Total: 2},
					Windows: map[string]models.AuctionStats{"day": {Total: 1}},
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "metrics bad window",
			method:         http.MethodGet,
			path:           "/metrics?windows=decade",
			mockSetup:      func(*MockAuctionServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   auctionerrors.CodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			router, mockService := newTestRouter(t)
			tt.mockSetup(mockService)

			status, resp := perform(t, router, tt.method, tt.path, tt.body)
			require.Equal(t, tt.expectedStatus, status)
			if tt.expectedCode != "" {
				require.Equal(t, tt.expectedCode, resp["code"])
				return
			}
			require.NotNil(t, resp["data"])
		})
	}
}
