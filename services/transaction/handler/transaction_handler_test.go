package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"auction-services/internal/auctionerrors"
	"auction-services/internal/models"
	"auction-services/internal/reporting"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func sampleTransaction(status models.TransactionStatus) models.Transaction {
	return models.Transaction{
		ID:              "t1",
		AuctionID:       "a1",
		BuyerID:         "buyer-1",
		Amount:          150,
		Status:          status,
		TransactionDate: time.Now().UTC(),
	}
}

func TestTransactionHandlers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                string
		method              string
		path                string
		body                string
		mockSetup           func(m *MockTransactionServiceInterface)
		expectedStatus      int
		expectedCode        string
		expectedStatusField string
		expectedLen         int
	}{
		{
			name:   "create",
			method: http.MethodPost,
			path:   "/transactions",
			body:   `{"auction_id":"a1","buyer_id":"buyer-1","amount":150}`,
			mockSetup: func(m *MockTransactionServiceInterface) {
				m.EXPECT().CreateTransaction(gomock.Any(), "a1", "buyer-1", 150.0).Return(sampleTransaction(models.TransactionPending), nil)
			},
			expectedStatus:      http.StatusCreated,
			expectedStatusField: "Pending",
		},
		{
			name:           "create missing buyer",
			method:         http.MethodPost,
			path:           "/transactions",
			body:           `{"auction_id":"a1","amount":150}`,
			mockSetup:      func(*MockTransactionServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   auctionerrors.CodeValidation,
		},
		{
			name:           "create zero amount",
			method:         http.MethodPost,
			path:           "/transactions",
			body:           `{"auction_id":"a1","buyer_id":"buyer-1","amount":0}`,
			mockSetup:      func(*MockTransactionServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   auctionerrors.CodeValidation,
		},
		{
			name:   "get missing",
			method: http.MethodGet,
			path:   "/transactions/t9",
			mockSetup: func(m *MockTransactionServiceInterface) {
				m.EXPECT().GetTransaction(gomock.Any(), "t9").Return(models.Transaction{}, auctionerrors.ErrTransactionNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   auctionerrors.CodeNotFound,
		},
		{
			name:   "list nil slice",
			method: http.MethodGet,
			path:   "/transactions",
			mockSetup: func(m *MockTransactionServiceInterface) {
				m.EXPECT().ListTransactions(gomock.Any()).Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
			expectedLen:    0,
		},
		{
			name:   "list by auction",
			method: http.MethodGet,
			path:   "/transactions/auction/a1",
			mockSetup: func(m *MockTransactionServiceInterface) {
				m.EXPECT().ListTransactionsByAuction(gomock.Any(), "a1").Return([]models.Transaction{sampleTransaction(models.TransactionPending)}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedLen:    1,
		},
		{
			name:   "list by user",
			method: http.MethodGet,
			path:   "/transactions/user/buyer-1",
			mockSetup: func(m *MockTransactionServiceInterface) {
				m.EXPECT().ListTransactionsByUser(gomock.Any(), "buyer-1").Return([]models.Transaction{
					sampleTransaction(models.TransactionPending),
					sampleTransaction(models.TransactionCompleted),
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedLen:    2,
		},
		{
			name:   "confirm",
			method: http.MethodPut,
			path:   "/transactions/t1/confirm",
			mockSetup: func(m *MockTransactionServiceInterface) {
				m.EXPECT().ConfirmTransaction(gomock.Any(), "t1").Return(sampleTransaction(models.TransactionCompleted), nil)
			},
			expectedStatus:      http.StatusOK,
			expectedStatusField: "Completed",
		},
		{
			name:   "confirm twice",
			method: http.MethodPut,
			path:   "/transactions/t1/confirm",
			mockSetup: func(m *MockTransactionServiceInterface) {
				m.EXPECT().ConfirmTransaction(gomock.Any(), "t1").Return(models.Transaction{}, auctionerrors.ErrIllegalTransition)
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   auctionerrors.CodeInvalidState,
		},
		{
			name:   "refund with body reason",
			method: http.MethodPut,
			path:   "/transactions/t1/refund",
			body:   `{"reason":"item damaged"}`,
			mockSetup: func(m *MockTransactionServiceInterface) {
				m.EXPECT().RefundTransaction(gomock.Any(), "t1", "item damaged").Return(sampleTransaction(models.TransactionRefunded), nil)
			},
			expectedStatus:      http.StatusOK,
			expectedStatusField: "Refunded",
		},
		{
			name:   "refund with query reason",
			method: http.MethodPut,
			path:   "/transactions/t1/refund?reason=duplicate",
			mockSetup: func(m *MockTransactionServiceInterface) {
				m.EXPECT().RefundTransaction(gomock.Any(), "t1", "duplicate").Return(sampleTransaction(models.TransactionRefunded), nil)
			},
			expectedStatus:      http.StatusOK,
			expectedStatusField: "Refunded",
		},
		{
			name:   "refund pending",
			method: http.MethodPut,
			path:   "/transactions/t1/refund",
			body:   `{"reason":"changed mind"}`,
			mockSetup: func(m *MockTransactionServiceInterface) {
				m.EXPECT().RefundTransaction(gomock.Any(), "t1", "changed mind").Return(models.Transaction{}, auctionerrors.ErrIllegalTransition)
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   auctionerrors.CodeInvalidState,
		},
		{
			name:           "refund malformed body",
			method:         http.MethodPut,
			path:           "/transactions/t1/refund",
			body:           `{reason}`,
			mockSetup:      func(*MockTransactionServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   auctionerrors.CodeValidation,
		},
		{
			name:   "store failure",
			method: http.MethodGet,
			path:   "/transactions",
			mockSetup: func(m *MockTransactionServiceInterface) {
				m.EXPECT().ListTransactions(gomock.Any()).Return(nil, errors.New("connection reset"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   auctionerrors.CodeInternal,
		},
		{
			name:   "metrics",
			method: http.MethodGet,
			path:   "/metrics?windows=week",
			mockSetup: func(m *MockTransactionServiceInterface) {
				m.EXPECT().Report(gomock.Any(), []reporting.Window{reporting.Week}).Return(reporting.Report[models.TransactionStats]{
					Total:   models.TransactionStats{Total: 3, Completed: 2},
					Windows: map[string]models.TransactionStats{"week": {Total: 1}},
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			mockService := NewMockTransactionServiceInterface(ctrl)
			h := NewTransactionHandler(mockService)
			gin.SetMode(gin.TestMode)
			router := gin.New()
			router.POST("/transactions", h.CreateTransactionHandler)
			router.GET("/transactions", h.ListTransactionsHandler)
			router.GET("/transactions/:id", h.GetTransactionHandler)
			router.PUT("/transactions/:id/confirm", h.ConfirmTransactionHandler)
			router.PUT("/transactions/:id/refund", h.RefundTransactionHandler)
			router.GET("/transactions/auction/:auction_id", h.ListAuctionTransactionsHandler)
			router.GET("/transactions/user/:user_id", h.ListUserTransactionsHandler)
			router.GET("/metrics", h.MetricsHandler)

			tt.mockSetup(mockService)

			req := httptest.NewRequest(tt.method, tt.path, bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, tt.expectedStatus, w.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			if tt.expectedCode != "" {
				require.Equal(t, tt.expectedCode, resp["code"])
				return
			}
			if list, ok := resp["data"].([]any); ok {
				require.Len(t, list, tt.expectedLen)
			}
			if tt.expectedStatusField != "" {
				require.Equal(t, tt.expectedStatusField, resp["data"].(map[string]any)["status"])
			}
		})
	}
}
