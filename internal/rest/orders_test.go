package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"damaloy/business/orders"
	"damaloy/domain"
	"damaloy/pkg/response"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type stubOrdersService struct {
	placeErr error
	order    domain.Order
	secret   string
}

func (s *stubOrdersService) PlaceOrder(_ context.Context, _ orders.PlaceOrderInput) (domain.Order, string, error) {
	if s.placeErr != nil {
		return domain.Order{}, "", s.placeErr
	}
	return s.order, s.secret, nil
}

func (s *stubOrdersService) GetUserOrders(_ context.Context, _ uint) ([]domain.OrderView, error) {
	return []domain.OrderView{}, nil
}

func (s *stubOrdersService) GetAllOrders(_ context.Context) ([]domain.OrderView, error) {
	return []domain.OrderView{}, nil
}

func (s *stubOrdersService) UpdateStatus(_ context.Context, _ uint, _ string) (domain.Order, error) {
	return domain.Order{}, nil
}

func doPlaceOrder(t *testing.T, service OrdersService, payload any) (*httptest.ResponseRecorder, error) {
	t.Helper()

	bodyBytes, err := json.Marshal(payload)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader(bodyBytes))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := NewOrdersHandler(service)
	return rec, handler.PlaceOrder(c)
}

func TestPlaceOrderHandlerSuccess(t *testing.T) {
	service := &stubOrdersService{
		order:  domain.Order{ID: 7, UserID: 1, TotalAmount: 25, PaymentMethod: domain.PaymentMethodStripe},
		secret: "pi_test_secret",
	}

	rec, err := doPlaceOrder(t, service, PlaceOrderRequest{
		UserID:          1,
		PaymentMethod:   domain.PaymentMethodStripe,
		ShippingAddress: "12 Lake Road, Dhaka",
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Success bool            `json:"success"`
		Message string          `json:"message"`
		Data    placedOrderData `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.True(t, body.Success)
	require.EqualValues(t, 7, body.Data.Order.ID)
	require.Equal(t, "pi_test_secret", body.Data.ClientSecret)
}

func TestPlaceOrderHandlerMissingFields(t *testing.T) {
	rec, err := doPlaceOrder(t, &stubOrdersService{}, map[string]any{"user_id": 1})
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body response.Body
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.False(t, body.Success)
	require.NotEmpty(t, body.Message)
}

func TestPlaceOrderHandlerErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"empty cart", domain.ErrEmptyCart, http.StatusBadRequest},
		{"insufficient stock", domain.ErrInsufficientStock, http.StatusConflict},
		{"payment failure", domain.ErrPaymentInitiation, http.StatusInternalServerError},
		{"validation", domain.ErrValidation, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, err := doPlaceOrder(t, &stubOrdersService{placeErr: tc.err}, PlaceOrderRequest{
				UserID:          1,
				PaymentMethod:   domain.PaymentMethodStripe,
				ShippingAddress: "12 Lake Road, Dhaka",
			})
			require.NoError(t, err)
			require.Equal(t, tc.wantStatus, rec.Code)

			var body response.Body
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			require.False(t, body.Success)
		})
	}
}
