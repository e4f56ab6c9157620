package stripe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreatePaymentIntent(t *testing.T) {
	var gotReq *http.Request
	var gotForm map[string][]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotReq = r
		gotForm = r.PostForm

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{
			"id": "pi_123",
			"client_secret": "pi_123_secret_456",
			"amount": 2500,
			"currency": "usd",
			"status": "requires_payment_method"
		}`))
	}))
	defer server.Close()

	repo := NewStripeRepository(StripeConfig{SecretKey: "sk_test_abc", BaseURL: server.URL})

	intent, err := repo.CreatePaymentIntent(context.Background(), 2500, "usd", map[string]string{"user_id": "42"})
	require.NoError(t, err)
	require.Equal(t, "pi_123", intent.ID)
	require.Equal(t, "pi_123_secret_456", intent.ClientSecret)
	require.EqualValues(t, 2500, intent.Amount)

	require.Equal(t, "/v1/payment_intents", gotReq.URL.Path)
	require.Equal(t, []string{"2500"}, gotForm["amount"])
	require.Equal(t, []string{"usd"}, gotForm["currency"])
	require.Equal(t, []string{"42"}, gotForm["metadata[user_id]"])
	require.NotEmpty(t, gotReq.Header.Get("Idempotency-Key"))

	username, password, ok := gotReq.BasicAuth()
	require.True(t, ok)
	require.Equal(t, "sk_test_abc", username)
	require.Empty(t, password)
}

func TestCreatePaymentIntentProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"error": {"type": "card_error", "message": "Your card was declined."}}`))
	}))
	defer server.Close()

	repo := NewStripeRepository(StripeConfig{SecretKey: "sk_test_abc", BaseURL: server.URL})

	_, err := repo.CreatePaymentIntent(context.Background(), 2500, "usd", nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Your card was declined.")
}

func TestCancelPaymentIntent(t *testing.T) {
	var gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id": "pi_123", "status": "canceled"}`))
	}))
	defer server.Close()

	repo := NewStripeRepository(StripeConfig{SecretKey: "sk_test_abc", BaseURL: server.URL})

	require.NoError(t, repo.CancelPaymentIntent(context.Background(), "pi_123"))
	require.Equal(t, "/v1/payment_intents/pi_123/cancel", gotPath)
}

func TestCancelPaymentIntentError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": {"type": "invalid_request_error", "message": "No such payment_intent."}}`))
	}))
	defer server.Close()

	repo := NewStripeRepository(StripeConfig{SecretKey: "sk_test_abc", BaseURL: server.URL})

	err := repo.CancelPaymentIntent(context.Background(), "pi_missing")
	require.Error(t, err)
	require.Contains(t, err.Error(), "No such payment_intent.")
}
