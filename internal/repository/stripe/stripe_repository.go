package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"damaloy/domain"

	"github.com/google/uuid"
)

type StripeConfig struct {
	SecretKey string
	BaseURL   string
}

// StripeRepository talks to the payment provider's REST API directly:
// form-encoded requests, basic auth with the secret key.
type StripeRepository struct {
	stripeConfig StripeConfig
	client       *http.Client
}

func NewStripeRepository(cfg StripeConfig) *StripeRepository {
	return &StripeRepository{
		stripeConfig: cfg,
		client:       &http.Client{Timeout: 15 * time.Second},
	}
}

type stripeError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// CreatePaymentIntent opens an intent for amount in minor units and
// returns the provider handle plus the client secret the frontend
// confirms with.
func (r *StripeRepository) CreatePaymentIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (domain.PaymentIntent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amount, 10))
	form.Set("currency", currency)
	for k, v := range metadata {
		form.Set(fmt.Sprintf("metadata[%s]", k), v)
	}

	endpoint := r.stripeConfig.BaseURL + "/v1/payment_intents"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return domain.PaymentIntent{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Idempotency-Key", uuid.NewString())
	req.SetBasicAuth(r.stripeConfig.SecretKey, "")

	res, err := r.client.Do(req)
	if err != nil {
		return domain.PaymentIntent{}, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return domain.PaymentIntent{}, err
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		var errResp stripeError
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
			return domain.PaymentIntent{}, fmt.Errorf("stripe returned %d: %s", res.StatusCode, errResp.Error.Message)
		}
		return domain.PaymentIntent{}, fmt.Errorf("stripe returned %d", res.StatusCode)
	}

	var intent domain.PaymentIntent
	if err := json.Unmarshal(body, &intent); err != nil {
		return domain.PaymentIntent{}, fmt.Errorf("failed to decode payment intent: %w", err)
	}

	return intent, nil
}

// CancelPaymentIntent voids an intent created for an order that failed
// to persist.
func (r *StripeRepository) CancelPaymentIntent(ctx context.Context, intentID string) error {
	endpoint := r.stripeConfig.BaseURL + "/v1/payment_intents/" + intentID + "/cancel"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return err
	}
	req.SetBasicAuth(r.stripeConfig.SecretKey, "")

	res, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		body, _ := io.ReadAll(res.Body)
		var errResp stripeError
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
			return fmt.Errorf("stripe cancel returned %d: %s", res.StatusCode, errResp.Error.Message)
		}
		return fmt.Errorf("stripe cancel returned %d", res.StatusCode)
	}

	return nil
}
