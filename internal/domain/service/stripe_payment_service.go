package service

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

	"civicserve/pkg/errors"
	"civicserve/pkg/logger"
)

// StripePaymentService talks to the Stripe PaymentIntents API over
// plain HTTP with form-encoded bodies.
type StripePaymentService struct {
	secretKey  string
	baseURL    string
	httpClient *http.Client
}

func NewStripePaymentService(secretKey string) *StripePaymentService {
	return &StripePaymentService{
		secretKey:  secretKey,
		baseURL:    "https://api.stripe.com/v1",
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type stripeIntentResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Status       string `json:"status"`
	Error        *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func (s *StripePaymentService) CreateIntent(ctx context.Context, req PaymentIntentRequest) (*PaymentIntent, error) {
	currency := req.Currency
	if currency == "" {
		currency = "usd"
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(req.AmountCents, 10))
	form.Set("currency", currency)
	form.Set("metadata[service_id]", req.ServiceID)
	form.Set("metadata[service_type]", req.ServiceType)
	if req.UserID != "" {
		form.Set("metadata[user_id]", req.UserID)
	}

	logger.Info("Creating payment intent: service=%s amount=%d", req.ServiceID, req.AmountCents)

	intent, err := s.do(ctx, http.MethodPost, "/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	return intent, nil
}

func (s *StripePaymentService) RetrieveIntent(ctx context.Context, intentID string) (*PaymentIntent, error) {
	if intentID == "" {
		return nil, errors.Validation("payment intent id is required", nil)
	}
	return s.do(ctx, http.MethodGet, "/payment_intents/"+intentID, nil)
}

func (s *StripePaymentService) do(ctx context.Context, method, path string, body io.Reader) (*PaymentIntent, error) {
	httpReq, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, body)
	if err != nil {
		return nil, errors.Internal("Failed to build payment request", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+s.secretKey)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.Payment("Payment processor unreachable", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Payment("Failed to read payment processor response", err)
	}

	var parsed stripeIntentResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, errors.Payment("Malformed payment processor response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := fmt.Sprintf("Payment processor returned %d", resp.StatusCode)
		if parsed.Error != nil && parsed.Error.Message != "" {
			msg = parsed.Error.Message
		}
		logger.Warn("Stripe error: status=%d body=%s", resp.StatusCode, string(respBody))
		return nil, errors.Payment(msg, nil)
	}

	return &PaymentIntent{
		ID:           parsed.ID,
		ClientSecret: parsed.ClientSecret,
		AmountCents:  parsed.Amount,
		Status:       parsed.Status,
	}, nil
}
