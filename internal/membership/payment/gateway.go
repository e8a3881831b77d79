package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"adhesion/internal/membership/models"
	"adhesion/internal/platform/config"
)

// successCode is the gateway code meaning the checkout link was created.
const successCode = "201"

const maxResponseBytes = 1 << 20

// GatewayInitiator calls the hosted-checkout API of the payment provider.
// The transaction identifier is the membership numero, so gateway-side
// records line up with the archive.
type GatewayInitiator struct {
	cfg    config.Payment
	client *http.Client
}

// GatewayOption configures a GatewayInitiator.
type GatewayOption func(*GatewayInitiator)

// WithHTTPClient overrides the HTTP client, mainly for tests.
func WithHTTPClient(client *http.Client) GatewayOption {
	return func(g *GatewayInitiator) {
		if client != nil {
			g.client = client
		}
	}
}

// NewGateway returns an initiator calling the configured gateway.
func NewGateway(cfg config.Payment, opts ...GatewayOption) *GatewayInitiator {
	g := &GatewayInitiator{
		cfg:    cfg,
		client: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

type checkoutRequest struct {
	APIKey        string `json:"apikey"`
	SiteID        string `json:"site_id"`
	TransactionID string `json:"transaction_id"`
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
	Description   string `json:"description"`
	ReturnURL     string `json:"return_url"`
	CancelURL     string `json:"cancel_url"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
}

type checkoutResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    struct {
		PaymentURL string `json:"payment_url"`
	} `json:"data"`
}

// Initiate posts the checkout request and extracts the redirect URL. Any
// non-success code, transport failure, or malformed body yields ("" , err).
func (g *GatewayInitiator) Initiate(ctx context.Context, m models.Member, amount int64) (string, error) {
	payload := checkoutRequest{
		APIKey:        g.cfg.APIKey,
		SiteID:        g.cfg.SiteID,
		TransactionID: m.Numero,
		Amount:        amount,
		Currency:      Currency,
		Description:   "Adhésion ONG Bien-Être",
		ReturnURL:     g.cfg.ReturnURL,
		CancelURL:     g.cfg.CancelURL,
		CustomerName:  m.FullName(),
		CustomerEmail: m.Email,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal checkout request: %w", err)
	}

	endpoint := strings.TrimRight(g.cfg.BaseURL, "/") + "/v2/payment"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build checkout request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call payment gateway: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("read gateway response: %w", err)
	}

	var decoded checkoutResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", fmt.Errorf("decode gateway response: %w", err)
	}
	if decoded.Code != successCode {
		return "", fmt.Errorf("gateway declined transaction %s: code=%s message=%s",
			m.Numero, decoded.Code, decoded.Message)
	}
	if decoded.Data.PaymentURL == "" {
		return "", fmt.Errorf("gateway returned success without a payment URL for %s", m.Numero)
	}
	return decoded.Data.PaymentURL, nil
}
