package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/payment"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

const defaultBaseURL = "https://api.razorpay.com/v1"

// paiseFactor converts rupees to paise, the unit the Orders API expects
var paiseFactor = decimal.NewFromInt(100)

// RazorpayGateway implements payment.Gateway against the Razorpay
// Orders API. Amounts cross the wire in paise.
type RazorpayGateway struct {
	keyID      string
	keySecret  string
	baseURL    string
	httpClient *http.Client
}

// Option configures a RazorpayGateway
type Option func(*RazorpayGateway)

// WithBaseURL overrides the API base URL, used by tests
func WithBaseURL(url string) Option {
	return func(g *RazorpayGateway) {
		g.baseURL = url
	}
}

// WithHTTPClient overrides the HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(g *RazorpayGateway) {
		g.httpClient = client
	}
}

// NewRazorpayGateway creates a new RazorpayGateway
func NewRazorpayGateway(keyID, keySecret string, opts ...Option) *RazorpayGateway {
	g := &RazorpayGateway{
		keyID:     keyID,
		keySecret: keySecret,
		baseURL:   defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

type createOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type createOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// CreateOrder registers an amount to collect with the gateway
func (g *RazorpayGateway) CreateOrder(ctx context.Context, receipt string, amount valueobject.Money) (*payment.GatewayOrder, error) {
	payload := createOrderRequest{
		Amount:   amount.Amount().Mul(paiseFactor).IntPart(),
		Currency: string(amount.Currency()),
		Receipt:  receipt,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode gateway order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(g.keyID, g.keySecret)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway order creation failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("gateway returned status %d: %s", resp.StatusCode, string(detail))
	}

	var created createOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("failed to decode gateway response: %w", err)
	}

	return &payment.GatewayOrder{
		ID:       created.ID,
		Amount:   amount,
		Currency: created.Currency,
	}, nil
}

// VerifySignature checks the HMAC-SHA256 signature Razorpay computes
// over "<gateway order id>|<payment id>" with the key secret
func (g *RazorpayGateway) VerifySignature(gatewayOrderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(g.keySecret))
	mac.Write([]byte(gatewayOrderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

var _ payment.Gateway = (*RazorpayGateway)(nil)
