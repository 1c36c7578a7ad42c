package amadeus

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avidato/farehold/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// ErrAuth marks a failed client-credential exchange. Callers treat it as
// fatal for the current submission and persist nothing.
var ErrAuth = errors.New("provider authentication failed")

// RequestError is a non-success provider response. Status and body are kept
// for server-side diagnostics, never shown to end users.
type RequestError struct {
	Op     string
	Status int
	Body   string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("amadeus %s: status %d: %s", e.Op, e.Status, e.Body)
}

// Client talks to the flight provider's self-service API. It is constructed
// once at startup and shared across submissions.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  oauth2.TokenSource
}

func NewClient(cfg config.AmadeusConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	cc := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     strings.TrimRight(cfg.BaseURL, "/") + "/v1/security/oauth2/token",
		// Amadeus wants client_id/client_secret form-encoded in the body.
		AuthStyle: oauth2.AuthStyleInParams,
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  cc.TokenSource(context.Background()),
	}
}

// Token performs the client-credential exchange and returns a bearer token.
// The underlying token source caches tokens until expiry.
func (c *Client) Token(ctx context.Context) (string, error) {
	tok, err := c.tokens.Token()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuth, err)
	}
	return tok.AccessToken, nil
}

// SearchOffers submits the opaque search query and returns the provider's
// candidate fare offers, empty when the provider returns none.
func (c *Client) SearchOffers(ctx context.Context, token string, query json.RawMessage) ([]FlightOffer, error) {
	body, err := c.post(ctx, "search offers", "/v2/shopping/flight-offers", token, query)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	offers := make([]FlightOffer, 0, len(envelope.Data))
	for _, raw := range envelope.Data {
		var offer FlightOffer
		if err := json.Unmarshal(raw, &offer); err != nil {
			return nil, fmt.Errorf("decode offer: %w", err)
		}
		offer.Raw = raw
		offers = append(offers, offer)
	}
	return offers, nil
}

// CreateOrder asks the provider to create a held flight order for the given
// offer and travelers. The order always requests delayed ticketing so an
// unpaid reservation cancels itself after one day.
func (c *Client) CreateOrder(ctx context.Context, token string, offer json.RawMessage, travelers json.RawMessage) (*Order, error) {
	payload := map[string]any{
		"data": map[string]any{
			"type":         "flight-order",
			"flightOffers": []json.RawMessage{offer},
			"travelers":    travelers,
			"ticketingAgreement": map[string]string{
				"option": "DELAY_TO_CANCEL",
				"delay":  "1D",
			},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode order request: %w", err)
	}

	resp, err := c.post(ctx, "create order", "/v1/booking/flight-orders", token, body)
	if err != nil {
		return nil, err
	}

	var order Order
	if err := json.Unmarshal(resp, &order); err != nil {
		return nil, fmt.Errorf("decode order response: %w", err)
	}
	return &order, nil
}

func (c *Client) post(ctx context.Context, op, path, token string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("amadeus %s: %w", op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("amadeus %s: read response: %w", op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &RequestError{Op: op, Status: resp.StatusCode, Body: string(data)}
	}
	return data, nil
}
