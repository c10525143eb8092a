// Package erp wraps the ERP order intake HTTP API behind a small client.
package erp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// intakePath is the single synchronous submission endpoint the ERP exposes.
const intakePath = "/orders/intake"

// Client calls the ERP order intake service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// SubmitOption configures a single intake request.
type SubmitOption func(*submitOptions)

type submitOptions struct {
	idempotencyKey string
}

// WithIdempotencyKey sets the Idempotency-Key header for the request so the
// ERP can deduplicate re-transmissions of the same attempt.
func WithIdempotencyKey(key string) SubmitOption {
	return func(opts *submitOptions) {
		opts.idempotencyKey = strings.TrimSpace(key)
	}
}

// NewClient instantiates the intake client with sane defaults.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("erp base URL is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}, nil
}

// OrderLine is one frozen line of the transmitted order.
type OrderLine struct {
	ProductCode   string `json:"productCode"`
	CaseQuantity  int64  `json:"caseQuantity"`
	PieceQuantity int64  `json:"pieceQuantity"`
	TotalUnits    int64  `json:"totalUnits"`
	Amount        int64  `json:"amount"`
}

// OrderPayload is the intake request body.
type OrderPayload struct {
	RequestNumber string      `json:"requestNumber"`
	ClientID      string      `json:"clientId"`
	OrderDate     string      `json:"orderDate"`
	DeliveryDate  string      `json:"deliveryDate"`
	TotalAmount   int64       `json:"totalAmount"`
	Lines         []OrderLine `json:"lines"`
}

// IntakeResult is the ERP's synchronous answer. Accepted=false with a reason
// is a business rejection, not a transport failure.
type IntakeResult struct {
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason,omitempty"`
}

type errorBody struct {
	Message *string `json:"message"`
	Status  *string `json:"status"`
}

// SubmitOrder pushes the payload to the ERP intake endpoint. Transport and
// protocol failures come back as errors; a well-formed rejection comes back
// as an IntakeResult.
func (c *Client) SubmitOrder(ctx context.Context, payload OrderPayload, optFns ...SubmitOption) (IntakeResult, error) {
	if c == nil || c.httpClient == nil {
		return IntakeResult{}, errors.New("erp client not configured")
	}
	if strings.TrimSpace(payload.RequestNumber) == "" {
		return IntakeResult{}, errors.New("order request number is required")
	}
	var opts submitOptions
	for _, fn := range optFns {
		if fn != nil {
			fn(&opts)
		}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return IntakeResult{}, fmt.Errorf("encode intake payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+intakePath, bytes.NewReader(body))
	if err != nil {
		return IntakeResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if opts.idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", opts.idempotencyKey)
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return IntakeResult{}, fmt.Errorf("call erp intake API: %w", err)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusOK:
		var result IntakeResult
		if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
			return IntakeResult{}, fmt.Errorf("decode erp intake response: %w", err)
		}
		return result, nil
	case res.StatusCode >= http.StatusBadRequest:
		return IntakeResult{}, fmt.Errorf("erp intake API error: %s", errorMessage(res, res.Status))
	default:
		return IntakeResult{}, fmt.Errorf("erp intake API unexpected status: %s", res.Status)
	}
}

func errorMessage(res *http.Response, fallback string) string {
	var body errorBody
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return fallback
	}
	if body.Message != nil {
		if msg := strings.TrimSpace(*body.Message); msg != "" {
			return msg
		}
	}
	if body.Status != nil {
		if msg := strings.TrimSpace(*body.Status); msg != "" {
			return msg
		}
	}
	return fallback
}
