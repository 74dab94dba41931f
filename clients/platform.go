package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/vitwit/pinetwork/types"
)

// PlatformClient talks to the Pi platform payments API.
type PlatformClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewPlatformClient creates a client for the versioned API at baseURL.
func NewPlatformClient(baseURL, apiKey string, httpClient *http.Client) *PlatformClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &PlatformClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

type createPaymentRequest struct {
	Payment types.PaymentArgs `json:"payment"`
}

type completePaymentRequest struct {
	Txid string `json:"txid"`
}

func (c *PlatformClient) CreatePayment(ctx context.Context, args types.PaymentArgs) (*types.PaymentDTO, error) {
	req := createPaymentRequest{Payment: args}
	return sendRequest[createPaymentRequest, types.PaymentDTO](c, ctx, http.MethodPost, "/payments", &req)
}

func (c *PlatformClient) CompletePayment(ctx context.Context, paymentID, txid string) (*types.PaymentDTO, error) {
	req := completePaymentRequest{Txid: txid}
	path := fmt.Sprintf("/payments/%s/complete", url.PathEscape(paymentID))
	return sendRequest[completePaymentRequest, types.PaymentDTO](c, ctx, http.MethodPost, path, &req)
}

func (c *PlatformClient) GetPayment(ctx context.Context, paymentID string) (*types.PaymentDTO, error) {
	path := fmt.Sprintf("/payments/%s", url.PathEscape(paymentID))
	return sendRequest[any, types.PaymentDTO](c, ctx, http.MethodGet, path, nil)
}

func (c *PlatformClient) CancelPayment(ctx context.Context, paymentID string) (*types.PaymentDTO, error) {
	path := fmt.Sprintf("/payments/%s/cancel", url.PathEscape(paymentID))
	return sendRequest[any, types.PaymentDTO](c, ctx, http.MethodPost, path, nil)
}

func (c *PlatformClient) GetIncompleteServerPayments(ctx context.Context) ([]types.PaymentDTO, error) {
	resp, err := sendRequest[any, types.IncompleteServerPayments](c, ctx, http.MethodGet, "/payments/incomplete_server_payments", nil)
	if err != nil {
		return nil, err
	}
	return resp.IncompleteServerPayments, nil
}

func sendRequest[Req any, Resp any](c *PlatformClient, ctx context.Context, method, path string, reqBody *Req) (*Resp, error) {
	var bodyReader io.Reader
	if reqBody != nil {
		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			return nil, fmt.Errorf("error marshalling json: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Key "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		var errResp apiErrorResponse
		if err := json.Unmarshal(body, &errResp); err != nil || errResp.Error == "" {
			return nil, fmt.Errorf("platform returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, &APIError{
			StatusCode:        resp.StatusCode,
			Code:              errResp.Error,
			Message:           errResp.ErrorMessage,
			Payment:           errResp.Payment,
			VerificationError: errResp.VerificationError,
		}
	}

	var out Resp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("error decoding json response: %w", err)
	}

	return &out, nil
}
