// Package paymaster talks to the external Nero Paymaster API that agrees
// to cover gas for relay-built transactions.
package paymaster

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"

	"github.com/nerofit/relay/internal/txbuilder"
)

// ErrSponsorshipFailed covers every failed sponsorship attempt. The
// upstream API does not distinguish a rejected transaction from an
// unreachable service, so neither can we.
var ErrSponsorshipFailed = errors.New("sponsorship failed")

// sponsorRequest is the wire body of POST /sponsorTransaction.
type sponsorRequest struct {
	Transaction      *txbuilder.UnsignedTransaction `json:"transaction"`
	UserAddress      string                         `json:"userAddress"`
	PaymasterAddress string                         `json:"paymasterAddress"`
	TransactionType  int                            `json:"transactionType"`
}

// Client submits unsigned transactions for sponsorship. One POST per
// call; no retries, no circuit breaking. Cancellation comes from the
// caller's context.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient returns a Client for the API at baseURL authenticating with
// the given bearer token.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{},
	}
}

// SponsorTransaction asks the paymaster to sponsor tx on behalf of
// userAddress, paid for by paymasterAddress. The response body is opaque
// to the relay and returned verbatim for the frontend to act on.
func (c *Client) SponsorTransaction(ctx context.Context, tx *txbuilder.UnsignedTransaction, userAddress, paymasterAddress string) (json.RawMessage, error) {
	body, err := json.Marshal(sponsorRequest{
		Transaction:      tx,
		UserAddress:      userAddress,
		PaymasterAddress: paymasterAddress,
		TransactionType:  0,
	})
	if err != nil {
		return nil, errors.Wrap(err, "marshal sponsorship request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/sponsorTransaction", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "create sponsorship request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(ErrSponsorshipFailed, "paymaster request: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(ErrSponsorshipFailed, "read paymaster response: %v", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Wrapf(ErrSponsorshipFailed, "paymaster returned %d: %s", resp.StatusCode, respBody)
	}
	return json.RawMessage(respBody), nil
}
