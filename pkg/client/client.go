// Package client is a Go client for the NeroFit relay API.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ConnectWalletRequest is the body of POST /api/connect-wallet. Signature
// and Message are optional; when set, the relay verifies the signature
// recovers to WalletAddress.
type ConnectWalletRequest struct {
	WalletAddress string `json:"walletAddress"`
	Signature     string `json:"signature,omitempty"`
	Message       string `json:"message,omitempty"`
}

// SponsoredTransaction carries the unsigned transaction and the
// paymaster's sponsorship data. Transaction and SponsorData are kept raw:
// the caller hands both to the signing wallet unchanged.
type SponsoredTransaction struct {
	Transaction json.RawMessage `json:"transaction"`
	SponsorData json.RawMessage `json:"sponsorData"`
	Paymaster   string          `json:"paymaster"`
}

// SponsoredResponse is the success body of the sponsorship endpoints.
type SponsoredResponse struct {
	Success              bool                  `json:"success"`
	Message              string                `json:"message"`
	SponsoredTransaction *SponsoredTransaction `json:"sponsoredTransaction"`
}

// UserData is the body of GET /api/user-data/{walletAddress}.
type UserData struct {
	FitTokens          string `json:"fitTokens"`
	ChallengeCompleted bool   `json:"challengeCompleted"`
}

// ChallengeClaimRequest is the body of POST /api/challenges/claim-tokens.
type ChallengeClaimRequest struct {
	WalletAddress string      `json:"walletAddress"`
	ChallengeID   string      `json:"challengeId"`
	Reward        json.Number `json:"reward"`
}

// ChallengeClaim is one recorded claim.
type ChallengeClaim struct {
	Claimed         bool      `json:"claimed"`
	ClaimedAt       time.Time `json:"claimedAt"`
	TransactionHash string    `json:"transactionHash"`
}

// ChallengeResponse is the envelope of the challenge endpoints.
type ChallengeResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Client is a client for the relay service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new relay client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Health checks the health of the relay service.
func (c *Client) Health() (string, error) {
	resp, err := c.httpClient.Get(c.baseURL + "/health")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("service returned non-OK status: %s, body: %s", resp.Status, string(body))
	}
	return string(body), nil
}

// ConnectWallet asks the relay to sponsor a registerUser transaction for
// the wallet.
func (c *Client) ConnectWallet(req ConnectWalletRequest) (*SponsoredResponse, error) {
	var resp SponsoredResponse
	if err := c.doRequest(http.MethodPost, "/api/connect-wallet", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ClaimTokens asks the relay to sponsor a claimTokens transaction for the
// wallet.
func (c *Client) ClaimTokens(walletAddress string) (*SponsoredResponse, error) {
	body := struct {
		WalletAddress string `json:"walletAddress"`
	}{walletAddress}

	var resp SponsoredResponse
	if err := c.doRequest(http.MethodPost, "/api/claim-tokens", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UserData fetches the (stubbed) stats for a wallet.
func (c *Client) UserData(walletAddress string) (*UserData, error) {
	var resp UserData
	if err := c.doRequest(http.MethodGet, "/api/user-data/"+url.PathEscape(walletAddress), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ClaimChallenge records a challenge claim.
func (c *Client) ClaimChallenge(req ChallengeClaimRequest) (*ChallengeResponse, error) {
	var resp ChallengeResponse
	if err := c.doRequest(http.MethodPost, "/api/challenges/claim-tokens", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ChallengeStatus fetches the recorded claims for a wallet, keyed by
// challenge id.
func (c *Client) ChallengeStatus(walletAddress string) (map[string]ChallengeClaim, error) {
	var resp struct {
		Success bool                      `json:"success"`
		Data    map[string]ChallengeClaim `json:"data"`
	}
	if err := c.doRequest(http.MethodGet, "/api/challenges/claim-status/"+url.PathEscape(walletAddress), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) doRequest(method, path string, data, result interface{}) error {
	var reqBody []byte
	var err error

	if data != nil {
		reqBody, err = json.Marshal(data)
		if err != nil {
			return fmt.Errorf("failed to marshal request data: %w", err)
		}
	}

	req, err := http.NewRequest(method, c.baseURL+path, bytes.NewBuffer(reqBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}
	return nil
}
