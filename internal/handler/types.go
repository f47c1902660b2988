package handler

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/nerofit/relay/internal/gasless"
)

// TransactionSponsor creates sponsored transactions for relay endpoints.
// Satisfied by *gasless.Service; faked in tests.
type TransactionSponsor interface {
	Create(ctx context.Context, userAddress, method string, params ...interface{}) (*gasless.SponsoredTransaction, error)
}

var validate = validator.New()

// ConnectWalletRequest is the body of POST /api/connect-wallet. Signature
// and message are optional; verification runs only when both are present.
type ConnectWalletRequest struct {
	WalletAddress string `json:"walletAddress" validate:"required,eth_addr"`
	Signature     string `json:"signature,omitempty"`
	Message       string `json:"message,omitempty"`
}

// ClaimTokensRequest is the body of POST /api/claim-tokens.
type ClaimTokensRequest struct {
	WalletAddress string `json:"walletAddress" validate:"required,eth_addr"`
}

// SponsoredResponse is the success body shared by the two sponsorship
// endpoints. The frontend renders Message verbatim.
type SponsoredResponse struct {
	Success              bool                          `json:"success"`
	Message              string                        `json:"message"`
	SponsoredTransaction *gasless.SponsoredTransaction `json:"sponsoredTransaction"`
}

// UserDataResponse is the body of GET /api/user-data/{walletAddress}.
type UserDataResponse struct {
	FitTokens          string `json:"fitTokens"`
	ChallengeCompleted bool   `json:"challengeCompleted"`
}

// ErrorResponse is the standard error body. The frontend displays Error
// directly in its toast UI, so these strings are part of the contract.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Error message strings shared across endpoints.
const (
	msgInvalidAddress = "Invalid wallet address"
	msgInvalidSig     = "Invalid signature"
	msgInvalidBody    = "Invalid request body"
)
