package handler

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/nerofit/relay/internal/store"
)

// ChallengeClaimRequest is the body of POST /api/challenges/claim-tokens.
type ChallengeClaimRequest struct {
	WalletAddress string      `json:"walletAddress" validate:"required"`
	ChallengeID   string      `json:"challengeId" validate:"required"`
	Reward        json.Number `json:"reward" validate:"required"`
}

// challengeResponse is the envelope the challenge routes use. It predates
// the plain {error} shape the sponsorship routes settled on and the
// frontend still expects it here.
type challengeResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ChallengeClaimHandler records a challenge claim in the (in-memory)
// challenge store and answers with a mock transaction hash. A demo stand-in
// for the sponsored claim flow, kept for the dashboard's challenge page.
type ChallengeClaimHandler struct {
	store  store.ChallengeStore
	logger *zap.Logger
}

// NewChallengeClaimHandler creates a new ChallengeClaimHandler.
func NewChallengeClaimHandler(s store.ChallengeStore, logger *zap.Logger) *ChallengeClaimHandler {
	return &ChallengeClaimHandler{store: s, logger: logger}
}

// ServeHTTP implements the http.Handler interface.
func (h *ChallengeClaimHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req ChallengeClaimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, challengeResponse{
			Success: false,
			Message: "Missing required fields: walletAddress, challengeId, reward",
		})
		return
	}
	defer r.Body.Close()

	if err := validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, challengeResponse{
			Success: false,
			Message: "Missing required fields: walletAddress, challengeId, reward",
		})
		return
	}

	claim := store.ChallengeClaim{
		Claimed:         true,
		ClaimedAt:       time.Now().UTC(),
		TransactionHash: mockTransactionHash(),
	}
	if err := h.store.RecordClaim(req.WalletAddress, req.ChallengeID, claim); err != nil {
		h.logger.Error("record claim failed", zap.String("wallet", req.WalletAddress), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, challengeResponse{
			Success: false,
			Message: "Failed to claim tokens",
			Error:   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, challengeResponse{
		Success: true,
		Message: fmt.Sprintf("Successfully claimed %s FIT tokens", req.Reward.String()),
		Data: map[string]interface{}{
			"challengeId":     req.ChallengeID,
			"reward":          req.Reward,
			"transactionHash": claim.TransactionHash,
			"claimedAt":       claim.ClaimedAt,
		},
	})
}

// ChallengeStatusHandler serves the recorded claims for one wallet.
type ChallengeStatusHandler struct {
	store store.ChallengeStore
}

// NewChallengeStatusHandler creates a new ChallengeStatusHandler.
func NewChallengeStatusHandler(s store.ChallengeStore) *ChallengeStatusHandler {
	return &ChallengeStatusHandler{store: s}
}

// ServeHTTP implements the http.Handler interface.
func (h *ChallengeStatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	claims, err := h.store.ClaimsFor(r.PathValue("walletAddress"))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, challengeResponse{
			Success: false,
			Message: "Failed to get claim status",
			Error:   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, challengeResponse{
		Success: true,
		Data:    claims,
	})
}

func mockTransactionHash() string {
	var b [32]byte
	rand.Read(b[:])
	return "0x" + hex.EncodeToString(b[:])
}
