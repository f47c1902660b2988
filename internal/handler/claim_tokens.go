package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/nerofit/relay/internal/chain"
)

// ClaimTokensHandler initiates a FIT token claim via a sponsored
// claimTokens transaction. Whether the claimed challenge was actually
// completed is not checked anywhere in this flow; the frontend is
// trusted (see README).
type ClaimTokensHandler struct {
	sponsor TransactionSponsor
	logger  *zap.Logger
}

// NewClaimTokensHandler creates a new ClaimTokensHandler.
func NewClaimTokensHandler(sponsor TransactionSponsor, logger *zap.Logger) *ClaimTokensHandler {
	return &ClaimTokensHandler{sponsor: sponsor, logger: logger}
}

// ServeHTTP implements the http.Handler interface.
func (h *ClaimTokensHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req ClaimTokensRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	defer r.Body.Close()

	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidAddress)
		return
	}
	userAddress := common.HexToAddress(req.WalletAddress)

	sponsored, err := h.sponsor.Create(r.Context(), req.WalletAddress, chain.MethodClaimTokens, userAddress)
	if err != nil {
		h.logger.Error("claim tokens failed", zap.String("wallet", req.WalletAddress), zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, SponsoredResponse{
		Success:              true,
		Message:              "Token claim initiated",
		SponsoredTransaction: sponsored,
	})
}
