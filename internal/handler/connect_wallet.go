package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/nerofit/relay/internal/chain"
	"github.com/nerofit/relay/internal/wallet"
)

// ConnectWalletHandler registers a wallet with the fitness contract via a
// sponsored registerUser transaction.
type ConnectWalletHandler struct {
	sponsor TransactionSponsor
	logger  *zap.Logger
}

// NewConnectWalletHandler creates a new ConnectWalletHandler.
func NewConnectWalletHandler(sponsor TransactionSponsor, logger *zap.Logger) *ConnectWalletHandler {
	return &ConnectWalletHandler{sponsor: sponsor, logger: logger}
}

// ServeHTTP implements the http.Handler interface.
func (h *ConnectWalletHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req ConnectWalletRequest
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

	// Signature verification is opt-in: callers without a signature get
	// through on the address claim alone. When both fields are present the
	// signature must recover to the claimed address.
	if req.Signature != "" && req.Message != "" {
		if !wallet.VerifyPersonalSignature(req.Message, req.Signature, userAddress) {
			writeError(w, http.StatusUnauthorized, msgInvalidSig)
			return
		}
		h.logger.Info("signature verified", zap.String("wallet", req.WalletAddress))
	} else {
		h.logger.Debug("no signature provided, skipping verification", zap.String("wallet", req.WalletAddress))
	}

	sponsored, err := h.sponsor.Create(r.Context(), req.WalletAddress, chain.MethodRegisterUser, userAddress)
	if err != nil {
		h.logger.Error("connect wallet failed", zap.String("wallet", req.WalletAddress), zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, SponsoredResponse{
		Success:              true,
		Message:              "Wallet connected successfully",
		SponsoredTransaction: sponsored,
	})
}
