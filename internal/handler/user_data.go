package handler

import (
	"net/http"

	"github.com/nerofit/relay/internal/wallet"
)

// UserDataHandler serves per-wallet stats. The payload is a fixed stub:
// the on-chain getUserData read was never wired up, and every valid
// address receives the same values.
type UserDataHandler struct{}

// NewUserDataHandler creates a new UserDataHandler.
func NewUserDataHandler() *UserDataHandler {
	return &UserDataHandler{}
}

// ServeHTTP implements the http.Handler interface.
func (h *UserDataHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	walletAddress := r.PathValue("walletAddress")
	if !wallet.IsValidAddress(walletAddress) {
		writeError(w, http.StatusBadRequest, msgInvalidAddress)
		return
	}

	writeJSON(w, http.StatusOK, UserDataResponse{
		FitTokens:          "10.5",
		ChallengeCompleted: true,
	})
}
