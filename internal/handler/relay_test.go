package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nerofit/relay/internal/chain"
	"github.com/nerofit/relay/internal/gasless"
	"github.com/nerofit/relay/internal/paymaster"
	"github.com/nerofit/relay/internal/txbuilder"
)

const (
	e2eContract  = "0x2222222222222222222222222222222222222222"
	e2ePaymaster = "0x1111111111111111111111111111111111111111"
	e2eChainID   = int64(689)
)

type fixedNonces struct{ nonce uint64 }

func (f *fixedNonces) NonceAt(context.Context, common.Address) (uint64, error) {
	return f.nonce, nil
}

// Full relay flow against a fake paymaster: handler -> builder -> sponsor
// client, with only the chain nonce read stubbed.
func TestClaimTokensEndToEnd(t *testing.T) {
	var sponsorBody map[string]interface{}
	paymasterSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &sponsorBody))
		w.Write([]byte(`{"sponsorSignature":"0xfeed"}`))
	}))
	defer paymasterSrv.Close()

	codec, err := chain.NewCodec(chain.DefaultFitnessABI)
	require.NoError(t, err)
	builder := txbuilder.NewBuilder(&fixedNonces{nonce: 9}, codec, common.HexToAddress(e2eContract), e2eChainID)
	svc := gasless.NewService(builder, paymaster.NewClient(paymasterSrv.URL, "test-key"), e2ePaymaster, nil)
	h := NewClaimTokensHandler(svc, zap.NewNop())

	rec := postJSON(t, h, "/api/claim-tokens", map[string]string{"walletAddress": testUser})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success              bool `json:"success"`
		SponsoredTransaction struct {
			Transaction map[string]interface{} `json:"transaction"`
			SponsorData json.RawMessage        `json:"sponsorData"`
			Paymaster   string                 `json:"paymaster"`
		} `json:"sponsoredTransaction"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)

	tx := resp.SponsoredTransaction.Transaction
	assert.EqualValues(t, 0, tx["type"])
	assert.Equal(t, "0x9", tx["nonce"])
	assert.Equal(t, "0xf4240", tx["gasLimit"])
	assert.Equal(t, "0x3b9aca00", tx["gasPrice"])
	assert.EqualValues(t, e2eChainID, tx["chainId"])

	parsed, err := abi.JSON(strings.NewReader(chain.DefaultFitnessABI))
	require.NoError(t, err)
	want, err := parsed.Pack(chain.MethodClaimTokens, common.HexToAddress(testUser))
	require.NoError(t, err)
	assert.Equal(t, "0x"+common.Bytes2Hex(want), tx["data"])

	// Sponsor verdict forwarded untouched; paymaster saw the same tx.
	assert.JSONEq(t, `{"sponsorSignature":"0xfeed"}`, string(resp.SponsoredTransaction.SponsorData))
	assert.Equal(t, e2ePaymaster, resp.SponsoredTransaction.Paymaster)
	assert.EqualValues(t, 0, sponsorBody["transactionType"])
	assert.Equal(t, testUser, sponsorBody["userAddress"])
}

func TestClaimTokensEndToEndPaymasterDown(t *testing.T) {
	paymasterSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer paymasterSrv.Close()

	codec, err := chain.NewCodec(chain.DefaultFitnessABI)
	require.NoError(t, err)
	builder := txbuilder.NewBuilder(&fixedNonces{}, codec, common.HexToAddress(e2eContract), e2eChainID)
	svc := gasless.NewService(builder, paymaster.NewClient(paymasterSrv.URL, "test-key"), e2ePaymaster, nil)
	h := NewClaimTokensHandler(svc, zap.NewNop())

	rec := postJSON(t, h, "/api/claim-tokens", map[string]string{"walletAddress": testUser})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "maintenance")

	// Still serving after the upstream 503.
	rec = postJSON(t, h, "/api/claim-tokens", map[string]string{"walletAddress": "0x123"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
