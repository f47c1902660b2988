package txbuilder

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerofit/relay/internal/chain"
)

const (
	testContract = "0x2222222222222222222222222222222222222222"
	testUser     = "0x8ba1f109551bD432803012645Ac136ddd64DBA72"
	testChainID  = int64(689)
)

type stubNonces struct {
	nonce uint64
	err   error
	calls int
}

func (s *stubNonces) NonceAt(context.Context, common.Address) (uint64, error) {
	s.calls++
	return s.nonce, s.err
}

func newTestBuilder(t *testing.T, nonces chain.NonceReader) *Builder {
	t.Helper()
	codec, err := chain.NewCodec(chain.DefaultFitnessABI)
	require.NoError(t, err)
	return NewBuilder(nonces, codec, common.HexToAddress(testContract), testChainID)
}

func TestBuild(t *testing.T) {
	nonces := &stubNonces{nonce: 42}
	b := newTestBuilder(t, nonces)
	user := common.HexToAddress(testUser)

	tx, err := b.Build(context.Background(), testUser, chain.MethodClaimTokens, user)
	require.NoError(t, err)

	assert.Equal(t, 0, tx.Type)
	assert.Equal(t, common.HexToAddress(testContract), tx.To)
	assert.Equal(t, user, tx.From)
	assert.EqualValues(t, 42, tx.Nonce)
	assert.EqualValues(t, 1_000_000, tx.GasLimit)
	assert.Equal(t, "1000000000", tx.GasPrice.ToInt().String())
	assert.Equal(t, testChainID, tx.ChainID)
	assert.Equal(t, 1, nonces.calls)

	parsed, err := abi.JSON(strings.NewReader(chain.DefaultFitnessABI))
	require.NoError(t, err)
	want, err := parsed.Pack(chain.MethodClaimTokens, user)
	require.NoError(t, err)
	assert.Equal(t, want, []byte(tx.Data))
}

func TestBuildJSONWireFormat(t *testing.T) {
	b := newTestBuilder(t, &stubNonces{nonce: 7})
	user := common.HexToAddress(testUser)

	tx, err := b.Build(context.Background(), testUser, chain.MethodRegisterUser, user)
	require.NoError(t, err)

	raw, err := json.Marshal(tx)
	require.NoError(t, err)

	var wire map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &wire))

	// Quantity fields travel hex-encoded; type and chainId as numbers.
	assert.EqualValues(t, 0, wire["type"])
	assert.Equal(t, "0x7", wire["nonce"])
	assert.Equal(t, "0xf4240", wire["gasLimit"])
	assert.Equal(t, "0x3b9aca00", wire["gasPrice"])
	assert.EqualValues(t, testChainID, wire["chainId"])
	assert.Equal(t, strings.ToLower(testContract), wire["to"])
	assert.Equal(t, strings.ToLower(testUser), wire["from"])
	assert.True(t, strings.HasPrefix(wire["data"].(string), "0x"))
}

func TestBuildInvalidAddress(t *testing.T) {
	nonces := &stubNonces{}
	b := newTestBuilder(t, nonces)

	for _, bad := range []string{"not-an-address", "0x123", ""} {
		_, err := b.Build(context.Background(), bad, chain.MethodRegisterUser)
		assert.True(t, errors.Is(err, ErrInvalidAddress), "address %q", bad)
	}
	// Validation failures never reach the chain.
	assert.Equal(t, 0, nonces.calls)
}

func TestBuildUnknownMethodSkipsNonceFetch(t *testing.T) {
	nonces := &stubNonces{}
	b := newTestBuilder(t, nonces)

	_, err := b.Build(context.Background(), testUser, "selfdestruct")
	require.Error(t, err)
	assert.True(t, errors.Is(err, chain.ErrUnknownMethod))
	assert.Equal(t, 0, nonces.calls)
}

func TestBuildNonceFetchFailure(t *testing.T) {
	nonces := &stubNonces{err: errors.New("connection refused")}
	b := newTestBuilder(t, nonces)
	user := common.HexToAddress(testUser)

	_, err := b.Build(context.Background(), testUser, chain.MethodClaimTokens, user)
	require.Error(t, err)
	// Not retried: one attempt, one failure.
	assert.Equal(t, 1, nonces.calls)
}
