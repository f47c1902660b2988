// Package txbuilder assembles legacy (type-0) unsigned transactions for
// paymaster sponsorship. The paymaster only sponsors type-0 transactions,
// so the builder never emits EIP-1559 fields.
package txbuilder

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"

	"github.com/nerofit/relay/internal/chain"
	"github.com/nerofit/relay/internal/wallet"
)

// Fixed gas parameters. The relay does not estimate gas; the sponsor
// absorbs the cost of the generous limit.
const (
	GasLimit = 1_000_000
	GasPrice = 1_000_000_000 // 1 gwei
)

// ErrInvalidAddress is returned when the caller-supplied wallet address
// fails format validation.
var ErrInvalidAddress = errors.New("invalid wallet address")

// UnsignedTransaction is the fully populated legacy transaction handed to
// the paymaster. Quantity fields are hex-encoded in JSON to match the wire
// format the sponsorship API and the signing wallet expect. Treated as
// immutable once built.
type UnsignedTransaction struct {
	Type     int            `json:"type"`
	To       common.Address `json:"to"`
	Data     hexutil.Bytes  `json:"data"`
	From     common.Address `json:"from"`
	Nonce    hexutil.Uint64 `json:"nonce"`
	GasLimit hexutil.Uint64 `json:"gasLimit"`
	GasPrice *hexutil.Big   `json:"gasPrice"`
	ChainID  int64          `json:"chainId"`
}

// Builder produces unsigned transactions against the fixed fitness
// contract. Each Build performs exactly one chain read (the nonce fetch)
// and has no other side effects.
type Builder struct {
	nonces   chain.NonceReader
	codec    *chain.Codec
	contract common.Address
	chainID  int64
}

// NewBuilder returns a Builder targeting contract on chainID.
func NewBuilder(nonces chain.NonceReader, codec *chain.Codec, contract common.Address, chainID int64) *Builder {
	return &Builder{
		nonces:   nonces,
		codec:    codec,
		contract: contract,
		chainID:  chainID,
	}
}

// Build assembles an unsigned transaction calling method with params from
// userAddress. The nonce is fetched live; the nonce fetch is not retried.
func (b *Builder) Build(ctx context.Context, userAddress, method string, params ...interface{}) (*UnsignedTransaction, error) {
	if !wallet.IsValidAddress(userAddress) {
		return nil, errors.Wrapf(ErrInvalidAddress, "%q", userAddress)
	}
	from := common.HexToAddress(userAddress)

	data, err := b.codec.EncodeCall(method, params...)
	if err != nil {
		return nil, err
	}

	nonce, err := b.nonces.NonceAt(ctx, from)
	if err != nil {
		return nil, err
	}

	return &UnsignedTransaction{
		Type:     0,
		To:       b.contract,
		Data:     data,
		From:     from,
		Nonce:    hexutil.Uint64(nonce),
		GasLimit: hexutil.Uint64(GasLimit),
		GasPrice: (*hexutil.Big)(big.NewInt(GasPrice)),
		ChainID:  b.chainID,
	}, nil
}
