// Package chain wraps the JSON-RPC connection to the Nero testnet and the
// fitness contract call encoding.
package chain

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
)

// NonceReader reads the current transaction count for an address. Satisfied
// by *Client; faked in tests.
type NonceReader interface {
	NonceAt(ctx context.Context, account common.Address) (uint64, error)
}

// Client is a thin wrapper over ethclient for the reads the relay needs.
type Client struct {
	eth *ethclient.Client
}

// Dial connects to the configured RPC endpoint. ethclient.Dial does not
// probe the endpoint, so an unreachable node surfaces on first use.
func Dial(rpcURL string) (*Client, error) {
	eth, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, errors.Wrap(err, "dial chain RPC")
	}
	return &Client{eth: eth}, nil
}

// NonceAt returns the latest transaction count for account, the value the
// next transaction from that account must carry as its nonce.
func (c *Client) NonceAt(ctx context.Context, account common.Address) (uint64, error) {
	nonce, err := c.eth.NonceAt(ctx, account, nil)
	if err != nil {
		return 0, errors.Wrap(err, "chain RPC unavailable")
	}
	return nonce, nil
}

// Close tears down the underlying RPC connection.
func (c *Client) Close() {
	c.eth.Close()
}
