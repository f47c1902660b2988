// Package gasless composes transaction building with paymaster
// sponsorship: the full gasless-transaction flow the relay endpoints
// invoke.
package gasless

import (
	"context"
	"encoding/json"

	"github.com/nerofit/relay/internal/metrics"
	"github.com/nerofit/relay/internal/txbuilder"
)

// SponsoredTransaction is what the frontend needs to finish the flow: the
// unsigned transaction to sign, the sponsor's opaque verdict, and the
// paymaster address covering the gas.
type SponsoredTransaction struct {
	Transaction *txbuilder.UnsignedTransaction `json:"transaction"`
	SponsorData json.RawMessage                `json:"sponsorData"`
	Paymaster   string                         `json:"paymaster"`
}

// Sponsor requests paymaster sponsorship for an unsigned transaction.
// Satisfied by *paymaster.Client; faked in tests.
type Sponsor interface {
	SponsorTransaction(ctx context.Context, tx *txbuilder.UnsignedTransaction, userAddress, paymasterAddress string) (json.RawMessage, error)
}

// Service builds and sponsors transactions in sequence. Stateless; safe
// for concurrent use.
type Service struct {
	builder   *txbuilder.Builder
	sponsor   Sponsor
	paymaster string
	metrics   *metrics.Metrics
}

// NewService wires a builder to a sponsor paying from paymasterAddress.
// m may be nil to disable instrumentation.
func NewService(builder *txbuilder.Builder, sponsor Sponsor, paymasterAddress string, m *metrics.Metrics) *Service {
	return &Service{
		builder:   builder,
		sponsor:   sponsor,
		paymaster: paymasterAddress,
		metrics:   m,
	}
}

// Create builds an unsigned method call for userAddress and submits it
// for sponsorship. The two outbound calls (nonce fetch, sponsorship POST)
// run sequentially; a failure in either aborts the whole request.
func (s *Service) Create(ctx context.Context, userAddress, method string, params ...interface{}) (*SponsoredTransaction, error) {
	if s.metrics != nil {
		s.metrics.SponsorshipsTotal.WithLabelValues(method).Inc()
	}
	tx, err := s.builder.Build(ctx, userAddress, method, params...)
	if err != nil {
		if s.metrics != nil {
			s.metrics.SponsorshipsFail.WithLabelValues(method).Inc()
		}
		return nil, err
	}
	sponsorData, err := s.sponsor.SponsorTransaction(ctx, tx, userAddress, s.paymaster)
	if err != nil {
		if s.metrics != nil {
			s.metrics.SponsorshipsFail.WithLabelValues(method).Inc()
		}
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.SponsorshipsSuccess.WithLabelValues(method).Inc()
	}
	return &SponsoredTransaction{
		Transaction: tx,
		SponsorData: sponsorData,
		Paymaster:   s.paymaster,
	}, nil
}
