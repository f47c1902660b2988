// Package store holds challenge claim status. The only implementation is
// an in-memory stub: contents are lost on restart, and the interface is
// the seam a real database-backed store would slot into.
package store

import (
	"sync"
	"time"
)

// ChallengeClaim records one claimed challenge for one wallet.
type ChallengeClaim struct {
	Claimed         bool      `json:"claimed"`
	ClaimedAt       time.Time `json:"claimedAt"`
	TransactionHash string    `json:"transactionHash"`
}

// ChallengeStore persists per-wallet challenge claim status.
type ChallengeStore interface {
	// RecordClaim marks challengeID as claimed by walletAddress.
	RecordClaim(walletAddress, challengeID string, claim ChallengeClaim) error
	// ClaimsFor returns every recorded claim for walletAddress, keyed by
	// challenge id. Unknown wallets yield an empty map.
	ClaimsFor(walletAddress string) (map[string]ChallengeClaim, error)
}

// MemoryChallengeStore is the non-durable stand-in for real persistence.
type MemoryChallengeStore struct {
	mu     sync.RWMutex
	claims map[string]map[string]ChallengeClaim
}

// NewMemoryChallengeStore returns an empty in-memory store.
func NewMemoryChallengeStore() *MemoryChallengeStore {
	return &MemoryChallengeStore{
		claims: make(map[string]map[string]ChallengeClaim),
	}
}

// RecordClaim implements ChallengeStore.
func (s *MemoryChallengeStore) RecordClaim(walletAddress, challengeID string, claim ChallengeClaim) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	byChallenge, ok := s.claims[walletAddress]
	if !ok {
		byChallenge = make(map[string]ChallengeClaim)
		s.claims[walletAddress] = byChallenge
	}
	byChallenge[challengeID] = claim
	return nil
}

// ClaimsFor implements ChallengeStore.
func (s *MemoryChallengeStore) ClaimsFor(walletAddress string) (map[string]ChallengeClaim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]ChallengeClaim, len(s.claims[walletAddress]))
	for id, claim := range s.claims[walletAddress] {
		out[id] = claim
	}
	return out, nil
}
