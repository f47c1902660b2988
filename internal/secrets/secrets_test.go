package secrets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	vault "github.com/hashicorp/vault/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticSource(t *testing.T) {
	key, err := NewStaticSource("test-key").PaymasterAPIKey(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "test-key", key)

	_, err = NewStaticSource("").PaymasterAPIKey(context.Background())
	require.Error(t, err)
}

func newVaultTestClient(t *testing.T, handler http.HandlerFunc) *vault.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := vault.DefaultConfig()
	cfg.Address = srv.URL
	client, err := vault.NewClient(cfg)
	require.NoError(t, err)
	client.SetToken("test-token")
	return client
}

func TestVaultSourceKVv2(t *testing.T) {
	client := newVaultTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/secret/data/nerofit/paymaster", r.URL.Path)
		assert.Equal(t, "test-token", r.Header.Get("X-Vault-Token"))
		w.Header().Set("Content-Type", "application/json")
		// KV v2 nests the secret fields under data.data.
		w.Write([]byte(`{"data":{"data":{"api_key":"vault-key"},"metadata":{"version":1}}}`))
	})

	key, err := NewVaultSource(client, "secret/data/nerofit/paymaster").PaymasterAPIKey(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "vault-key", key)
}

func TestVaultSourceKVv1(t *testing.T) {
	client := newVaultTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"api_key":"vault-key"}}`))
	})

	key, err := NewVaultSource(client, "secret/nerofit/paymaster").PaymasterAPIKey(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "vault-key", key)
}

func TestVaultSourceMissingSecret(t *testing.T) {
	client := newVaultTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errors":[]}`, http.StatusNotFound)
	})

	_, err := NewVaultSource(client, "secret/data/nothing").PaymasterAPIKey(context.Background())
	require.Error(t, err)
}

func TestVaultSourceMissingField(t *testing.T) {
	client := newVaultTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"data":{"password":"nope"},"metadata":{}}}`))
	})

	_, err := NewVaultSource(client, "secret/data/nerofit/paymaster").PaymasterAPIKey(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api_key")
}
