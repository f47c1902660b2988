// Package secrets resolves the paymaster API credential. The default
// source is the environment; deployments that keep the bearer token in
// HashiCorp Vault can point the relay at a KV secret instead.
package secrets

import (
	"context"

	"github.com/hashicorp/vault/api"
	"github.com/pkg/errors"
)

// Source yields the paymaster bearer token. Resolved once at boot.
type Source interface {
	PaymasterAPIKey(ctx context.Context) (string, error)
}

// StaticSource serves a key already loaded from the environment.
type StaticSource struct {
	key string
}

// NewStaticSource wraps an environment-provided key.
func NewStaticSource(key string) *StaticSource {
	return &StaticSource{key: key}
}

// PaymasterAPIKey implements Source.
func (s *StaticSource) PaymasterAPIKey(context.Context) (string, error) {
	if s.key == "" {
		return "", errors.New("paymaster API key is empty")
	}
	return s.key, nil
}

// keyField is the field holding the bearer token inside the Vault secret.
const keyField = "api_key"

// VaultSource reads the bearer token from a Vault KV secret.
type VaultSource struct {
	client *api.Client
	path   string
}

// NewVaultSource returns a VaultSource reading the secret at path.
func NewVaultSource(client *api.Client, path string) *VaultSource {
	return &VaultSource{client: client, path: path}
}

// PaymasterAPIKey implements Source. Both KV v1 and v2 secret layouts are
// accepted; v2 nests the fields under a "data" key.
func (s *VaultSource) PaymasterAPIKey(ctx context.Context) (string, error) {
	secret, err := s.client.Logical().ReadWithContext(ctx, s.path)
	if err != nil {
		return "", errors.Wrapf(err, "read vault secret %q", s.path)
	}
	if secret == nil || secret.Data == nil {
		return "", errors.Errorf("vault secret %q not found", s.path)
	}

	data := secret.Data
	if nested, ok := data["data"].(map[string]interface{}); ok {
		data = nested
	}
	key, ok := data[keyField].(string)
	if !ok || key == "" {
		return "", errors.Errorf("vault secret %q has no %q field", s.path, keyField)
	}
	return key, nil
}
