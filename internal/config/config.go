package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	Server    ServerConfig
	Chain     ChainConfig
	Paymaster PaymasterConfig
	Vault     VaultConfig
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Port        string
	CORSOrigins []string
}

// ChainConfig holds the Nero testnet connection parameters and the
// fitness contract the relay builds transactions against.
type ChainConfig struct {
	RPCURL          string
	ChainID         int64
	ContractAddress string
	ContractABI     string
}

// PaymasterConfig holds the sponsorship service parameters.
type PaymasterConfig struct {
	APIURL  string
	Address string
	APIKey  string
}

// VaultConfig holds the optional Vault override for the paymaster API key.
// When KeyPath is empty the key from the environment is used as-is.
type VaultConfig struct {
	Address string
	Token   string
	KeyPath string
}

// requiredKeys are the environment variables the relay refuses to start
// without. The contract ABI is required so deployments state explicitly
// which interface they encode against, even though the package ships a
// default (see chain.DefaultFitnessABI).
var requiredKeys = []string{
	"PAYMASTER_API_URL",
	"PAYMASTER_ADDRESS",
	"PAYMASTER_API_KEY",
	"FITNESS_CONTRACT_ADDRESS",
	"NERO_TESTNET_RPC",
	"NERO_CHAIN_ID",
	"FITNESS_CONTRACT_ABI",
}

// Load reads configuration from the environment. It returns a single
// aggregate error naming every missing required key so a broken
// deployment can be fixed in one pass.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "3000")
	v.SetDefault("CORS_ORIGINS", "*")

	var missing []string
	for _, key := range requiredKeys {
		if strings.TrimSpace(v.GetString(key)) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return Config{}, errors.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	chainID := v.GetInt64("NERO_CHAIN_ID")
	if chainID <= 0 {
		return Config{}, errors.Errorf("NERO_CHAIN_ID must be a positive integer, got %q", v.GetString("NERO_CHAIN_ID"))
	}

	cfg := Config{
		Server: ServerConfig{
			Port:        v.GetString("PORT"),
			CORSOrigins: splitOrigins(v.GetString("CORS_ORIGINS")),
		},
		Chain: ChainConfig{
			RPCURL:          v.GetString("NERO_TESTNET_RPC"),
			ChainID:         chainID,
			ContractAddress: v.GetString("FITNESS_CONTRACT_ADDRESS"),
			ContractABI:     v.GetString("FITNESS_CONTRACT_ABI"),
		},
		Paymaster: PaymasterConfig{
			APIURL:  strings.TrimRight(v.GetString("PAYMASTER_API_URL"), "/"),
			Address: v.GetString("PAYMASTER_ADDRESS"),
			APIKey:  v.GetString("PAYMASTER_API_KEY"),
		},
		Vault: VaultConfig{
			Address: v.GetString("VAULT_ADDR"),
			Token:   v.GetString("VAULT_TOKEN"),
			KeyPath: v.GetString("PAYMASTER_KEY_VAULT_PATH"),
		},
	}
	return cfg, nil
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
