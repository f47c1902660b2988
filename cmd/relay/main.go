package main

import (
	"context"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	vault "github.com/hashicorp/vault/api"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/nerofit/relay/internal/chain"
	"github.com/nerofit/relay/internal/config"
	"github.com/nerofit/relay/internal/gasless"
	"github.com/nerofit/relay/internal/handler"
	"github.com/nerofit/relay/internal/metrics"
	"github.com/nerofit/relay/internal/middleware"
	"github.com/nerofit/relay/internal/paymaster"
	"github.com/nerofit/relay/internal/secrets"
	"github.com/nerofit/relay/internal/server"
	"github.com/nerofit/relay/internal/store"
	"github.com/nerofit/relay/internal/txbuilder"
)

func main() {
	// A local .env is a convenience for development; absence is fine.
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	// Connect to the Nero testnet
	chainClient, err := chain.Dial(cfg.Chain.RPCURL)
	if err != nil {
		logger.Fatal("failed to connect to chain RPC", zap.Error(err))
	}
	defer chainClient.Close()

	codec, err := chain.NewCodec(cfg.Chain.ContractABI)
	if err != nil {
		logger.Fatal("failed to parse contract ABI", zap.Error(err))
	}

	apiKey, err := resolveAPIKey(cfg, logger)
	if err != nil {
		logger.Fatal("failed to resolve paymaster API key", zap.Error(err))
	}

	// Initialize components
	m := metrics.New()
	builder := txbuilder.NewBuilder(chainClient, codec, common.HexToAddress(cfg.Chain.ContractAddress), cfg.Chain.ChainID)
	sponsorClient := paymaster.NewClient(cfg.Paymaster.APIURL, apiKey)
	gaslessService := gasless.NewService(builder, sponsorClient, cfg.Paymaster.Address, m)
	challengeStore := store.NewMemoryChallengeStore()

	// Setup routes
	mux := http.NewServeMux()
	mux.Handle("/health", handler.NewHealthHandler())
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/api/connect-wallet", handler.NewConnectWalletHandler(gaslessService, logger))
	mux.Handle("/api/claim-tokens", handler.NewClaimTokensHandler(gaslessService, logger))
	mux.Handle("/api/user-data/{walletAddress}", handler.NewUserDataHandler())
	mux.Handle("/api/challenges/claim-tokens", handler.NewChallengeClaimHandler(challengeStore, logger))
	mux.Handle("/api/challenges/claim-status/{walletAddress}", handler.NewChallengeStatusHandler(challengeStore))

	var root http.Handler = mux
	root = middleware.Logging(logger, m)(root)
	root = middleware.CORS(cfg.Server.CORSOrigins)(root)

	// Start server
	srv := server.NewServer(root, cfg.Server.Port)
	logger.Info("server listening",
		zap.String("port", cfg.Server.Port),
		zap.String("rpc", cfg.Chain.RPCURL),
		zap.String("paymaster", cfg.Paymaster.Address),
	)
	logger.Fatal("server stopped", zap.Error(srv.ListenAndServe()))
}

// resolveAPIKey picks the paymaster credential source: the environment by
// default, or a Vault KV secret when PAYMASTER_KEY_VAULT_PATH is set.
func resolveAPIKey(cfg config.Config, logger *zap.Logger) (string, error) {
	var source secrets.Source = secrets.NewStaticSource(cfg.Paymaster.APIKey)

	if cfg.Vault.KeyPath != "" {
		vaultConfig := vault.DefaultConfig()
		if err := vaultConfig.ReadEnvironment(); err != nil {
			logger.Warn("could not read Vault environment variables", zap.Error(err))
		}
		if cfg.Vault.Address != "" {
			vaultConfig.Address = cfg.Vault.Address
		}
		vaultClient, err := vault.NewClient(vaultConfig)
		if err != nil {
			return "", err
		}
		if cfg.Vault.Token != "" {
			vaultClient.SetToken(cfg.Vault.Token)
		}
		logger.Info("using Vault for paymaster API key", zap.String("path", cfg.Vault.KeyPath))
		source = secrets.NewVaultSource(vaultClient, cfg.Vault.KeyPath)
	}

	return source.PaymasterAPIKey(context.Background())
}
