// Package test provides configuration fixtures for tests
package test

import "github.com/irysname/irysname/config"

// TestPrivateKey is a well-known development key, never fund it
const TestPrivateKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

// DefaultConfigForTesting constructs a config backed by an in-memory
// registry, with a precomputed upload identity, only used for testing.
func DefaultConfigForTesting() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Registry.Backend = config.BackendMem
	cfg.Registry.GatewayURL = "https://gateway.irys.xyz"
	cfg.Uploader.PrivateKey = TestPrivateKey
	cfg.Logging.Levels = map[string]string{
		"irysapi":   "error",
		"lib":       "error",
		"regclient": "error",
	}
	return cfg
}
