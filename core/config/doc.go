// Package config provides type-safe environment variable loading with
// per-type caching using Go generics. A .env file is loaded automatically
// on first use; parsing is handled by the caarlos0/env library.
//
//	type BrokerConfig struct {
//		MessageTTL time.Duration `env:"BROKER_MESSAGE_TTL" envDefault:"30s"`
//	}
//
//	var cfg BrokerConfig
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
//	// Or panic on failure during startup:
//	config.MustLoad(&cfg)
//
// Each configuration type is loaded once per process lifetime; later calls
// for the same type observe the cached value.
package config
