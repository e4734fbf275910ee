// Package config provides type-safe environment variable loading with
// per-type caching using Go generics.
//
// The package automatically loads a .env file on first use and parses
// environment variables into struct fields via caarlos0/env tags:
//
//	type APIConfig struct {
//		BaseURL string        `env:"STOREFRONT_API_URL,required"`
//		Timeout time.Duration `env:"STOREFRONT_API_TIMEOUT" envDefault:"15s"`
//	}
//
//	var cfg APIConfig
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
// Each configuration type is loaded only once per process lifetime; repeated
// Load calls for the same type return the cached value.
package config
