package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrParseFailed is returned when environment variables cannot be parsed
// into the target struct.
var ErrParseFailed = errors.New("failed to parse environment variables")

var (
	cache       sync.Map // reflect.Type -> parsed struct value
	loadEnvOnce sync.Once
)

// Load parses environment variables into cfg. Each configuration type is
// parsed once per process; subsequent calls for the same type return the
// cached value, so all consumers observe identical configuration.
//
// A .env file in the working directory is loaded on first use; a missing
// file is not an error.
func Load[T any](cfg *T) error {
	loadEnvOnce.Do(func() {
		_ = godotenv.Load()
	})

	key := reflect.TypeOf(*cfg)
	if v, ok := cache.Load(key); ok {
		*cfg = v.(T)
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return errors.Join(fmt.Errorf("%w: %s", ErrParseFailed, key.Name()), err)
	}

	actual, _ := cache.LoadOrStore(key, *cfg)
	*cfg = actual.(T)
	return nil
}

// MustLoad is Load that panics on failure. Intended for process startup
// where a missing required variable should abort immediately.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
