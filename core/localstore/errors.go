package localstore

import "errors"

var (
	// ErrInvalidSecret is returned when the keystore secret has the wrong size.
	ErrInvalidSecret = errors.New("keystore secret must be 32 bytes")
	// ErrCorruptToken is returned when the persisted token fails authentication.
	ErrCorruptToken = errors.New("persisted token is corrupt")
	// ErrStorageUnavailable is returned when the underlying filesystem fails.
	ErrStorageUnavailable = errors.New("local storage unavailable")
)
