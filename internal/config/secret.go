package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	serviceName   = "tether"
	secretKeyName = "TETHER_SECRET_KEY"
)

// ErrNoSecret indicates no secret key is stored in the keyring.
var ErrNoSecret = errors.New("secret key not found")

// SecretKey returns the daemon secret key. The TETHER_SECRET_KEY environment
// variable wins over the OS keyring; absence is not an error here, callers
// fail fast when a secret-requiring operation runs without one.
func SecretKey() (string, error) {
	if env := strings.TrimSpace(os.Getenv(secretKeyName)); env != "" {
		return env, nil
	}

	secret, err := keyring.Get(serviceName, secretKeyName)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("read secret key: %w", err)
	}
	return secret, nil
}

// SetSecretKey stores the daemon secret key in the OS keyring.
func SetSecretKey(value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return errors.New("secret key cannot be empty")
	}
	if err := keyring.Set(serviceName, secretKeyName, trimmed); err != nil {
		return fmt.Errorf("store secret key: %w", err)
	}
	return nil
}

// DeleteSecretKey removes the stored secret key.
func DeleteSecretKey() error {
	if err := keyring.Delete(serviceName, secretKeyName); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNoSecret
		}
		return fmt.Errorf("delete secret key: %w", err)
	}
	return nil
}
