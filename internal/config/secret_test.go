package config

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestSecretKey_EnvOverridesKeyring(t *testing.T) {
	keyring.MockInit()
	require.NoError(t, SetSecretKey("from-keyring"))
	t.Setenv(secretKeyName, "from-env")

	secret, err := SecretKey()
	require.NoError(t, err)
	require.Equal(t, "from-env", secret)
}

func TestSecretKey_MissingIsNotAnError(t *testing.T) {
	keyring.MockInit()
	t.Setenv(secretKeyName, "")

	secret, err := SecretKey()
	require.NoError(t, err)
	require.Empty(t, secret)
}

func TestSecretKeyLifecycle(t *testing.T) {
	keyring.MockInit()
	t.Setenv(secretKeyName, "")

	require.Error(t, SetSecretKey("   "), "blank secrets are rejected")
	require.NoError(t, SetSecretKey("s3cret"))

	secret, err := SecretKey()
	require.NoError(t, err)
	require.Equal(t, "s3cret", secret)

	require.NoError(t, DeleteSecretKey())
	require.ErrorIs(t, DeleteSecretKey(), ErrNoSecret)

	secret, err = SecretKey()
	require.NoError(t, err)
	require.Empty(t, secret)
}
