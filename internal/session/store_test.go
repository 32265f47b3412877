package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStore_GetSetDelete(t *testing.T) {
	store, err := OpenStoreAt(filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	defer store.Close()

	_, ok, err := store.Get(KeyBaseURL)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.Set(KeyBaseURL, "http://localhost:3000"))
	require.NoError(t, store.Set(KeyBaseURL, "http://localhost:4000"))

	value, ok, err := store.Get(KeyBaseURL)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "http://localhost:4000", value)

	require.NoError(t, store.Delete(KeyBaseURL))
	_, ok, err = store.Get(KeyBaseURL)
	require.NoError(t, err)
	require.False(t, ok)
}
