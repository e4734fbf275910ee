package localstore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowmart/storefront/core/localstore"
)

func newHistory(t *testing.T) *localstore.SearchHistory {
	t.Helper()
	h, err := localstore.NewSearchHistory(t.TempDir())
	require.NoError(t, err)
	return h
}

func TestSearchHistory(t *testing.T) {
	t.Parallel()

	t.Run("empty store yields no terms", func(t *testing.T) {
		t.Parallel()

		h := newHistory(t)
		terms, err := h.All()
		require.NoError(t, err)
		assert.Empty(t, terms)
	})

	t.Run("most recent first", func(t *testing.T) {
		t.Parallel()

		h := newHistory(t)
		require.NoError(t, h.Add("serum"))
		require.NoError(t, h.Add("toner"))
		require.NoError(t, h.Add("kem chống nắng"))

		terms, err := h.All()
		require.NoError(t, err)
		assert.Equal(t, []string{"kem chống nắng", "toner", "serum"}, terms)
	})

	t.Run("repeat moves to front without duplicating", func(t *testing.T) {
		t.Parallel()

		h := newHistory(t)
		require.NoError(t, h.Add("serum"))
		require.NoError(t, h.Add("toner"))
		require.NoError(t, h.Add("SERUM"))

		terms, err := h.All()
		require.NoError(t, err)
		assert.Equal(t, []string{"SERUM", "toner"}, terms)
	})

	t.Run("list is capped and oldest falls off", func(t *testing.T) {
		t.Parallel()

		h := newHistory(t)
		for _, term := range []string{"a", "b", "c", "d", "e", "f"} {
			require.NoError(t, h.Add(term))
		}

		terms, err := h.All()
		require.NoError(t, err)
		assert.Equal(t, []string{"f", "e", "d", "c", "b"}, terms)
	})

	t.Run("blank terms are ignored", func(t *testing.T) {
		t.Parallel()

		h := newHistory(t)
		require.NoError(t, h.Add("  "))

		terms, err := h.All()
		require.NoError(t, err)
		assert.Empty(t, terms)
	})

	t.Run("corrupt file starts over instead of failing", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		h, err := localstore.NewSearchHistory(dir)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "search_history.json"), []byte("{not json"), 0o600))

		terms, err := h.All()
		require.NoError(t, err)
		assert.Empty(t, terms)

		require.NoError(t, h.Add("serum"))
		terms, err = h.All()
		require.NoError(t, err)
		assert.Equal(t, []string{"serum"}, terms)
	})

	t.Run("clear removes everything and is idempotent", func(t *testing.T) {
		t.Parallel()

		h := newHistory(t)
		require.NoError(t, h.Add("serum"))
		require.NoError(t, h.Clear())
		require.NoError(t, h.Clear())

		terms, err := h.All()
		require.NoError(t, err)
		assert.Empty(t, terms)
	})
}
