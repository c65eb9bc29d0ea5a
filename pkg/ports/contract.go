package ports

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunDocumentStoreContract verifies that a DocumentStore implementation
// behaves as the interface documents. The store should start empty.
func RunDocumentStoreContract(t *testing.T, store DocumentStore) {
	ctx := context.Background()
	id := "contract-" + time.Now().Format("20060102150405")
	doc := []byte(`<?xml version="1.0"?><Xuk xmlns="http://www.daisy.org/urakawa/xuk/2.0"/>`)

	t.Run("Save and Load", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, id, doc))

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, doc, loaded)
	})

	t.Run("Overwrite", func(t *testing.T) {
		next := append([]byte(nil), doc...)
		next = append(next, '\n')
		require.NoError(t, store.Save(ctx, id, next))

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, next, loaded)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "missing-"+id)
		assert.ErrorIs(t, err, ErrDocumentNotFound)
	})

	t.Run("Invalid IDs", func(t *testing.T) {
		for _, bad := range []string{"", "../escape", "a/b", ".hidden"} {
			assert.ErrorIs(t, store.Save(ctx, bad, doc), ErrInvalidDocumentID, "id %q", bad)
		}
	})

	t.Run("List", func(t *testing.T) {
		ids := []string{id + "-b", id + "-a"}
		for _, other := range ids {
			require.NoError(t, store.Save(ctx, other, doc))
		}
		defer func() {
			for _, other := range ids {
				_ = store.Delete(ctx, other)
			}
		}()

		listed, err := store.List(ctx)
		require.NoError(t, err)
		assert.Subset(t, listed, append(ids, id))
		assert.IsNonDecreasing(t, listed)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, id))
		_, err := store.Load(ctx, id)
		assert.ErrorIs(t, err, ErrDocumentNotFound, "Load after Delete")
		assert.NoError(t, store.Delete(ctx, id), "deleting twice is harmless")
	})

	t.Run("Isolation", func(t *testing.T) {
		buf := []byte("original")
		require.NoError(t, store.Save(ctx, id, buf))
		buf[0] = 'X'
		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "original", string(loaded), "stores keep their own copy")
		loaded[0] = 'Y'
		again, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "original", string(again))
		require.NoError(t, store.Delete(ctx, id))
	})

	t.Run("Concurrent Saves", func(t *testing.T) {
		done := make(chan error)
		for i := range 8 {
			go func() {
				done <- store.Save(ctx, fmt.Sprintf("%s-c%d", id, i), doc)
			}()
		}
		for range 8 {
			assert.NoError(t, <-done)
		}
		for i := range 8 {
			_ = store.Delete(ctx, fmt.Sprintf("%s-c%d", id, i))
		}
	})
}
