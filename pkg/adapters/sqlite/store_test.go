package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/urakawa/pkg/adapters/sqlite"
	"github.com/aretw0/urakawa/pkg/ports"
)

func openStore(t *testing.T, path string) *sqlite.Store {
	t.Helper()
	store, err := sqlite.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_Contract(t *testing.T) {
	ports.RunDocumentStoreContract(t, openStore(t, filepath.Join(t.TempDir(), "docs.db")))
}

func TestSQLiteStore_InMemory(t *testing.T) {
	ports.RunDocumentStoreContract(t, openStore(t, ":memory:"))
}

func TestSQLiteStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docs.db")
	ctx := context.Background()

	first, err := sqlite.Open(path)
	require.NoError(t, err)
	before := time.Now().UTC().Add(-time.Second)
	require.NoError(t, first.Save(ctx, "book", []byte("<Xuk/>")))
	require.NoError(t, first.Close())

	second := openStore(t, path)
	doc, err := second.Load(ctx, "book")
	require.NoError(t, err)
	assert.Equal(t, "<Xuk/>", string(doc))

	at, err := second.UpdatedAt(ctx, "book")
	require.NoError(t, err)
	assert.True(t, at.After(before))

	_, err = second.UpdatedAt(ctx, "missing")
	assert.ErrorIs(t, err, ports.ErrDocumentNotFound)
}

func TestSQLiteStore_OpenRequiresPath(t *testing.T) {
	_, err := sqlite.Open("  ")
	assert.Error(t, err)
}
