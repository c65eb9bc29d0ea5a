package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/urakawa/pkg/adapters/file"
	"github.com/aretw0/urakawa/pkg/ports"
)

func TestFileStore_Contract(t *testing.T) {
	ports.RunDocumentStoreContract(t, file.New(t.TempDir()))
}

func TestFileStore_Layout(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "docs")
	store := file.New(dir)
	ctx := context.Background()

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids, "a missing directory lists as empty")

	require.NoError(t, store.Save(ctx, "book", []byte("<Xuk/>")))
	data, err := os.ReadFile(filepath.Join(dir, "book.xuk"))
	require.NoError(t, err)
	assert.Equal(t, "<Xuk/>", string(data))

	// Leftovers of an interrupted save and unrelated files are not documents.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tmp-book-123.xuk"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o644))
	ids, err = store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"book"}, ids)
}

func TestFileStore_DefaultPath(t *testing.T) {
	assert.Equal(t, filepath.Join(".urakawa", "documents"), file.New("").BasePath)
}
