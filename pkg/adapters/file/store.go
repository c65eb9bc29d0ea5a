package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/urakawa/pkg/ports"
)

// Extension is appended to document IDs to form file names.
const Extension = ".xuk"

// Store implements ports.DocumentStore using the local filesystem.
// It stores each document as a .xuk file in a configured directory.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".urakawa/documents".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".urakawa", "documents")
	}
	return &Store{BasePath: basePath}
}

// Path returns the file a document is stored in.
func (s *Store) Path(id string) string {
	return filepath.Join(s.BasePath, id+Extension)
}

// Save writes the document atomically: it writes a temporary file in the same
// directory, fsyncs it and renames it over the destination.
func (s *Store) Save(ctx context.Context, id string, doc []byte) error {
	if err := ports.ValidateDocumentID(id); err != nil {
		return err
	}
	if err := os.MkdirAll(s.BasePath, 0o755); err != nil {
		return fmt.Errorf("failed to ensure document directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+id+"-*"+Extension)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(doc); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Windows cannot rename an open file.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	dest := s.Path(id)
	if _, err := os.Stat(dest); err == nil {
		// Windows refuses to rename over an existing file.
		if err := os.Remove(dest); err != nil {
			return fmt.Errorf("failed to replace document file: %w", err)
		}
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// Load reads the document file.
func (s *Store) Load(ctx context.Context, id string) ([]byte, error) {
	if err := ports.ValidateDocumentID(id); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ports.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to read document file: %w", err)
	}
	return data, nil
}

// Delete removes the document file.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ports.ValidateDocumentID(id); err != nil {
		return err
	}
	err := os.Remove(s.Path(id))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete document file: %w", err)
	}
	return nil
}

// List returns the IDs of all document files.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, Extension) || strings.HasPrefix(name, "tmp-") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, Extension))
	}
	sort.Strings(ids)
	return ids, nil
}
