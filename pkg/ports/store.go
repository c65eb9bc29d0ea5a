package ports

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

var (
	// ErrDocumentNotFound is returned by Load for unknown document IDs.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrInvalidDocumentID is returned for IDs that cannot be stored safely.
	ErrInvalidDocumentID = errors.New("invalid document id")
)

var documentID = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)

// ValidateDocumentID checks that id is usable as a key in every backend,
// including as a file name.
func ValidateDocumentID(id string) error {
	if !documentID.MatchString(id) {
		return fmt.Errorf("%w: %q", ErrInvalidDocumentID, id)
	}
	return nil
}

// DocumentStore persists serialized XUK documents by ID.
// Stores treat documents as opaque bytes.
type DocumentStore interface {
	// Save stores doc under id, replacing any previous version.
	Save(ctx context.Context, id string, doc []byte) error

	// Load retrieves the document stored under id.
	// Returns ErrDocumentNotFound if there is none.
	Load(ctx context.Context, id string) ([]byte, error)

	// Delete removes the document. Deleting a missing document is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the stored IDs in lexical order.
	List(ctx context.Context) ([]string, error)
}
