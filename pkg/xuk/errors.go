package xuk

import (
	"errors"
	"fmt"
)

var (
	// ErrDeserializationFailed is returned when a XUK fragment cannot be read:
	// malformed structure, premature end of input, or cancellation.
	ErrDeserializationFailed = errors.New("xuk deserialization failed")

	// ErrSerializationFailed is returned when an object cannot be written.
	ErrSerializationFailed = errors.New("xuk serialization failed")

	// ErrProgressCancelled is wrapped by read and write errors caused by the
	// Progress callback requesting cancellation.
	ErrProgressCancelled = errors.New("progress cancelled")

	// ErrInvalidCharacter is wrapped by write errors for text or attribute
	// values that are not valid UTF-8 or hold characters XML cannot represent.
	ErrInvalidCharacter = errors.New("invalid character for xml")

	// ErrUnknownQName is returned in strict mode when no factory knows an element.
	ErrUnknownQName = errors.New("unknown qualified name")
)

func readError(err error) error {
	if err == nil || errors.Is(err, ErrDeserializationFailed) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrDeserializationFailed, err)
}

func writeError(err error) error {
	if err == nil || errors.Is(err, ErrSerializationFailed) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrSerializationFailed, err)
}
