package core

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by collection operations.
var (
	// ErrRecordNotFound reports that no record carries the requested
	// sequence number.
	ErrRecordNotFound = errors.New("record not found")

	// ErrEmptyCollection reports that an operation needs at least one
	// record in the collection.
	ErrEmptyCollection = errors.New("collection is empty")
)

// ImportDecodingError reports that none of the candidate encodings could
// decode an uploaded file into structurally valid CSV. Tried lists the
// encoding names in the order they were attempted.
type ImportDecodingError struct {
	Tried []string `json:"tried"`
}

func (e *ImportDecodingError) Error() string {
	return fmt.Sprintf("unable to decode file: tried %s", strings.Join(e.Tried, ", "))
}

// MissingColumnsError reports required CSV columns absent from the header
// row. Missing preserves the canonical column order.
type MissingColumnsError struct {
	Missing []string `json:"missing"`
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}
