package core

import (
	"fmt"
	"strings"
)

// MergeMode selects how imported records combine with the existing
// collection.
type MergeMode string

const (
	// MergeAppend adds imported records after the existing ones.
	MergeAppend MergeMode = "append"

	// MergeOverwrite discards the existing records first.
	MergeOverwrite MergeMode = "overwrite"
)

// ParseMergeMode parses a mode string. The empty string defaults to
// append.
func ParseMergeMode(s string) (MergeMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(MergeAppend):
		return MergeAppend, nil
	case string(MergeOverwrite):
		return MergeOverwrite, nil
	}
	return "", fmt.Errorf("unknown merge mode %q", s)
}

// Merge combines existing and imported records under the given mode and
// returns a new densely renumbered collection. Neither input is modified.
func Merge(existing Collection, imported []Record, mode MergeMode) Collection {
	var out Collection
	switch mode {
	case MergeOverwrite:
		out = make(Collection, 0, len(imported))
	default:
		out = make(Collection, 0, len(existing)+len(imported))
		out = append(out, existing...)
	}
	out = append(out, imported...)
	out.Renumber()
	return out
}
