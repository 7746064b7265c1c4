// Package utils contains small helper functions used across the project.
//
// These are usually generic helpers that don't belong to a specific domain.
package utils

import (
	"fmt"
	"io"

	"github.com/deppfellow/tripweaver/internal/lib/jsonx"
)

// WriteJSON pretty-prints any Go value as indented JSON to w, followed by a
// newline.
//
// Values that cannot be encoded (channels, funcs, cycles) return an error
// and nothing is written.
func WriteJSON(w io.Writer, v interface{}) error {
	b, err := jsonx.API.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling JSON: %w", err)
	}

	if _, err := fmt.Fprintln(w, string(b)); err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}
	return nil
}
