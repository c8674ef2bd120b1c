package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/RyanBlaney/sonido-contour/algorithms/contour"
	"github.com/RyanBlaney/sonido-contour/contourio"
)

// newFilter builds the contour filter from the resolved configuration
func newFilter() (*contour.Filter, error) {
	f, err := contour.NewFilter(getConfig().Filter)
	if err != nil {
		return nil, fmt.Errorf("failed to create filter: %w", err)
	}
	return f, nil
}

// loadContour reads a contour file and cleans it unless it is already
// cleaned
func loadContour(path string, cleaned bool) (contour.Contour, error) {
	c, err := contourio.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if cleaned {
		return c, nil
	}
	f, err := newFilter()
	if err != nil {
		return nil, err
	}
	return f.Apply(c), nil
}

// writeContour writes c to path, or to w in the named format when path is
// empty
func writeContour(w io.Writer, path, format string, c contour.Contour) error {
	if path != "" {
		return contourio.WriteFile(path, c)
	}
	f, err := contourio.ParseFormat(format)
	if err != nil {
		return err
	}
	return contourio.Encode(w, c, f)
}

// printJSON writes v as indented JSON
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
