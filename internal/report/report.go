// Package report writes detected regions in the output formats the CLI
// supports.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ironsheep/alpha-regions/internal/detection"
)

// Format selects the output encoding.
type Format string

const (
	// Text prints one "(x, y, w, h)" tuple per line.
	Text Format = "text"
	JSON Format = "json"
	YAML Format = "yaml"
)

// ParseFormat converts a case-insensitive format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case Text, JSON, YAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
}

// Result is the structured form used by the JSON and YAML encodings.
type Result struct {
	Count   int              `json:"count" yaml:"count"`
	Regions []detection.Rect `json:"regions" yaml:"regions"`
}

// NewResult wraps rects, turning nil into an empty list.
func NewResult(rects []detection.Rect) Result {
	if rects == nil {
		rects = []detection.Rect{}
	}
	return Result{Count: len(rects), Regions: rects}
}

// Write encodes rects to w.
func Write(w io.Writer, rects []detection.Rect, f Format) error {
	switch f {
	case Text:
		for _, r := range rects {
			if _, err := fmt.Fprintln(w, r); err != nil {
				return err
			}
		}
		return nil
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(NewResult(rects))
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(NewResult(rects)); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown output format %q", f)
}
