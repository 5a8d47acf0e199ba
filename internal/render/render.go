// Package render writes digest results in the formats supported by the CLI.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/markkurossi/tabulate"

	"github.com/JakeFAU/sha256digest/internal/digest"
)

// Format names an output format.
type Format string

const (
	// FormatText prints one lowercase hex digest per line.
	FormatText Format = "text"
	// FormatJSON prints a JSON array of results.
	FormatJSON Format = "json"
	// FormatTable prints a table of label, size and digest.
	FormatTable Format = "table"
)

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatText, FormatJSON, FormatTable:
		return Format(name), nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or table)", name)
	}
}

// Write renders results to w in the given format.
func Write(w io.Writer, format Format, results []digest.Result) error {
	switch format {
	case FormatText:
		return writeText(w, results)
	case FormatJSON:
		return writeJSON(w, results)
	case FormatTable:
		writeTable(w, results)
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeText(w io.Writer, results []digest.Result) error {
	for _, res := range results {
		if _, err := fmt.Fprintln(w, res.Digest); err != nil {
			return fmt.Errorf("write digest: %w", err)
		}
	}
	return nil
}

func writeJSON(w io.Writer, results []digest.Result) error {
	if results == nil {
		results = []digest.Result{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	return nil
}

func writeTable(w io.Writer, results []digest.Result) {
	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("Input").SetAlign(tabulate.ML)
	tab.Header("Bytes").SetAlign(tabulate.MR)
	tab.Header("SHA-256").SetAlign(tabulate.ML)

	for _, res := range results {
		row := tab.Row()
		row.Column(res.Label)
		row.Column(strconv.Itoa(res.Size))
		row.Column(res.Digest)
	}
	tab.Print(w)
}
