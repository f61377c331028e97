// Package export writes extracted employee records to files.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/dirgest/internal/extract"
)

// Format is an output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat accepts "json" or "csv", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want json or csv)", s)
	}
}

var csvHeader = []string{"ID", "Name", "Designation", "Department", "District", "Phone", "Email"}

// WriteJSON writes records as an indented JSON array. A nil slice is
// written as [].
func WriteJSON(w io.Writer, records []extract.Employee) error {
	if records == nil {
		records = []extract.Employee{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(records)
}

// WriteCSV writes records with a header row.
func WriteCSV(w io.Writer, records []extract.Employee) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, e := range records {
		if err := cw.Write([]string{e.ID, e.Name, e.Designation, e.Department, e.District, e.Phone, e.Email}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Write encodes records in the given format.
func Write(w io.Writer, f Format, records []extract.Employee) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, records)
	case FormatJSON:
		return WriteJSON(w, records)
	default:
		return fmt.Errorf("unknown output format %q", f)
	}
}

// WriteFile writes records to path, or to stdout when path is "" or "-".
// The file is written to a temporary sibling first and renamed into place.
func WriteFile(path string, f Format, records []extract.Employee) error {
	if path == "" || path == "-" {
		return Write(os.Stdout, f, records)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".dirgest-*")
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Write(tmp, f, records); err != nil {
		tmp.Close()
		return fmt.Errorf("write output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	// CreateTemp uses 0600.
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
