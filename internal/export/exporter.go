package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"

	"github.com/rebeliceyang/lazyfilter/internal/dataset"
	"github.com/rebeliceyang/lazyfilter/internal/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Format is an export encoding
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// WriteCSV writes records as CSV, one column per filterable column, using
// the same cell text the table shows
func WriteCSV(w io.Writer, columns []models.Column, records []models.Record) error {
	writer := csv.NewWriter(w)

	header := lo.Map(columns, func(c models.Column, _ int) string { return c.Label })
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range records {
		row := lo.Map(columns, func(c models.Column, _ int) string { return dataset.Cell(r, c) })
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteJSON writes the raw records as an indented JSON array
func WriteJSON(w io.Writer, records []models.Record) error {
	if records == nil {
		records = []models.Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal records to JSON: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}

// Write encodes records in the given format
func Write(w io.Writer, format Format, columns []models.Column, records []models.Record) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, columns, records)
	case FormatJSON:
		return WriteJSON(w, records)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

// ToFile exports records to a file
func ToFile(path string, format Format, columns []models.Column, records []models.Record) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return Write(file, format, columns, records)
}
