package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrInvalidDataset marks a dataset that cannot be assessed: zero rows or
// zero columns. It surfaces to the caller unchanged; the CLI and HTTP layers
// translate it into exit codes / status codes.
var ErrInvalidDataset = errors.New("invalid dataset")

// ErrMalformedInput marks input that cannot be parsed into a Dataset at all.
// Only the loader returns it; the engine assumes it has been excluded.
var ErrMalformedInput = errors.New("malformed input")

// Column is an ordered sequence of raw cell values under a unique name.
// Cells stay strings; type inference happens during summarization.
type Column struct {
	Name   string
	Values []string
}

// Dataset is an in-memory tabular snapshot: ordered named columns of equal
// length. The engine only ever reads it.
type Dataset struct {
	Columns []Column
}

// Rows returns the row count. Zero for a dataset with no columns.
func (d *Dataset) Rows() int {
	if len(d.Columns) == 0 {
		return 0
	}
	return len(d.Columns[0].Values)
}

// Cols returns the column count.
func (d *Dataset) Cols() int {
	return len(d.Columns)
}

// missing markers beyond the empty cell, matched case-insensitively
var nullMarkers = map[string]struct{}{
	"na":   {},
	"n/a":  {},
	"nan":  {},
	"null": {},
}

// IsNull reports whether a raw cell counts as missing.
func IsNull(value string) bool {
	if value == "" {
		return true
	}
	_, ok := nullMarkers[strings.ToLower(value)]
	return ok
}

// Options configures CSV loading.
type Options struct {
	Delimiter rune // field delimiter, ',' when zero
	NoHeader  bool // first row is data; column_N names are generated
}

// FromCSV reads an entire CSV stream into a Dataset. Ragged or unparseable
// input fails with ErrMalformedInput; a stream with no columns at all fails
// with ErrInvalidDataset. Duplicate header names are de-duplicated with _N
// suffixes so the Dataset invariant of unique names holds.
func FromCSV(r io.Reader, opts Options) (*Dataset, error) {
	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}

	first, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidDataset)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	var headers []string
	var pending [][]string
	if opts.NoHeader {
		headers = make([]string, len(first))
		for i := range first {
			headers[i] = generateColumnName(i)
		}
		pending = append(pending, first)
	} else {
		headers = dedupeHeaders(first)
	}

	columns := make([]Column, len(headers))
	for i, h := range headers {
		columns[i] = Column{Name: h}
	}

	appendRecord := func(record []string) error {
		if len(record) != len(columns) {
			return fmt.Errorf("%w: record has %d fields, want %d",
				ErrMalformedInput, len(record), len(columns))
		}
		for i, v := range record {
			columns[i].Values = append(columns[i].Values, v)
		}
		return nil
	}

	for _, rec := range pending {
		if err := appendRecord(rec); err != nil {
			return nil, err
		}
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
		}
		if err := appendRecord(record); err != nil {
			return nil, err
		}
	}

	return &Dataset{Columns: columns}, nil
}

func generateColumnName(index int) string {
	return fmt.Sprintf("column_%d", index+1)
}

// dedupeHeaders trims header cells, fills empty ones with generated names
// and suffixes duplicates with a counter.
func dedupeHeaders(headers []string) []string {
	seen := make(map[string]struct{}, len(headers))
	result := make([]string, len(headers))

	for i, header := range headers {
		name := strings.TrimSpace(header)
		if name == "" {
			name = generateColumnName(i)
		}

		candidate := name
		counter := 1
		for {
			if _, exists := seen[candidate]; !exists {
				break
			}
			candidate = fmt.Sprintf("%s_%d", name, counter)
			counter++
		}
		seen[candidate] = struct{}{}
		result[i] = candidate
	}

	return result
}
