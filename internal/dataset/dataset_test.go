package dataset

import (
	"errors"
	"strings"
	"testing"
)

func TestFromCSV(t *testing.T) {
	ds, err := FromCSV(strings.NewReader("a,b,c\n1,2,3\n4,5,6\n"), Options{})
	if err != nil {
		t.Fatalf("FromCSV() failed: %v", err)
	}

	if ds.Cols() != 3 {
		t.Errorf("Expected 3 columns, got %d", ds.Cols())
	}
	if ds.Rows() != 2 {
		t.Errorf("Expected 2 rows, got %d", ds.Rows())
	}
	if ds.Columns[0].Name != "a" || ds.Columns[2].Name != "c" {
		t.Errorf("Unexpected column names: %v, %v", ds.Columns[0].Name, ds.Columns[2].Name)
	}
	if ds.Columns[1].Values[1] != "5" {
		t.Errorf("Expected cell '5', got %q", ds.Columns[1].Values[1])
	}
}

func TestFromCSVCustomDelimiter(t *testing.T) {
	ds, err := FromCSV(strings.NewReader("a;b\n1;2\n"), Options{Delimiter: ';'})
	if err != nil {
		t.Fatalf("FromCSV() failed: %v", err)
	}
	if ds.Cols() != 2 {
		t.Errorf("Expected 2 columns, got %d", ds.Cols())
	}
}

func TestFromCSVNoHeader(t *testing.T) {
	ds, err := FromCSV(strings.NewReader("1,2\n3,4\n"), Options{NoHeader: true})
	if err != nil {
		t.Fatalf("FromCSV() failed: %v", err)
	}
	if ds.Rows() != 2 {
		t.Errorf("Expected first row kept as data, got %d rows", ds.Rows())
	}
	if ds.Columns[0].Name != "column_1" || ds.Columns[1].Name != "column_2" {
		t.Errorf("Expected generated names, got %v, %v", ds.Columns[0].Name, ds.Columns[1].Name)
	}
}

func TestFromCSVDuplicateHeaders(t *testing.T) {
	ds, err := FromCSV(strings.NewReader("id,id,id\n1,2,3\n"), Options{})
	if err != nil {
		t.Fatalf("FromCSV() failed: %v", err)
	}

	names := []string{ds.Columns[0].Name, ds.Columns[1].Name, ds.Columns[2].Name}
	want := []string{"id", "id_1", "id_2"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Expected header %q at %d, got %q", want[i], i, names[i])
		}
	}
}

func TestFromCSVEmptyHeaderCell(t *testing.T) {
	ds, err := FromCSV(strings.NewReader("a,,c\n1,2,3\n"), Options{})
	if err != nil {
		t.Fatalf("FromCSV() failed: %v", err)
	}
	if ds.Columns[1].Name != "column_2" {
		t.Errorf("Expected generated name for empty header, got %q", ds.Columns[1].Name)
	}
}

func TestFromCSVRaggedRecord(t *testing.T) {
	_, err := FromCSV(strings.NewReader("a,b\n1,2,3\n"), Options{})
	if !errors.Is(err, ErrMalformedInput) {
		t.Errorf("Expected ErrMalformedInput, got %v", err)
	}
}

func TestFromCSVEmptyInput(t *testing.T) {
	_, err := FromCSV(strings.NewReader(""), Options{})
	if !errors.Is(err, ErrInvalidDataset) {
		t.Errorf("Expected ErrInvalidDataset, got %v", err)
	}
}

func TestFromCSVHeaderOnly(t *testing.T) {
	ds, err := FromCSV(strings.NewReader("a,b\n"), Options{})
	if err != nil {
		t.Fatalf("FromCSV() failed: %v", err)
	}
	if ds.Rows() != 0 {
		t.Errorf("Expected 0 rows, got %d", ds.Rows())
	}
	if ds.Cols() != 2 {
		t.Errorf("Expected 2 columns, got %d", ds.Cols())
	}
}

func TestIsNull(t *testing.T) {
	nulls := []string{"", "NA", "na", "N/A", "NaN", "null", "NULL"}
	for _, v := range nulls {
		if !IsNull(v) {
			t.Errorf("Expected %q to be null", v)
		}
	}

	values := []string{"0", "false", "none?", " ", "x"}
	for _, v := range values {
		if IsNull(v) {
			t.Errorf("Expected %q to be a value", v)
		}
	}
}
