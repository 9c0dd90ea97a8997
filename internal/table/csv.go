package table

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ErrNoColumns is reported when the input carries no header at all.
var ErrNoColumns = errors.New("no columns to parse from file")

// ParseError reports an uploaded file that could not be read as a table.
type ParseError struct {
	Line int // 1-based; 0 when the error is not tied to a line
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseCSV parses raw bytes as a comma-delimited table with a header row.
func ParseCSV(raw []byte) (Table, error) {
	return ReadCSV(bytes.NewReader(bytes.TrimPrefix(raw, utf8BOM)))
}

// ReadCSV reads a header row followed by data rows. Short rows are padded with
// empty cells; rows longer than the header are rejected.
func ReadCSV(r io.Reader) (Table, error) {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1

	header, err := csvr.Read()
	if err == io.EOF {
		return Table{}, &ParseError{Err: ErrNoColumns}
	}
	if err != nil {
		return Table{}, wrapCSVError(err)
	}
	if len(header) == 1 && strings.TrimSpace(header[0]) == "" {
		return Table{}, &ParseError{Line: 1, Err: ErrNoColumns}
	}

	t := Table{Columns: headerNames(header), Rows: [][]string{}}
	for {
		rec, err := csvr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Table{}, wrapCSVError(err)
		}
		if len(rec) > len(t.Columns) {
			line, _ := csvr.FieldPos(0)
			return Table{}, &ParseError{
				Line: line,
				Err:  fmt.Errorf("expected %d fields, saw %d", len(t.Columns), len(rec)),
			}
		}
		for len(rec) < len(t.Columns) {
			rec = append(rec, "")
		}
		t.Rows = append(t.Rows, rec)
	}
	return t, nil
}

// headerNames mirrors the usual dataframe conventions: blank names become
// "Unnamed: i" and repeats get a ".n" suffix.
func headerNames(raw []string) []string {
	out := make([]string, len(raw))
	used := make(map[string]bool, len(raw))
	for i, base := range raw {
		base = strings.TrimSpace(base)
		if base == "" {
			base = "Unnamed: " + strconv.Itoa(i)
		}
		name := base
		for n := 1; used[name]; n++ {
			name = base + "." + strconv.Itoa(n)
		}
		used[name] = true
		out[i] = name
	}
	return out
}

func wrapCSVError(err error) error {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return &ParseError{Line: perr.Line, Err: perr.Err}
	}
	return &ParseError{Err: err}
}

// WriteCSV writes the header followed by every row.
func WriteCSV(w io.Writer, t Table) error {
	csvw := csv.NewWriter(w)
	if err := csvw.Write(t.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := csvw.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	return nil
}
