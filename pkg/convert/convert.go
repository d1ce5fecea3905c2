// Package convert holds the delimited-text codec shared by uploads and
// exports. It deliberately does not honour quoting on input: the embedded
// controllers never quote, and a stray quote in a sensor cell should
// surface in validation rather than silently change the column layout.
package convert

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

const (
	DefaultMaxRows = 1000
	DefaultMaxCols = 100
)

var numberPattern = regexp.MustCompile(`^[-+]?[0-9]*\.?[0-9]+([eE][-+]?[0-9]+)?$`)

// Table is an in-memory delimited table: ordered headers plus one
// column-name→text map per row. Cell values are whitespace-trimmed.
type Table struct {
	Headers    []string
	Rows       []map[string]string
	HasHeaders bool

	MaxRows int
	MaxCols int
}

// NewTable returns an empty table with the default capacity limits.
func NewTable(hasHeaders bool) *Table {
	return &Table{
		HasHeaders: hasHeaders,
		MaxRows:    DefaultMaxRows,
		MaxCols:    DefaultMaxCols,
	}
}

// Cols reports the column count fixed by the first parsed line.
func (t *Table) Cols() int { return len(t.Headers) }

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// Parse fills the table from delimited text. The first non-empty line
// fixes the column count; in headers mode it supplies the column names,
// otherwise columns are named column1..columnN and the line is data.
// Short rows are right-padded with empty cells, long rows truncated.
// Rows beyond MaxRows are silently dropped.
func (t *Table) Parse(input string, delimiter rune) error {
	t.Headers = nil
	t.Rows = nil

	if input == "" {
		return errors.New("empty input")
	}

	lines := strings.Split(input, "\n")
	first := 0
	for first < len(lines) && strings.TrimSpace(lines[first]) == "" {
		first++
	}
	if first == len(lines) {
		return errors.New("empty input")
	}

	tokens := strings.Split(lines[first], string(delimiter))
	if len(tokens) > t.MaxCols {
		tokens = tokens[:t.MaxCols]
	}

	if t.HasHeaders {
		for _, tok := range tokens {
			t.Headers = append(t.Headers, strings.TrimSpace(tok))
		}
	} else {
		for i := range tokens {
			t.Headers = append(t.Headers, "column"+strconv.Itoa(i+1))
		}
		t.appendRow(tokens)
	}

	for _, line := range lines[first+1:] {
		if len(t.Rows) >= t.MaxRows {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		t.appendRow(strings.Split(line, string(delimiter)))
	}

	if len(t.Rows) == 0 {
		return errors.New("no data rows")
	}
	return nil
}

func (t *Table) appendRow(tokens []string) {
	row := make(map[string]string, len(t.Headers))
	for j, h := range t.Headers {
		if j < len(tokens) {
			row[h] = strings.TrimSpace(tokens[j])
		} else {
			row[h] = ""
		}
	}
	t.Rows = append(t.Rows, row)
}

// WriteCSV emits the table as delimited text: header row first, then data
// rows, each terminated by a line feed. Cells containing the delimiter, a
// double quote or a newline are quoted, with embedded quotes doubled.
func (t *Table) WriteCSV(w io.Writer, delimiter rune) error {
	if len(t.Rows) == 0 {
		return errors.New("no data to export")
	}

	writeRow := func(cells []string) error {
		for i, cell := range cells {
			if strings.ContainsAny(cell, string(delimiter)+"\"\n") {
				cell = "\"" + strings.ReplaceAll(cell, "\"", "\"\"") + "\""
			}
			if i > 0 {
				if _, err := io.WriteString(w, string(delimiter)); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, cell); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "\n")
		return err
	}

	if err := writeRow(t.Headers); err != nil {
		return err
	}
	cells := make([]string, len(t.Headers))
	for _, row := range t.Rows {
		for i, h := range t.Headers {
			cells[i] = row[h]
		}
		if err := writeRow(cells); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON emits the table as a pretty-printed array of objects, columns
// in header order. Cells that look like decimal numbers are written
// unquoted so downstream tooling sees them as numbers, everything else as
// JSON strings. Missing cells come out as "".
func (t *Table) WriteJSON(w io.Writer) error {
	if len(t.Rows) == 0 {
		return errors.New("no data to export")
	}

	if _, err := io.WriteString(w, "[\n"); err != nil {
		return err
	}
	for i, row := range t.Rows {
		if _, err := io.WriteString(w, "  {\n"); err != nil {
			return err
		}
		for j, h := range t.Headers {
			value := row[h]
			cell := strconv.Quote(value)
			if value != "" && numberPattern.MatchString(value) {
				cell = value
			}
			sep := ","
			if j == len(t.Headers)-1 {
				sep = ""
			}
			if _, err := fmt.Fprintf(w, "    %s: %s%s\n", strconv.Quote(h), cell, sep); err != nil {
				return err
			}
		}
		sep := ","
		if i == len(t.Rows)-1 {
			sep = ""
		}
		if _, err := io.WriteString(w, "  }"+sep+"\n"); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "]\n")
	return err
}
