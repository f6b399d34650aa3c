package core

// csv.go handles the wire format shared with the operators' spreadsheets.
// Header names are Japanese because the files come from and go back to
// Japanese spreadsheet tools.

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Wire column names.
const (
	ColumnSequence = "No."
	ColumnDiameter = "口径(cm)"
	ColumnLength   = "長さ(m)"
	ColumnRank     = "ランク"
	ColumnPrice    = "予測価格(円)"
	ColumnLower    = "下限(円)"
	ColumnUpper    = "上限(円)"
)

// importColumns are required in every imported file, in canonical order.
var importColumns = []string{ColumnSequence, ColumnDiameter, ColumnLength, ColumnRank}

// exportColumns is the header row of exported files.
var exportColumns = []string{ColumnSequence, ColumnDiameter, ColumnLength, ColumnRank, ColumnPrice, ColumnLower, ColumnUpper}

// Row is one parsed CSV record tagged with the physical line it starts on.
// Line numbering begins at 1, so the first data row of a well-formed file
// is line 2.
type Row struct {
	Line  int
	Cells []string
}

// parseCSV reads the whole decoded text. Ragged rows are allowed; short
// rows surface later as empty cells.
func parseCSV(decoded []byte) ([]Row, error) {
	r := csv.NewReader(bytes.NewReader(decoded))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var rows []Row
	for {
		cells, err := r.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		line, _ := r.FieldPos(0)
		rows = append(rows, Row{Line: line, Cells: cells})
	}
}

// HeaderIndex maps cleaned header names to their column positions.
type HeaderIndex map[string]int

// MakeHeaderIndex builds a HeaderIndex from a header row. Lookups are
// exact: names differing in width or punctuation are different columns,
// and the first occurrence of a duplicated name wins.
func MakeHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, h := range header {
		key := CleanCell(h)
		if key == "" {
			continue
		}
		if _, ok := idx[key]; !ok {
			idx[key] = i
		}
	}
	return idx
}

// Missing returns the required import columns absent from the index, in
// canonical order.
func (idx HeaderIndex) Missing() []string {
	var missing []string
	for _, col := range importColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}

// CleanCell removes common CSV artifacts from a cell value:
// - Trims whitespace
// - Removes Excel formula prefix (="...")
// - Removes surrounding quotes
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, `="`) && strings.HasSuffix(s, `"`) {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	s = strings.Trim(s, `"'`)

	return strings.TrimSpace(s)
}

// getCell returns the cleaned cell under the named column, or "" when the
// column is missing or the row is too short for it.
func getCell(row []string, idx HeaderIndex, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(row) {
		return ""
	}
	return CleanCell(row[i])
}

// isEmptyRow reports whether every cell is blank after cleaning.
func isEmptyRow(cells []string) bool {
	for _, cell := range cells {
		if CleanCell(cell) != "" {
			return false
		}
	}
	return true
}

// parseMeasure parses a numeric cell. NaN and infinities are rejected so
// later range checks only see finite numbers.
func parseMeasure(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a finite number: %q", s)
	}
	return v, nil
}

// parseSequence parses a sequence cell. Spreadsheets often store whole
// numbers as decimals like "3.0", so the cell is parsed as a float and
// truncated toward zero.
func parseSequence(s string) (int, error) {
	v, err := parseMeasure(s)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

// rowToCandidate converts one data row into a candidate, collecting every
// conversion problem by wire column name.
func rowToCandidate(row []string, idx HeaderIndex) (Candidate, []string) {
	var c Candidate
	var problems []string

	if cell := getCell(row, idx, ColumnSequence); cell == "" {
		problems = append(problems, fmt.Sprintf("%s is empty", ColumnSequence))
	} else if v, err := parseSequence(cell); err != nil {
		problems = append(problems, fmt.Sprintf("%s is not a number: %q", ColumnSequence, cell))
	} else {
		c.SequenceNumber = v
	}

	if cell := getCell(row, idx, ColumnDiameter); cell == "" {
		problems = append(problems, fmt.Sprintf("%s is empty", ColumnDiameter))
	} else if v, err := parseMeasure(cell); err != nil {
		problems = append(problems, fmt.Sprintf("%s is not a number: %q", ColumnDiameter, cell))
	} else {
		c.DiameterCM = v
	}

	if cell := getCell(row, idx, ColumnLength); cell == "" {
		problems = append(problems, fmt.Sprintf("%s is empty", ColumnLength))
	} else if v, err := parseMeasure(cell); err != nil {
		problems = append(problems, fmt.Sprintf("%s is not a number: %q", ColumnLength, cell))
	} else {
		c.LengthM = v
	}

	c.Rank = getCell(row, idx, ColumnRank)
	if c.Rank == "" {
		problems = append(problems, fmt.Sprintf("%s is empty", ColumnRank))
	}

	return c, problems
}
