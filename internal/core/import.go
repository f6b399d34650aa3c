package core

import (
	"fmt"
	"strings"
	"time"
)

// previewRowLimit caps how many data rows a preview returns.
const previewRowLimit = 10

// RowError describes one rejected data row, keyed by the physical line it
// started on in the uploaded file.
type RowError struct {
	Line     int      `json:"line"`
	Problems []string `json:"problems"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, strings.Join(e.Problems, "; "))
}

// ImportResult summarizes one completed import.
type ImportResult struct {
	ImportID  string        `json:"import_id"`
	Mode      MergeMode     `json:"mode"`
	Imported  int           `json:"imported"`
	Total     int           `json:"total_rows"`
	RowErrors []RowError    `json:"row_errors,omitempty"`
	Encoding  string        `json:"encoding"`
	Duration  time.Duration `json:"-"`
}

// ImportPreview is the client-facing glimpse of a file before an import is
// committed.
type ImportPreview struct {
	Encoding  string     `json:"encoding"`
	Header    []string   `json:"header"`
	Rows      [][]string `json:"rows"`
	TotalRows int        `json:"total_rows"`
}

// ReadImport decodes an uploaded file and converts it into priced records.
// Rejected rows are returned alongside the accepted ones and never abort
// the read. The returned string names the encoding that decoded the file.
func ReadImport(raw []byte, model *PriceModel) ([]Record, []RowError, string, error) {
	rows, encName, err := DecodeAndParse(raw)
	if err != nil {
		return nil, nil, "", err
	}
	records, rowErrs, err := convertRows(rows, model)
	if err != nil {
		return nil, nil, encName, err
	}
	return records, rowErrs, encName, nil
}

// convertRows turns parsed CSV rows into priced records. The first row is
// the header; data rows that are entirely blank are skipped without
// counting as errors.
func convertRows(rows []Row, model *PriceModel) ([]Record, []RowError, error) {
	if len(rows) == 0 {
		return nil, nil, &MissingColumnsError{Missing: append([]string(nil), importColumns...)}
	}

	idx := MakeHeaderIndex(rows[0].Cells)
	if missing := idx.Missing(); len(missing) > 0 {
		return nil, nil, &MissingColumnsError{Missing: missing}
	}

	var records []Record
	var rowErrs []RowError
	for _, row := range rows[1:] {
		if isEmptyRow(row.Cells) {
			continue
		}

		cand, problems := rowToCandidate(row.Cells, idx)
		if len(problems) == 0 {
			problems = Validate(cand).Messages()
		}
		if len(problems) > 0 {
			rowErrs = append(rowErrs, RowError{Line: row.Line, Problems: problems})
			continue
		}

		rank, _ := ParseRank(cand.Rank)
		pred, err := model.Predict(cand.DiameterCM, cand.LengthM, rank)
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: row.Line, Problems: []string{err.Error()}})
			continue
		}

		records = append(records, Record{
			SequenceNumber: cand.SequenceNumber,
			DiameterCM:     cand.DiameterCM,
			LengthM:        cand.LengthM,
			Rank:           rank,
			PredictedPrice: pred.Price,
			LowerBound:     pred.Lower,
			UpperBound:     pred.Upper,
		})
	}
	return records, rowErrs, nil
}

// PreviewImport decodes a file and returns its header plus the first data
// rows without touching the collection. The same header requirements apply
// as for a real import, so a preview failing early is a real import
// failing early.
func PreviewImport(raw []byte) (*ImportPreview, error) {
	rows, encName, err := DecodeAndParse(raw)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &MissingColumnsError{Missing: append([]string(nil), importColumns...)}
	}

	idx := MakeHeaderIndex(rows[0].Cells)
	if missing := idx.Missing(); len(missing) > 0 {
		return nil, &MissingColumnsError{Missing: missing}
	}

	preview := &ImportPreview{
		Encoding: encName,
		Header:   cleanCells(rows[0].Cells),
		Rows:     [][]string{},
	}
	for _, row := range rows[1:] {
		if isEmptyRow(row.Cells) {
			continue
		}
		preview.TotalRows++
		if len(preview.Rows) < previewRowLimit {
			preview.Rows = append(preview.Rows, cleanCells(row.Cells))
		}
	}
	return preview, nil
}

func cleanCells(cells []string) []string {
	out := make([]string, len(cells))
	for i, cell := range cells {
		out[i] = CleanCell(cell)
	}
	return out
}
