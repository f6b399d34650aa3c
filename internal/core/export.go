package core

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"
)

// exportTimeFormat yields sortable timestamps for generated filenames.
const exportTimeFormat = "20060102_150405"

// SampleFilename is the download name of the import sample file.
const SampleFilename = "timber_import_sample.csv"

// ExportFilename returns the download name for an export started at t.
func ExportFilename(t time.Time) string {
	return fmt.Sprintf("timber_prediction_%s.csv", t.Format(exportTimeFormat))
}

// ExportCSV renders records in the wire format. The output starts with a
// UTF-8 byte order mark so spreadsheet tools pick the right encoding.
func ExportCSV(records Collection) ([]byte, error) {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			strconv.Itoa(rec.SequenceNumber),
			formatMeasure(rec.DiameterCM),
			formatMeasure(rec.LengthM),
			string(rec.Rank),
			strconv.FormatInt(rec.PredictedPrice, 10),
			strconv.FormatInt(rec.LowerBound, 10),
			strconv.FormatInt(rec.UpperBound, 10),
		})
	}
	return writeCSV(exportColumns, rows)
}

// SampleCSV renders the downloadable import sample, one row per rank band
// plus two more to show repeats.
func SampleCSV() []byte {
	rows := make([][]string, 0, len(sampleRows))
	for _, c := range sampleRows {
		rows = append(rows, []string{
			strconv.Itoa(c.SequenceNumber),
			formatMeasure(c.DiameterCM),
			formatMeasure(c.LengthM),
			c.Rank,
		})
	}
	data, _ := writeCSV(importColumns, rows) // a memory buffer write cannot fail
	return data
}

// sampleRows are the example logs in the downloadable sample.
var sampleRows = []Candidate{
	{SequenceNumber: 1, DiameterCM: 90, LengthM: 2.2, Rank: "A"},
	{SequenceNumber: 2, DiameterCM: 78, LengthM: 1.9, Rank: "B"},
	{SequenceNumber: 3, DiameterCM: 86, LengthM: 2.0, Rank: "B"},
	{SequenceNumber: 4, DiameterCM: 70, LengthM: 3.3, Rank: "B"},
	{SequenceNumber: 5, DiameterCM: 46, LengthM: 3.0, Rank: "C"},
}

// writeCSV renders a BOM-prefixed CSV document with the given header.
func writeCSV(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// formatMeasure renders a measurement with no trailing zeros.
func formatMeasure(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
