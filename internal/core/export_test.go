package core

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestExportFilename(t *testing.T) {
	ts := time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)
	want := "timber_prediction_20241231_235959.csv"
	if got := ExportFilename(ts); got != want {
		t.Errorf("ExportFilename() = %q, want %q", got, want)
	}
}

func TestExportFilenamesSortChronologically(t *testing.T) {
	earlier := ExportFilename(time.Date(2024, 9, 30, 8, 0, 0, 0, time.UTC))
	later := ExportFilename(time.Date(2024, 10, 1, 7, 0, 0, 0, time.UTC))
	if !(earlier < later) {
		t.Errorf("filenames do not sort by time: %q >= %q", earlier, later)
	}
}

func TestExportCSV(t *testing.T) {
	records := Collection{
		{SequenceNumber: 1, DiameterCM: 90, LengthM: 2.2, Rank: RankA, PredictedPrice: 1034000, LowerBound: 878900, UpperBound: 1189100},
		{SequenceNumber: 2, DiameterCM: 46, LengthM: 3, Rank: RankC, PredictedPrice: 100000, LowerBound: 90000, UpperBound: 110000},
	}

	data, err := ExportCSV(records)
	if err != nil {
		t.Fatalf("ExportCSV() error = %v", err)
	}
	if !bytes.HasPrefix(data, utf8BOM) {
		t.Error("export does not start with a UTF-8 byte order mark")
	}

	lines := strings.Split(strings.TrimSpace(string(bytes.TrimPrefix(data, utf8BOM))), "\n")
	if len(lines) != 3 {
		t.Fatalf("export lines = %d, want header plus 2 rows", len(lines))
	}
	if lines[0] != "No.,口径(cm),長さ(m),ランク,予測価格(円),下限(円),上限(円)" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "1,90,2.2,A,1034000,878900,1189100" {
		t.Errorf("row 1 = %q", lines[1])
	}
	if lines[2] != "2,46,3,C,100000,90000,110000" {
		t.Errorf("row 2 = %q", lines[2])
	}
}

// Exported files must come back through the importer unchanged, and the
// freshly derived prices must equal the exported ones.
func TestExportImportRoundTrip(t *testing.T) {
	model := DefaultPriceModel()
	var records Collection
	for i, c := range sampleRows {
		rank, _ := ParseRank(c.Rank)
		pred, err := model.Predict(c.DiameterCM, c.LengthM, rank)
		if err != nil {
			t.Fatalf("Predict() error = %v", err)
		}
		records = append(records, Record{
			SequenceNumber: i + 1,
			DiameterCM:     c.DiameterCM,
			LengthM:        c.LengthM,
			Rank:           rank,
			PredictedPrice: pred.Price,
			LowerBound:     pred.Lower,
			UpperBound:     pred.Upper,
		})
	}

	data, err := ExportCSV(records)
	if err != nil {
		t.Fatalf("ExportCSV() error = %v", err)
	}

	imported, rowErrs, enc, err := ReadImport(data, model)
	if err != nil {
		t.Fatalf("ReadImport() error = %v", err)
	}
	if enc != "utf-8-sig" {
		t.Errorf("round trip encoding = %q, want utf-8-sig", enc)
	}
	if len(rowErrs) != 0 {
		t.Fatalf("round trip row errors = %v", rowErrs)
	}
	if len(imported) != len(records) {
		t.Fatalf("round trip records = %d, want %d", len(imported), len(records))
	}
	for i := range records {
		if imported[i] != records[i] {
			t.Errorf("record %d changed in round trip: %+v != %+v", i, imported[i], records[i])
		}
	}
}

func TestSampleCSV(t *testing.T) {
	data := SampleCSV()

	if !bytes.HasPrefix(data, utf8BOM) {
		t.Error("sample does not start with a UTF-8 byte order mark")
	}

	lines := strings.Split(strings.TrimSpace(string(bytes.TrimPrefix(data, utf8BOM))), "\n")
	if len(lines) != 6 {
		t.Fatalf("sample lines = %d, want header plus 5 rows", len(lines))
	}
	if lines[0] != importHeader {
		t.Errorf("sample header = %q, want %q", lines[0], importHeader)
	}
	if lines[1] != "1,90,2.2,A" {
		t.Errorf("sample row 1 = %q", lines[1])
	}
	if lines[5] != "5,46,3,C" {
		t.Errorf("sample row 5 = %q", lines[5])
	}
}

// The sample must survive its own advertised purpose: importing it cleanly.
func TestSampleCSVImports(t *testing.T) {
	records, rowErrs, _, err := ReadImport(SampleCSV(), DefaultPriceModel())
	if err != nil {
		t.Fatalf("ReadImport() error = %v", err)
	}
	if len(rowErrs) != 0 {
		t.Fatalf("sample rows rejected: %v", rowErrs)
	}
	if len(records) != 5 {
		t.Errorf("sample records = %d, want 5", len(records))
	}
}
