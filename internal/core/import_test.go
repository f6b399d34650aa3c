package core

import (
	"errors"
	"strings"
	"testing"
)

func TestReadImport(t *testing.T) {
	model := DefaultPriceModel()
	csvText := importHeader + "\n" +
		"1,90,2.2,A\n" +
		"2,78,1.9,B\n" +
		"3,46,3.0,C\n"

	records, rowErrs, enc, err := ReadImport([]byte(csvText), model)
	if err != nil {
		t.Fatalf("ReadImport() error = %v", err)
	}
	if enc != "utf-8" {
		t.Errorf("ReadImport() encoding = %q, want utf-8", enc)
	}
	if len(rowErrs) != 0 {
		t.Fatalf("ReadImport() row errors = %v, want none", rowErrs)
	}
	if len(records) != 3 {
		t.Fatalf("ReadImport() records = %d, want 3", len(records))
	}

	first := records[0]
	if first.Rank != RankA || first.DiameterCM != 90 || first.LengthM != 2.2 {
		t.Errorf("records[0] = %+v, want the A row", first)
	}
	if first.PredictedPrice != 1034000 {
		t.Errorf("records[0] price = %d, want 1034000", first.PredictedPrice)
	}
	if records[2].PredictedPrice != 100000 {
		t.Errorf("records[2] price = %d, want 100000", records[2].PredictedPrice)
	}
}

func TestReadImportRowErrors(t *testing.T) {
	model := DefaultPriceModel()
	csvText := importHeader + "\n" +
		"1,90,2.2,A\n" + // line 2: good
		"2,999,2.0,B\n" + // line 3: diameter out of range
		"\n" + // swallowed blank line
		"x,80,2.0,B\n" + // line 5: sequence not a number
		"4,80,2.0,D\n" // line 6: unknown rank

	records, rowErrs, _, err := ReadImport([]byte(csvText), model)
	if err != nil {
		t.Fatalf("ReadImport() error = %v", err)
	}
	if len(records) != 1 {
		t.Errorf("ReadImport() records = %d, want 1", len(records))
	}
	if len(rowErrs) != 3 {
		t.Fatalf("ReadImport() row errors = %v, want 3", rowErrs)
	}

	tests := []struct {
		wantLine int
		wantText string
	}{
		{3, "diameter must be between 1 and 200 cm"},
		{5, "No. is not a number"},
		{6, "rank must be one of A, B, C"},
	}
	for i, tt := range tests {
		if rowErrs[i].Line != tt.wantLine {
			t.Errorf("rowErrs[%d].Line = %d, want %d", i, rowErrs[i].Line, tt.wantLine)
		}
		if !strings.Contains(rowErrs[i].Error(), tt.wantText) {
			t.Errorf("rowErrs[%d] = %q, want it to contain %q", i, rowErrs[i].Error(), tt.wantText)
		}
	}
}

func TestReadImportCollectsAllProblemsPerRow(t *testing.T) {
	model := DefaultPriceModel()
	csvText := importHeader + "\n0,999,99,Z\n"

	_, rowErrs, _, err := ReadImport([]byte(csvText), model)
	if err != nil {
		t.Fatalf("ReadImport() error = %v", err)
	}
	if len(rowErrs) != 1 {
		t.Fatalf("row errors = %v, want 1", rowErrs)
	}
	if len(rowErrs[0].Problems) != 4 {
		t.Errorf("problems = %v, want all 4 violations reported together", rowErrs[0].Problems)
	}
}

func TestReadImportMissingColumns(t *testing.T) {
	model := DefaultPriceModel()

	tests := []struct {
		name        string
		csvText     string
		wantMissing []string
	}{
		{
			name:        "one column absent",
			csvText:     "No.,口径(cm),長さ(m)\n1,90,2.2\n",
			wantMissing: []string{ColumnRank},
		},
		{
			name:        "header in another language",
			csvText:     "id,diameter,length,rank\n1,90,2.2,A\n",
			wantMissing: []string{ColumnSequence, ColumnDiameter, ColumnLength, ColumnRank},
		},
		{
			name:        "empty file",
			csvText:     "",
			wantMissing: []string{ColumnSequence, ColumnDiameter, ColumnLength, ColumnRank},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := ReadImport([]byte(tt.csvText), model)
			var colErr *MissingColumnsError
			if !errors.As(err, &colErr) {
				t.Fatalf("ReadImport() error = %v, want *MissingColumnsError", err)
			}
			if len(colErr.Missing) != len(tt.wantMissing) {
				t.Fatalf("Missing = %v, want %v", colErr.Missing, tt.wantMissing)
			}
			for i := range tt.wantMissing {
				if colErr.Missing[i] != tt.wantMissing[i] {
					t.Errorf("Missing[%d] = %q, want %q", i, colErr.Missing[i], tt.wantMissing[i])
				}
			}
		})
	}
}

func TestReadImportKeepsFileSequenceNumbers(t *testing.T) {
	// Renumbering is the merge step's job; the reader reports what the
	// file said.
	model := DefaultPriceModel()
	csvText := importHeader + "\n7,90,2.2,A\n9,78,1.9,B\n"

	records, _, _, err := ReadImport([]byte(csvText), model)
	if err != nil {
		t.Fatalf("ReadImport() error = %v", err)
	}
	if records[0].SequenceNumber != 7 || records[1].SequenceNumber != 9 {
		t.Errorf("sequence numbers = %d, %d, want 7, 9", records[0].SequenceNumber, records[1].SequenceNumber)
	}
}

func TestPreviewImport(t *testing.T) {
	var sb strings.Builder
	sb.WriteString(importHeader + "\n")
	for i := 0; i < 15; i++ {
		sb.WriteString("1,90,2.2,A\n")
	}
	sb.WriteString("\n") // blank rows never count

	preview, err := PreviewImport([]byte(sb.String()))
	if err != nil {
		t.Fatalf("PreviewImport() error = %v", err)
	}
	if preview.Encoding != "utf-8" {
		t.Errorf("Encoding = %q, want utf-8", preview.Encoding)
	}
	if len(preview.Header) != 4 || preview.Header[0] != ColumnSequence {
		t.Errorf("Header = %v, want the four import columns", preview.Header)
	}
	if len(preview.Rows) != 10 {
		t.Errorf("Rows = %d, want the preview cap of 10", len(preview.Rows))
	}
	if preview.TotalRows != 15 {
		t.Errorf("TotalRows = %d, want 15", preview.TotalRows)
	}
}

func TestPreviewImportMissingColumns(t *testing.T) {
	_, err := PreviewImport([]byte("a,b\n1,2\n"))
	var colErr *MissingColumnsError
	if !errors.As(err, &colErr) {
		t.Fatalf("PreviewImport() error = %v, want *MissingColumnsError", err)
	}
}

func TestRowErrorString(t *testing.T) {
	e := RowError{Line: 7, Problems: []string{"first", "second"}}
	want := "line 7: first; second"
	if got := e.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
