package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantMessage string
	}{
		{
			name:        "nil error returns empty",
			err:         nil,
			wantCode:    "",
			wantMessage: "",
		},
		{
			name:        "decoding error maps correctly",
			err:         &ImportDecodingError{Tried: []string{"utf-8-sig", "utf-8", "shift_jis", "cp932"}},
			wantCode:    "IMPORT_ENCODING",
			wantMessage: "Could not read the file with any supported encoding (tried utf-8-sig, utf-8, shift_jis, cp932)",
		},
		{
			name:        "wrapped decoding error maps correctly",
			err:         fmt.Errorf("import: %w", &ImportDecodingError{Tried: []string{"utf-8"}}),
			wantCode:    "IMPORT_ENCODING",
			wantMessage: "Could not read the file with any supported encoding (tried utf-8)",
		},
		{
			name:        "missing columns error maps correctly",
			err:         &MissingColumnsError{Missing: []string{ColumnDiameter, ColumnRank}},
			wantCode:    "IMPORT_COLUMNS",
			wantMessage: "Required columns are missing: 口径(cm), ランク",
		},
		{
			name:        "record not found maps correctly",
			err:         ErrRecordNotFound,
			wantCode:    "RECORD_NOT_FOUND",
			wantMessage: "No record carries that number",
		},
		{
			name:        "empty collection maps correctly",
			err:         fmt.Errorf("export: %w", ErrEmptyCollection),
			wantCode:    "COLLECTION_EMPTY",
			wantMessage: "There are no records yet",
		},
		{
			name:        "oversized body maps correctly",
			err:         errors.New("http: request body too large"),
			wantCode:    "FILE_TOO_LARGE",
			wantMessage: "The file exceeds the upload size limit",
		},
		{
			name:        "missing file part maps correctly",
			err:         errors.New("http: no such file"),
			wantCode:    "FILE_MISSING",
			wantMessage: "No file was selected",
		},
		{
			name:        "empty upload maps correctly",
			err:         errors.New("empty file"),
			wantCode:    "FILE_EMPTY",
			wantMessage: "The uploaded file is empty",
		},
		{
			name:        "cancelled request maps correctly",
			err:         errors.New("context canceled"),
			wantCode:    "REQUEST_CANCELLED",
			wantMessage: "The request was cancelled",
		},
		{
			name:        "timeout maps correctly",
			err:         errors.New("context deadline exceeded"),
			wantCode:    "REQUEST_TIMEOUT",
			wantMessage: "The request timed out",
		},
		{
			name:        "case insensitive matching",
			err:         errors.New("HTTP: Request Body Too Large"),
			wantCode:    "FILE_TOO_LARGE",
			wantMessage: "The file exceeds the upload size limit",
		},
		{
			name:        "unknown error returns default",
			err:         errors.New("some random internal error"),
			wantCode:    "UNEXPECTED",
			wantMessage: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("MapError() message = %q, want %q", got.Message, tt.wantMessage)
			}
		})
	}
}

func TestMapErrorActionPresent(t *testing.T) {
	// Every mapped category must tell the user what to do next.
	errs := []error{
		&ImportDecodingError{Tried: []string{"utf-8"}},
		&MissingColumnsError{Missing: []string{ColumnSequence}},
		ErrRecordNotFound,
		ErrEmptyCollection,
		errors.New("http: request body too large"),
		errors.New("unmapped"),
	}
	for _, err := range errs {
		if msg := MapError(err); msg.Action == "" {
			t.Errorf("MapError(%v) has empty Action", err)
		}
	}
}

func TestImportDecodingErrorString(t *testing.T) {
	err := &ImportDecodingError{Tried: []string{"utf-8-sig", "utf-8", "shift_jis", "cp932"}}
	want := "unable to decode file: tried utf-8-sig, utf-8, shift_jis, cp932"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestMissingColumnsErrorString(t *testing.T) {
	err := &MissingColumnsError{Missing: []string{ColumnSequence, ColumnLength}}
	want := "missing required columns: No., 長さ(m)"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
