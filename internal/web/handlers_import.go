package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/timberworks/timberlog/internal/core"
	"github.com/timberworks/timberlog/internal/logging"
)

// handleImport accepts a multipart CSV upload, decodes and validates it, and
// merges the resulting records into the collection. Rows that fail
// validation are reported back with their original line numbers; the rest
// are imported.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	data, fileName, err := s.readUploadFile(w, r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	mode, err := core.ParseMergeMode(r.FormValue("mode"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.service.ImportCSV(data, mode)
	if err != nil {
		s.respondError(w, r, err, statusForError(err))
		return
	}

	logging.FromContext(r.Context()).Info("import complete",
		"import_id", result.ImportID,
		"file_name", fileName,
		"mode", result.Mode,
		"imported", result.Imported,
		"total_rows", result.Total,
		"row_errors", len(result.RowErrors),
		"encoding", result.Encoding,
		"duration", result.Duration.String(),
	)

	writeJSON(w, http.StatusOK, toResponse(result, fileName))
}

// handleImportPreview decodes an uploaded CSV and returns its header and
// first rows without touching the collection.
func (s *Server) handleImportPreview(w http.ResponseWriter, r *http.Request) {
	data, _, err := s.readUploadFile(w, r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	preview, err := s.service.PreviewCSV(data)
	if err != nil {
		s.respondError(w, r, err, statusForError(err))
		return
	}
	writeJSON(w, http.StatusOK, preview)
}

// handleImportSample serves a small CSV in the expected import layout.
func (s *Server) handleImportSample(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", core.SampleFilename))
	w.Write(core.SampleCSV())
}

// handleExport streams the collection as a UTF-8 CSV download with a
// timestamped filename.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	data, err := s.service.Export()
	if err != nil {
		s.respondError(w, r, err, statusForError(err))
		return
	}

	name := core.ExportFilename(time.Now())
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Write(data)
}
