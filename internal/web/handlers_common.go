package web

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/timberworks/timberlog/internal/core"
)

// parseSeqParam extracts the {seq} route parameter. On a malformed value it
// writes a 400 response and reports false.
func parseSeqParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	seq, err := strconv.Atoi(chi.URLParam(r, "seq"))
	if err != nil || seq < 1 {
		writeError(w, r, http.StatusBadRequest, "invalid sequence number")
		return 0, false
	}
	return seq, true
}

// readUploadFile pulls the "file" part out of a multipart upload, enforcing
// the configured size limit. The returned name is the client-side filename,
// used only for logging and response metadata.
func (s *Server) readUploadFile(w http.ResponseWriter, r *http.Request) ([]byte, string, error) {
	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		return nil, "", err
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", err
	}
	if len(data) == 0 {
		return nil, "", errors.New("empty file")
	}
	return data, header.Filename, nil
}

// ImportResultResponse wraps an import result for JSON encoding, attaching
// the upload filename and rendering the elapsed time as a string.
type ImportResultResponse struct {
	ImportID  string          `json:"import_id"`
	FileName  string          `json:"file_name"`
	Mode      core.MergeMode  `json:"mode"`
	Imported  int             `json:"imported"`
	TotalRows int             `json:"total_rows"`
	RowErrors []core.RowError `json:"row_errors,omitempty"`
	Encoding  string          `json:"encoding"`
	Duration  string          `json:"duration"`
}

func toResponse(result *core.ImportResult, fileName string) ImportResultResponse {
	return ImportResultResponse{
		ImportID:  result.ImportID,
		FileName:  fileName,
		Mode:      result.Mode,
		Imported:  result.Imported,
		TotalRows: result.Total,
		RowErrors: result.RowErrors,
		Encoding:  result.Encoding,
		Duration:  result.Duration.String(),
	}
}
