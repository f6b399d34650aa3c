package web

import (
	"encoding/json"
	"net/http"

	"github.com/timberworks/timberlog/internal/core"
)

// handleHealth reports process liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// recordsResponse is the JSON envelope for the record listing.
type recordsResponse struct {
	Records core.Collection `json:"records"`
	Count   int             `json:"count"`
}

// handleListRecords returns the full collection in sequence order.
func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	records := s.service.Records()
	if records == nil {
		records = core.Collection{}
	}
	writeJSON(w, http.StatusOK, recordsResponse{Records: records, Count: len(records)})
}

// handleAddRecord validates, prices, and appends one manually entered log.
// Responds 201 with the stored record, or 422 with the full list of
// violations.
func (s *Server) handleAddRecord(w http.ResponseWriter, r *http.Request) {
	var cand core.Candidate
	if err := json.NewDecoder(r.Body).Decode(&cand); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}

	rec, res, err := s.service.Add(cand)
	if err != nil {
		s.respondError(w, r, err, statusForError(err))
		return
	}
	if !res.Valid {
		writeJSON(w, http.StatusUnprocessableEntity, res)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// handleGetRecord returns one record by sequence number.
func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	seq, ok := parseSeqParam(w, r)
	if !ok {
		return
	}

	rec, err := s.service.Get(seq)
	if err != nil {
		s.respondError(w, r, err, statusForError(err))
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// handleUpdateRecord replaces the record at a sequence number with a
// revalidated and repriced candidate.
func (s *Server) handleUpdateRecord(w http.ResponseWriter, r *http.Request) {
	seq, ok := parseSeqParam(w, r)
	if !ok {
		return
	}

	var cand core.Candidate
	if err := json.NewDecoder(r.Body).Decode(&cand); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}

	rec, res, err := s.service.Update(seq, cand)
	if err != nil {
		s.respondError(w, r, err, statusForError(err))
		return
	}
	if !res.Valid {
		writeJSON(w, http.StatusUnprocessableEntity, res)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// handleDeleteRecord removes one record. The remaining records are
// renumbered, so clients should refresh their view afterwards.
func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	seq, ok := parseSeqParam(w, r)
	if !ok {
		return
	}

	removed, err := s.service.Delete(seq)
	if err != nil {
		s.respondError(w, r, err, statusForError(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]core.Record{"deleted": removed})
}

// handleClearRecords empties the collection.
func (s *Server) handleClearRecords(w http.ResponseWriter, r *http.Request) {
	cleared := s.service.Clear()
	writeJSON(w, http.StatusOK, map[string]int{"cleared": cleared})
}

// handleStatistics returns the dashboard report.
func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.Statistics())
}

// gradeBand describes the diameter range one rank usually covers. A zero
// bound means the band is open on that side.
type gradeBand struct {
	Rank          core.Rank `json:"rank"`
	MinDiameterCM float64   `json:"min_diameter_cm,omitempty"`
	MaxDiameterCM float64   `json:"max_diameter_cm,omitempty"`
}

// modelResponse bundles everything a client needs to render the pricing
// sidebar: the active calibration, grade guidance, and form defaults.
type modelResponse struct {
	Model      core.PriceModel      `json:"model"`
	GradeBands []gradeBand          `json:"grade_bands"`
	RankColors map[core.Rank]string `json:"rank_colors"`
	Defaults   core.Candidate       `json:"entry_defaults"`
}

// handleModel returns the active calibration and display guidance.
func (s *Server) handleModel(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, modelResponse{
		Model: s.service.Model(),
		GradeBands: []gradeBand{
			{Rank: core.RankA, MinDiameterCM: core.GradeAMinDiameterCM},
			{Rank: core.RankB, MinDiameterCM: core.GradeBMinDiameterCM, MaxDiameterCM: core.GradeAMinDiameterCM},
			{Rank: core.RankC, MaxDiameterCM: core.GradeBMinDiameterCM},
		},
		RankColors: core.RankColors,
		Defaults:   core.DefaultEntry(),
	})
}
