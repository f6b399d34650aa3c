package core

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Service owns the live record collection and the active price model. All
// methods are safe for concurrent use. Mutations hold the write lock and
// renumber before returning, so readers always see a densely numbered
// collection.
type Service struct {
	mu      sync.RWMutex
	records Collection
	model   *PriceModel
}

// NewService creates a service around the given calibration. A nil model
// falls back to the built-in defaults. The model is never changed after
// construction.
func NewService(model *PriceModel) *Service {
	if model == nil {
		model = DefaultPriceModel()
	}
	return &Service{model: model}
}

// Model returns a copy of the active calibration.
func (s *Service) Model() PriceModel {
	return *s.model
}

// Records returns a snapshot of the collection in sequence order.
func (s *Service) Records() Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records.Clone()
}

// Count returns the number of records in the collection.
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Get returns the record at the given sequence number.
func (s *Service) Get(seq int) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(seq)
	if i < 0 {
		return Record{}, ErrRecordNotFound
	}
	return s.records[i], nil
}

// Add validates and prices one candidate, then appends it. A zero sequence
// number is replaced with the next free one before validation, so manual
// entries need not carry a number.
//
// An invalid candidate is reported through the ValidationResult with a nil
// error and leaves the collection unchanged.
func (s *Service) Add(c Candidate) (Record, ValidationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.SequenceNumber == 0 {
		c.SequenceNumber = len(s.records) + 1
	}
	res := Validate(c)
	if !res.Valid {
		return Record{}, res, nil
	}

	rec, err := s.buildRecord(c)
	if err != nil {
		return Record{}, res, err
	}
	s.records = append(s.records, rec)
	s.records.Renumber()
	return s.records[len(s.records)-1], res, nil
}

// Update replaces the record at the given sequence number with a
// revalidated and repriced candidate.
func (s *Service) Update(seq int, c Candidate) (Record, ValidationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(seq)
	if i < 0 {
		return Record{}, ValidationResult{}, ErrRecordNotFound
	}

	c.SequenceNumber = seq
	res := Validate(c)
	if !res.Valid {
		return Record{}, res, nil
	}

	rec, err := s.buildRecord(c)
	if err != nil {
		return Record{}, res, err
	}
	s.records[i] = rec
	return s.records[i], res, nil
}

// Delete removes the record at the given sequence number and renumbers the
// remainder so the collection stays dense.
func (s *Service) Delete(seq int) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(seq)
	if i < 0 {
		return Record{}, ErrRecordNotFound
	}
	removed := s.records[i]
	s.records = append(s.records[:i], s.records[i+1:]...)
	s.records.Renumber()
	return removed, nil
}

// Clear removes every record and reports how many were removed.
func (s *Service) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.records)
	s.records = nil
	return n
}

// ImportCSV decodes, validates, prices, and merges an uploaded file. Row
// errors do not abort the import; only a file that cannot be decoded or
// lacks required columns leaves the collection untouched.
func (s *Service) ImportCSV(raw []byte, mode MergeMode) (*ImportResult, error) {
	start := time.Now()

	records, rowErrs, encName, err := ReadImport(raw, s.model)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.records = Merge(s.records, records, mode)
	s.mu.Unlock()

	return &ImportResult{
		ImportID:  uuid.NewString(),
		Mode:      mode,
		Imported:  len(records),
		Total:     len(records) + len(rowErrs),
		RowErrors: rowErrs,
		Encoding:  encName,
		Duration:  time.Since(start),
	}, nil
}

// PreviewCSV decodes a file and returns its first rows without changing
// the collection.
func (s *Service) PreviewCSV(raw []byte) (*ImportPreview, error) {
	return PreviewImport(raw)
}

// Export renders the collection as a downloadable CSV. Exporting an empty
// collection returns ErrEmptyCollection.
func (s *Service) Export() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.records) == 0 {
		return nil, ErrEmptyCollection
	}
	return ExportCSV(s.records)
}

// Statistics builds the dashboard report over the current collection.
func (s *Service) Statistics() StatisticsReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return BuildReport(s.records)
}

// buildRecord prices a validated candidate. Callers hold the write lock.
func (s *Service) buildRecord(c Candidate) (Record, error) {
	rank, _ := ParseRank(c.Rank)
	pred, err := s.model.Predict(c.DiameterCM, c.LengthM, rank)
	if err != nil {
		return Record{}, err
	}
	return Record{
		SequenceNumber: c.SequenceNumber,
		DiameterCM:     c.DiameterCM,
		LengthM:        c.LengthM,
		Rank:           rank,
		PredictedPrice: pred.Price,
		LowerBound:     pred.Lower,
		UpperBound:     pred.Upper,
	}, nil
}

// indexOf maps a sequence number to its slice position. The collection is
// densely numbered 1..N, so the number is the position.
func (s *Service) indexOf(seq int) int {
	if seq < 1 || seq > len(s.records) {
		return -1
	}
	return seq - 1
}
