package core

// validation.go checks candidate records against the domain constraints
// before they are admitted to the collection.
//
// Every rule is checked independently and all violations are collected in a
// single ValidationResult, so the UI can show the complete list at once.
// Nothing here raises errors as control flow: an empty Errors list is the
// only acceptance signal.

import (
	"fmt"
	"math"
	"strconv"
)

// Domain ranges for a physical log. Values outside these bounds are data
// entry mistakes, not unusual logs.
const (
	MinDiameterCM = 1.0
	MaxDiameterCM = 200.0
	MinLengthM    = 0.1
	MaxLengthM    = 10.0
)

// ValidationError represents a single validation error for a field.
type ValidationError struct {
	Field   string `json:"field"`   // Field name
	Value   string `json:"value"`   // The invalid value
	Message string `json:"message"` // Human-readable error message
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ValidationResult contains the result of validating one candidate.
type ValidationResult struct {
	Valid  bool              `json:"valid"`            // True if all validations passed
	Errors []ValidationError `json:"errors,omitempty"` // List of validation errors (empty if Valid)
}

// Messages returns the violation messages in the order they were checked.
func (r ValidationResult) Messages() []string {
	if len(r.Errors) == 0 {
		return nil
	}
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Message
	}
	return msgs
}

// Validate checks a candidate against the domain constraints and returns
// all violations. It is a pure function of its input.
func Validate(c Candidate) ValidationResult {
	result := ValidationResult{Valid: true}

	if c.SequenceNumber <= 0 {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{
			Field:   "sequence_number",
			Value:   strconv.Itoa(c.SequenceNumber),
			Message: "sequence number must be at least 1",
		})
	}

	if math.IsNaN(c.DiameterCM) || c.DiameterCM < MinDiameterCM || c.DiameterCM > MaxDiameterCM {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{
			Field:   "diameter_cm",
			Value:   strconv.FormatFloat(c.DiameterCM, 'f', -1, 64),
			Message: fmt.Sprintf("diameter must be between %g and %g cm", MinDiameterCM, MaxDiameterCM),
		})
	}

	if math.IsNaN(c.LengthM) || c.LengthM < MinLengthM || c.LengthM > MaxLengthM {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{
			Field:   "length_m",
			Value:   strconv.FormatFloat(c.LengthM, 'f', -1, 64),
			Message: fmt.Sprintf("length must be between %g and %g m", MinLengthM, MaxLengthM),
		})
	}

	if _, ok := ParseRank(c.Rank); !ok {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{
			Field:   "rank",
			Value:   c.Rank,
			Message: "rank must be one of A, B, C",
		})
	}

	return result
}
