package core

import "strings"

// Rank is the quality grade of a timber log. A is the highest grade.
type Rank string

// Valid ranks, highest grade first.
const (
	RankA Rank = "A"
	RankB Rank = "B"
	RankC Rank = "C"
)

// ranksDescending lists the grades from highest to lowest.
var ranksDescending = []Rank{RankA, RankB, RankC}

// RankColors maps each grade to its display color for the charting frontend.
var RankColors = map[Rank]string{
	RankA: "#FF6B6B",
	RankB: "#4ECDC4",
	RankC: "#95E1D3",
}

// ParseRank normalizes raw input (trailing spaces, lowercase) to a Rank.
// The second return value reports whether the input named a known grade.
func ParseRank(s string) (Rank, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A":
		return RankA, true
	case "B":
		return RankB, true
	case "C":
		return RankC, true
	}
	return "", false
}

// Valid reports whether r is one of the known grades.
func (r Rank) Valid() bool {
	return r == RankA || r == RankB || r == RankC
}

// Candidate is one manually entered or imported row before validation.
// Rank is kept raw here; ParseRank normalizes it once the candidate is
// accepted.
type Candidate struct {
	SequenceNumber int     `json:"sequence_number"`
	DiameterCM     float64 `json:"diameter_cm"`
	LengthM        float64 `json:"length_m"`
	Rank           string  `json:"rank"`
}

// Record is an accepted log entry together with its derived prediction.
// The price fields are recomputed whenever an input field changes; they are
// never edited independently.
type Record struct {
	SequenceNumber int     `json:"sequence_number"`
	DiameterCM     float64 `json:"diameter_cm"`
	LengthM        float64 `json:"length_m"`
	Rank           Rank    `json:"rank"`
	PredictedPrice int64   `json:"predicted_price"`
	LowerBound     int64   `json:"lower_bound"`
	UpperBound     int64   `json:"upper_bound"`
}

// Collection is the working set of records for the running session.
// Whenever a collection is read for display or statistics, sequence numbers
// are exactly 1..N in order; every mutation restores this before returning.
type Collection []Record

// Renumber reassigns sequence numbers 1..N in place, preserving order.
func (c Collection) Renumber() {
	for i := range c {
		c[i].SequenceNumber = i + 1
	}
}

// Clone returns an independent copy of the collection.
func (c Collection) Clone() Collection {
	if c == nil {
		return nil
	}
	out := make(Collection, len(c))
	copy(out, c)
	return out
}
