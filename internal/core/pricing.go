package core

import (
	"fmt"
	"math"
)

// Diameter thresholds for the usual market grade bands, in centimeters.
const (
	GradeAMinDiameterCM = 85.0
	GradeBMinDiameterCM = 60.0
)

// RankCoefficients holds the linear pricing terms for one rank.
//
// The raw price in yen for a log of diameter d cm and length l m is
// PerDiameterCM*d + PerLengthM*l + Base. ConfidenceInterval is the
// relative half-width of the price band, e.g. 0.15 for plus or minus
// fifteen percent.
type RankCoefficients struct {
	PerDiameterCM      float64 `json:"per_diameter_cm" yaml:"per_diameter_cm" mapstructure:"per_diameter_cm"`
	PerLengthM         float64 `json:"per_length_m" yaml:"per_length_m" mapstructure:"per_length_m"`
	Base               float64 `json:"base" yaml:"base" mapstructure:"base"`
	ConfidenceInterval float64 `json:"confidence_interval" yaml:"confidence_interval" mapstructure:"confidence_interval"`
}

// PriceModel is a pricing calibration covering all three ranks.
type PriceModel struct {
	Version string           `json:"version" yaml:"version" mapstructure:"version"`
	A       RankCoefficients `json:"a" yaml:"a" mapstructure:"a"`
	B       RankCoefficients `json:"b" yaml:"b" mapstructure:"b"`
	C       RankCoefficients `json:"c" yaml:"c" mapstructure:"c"`
}

// Prediction is a priced estimate with its confidence bounds in yen.
type Prediction struct {
	Price int64 `json:"predicted_price"`
	Lower int64 `json:"lower_bound"`
	Upper int64 `json:"upper_bound"`
}

// DefaultPriceModel returns the calibration shipped with the application,
// the December 2024 edition.
func DefaultPriceModel() *PriceModel {
	return &PriceModel{
		Version: "2024-12",
		A: RankCoefficients{
			PerDiameterCM:      18000,
			PerLengthM:         120000,
			Base:               -850000,
			ConfidenceInterval: 0.15,
		},
		B: RankCoefficients{
			PerDiameterCM:      9000,
			PerLengthM:         80000,
			Base:               -380000,
			ConfidenceInterval: 0.20,
		},
		C: RankCoefficients{
			PerDiameterCM:      0,
			PerLengthM:         0,
			Base:               100000,
			ConfidenceInterval: 0.10,
		},
	}
}

func (m *PriceModel) coefficients(r Rank) (RankCoefficients, bool) {
	switch r {
	case RankA:
		return m.A, true
	case RankB:
		return m.B, true
	case RankC:
		return m.C, true
	}
	return RankCoefficients{}, false
}

// Validate checks that every calibration term is a finite number and that
// the model can only price upward: a larger log must never predict cheaper
// within a rank, and every confidence interval must stay inside [0, 1).
func (m *PriceModel) Validate() error {
	for _, r := range ranksDescending {
		coef, _ := m.coefficients(r)
		for _, term := range []struct {
			name  string
			value float64
		}{
			{"per_diameter_cm", coef.PerDiameterCM},
			{"per_length_m", coef.PerLengthM},
			{"base", coef.Base},
			{"confidence_interval", coef.ConfidenceInterval},
		} {
			if math.IsNaN(term.value) || math.IsInf(term.value, 0) {
				return fmt.Errorf("rank %s: %s must be a finite number, got %g", r, term.name, term.value)
			}
		}
		if coef.PerDiameterCM < 0 {
			return fmt.Errorf("rank %s: per_diameter_cm must not be negative, got %g", r, coef.PerDiameterCM)
		}
		if coef.PerLengthM < 0 {
			return fmt.Errorf("rank %s: per_length_m must not be negative, got %g", r, coef.PerLengthM)
		}
		if coef.ConfidenceInterval < 0 || coef.ConfidenceInterval >= 1 {
			return fmt.Errorf("rank %s: confidence_interval must be in [0, 1), got %g", r, coef.ConfidenceInterval)
		}
	}
	return nil
}

// ranksAscending orders ranks from lowest grade to best. Predict walks this
// order so a better grade never prices below a worse one.
var ranksAscending = []Rank{RankC, RankB, RankA}

// Predict prices one log at the given rank.
//
// The price for a rank is floored at what the same log would fetch at every
// lower rank. Price and bounds are truncated to whole yen, and the bounds
// use the requested rank's confidence interval.
func (m *PriceModel) Predict(diameterCM, lengthM float64, rank Rank) (Prediction, error) {
	target, ok := m.coefficients(rank)
	if !ok {
		return Prediction{}, fmt.Errorf("predict: unknown rank %q", rank)
	}

	price := math.Inf(-1)
	for _, r := range ranksAscending {
		coef, _ := m.coefficients(r)
		raw := coef.PerDiameterCM*diameterCM + coef.PerLengthM*lengthM + coef.Base
		if raw > price {
			price = raw
		}
		if r == rank {
			break
		}
	}

	p := int64(price)
	return Prediction{
		Price: p,
		Lower: int64(float64(p) * (1 - target.ConfidenceInterval)),
		Upper: int64(float64(p) * (1 + target.ConfidenceInterval)),
	}, nil
}

// SuggestRank returns the grade band a diameter usually falls in. Logs of
// 85 cm and up typically grade A, logs under 60 cm grade C.
func SuggestRank(diameterCM float64) Rank {
	switch {
	case diameterCM >= GradeAMinDiameterCM:
		return RankA
	case diameterCM >= GradeBMinDiameterCM:
		return RankB
	default:
		return RankC
	}
}

// DefaultEntry returns the starting values for a manual entry form.
func DefaultEntry() Candidate {
	return Candidate{DiameterCM: 80, LengthM: 2.0, Rank: string(RankB)}
}
