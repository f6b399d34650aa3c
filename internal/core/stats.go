package core

import (
	"math"
	"sort"
)

// OverallKey labels the statistics group containing every record.
const OverallKey = "overall"

// FieldSummary is the descriptive summary of one numeric field.
type FieldSummary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	P25    float64 `json:"p25"`
	Median float64 `json:"median"`
	P75    float64 `json:"p75"`
	Max    float64 `json:"max"`
}

// GroupStatistics summarizes the numeric fields of one group of records.
type GroupStatistics struct {
	Diameter FieldSummary `json:"diameter_cm"`
	Length   FieldSummary `json:"length_m"`
	Price    FieldSummary `json:"predicted_price"`
}

// Aggregate computes descriptive statistics for each rank present in the
// collection plus an overall group. Groups with no records are omitted,
// so an empty collection yields an empty map. The input is never
// modified.
func Aggregate(records Collection) map[string]GroupStatistics {
	groups := make(map[string]GroupStatistics)
	if len(records) == 0 {
		return groups
	}

	groups[OverallKey] = summarizeGroup(records)
	for _, r := range ranksDescending {
		var sub Collection
		for _, rec := range records {
			if rec.Rank == r {
				sub = append(sub, rec)
			}
		}
		if len(sub) == 0 {
			continue
		}
		groups[string(r)] = summarizeGroup(sub)
	}
	return groups
}

func summarizeGroup(records Collection) GroupStatistics {
	n := len(records)
	diameters := make([]float64, 0, n)
	lengths := make([]float64, 0, n)
	prices := make([]float64, 0, n)
	for _, rec := range records {
		diameters = append(diameters, rec.DiameterCM)
		lengths = append(lengths, rec.LengthM)
		prices = append(prices, float64(rec.PredictedPrice))
	}
	return GroupStatistics{
		Diameter: summarizeField(diameters),
		Length:   summarizeField(lengths),
		Price:    summarizeField(prices),
	}
}

// summarizeField computes the summary of one series. The slice is sorted
// in place, so callers pass a copy they own.
func summarizeField(values []float64) FieldSummary {
	if len(values) == 0 {
		return FieldSummary{}
	}

	var acc accumulator
	for _, v := range values {
		acc.add(v)
	}
	sort.Float64s(values)

	return FieldSummary{
		Count:  len(values),
		Mean:   acc.mean,
		Std:    acc.sampleStd(),
		Min:    values[0],
		P25:    quantile(values, 0.25),
		Median: quantile(values, 0.5),
		P75:    quantile(values, 0.75),
		Max:    values[len(values)-1],
	}
}

// accumulator tracks a running mean and squared distance from the mean
// using Welford's recurrence.
type accumulator struct {
	n    int
	mean float64
	m2   float64
}

func (a *accumulator) add(v float64) {
	a.n++
	delta := v - a.mean
	a.mean += delta / float64(a.n)
	a.m2 += delta * (v - a.mean)
}

// sampleStd returns the sample standard deviation with n-1 in the
// denominator, or zero when fewer than two values were seen.
func (a *accumulator) sampleStd() float64 {
	if a.n < 2 {
		return 0
	}
	return math.Sqrt(a.m2 / float64(a.n-1))
}

// quantile returns the q-th quantile of a sorted series using linear
// interpolation between the two nearest order statistics.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

// RankBreakdown is one rank's slice of the dashboard totals.
type RankBreakdown struct {
	Rank     Rank    `json:"rank"`
	Count    int     `json:"count"`
	Total    int64   `json:"total_price"`
	Mean     float64 `json:"mean_price"`
	SharePct float64 `json:"share_pct"`
}

// StatisticsReport bundles everything the statistics screen shows: overall
// totals, the per-rank breakdown, and descriptive summaries per group.
type StatisticsReport struct {
	Count      int                        `json:"count"`
	TotalPrice int64                      `json:"total_price"`
	TotalLower int64                      `json:"total_lower"`
	TotalUpper int64                      `json:"total_upper"`
	Ranks      []RankBreakdown            `json:"ranks"`
	Groups     map[string]GroupStatistics `json:"groups"`
}

// BuildReport assembles the dashboard report. Ranks with no records are
// left out of the breakdown, and each share is the rank's percentage of
// the total predicted revenue rounded to one decimal.
func BuildReport(records Collection) StatisticsReport {
	report := StatisticsReport{
		Count:  len(records),
		Groups: Aggregate(records),
	}
	for _, rec := range records {
		report.TotalPrice += rec.PredictedPrice
		report.TotalLower += rec.LowerBound
		report.TotalUpper += rec.UpperBound
	}

	for _, r := range ranksDescending {
		var count int
		var total int64
		for _, rec := range records {
			if rec.Rank != r {
				continue
			}
			count++
			total += rec.PredictedPrice
		}
		if count == 0 {
			continue
		}
		var share float64
		if report.TotalPrice != 0 {
			share = round1(float64(total) / float64(report.TotalPrice) * 100)
		}
		report.Ranks = append(report.Ranks, RankBreakdown{
			Rank:     r,
			Count:    count,
			Total:    total,
			Mean:     float64(total) / float64(count),
			SharePct: share,
		})
	}
	return report
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
