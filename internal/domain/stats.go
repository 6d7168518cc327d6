package domain

import (
	"math"
	"strconv"
)

// NotApplicable is the display text of a Metric that has no value.
const NotApplicable = "N/A"

// Metric is an aggregate that may be undefined (average of nothing,
// share of a zero total). Invalid metrics never carry NaN or Inf.
type Metric struct {
	Value float64
	Valid bool
}

// Some returns a valid metric. Non-finite values become invalid.
func Some(v float64) Metric {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Metric{}
	}
	return Metric{Value: v, Valid: true}
}

// String formats the metric with two decimals, or "N/A".
func (m Metric) String() string {
	if !m.Valid {
		return NotApplicable
	}
	return strconv.FormatFloat(m.Value, 'f', 2, 64)
}

// Percent formats the metric as a percentage with two decimals ("25.00%"), or "N/A".
func (m Metric) Percent() string {
	if !m.Valid {
		return NotApplicable
	}
	return strconv.FormatFloat(m.Value, 'f', 2, 64) + "%"
}

// Share is one detail's portion of its topic total.
type Share struct {
	DetailID int64
	Name     string
	Value    float64
	Color    string
	Percent  Metric
}

// TopicStats holds the aggregates shown next to a topic's chart.
type TopicStats struct {
	Count   int
	Sum     Metric
	Average Metric
	Max     Metric
	Min     Metric
	Shares  []Share
}

// ComputeStats aggregates details in order. With no details Average, Max
// and Min are not applicable; with a zero sum every percentage is not
// applicable. A total beyond the float64 range is not applicable, while
// Average and the percentages are still computed from scaled values.
func ComputeStats(details []Detail) TopicStats {
	stats := TopicStats{
		Count:  len(details),
		Sum:    Some(0),
		Shares: make([]Share, len(details)),
	}
	if len(details) == 0 {
		return stats
	}

	maxV, minV := details[0].Value, details[0].Value
	var sum, scale float64
	for _, d := range details {
		sum += d.Value
		maxV = math.Max(maxV, d.Value)
		minV = math.Min(minV, d.Value)
		scale = math.Max(scale, math.Abs(d.Value))
	}

	// ratio(v) is v divided by the total.
	n := float64(len(details))
	ratio := func(v float64) float64 { return v / sum }
	if math.IsInf(sum, 0) {
		// Each term is at most 1 in magnitude, so the scaled sum cannot overflow.
		var scaled float64
		for _, d := range details {
			scaled += d.Value / scale
		}
		sum = scaled * scale
		stats.Average = Some(scaled / n * scale)
		ratio = func(v float64) float64 { return v / scale / scaled }
		if scaled == 0 {
			sum = 0
		}
	} else {
		stats.Average = Some(sum / n)
	}
	stats.Sum = Some(sum)
	stats.Max = Some(maxV)
	stats.Min = Some(minV)

	for i, d := range details {
		share := Share{
			DetailID: d.ID,
			Name:     d.Name,
			Value:    d.Value,
			Color:    d.Color,
		}
		if sum != 0 {
			share.Percent = Some(ratio(d.Value) * 100)
		}
		stats.Shares[i] = share
	}

	return stats
}
