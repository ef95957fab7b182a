// Package stats computes descriptive statistics over task timing fields.
package stats

import (
	"math"

	"github.com/taskmeter/taskmeter/packages/tasks"
)

// Stats is a summary of a sequence of numeric samples, durations in seconds
// in practice.
type Stats struct {
	Samples int     `json:"samples"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Mean    float64 `json:"mean"`
	StdDev  float64 `json:"stdev"`
}

// DataStats summarises a sample set. StdDev is the sample standard deviation
// and is 0.0 for fewer than two samples. Behaviour on an empty set is
// undefined; callers must pass at least one sample (a zero Stats comes back,
// but do not rely on it).
func DataStats(samples []float64) Stats {
	if len(samples) == 0 {
		return Stats{}
	}

	min := samples[0]
	max := samples[0]
	sum := 0.0
	for _, s := range samples {
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
		sum += s
	}
	mean := sum / float64(len(samples))

	stdev := 0.0
	if len(samples) > 1 {
		sq := 0.0
		for _, s := range samples {
			d := s - mean
			sq += d * d
		}
		stdev = math.Sqrt(sq / float64(len(samples)-1))
	}

	return Stats{
		Samples: len(samples),
		Min:     min,
		Max:     max,
		Mean:    mean,
		StdDev:  stdev,
	}
}

// WaitingTimes summarises started_at - _created across task records.
// Negative durations from skewed clocks flow through unfiltered.
func WaitingTimes(ts []*tasks.Task) (Stats, error) {
	durations := make([]float64, 0, len(ts))
	for _, t := range ts {
		d, err := t.WaitingTime()
		if err != nil {
			return Stats{}, err
		}
		durations = append(durations, d)
	}
	return DataStats(durations), nil
}

// ServiceTimes summarises finished_at - started_at across task records.
// Negative durations from skewed clocks flow through unfiltered.
func ServiceTimes(ts []*tasks.Task) (Stats, error) {
	durations := make([]float64, 0, len(ts))
	for _, t := range ts {
		d, err := t.ServiceTime()
		if err != nil {
			return Stats{}, err
		}
		durations = append(durations, d)
	}
	return DataStats(durations), nil
}
