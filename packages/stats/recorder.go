package stats

import (
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// LatencyRecorder accumulates request/download latencies into a histogram
// for percentile reporting.
type LatencyRecorder struct {
	histogram *hdrhistogram.Histogram
}

// LatencySummary is a snapshot of a recorder
type LatencySummary struct {
	Count int64
	Min   time.Duration
	Max   time.Duration
	Mean  time.Duration
	P50   time.Duration
	P95   time.Duration
	P99   time.Duration
}

// NewLatencyRecorder creates a recorder covering 1us to 60s with 3
// significant digits.
func NewLatencyRecorder() *LatencyRecorder {
	return &LatencyRecorder{
		histogram: hdrhistogram.New(1, 60_000_000, 3),
	}
}

// Record adds one latency sample, clamped to the histogram range
func (r *LatencyRecorder) Record(d time.Duration) {
	us := d.Microseconds()
	if us < 1 {
		us = 1
	}
	if us > 60_000_000 {
		us = 60_000_000
	}
	_ = r.histogram.RecordValue(us)
}

// Count returns the number of recorded samples
func (r *LatencyRecorder) Count() int64 {
	return r.histogram.TotalCount()
}

// Percentile returns the latency at percentile p (0-100)
func (r *LatencyRecorder) Percentile(p float64) time.Duration {
	return time.Duration(r.histogram.ValueAtQuantile(p)) * time.Microsecond
}

// Summary snapshots the recorder
func (r *LatencyRecorder) Summary() LatencySummary {
	return LatencySummary{
		Count: r.histogram.TotalCount(),
		Min:   time.Duration(r.histogram.Min()) * time.Microsecond,
		Max:   time.Duration(r.histogram.Max()) * time.Microsecond,
		Mean:  time.Duration(r.histogram.Mean()) * time.Microsecond,
		P50:   r.Percentile(50),
		P95:   r.Percentile(95),
		P99:   r.Percentile(99),
	}
}
