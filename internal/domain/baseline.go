package domain

import "time"

// Size buckets used for performance baselines.
const (
	BucketSmall  = "small"
	BucketMedium = "medium"
	BucketLarge  = "large"
)

// Bucket boundaries in bytes.
const (
	SmallFileLimit  = 10 * 1024
	MediumFileLimit = 100 * 1024
)

// SizeBucket returns the baseline bucket for a file of n bytes.
func SizeBucket(n int) string {
	switch {
	case n < SmallFileLimit:
		return BucketSmall
	case n < MediumFileLimit:
		return BucketMedium
	default:
		return BucketLarge
	}
}

// Baseline is the expected processing duration of a bucket, in milliseconds.
type Baseline struct {
	Avg     float64 `json:"avg"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Samples int     `json:"samples"`
}

// PerformanceBaselines is the persisted comparison reference for timing
// classification. Missing buckets fall back to defaults.
type PerformanceBaselines struct {
	Version    int                 `json:"version"`
	UpdatedAt  string              `json:"updatedAt,omitempty"`
	Sizes      map[string]Baseline `json:"sizes"`
	Categories map[string]Baseline `json:"categories"`
}

// DefaultBaselines returns the reference used when no baselines file exists.
func DefaultBaselines() *PerformanceBaselines {
	return &PerformanceBaselines{
		Version: 1,
		Sizes: map[string]Baseline{
			BucketSmall:  {Avg: 5, Min: 0, Max: 50},
			BucketMedium: {Avg: 25, Min: 1, Max: 200},
			BucketLarge:  {Avg: 100, Min: 5, Max: 1000},
		},
		Categories: map[string]Baseline{},
	}
}

// SizeBaseline returns the baseline for a size bucket, falling back to defaults.
func (b *PerformanceBaselines) SizeBaseline(bucket string) Baseline {
	if b != nil {
		if v, ok := b.Sizes[bucket]; ok && v.Max > 0 {
			return v
		}
	}
	return DefaultBaselines().Sizes[bucket]
}

// CategoryBaseline returns the baseline for a check category, if one exists.
func (b *PerformanceBaselines) CategoryBaseline(category string) (Baseline, bool) {
	if b == nil {
		return Baseline{}, false
	}
	v, ok := b.Categories[category]
	return v, ok && v.Max > 0
}

// Millis converts a duration to fractional milliseconds.
func Millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
