package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/wtthornton/tappscheck/internal/domain"
)

// maxSlowFiles caps the slow-file list in a performance report.
const maxSlowFiles = 10

var sizeBuckets = []string{domain.BucketSmall, domain.BucketMedium, domain.BucketLarge}

type observed struct {
	files         int
	sum, min, max float64
}

func (o *observed) add(ms float64) {
	if o.files == 0 || ms < o.min {
		o.min = ms
	}
	if o.files == 0 || ms > o.max {
		o.max = ms
	}
	o.files++
	o.sum += ms
}

func (o observed) avg() float64 {
	if o.files == 0 {
		return 0
	}
	return o.sum / float64(o.files)
}

func classify(avg float64, b domain.Baseline) domain.PerformanceStatus {
	switch {
	case avg > b.Max:
		return domain.PerformanceSlow
	case avg < b.Min:
		return domain.PerformanceFast
	default:
		return domain.PerformanceNormal
	}
}

func observe(timings []domain.FileTiming) (map[string]*observed, map[string]*observed) {
	sizes := make(map[string]*observed)
	cats := make(map[string]*observed)
	for _, t := range timings {
		b := domain.SizeBucket(t.Bytes)
		if sizes[b] == nil {
			sizes[b] = &observed{}
		}
		sizes[b].add(domain.Millis(t.Duration))
		for cat, d := range t.Categories {
			if cats[cat] == nil {
				cats[cat] = &observed{}
			}
			cats[cat].add(domain.Millis(d))
		}
	}
	return sizes, cats
}

// ClassifyPerformance compares observed per-file timings against baselines.
// An average above the baseline max is slow, below the baseline min is fast.
// Categories without a baseline are reported but always normal.
func ClassifyPerformance(timings []domain.FileTiming, baselines *domain.PerformanceBaselines) domain.PerformanceReport {
	sizes, cats := observe(timings)
	var rep domain.PerformanceReport

	for _, bucket := range sizeBuckets {
		o, ok := sizes[bucket]
		if !ok {
			continue
		}
		base := baselines.SizeBaseline(bucket)
		rep.Sizes = append(rep.Sizes, domain.BucketPerformance{
			Bucket: bucket, Files: o.files,
			AvgMs: o.avg(), MinMs: o.min, MaxMs: o.max,
			Baseline: base, Status: classify(o.avg(), base),
		})
	}

	names := make([]string, 0, len(cats))
	for c := range cats {
		names = append(names, c)
	}
	sort.Strings(names)
	for _, c := range names {
		o := cats[c]
		bp := domain.BucketPerformance{
			Bucket: c, Files: o.files,
			AvgMs: o.avg(), MinMs: o.min, MaxMs: o.max,
			Status: domain.PerformanceNormal,
		}
		if base, ok := baselines.CategoryBaseline(c); ok {
			bp.Baseline = base
			bp.Status = classify(o.avg(), base)
		}
		rep.Categories = append(rep.Categories, bp)
	}

	for _, t := range timings {
		if domain.Millis(t.Duration) > baselines.SizeBaseline(domain.SizeBucket(t.Bytes)).Max {
			rep.SlowFiles = append(rep.SlowFiles, t)
		}
	}
	sort.SliceStable(rep.SlowFiles, func(i, j int) bool {
		return rep.SlowFiles[i].Duration > rep.SlowFiles[j].Duration
	})
	if len(rep.SlowFiles) > maxSlowFiles {
		rep.SlowFiles = rep.SlowFiles[:maxSlowFiles]
	}

	return rep
}

// UpdateBaselines folds observed timings into a copy of old using running
// averages weighted by sample count. A bucket with no prior samples is
// replaced by the observation. old is not modified.
func UpdateBaselines(old *domain.PerformanceBaselines, timings []domain.FileTiming, now time.Time) *domain.PerformanceBaselines {
	if old == nil {
		old = domain.DefaultBaselines()
	}
	next := &domain.PerformanceBaselines{
		Version:    old.Version,
		UpdatedAt:  now.UTC().Format(domain.TimestampLayout),
		Sizes:      make(map[string]domain.Baseline, len(old.Sizes)),
		Categories: make(map[string]domain.Baseline, len(old.Categories)),
	}
	if next.Version == 0 {
		next.Version = 1
	}
	for k, v := range old.Sizes {
		next.Sizes[k] = v
	}
	for k, v := range old.Categories {
		next.Categories[k] = v
	}

	sizes, cats := observe(timings)
	for k, o := range sizes {
		next.Sizes[k] = fold(next.Sizes[k], *o)
	}
	for k, o := range cats {
		next.Categories[k] = fold(next.Categories[k], *o)
	}
	return next
}

func fold(b domain.Baseline, o observed) domain.Baseline {
	if b.Samples == 0 {
		return domain.Baseline{Avg: o.avg(), Min: o.min, Max: o.max, Samples: o.files}
	}
	n := b.Samples + o.files
	return domain.Baseline{
		Avg:     (b.Avg*float64(b.Samples) + o.sum) / float64(n),
		Min:     math.Min(b.Min, o.min),
		Max:     math.Max(b.Max, o.max),
		Samples: n,
	}
}
