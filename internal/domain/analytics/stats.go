// Package analytics derives descriptive statistics, trends, outliers,
// forecasts, and a risk classification from compliance history.
//
// Every function accepts short input. With fewer than two data points the
// result is a neutral value (zero, an empty slice, or the single current
// value) rather than an error: a young history is a normal condition.
package analytics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Mean returns the arithmetic mean, or 0 for an empty series.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// Median returns the middle value of a sorted copy, averaging the two middle
// values for even lengths. 0 for an empty series.
func Median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	s := sortedCopy(values)
	if n%2 == 1 {
		return s[n/2]
	}
	return (s[n/2-1] + s[n/2]) / 2
}

// StdDev returns the population standard deviation (square root of the mean
// of squared deviations). 0 for fewer than two points.
func StdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	_, std := stat.PopMeanStdDev(values, nil)
	return std
}

// Trend returns the least-squares slope of values against their index
// 0..n-1. 0 for fewer than two points.
func Trend(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	_, beta := stat.LinearRegression(indexSeries(len(values)), values, nil, false)
	if math.IsNaN(beta) {
		return 0
	}
	return beta
}

// Quartiles returns Q1 and Q3 of a sorted copy using the empirical CDF.
// Both are 0 for an empty series.
func Quartiles(values []float64) (q1, q3 float64) {
	if len(values) == 0 {
		return 0, 0
	}
	s := sortedCopy(values)
	return stat.Quantile(0.25, stat.Empirical, s, nil), stat.Quantile(0.75, stat.Empirical, s, nil)
}

// Outliers returns the indexes of values outside [Q1-1.5*IQR, Q3+1.5*IQR],
// in input order. Series shorter than four points never have outliers.
func Outliers(values []float64) []int {
	out := []int{}
	if len(values) < 4 {
		return out
	}
	q1, q3 := Quartiles(values)
	iqr := q3 - q1
	lower, upper := q1-1.5*iqr, q3+1.5*iqr
	for i, v := range values {
		if v < lower || v > upper {
			out = append(out, i)
		}
	}
	return out
}

// Correlation returns the Pearson coefficient of two equal-length series.
// It is 0 when the lengths differ, when there are fewer than two points, or
// when either series has zero variance.
func Correlation(x, y []float64) float64 {
	if len(x) != len(y) || len(x) < 2 {
		return 0
	}
	if StdDev(x) == 0 || StdDev(y) == 0 {
		return 0
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) {
		return 0
	}
	return r
}

// Confidence is max(0, 100 - 2*stddev(last five points)). It is a simple
// volatility heuristic, not a statistical confidence interval. 0 for fewer
// than two points.
func Confidence(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	return math.Max(0, 100-2*StdDev(lastN(values, 5)))
}

// Predict forecasts current + slope*daysAhead, clamped to [0,100], treating
// each history entry as one day. With fewer than two points it returns the
// current value (0 when empty).
func Predict(values []float64, daysAhead int) float64 {
	if len(values) == 0 {
		return 0
	}
	current := values[len(values)-1]
	return clampScore(current + Trend(values)*float64(daysAhead))
}

// ClassifyPattern labels a slope increasing, decreasing, or stable at ±0.5.
func ClassifyPattern(slope float64) string {
	switch {
	case slope > 0.5:
		return "increasing"
	case slope < -0.5:
		return "decreasing"
	default:
		return "stable"
	}
}

// ComplianceDirection labels a score slope improving, declining, or stable
// at ±0.1.
func ComplianceDirection(slope float64) string {
	switch {
	case slope > 0.1:
		return "improving"
	case slope < -0.1:
		return "declining"
	default:
		return "stable"
	}
}

func sortedCopy(values []float64) []float64 {
	s := append([]float64(nil), values...)
	sort.Float64s(s)
	return s
}

func indexSeries(n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = float64(i)
	}
	return x
}

func lastN(values []float64, n int) []float64 {
	if len(values) <= n {
		return values
	}
	return values[len(values)-n:]
}

func clampScore(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}
