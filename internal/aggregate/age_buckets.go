package aggregate

import "github.com/gyeh/clinstats/internal/model"

// AgeMetric selects the per-bucket aggregation semantics.
type AgeMetric string

const (
	// MetricTotal sums medication counts per bucket: prescription volume
	// per age group. This is the default, matching the business question
	// "which age groups are prescribed the most medication".
	MetricTotal AgeMetric = "total"
	// MetricMean reports mean medications per encounter in the bucket.
	MetricMean AgeMetric = "mean"
)

// ageBucket is a right-closed age interval.
type ageBucket struct {
	label  string
	lo, hi int
}

// Fixed buckets covering [0,100]. Boundary ages belong to the lower
// bucket; the last bucket is labeled open-ended but caps at 100, and
// anything outside [0,100] is excluded as out of range.
var ageBuckets = []ageBucket{
	{label: "0-18", lo: 0, hi: 18},
	{label: "19-35", lo: 19, hi: 35},
	{label: "36-50", lo: 36, hi: 50},
	{label: "51-65", lo: 51, hi: 65},
	{label: "66+", lo: 66, hi: 100},
}

// BucketLabels returns the bucket labels in canonical order.
func BucketLabels() []string {
	labels := make([]string, len(ageBuckets))
	for i, b := range ageBuckets {
		labels[i] = b.label
	}
	return labels
}

// MedicationsByAge aggregates medication counts into the fixed age
// buckets, in canonical bucket order, plus the number of rows excluded
// for an out-of-range age. Empty buckets report 0 rather than
// disappearing.
func MedicationsByAge(rows []model.EnrichedEncounter, metric AgeMetric) ([]BucketValue, int64) {
	sums := make([]int64, len(ageBuckets))
	encounters := make([]int64, len(ageBuckets))
	var outOfRange int64

	for i := range rows {
		idx := bucketIndex(rows[i].AgeAtEncounter)
		if idx < 0 {
			outOfRange++
			continue
		}
		sums[idx] += int64(rows[i].MedicationCount)
		encounters[idx]++
	}

	out := make([]BucketValue, len(ageBuckets))
	for i, b := range ageBuckets {
		v := float64(sums[i])
		if metric == MetricMean {
			if encounters[i] > 0 {
				v = float64(sums[i]) / float64(encounters[i])
			} else {
				v = 0
			}
		}
		out[i] = BucketValue{Bucket: b.label, Value: v}
	}
	return out, outOfRange
}

// bucketIndex returns the bucket for an age, or -1 when out of range.
func bucketIndex(age int) int {
	for i, b := range ageBuckets {
		if age >= b.lo && age <= b.hi {
			return i
		}
	}
	return -1
}
