package accumulator

import (
	"math"

	"github.com/uyouii/groupstats/model"
	"github.com/uyouii/groupstats/normal"
	"github.com/uyouii/groupstats/utils"
	"gonum.org/v1/gonum/floats"
)

// FieldStatistics holds the running sums of one field inside one group and
// the statistics derived from them on Finalize.
type FieldStatistics struct {
	Name         string
	Count        int
	Sum          float64
	SumOfSquares float64

	// derived, NaN until Finalize succeeds
	Mean               float64
	Variance           float64
	StdDeviation       float64
	ConfidenceInterval float64

	values    []float64
	finalized bool
	level     float64
}

func NewFieldStatistics(name string) *FieldStatistics {
	return &FieldStatistics{
		Name:               name,
		Mean:               math.NaN(),
		Variance:           math.NaN(),
		StdDeviation:       math.NaN(),
		ConfidenceInterval: math.NaN(),
	}
}

// AddValue folds value into the running sums. NaN is not a value and is skipped.
func (f *FieldStatistics) AddValue(value float64) {
	if math.IsNaN(value) {
		return
	}
	f.values = append(f.values, value)
	f.Count++
	f.Sum += value
	f.SumOfSquares += value * value
	f.finalized = false
}

func (f *FieldStatistics) Values() []float64 {
	return f.values
}

func (f *FieldStatistics) Finalized() bool {
	return f.finalized
}

// Finalize derives mean, sample variance, standard deviation and the
// confidence interval half-width. The variance is the two-pass sum of squared
// deviations over the stored values, not Sum and SumOfSquares.
func (f *FieldStatistics) Finalize(key model.Key, confidence float64, q normal.Quantiler) error {
	if f.finalized && f.level == confidence {
		return nil
	}
	if f.Count == 0 {
		return errInsufficient(key, f)
	}
	mean := f.Sum / float64(f.Count)
	f.Mean = mean
	if f.Count < 2 {
		return errInsufficient(key, f)
	}

	deviations := make([]float64, len(f.values))
	for i, v := range f.values {
		deviations[i] = (v - mean) * (v - mean)
	}
	variance := floats.Sum(deviations) / float64(f.Count-1)
	stdDev := math.Sqrt(variance)

	criticalZ := normal.CriticalZ(q, confidence)

	f.Variance = variance
	f.StdDeviation = stdDev
	f.ConfidenceInterval = criticalZ * stdDev / math.Sqrt(float64(f.Count))
	f.finalized = true
	f.level = confidence
	return nil
}

func (f *FieldStatistics) FormattedMean() string {
	return utils.FormatFloat(f.Mean)
}

func (f *FieldStatistics) FormattedConfidenceInterval() string {
	return utils.FormatFloat(f.ConfidenceInterval)
}

func (f *FieldStatistics) Summary() model.FieldSummary {
	return model.FieldSummary{
		Field:              f.Name,
		Count:              f.Count,
		Sum:                f.Sum,
		SumOfSquares:       f.SumOfSquares,
		Mean:               f.Mean,
		Variance:           f.Variance,
		StdDeviation:       f.StdDeviation,
		ConfidenceInterval: f.ConfidenceInterval,
		Bounds: model.ConfidenceInterval{
			Lower: f.Mean - f.ConfidenceInterval,
			Upper: f.Mean + f.ConfidenceInterval,
			Level: f.level,
		},
	}
}
