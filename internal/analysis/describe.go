package analysis

import (
	"math"
	"slices"

	"github.com/zulandar/foreman/internal/models"
	"gonum.org/v1/gonum/stat"
)

// ColumnStats is the summary of one numeric column.
type ColumnStats struct {
	Column string
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q25    float64
	Q50    float64
	Q75    float64
	Max    float64
}

// NumericColumns lists the columns summarized by Describe, in output order.
var NumericColumns = []string{"labor_hours", "material_cost", "equipment_cost", "total_cost", "duration_days"}

// Describe summarizes each numeric column. Std is the sample standard
// deviation and is NaN for a single row.
func Describe(records []models.TaskRecord) ([]ColumnStats, error) {
	if len(records) == 0 {
		return nil, ErrEmpty
	}
	out := make([]ColumnStats, 0, len(NumericColumns))
	for _, col := range NumericColumns {
		out = append(out, describeColumn(col, columnValues(records, col)))
	}
	return out, nil
}

func columnValues(records []models.TaskRecord, col string) []float64 {
	xs := make([]float64, len(records))
	for i, r := range records {
		var v int
		switch col {
		case "labor_hours":
			v = r.LaborHours
		case "material_cost":
			v = r.MaterialCost
		case "equipment_cost":
			v = r.EquipmentCost
		case "total_cost":
			v = r.TotalCost
		case "duration_days":
			v = r.DurationDays
		}
		xs[i] = float64(v)
	}
	return xs
}

func describeColumn(name string, xs []float64) ColumnStats {
	sorted := slices.Clone(xs)
	slices.Sort(sorted)

	std := math.NaN()
	if len(xs) > 1 {
		std = stat.StdDev(xs, nil)
	}
	return ColumnStats{
		Column: name,
		Count:  len(xs),
		Mean:   stat.Mean(xs, nil),
		Std:    std,
		Min:    sorted[0],
		Q25:    quantile(sorted, 0.25),
		Q50:    quantile(sorted, 0.50),
		Q75:    quantile(sorted, 0.75),
		Max:    sorted[len(sorted)-1],
	}
}

// quantile interpolates linearly between the closest ranks of sorted at
// rank (n-1)*p.
func quantile(sorted []float64, p float64) float64 {
	h := float64(len(sorted)-1) * p
	lo := int(math.Floor(h))
	hi := min(lo+1, len(sorted)-1)
	return sorted[lo] + (sorted[hi]-sorted[lo])*(h-float64(lo))
}
