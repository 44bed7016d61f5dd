// Package synth generates the raw construction task table.
package synth

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/zulandar/foreman/internal/config"
	"github.com/zulandar/foreman/internal/models"
)

// Params describes the table to synthesize.
type Params struct {
	Tasks         []string
	Teams         []string
	CadenceDays   int
	DurationDays  config.Range
	LaborHours    config.Range
	MaterialCost  config.Range
	EquipmentCost config.Range
}

// ParamsFromConfig extracts synthesis parameters from cfg.
func ParamsFromConfig(cfg *config.Config) Params {
	return Params{
		Tasks:         cfg.Tasks,
		Teams:         cfg.Teams,
		CadenceDays:   cfg.CadenceDays,
		DurationDays:  cfg.DurationDays,
		LaborHours:    cfg.LaborHours,
		MaterialCost:  cfg.MaterialCost,
		EquipmentCost: cfg.EquipmentCost,
	}
}

// NewRand returns the generator used for a given seed. Both PCG words are
// seeded with the same value.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// Generate builds one TaskRecord per task. Task i starts CadenceDays*i days
// after anchor. Draws happen column by column (all end offsets, then labor,
// material, equipment) so each column is reproducible for a given seed.
func Generate(rng *rand.Rand, anchor time.Time, p Params) ([]models.TaskRecord, error) {
	if len(p.Tasks) == 0 {
		return nil, fmt.Errorf("synth: no tasks")
	}
	if len(p.Teams) != len(p.Tasks) {
		return nil, fmt.Errorf("synth: %d teams for %d tasks", len(p.Teams), len(p.Tasks))
	}

	n := len(p.Tasks)
	records := make([]models.TaskRecord, n)
	for i, name := range p.Tasks {
		start := anchor.AddDate(0, 0, p.CadenceDays*i)
		records[i] = models.TaskRecord{
			TaskName:     name,
			StartDate:    start,
			AssignedTeam: p.Teams[i],
		}
	}
	for i := range records {
		records[i].EndDate = records[i].StartDate.AddDate(0, 0, draw(rng, p.DurationDays))
	}
	for i := range records {
		records[i].LaborHours = draw(rng, p.LaborHours)
	}
	for i := range records {
		records[i].MaterialCost = draw(rng, p.MaterialCost)
	}
	for i := range records {
		records[i].EquipmentCost = draw(rng, p.EquipmentCost)
	}
	return records, nil
}

// draw returns a uniform integer in [r.Min, r.Max).
func draw(rng *rand.Rand, r config.Range) int {
	return r.Min + rng.IntN(r.Max-r.Min)
}
