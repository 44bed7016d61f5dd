// Package table reads and writes the flat CSV files produced by a run.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/zulandar/foreman/internal/models"
)

// TimeLayout is the text encoding used for date columns.
const TimeLayout = "2006-01-02 15:04:05.000000"

// parseLayouts are tried in order when reading date columns.
var parseLayouts = []string{
	TimeLayout,
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
	"2006-01-02",
}

// ErrMalformed is returned when a CSV file does not match the expected shape.
var ErrMalformed = errors.New("malformed table")

// Column headers.
var (
	RawHeader      = []string{"task_name", "start_date", "end_date", "labor_hours", "material_cost", "equipment_cost", "assigned_team"}
	AnalysisHeader = append(append([]string(nil), RawHeader...), "total_cost", "duration_days")
	TeamHeader     = []string{"assigned_team", "labor_hours", "total_cost"}
)

// FormatTime encodes t for a date column.
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}

// ParseTime decodes a date column value. Values without a zone are read as UTC.
func ParseTime(s string) (time.Time, error) {
	for _, layout := range parseLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unrecognized timestamp %q", ErrMalformed, s)
}

// WriteRaw writes the seven raw columns of records to path, creating the
// parent directory if needed. Existing content is replaced.
func WriteRaw(path string, records []models.TaskRecord) error {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = rawRow(r)
	}
	return writeCSV(path, RawHeader, rows)
}

// WriteAnalysis writes the raw columns plus total_cost and duration_days.
func WriteAnalysis(path string, records []models.TaskRecord) error {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = append(rawRow(r), strconv.Itoa(r.TotalCost), strconv.Itoa(r.DurationDays))
	}
	return writeCSV(path, AnalysisHeader, rows)
}

// WriteTeamSummary writes one row per team.
func WriteTeamSummary(path string, teams []models.TeamSummary) error {
	rows := make([][]string, len(teams))
	for i, t := range teams {
		rows[i] = []string{t.AssignedTeam, strconv.Itoa(t.LaborHours), strconv.Itoa(t.TotalCost)}
	}
	return writeCSV(path, TeamHeader, rows)
}

// ReadRaw loads a raw table written by WriteRaw. Extra trailing columns (as
// in an analysis file) are ignored; derived fields are left zero.
func ReadRaw(path string) ([]models.TaskRecord, error) {
	rows, err := readCSV(path, RawHeader)
	if err != nil {
		return nil, err
	}
	records := make([]models.TaskRecord, 0, len(rows))
	for i, row := range rows {
		r, err := parseRawRow(row)
		if err != nil {
			return nil, fmt.Errorf("table: %s row %d: %w", path, i+1, err)
		}
		records = append(records, r)
	}
	return records, nil
}

// ReadTeamSummary loads a file written by WriteTeamSummary.
func ReadTeamSummary(path string) ([]models.TeamSummary, error) {
	rows, err := readCSV(path, TeamHeader)
	if err != nil {
		return nil, err
	}
	teams := make([]models.TeamSummary, 0, len(rows))
	for i, row := range rows {
		labor, err1 := strconv.Atoi(row[1])
		cost, err2 := strconv.Atoi(row[2])
		if err := errors.Join(err1, err2); err != nil {
			return nil, fmt.Errorf("table: %s row %d: %w: %v", path, i+1, ErrMalformed, err)
		}
		teams = append(teams, models.TeamSummary{AssignedTeam: row[0], LaborHours: labor, TotalCost: cost})
	}
	return teams, nil
}

// RoundTrip writes records to path and reads them back as a fresh table.
func RoundTrip(path string, records []models.TaskRecord) ([]models.TaskRecord, error) {
	if err := WriteRaw(path, records); err != nil {
		return nil, err
	}
	return ReadRaw(path)
}

func rawRow(r models.TaskRecord) []string {
	return []string{
		r.TaskName,
		FormatTime(r.StartDate),
		FormatTime(r.EndDate),
		strconv.Itoa(r.LaborHours),
		strconv.Itoa(r.MaterialCost),
		strconv.Itoa(r.EquipmentCost),
		r.AssignedTeam,
	}
}

func parseRawRow(row []string) (models.TaskRecord, error) {
	start, err := ParseTime(row[1])
	if err != nil {
		return models.TaskRecord{}, fmt.Errorf("start_date: %w", err)
	}
	end, err := ParseTime(row[2])
	if err != nil {
		return models.TaskRecord{}, fmt.Errorf("end_date: %w", err)
	}
	ints := make([]int, 3)
	for j, col := range []int{3, 4, 5} {
		v, err := strconv.Atoi(row[col])
		if err != nil {
			return models.TaskRecord{}, fmt.Errorf("%w: %s: %v", ErrMalformed, RawHeader[col], err)
		}
		ints[j] = v
	}
	return models.TaskRecord{
		TaskName:      row[0],
		StartDate:     start,
		EndDate:       end,
		LaborHours:    ints[0],
		MaterialCost:  ints[1],
		EquipmentCost: ints[2],
		AssignedTeam:  row[6],
	}, nil
}

func writeCSV(path string, header []string, rows [][]string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("table: create dir %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("table: create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("table: write %s: %w", path, err)
	}
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("table: write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("table: close %s: %w", path, err)
	}
	return nil
}

// readCSV returns the data rows of path after checking that its header
// starts with want. Every row is guaranteed to have at least len(want) fields.
func readCSV(path string, want []string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("table: open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	all, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("table: read %s: %w: %v", path, ErrMalformed, err)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("table: %s: %w: missing header", path, ErrMalformed)
	}
	header := all[0]
	if len(header) < len(want) {
		return nil, fmt.Errorf("table: %s: %w: header has %d columns, want at least %d", path, ErrMalformed, len(header), len(want))
	}
	for i, name := range want {
		if header[i] != name {
			return nil, fmt.Errorf("table: %s: %w: column %d is %q, want %q", path, ErrMalformed, i, header[i], name)
		}
	}
	return all[1:], nil
}
