package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const fullYAML = `
seed: 7
labor_rate: 65
cadence_days: 3
tasks: [Survey, Excavation]
teams: [Crew 1, Crew 2]
duration_days: {min: 2, max: 4}
labor_hours: {min: 10, max: 20}
material_cost: {min: 100, max: 200}
equipment_cost: {min: 30, max: 40}
paths:
  raw: out/raw.csv
  analysis: out/analysis.csv
  team_summary: out/teams.csv
charts:
  dir: out/charts
  width: 10
  height: 6
database:
  driver: mysql
  dsn: root@tcp(127.0.0.1:3306)/foreman?parseTime=true
notify:
  slack_webhook: https://hooks.slack.com/services/T/B/X
  discord_webhook: https://discord.com/api/webhooks/123/abc
`

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default() does not validate: %v", err)
	}
	if cfg.Seed != 42 {
		t.Errorf("Seed = %d, want 42", cfg.Seed)
	}
	if cfg.LaborRate != 50 {
		t.Errorf("LaborRate = %d, want 50", cfg.LaborRate)
	}
	if strings.Join(cfg.Tasks, ",") != "Foundation,Framing,Plumbing,Electrical,Roofing,Finishing" {
		t.Errorf("Tasks = %v", cfg.Tasks)
	}
	if strings.Join(cfg.Teams, ",") != "Team A,Team B,Team C,Team A,Team B,Team C" {
		t.Errorf("Teams = %v", cfg.Teams)
	}
	if cfg.DurationDays != (Range{5, 15}) {
		t.Errorf("DurationDays = %+v, want {5 15}", cfg.DurationDays)
	}
	if cfg.LaborHours != (Range{50, 200}) {
		t.Errorf("LaborHours = %+v, want {50 200}", cfg.LaborHours)
	}
	if cfg.MaterialCost != (Range{1000, 10000}) {
		t.Errorf("MaterialCost = %+v, want {1000 10000}", cfg.MaterialCost)
	}
	if cfg.EquipmentCost != (Range{500, 5000}) {
		t.Errorf("EquipmentCost = %+v, want {500 5000}", cfg.EquipmentCost)
	}
	want := Paths{
		Raw:         "data/resource_data.csv",
		Analysis:    "data/resource_analysis.csv",
		TeamSummary: "data/team_summary.csv",
	}
	if cfg.Paths != want {
		t.Errorf("Paths = %+v, want %+v", cfg.Paths, want)
	}
	if cfg.Database.Driver != "sqlite" || cfg.Database.Path != "data/foreman.db" {
		t.Errorf("Database = %+v", cfg.Database)
	}
}

func TestDefault_TasksNotShared(t *testing.T) {
	cfg := Default()
	cfg.Tasks[0] = "Changed"
	if DefaultTasks[0] != "Foundation" {
		t.Fatalf("mutating a Default() config changed DefaultTasks: %v", DefaultTasks)
	}
}

func TestParse_FullConfig(t *testing.T) {
	cfg, err := Parse([]byte(fullYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Seed != 7 {
		t.Errorf("Seed = %d, want 7", cfg.Seed)
	}
	if cfg.LaborRate != 65 {
		t.Errorf("LaborRate = %d, want 65", cfg.LaborRate)
	}
	if cfg.CadenceDays != 3 {
		t.Errorf("CadenceDays = %d, want 3", cfg.CadenceDays)
	}
	if len(cfg.Tasks) != 2 || cfg.Tasks[1] != "Excavation" {
		t.Errorf("Tasks = %v", cfg.Tasks)
	}
	if cfg.DurationDays != (Range{2, 4}) {
		t.Errorf("DurationDays = %+v", cfg.DurationDays)
	}
	if cfg.Paths.TeamSummary != "out/teams.csv" {
		t.Errorf("Paths.TeamSummary = %q", cfg.Paths.TeamSummary)
	}
	if cfg.Charts.Width != 10 || cfg.Charts.Height != 6 || cfg.Charts.Dir != "out/charts" {
		t.Errorf("Charts = %+v", cfg.Charts)
	}
	if cfg.Database.Driver != "mysql" {
		t.Errorf("Database.Driver = %q, want mysql", cfg.Database.Driver)
	}
	if cfg.Database.Path != "" {
		t.Errorf("Database.Path = %q, want empty for mysql", cfg.Database.Path)
	}
	if cfg.Notify.SlackWebhook == "" {
		t.Error("Notify.SlackWebhook is empty")
	}
	if cfg.Notify.DiscordWebhook != "https://discord.com/api/webhooks/123/abc" {
		t.Errorf("Notify.DiscordWebhook = %q", cfg.Notify.DiscordWebhook)
	}
}

func TestParse_EmptyAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte("{}"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Seed != DefaultSeed {
		t.Errorf("Seed = %d, want %d", cfg.Seed, DefaultSeed)
	}
	if len(cfg.Tasks) != 6 {
		t.Errorf("len(Tasks) = %d, want 6", len(cfg.Tasks))
	}
}

func TestParse_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "teams mismatch",
			yaml: "tasks: [A, B]\nteams: [X]\n",
			want: "teams has 1 entries",
		},
		{
			name: "duplicate task",
			yaml: "tasks: [A, A]\nteams: [X, Y]\n",
			want: `"A" is a duplicate`,
		},
		{
			name: "inverted range",
			yaml: "labor_hours: {min: 10, max: 5}\n",
			want: "labor_hours: min (10) must be less than max (5)",
		},
		{
			name: "unknown driver",
			yaml: "database: {driver: postgres}\n",
			want: `database.driver "postgres" is not supported`,
		},
		{
			name: "mysql without dsn",
			yaml: "database: {driver: mysql}\n",
			want: "database.dsn is required",
		},
		{
			name: "negative labor rate",
			yaml: "labor_rate: -1\n",
			want: "labor_rate must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want to contain %q", err, tt.want)
			}
			if !strings.HasPrefix(err.Error(), "config: validation failed") {
				t.Errorf("error = %q, want config: validation failed prefix", err)
			}
		})
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("tasks: [unterminated"))
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "config: parse") {
		t.Errorf("error = %q, want config: parse prefix", err)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foreman.yaml")
	if err := os.WriteFile(path, []byte(fullYAML), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Seed != 7 {
		t.Errorf("Seed = %d, want 7", cfg.Seed)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadOrDefault: %v", err)
	}
	if cfg.Seed != DefaultSeed {
		t.Errorf("Seed = %d, want default", cfg.Seed)
	}
}

func TestLoadOrDefault_InvalidFileIsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foreman.yaml")
	if err := os.WriteFile(path, []byte("labor_rate: -5\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOrDefault(path); err == nil {
		t.Fatal("expected validation error")
	}
}
