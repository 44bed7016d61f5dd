package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/foreman/internal/config"
	"github.com/zulandar/foreman/internal/db"
	"github.com/zulandar/foreman/internal/models"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	gormDB, err := db.Connect(config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"})
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	return gormDB
}

func seedRun(t *testing.T, gormDB *gorm.DB) uint {
	t.Helper()
	start := time.Date(2025, 3, 3, 8, 30, 0, 0, time.UTC)
	tasks := []models.TaskRecord{
		{TaskName: "Foundation", StartDate: start, EndDate: start.AddDate(0, 0, 11), LaborHours: 87, TotalCost: 15716, DurationDays: 11, AssignedTeam: "Team A"},
	}
	teams := []models.TeamSummary{{AssignedTeam: "Team A", LaborHours: 87, TotalCost: 15716}}
	run := db.NewRun(42, start, "data/resource_data.csv", tasks, teams)
	if err := db.RecordRun(gormDB, run); err != nil {
		t.Fatal(err)
	}
	return run.ID
}

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB, string) {
	t.Helper()
	gormDB := testDB(t)
	chartDir := t.TempDir()
	router, err := NewRouter(gormDB, chartDir)
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}
	return router, gormDB, chartDir
}

func get(router http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestStart_NilDB(t *testing.T) {
	err := Start(context.Background(), StartOpts{DB: nil})
	if err == nil {
		t.Fatal("expected error for nil db")
	}
	if !strings.Contains(err.Error(), "db is required") {
		t.Errorf("error = %q, want to contain %q", err.Error(), "db is required")
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	data, err := templatesFS.ReadFile("templates/index.html")
	if err != nil {
		t.Fatalf("index.html not embedded: %v", err)
	}
	if !strings.Contains(string(data), "Foreman") {
		t.Error("index.html does not contain 'Foreman'")
	}
}

func TestHealthz(t *testing.T) {
	router, _, _ := setupRouter(t)
	w := get(router, "/healthz")
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestIndex(t *testing.T) {
	router, gormDB, _ := setupRouter(t)

	w := get(router, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "No runs recorded yet") {
		t.Error("empty index missing placeholder")
	}

	id := seedRun(t, gormDB)
	w = get(router, "/")
	if !strings.Contains(w.Body.String(), "/api/runs/"+itoa(id)) {
		t.Errorf("index missing run link:\n%s", w.Body.String())
	}
}

func TestRunList(t *testing.T) {
	router, gormDB, _ := setupRouter(t)
	seedRun(t, gormDB)
	seedRun(t, gormDB)

	w := get(router, "/api/runs?limit=1")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var runs []models.Run
	if err := json.Unmarshal(w.Body.Bytes(), &runs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("len(runs) = %d, want 1", len(runs))
	}

	if w := get(router, "/api/runs?limit=abc"); w.Code != http.StatusBadRequest {
		t.Errorf("bad limit status = %d, want 400", w.Code)
	}
}

func TestRunDetail(t *testing.T) {
	router, gormDB, _ := setupRouter(t)
	id := seedRun(t, gormDB)

	w := get(router, "/api/runs/"+itoa(id))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var run models.Run
	if err := json.Unmarshal(w.Body.Bytes(), &run); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(run.Tasks) != 1 || run.Tasks[0].TaskName != "Foundation" {
		t.Errorf("run tasks = %+v", run.Tasks)
	}

	if w := get(router, "/api/runs/999"); w.Code != http.StatusNotFound {
		t.Errorf("unknown run status = %d, want 404", w.Code)
	}
	if w := get(router, "/api/runs/abc"); w.Code != http.StatusBadRequest {
		t.Errorf("bad id status = %d, want 400", w.Code)
	}
}

func TestCharts(t *testing.T) {
	router, _, chartDir := setupRouter(t)
	if err := os.WriteFile(filepath.Join(chartDir, "total_cost.png"), []byte("png-bytes"), 0644); err != nil {
		t.Fatal(err)
	}

	w := get(router, "/charts/total_cost.png")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if w.Body.String() != "png-bytes" {
		t.Errorf("body = %q", w.Body.String())
	}

	if w := get(router, "/charts/secrets.txt"); w.Code != http.StatusNotFound {
		t.Errorf("unknown chart status = %d, want 404", w.Code)
	}
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
