package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/openkinase/klifs-ids/data"
	"github.com/openkinase/klifs-ids/interfaces"
	"github.com/openkinase/klifs-ids/klifs/entities"
)

func newTestRouter(dc *data.DataContainer) *chi.Mux {
	h := NewHTTPHandler(dc)

	router := chi.NewRouter()
	router.Get("/structures", h.ServeStructures)
	router.Get("/structures/{structureId}", h.FindStructureByID)
	router.Get("/ligands", h.ServeLigands)
	router.Get("/quality", h.ServeQuality)
	router.Get("/health", h.HealthCheck)
	return router
}

func seedContainer() *data.DataContainer {
	dc := data.NewDataContainer()

	records := []entities.StructureRecord{
		{StructureID: 1, PdbID: "3dko", AlternateModel: "A", Chain: "A", KinaseName: "EphA7", KinaseID: 415, LigandExpoID: "SKE"},
		{StructureID: 5, PdbID: "3mj1", AlternateModel: "-", Chain: "A", KinaseName: "ITK", KinaseID: 474, LigandExpoID: "-"},
	}
	recordsMap := map[int]entities.StructureRecord{
		1: records[0],
		5: records[1],
	}
	ligands := []entities.Ligand{{LigandID: 47, PdbCode: "SKE"}}
	report := &interfaces.QualityReport{RunID: "run-1", StructureCount: 2, LigandCount: 1}

	dc.UpdateData(records, recordsMap, ligands, report, "")
	return dc
}

func TestServeStructures(t *testing.T) {
	router := newTestRouter(seedContainer())

	req := httptest.NewRequest(http.MethodGet, "/structures", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var records []entities.StructureRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &records); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("expected 2 records, got %d", len(records))
	}
	if records[1].AlternateModel != "-" {
		t.Errorf("expected literal sentinel, got %q", records[1].AlternateModel)
	}
}

func TestServeStructuresUnavailableBeforeFirstLoad(t *testing.T) {
	router := newTestRouter(data.NewDataContainer())

	req := httptest.NewRequest(http.MethodGet, "/structures", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 before first load, got %d", rec.Code)
	}
}

func TestFindStructureByID(t *testing.T) {
	router := newTestRouter(seedContainer())

	tests := []struct {
		name     string
		path     string
		wantCode int
	}{
		{"existing record", "/structures/1", http.StatusOK},
		{"missing record", "/structures/999", http.StatusNotFound},
		{"non-numeric id", "/structures/abc", http.StatusBadRequest},
		{"negative id", "/structures/-1", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Errorf("expected %d, got %d", tt.wantCode, rec.Code)
			}
		})
	}
}

func TestFindStructureByIDBody(t *testing.T) {
	router := newTestRouter(seedContainer())

	req := httptest.NewRequest(http.MethodGet, "/structures/1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var record entities.StructureRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &record); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if record.PdbID != "3dko" || record.KinaseName != "EphA7" {
		t.Errorf("unexpected record: %+v", record)
	}
}

func TestServeQuality(t *testing.T) {
	router := newTestRouter(seedContainer())

	req := httptest.NewRequest(http.MethodGet, "/quality", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var report interfaces.QualityReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("failed to decode report: %v", err)
	}
	if report.RunID != "run-1" {
		t.Errorf("unexpected report: %+v", report)
	}
}

func TestServeQualityUnavailableBeforeFirstRun(t *testing.T) {
	router := newTestRouter(data.NewDataContainer())

	req := httptest.NewRequest(http.MethodGet, "/quality", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 before first run, got %d", rec.Code)
	}
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(seedContainer())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode health response: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("expected healthy status, got %v", body["status"])
	}
	if body["structure_count"] != float64(2) {
		t.Errorf("expected structure_count 2, got %v", body["structure_count"])
	}
}

func TestHealthCheckLoadingBeforeFirstLoad(t *testing.T) {
	router := newTestRouter(data.NewDataContainer())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode health response: %v", err)
	}
	if body["status"] != "loading" {
		t.Errorf("expected loading status, got %v", body["status"])
	}
}
