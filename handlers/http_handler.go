// Package handlers provides the HTTP handlers for the identifier export
// service: snapshot listings, single-record lookup, the quality report,
// archive download and health checks.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/openkinase/klifs-ids/interfaces"
	"github.com/openkinase/klifs-ids/logging"
)

// HTTPHandler serves read access to the current snapshot
type HTTPHandler struct {
	dataStore interfaces.DataStore
}

// NewHTTPHandler creates a new HTTP handler with an injected data store
func NewHTTPHandler(dataStore interfaces.DataStore) *HTTPHandler {
	return &HTTPHandler{dataStore: dataStore}
}

// RespondWithJSON writes a JSON response
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
	w.WriteHeader(code)
	if _, err := w.Write(data); err != nil {
		logging.Warn("Failed to write response", "error", err)
	}
}

// RespondWithError writes a JSON error response
func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, map[string]interface{}{
		"error":   http.StatusText(code),
		"message": message,
		"code":    code,
	})
}

// ServeStructures serves the full projected identifier table
func (h *HTTPHandler) ServeStructures(w http.ResponseWriter, r *http.Request) {
	records := h.dataStore.GetRecords()
	if len(records) == 0 {
		RespondWithError(w, http.StatusServiceUnavailable, "Snapshot not loaded yet")
		return
	}

	RespondWithJSON(w, http.StatusOK, records)
}

// FindStructureByID serves a single record by structure ID
func (h *HTTPHandler) FindStructureByID(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "structureId")

	structureID, err := strconv.Atoi(idParam)
	if err != nil || structureID <= 0 {
		RespondWithError(w, http.StatusBadRequest, "structure ID must be a positive integer")
		return
	}

	record, ok := h.dataStore.GetRecordsMap()[structureID]
	if !ok {
		RespondWithError(w, http.StatusNotFound, fmt.Sprintf("no structure with ID %d", structureID))
		return
	}

	RespondWithJSON(w, http.StatusOK, record)
}

// ServeLigands serves the ligand identifier table
func (h *HTTPHandler) ServeLigands(w http.ResponseWriter, r *http.Request) {
	ligands := h.dataStore.GetLigands()
	if len(ligands) == 0 {
		RespondWithError(w, http.StatusServiceUnavailable, "Snapshot not loaded yet")
		return
	}

	RespondWithJSON(w, http.StatusOK, ligands)
}

// ServeQuality serves the duplicate/ambiguity report of the latest snapshot
func (h *HTTPHandler) ServeQuality(w http.ResponseWriter, r *http.Request) {
	report := h.dataStore.GetQualityReport()
	if report.RunID == "" {
		RespondWithError(w, http.StatusServiceUnavailable, "No export run has completed yet")
		return
	}

	RespondWithJSON(w, http.StatusOK, report)
}

// DownloadLatestArchive serves the most recent csv.zip archive
func (h *HTTPHandler) DownloadLatestArchive(w http.ResponseWriter, r *http.Request) {
	archivePath := h.dataStore.GetLatestArchive()
	if archivePath == "" {
		RespondWithError(w, http.StatusNotFound, "No archive has been written yet")
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	http.ServeFile(w, r, archivePath)
}

// HealthCheck serves the service health summary
func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	lastUpdated := h.dataStore.GetLastUpdated()
	uptime := time.Since(h.dataStore.GetServerStartTime())

	status := "healthy"
	if lastUpdated.IsZero() {
		status = "loading"
	} else if time.Since(lastUpdated) > 26*time.Hour {
		status = "stale"
	}

	RespondWithJSON(w, http.StatusOK, map[string]any{
		"status":          status,
		"structure_count": len(h.dataStore.GetRecords()),
		"ligand_count":    len(h.dataStore.GetLigands()),
		"last_updated":    lastUpdated,
		"updating":        h.dataStore.IsUpdating(),
		"uptime":          formatUptimeHuman(uptime),
		"memory_usage_mb": int(m.Alloc / 1024 / 1024),
	})
}

// formatUptimeHuman formats duration into a human-readable string
func formatUptimeHuman(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	var parts []string

	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 || days > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 || hours > 0 || days > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	parts = append(parts, fmt.Sprintf("%ds", seconds))

	return strings.Join(parts, " ")
}
