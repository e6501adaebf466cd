// Package scheduler refreshes the identifier snapshot on a fixed schedule and
// monitors data freshness. Refreshes run the same export pipeline as the
// one-shot command and swap the result into the data container.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/openkinase/klifs-ids/interfaces"
	"github.com/openkinase/klifs-ids/klifs/entities"
	"github.com/openkinase/klifs-ids/logging"
)

// Compile-time check to ensure Scheduler implements the Scheduler interface
var _ interfaces.Scheduler = (*Scheduler)(nil)

// Scheduler handles snapshot refreshes and freshness monitoring
type Scheduler struct {
	dataStore interfaces.DataStore
	exporter  interfaces.Exporter
	scheduler *gocron.Scheduler
}

// NewScheduler creates a new scheduler instance with injected dependencies
func NewScheduler(dataStore interfaces.DataStore, exporter interfaces.Exporter) *Scheduler {
	return &Scheduler{
		dataStore: dataStore,
		exporter:  exporter,
		scheduler: gocron.NewScheduler(time.Local),
	}
}

// Start performs the initial export and schedules daily refreshes
func (s *Scheduler) Start() error {
	// Initial load
	if err := s.refresh(); err != nil {
		logging.Error("Failed to perform initial export", "error", err)
		return fmt.Errorf("initial export failed: %w", err)
	}

	// KLIFS publishes new structures continuously; once a day is plenty
	_, err := s.scheduler.Every(1).Days().At("06:00").Do(func() {
		if err := s.refresh(); err != nil {
			logging.Error("Failed to refresh snapshot", "error", err)
		}
	})

	if err != nil {
		logging.Error("Failed to schedule refreshes", "error", err)
		return fmt.Errorf("failed to schedule refreshes: %w", err)
	}

	s.scheduler.StartAsync()

	s.startFreshnessMonitoring()

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// refresh runs one export and swaps the snapshot
func (s *Scheduler) refresh() error {
	// Prevent concurrent refreshes
	if !s.dataStore.BeginUpdate() {
		logging.Info("Refresh already in progress, skipping...")
		return nil
	}
	defer s.dataStore.EndUpdate()

	start := time.Now()

	result, err := s.exporter.Run(context.Background())
	if err != nil {
		return fmt.Errorf("export run failed: %w", err)
	}

	recordsMap := make(map[int]entities.StructureRecord, len(result.Records))
	for i := range result.Records {
		recordsMap[result.Records[i].StructureID] = result.Records[i]
	}

	s.dataStore.UpdateData(result.Records, recordsMap, result.Ligands, result.Report, result.ArchivePath)

	elapsed := time.Since(start)
	logging.Info("Snapshot refresh completed",
		"run_id", result.RunID,
		"duration", elapsed.String(),
		"structure_count", len(result.Records),
	)

	return nil
}

// startFreshnessMonitoring warns when the snapshot goes stale
func (s *Scheduler) startFreshnessMonitoring() {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			lastUpdate := s.dataStore.GetLastUpdated()
			if time.Since(lastUpdate) > 26*time.Hour {
				logging.Warn("Snapshot hasn't been refreshed in over 26 hours")
			}
		}
	}()
}
