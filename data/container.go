// Package data provides thread-safe snapshot storage for the identifier
// export service. The DataContainer uses atomic values so refreshes swap the
// whole snapshot with zero downtime for readers.
package data

import (
	"sync/atomic"
	"time"

	"github.com/openkinase/klifs-ids/interfaces"
	"github.com/openkinase/klifs-ids/klifs/entities"
	"github.com/openkinase/klifs-ids/logging"
)

// Compile-time check to ensure DataContainer implements DataStore
var _ interfaces.DataStore = (*DataContainer)(nil)

// DataContainer holds the current snapshot with atomic pointers
type DataContainer struct {
	records         atomic.Value // []entities.StructureRecord
	recordsMap      atomic.Value // map[int]entities.StructureRecord
	ligands         atomic.Value // []entities.Ligand
	report          atomic.Value // *interfaces.QualityReport
	latestArchive   atomic.Value // string
	lastUpdated     atomic.Value // time.Time
	updating        atomic.Bool
	serverStartTime atomic.Value // time.Time
}

// NewDataContainer creates a new DataContainer with empty data
func NewDataContainer() *DataContainer {
	dc := &DataContainer{}
	dc.records.Store(make([]entities.StructureRecord, 0))
	dc.recordsMap.Store(make(map[int]entities.StructureRecord))
	dc.ligands.Store(make([]entities.Ligand, 0))
	dc.report.Store(&interfaces.QualityReport{})
	dc.latestArchive.Store("")
	dc.lastUpdated.Store(time.Time{})
	dc.serverStartTime.Store(time.Now())
	return dc
}

// Thread-safe getters with type check

// GetRecords returns the current identifier table
func (dc *DataContainer) GetRecords() []entities.StructureRecord {
	if v := dc.records.Load(); v != nil {
		if records, ok := v.([]entities.StructureRecord); ok {
			return records
		}
	}

	logging.Warn("Structure record list is empty or invalid")
	return []entities.StructureRecord{}
}

// GetRecordsMap returns the identifier table keyed by structure ID
func (dc *DataContainer) GetRecordsMap() map[int]entities.StructureRecord {
	if v := dc.recordsMap.Load(); v != nil {
		if recordsMap, ok := v.(map[int]entities.StructureRecord); ok {
			return recordsMap
		}
	}

	logging.Warn("Structure record map is empty or invalid")
	return make(map[int]entities.StructureRecord)
}

// GetLigands returns the current ligand table
func (dc *DataContainer) GetLigands() []entities.Ligand {
	if v := dc.ligands.Load(); v != nil {
		if ligands, ok := v.([]entities.Ligand); ok {
			return ligands
		}
	}

	logging.Warn("Ligand list is empty or invalid")
	return []entities.Ligand{}
}

// GetQualityReport returns the report for the latest snapshot
func (dc *DataContainer) GetQualityReport() *interfaces.QualityReport {
	if v := dc.report.Load(); v != nil {
		if report, ok := v.(*interfaces.QualityReport); ok {
			return report
		}
	}

	logging.Warn("Quality report is empty or invalid")
	return &interfaces.QualityReport{}
}

// GetLatestArchive returns the path of the most recently written archive
func (dc *DataContainer) GetLatestArchive() string {
	if v := dc.latestArchive.Load(); v != nil {
		if path, ok := v.(string); ok {
			return path
		}
	}

	return ""
}

// GetLastUpdated returns the time of the last successful refresh
func (dc *DataContainer) GetLastUpdated() time.Time {
	if v := dc.lastUpdated.Load(); v != nil {
		if lastUpdated, ok := v.(time.Time); ok {
			return lastUpdated
		}
	}

	logging.Warn("Could not get the last updated value")
	return time.Time{}
}

// IsUpdating reports whether a refresh is currently running
func (dc *DataContainer) IsUpdating() bool {
	return dc.updating.Load()
}

// GetServerStartTime returns the time the container was created
func (dc *DataContainer) GetServerStartTime() time.Time {
	if v := dc.serverStartTime.Load(); v != nil {
		if startTime, ok := v.(time.Time); ok {
			return startTime
		}
	}

	return time.Time{}
}

// UpdateData atomically swaps in a new snapshot
func (dc *DataContainer) UpdateData(records []entities.StructureRecord, recordsMap map[int]entities.StructureRecord,
	ligands []entities.Ligand, report *interfaces.QualityReport, archivePath string) {
	dc.records.Store(records)
	dc.recordsMap.Store(recordsMap)
	dc.ligands.Store(ligands)
	dc.report.Store(report)
	dc.latestArchive.Store(archivePath)
	dc.lastUpdated.Store(time.Now())
}

// BeginUpdate marks an update as started; returns false if one is running
func (dc *DataContainer) BeginUpdate() bool {
	return dc.updating.CompareAndSwap(false, true)
}

// EndUpdate marks the running update as finished
func (dc *DataContainer) EndUpdate() {
	dc.updating.Store(false)
}
