// Package export persists the projected identifier table as a dated,
// ZIP-compressed CSV archive and verifies it by reading it back.
package export

import (
	"archive/zip"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/openkinase/klifs-ids/klifs/entities"
	"github.com/openkinase/klifs-ids/logging"
)

// Columns is the fixed column order of the archive. There is no row-index
// column; the "-" placeholders are written as literal strings.
var Columns = []string{
	"structure_id",
	"pdb_id",
	"alternate_model",
	"chain",
	"kinase_name",
	"kinase_id",
	"ligand_expo_id",
}

// ArchiveName returns the dated archive file name, e.g.
// klifs_ids.20260828.csv.zip
func ArchiveName(date time.Time) string {
	return fmt.Sprintf("klifs_ids.%s.csv.zip", date.Format("20060102"))
}

// WriteArchive writes the records to a ZIP archive holding a single CSV
// entry named after the archive without the .zip suffix.
func WriteArchive(path string, records []entities.StructureRecord) error {
	outFile, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to create archive %s: %w", path, err)
	}

	zipWriter := zip.NewWriter(outFile)

	entryName := strings.TrimSuffix(filepath.Base(path), ".zip")
	entry, err := zipWriter.Create(entryName)
	if err != nil {
		closeQuietly(zipWriter, outFile)
		return fmt.Errorf("failed to create archive entry %s: %w", entryName, err)
	}

	csvWriter := csv.NewWriter(entry)
	if err := csvWriter.Write(Columns); err != nil {
		closeQuietly(zipWriter, outFile)
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, record := range records {
		row := []string{
			strconv.Itoa(record.StructureID),
			record.PdbID,
			record.AlternateModel,
			record.Chain,
			record.KinaseName,
			strconv.Itoa(record.KinaseID),
			record.LigandExpoID,
		}
		if err := csvWriter.Write(row); err != nil {
			closeQuietly(zipWriter, outFile)
			return fmt.Errorf("failed to write record %d: %w", record.StructureID, err)
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		closeQuietly(zipWriter, outFile)
		return fmt.Errorf("failed to flush CSV data: %w", err)
	}

	if err := zipWriter.Close(); err != nil {
		closeQuietly(nil, outFile)
		return fmt.Errorf("failed to finalize archive: %w", err)
	}

	if err := outFile.Close(); err != nil {
		return fmt.Errorf("failed to close archive %s: %w", path, err)
	}

	return nil
}

// ReadArchive reads an archive written by WriteArchive back into records
func ReadArchive(path string) ([]entities.StructureRecord, error) {
	reader, err := zip.OpenReader(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open archive %s: %w", path, err)
	}
	defer func() {
		if err := reader.Close(); err != nil {
			logging.Warn("Failed to close archive reader", "error", err)
		}
	}()

	if len(reader.File) != 1 {
		return nil, fmt.Errorf("expected a single entry in %s, found %d", path, len(reader.File))
	}

	entry, err := reader.File[0].Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open archive entry: %w", err)
	}
	defer func() {
		if err := entry.Close(); err != nil {
			logging.Warn("Failed to close archive entry", "error", err)
		}
	}()

	csvReader := csv.NewReader(entry)
	csvReader.FieldsPerRecord = len(Columns)

	rows, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV data: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("archive %s has no header row", path)
	}

	for i, name := range Columns {
		if rows[0][i] != name {
			return nil, fmt.Errorf("unexpected column %q at position %d, want %q", rows[0][i], i, name)
		}
	}

	records := make([]entities.StructureRecord, 0, len(rows)-1)
	for lineNo, row := range rows[1:] {
		structureID, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("invalid structure_id %q on row %d: %w", row[0], lineNo+2, err)
		}

		kinaseID, err := strconv.Atoi(row[5])
		if err != nil {
			return nil, fmt.Errorf("invalid kinase_id %q on row %d: %w", row[5], lineNo+2, err)
		}

		records = append(records, entities.StructureRecord{
			StructureID:    structureID,
			PdbID:          row[1],
			AlternateModel: row[2],
			Chain:          row[3],
			KinaseName:     row[4],
			KinaseID:       kinaseID,
			LigandExpoID:   row[6],
		})
	}

	return records, nil
}

func closeQuietly(zipWriter *zip.Writer, file *os.File) {
	if zipWriter != nil {
		if err := zipWriter.Close(); err != nil {
			logging.Warn("Failed to close zip writer", "error", err)
		}
	}
	if file != nil {
		if err := file.Close(); err != nil {
			logging.Warn("Failed to close archive file", "error", err)
		}
	}
}
