package export

import (
	"fmt"

	"github.com/google/go-cmp/cmp"
	"github.com/openkinase/klifs-ids/klifs/entities"
)

// VerifyRoundTrip reloads the written archive and compares it field by field
// against the in-memory table. Any difference means the archive cannot be
// trusted and the run must fail.
func VerifyRoundTrip(path string, want []entities.StructureRecord) error {
	got, err := ReadArchive(path)
	if err != nil {
		return fmt.Errorf("verification reload failed: %w", err)
	}

	if len(got) != len(want) {
		return fmt.Errorf("verification failed: archive has %d records, expected %d", len(got), len(want))
	}

	if diff := cmp.Diff(want, got); diff != "" {
		return fmt.Errorf("verification failed: archive differs from table (-want +got):\n%s", diff)
	}

	return nil
}
