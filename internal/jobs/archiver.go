package jobs

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Tsouxd/reservation-lalilalou/internal/ledger"
	"github.com/Tsouxd/reservation-lalilalou/internal/model"
	"github.com/Tsouxd/reservation-lalilalou/internal/parse"
)

// Archiver bounds the primary worksheet's size: rows whose appointment date
// fell out of the retention window are copied to the archive worksheet and
// then deleted from the primary one. The copy and the deletes are not atomic
// across the two worksheets; a failure in between leaves duplicates for the
// next run to move past.
type Archiver struct {
	ledger        ledger.Ledger
	retentionDays int

	now func() time.Time
}

// NewArchiver wires an archiver over the given ledger.
func NewArchiver(l ledger.Ledger, retentionDays int) *Archiver {
	return &Archiver{
		ledger:        l,
		retentionDays: retentionDays,
		now:           time.Now,
	}
}

// RunOnce performs a single archival pass and reports how many rows it moved.
// Any error aborts the whole pass.
func (a *Archiver) RunOnce(ctx context.Context) (int, error) {
	rows, err := a.ledger.Rows(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read ledger: %w", err)
	}

	cutoff := parse.RetentionCutoff(a.now(), a.retentionDays)

	var old [][]string
	var sheetRows []int
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) <= model.ColAppointmentDate {
			continue
		}
		date, err := time.Parse(model.DateLayout, row[model.ColAppointmentDate])
		if err != nil {
			// Unparsable dates stay in the primary worksheet.
			continue
		}
		if date.Before(cutoff) {
			old = append(old, row)
			sheetRows = append(sheetRows, i+1)
		}
	}

	if len(old) == 0 {
		return 0, nil
	}

	if err := a.ledger.AppendToArchive(ctx, old); err != nil {
		return 0, fmt.Errorf("failed to copy %d rows to archive: %w", len(old), err)
	}

	// Deleting a row shifts everything below it up by one, so the deletes
	// must run bottom-up or they would hit the wrong rows.
	sort.Sort(sort.Reverse(sort.IntSlice(sheetRows)))
	for _, row := range sheetRows {
		if err := a.ledger.DeleteRow(ctx, row); err != nil {
			return 0, fmt.Errorf("failed to delete row %d after archiving: %w", row, err)
		}
	}

	return len(old), nil
}
