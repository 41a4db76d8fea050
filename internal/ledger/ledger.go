package ledger

import "context"

// Ledger is the reservation sheet as this process sees it: an ordered list of
// string rows owned by an external service, addressed by 1-based sheet
// coordinates. Every job tick reads a fresh snapshot; nothing is cached here.
type Ledger interface {
	// Rows returns the full current snapshot, header row included.
	Rows(ctx context.Context) ([][]string, error)

	// Append adds one row at the bottom of the primary worksheet.
	Append(ctx context.Context, row []string) error

	// UpdateCell overwrites a single cell. Row and column are 1-based.
	UpdateCell(ctx context.Context, row, col int, value string) error

	// DeleteRow removes the given 1-based row; rows below it shift up by one.
	DeleteRow(ctx context.Context, row int) error

	// AppendToArchive bulk-appends rows to the archive worksheet.
	AppendToArchive(ctx context.Context, rows [][]string) error
}
