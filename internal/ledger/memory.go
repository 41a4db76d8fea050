package ledger

import (
	"context"
	"fmt"
	"sync"
)

// MemoryLedger is an in-memory Ledger used by tests and local development. It
// reproduces the index semantics of the real sheet: deleting a row shifts
// every later row up by one, so callers that delete in the wrong order corrupt
// the ledger here exactly as they would against the real service.
type MemoryLedger struct {
	mu       sync.Mutex
	rows     [][]string
	archived [][]string

	// FailNext, when set, makes the next operation return an error. Lets
	// tests exercise the skipped-tick paths.
	FailNext error
}

// NewMemoryLedger seeds an in-memory ledger. The first row is conventionally
// the header.
func NewMemoryLedger(rows ...[]string) *MemoryLedger {
	l := &MemoryLedger{}
	for _, row := range rows {
		l.rows = append(l.rows, append([]string(nil), row...))
	}
	return l
}

func (l *MemoryLedger) takeFailure() error {
	err := l.FailNext
	l.FailNext = nil
	return err
}

func (l *MemoryLedger) Rows(ctx context.Context) ([][]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.takeFailure(); err != nil {
		return nil, err
	}
	out := make([][]string, len(l.rows))
	for i, row := range l.rows {
		out[i] = append([]string(nil), row...)
	}
	return out, nil
}

func (l *MemoryLedger) Append(ctx context.Context, row []string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.takeFailure(); err != nil {
		return err
	}
	l.rows = append(l.rows, append([]string(nil), row...))
	return nil
}

func (l *MemoryLedger) UpdateCell(ctx context.Context, row, col int, value string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.takeFailure(); err != nil {
		return err
	}
	if row < 1 || row > len(l.rows) {
		return fmt.Errorf("row %d out of range", row)
	}
	r := l.rows[row-1]
	for len(r) < col {
		r = append(r, "")
	}
	r[col-1] = value
	l.rows[row-1] = r
	return nil
}

func (l *MemoryLedger) DeleteRow(ctx context.Context, row int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.takeFailure(); err != nil {
		return err
	}
	if row < 1 || row > len(l.rows) {
		return fmt.Errorf("row %d out of range", row)
	}
	l.rows = append(l.rows[:row-1], l.rows[row:]...)
	return nil
}

func (l *MemoryLedger) AppendToArchive(ctx context.Context, rows [][]string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.takeFailure(); err != nil {
		return err
	}
	for _, row := range rows {
		l.archived = append(l.archived, append([]string(nil), row...))
	}
	return nil
}

// Snapshot returns a copy of the primary rows without going through the
// Ledger interface. Test helper.
func (l *MemoryLedger) Snapshot() [][]string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([][]string, len(l.rows))
	for i, row := range l.rows {
		out[i] = append([]string(nil), row...)
	}
	return out
}

// Archived returns a copy of the archive rows. Test helper.
func (l *MemoryLedger) Archived() [][]string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([][]string, len(l.archived))
	for i, row := range l.archived {
		out[i] = append([]string(nil), row...)
	}
	return out
}
