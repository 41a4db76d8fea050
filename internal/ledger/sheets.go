package ledger

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/Tsouxd/reservation-lalilalou/config"
)

// SheetsLedger implements Ledger on top of the Google Sheets v4 API with
// service-account credentials.
type SheetsLedger struct {
	svc           *sheets.Service
	spreadsheetID string
	worksheet     string
	archive       string

	// Numeric worksheet ids, resolved once. Row deletion needs them; value
	// reads and writes go by A1 notation.
	sheetIDs map[string]int64
}

// NewSheetsLedger builds a ledger client from the configured service-account
// JSON key file and resolves the numeric ids of both worksheets.
func NewSheetsLedger(ctx context.Context, cfg *config.LedgerConfig) (*SheetsLedger, error) {
	data, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger credentials: %w", err)
	}

	creds, err := google.CredentialsFromJSON(ctx, data, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ledger credentials: %w", err)
	}

	svc, err := sheets.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}

	l := &SheetsLedger{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		worksheet:     cfg.Worksheet,
		archive:       cfg.ArchiveWorksheet,
		sheetIDs:      make(map[string]int64),
	}
	if err := l.resolveSheetIDs(ctx); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *SheetsLedger) resolveSheetIDs(ctx context.Context) error {
	meta, err := l.svc.Spreadsheets.Get(l.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to read spreadsheet metadata: %w", err)
	}
	for _, sh := range meta.Sheets {
		if sh.Properties != nil {
			l.sheetIDs[sh.Properties.Title] = sh.Properties.SheetId
		}
	}
	for _, title := range []string{l.worksheet, l.archive} {
		if _, ok := l.sheetIDs[title]; !ok {
			return fmt.Errorf("worksheet %q not found in spreadsheet", title)
		}
	}
	return nil
}

// Rows reads the whole primary worksheet, header included. Cells arrive as
// untyped values and are flattened to strings.
func (l *SheetsLedger) Rows(ctx context.Context) ([][]string, error) {
	resp, err := l.svc.Spreadsheets.Values.Get(l.spreadsheetID, l.worksheet).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet %q: %w", l.worksheet, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, len(raw))
		for i, cell := range raw {
			row[i] = fmt.Sprint(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Append adds one row at the bottom of the primary worksheet.
func (l *SheetsLedger) Append(ctx context.Context, row []string) error {
	return l.appendRows(ctx, l.worksheet, [][]string{row})
}

// AppendToArchive bulk-appends rows to the archive worksheet in one call.
func (l *SheetsLedger) AppendToArchive(ctx context.Context, rows [][]string) error {
	return l.appendRows(ctx, l.archive, rows)
}

func (l *SheetsLedger) appendRows(ctx context.Context, worksheet string, rows [][]string) error {
	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		values[i] = cells
	}

	_, err := l.svc.Spreadsheets.Values.
		Append(l.spreadsheetID, worksheet, &sheets.ValueRange{Values: values}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to append to worksheet %q: %w", worksheet, err)
	}
	return nil
}

// UpdateCell overwrites one cell of the primary worksheet, 1-based coordinates.
func (l *SheetsLedger) UpdateCell(ctx context.Context, row, col int, value string) error {
	rng := fmt.Sprintf("%s!%s%d", l.worksheet, ColumnLetter(col), row)
	_, err := l.svc.Spreadsheets.Values.
		Update(l.spreadsheetID, rng, &sheets.ValueRange{Values: [][]interface{}{{value}}}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to update cell %s: %w", rng, err)
	}
	return nil
}

// DeleteRow removes one 1-based row from the primary worksheet.
func (l *SheetsLedger) DeleteRow(ctx context.Context, row int) error {
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    l.sheetIDs[l.worksheet],
					Dimension:  "ROWS",
					StartIndex: int64(row - 1),
					EndIndex:   int64(row),
				},
			},
		}},
	}
	if _, err := l.svc.Spreadsheets.BatchUpdate(l.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete row %d: %w", row, err)
	}
	return nil
}

// ColumnLetter converts a 1-based column number to its A1-notation letters.
func ColumnLetter(col int) string {
	var letters []byte
	for col > 0 {
		col--
		letters = append([]byte{byte('A' + col%26)}, letters...)
		col /= 26
	}
	return string(letters)
}
