package sheets

import (
	"context"
	"fmt"
	"strings"

	"belakoo-backend-go/internal/ingest"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// ClientOptions turns inline JSON or a credentials file path into client
// options. Empty creds fall back to application default credentials.
func ClientOptions(creds string) []option.ClientOption {
	creds = strings.TrimSpace(creds)
	if creds == "" {
		return nil
	}
	if strings.HasPrefix(creds, "{") {
		return []option.ClientOption{option.WithCredentialsJSON([]byte(creds))}
	}
	return []option.ClientOption{option.WithCredentialsFile(creds)}
}

func NewService(ctx context.Context, creds string, extra ...option.ClientOption) (*gsheets.Service, error) {
	opts := append(ClientOptions(creds), option.WithScopes(gsheets.SpreadsheetsReadonlyScope))
	opts = append(opts, extra...)
	svc, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ingest.ErrSourceUnavailable, err)
	}
	return svc, nil
}

// GoogleSource reads each worksheet of one spreadsheet as a sheet.
type GoogleSource struct {
	Service       *gsheets.Service
	SpreadsheetID string
}

var _ ingest.Source = GoogleSource{}

// ListSheetNames returns worksheet titles in tab order.
func (g GoogleSource) ListSheetNames(ctx context.Context) ([]string, error) {
	if strings.TrimSpace(g.SpreadsheetID) == "" {
		return nil, fmt.Errorf("%w: spreadsheet id is required", ingest.ErrSourceUnavailable)
	}
	doc, err := g.Service.Spreadsheets.Get(g.SpreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ingest.ErrSourceUnavailable, err)
	}
	names := make([]string, 0, len(doc.Sheets))
	for _, sheet := range doc.Sheets {
		if sheet.Properties != nil {
			names = append(names, sheet.Properties.Title)
		}
	}
	return names, nil
}

func (g GoogleSource) Sheets(ctx context.Context) ([]ingest.Sheet, error) {
	names, err := g.ListSheetNames(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ingest.Sheet, 0, len(names))
	for _, name := range names {
		sheet := ingest.Sheet{Name: name}
		resp, err := g.Service.Spreadsheets.Values.Get(g.SpreadsheetID, quoteSheetName(name)).
			Context(ctx).
			Do()
		if err != nil {
			sheet.Err = err
		} else {
			sheet.Rows = toRows(resp.Values)
		}
		out = append(out, sheet)
	}
	return out, nil
}

// quoteSheetName makes a worksheet title usable as an A1 range.
func quoteSheetName(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

// toRows pads every row to the widest one. The Sheets API drops trailing
// empty cells, which a CSV export of the same range keeps.
func toRows(values [][]interface{}) [][]string {
	width := 0
	for _, row := range values {
		width = max(width, len(row))
	}
	rows := make([][]string, 0, len(values))
	for _, row := range values {
		cells := make([]string, width)
		for i, v := range row {
			switch cell := v.(type) {
			case nil:
			case string:
				cells[i] = cell
			default:
				cells[i] = fmt.Sprint(cell)
			}
		}
		rows = append(rows, cells)
	}
	return rows
}
