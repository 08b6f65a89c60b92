// Package sheets provides ingest.Source implementations for CSV
// directories and Google Sheets spreadsheets.
package sheets

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"belakoo-backend-go/internal/ingest"
)

// DirSource reads every *.csv file in Dir as one sheet, in name order.
type DirSource struct {
	Dir string
}

var _ ingest.Source = DirSource{}

func (d DirSource) Sheets(ctx context.Context) ([]ingest.Sheet, error) {
	info, err := os.Stat(d.Dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ingest.ErrSourceUnavailable, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ingest.ErrSourceUnavailable, d.Dir)
	}
	files, err := filepath.Glob(filepath.Join(d.Dir, "*.csv"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ingest.ErrSourceUnavailable, err)
	}
	sort.Strings(files)

	out := make([]ingest.Sheet, 0, len(files))
	for _, path := range files {
		sheet := ingest.Sheet{Name: filepath.Base(path)}
		sheet.Rows, sheet.Err = readCSVFile(path)
		out = append(out, sheet)
	}
	return out, nil
}

func readCSVFile(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV parses ragged, loosely quoted CSV into rows. The first row is data.
func ReadCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = [][]string{}
	}
	return rows, nil
}
