package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"belakoo-backend-go/internal/ingest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func TestDirSourceReadsCSVFilesInOrder(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.csv"), []byte("LESSON CODE,SCI.G6.02.P2\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"), []byte("LESSON CODE,MATH.G5.01.P1\nHOOK,\"Ask \"a\" question\",extra\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	got, err := DirSource{Dir: dir}.Sheets(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "a.csv", got[0].Name)
	assert.NoError(t, got[0].Err)
	assert.Equal(t, []string{"LESSON CODE", "MATH.G5.01.P1"}, got[0].Rows[0])
	assert.Len(t, got[0].Rows[1], 3, "ragged rows are kept")
	assert.Equal(t, "b.csv", got[1].Name)
}

func TestDirSourceMissingDirectory(t *testing.T) {
	_, err := DirSource{Dir: filepath.Join(t.TempDir(), "nope")}.Sheets(context.Background())
	assert.ErrorIs(t, err, ingest.ErrSourceUnavailable)
}

func TestReadCSVEmpty(t *testing.T) {
	rows, err := ReadCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestQuoteSheetName(t *testing.T) {
	assert.Equal(t, "'Lesson 1'", quoteSheetName("Lesson 1"))
	assert.Equal(t, "'Teacher''s copy'", quoteSheetName("Teacher's copy"))
}

func TestClientOptions(t *testing.T) {
	assert.Nil(t, ClientOptions(" "))
	assert.Len(t, ClientOptions(`{"type":"service_account"}`), 1)
	assert.Len(t, ClientOptions("/etc/sa.json"), 1)
}

func fakeSheetsAPI(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.Contains(r.URL.Path, "/values/"):
			if strings.Contains(r.URL.Path, "Broken") {
				w.WriteHeader(http.StatusBadRequest)
				_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"code": 400, "message": "Unable to parse range"}})
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"range":          "'Lesson 1'!A1:C3",
				"majorDimension": "ROWS",
				"values":         [][]any{{"LESSON CODE", "MATH.G5.01.P1"}, {"Duration", 40}},
			})
		case strings.HasSuffix(r.URL.Path, "/v4/spreadsheets/missing"):
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"code": 404, "message": "Requested entity was not found."}})
		default:
			_ = json.NewEncoder(w).Encode(map[string]any{
				"spreadsheetId": "doc",
				"sheets": []any{
					map[string]any{"properties": map[string]any{"title": "Lesson 1"}},
					map[string]any{"properties": map[string]any{"title": "Broken"}},
				},
			})
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGoogleSource(t *testing.T) {
	ctx := context.Background()
	srv := fakeSheetsAPI(t)
	svc, err := NewService(ctx, "", option.WithEndpoint(srv.URL+"/"), option.WithoutAuthentication())
	require.NoError(t, err)

	names, err := GoogleSource{Service: svc, SpreadsheetID: "doc"}.ListSheetNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Lesson 1", "Broken"}, names)

	got, err := GoogleSource{Service: svc, SpreadsheetID: "doc"}.Sheets(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, [][]string{{"LESSON CODE", "MATH.G5.01.P1"}, {"Duration", "40"}}, got[0].Rows)
	assert.Error(t, got[1].Err)

	_, err = GoogleSource{Service: svc, SpreadsheetID: "missing"}.Sheets(ctx)
	assert.ErrorIs(t, err, ingest.ErrSourceUnavailable)
}

func TestToRowsPadsTrailingEmptyCells(t *testing.T) {
	rows := toRows([][]interface{}{
		{"LESSON CODE", "MATH.G5.01.P1", "note"},
		{"HOOK"},
		{},
		{"Duration", 40},
	})
	assert.Equal(t, [][]string{
		{"LESSON CODE", "MATH.G5.01.P1", "note"},
		{"HOOK", "", ""},
		{"", "", ""},
		{"Duration", "40", ""},
	}, rows)

	value, ok := ingest.Extract(rows, "HOOK")
	assert.True(t, ok)
	assert.Empty(t, value)
}
