package services

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"belakoo-backend-go/internal/ingest"
	"belakoo-backend-go/internal/logger"
	"belakoo-backend-go/internal/sheets"

	gsheets "google.golang.org/api/sheets/v4"
)

// SheetsServiceFunc builds a Google Sheets client on demand.
type SheetsServiceFunc func(ctx context.Context) (*gsheets.Service, error)

type IngestService struct {
	importer      *ingest.Importer
	hub           *ActivityHub
	log           *logger.Logger
	contentDir    string
	defaultCampus string
	sheetsService SheetsServiceFunc
}

type IngestConfig struct {
	ContentDir    string
	DefaultCampus string
	SheetsService SheetsServiceFunc
}

func NewIngestService(importer *ingest.Importer, hub *ActivityHub, log *logger.Logger, cfg IngestConfig) *IngestService {
	return &IngestService{
		importer:      importer,
		hub:           hub,
		log:           log,
		contentDir:    cfg.ContentDir,
		defaultCampus: cfg.DefaultCampus,
		sheetsService: cfg.SheetsService,
	}
}

// ImportCSV imports every CSV file in dir, a path relative to the content
// directory. An empty dir means the content directory itself.
func (s *IngestService) ImportCSV(ctx context.Context, dir, campusCode string) (ingest.Report, error) {
	path, err := s.resolveDir(dir)
	if err != nil {
		return ingest.Report{}, err
	}
	return s.run(ctx, sheets.DirSource{Dir: path}, campusCode, "csv")
}

func (s *IngestService) ImportSpreadsheet(ctx context.Context, spreadsheetID, campusCode string) (ingest.Report, error) {
	src, err := s.googleSource(ctx, spreadsheetID)
	if err != nil {
		return ingest.Report{}, err
	}
	return s.run(ctx, src, campusCode, "sheets")
}

func (s *IngestService) ListSheets(ctx context.Context, spreadsheetID string) ([]string, error) {
	src, err := s.googleSource(ctx, spreadsheetID)
	if err != nil {
		return nil, err
	}
	names, err := src.ListSheetNames(ctx)
	if err != nil {
		return nil, ingestError(err)
	}
	return names, nil
}

func (s *IngestService) run(ctx context.Context, src ingest.Source, campusCode, kind string) (ingest.Report, error) {
	campusCode = strings.TrimSpace(campusCode)
	if campusCode == "" {
		campusCode = s.defaultCampus
	}
	report, err := s.importer.Run(ctx, src, campusCode)
	if err != nil {
		s.log.Warn("ingestion aborted", "source", kind, "campus", campusCode, "error", err)
		return report, ingestError(err)
	}
	s.hub.Broadcast(ActivityEvent{
		Type: EventIngestFinished,
		Payload: map[string]any{
			"source":  kind,
			"campus":  campusCode,
			"sheets":  report.Sheets,
			"created": len(report.Created),
			"errors":  len(report.Errors),
		},
	})
	return report, nil
}

func (s *IngestService) googleSource(ctx context.Context, spreadsheetID string) (sheets.GoogleSource, error) {
	spreadsheetID = strings.TrimSpace(spreadsheetID)
	if spreadsheetID == "" {
		return sheets.GoogleSource{}, ErrBadRequest("spreadsheet_id is required")
	}
	if s.sheetsService == nil {
		return sheets.GoogleSource{}, ErrBadRequest("Google Sheets is not configured")
	}
	svc, err := s.sheetsService(ctx)
	if err != nil {
		return sheets.GoogleSource{}, ingestError(err)
	}
	return sheets.GoogleSource{Service: svc, SpreadsheetID: spreadsheetID}, nil
}

// resolveDir keeps requested directories inside the content directory.
func (s *IngestService) resolveDir(dir string) (string, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return s.contentDir, nil
	}
	if filepath.IsAbs(dir) {
		return "", ErrBadRequest("directory must be relative to the content directory")
	}
	clean := filepath.Clean(dir)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", ErrBadRequest("directory must be inside the content directory")
	}
	target := filepath.Join(s.contentDir, clean)
	resolved, err := filepath.EvalSymlinks(target)
	if err != nil {
		// missing directories surface later as an unreadable source
		return target, nil
	}
	root, err := filepath.EvalSymlinks(s.contentDir)
	if err != nil {
		return target, nil
	}
	rel, err := filepath.Rel(root, resolved)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrBadRequest("directory must be inside the content directory")
	}
	return target, nil
}

func ingestError(err error) error {
	switch {
	case errors.Is(err, ingest.ErrCampusNotFound):
		return ErrNotFound(err.Error())
	case errors.Is(err, ingest.ErrSourceUnavailable):
		return ErrBadRequest(err.Error())
	default:
		return err
	}
}
