package httpapi

import (
	"net/http"
)

// IngestCSV imports every CSV file of a directory under the content root.
// Partial success still answers 201; per-sheet failures are in the report.
func (s *Server) IngestCSV(w http.ResponseWriter, r *http.Request) {
	var req IngestCSVRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	report, err := s.Ingest.ImportCSV(r.Context(), req.Directory, req.CampusCode)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, report)
}

func (s *Server) IngestSheets(w http.ResponseWriter, r *http.Request) {
	var req IngestSheetsRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	report, err := s.Ingest.ImportSpreadsheet(r.Context(), req.SpreadsheetID, req.CampusCode)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, report)
}

func (s *Server) ListSheets(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("spreadsheet_id")
	names, err := s.Ingest.ListSheets(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, SheetListResponse{SpreadsheetID: id, Sheets: names})
}
