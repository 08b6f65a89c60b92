package ingest

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrSourceUnavailable means the sheet source could not be opened at all.
	ErrSourceUnavailable = errors.New("sheet source unavailable")
	// ErrCampusNotFound means the target campus does not exist.
	ErrCampusNotFound = errors.New("campus not found")

	ErrMissingLessonCode = errors.New("lesson code keyword not found")
	ErrDuplicateLesson   = errors.New("lesson code already exists")
)

type Stage string

const (
	StageRead    Stage = "read"
	StageExtract Stage = "extract"
	StageParse   Stage = "parse"
	StageResolve Stage = "resolve"
	StagePersist Stage = "persist"
)

// SheetError is a per-sheet failure. It never aborts a run.
type SheetError struct {
	Sheet      string
	LessonCode string
	Stage      Stage
	Err        error
}

func (e *SheetError) Error() string {
	if e.LessonCode != "" {
		return fmt.Sprintf("sheet %q (%s) %s: %v", e.Sheet, e.LessonCode, e.Stage, e.Err)
	}
	return fmt.Sprintf("sheet %q %s: %v", e.Sheet, e.Stage, e.Err)
}

func (e *SheetError) Unwrap() error { return e.Err }

func (e *SheetError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Sheet      string `json:"sheet"`
		LessonCode string `json:"lesson_code,omitempty"`
		Stage      Stage  `json:"stage"`
		Error      string `json:"error"`
	}{e.Sheet, e.LessonCode, e.Stage, e.Err.Error()})
}

type CreatedLesson struct {
	LessonCode string `json:"lesson_code"`
	Sheet      string `json:"sheet"`
	LessonID   string `json:"lesson_id"`
}

// Report is the outcome of one run. Partial success is normal.
type Report struct {
	Sheets          int             `json:"sheets"`
	Created         []CreatedLesson `json:"created"`
	MissingKeywords []string        `json:"missing_keywords"`
	Errors          []*SheetError   `json:"errors"`
}

func newReport() Report {
	return Report{
		Created:         []CreatedLesson{},
		MissingKeywords: []string{},
		Errors:          []*SheetError{},
	}
}

func (r Report) CreatedCodes() []string {
	codes := make([]string, 0, len(r.Created))
	for _, c := range r.Created {
		codes = append(codes, c.LessonCode)
	}
	return codes
}
