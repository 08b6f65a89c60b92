// Package ingest imports lesson sheets into the content hierarchy.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"belakoo-backend-go/internal/logger"
	"belakoo-backend-go/internal/models"
	"belakoo-backend-go/internal/store"
)

// Sheet is one named grid of cells. Err is set when this sheet alone could
// not be read.
type Sheet struct {
	Name string
	Rows [][]string
	Err  error
}

// Source yields the sheets of one location. A returned error is fatal to
// the run and should wrap ErrSourceUnavailable.
type Source interface {
	Sheets(ctx context.Context) ([]Sheet, error)
}

type Importer struct {
	store store.Store
	log   *logger.Logger

	// Subject supplies icon and color for subjects created on the fly.
	Subject SubjectInfo
}

func NewImporter(st store.Store, log *logger.Logger) *Importer {
	if log == nil {
		log = logger.NewNop()
	}
	return &Importer{store: st, log: log}
}

// Run processes every sheet of src sequentially against the campus with
// campusCode. Only an unknown campus or an unreadable source fail the run;
// everything else lands in the report.
func (im *Importer) Run(ctx context.Context, src Source, campusCode string) (Report, error) {
	report := newReport()

	campus, err := im.store.GetCampusByCode(ctx, campusCode)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return report, fmt.Errorf("%w: %s", ErrCampusNotFound, campusCode)
		}
		return report, err
	}

	sheets, err := src.Sheets(ctx)
	if err != nil {
		if !errors.Is(err, ErrSourceUnavailable) {
			err = fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
		}
		return report, err
	}

	seen := map[string]bool{}
	scanned := 0
	for _, sheet := range sheets {
		report.Sheets++
		if sheet.Err != nil {
			im.fail(&report, &SheetError{Sheet: sheet.Name, Stage: StageRead, Err: sheet.Err})
			continue
		}
		scanned++
		fields := ExtractFields(sheet.Rows)
		for keyword := range fields.Found {
			seen[keyword] = true
		}
		created, sheetErr := im.importSheet(ctx, campus, sheet.Name, fields)
		if sheetErr != nil {
			im.fail(&report, sheetErr)
			continue
		}
		report.Created = append(report.Created, created)
		im.log.Info("lesson imported", "sheet", sheet.Name, "lesson_code", created.LessonCode)
	}

	if scanned > 0 {
		for _, keyword := range Keywords {
			if !seen[keyword] {
				report.MissingKeywords = append(report.MissingKeywords, keyword)
			}
		}
	}
	im.log.Info("ingestion finished",
		"campus", campusCode,
		"sheets", report.Sheets,
		"created", len(report.Created),
		"errors", len(report.Errors),
	)
	return report, nil
}

func (im *Importer) fail(report *Report, err *SheetError) {
	report.Errors = append(report.Errors, err)
	im.log.Warn("sheet skipped", "sheet", err.Sheet, "lesson_code", err.LessonCode, "stage", string(err.Stage), "error", err.Err)
}

// importSheet resolves the hierarchy and inserts the lesson in one
// transaction so a failed sheet leaves nothing behind.
func (im *Importer) importSheet(ctx context.Context, campus models.Campus, name string, fields Fields) (CreatedLesson, *SheetError) {
	if !fields.Found[KeywordLessonCode] {
		return CreatedLesson{}, &SheetError{Sheet: name, Stage: StageExtract, Err: ErrMissingLessonCode}
	}
	raw := strings.TrimSpace(fields.LessonCode)
	code, err := ParseLessonCode(raw)
	if err != nil {
		return CreatedLesson{}, &SheetError{Sheet: name, LessonCode: raw, Stage: StageParse, Err: err}
	}

	info := im.Subject
	info.Name = strings.TrimSpace(fields.SubjectName)

	var sheetErr *SheetError
	var lesson models.Lesson
	err = im.store.WithinTx(ctx, func(tx store.Store) error {
		h, err := Resolve(ctx, tx, campus.ID, code, info)
		if err != nil {
			sheetErr = &SheetError{Sheet: name, LessonCode: raw, Stage: StageResolve, Err: err}
			return sheetErr
		}

		taken, err := tx.LessonCodeTaken(ctx, raw, "")
		if err == nil && taken {
			err = ErrDuplicateLesson
		}
		if err != nil {
			sheetErr = &SheetError{Sheet: name, LessonCode: raw, Stage: StagePersist, Err: err}
			return sheetErr
		}

		lesson = buildLesson(code, h, fields)
		if err := tx.CreateLesson(ctx, &lesson); err != nil {
			if errors.Is(err, store.ErrConflict) {
				err = ErrDuplicateLesson
			}
			sheetErr = &SheetError{Sheet: name, LessonCode: raw, Stage: StagePersist, Err: err}
			return sheetErr
		}
		return nil
	})
	if err != nil {
		if sheetErr == nil {
			sheetErr = &SheetError{Sheet: name, LessonCode: raw, Stage: StagePersist, Err: err}
		}
		return CreatedLesson{}, sheetErr
	}
	return CreatedLesson{LessonCode: lesson.Code, Sheet: name, LessonID: lesson.ID}, nil
}

func buildLesson(code LessonCode, h Hierarchy, f Fields) models.Lesson {
	return models.Lesson{
		Code:                    code.Raw,
		Name:                    "Lesson " + code.Number,
		SubjectID:               h.Subject.ID,
		GradeID:                 h.Grade.ID,
		ProficiencyID:           h.Proficiency.ID,
		Objective:               f.Objective,
		Duration:                f.Duration,
		SpecificLearningOutcome: f.SpecificLearningOutcome,
		BehavioralOutcome:       f.BehavioralOutcome,
		MaterialsRequired:       f.Materials,
		Resources:               f.Resources,
		Activate:                f.Activate,
		Acquire:                 f.Acquire,
		Apply:                   f.Apply,
		Assess:                  f.Assess,
	}
}
