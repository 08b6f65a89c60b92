package ingest

import (
	"context"
	"errors"
	"fmt"

	"belakoo-backend-go/internal/models"
	"belakoo-backend-go/internal/store"
)

// HierarchyStore is the slice of store.Store the resolver needs.
type HierarchyStore interface {
	FindGrade(ctx context.Context, campusID, code string) (models.Grade, error)
	CreateGrade(ctx context.Context, grade *models.Grade) error
	FindSubject(ctx context.Context, gradeID, code string) (models.Subject, error)
	CreateSubject(ctx context.Context, subject *models.Subject) error
	FindProficiency(ctx context.Context, subjectID, code string) (models.Proficiency, error)
	CreateProficiency(ctx context.Context, proficiency *models.Proficiency) error
}

// SubjectInfo supplies display attributes used only when a Subject is created.
type SubjectInfo struct {
	Name      string
	Icon      string
	ColorCode string
}

type Hierarchy struct {
	Grade              models.Grade
	Subject            models.Subject
	Proficiency        models.Proficiency
	CreatedGrade       bool
	CreatedSubject     bool
	CreatedProficiency bool
}

// Resolve finds or creates, in order, the Grade under campusID, the Subject
// under that Grade and the Proficiency under that Subject. Callers wanting
// all-or-nothing behaviour run it inside store.Store.WithinTx.
func Resolve(ctx context.Context, st HierarchyStore, campusID string, code LessonCode, info SubjectInfo) (Hierarchy, error) {
	var h Hierarchy
	var err error

	h.Grade, h.CreatedGrade, err = getOrCreate(
		func() (models.Grade, error) { return st.FindGrade(ctx, campusID, code.Grade) },
		func() (models.Grade, error) {
			grade := models.Grade{CampusID: campusID, Code: code.Grade, Name: code.Grade}
			err := st.CreateGrade(ctx, &grade)
			return grade, err
		},
	)
	if err != nil {
		return h, fmt.Errorf("grade %s: %w", code.Grade, err)
	}

	name := info.Name
	if name == "" {
		name = code.Subject
	}
	h.Subject, h.CreatedSubject, err = getOrCreate(
		func() (models.Subject, error) { return st.FindSubject(ctx, h.Grade.ID, code.Subject) },
		func() (models.Subject, error) {
			subject := models.Subject{
				GradeID:   h.Grade.ID,
				Code:      code.Subject,
				Name:      name,
				Icon:      info.Icon,
				ColorCode: info.ColorCode,
			}
			err := st.CreateSubject(ctx, &subject)
			return subject, err
		},
	)
	if err != nil {
		return h, fmt.Errorf("subject %s: %w", code.Subject, err)
	}

	h.Proficiency, h.CreatedProficiency, err = getOrCreate(
		func() (models.Proficiency, error) {
			return st.FindProficiency(ctx, h.Subject.ID, code.Proficiency)
		},
		func() (models.Proficiency, error) {
			proficiency := models.Proficiency{SubjectID: h.Subject.ID, Code: code.Proficiency, Name: code.Proficiency}
			err := st.CreateProficiency(ctx, &proficiency)
			return proficiency, err
		},
	)
	if err != nil {
		return h, fmt.Errorf("proficiency %s: %w", code.Proficiency, err)
	}
	return h, nil
}

// getOrCreate looks the entity up, creates it when missing, and re-reads once
// if the create lost a race on the unique key.
func getOrCreate[T any](find func() (T, error), create func() (T, error)) (T, bool, error) {
	found, err := find()
	if err == nil {
		return found, false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return found, false, err
	}
	created, err := create()
	if err == nil {
		return created, true, nil
	}
	if errors.Is(err, store.ErrConflict) {
		found, err = find()
		return found, false, err
	}
	return created, false, err
}
