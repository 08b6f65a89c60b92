package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"belakoo-backend-go/internal/models"
	"belakoo-backend-go/internal/store"
	"belakoo-backend-go/internal/store/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource []Sheet

func (s staticSource) Sheets(ctx context.Context) ([]Sheet, error) {
	return s, nil
}

type brokenSource struct{ err error }

func (b brokenSource) Sheets(ctx context.Context) ([]Sheet, error) {
	return nil, b.err
}

func lessonSheet(name, code string) Sheet {
	return Sheet{Name: name, Rows: [][]string{
		{"LESSON CODE", code},
		{"OBJECTIVE", "Learn fractions"},
		{"HOOK", "Ask a question"},
	}}
}

func TestRunImportsLesson(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	campus := newCampus(t, s, "c1")

	report, err := NewImporter(s, nil).Run(ctx, staticSource{lessonSheet("Lesson 1", "MATH.G5.01.P1")}, "c1")
	require.NoError(t, err)

	assert.Equal(t, 1, report.Sheets)
	assert.Empty(t, report.Errors)
	assert.Equal(t, []string{"MATH.G5.01.P1"}, report.CreatedCodes())
	assert.Equal(t, "Lesson 1", report.Created[0].Sheet)

	lesson, err := s.GetLessonByCode(ctx, "MATH.G5.01.P1")
	require.NoError(t, err)
	assert.Equal(t, "Lesson 01", lesson.Name)
	assert.Equal(t, "Learn fractions", lesson.Objective)
	assert.Equal(t, models.ContentItems{{Title: "HOOK", Description: "Ask a question"}}, lesson.Activate)
	assert.Equal(t, models.ContentItems{}, lesson.Acquire)
	assert.False(t, lesson.IsDone)

	grade, err := s.FindGrade(ctx, campus.ID, "G5")
	require.NoError(t, err)
	subject, err := s.FindSubject(ctx, grade.ID, "MATH")
	require.NoError(t, err)
	proficiency, err := s.FindProficiency(ctx, subject.ID, "P1")
	require.NoError(t, err)
	assert.Equal(t, grade.ID, lesson.GradeID)
	assert.Equal(t, subject.ID, lesson.SubjectID)
	assert.Equal(t, proficiency.ID, lesson.ProficiencyID)

	assert.NotContains(t, report.MissingKeywords, KeywordLessonCode)
	assert.NotContains(t, report.MissingKeywords, KeywordHook)
	assert.Contains(t, report.MissingKeywords, KeywordTeach)
	assert.Contains(t, report.MissingKeywords, KeywordResources)
}

func TestRunSkipsBadLessonCode(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	campus := newCampus(t, s, "c1")

	report, err := NewImporter(s, nil).Run(ctx, staticSource{lessonSheet("broken", "BAD.CODE")}, "c1")
	require.NoError(t, err)

	assert.Empty(t, report.Created)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "broken", report.Errors[0].Sheet)
	assert.Equal(t, StageParse, report.Errors[0].Stage)
	assert.ErrorIs(t, report.Errors[0], ErrInvalidLessonCode)

	lessons, err := s.ListLessons(ctx, store.LessonFilter{})
	require.NoError(t, err)
	assert.Empty(t, lessons)
	grades, err := s.ListGrades(ctx, campus.ID)
	require.NoError(t, err)
	assert.Empty(t, grades)
}

func TestRunRecordsDuplicateLessonCode(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	newCampus(t, s, "c1")
	im := NewImporter(s, nil)

	src := staticSource{lessonSheet("first", "MATH.G5.01.P1"), lessonSheet("second", "MATH.G5.01.P1")}
	report, err := im.Run(ctx, src, "c1")
	require.NoError(t, err)

	assert.Equal(t, []string{"MATH.G5.01.P1"}, report.CreatedCodes())
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "second", report.Errors[0].Sheet)
	assert.Equal(t, "MATH.G5.01.P1", report.Errors[0].LessonCode)
	assert.Equal(t, StagePersist, report.Errors[0].Stage)
	assert.ErrorIs(t, report.Errors[0], ErrDuplicateLesson)

	again, err := im.Run(ctx, staticSource{lessonSheet("third", "MATH.G5.01.P1")}, "c1")
	require.NoError(t, err)
	assert.Empty(t, again.Created)
	assert.Len(t, again.Errors, 1)

	lessons, err := s.ListLessons(ctx, store.LessonFilter{})
	require.NoError(t, err)
	assert.Len(t, lessons, 1)
}

func TestRunContinuesPastFailedSheets(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	newCampus(t, s, "c1")

	src := staticSource{
		{Name: "unreadable", Err: errors.New("range not found")},
		{Name: "no code", Rows: [][]string{{"OBJECTIVE", "x"}}},
		lessonSheet("ok", " SCI.G6.02.P2 "),
	}
	report, err := NewImporter(s, nil).Run(ctx, src, "c1")
	require.NoError(t, err)

	assert.Equal(t, 3, report.Sheets)
	assert.Equal(t, []string{"SCI.G6.02.P2"}, report.CreatedCodes())
	require.Len(t, report.Errors, 2)
	assert.Equal(t, StageRead, report.Errors[0].Stage)
	assert.Equal(t, StageExtract, report.Errors[1].Stage)
	assert.ErrorIs(t, report.Errors[1], ErrMissingLessonCode)
}

func TestRunFatalPreconditions(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	_, err := NewImporter(s, nil).Run(ctx, staticSource{}, "c1")
	assert.ErrorIs(t, err, ErrCampusNotFound)

	newCampus(t, s, "c1")
	_, err = NewImporter(s, nil).Run(ctx, brokenSource{err: errors.New("permission denied")}, "c1")
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestRunWithNoSheetsReportsNothingMissing(t *testing.T) {
	s := memory.New()
	newCampus(t, s, "c1")

	report, err := NewImporter(s, nil).Run(context.Background(), staticSource{}, "c1")
	require.NoError(t, err)
	assert.Empty(t, report.MissingKeywords)
	assert.Empty(t, report.Created)
}

func TestRunUsesSubjectDefaults(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	campus := newCampus(t, s, "c1")
	im := NewImporter(s, nil)
	im.Subject = SubjectInfo{Icon: "https://cdn.example.com/book.png", ColorCode: "#FFAA00"}

	sheet := lessonSheet("s", "ENG.G1.03.P1")
	sheet.Rows = append(sheet.Rows, []string{"SUBJECT", "English"})
	_, err := im.Run(ctx, staticSource{sheet}, "c1")
	require.NoError(t, err)

	grade, err := s.FindGrade(ctx, campus.ID, "G1")
	require.NoError(t, err)
	subject, err := s.FindSubject(ctx, grade.ID, "ENG")
	require.NoError(t, err)
	assert.Equal(t, "English", subject.Name)
	assert.Equal(t, "#FFAA00", subject.ColorCode)
}

func TestReportJSON(t *testing.T) {
	report := newReport()
	report.Errors = append(report.Errors, &SheetError{Sheet: "s1", LessonCode: "BAD.CODE", Stage: StageParse, Err: ErrInvalidLessonCode})

	raw, err := json.Marshal(report)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"sheets": 0,
		"created": [],
		"missing_keywords": [],
		"errors": [{"sheet":"s1","lesson_code":"BAD.CODE","stage":"parse","error":"invalid lesson code"}]
	}`, string(raw))
}
