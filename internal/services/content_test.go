package services

import (
	"context"
	"net/http"
	"testing"

	"belakoo-backend-go/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateValidatesRequiredFields(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	_, err := e.content.CreateCampus(ctx, CampusInput{Name: ptr("No code")})
	assert.Equal(t, http.StatusBadRequest, statusOf(err))
	_, err = e.content.CreateGrade(ctx, GradeInput{Code: ptr("G1")})
	assert.Equal(t, http.StatusBadRequest, statusOf(err))
	_, err = e.content.CreateGrade(ctx, GradeInput{CampusID: ptr("2b1c43b4-8f2e-4c55-a2a5-9d2f8e1a0c11"), Code: ptr("G1")})
	assert.Equal(t, http.StatusNotFound, statusOf(err))
	_, err = e.content.CreateLesson(ctx, LessonInput{Code: ptr("X.Y.1.Z")})
	assert.Equal(t, http.StatusBadRequest, statusOf(err))
}

func TestScopedCodeUniqueness(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	tr := e.seedTree(t)

	_, err := e.content.CreateCampus(ctx, CampusInput{Code: ptr("c1"), Name: ptr("Dup")})
	assert.Equal(t, http.StatusConflict, statusOf(err))
	_, err = e.content.CreateGrade(ctx, GradeInput{CampusID: ptr(tr.campus.ID), Code: ptr("G5")})
	assert.Equal(t, http.StatusConflict, statusOf(err))
	_, err = e.content.CreateSubject(ctx, SubjectInput{GradeID: ptr(tr.grade.ID), Code: ptr("MATH"), Name: ptr("Again")})
	assert.Equal(t, http.StatusConflict, statusOf(err))
	_, err = e.content.CreateProficiency(ctx, ProficiencyInput{SubjectID: ptr(tr.subject.ID), Code: ptr("P1")})
	assert.Equal(t, http.StatusConflict, statusOf(err))

	other, err := e.content.CreateCampus(ctx, CampusInput{Code: ptr("c2"), Name: ptr("Second")})
	require.NoError(t, err)
	grade, err := e.content.CreateGrade(ctx, GradeInput{CampusID: ptr(other.ID), Code: ptr("G5")})
	require.NoError(t, err)
	assert.NotEqual(t, tr.grade.ID, grade.ID)
	assert.Equal(t, "G5", grade.Name, "name defaults to the code")
}

func TestUpdateExcludesSelfFromUniqueness(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	tr := e.seedTree(t)

	campus, err := e.content.UpdateCampus(ctx, tr.campus.ID, CampusInput{Code: ptr("c1"), Description: ptr("Updated")})
	require.NoError(t, err)
	assert.Equal(t, "Updated", campus.Description)
	assert.Equal(t, "Main campus", campus.Name)

	g6, err := e.content.CreateGrade(ctx, GradeInput{CampusID: ptr(tr.campus.ID), Code: ptr("G6")})
	require.NoError(t, err)
	_, err = e.content.UpdateGrade(ctx, g6.ID, GradeInput{Code: ptr("G5")})
	assert.Equal(t, http.StatusConflict, statusOf(err))

	subject, err := e.content.UpdateSubject(ctx, tr.subject.ID, SubjectInput{ColorCode: ptr("#00FF00")})
	require.NoError(t, err)
	assert.Equal(t, "#00FF00", subject.ColorCode)

	_, err = e.content.UpdateCampus(ctx, "5b1c43b4-8f2e-4c55-a2a5-9d2f8e1a0c11", CampusInput{})
	assert.Equal(t, http.StatusNotFound, statusOf(err))
}

func TestLessonHierarchyMustBeConsistent(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	tr := e.seedTree(t)

	otherSubject, err := e.content.CreateSubject(ctx, SubjectInput{GradeID: ptr(tr.grade.ID), Code: ptr("SCI"), Name: ptr("Science")})
	require.NoError(t, err)

	_, err = e.content.UpdateLesson(ctx, tr.lesson.ID, LessonInput{SubjectID: ptr(otherSubject.ID)})
	assert.Equal(t, http.StatusBadRequest, statusOf(err))

	_, err = e.content.CreateLesson(ctx, LessonInput{
		Code:          ptr("SCI.G5.01.P1"),
		Name:          ptr("Lesson 01"),
		SubjectID:     ptr(otherSubject.ID),
		GradeID:       ptr(tr.grade.ID),
		ProficiencyID: ptr(tr.proficiency.ID),
	})
	assert.Equal(t, http.StatusBadRequest, statusOf(err))

	otherProf, err := e.content.CreateProficiency(ctx, ProficiencyInput{SubjectID: ptr(otherSubject.ID), Code: ptr("P1")})
	require.NoError(t, err)
	moved, err := e.content.UpdateLesson(ctx, tr.lesson.ID, LessonInput{SubjectID: ptr(otherSubject.ID), ProficiencyID: ptr(otherProf.ID)})
	require.NoError(t, err)
	assert.Equal(t, otherSubject.ID, moved.SubjectID)
}

func TestLessonUpdateFlagRules(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	tr := e.seedTree(t)

	lesson, err := e.content.UpdateLesson(ctx, tr.lesson.Code, LessonInput{Verified: ptr(true)})
	require.NoError(t, err)
	assert.True(t, lesson.Verified)
	assert.True(t, lesson.IsDone)

	lesson, err = e.content.UpdateLesson(ctx, tr.lesson.ID, LessonInput{IsDone: ptr(false)})
	require.NoError(t, err)
	assert.False(t, lesson.IsDone)
	assert.False(t, lesson.Verified)

	items := models.ContentItems{{Title: "TEACH", Description: "Explain halves"}}
	lesson, err = e.content.UpdateLesson(ctx, tr.lesson.ID, LessonInput{Acquire: &items, Objective: ptr("")})
	require.NoError(t, err)
	assert.Equal(t, items, lesson.Acquire)
	assert.Empty(t, lesson.Objective)
}

func TestLessonCodeUniqueOnUpdate(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	tr := e.seedTree(t)

	second, err := e.content.CreateLesson(ctx, LessonInput{
		Code:          ptr("MATH.G5.02.P1"),
		Name:          ptr("Lesson 02"),
		SubjectID:     ptr(tr.subject.ID),
		GradeID:       ptr(tr.grade.ID),
		ProficiencyID: ptr(tr.proficiency.ID),
	})
	require.NoError(t, err)
	assert.Equal(t, models.ContentItems{}, second.Activate)

	_, err = e.content.UpdateLesson(ctx, second.ID, LessonInput{Code: ptr("MATH.G5.01.P1")})
	assert.Equal(t, http.StatusConflict, statusOf(err))

	_, err = e.content.UpdateLesson(ctx, second.ID, LessonInput{Code: ptr("MATH.G5.02.P1")})
	assert.NoError(t, err)
}

func TestBrowsingViews(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	tr := e.seedTree(t)

	campuses, err := e.content.ListCampuses(ctx)
	require.NoError(t, err)
	assert.Len(t, campuses, 1)

	cd, err := e.content.CampusDetail(ctx, tr.campus.ID)
	require.NoError(t, err)
	require.Len(t, cd.Grades, 1)

	gd, err := e.content.GradeDetail(ctx, tr.grade.ID)
	require.NoError(t, err)
	require.Len(t, gd.Subjects, 1)

	sd, err := e.content.SubjectDetail(ctx, tr.subject.ID)
	require.NoError(t, err)
	require.Len(t, sd.Proficiencies, 1)

	pl, err := e.content.ProficiencyLessons(ctx, tr.proficiency.ID)
	require.NoError(t, err)
	assert.Equal(t, "Maths", pl.Subject.Name)
	require.Len(t, pl.Lessons, 1)

	ld, err := e.content.LessonDetail(ctx, "MATH.G5.01.P1")
	require.NoError(t, err)
	assert.Equal(t, tr.lesson.ID, ld.Lesson.ID)
	assert.Equal(t, "Maths", ld.SubjectName)
	assert.Equal(t, "G5", ld.GradeName)
	assert.Equal(t, "P1", ld.ProficiencyName)

	_, err = e.content.LessonDetail(ctx, "NOPE")
	assert.Equal(t, http.StatusNotFound, statusOf(err))
}

func TestDeletes(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	tr := e.seedTree(t)

	n, err := e.content.DeleteAllLessons(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	assert.Equal(t, http.StatusNotFound, statusOf(e.content.DeleteLesson(ctx, tr.lesson.ID)))

	require.NoError(t, e.content.DeleteCampus(ctx, tr.campus.ID))
	_, err = e.content.GradeDetail(ctx, tr.grade.ID)
	assert.Equal(t, http.StatusNotFound, statusOf(err))
	assert.Equal(t, http.StatusNotFound, statusOf(e.content.DeleteSubject(ctx, tr.subject.ID)))
}

func TestMovingSubjectCarriesLessons(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	tr := e.seedTree(t)

	g6, err := e.content.CreateGrade(ctx, GradeInput{CampusID: ptr(tr.campus.ID), Code: ptr("G6")})
	require.NoError(t, err)
	subject, err := e.content.UpdateSubject(ctx, tr.subject.ID, SubjectInput{GradeID: ptr(g6.ID)})
	require.NoError(t, err)
	assert.Equal(t, g6.ID, subject.GradeID)

	lesson, err := e.store.GetLesson(ctx, tr.lesson.ID)
	require.NoError(t, err)
	assert.Equal(t, g6.ID, lesson.GradeID)
	assert.Equal(t, tr.subject.ID, lesson.SubjectID)

	updated, err := e.content.UpdateLesson(ctx, tr.lesson.ID, LessonInput{Objective: ptr("x")})
	require.NoError(t, err)
	assert.Equal(t, "x", updated.Objective)
}

func TestMovingProficiencyCarriesLessons(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	tr := e.seedTree(t)

	g6, err := e.content.CreateGrade(ctx, GradeInput{CampusID: ptr(tr.campus.ID), Code: ptr("G6")})
	require.NoError(t, err)
	sci, err := e.content.CreateSubject(ctx, SubjectInput{GradeID: ptr(g6.ID), Code: ptr("SCI"), Name: ptr("Science")})
	require.NoError(t, err)

	prof, err := e.content.UpdateProficiency(ctx, tr.proficiency.ID, ProficiencyInput{SubjectID: ptr(sci.ID)})
	require.NoError(t, err)
	assert.Equal(t, sci.ID, prof.SubjectID)

	lesson, err := e.store.GetLesson(ctx, tr.lesson.ID)
	require.NoError(t, err)
	assert.Equal(t, sci.ID, lesson.SubjectID)
	assert.Equal(t, g6.ID, lesson.GradeID)
	assert.Equal(t, tr.proficiency.ID, lesson.ProficiencyID)

	_, err = e.content.UpdateLesson(ctx, tr.lesson.ID, LessonInput{Objective: ptr("x")})
	assert.NoError(t, err)
}
