package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"belakoo-backend-go/internal/models"
	"belakoo-backend-go/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	campus      models.Campus
	grade       models.Grade
	subject     models.Subject
	proficiency models.Proficiency
	lesson      models.Lesson
}

func seed(t *testing.T, s *Store) fixture {
	t.Helper()
	ctx := context.Background()
	f := fixture{}
	f.campus = models.Campus{Code: "c1", Name: "Main"}
	require.NoError(t, s.CreateCampus(ctx, &f.campus))
	f.grade = models.Grade{CampusID: f.campus.ID, Code: "G5", Name: "G5"}
	require.NoError(t, s.CreateGrade(ctx, &f.grade))
	f.subject = models.Subject{GradeID: f.grade.ID, Code: "MATH", Name: "Maths"}
	require.NoError(t, s.CreateSubject(ctx, &f.subject))
	f.proficiency = models.Proficiency{SubjectID: f.subject.ID, Code: "P1", Name: "P1"}
	require.NoError(t, s.CreateProficiency(ctx, &f.proficiency))
	f.lesson = models.Lesson{
		Code:          "MATH.G5.01.P1",
		Name:          "Lesson 01",
		SubjectID:     f.subject.ID,
		GradeID:       f.grade.ID,
		ProficiencyID: f.proficiency.ID,
		Activate:      models.ContentItems{{Title: "HOOK", Description: "Ask"}},
	}
	require.NoError(t, s.CreateLesson(ctx, &f.lesson))
	return f
}

func TestCodesAreUniqueWithinParentOnly(t *testing.T) {
	ctx := context.Background()
	s := New()
	f := seed(t, s)

	dup := models.Grade{CampusID: f.campus.ID, Code: "G5", Name: "again"}
	assert.ErrorIs(t, s.CreateGrade(ctx, &dup), store.ErrConflict)

	other := models.Campus{Code: "c2", Name: "Second"}
	require.NoError(t, s.CreateCampus(ctx, &other))
	sameCode := models.Grade{CampusID: other.ID, Code: "G5", Name: "G5"}
	require.NoError(t, s.CreateGrade(ctx, &sameCode))
	assert.NotEqual(t, f.grade.ID, sameCode.ID)

	sub := models.Subject{GradeID: sameCode.ID, Code: "MATH", Name: "Maths"}
	require.NoError(t, s.CreateSubject(ctx, &sub))
	prof := models.Proficiency{SubjectID: sub.ID, Code: "P1", Name: "P1"}
	require.NoError(t, s.CreateProficiency(ctx, &prof))

	taken, err := s.SubjectCodeTaken(ctx, f.grade.ID, "MATH", f.subject.ID)
	require.NoError(t, err)
	assert.False(t, taken, "the subject itself is excluded")

	taken, err = s.SubjectCodeTaken(ctx, f.grade.ID, "MATH", "")
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestCampusAndLessonCodesAreGlobal(t *testing.T) {
	ctx := context.Background()
	s := New()
	f := seed(t, s)

	dupCampus := models.Campus{Code: "c1", Name: "Clone"}
	assert.ErrorIs(t, s.CreateCampus(ctx, &dupCampus), store.ErrConflict)

	dupLesson := f.lesson
	dupLesson.ID = ""
	assert.ErrorIs(t, s.CreateLesson(ctx, &dupLesson), store.ErrConflict)
}

func TestCreateChildRequiresParent(t *testing.T) {
	s := New()
	grade := models.Grade{CampusID: "missing", Code: "G1", Name: "G1"}
	assert.ErrorIs(t, s.CreateGrade(context.Background(), &grade), store.ErrNotFound)
}

func TestDeleteCampusCascades(t *testing.T) {
	ctx := context.Background()
	s := New()
	f := seed(t, s)

	require.NoError(t, s.DeleteCampus(ctx, f.campus.ID))

	_, err := s.GetGrade(ctx, f.grade.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetSubject(ctx, f.subject.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetProficiency(ctx, f.proficiency.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetLesson(ctx, f.lesson.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteUserNullsCompletedBy(t *testing.T) {
	ctx := context.Background()
	s := New()
	f := seed(t, s)

	user := models.User{Email: "Vol@Example.com", Name: "Vol", Role: models.RoleVolunteer, IsActive: true}
	require.NoError(t, s.CreateUser(ctx, &user))
	assert.Equal(t, "vol@example.com", user.Email)

	done := time.Now().UTC()
	f.lesson.IsDone = true
	f.lesson.CompletedBy = &user.ID
	f.lesson.CompletedAt = &done
	require.NoError(t, s.UpdateLesson(ctx, &f.lesson))

	require.NoError(t, s.DeleteUser(ctx, user.ID))

	lesson, err := s.GetLesson(ctx, f.lesson.ID)
	require.NoError(t, err)
	assert.Nil(t, lesson.CompletedBy)
	assert.True(t, lesson.IsDone)
}

func TestWithinTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := New()
	f := seed(t, s)

	boom := errors.New("boom")
	err := s.WithinTx(ctx, func(tx store.Store) error {
		grade := models.Grade{CampusID: f.campus.ID, Code: "G6", Name: "G6"}
		if err := tx.CreateGrade(ctx, &grade); err != nil {
			return err
		}
		subject := models.Subject{GradeID: grade.ID, Code: "SCI", Name: "Science"}
		if err := tx.CreateSubject(ctx, &subject); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = s.FindGrade(ctx, f.campus.ID, "G6")
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = s.WithinTx(ctx, func(tx store.Store) error {
		grade := models.Grade{CampusID: f.campus.ID, Code: "G6", Name: "G6"}
		return tx.CreateGrade(ctx, &grade)
	})
	require.NoError(t, err)
	_, err = s.FindGrade(ctx, f.campus.ID, "G6")
	assert.NoError(t, err)
}

func TestLessonContentIsNotAliased(t *testing.T) {
	ctx := context.Background()
	s := New()
	f := seed(t, s)

	lesson, err := s.GetLesson(ctx, f.lesson.ID)
	require.NoError(t, err)
	lesson.Activate[0].Description = "changed"

	again, err := s.GetLesson(ctx, f.lesson.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ask", again.Activate[0].Description)
}
