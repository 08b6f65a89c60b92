package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"belakoo-backend-go/internal/logger"
	"belakoo-backend-go/internal/models"
	"belakoo-backend-go/internal/notify"
	"belakoo-backend-go/internal/store/memory"

	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notify.Notification
	err  error
}

func (r *recordingNotifier) Notify(ctx context.Context, n notify.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
	return r.err
}

var testTokens = TokenService{
	Secret:     []byte("test-secret"),
	Issuer:     "belakoo-test",
	AccessTTL:  time.Hour,
	RefreshTTL: 24 * time.Hour,
}

type env struct {
	store    *memory.Store
	log      *logger.Logger
	notifier *recordingNotifier
	hub      *ActivityHub
	content  *ContentService
	lessons  *LessonService
	users    *UserService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	st := memory.New()
	log := logger.NewNop()
	n := &recordingNotifier{}
	hub := NewActivityHub()
	return &env{
		store:    st,
		log:      log,
		notifier: n,
		hub:      hub,
		content:  NewContentService(st, log),
		lessons:  NewLessonService(st, n, hub, log),
		users:    NewUserService(st, testTokens, log),
	}
}

type tree struct {
	campus      models.Campus
	grade       models.Grade
	subject     models.Subject
	proficiency models.Proficiency
	lesson      models.Lesson
}

func ptr[T any](v T) *T { return &v }

func (e *env) seedTree(t *testing.T) tree {
	t.Helper()
	ctx := context.Background()
	var tr tree
	var err error
	tr.campus, err = e.content.CreateCampus(ctx, CampusInput{Code: ptr("c1"), Name: ptr("Main campus")})
	require.NoError(t, err)
	tr.grade, err = e.content.CreateGrade(ctx, GradeInput{CampusID: ptr(tr.campus.ID), Code: ptr("G5")})
	require.NoError(t, err)
	tr.subject, err = e.content.CreateSubject(ctx, SubjectInput{GradeID: ptr(tr.grade.ID), Code: ptr("MATH"), Name: ptr("Maths")})
	require.NoError(t, err)
	tr.proficiency, err = e.content.CreateProficiency(ctx, ProficiencyInput{SubjectID: ptr(tr.subject.ID), Code: ptr("P1")})
	require.NoError(t, err)
	tr.lesson, err = e.content.CreateLesson(ctx, LessonInput{
		Code:          ptr("MATH.G5.01.P1"),
		Name:          ptr("Lesson 01"),
		SubjectID:     ptr(tr.subject.ID),
		GradeID:       ptr(tr.grade.ID),
		ProficiencyID: ptr(tr.proficiency.ID),
		Objective:     ptr("Learn fractions"),
	})
	require.NoError(t, err)
	return tr
}

func (e *env) newUser(t *testing.T, email, role string, pushToken *string) models.User {
	t.Helper()
	user := models.User{Email: email, Name: email, Role: role, IsActive: true, PushToken: pushToken}
	require.NoError(t, e.store.CreateUser(context.Background(), &user))
	return user
}

func statusOf(err error) int {
	var svcErr ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Status
	}
	return 0
}
