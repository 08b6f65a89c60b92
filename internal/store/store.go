// Package store declares the persistence contracts for the content hierarchy
// and users. Implementations live in the postgres and memory subpackages.
package store

import (
	"context"
	"errors"

	"belakoo-backend-go/internal/models"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("unique constraint violated")
)

type CampusStore interface {
	CreateCampus(ctx context.Context, campus *models.Campus) error
	GetCampus(ctx context.Context, id string) (models.Campus, error)
	GetCampusByCode(ctx context.Context, code string) (models.Campus, error)
	ListCampuses(ctx context.Context) ([]models.Campus, error)
	UpdateCampus(ctx context.Context, campus *models.Campus) error
	DeleteCampus(ctx context.Context, id string) error
	CampusCodeTaken(ctx context.Context, code, excludeID string) (bool, error)
}

type GradeStore interface {
	CreateGrade(ctx context.Context, grade *models.Grade) error
	GetGrade(ctx context.Context, id string) (models.Grade, error)
	FindGrade(ctx context.Context, campusID, code string) (models.Grade, error)
	ListGrades(ctx context.Context, campusID string) ([]models.Grade, error)
	UpdateGrade(ctx context.Context, grade *models.Grade) error
	DeleteGrade(ctx context.Context, id string) error
	GradeCodeTaken(ctx context.Context, campusID, code, excludeID string) (bool, error)
}

type SubjectStore interface {
	CreateSubject(ctx context.Context, subject *models.Subject) error
	GetSubject(ctx context.Context, id string) (models.Subject, error)
	FindSubject(ctx context.Context, gradeID, code string) (models.Subject, error)
	ListSubjects(ctx context.Context, gradeID string) ([]models.Subject, error)
	UpdateSubject(ctx context.Context, subject *models.Subject) error
	DeleteSubject(ctx context.Context, id string) error
	SubjectCodeTaken(ctx context.Context, gradeID, code, excludeID string) (bool, error)
}

type ProficiencyStore interface {
	CreateProficiency(ctx context.Context, proficiency *models.Proficiency) error
	GetProficiency(ctx context.Context, id string) (models.Proficiency, error)
	FindProficiency(ctx context.Context, subjectID, code string) (models.Proficiency, error)
	ListProficiencies(ctx context.Context, subjectID string) ([]models.Proficiency, error)
	UpdateProficiency(ctx context.Context, proficiency *models.Proficiency) error
	DeleteProficiency(ctx context.Context, id string) error
	ProficiencyCodeTaken(ctx context.Context, subjectID, code, excludeID string) (bool, error)
}

// LessonFilter narrows ListLessons; empty fields are ignored.
type LessonFilter struct {
	SubjectID     string
	GradeID       string
	ProficiencyID string
}

type LessonStore interface {
	CreateLesson(ctx context.Context, lesson *models.Lesson) error
	GetLesson(ctx context.Context, id string) (models.Lesson, error)
	GetLessonByCode(ctx context.Context, code string) (models.Lesson, error)
	ListLessons(ctx context.Context, filter LessonFilter) ([]models.Lesson, error)
	UpdateLesson(ctx context.Context, lesson *models.Lesson) error
	DeleteLesson(ctx context.Context, id string) error
	DeleteAllLessons(ctx context.Context) (int64, error)
	LessonCodeTaken(ctx context.Context, code, excludeID string) (bool, error)
}

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id string) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	ListUsers(ctx context.Context, role string) ([]models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id string) error
}

// Store is the full persistence surface. WithinTx runs fn against a
// transactional view; a non-nil error from fn rolls every write back.
type Store interface {
	CampusStore
	GradeStore
	SubjectStore
	ProficiencyStore
	LessonStore
	UserStore

	WithinTx(ctx context.Context, fn func(tx Store) error) error
	Ping(ctx context.Context) error
}
