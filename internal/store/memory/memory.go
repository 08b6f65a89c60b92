// Package memory is an in-process store.Store used by tests and local runs.
// It enforces the same scoped uniqueness, cascade and set-null rules as the
// SQL schema.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"belakoo-backend-go/internal/models"
	"belakoo-backend-go/internal/store"

	"github.com/google/uuid"
)

type tables struct {
	campuses      map[string]models.Campus
	grades        map[string]models.Grade
	subjects      map[string]models.Subject
	proficiencies map[string]models.Proficiency
	lessons       map[string]models.Lesson
	users         map[string]models.User
}

func newTables() *tables {
	return &tables{
		campuses:      map[string]models.Campus{},
		grades:        map[string]models.Grade{},
		subjects:      map[string]models.Subject{},
		proficiencies: map[string]models.Proficiency{},
		lessons:       map[string]models.Lesson{},
		users:         map[string]models.User{},
	}
}

func (t *tables) clone() *tables {
	out := newTables()
	for k, v := range t.campuses {
		out.campuses[k] = v
	}
	for k, v := range t.grades {
		out.grades[k] = v
	}
	for k, v := range t.subjects {
		out.subjects[k] = v
	}
	for k, v := range t.proficiencies {
		out.proficiencies[k] = v
	}
	for k, v := range t.lessons {
		out.lessons[k] = copyLesson(v)
	}
	for k, v := range t.users {
		out.users[k] = copyUser(v)
	}
	return out
}

type Store struct {
	mu   *sync.RWMutex
	txMu *sync.Mutex
	data **tables
	inTx bool

	// Now is swappable so tests can pin timestamps.
	Now func() time.Time
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	data := newTables()
	return &Store{
		mu:   &sync.RWMutex{},
		txMu: &sync.Mutex{},
		data: &data,
		Now:  func() time.Time { return time.Now().UTC() },
	}
}

// WithinTx serialises transactions and restores a snapshot when fn fails.
func (s *Store) WithinTx(ctx context.Context, fn func(tx store.Store) error) error {
	if s.inTx {
		return fn(s)
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapshot := (*s.data).clone()
	s.mu.RUnlock()

	view := &Store{mu: s.mu, txMu: s.txMu, data: s.data, inTx: true, Now: s.Now}
	if err := fn(view); err != nil {
		s.mu.Lock()
		*s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) read(fn func(t *tables) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(*s.data)
}

func (s *Store) write(fn func(t *tables) error) error {
	if !s.inTx {
		s.txMu.Lock()
		defer s.txMu.Unlock()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(*s.data)
}

func (s *Store) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now()
}

func newID(current string) string {
	if current != "" {
		return current
	}
	return uuid.NewString()
}

func copyLesson(l models.Lesson) models.Lesson {
	l.Activate = l.Activate.Clone()
	l.Acquire = l.Acquire.Clone()
	l.Apply = l.Apply.Clone()
	l.Assess = l.Assess.Clone()
	if l.CompletedBy != nil {
		v := *l.CompletedBy
		l.CompletedBy = &v
	}
	if l.CompletedAt != nil {
		v := *l.CompletedAt
		l.CompletedAt = &v
	}
	return l
}

func copyUser(u models.User) models.User {
	if u.PushToken != nil {
		v := *u.PushToken
		u.PushToken = &v
	}
	return u
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func sortedValues[T any](m map[string]T, less func(a, b T) bool) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
