package memory

import (
	"context"

	"belakoo-backend-go/internal/models"
	"belakoo-backend-go/internal/store"
)

func (s *Store) CreateLesson(ctx context.Context, lesson *models.Lesson) error {
	return s.write(func(t *tables) error {
		if err := checkLessonRefs(t, lesson); err != nil {
			return err
		}
		if lessonCodeTaken(t, lesson.Code, "") {
			return store.ErrConflict
		}
		lesson.ID = newID(lesson.ID)
		lesson.CreatedAt = s.now()
		lesson.UpdatedAt = lesson.CreatedAt
		t.lessons[lesson.ID] = copyLesson(*lesson)
		return nil
	})
}

func (s *Store) GetLesson(ctx context.Context, id string) (models.Lesson, error) {
	var lesson models.Lesson
	err := s.read(func(t *tables) error {
		found, ok := t.lessons[id]
		if !ok {
			return store.ErrNotFound
		}
		lesson = copyLesson(found)
		return nil
	})
	return lesson, err
}

func (s *Store) GetLessonByCode(ctx context.Context, code string) (models.Lesson, error) {
	var lesson models.Lesson
	err := s.read(func(t *tables) error {
		for _, l := range t.lessons {
			if l.Code == code {
				lesson = copyLesson(l)
				return nil
			}
		}
		return store.ErrNotFound
	})
	return lesson, err
}

func (s *Store) ListLessons(ctx context.Context, filter store.LessonFilter) ([]models.Lesson, error) {
	var lessons []models.Lesson
	err := s.read(func(t *tables) error {
		all := sortedValues(t.lessons, func(a, b models.Lesson) bool { return a.Code < b.Code })
		lessons = []models.Lesson{}
		for _, l := range all {
			if filter.SubjectID != "" && l.SubjectID != filter.SubjectID {
				continue
			}
			if filter.GradeID != "" && l.GradeID != filter.GradeID {
				continue
			}
			if filter.ProficiencyID != "" && l.ProficiencyID != filter.ProficiencyID {
				continue
			}
			lessons = append(lessons, copyLesson(l))
		}
		return nil
	})
	return lessons, err
}

func (s *Store) UpdateLesson(ctx context.Context, lesson *models.Lesson) error {
	return s.write(func(t *tables) error {
		current, ok := t.lessons[lesson.ID]
		if !ok {
			return store.ErrNotFound
		}
		if err := checkLessonRefs(t, lesson); err != nil {
			return err
		}
		if lessonCodeTaken(t, lesson.Code, lesson.ID) {
			return store.ErrConflict
		}
		lesson.CreatedAt = current.CreatedAt
		lesson.UpdatedAt = s.now()
		t.lessons[lesson.ID] = copyLesson(*lesson)
		return nil
	})
}

func (s *Store) DeleteLesson(ctx context.Context, id string) error {
	return s.write(func(t *tables) error {
		if _, ok := t.lessons[id]; !ok {
			return store.ErrNotFound
		}
		delete(t.lessons, id)
		return nil
	})
}

func (s *Store) DeleteAllLessons(ctx context.Context) (int64, error) {
	var n int64
	err := s.write(func(t *tables) error {
		n = int64(len(t.lessons))
		t.lessons = map[string]models.Lesson{}
		return nil
	})
	return n, err
}

func (s *Store) LessonCodeTaken(ctx context.Context, code, excludeID string) (bool, error) {
	var taken bool
	err := s.read(func(t *tables) error {
		taken = lessonCodeTaken(t, code, excludeID)
		return nil
	})
	return taken, err
}

func lessonCodeTaken(t *tables, code, excludeID string) bool {
	for id, l := range t.lessons {
		if l.Code == code && id != excludeID {
			return true
		}
	}
	return false
}

func checkLessonRefs(t *tables, lesson *models.Lesson) error {
	if _, ok := t.subjects[lesson.SubjectID]; !ok {
		return store.ErrNotFound
	}
	if _, ok := t.grades[lesson.GradeID]; !ok {
		return store.ErrNotFound
	}
	if _, ok := t.proficiencies[lesson.ProficiencyID]; !ok {
		return store.ErrNotFound
	}
	if lesson.CompletedBy != nil {
		if _, ok := t.users[*lesson.CompletedBy]; !ok {
			return store.ErrNotFound
		}
	}
	return nil
}
