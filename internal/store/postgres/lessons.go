package postgres

import (
	"context"
	"strconv"
	"strings"

	"belakoo-backend-go/internal/models"
	"belakoo-backend-go/internal/store"

	"github.com/jmoiron/sqlx"
)

const lessonColumns = `id, lesson_code, name, subject_id, grade_id, proficiency_id, objective, duration,
  specific_learning_outcome, behavioral_outcome, materials_required, resources,
  activate, acquire, apply, assess, is_done, verified, completed_by, completed_at, created_at, updated_at`

func (s *Store) CreateLesson(ctx context.Context, lesson *models.Lesson) error {
	lesson.ID = newID(lesson.ID)
	lesson.CreatedAt = now()
	lesson.UpdatedAt = lesson.CreatedAt
	return s.namedExec(ctx, `
INSERT INTO lessons (`+lessonColumns+`)
VALUES (
  :id, :lesson_code, :name, :subject_id, :grade_id, :proficiency_id, :objective, :duration,
  :specific_learning_outcome, :behavioral_outcome, :materials_required, :resources,
  :activate, :acquire, :apply, :assess, :is_done, :verified, :completed_by, :completed_at, :created_at, :updated_at
)`, lesson)
}

func (s *Store) GetLesson(ctx context.Context, id string) (models.Lesson, error) {
	var lesson models.Lesson
	err := s.get(ctx, &lesson, `SELECT `+lessonColumns+` FROM lessons WHERE id = $1`, id)
	return lesson, err
}

func (s *Store) GetLessonByCode(ctx context.Context, code string) (models.Lesson, error) {
	var lesson models.Lesson
	err := s.get(ctx, &lesson, `SELECT `+lessonColumns+` FROM lessons WHERE lesson_code = $1`, code)
	return lesson, err
}

func (s *Store) ListLessons(ctx context.Context, filter store.LessonFilter) ([]models.Lesson, error) {
	where := []string{}
	args := []interface{}{}
	add := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		where = append(where, column+" = $"+strconv.Itoa(len(args)))
	}
	add("subject_id", filter.SubjectID)
	add("grade_id", filter.GradeID)
	add("proficiency_id", filter.ProficiencyID)

	query := `SELECT ` + lessonColumns + ` FROM lessons`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY lesson_code"

	lessons := []models.Lesson{}
	err := s.selectAll(ctx, &lessons, query, args...)
	return lessons, err
}

func (s *Store) UpdateLesson(ctx context.Context, lesson *models.Lesson) error {
	lesson.UpdatedAt = now()
	res, err := sqlx.NamedExecContext(ctx, s.q, `
UPDATE lessons SET
  lesson_code = :lesson_code, name = :name, subject_id = :subject_id, grade_id = :grade_id,
  proficiency_id = :proficiency_id, objective = :objective, duration = :duration,
  specific_learning_outcome = :specific_learning_outcome, behavioral_outcome = :behavioral_outcome,
  materials_required = :materials_required, resources = :resources,
  activate = :activate, acquire = :acquire, apply = :apply, assess = :assess,
  is_done = :is_done, verified = :verified, completed_by = :completed_by, completed_at = :completed_at,
  updated_at = :updated_at
WHERE id = :id`, lesson)
	return s.mustAffect(res, err)
}

func (s *Store) DeleteLesson(ctx context.Context, id string) error {
	return s.mustAffect(s.q.ExecContext(ctx, `DELETE FROM lessons WHERE id = $1`, id))
}

func (s *Store) DeleteAllLessons(ctx context.Context) (int64, error) {
	res, err := s.q.ExecContext(ctx, `DELETE FROM lessons`)
	if err != nil {
		return 0, mapError(err)
	}
	return res.RowsAffected()
}

func (s *Store) LessonCodeTaken(ctx context.Context, code, excludeIDValue string) (bool, error) {
	return s.exists(ctx, `
SELECT EXISTS(
  SELECT 1 FROM lessons WHERE lesson_code = $1 AND ($2::uuid IS NULL OR id <> $2::uuid)
)`, code, excludeID(excludeIDValue))
}
