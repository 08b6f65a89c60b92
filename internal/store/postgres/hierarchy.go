package postgres

import (
	"context"

	"belakoo-backend-go/internal/models"
)

const (
	campusColumns      = `id, campus_code, name, icon, description, created_at, updated_at`
	gradeColumns       = `id, campus_id, grade_code, name, created_at, updated_at`
	subjectColumns     = `id, grade_id, subject_code, name, icon, colorcode, created_at, updated_at`
	proficiencyColumns = `id, subject_id, proficiency_code, name, created_at, updated_at`
)

func (s *Store) CreateCampus(ctx context.Context, campus *models.Campus) error {
	campus.ID = newID(campus.ID)
	campus.CreatedAt = now()
	campus.UpdatedAt = campus.CreatedAt
	return s.namedExec(ctx, `
INSERT INTO campuses (`+campusColumns+`)
VALUES (:id, :campus_code, :name, :icon, :description, :created_at, :updated_at)
`, campus)
}

func (s *Store) GetCampus(ctx context.Context, id string) (models.Campus, error) {
	var campus models.Campus
	err := s.get(ctx, &campus, `SELECT `+campusColumns+` FROM campuses WHERE id = $1`, id)
	return campus, err
}

func (s *Store) GetCampusByCode(ctx context.Context, code string) (models.Campus, error) {
	var campus models.Campus
	err := s.get(ctx, &campus, `SELECT `+campusColumns+` FROM campuses WHERE campus_code = $1`, code)
	return campus, err
}

func (s *Store) ListCampuses(ctx context.Context) ([]models.Campus, error) {
	campuses := []models.Campus{}
	err := s.selectAll(ctx, &campuses, `SELECT `+campusColumns+` FROM campuses ORDER BY name, campus_code`)
	return campuses, err
}

func (s *Store) UpdateCampus(ctx context.Context, campus *models.Campus) error {
	campus.UpdatedAt = now()
	return s.mustAffect(s.q.ExecContext(ctx, `
UPDATE campuses
SET campus_code = $2, name = $3, icon = $4, description = $5, updated_at = $6
WHERE id = $1
`, campus.ID, campus.Code, campus.Name, campus.Icon, campus.Description, campus.UpdatedAt))
}

func (s *Store) DeleteCampus(ctx context.Context, id string) error {
	return s.mustAffect(s.q.ExecContext(ctx, `DELETE FROM campuses WHERE id = $1`, id))
}

func (s *Store) CampusCodeTaken(ctx context.Context, code, excludeIDValue string) (bool, error) {
	return s.exists(ctx, `
SELECT EXISTS(
  SELECT 1 FROM campuses WHERE campus_code = $1 AND ($2::uuid IS NULL OR id <> $2::uuid)
)`, code, excludeID(excludeIDValue))
}

func (s *Store) CreateGrade(ctx context.Context, grade *models.Grade) error {
	grade.ID = newID(grade.ID)
	grade.CreatedAt = now()
	grade.UpdatedAt = grade.CreatedAt
	return s.namedExec(ctx, `
INSERT INTO grades (`+gradeColumns+`)
VALUES (:id, :campus_id, :grade_code, :name, :created_at, :updated_at)
`, grade)
}

func (s *Store) GetGrade(ctx context.Context, id string) (models.Grade, error) {
	var grade models.Grade
	err := s.get(ctx, &grade, `SELECT `+gradeColumns+` FROM grades WHERE id = $1`, id)
	return grade, err
}

func (s *Store) FindGrade(ctx context.Context, campusID, code string) (models.Grade, error) {
	var grade models.Grade
	err := s.get(ctx, &grade, `SELECT `+gradeColumns+` FROM grades WHERE campus_id = $1 AND grade_code = $2`, campusID, code)
	return grade, err
}

func (s *Store) ListGrades(ctx context.Context, campusID string) ([]models.Grade, error) {
	grades := []models.Grade{}
	err := s.selectAll(ctx, &grades, `SELECT `+gradeColumns+` FROM grades WHERE campus_id = $1 ORDER BY grade_code`, campusID)
	return grades, err
}

func (s *Store) UpdateGrade(ctx context.Context, grade *models.Grade) error {
	grade.UpdatedAt = now()
	return s.mustAffect(s.q.ExecContext(ctx, `
UPDATE grades SET campus_id = $2, grade_code = $3, name = $4, updated_at = $5 WHERE id = $1
`, grade.ID, grade.CampusID, grade.Code, grade.Name, grade.UpdatedAt))
}

func (s *Store) DeleteGrade(ctx context.Context, id string) error {
	return s.mustAffect(s.q.ExecContext(ctx, `DELETE FROM grades WHERE id = $1`, id))
}

func (s *Store) GradeCodeTaken(ctx context.Context, campusID, code, excludeIDValue string) (bool, error) {
	return s.exists(ctx, `
SELECT EXISTS(
  SELECT 1 FROM grades
  WHERE campus_id = $1 AND grade_code = $2 AND ($3::uuid IS NULL OR id <> $3::uuid)
)`, campusID, code, excludeID(excludeIDValue))
}

func (s *Store) CreateSubject(ctx context.Context, subject *models.Subject) error {
	subject.ID = newID(subject.ID)
	subject.CreatedAt = now()
	subject.UpdatedAt = subject.CreatedAt
	return s.namedExec(ctx, `
INSERT INTO subjects (`+subjectColumns+`)
VALUES (:id, :grade_id, :subject_code, :name, :icon, :colorcode, :created_at, :updated_at)
`, subject)
}

func (s *Store) GetSubject(ctx context.Context, id string) (models.Subject, error) {
	var subject models.Subject
	err := s.get(ctx, &subject, `SELECT `+subjectColumns+` FROM subjects WHERE id = $1`, id)
	return subject, err
}

func (s *Store) FindSubject(ctx context.Context, gradeID, code string) (models.Subject, error) {
	var subject models.Subject
	err := s.get(ctx, &subject, `SELECT `+subjectColumns+` FROM subjects WHERE grade_id = $1 AND subject_code = $2`, gradeID, code)
	return subject, err
}

func (s *Store) ListSubjects(ctx context.Context, gradeID string) ([]models.Subject, error) {
	subjects := []models.Subject{}
	err := s.selectAll(ctx, &subjects, `SELECT `+subjectColumns+` FROM subjects WHERE grade_id = $1 ORDER BY name, subject_code`, gradeID)
	return subjects, err
}

func (s *Store) UpdateSubject(ctx context.Context, subject *models.Subject) error {
	subject.UpdatedAt = now()
	return s.mustAffect(s.q.ExecContext(ctx, `
UPDATE subjects
SET grade_id = $2, subject_code = $3, name = $4, icon = $5, colorcode = $6, updated_at = $7
WHERE id = $1
`, subject.ID, subject.GradeID, subject.Code, subject.Name, subject.Icon, subject.ColorCode, subject.UpdatedAt))
}

func (s *Store) DeleteSubject(ctx context.Context, id string) error {
	return s.mustAffect(s.q.ExecContext(ctx, `DELETE FROM subjects WHERE id = $1`, id))
}

func (s *Store) SubjectCodeTaken(ctx context.Context, gradeID, code, excludeIDValue string) (bool, error) {
	return s.exists(ctx, `
SELECT EXISTS(
  SELECT 1 FROM subjects
  WHERE grade_id = $1 AND subject_code = $2 AND ($3::uuid IS NULL OR id <> $3::uuid)
)`, gradeID, code, excludeID(excludeIDValue))
}

func (s *Store) CreateProficiency(ctx context.Context, proficiency *models.Proficiency) error {
	proficiency.ID = newID(proficiency.ID)
	proficiency.CreatedAt = now()
	proficiency.UpdatedAt = proficiency.CreatedAt
	return s.namedExec(ctx, `
INSERT INTO proficiencies (`+proficiencyColumns+`)
VALUES (:id, :subject_id, :proficiency_code, :name, :created_at, :updated_at)
`, proficiency)
}

func (s *Store) GetProficiency(ctx context.Context, id string) (models.Proficiency, error) {
	var proficiency models.Proficiency
	err := s.get(ctx, &proficiency, `SELECT `+proficiencyColumns+` FROM proficiencies WHERE id = $1`, id)
	return proficiency, err
}

func (s *Store) FindProficiency(ctx context.Context, subjectID, code string) (models.Proficiency, error) {
	var proficiency models.Proficiency
	err := s.get(ctx, &proficiency, `
SELECT `+proficiencyColumns+` FROM proficiencies WHERE subject_id = $1 AND proficiency_code = $2
`, subjectID, code)
	return proficiency, err
}

func (s *Store) ListProficiencies(ctx context.Context, subjectID string) ([]models.Proficiency, error) {
	proficiencies := []models.Proficiency{}
	err := s.selectAll(ctx, &proficiencies, `
SELECT `+proficiencyColumns+` FROM proficiencies WHERE subject_id = $1 ORDER BY proficiency_code
`, subjectID)
	return proficiencies, err
}

func (s *Store) UpdateProficiency(ctx context.Context, proficiency *models.Proficiency) error {
	proficiency.UpdatedAt = now()
	return s.mustAffect(s.q.ExecContext(ctx, `
UPDATE proficiencies SET subject_id = $2, proficiency_code = $3, name = $4, updated_at = $5 WHERE id = $1
`, proficiency.ID, proficiency.SubjectID, proficiency.Code, proficiency.Name, proficiency.UpdatedAt))
}

func (s *Store) DeleteProficiency(ctx context.Context, id string) error {
	return s.mustAffect(s.q.ExecContext(ctx, `DELETE FROM proficiencies WHERE id = $1`, id))
}

func (s *Store) ProficiencyCodeTaken(ctx context.Context, subjectID, code, excludeIDValue string) (bool, error) {
	return s.exists(ctx, `
SELECT EXISTS(
  SELECT 1 FROM proficiencies
  WHERE subject_id = $1 AND proficiency_code = $2 AND ($3::uuid IS NULL OR id <> $3::uuid)
)`, subjectID, code, excludeID(excludeIDValue))
}
