package memory

import (
	"context"

	"belakoo-backend-go/internal/models"
	"belakoo-backend-go/internal/store"
)

func (s *Store) CreateCampus(ctx context.Context, campus *models.Campus) error {
	return s.write(func(t *tables) error {
		if campusCodeTaken(t, campus.Code, "") {
			return store.ErrConflict
		}
		campus.ID = newID(campus.ID)
		campus.CreatedAt = s.now()
		campus.UpdatedAt = campus.CreatedAt
		t.campuses[campus.ID] = *campus
		return nil
	})
}

func (s *Store) GetCampus(ctx context.Context, id string) (models.Campus, error) {
	var campus models.Campus
	err := s.read(func(t *tables) error {
		found, ok := t.campuses[id]
		if !ok {
			return store.ErrNotFound
		}
		campus = found
		return nil
	})
	return campus, err
}

func (s *Store) GetCampusByCode(ctx context.Context, code string) (models.Campus, error) {
	var campus models.Campus
	err := s.read(func(t *tables) error {
		for _, c := range t.campuses {
			if c.Code == code {
				campus = c
				return nil
			}
		}
		return store.ErrNotFound
	})
	return campus, err
}

func (s *Store) ListCampuses(ctx context.Context) ([]models.Campus, error) {
	var campuses []models.Campus
	err := s.read(func(t *tables) error {
		campuses = sortedValues(t.campuses, func(a, b models.Campus) bool {
			if a.Name != b.Name {
				return a.Name < b.Name
			}
			return a.Code < b.Code
		})
		return nil
	})
	return campuses, err
}

func (s *Store) UpdateCampus(ctx context.Context, campus *models.Campus) error {
	return s.write(func(t *tables) error {
		current, ok := t.campuses[campus.ID]
		if !ok {
			return store.ErrNotFound
		}
		if campusCodeTaken(t, campus.Code, campus.ID) {
			return store.ErrConflict
		}
		campus.CreatedAt = current.CreatedAt
		campus.UpdatedAt = s.now()
		t.campuses[campus.ID] = *campus
		return nil
	})
}

func (s *Store) DeleteCampus(ctx context.Context, id string) error {
	return s.write(func(t *tables) error {
		if _, ok := t.campuses[id]; !ok {
			return store.ErrNotFound
		}
		delete(t.campuses, id)
		for gid, g := range t.grades {
			if g.CampusID == id {
				deleteGrade(t, gid)
			}
		}
		return nil
	})
}

func (s *Store) CampusCodeTaken(ctx context.Context, code, excludeID string) (bool, error) {
	var taken bool
	err := s.read(func(t *tables) error {
		taken = campusCodeTaken(t, code, excludeID)
		return nil
	})
	return taken, err
}

func (s *Store) CreateGrade(ctx context.Context, grade *models.Grade) error {
	return s.write(func(t *tables) error {
		if _, ok := t.campuses[grade.CampusID]; !ok {
			return store.ErrNotFound
		}
		if gradeCodeTaken(t, grade.CampusID, grade.Code, "") {
			return store.ErrConflict
		}
		grade.ID = newID(grade.ID)
		grade.CreatedAt = s.now()
		grade.UpdatedAt = grade.CreatedAt
		t.grades[grade.ID] = *grade
		return nil
	})
}

func (s *Store) GetGrade(ctx context.Context, id string) (models.Grade, error) {
	var grade models.Grade
	err := s.read(func(t *tables) error {
		found, ok := t.grades[id]
		if !ok {
			return store.ErrNotFound
		}
		grade = found
		return nil
	})
	return grade, err
}

func (s *Store) FindGrade(ctx context.Context, campusID, code string) (models.Grade, error) {
	var grade models.Grade
	err := s.read(func(t *tables) error {
		for _, g := range t.grades {
			if g.CampusID == campusID && g.Code == code {
				grade = g
				return nil
			}
		}
		return store.ErrNotFound
	})
	return grade, err
}

func (s *Store) ListGrades(ctx context.Context, campusID string) ([]models.Grade, error) {
	var grades []models.Grade
	err := s.read(func(t *tables) error {
		all := sortedValues(t.grades, func(a, b models.Grade) bool { return a.Code < b.Code })
		grades = []models.Grade{}
		for _, g := range all {
			if g.CampusID == campusID {
				grades = append(grades, g)
			}
		}
		return nil
	})
	return grades, err
}

func (s *Store) UpdateGrade(ctx context.Context, grade *models.Grade) error {
	return s.write(func(t *tables) error {
		current, ok := t.grades[grade.ID]
		if !ok {
			return store.ErrNotFound
		}
		if _, ok := t.campuses[grade.CampusID]; !ok {
			return store.ErrNotFound
		}
		if gradeCodeTaken(t, grade.CampusID, grade.Code, grade.ID) {
			return store.ErrConflict
		}
		grade.CreatedAt = current.CreatedAt
		grade.UpdatedAt = s.now()
		t.grades[grade.ID] = *grade
		return nil
	})
}

func (s *Store) DeleteGrade(ctx context.Context, id string) error {
	return s.write(func(t *tables) error {
		if _, ok := t.grades[id]; !ok {
			return store.ErrNotFound
		}
		deleteGrade(t, id)
		return nil
	})
}

func (s *Store) GradeCodeTaken(ctx context.Context, campusID, code, excludeID string) (bool, error) {
	var taken bool
	err := s.read(func(t *tables) error {
		taken = gradeCodeTaken(t, campusID, code, excludeID)
		return nil
	})
	return taken, err
}

func (s *Store) CreateSubject(ctx context.Context, subject *models.Subject) error {
	return s.write(func(t *tables) error {
		if _, ok := t.grades[subject.GradeID]; !ok {
			return store.ErrNotFound
		}
		if subjectCodeTaken(t, subject.GradeID, subject.Code, "") {
			return store.ErrConflict
		}
		subject.ID = newID(subject.ID)
		subject.CreatedAt = s.now()
		subject.UpdatedAt = subject.CreatedAt
		t.subjects[subject.ID] = *subject
		return nil
	})
}

func (s *Store) GetSubject(ctx context.Context, id string) (models.Subject, error) {
	var subject models.Subject
	err := s.read(func(t *tables) error {
		found, ok := t.subjects[id]
		if !ok {
			return store.ErrNotFound
		}
		subject = found
		return nil
	})
	return subject, err
}

func (s *Store) FindSubject(ctx context.Context, gradeID, code string) (models.Subject, error) {
	var subject models.Subject
	err := s.read(func(t *tables) error {
		for _, sub := range t.subjects {
			if sub.GradeID == gradeID && sub.Code == code {
				subject = sub
				return nil
			}
		}
		return store.ErrNotFound
	})
	return subject, err
}

func (s *Store) ListSubjects(ctx context.Context, gradeID string) ([]models.Subject, error) {
	var subjects []models.Subject
	err := s.read(func(t *tables) error {
		all := sortedValues(t.subjects, func(a, b models.Subject) bool {
			if a.Name != b.Name {
				return a.Name < b.Name
			}
			return a.Code < b.Code
		})
		subjects = []models.Subject{}
		for _, sub := range all {
			if sub.GradeID == gradeID {
				subjects = append(subjects, sub)
			}
		}
		return nil
	})
	return subjects, err
}

func (s *Store) UpdateSubject(ctx context.Context, subject *models.Subject) error {
	return s.write(func(t *tables) error {
		current, ok := t.subjects[subject.ID]
		if !ok {
			return store.ErrNotFound
		}
		if _, ok := t.grades[subject.GradeID]; !ok {
			return store.ErrNotFound
		}
		if subjectCodeTaken(t, subject.GradeID, subject.Code, subject.ID) {
			return store.ErrConflict
		}
		subject.CreatedAt = current.CreatedAt
		subject.UpdatedAt = s.now()
		t.subjects[subject.ID] = *subject
		return nil
	})
}

func (s *Store) DeleteSubject(ctx context.Context, id string) error {
	return s.write(func(t *tables) error {
		if _, ok := t.subjects[id]; !ok {
			return store.ErrNotFound
		}
		deleteSubject(t, id)
		return nil
	})
}

func (s *Store) SubjectCodeTaken(ctx context.Context, gradeID, code, excludeID string) (bool, error) {
	var taken bool
	err := s.read(func(t *tables) error {
		taken = subjectCodeTaken(t, gradeID, code, excludeID)
		return nil
	})
	return taken, err
}

func (s *Store) CreateProficiency(ctx context.Context, proficiency *models.Proficiency) error {
	return s.write(func(t *tables) error {
		if _, ok := t.subjects[proficiency.SubjectID]; !ok {
			return store.ErrNotFound
		}
		if proficiencyCodeTaken(t, proficiency.SubjectID, proficiency.Code, "") {
			return store.ErrConflict
		}
		proficiency.ID = newID(proficiency.ID)
		proficiency.CreatedAt = s.now()
		proficiency.UpdatedAt = proficiency.CreatedAt
		t.proficiencies[proficiency.ID] = *proficiency
		return nil
	})
}

func (s *Store) GetProficiency(ctx context.Context, id string) (models.Proficiency, error) {
	var proficiency models.Proficiency
	err := s.read(func(t *tables) error {
		found, ok := t.proficiencies[id]
		if !ok {
			return store.ErrNotFound
		}
		proficiency = found
		return nil
	})
	return proficiency, err
}

func (s *Store) FindProficiency(ctx context.Context, subjectID, code string) (models.Proficiency, error) {
	var proficiency models.Proficiency
	err := s.read(func(t *tables) error {
		for _, p := range t.proficiencies {
			if p.SubjectID == subjectID && p.Code == code {
				proficiency = p
				return nil
			}
		}
		return store.ErrNotFound
	})
	return proficiency, err
}

func (s *Store) ListProficiencies(ctx context.Context, subjectID string) ([]models.Proficiency, error) {
	var proficiencies []models.Proficiency
	err := s.read(func(t *tables) error {
		all := sortedValues(t.proficiencies, func(a, b models.Proficiency) bool { return a.Code < b.Code })
		proficiencies = []models.Proficiency{}
		for _, p := range all {
			if p.SubjectID == subjectID {
				proficiencies = append(proficiencies, p)
			}
		}
		return nil
	})
	return proficiencies, err
}

func (s *Store) UpdateProficiency(ctx context.Context, proficiency *models.Proficiency) error {
	return s.write(func(t *tables) error {
		current, ok := t.proficiencies[proficiency.ID]
		if !ok {
			return store.ErrNotFound
		}
		if _, ok := t.subjects[proficiency.SubjectID]; !ok {
			return store.ErrNotFound
		}
		if proficiencyCodeTaken(t, proficiency.SubjectID, proficiency.Code, proficiency.ID) {
			return store.ErrConflict
		}
		proficiency.CreatedAt = current.CreatedAt
		proficiency.UpdatedAt = s.now()
		t.proficiencies[proficiency.ID] = *proficiency
		return nil
	})
}

func (s *Store) DeleteProficiency(ctx context.Context, id string) error {
	return s.write(func(t *tables) error {
		if _, ok := t.proficiencies[id]; !ok {
			return store.ErrNotFound
		}
		deleteProficiency(t, id)
		return nil
	})
}

func (s *Store) ProficiencyCodeTaken(ctx context.Context, subjectID, code, excludeID string) (bool, error) {
	var taken bool
	err := s.read(func(t *tables) error {
		taken = proficiencyCodeTaken(t, subjectID, code, excludeID)
		return nil
	})
	return taken, err
}

func campusCodeTaken(t *tables, code, excludeID string) bool {
	for id, c := range t.campuses {
		if c.Code == code && id != excludeID {
			return true
		}
	}
	return false
}

func gradeCodeTaken(t *tables, campusID, code, excludeID string) bool {
	for id, g := range t.grades {
		if g.CampusID == campusID && g.Code == code && id != excludeID {
			return true
		}
	}
	return false
}

func subjectCodeTaken(t *tables, gradeID, code, excludeID string) bool {
	for id, sub := range t.subjects {
		if sub.GradeID == gradeID && sub.Code == code && id != excludeID {
			return true
		}
	}
	return false
}

func proficiencyCodeTaken(t *tables, subjectID, code, excludeID string) bool {
	for id, p := range t.proficiencies {
		if p.SubjectID == subjectID && p.Code == code && id != excludeID {
			return true
		}
	}
	return false
}

// The delete helpers mirror ON DELETE CASCADE down to lessons.

func deleteGrade(t *tables, id string) {
	delete(t.grades, id)
	for sid, sub := range t.subjects {
		if sub.GradeID == id {
			deleteSubject(t, sid)
		}
	}
	for lid, l := range t.lessons {
		if l.GradeID == id {
			delete(t.lessons, lid)
		}
	}
}

func deleteSubject(t *tables, id string) {
	delete(t.subjects, id)
	for pid, p := range t.proficiencies {
		if p.SubjectID == id {
			deleteProficiency(t, pid)
		}
	}
	for lid, l := range t.lessons {
		if l.SubjectID == id {
			delete(t.lessons, lid)
		}
	}
}

func deleteProficiency(t *tables, id string) {
	delete(t.proficiencies, id)
	for lid, l := range t.lessons {
		if l.ProficiencyID == id {
			delete(t.lessons, lid)
		}
	}
}
