package services

import (
	"context"
	"errors"
	"strings"

	"belakoo-backend-go/internal/logger"
	"belakoo-backend-go/internal/models"
	"belakoo-backend-go/internal/store"

	"github.com/google/uuid"
)

// ContentService manages the Campus > Grade > Subject > Proficiency > Lesson
// hierarchy. Inputs use pointers so updates only touch supplied fields.
type ContentService struct {
	store store.Store
	log   *logger.Logger
}

func NewContentService(st store.Store, log *logger.Logger) *ContentService {
	return &ContentService{store: st, log: log}
}

type CampusInput struct {
	Code        *string
	Name        *string
	Icon        *string
	Description *string
}

type GradeInput struct {
	CampusID *string
	Code     *string
	Name     *string
}

type SubjectInput struct {
	GradeID   *string
	Code      *string
	Name      *string
	Icon      *string
	ColorCode *string
}

type ProficiencyInput struct {
	SubjectID *string
	Code      *string
	Name      *string
}

type LessonInput struct {
	Code                    *string
	Name                    *string
	SubjectID               *string
	GradeID                 *string
	ProficiencyID           *string
	Objective               *string
	Duration                *string
	SpecificLearningOutcome *string
	BehavioralOutcome       *string
	MaterialsRequired       *string
	Resources               *string
	Activate                *models.ContentItems
	Acquire                 *models.ContentItems
	Apply                   *models.ContentItems
	Assess                  *models.ContentItems
	IsDone                  *bool
	Verified                *bool
}

type CampusDetail struct {
	Campus models.Campus
	Grades []models.Grade
}

type GradeDetail struct {
	Grade    models.Grade
	Subjects []models.Subject
}

type SubjectDetail struct {
	Subject       models.Subject
	Proficiencies []models.Proficiency
}

type ProficiencyLessons struct {
	Proficiency models.Proficiency
	Subject     models.Subject
	Lessons     []models.Lesson
}

type LessonDetail struct {
	Lesson          models.Lesson
	SubjectName     string
	GradeName       string
	ProficiencyName string
	CompletedByName string
}

// Browsing

func (s *ContentService) ListCampuses(ctx context.Context) ([]models.Campus, error) {
	return s.store.ListCampuses(ctx)
}

func (s *ContentService) CampusDetail(ctx context.Context, id string) (CampusDetail, error) {
	campus, err := s.store.GetCampus(ctx, id)
	if err != nil {
		return CampusDetail{}, fromStore(err, "Campus")
	}
	grades, err := s.store.ListGrades(ctx, campus.ID)
	if err != nil {
		return CampusDetail{}, err
	}
	return CampusDetail{Campus: campus, Grades: grades}, nil
}

func (s *ContentService) GradeDetail(ctx context.Context, id string) (GradeDetail, error) {
	grade, err := s.store.GetGrade(ctx, id)
	if err != nil {
		return GradeDetail{}, fromStore(err, "Grade")
	}
	subjects, err := s.store.ListSubjects(ctx, grade.ID)
	if err != nil {
		return GradeDetail{}, err
	}
	return GradeDetail{Grade: grade, Subjects: subjects}, nil
}

func (s *ContentService) SubjectDetail(ctx context.Context, id string) (SubjectDetail, error) {
	subject, err := s.store.GetSubject(ctx, id)
	if err != nil {
		return SubjectDetail{}, fromStore(err, "Subject")
	}
	profs, err := s.store.ListProficiencies(ctx, subject.ID)
	if err != nil {
		return SubjectDetail{}, err
	}
	return SubjectDetail{Subject: subject, Proficiencies: profs}, nil
}

func (s *ContentService) ProficiencyLessons(ctx context.Context, id string) (ProficiencyLessons, error) {
	prof, err := s.store.GetProficiency(ctx, id)
	if err != nil {
		return ProficiencyLessons{}, fromStore(err, "Proficiency")
	}
	subject, err := s.store.GetSubject(ctx, prof.SubjectID)
	if err != nil {
		return ProficiencyLessons{}, fromStore(err, "Subject")
	}
	lessons, err := s.store.ListLessons(ctx, store.LessonFilter{ProficiencyID: prof.ID})
	if err != nil {
		return ProficiencyLessons{}, err
	}
	return ProficiencyLessons{Proficiency: prof, Subject: subject, Lessons: lessons}, nil
}

// LessonDetail accepts a lesson id or a lesson code.
func (s *ContentService) LessonDetail(ctx context.Context, ref string) (LessonDetail, error) {
	lesson, err := findLesson(ctx, s.store, ref)
	if err != nil {
		return LessonDetail{}, err
	}
	detail := LessonDetail{Lesson: lesson}
	if subject, err := s.store.GetSubject(ctx, lesson.SubjectID); err == nil {
		detail.SubjectName = subject.Name
	}
	if grade, err := s.store.GetGrade(ctx, lesson.GradeID); err == nil {
		detail.GradeName = grade.Name
	}
	if prof, err := s.store.GetProficiency(ctx, lesson.ProficiencyID); err == nil {
		detail.ProficiencyName = prof.Name
	}
	if lesson.CompletedBy != nil {
		if user, err := s.store.GetUser(ctx, *lesson.CompletedBy); err == nil {
			detail.CompletedByName = user.Name
		}
	}
	return detail, nil
}

func findLesson(ctx context.Context, st store.LessonStore, ref string) (models.Lesson, error) {
	ref = strings.TrimSpace(ref)
	var lesson models.Lesson
	var err error
	if _, parseErr := uuid.Parse(ref); parseErr == nil {
		lesson, err = st.GetLesson(ctx, ref)
	} else {
		lesson, err = st.GetLessonByCode(ctx, ref)
	}
	return lesson, fromStore(err, "Lesson")
}

// Campuses

func (s *ContentService) CreateCampus(ctx context.Context, in CampusInput) (models.Campus, error) {
	campus := models.Campus{
		Code:        trimmed(in.Code),
		Name:        trimmed(in.Name),
		Icon:        trimmed(in.Icon),
		Description: valueOr(in.Description, ""),
	}
	if campus.Code == "" || campus.Name == "" {
		return models.Campus{}, ErrBadRequest("campus_code and name are required")
	}
	if err := s.checkTaken(s.store.CampusCodeTaken(ctx, campus.Code, "")); err != nil {
		return models.Campus{}, withMessage(err, "campus_code must be unique")
	}
	if err := s.store.CreateCampus(ctx, &campus); err != nil {
		return models.Campus{}, fromStore(err, "Campus")
	}
	s.log.Info("campus created", "campus_id", campus.ID, "campus_code", campus.Code)
	return campus, nil
}

func (s *ContentService) UpdateCampus(ctx context.Context, id string, in CampusInput) (models.Campus, error) {
	campus, err := s.store.GetCampus(ctx, id)
	if err != nil {
		return models.Campus{}, fromStore(err, "Campus")
	}
	if in.Code != nil {
		code := trimmed(in.Code)
		if code == "" {
			return models.Campus{}, ErrBadRequest("campus_code cannot be empty")
		}
		if err := s.checkTaken(s.store.CampusCodeTaken(ctx, code, campus.ID)); err != nil {
			return models.Campus{}, withMessage(err, "campus_code must be unique")
		}
		campus.Code = code
	}
	if in.Name != nil {
		campus.Name = trimmed(in.Name)
	}
	if in.Icon != nil {
		campus.Icon = trimmed(in.Icon)
	}
	if in.Description != nil {
		campus.Description = *in.Description
	}
	if err := s.store.UpdateCampus(ctx, &campus); err != nil {
		return models.Campus{}, fromStore(err, "Campus")
	}
	return campus, nil
}

func (s *ContentService) DeleteCampus(ctx context.Context, id string) error {
	if err := s.store.DeleteCampus(ctx, id); err != nil {
		return fromStore(err, "Campus")
	}
	s.log.Info("campus deleted", "campus_id", id)
	return nil
}

// Grades

func (s *ContentService) CreateGrade(ctx context.Context, in GradeInput) (models.Grade, error) {
	grade := models.Grade{
		CampusID: trimmed(in.CampusID),
		Code:     trimmed(in.Code),
		Name:     trimmed(in.Name),
	}
	if grade.CampusID == "" || grade.Code == "" {
		return models.Grade{}, ErrBadRequest("campus_id and grade_code are required")
	}
	if grade.Name == "" {
		grade.Name = grade.Code
	}
	if _, err := s.store.GetCampus(ctx, grade.CampusID); err != nil {
		return models.Grade{}, fromStore(err, "Campus")
	}
	if err := s.checkTaken(s.store.GradeCodeTaken(ctx, grade.CampusID, grade.Code, "")); err != nil {
		return models.Grade{}, withMessage(err, "grade_code must be unique within the campus")
	}
	if err := s.store.CreateGrade(ctx, &grade); err != nil {
		return models.Grade{}, fromStore(err, "Grade")
	}
	return grade, nil
}

func (s *ContentService) UpdateGrade(ctx context.Context, id string, in GradeInput) (models.Grade, error) {
	grade, err := s.store.GetGrade(ctx, id)
	if err != nil {
		return models.Grade{}, fromStore(err, "Grade")
	}
	if in.CampusID != nil {
		grade.CampusID = trimmed(in.CampusID)
		if _, err := s.store.GetCampus(ctx, grade.CampusID); err != nil {
			return models.Grade{}, fromStore(err, "Campus")
		}
	}
	if in.Code != nil {
		grade.Code = trimmed(in.Code)
		if grade.Code == "" {
			return models.Grade{}, ErrBadRequest("grade_code cannot be empty")
		}
	}
	if in.Name != nil {
		grade.Name = trimmed(in.Name)
	}
	if err := s.checkTaken(s.store.GradeCodeTaken(ctx, grade.CampusID, grade.Code, grade.ID)); err != nil {
		return models.Grade{}, withMessage(err, "grade_code must be unique within the campus")
	}
	if err := s.store.UpdateGrade(ctx, &grade); err != nil {
		return models.Grade{}, fromStore(err, "Grade")
	}
	return grade, nil
}

func (s *ContentService) DeleteGrade(ctx context.Context, id string) error {
	return fromStore(s.store.DeleteGrade(ctx, id), "Grade")
}

// Subjects

func (s *ContentService) CreateSubject(ctx context.Context, in SubjectInput) (models.Subject, error) {
	subject := models.Subject{
		GradeID:   trimmed(in.GradeID),
		Code:      trimmed(in.Code),
		Name:      trimmed(in.Name),
		Icon:      trimmed(in.Icon),
		ColorCode: trimmed(in.ColorCode),
	}
	if subject.GradeID == "" || subject.Code == "" || subject.Name == "" {
		return models.Subject{}, ErrBadRequest("grade_id, subject_code and name are required")
	}
	if _, err := s.store.GetGrade(ctx, subject.GradeID); err != nil {
		return models.Subject{}, fromStore(err, "Grade")
	}
	if err := s.checkTaken(s.store.SubjectCodeTaken(ctx, subject.GradeID, subject.Code, "")); err != nil {
		return models.Subject{}, withMessage(err, "subject_code must be unique within the grade")
	}
	if err := s.store.CreateSubject(ctx, &subject); err != nil {
		return models.Subject{}, fromStore(err, "Subject")
	}
	return subject, nil
}

func (s *ContentService) UpdateSubject(ctx context.Context, id string, in SubjectInput) (models.Subject, error) {
	subject, err := s.store.GetSubject(ctx, id)
	if err != nil {
		return models.Subject{}, fromStore(err, "Subject")
	}
	if in.GradeID != nil {
		subject.GradeID = trimmed(in.GradeID)
		if _, err := s.store.GetGrade(ctx, subject.GradeID); err != nil {
			return models.Subject{}, fromStore(err, "Grade")
		}
	}
	if in.Code != nil {
		subject.Code = trimmed(in.Code)
		if subject.Code == "" {
			return models.Subject{}, ErrBadRequest("subject_code cannot be empty")
		}
	}
	if in.Name != nil {
		subject.Name = trimmed(in.Name)
	}
	if in.Icon != nil {
		subject.Icon = trimmed(in.Icon)
	}
	if in.ColorCode != nil {
		subject.ColorCode = trimmed(in.ColorCode)
	}
	if err := s.checkTaken(s.store.SubjectCodeTaken(ctx, subject.GradeID, subject.Code, subject.ID)); err != nil {
		return models.Subject{}, withMessage(err, "subject_code must be unique within the grade")
	}
	err = s.store.WithinTx(ctx, func(tx store.Store) error {
		if err := tx.UpdateSubject(ctx, &subject); err != nil {
			return fromStore(err, "Subject")
		}
		return relinkLessons(ctx, tx, store.LessonFilter{SubjectID: subject.ID}, subject)
	})
	if err != nil {
		return models.Subject{}, err
	}
	return subject, nil
}

func (s *ContentService) DeleteSubject(ctx context.Context, id string) error {
	return fromStore(s.store.DeleteSubject(ctx, id), "Subject")
}

// Proficiencies

func (s *ContentService) CreateProficiency(ctx context.Context, in ProficiencyInput) (models.Proficiency, error) {
	prof := models.Proficiency{
		SubjectID: trimmed(in.SubjectID),
		Code:      trimmed(in.Code),
		Name:      trimmed(in.Name),
	}
	if prof.SubjectID == "" || prof.Code == "" {
		return models.Proficiency{}, ErrBadRequest("subject_id and proficiency_code are required")
	}
	if prof.Name == "" {
		prof.Name = prof.Code
	}
	if _, err := s.store.GetSubject(ctx, prof.SubjectID); err != nil {
		return models.Proficiency{}, fromStore(err, "Subject")
	}
	if err := s.checkTaken(s.store.ProficiencyCodeTaken(ctx, prof.SubjectID, prof.Code, "")); err != nil {
		return models.Proficiency{}, withMessage(err, "proficiency_code must be unique within the subject")
	}
	if err := s.store.CreateProficiency(ctx, &prof); err != nil {
		return models.Proficiency{}, fromStore(err, "Proficiency")
	}
	return prof, nil
}

func (s *ContentService) UpdateProficiency(ctx context.Context, id string, in ProficiencyInput) (models.Proficiency, error) {
	prof, err := s.store.GetProficiency(ctx, id)
	if err != nil {
		return models.Proficiency{}, fromStore(err, "Proficiency")
	}
	if in.SubjectID != nil {
		prof.SubjectID = trimmed(in.SubjectID)
		if _, err := s.store.GetSubject(ctx, prof.SubjectID); err != nil {
			return models.Proficiency{}, fromStore(err, "Subject")
		}
	}
	if in.Code != nil {
		prof.Code = trimmed(in.Code)
		if prof.Code == "" {
			return models.Proficiency{}, ErrBadRequest("proficiency_code cannot be empty")
		}
	}
	if in.Name != nil {
		prof.Name = trimmed(in.Name)
	}
	if err := s.checkTaken(s.store.ProficiencyCodeTaken(ctx, prof.SubjectID, prof.Code, prof.ID)); err != nil {
		return models.Proficiency{}, withMessage(err, "proficiency_code must be unique within the subject")
	}
	err = s.store.WithinTx(ctx, func(tx store.Store) error {
		if err := tx.UpdateProficiency(ctx, &prof); err != nil {
			return fromStore(err, "Proficiency")
		}
		subject, err := tx.GetSubject(ctx, prof.SubjectID)
		if err != nil {
			return fromStore(err, "Subject")
		}
		return relinkLessons(ctx, tx, store.LessonFilter{ProficiencyID: prof.ID}, subject)
	})
	if err != nil {
		return models.Proficiency{}, err
	}
	return prof, nil
}

func (s *ContentService) DeleteProficiency(ctx context.Context, id string) error {
	return fromStore(s.store.DeleteProficiency(ctx, id), "Proficiency")
}

// Lessons

func (s *ContentService) CreateLesson(ctx context.Context, in LessonInput) (models.Lesson, error) {
	lesson := models.Lesson{
		Code:          trimmed(in.Code),
		Name:          trimmed(in.Name),
		SubjectID:     trimmed(in.SubjectID),
		GradeID:       trimmed(in.GradeID),
		ProficiencyID: trimmed(in.ProficiencyID),
		Activate:      models.ContentItems{},
		Acquire:       models.ContentItems{},
		Apply:         models.ContentItems{},
		Assess:        models.ContentItems{},
	}
	if lesson.Code == "" || lesson.Name == "" || lesson.SubjectID == "" || lesson.GradeID == "" || lesson.ProficiencyID == "" {
		return models.Lesson{}, ErrBadRequest("lesson_code, name, subject_id, grade_id and proficiency_id are required")
	}
	applyLessonInput(&lesson, in)
	if err := checkLessonHierarchy(ctx, s.store, lesson); err != nil {
		return models.Lesson{}, err
	}
	if err := s.checkTaken(s.store.LessonCodeTaken(ctx, lesson.Code, "")); err != nil {
		return models.Lesson{}, withMessage(err, "lesson_code must be unique")
	}
	if err := s.store.CreateLesson(ctx, &lesson); err != nil {
		return models.Lesson{}, fromStore(err, "Lesson")
	}
	return lesson, nil
}

// UpdateLesson applies the supplied fields. Verified implies done and
// not-done implies unverified; the three references must stay consistent.
func (s *ContentService) UpdateLesson(ctx context.Context, ref string, in LessonInput) (models.Lesson, error) {
	lesson, err := findLesson(ctx, s.store, ref)
	if err != nil {
		return models.Lesson{}, err
	}
	if in.Code != nil {
		code := trimmed(in.Code)
		if code == "" {
			return models.Lesson{}, ErrBadRequest("lesson_code cannot be empty")
		}
		if err := s.checkTaken(s.store.LessonCodeTaken(ctx, code, lesson.ID)); err != nil {
			return models.Lesson{}, withMessage(err, "lesson_code must be unique")
		}
		lesson.Code = code
	}
	if in.Name != nil {
		lesson.Name = trimmed(in.Name)
	}
	if in.SubjectID != nil {
		lesson.SubjectID = trimmed(in.SubjectID)
	}
	if in.GradeID != nil {
		lesson.GradeID = trimmed(in.GradeID)
	}
	if in.ProficiencyID != nil {
		lesson.ProficiencyID = trimmed(in.ProficiencyID)
	}
	applyLessonInput(&lesson, in)
	if err := checkLessonHierarchy(ctx, s.store, lesson); err != nil {
		return models.Lesson{}, err
	}
	if err := s.store.UpdateLesson(ctx, &lesson); err != nil {
		return models.Lesson{}, fromStore(err, "Lesson")
	}
	return lesson, nil
}

func (s *ContentService) DeleteLesson(ctx context.Context, ref string) error {
	lesson, err := findLesson(ctx, s.store, ref)
	if err != nil {
		return err
	}
	return fromStore(s.store.DeleteLesson(ctx, lesson.ID), "Lesson")
}

// DeleteAllLessons clears lesson content ahead of a re-import.
func (s *ContentService) DeleteAllLessons(ctx context.Context) (int64, error) {
	n, err := s.store.DeleteAllLessons(ctx)
	if err != nil {
		return 0, err
	}
	s.log.Warn("all lessons deleted", "count", n)
	return n, nil
}

func applyLessonInput(lesson *models.Lesson, in LessonInput) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setString(&lesson.Objective, in.Objective)
	setString(&lesson.Duration, in.Duration)
	setString(&lesson.SpecificLearningOutcome, in.SpecificLearningOutcome)
	setString(&lesson.BehavioralOutcome, in.BehavioralOutcome)
	setString(&lesson.MaterialsRequired, in.MaterialsRequired)
	setString(&lesson.Resources, in.Resources)

	setItems := func(dst *models.ContentItems, src *models.ContentItems) {
		if src == nil {
			return
		}
		if *src == nil {
			*dst = models.ContentItems{}
			return
		}
		*dst = src.Clone()
	}
	setItems(&lesson.Activate, in.Activate)
	setItems(&lesson.Acquire, in.Acquire)
	setItems(&lesson.Apply, in.Apply)
	setItems(&lesson.Assess, in.Assess)

	if in.IsDone != nil {
		lesson.IsDone = *in.IsDone
		if !lesson.IsDone {
			lesson.Verified = false
		}
	}
	if in.Verified != nil {
		lesson.Verified = *in.Verified
		if lesson.Verified {
			lesson.IsDone = true
		}
	}
}

// checkLessonHierarchy requires the proficiency to belong to the subject and
// the subject to belong to the grade.
func checkLessonHierarchy(ctx context.Context, st store.Store, lesson models.Lesson) error {
	subject, err := st.GetSubject(ctx, lesson.SubjectID)
	if err != nil {
		return fromStore(err, "Subject")
	}
	grade, err := st.GetGrade(ctx, lesson.GradeID)
	if err != nil {
		return fromStore(err, "Grade")
	}
	prof, err := st.GetProficiency(ctx, lesson.ProficiencyID)
	if err != nil {
		return fromStore(err, "Proficiency")
	}
	if subject.GradeID != grade.ID {
		return ErrBadRequest("subject does not belong to the grade")
	}
	if prof.SubjectID != subject.ID {
		return ErrBadRequest("proficiency does not belong to the subject")
	}
	return nil
}

// relinkLessons points the matched lessons at subject and its grade so a
// moved subject or proficiency carries its lessons along.
func relinkLessons(ctx context.Context, tx store.Store, filter store.LessonFilter, subject models.Subject) error {
	lessons, err := tx.ListLessons(ctx, filter)
	if err != nil {
		return err
	}
	for i := range lessons {
		lesson := lessons[i]
		if lesson.SubjectID == subject.ID && lesson.GradeID == subject.GradeID {
			continue
		}
		lesson.SubjectID = subject.ID
		lesson.GradeID = subject.GradeID
		if err := tx.UpdateLesson(ctx, &lesson); err != nil {
			return fromStore(err, "Lesson")
		}
	}
	return nil
}

func (s *ContentService) checkTaken(taken bool, err error) error {
	if err != nil {
		return err
	}
	if taken {
		return errTaken
	}
	return nil
}

var errTaken = errors.New("code taken")

// withMessage turns errTaken into a conflict carrying msg.
func withMessage(err error, msg string) error {
	if errors.Is(err, errTaken) {
		return ErrConflict(msg)
	}
	return err
}

func trimmed(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

func valueOr(p *string, fallback string) string {
	if p == nil {
		return fallback
	}
	return *p
}
