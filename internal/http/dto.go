package httpapi

import (
	"time"

	"belakoo-backend-go/internal/models"
	"belakoo-backend-go/internal/services"
)

type UserDTO struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	HasPushToken bool      `json:"has_push_token"`
	CreatedAt    time.Time `json:"created_at"`
}

func toUserDTO(u models.User) UserDTO {
	return UserDTO{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Role:         u.Role,
		IsActive:     u.IsActive,
		HasPushToken: u.PushToken != nil && *u.PushToken != "",
		CreatedAt:    u.CreatedAt,
	}
}

func toUserDTOs(users []models.User) []UserDTO {
	out := make([]UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, toUserDTO(u))
	}
	return out
}

type CampusDTO struct {
	ID          string    `json:"id"`
	Code        string    `json:"campus_code"`
	Name        string    `json:"name"`
	Icon        string    `json:"icon"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toCampusDTO(c models.Campus) CampusDTO {
	return CampusDTO{
		ID:          c.ID,
		Code:        c.Code,
		Name:        c.Name,
		Icon:        c.Icon,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

type GradeDTO struct {
	ID        string    `json:"id"`
	CampusID  string    `json:"campus_id"`
	Code      string    `json:"grade_code"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toGradeDTO(g models.Grade) GradeDTO {
	return GradeDTO{
		ID:        g.ID,
		CampusID:  g.CampusID,
		Code:      g.Code,
		Name:      g.Name,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

type SubjectDTO struct {
	ID        string    `json:"id"`
	GradeID   string    `json:"grade_id"`
	Code      string    `json:"subject_code"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	ColorCode string    `json:"colorcode"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toSubjectDTO(s models.Subject) SubjectDTO {
	return SubjectDTO{
		ID:        s.ID,
		GradeID:   s.GradeID,
		Code:      s.Code,
		Name:      s.Name,
		Icon:      s.Icon,
		ColorCode: s.ColorCode,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

type ProficiencyDTO struct {
	ID        string    `json:"id"`
	SubjectID string    `json:"subject_id"`
	Code      string    `json:"proficiency_code"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toProficiencyDTO(p models.Proficiency) ProficiencyDTO {
	return ProficiencyDTO{
		ID:        p.ID,
		SubjectID: p.SubjectID,
		Code:      p.Code,
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

type LessonDTO struct {
	ID                      string              `json:"id"`
	Code                    string              `json:"lesson_code"`
	Name                    string              `json:"name"`
	SubjectID               string              `json:"subject_id"`
	GradeID                 string              `json:"grade_id"`
	ProficiencyID           string              `json:"proficiency_id"`
	Objective               string              `json:"objective"`
	Duration                string              `json:"duration"`
	SpecificLearningOutcome string              `json:"specific_learning_outcome"`
	BehavioralOutcome       string              `json:"behavioral_outcome"`
	MaterialsRequired       string              `json:"materials_required"`
	Resources               string              `json:"resources"`
	Activate                models.ContentItems `json:"activate"`
	Acquire                 models.ContentItems `json:"acquire"`
	Apply                   models.ContentItems `json:"apply"`
	Assess                  models.ContentItems `json:"assess"`
	IsDone                  bool                `json:"is_done"`
	Verified                bool                `json:"verified"`
	CompletedBy             *string             `json:"completed_by"`
	CompletedAt             *time.Time          `json:"completed_at"`
	CreatedAt               time.Time           `json:"created_at"`
	UpdatedAt               time.Time           `json:"updated_at"`
}

func toLessonDTO(l models.Lesson) LessonDTO {
	return LessonDTO{
		ID:                      l.ID,
		Code:                    l.Code,
		Name:                    l.Name,
		SubjectID:               l.SubjectID,
		GradeID:                 l.GradeID,
		ProficiencyID:           l.ProficiencyID,
		Objective:               l.Objective,
		Duration:                l.Duration,
		SpecificLearningOutcome: l.SpecificLearningOutcome,
		BehavioralOutcome:       l.BehavioralOutcome,
		MaterialsRequired:       l.MaterialsRequired,
		Resources:               l.Resources,
		Activate:                orEmpty(l.Activate),
		Acquire:                 orEmpty(l.Acquire),
		Apply:                   orEmpty(l.Apply),
		Assess:                  orEmpty(l.Assess),
		IsDone:                  l.IsDone,
		Verified:                l.Verified,
		CompletedBy:             l.CompletedBy,
		CompletedAt:             l.CompletedAt,
		CreatedAt:               l.CreatedAt,
		UpdatedAt:               l.UpdatedAt,
	}
}

func orEmpty(items models.ContentItems) models.ContentItems {
	if items == nil {
		return models.ContentItems{}
	}
	return items
}

type CampusDetailDTO struct {
	CampusDTO
	Grades []GradeDTO `json:"grades"`
}

type GradeDetailDTO struct {
	GradeDTO
	Subjects []SubjectDTO `json:"subjects"`
}

type SubjectDetailDTO struct {
	SubjectDTO
	Proficiencies []ProficiencyDTO `json:"proficiencies"`
}

type ProficiencyLessonsDTO struct {
	Proficiency ProficiencyDTO `json:"proficiency"`
	Subject     SubjectDTO     `json:"subject"`
	Lessons     []LessonDTO    `json:"lessons"`
}

type LessonDetailDTO struct {
	LessonDTO
	SubjectName     string `json:"subject_name"`
	GradeName       string `json:"grade_name"`
	ProficiencyName string `json:"proficiency_name"`
	CompletedByName string `json:"completed_by_name,omitempty"`
}

func toCampusDetailDTO(d services.CampusDetail) CampusDetailDTO {
	out := CampusDetailDTO{CampusDTO: toCampusDTO(d.Campus), Grades: make([]GradeDTO, 0, len(d.Grades))}
	for _, g := range d.Grades {
		out.Grades = append(out.Grades, toGradeDTO(g))
	}
	return out
}

func toGradeDetailDTO(d services.GradeDetail) GradeDetailDTO {
	out := GradeDetailDTO{GradeDTO: toGradeDTO(d.Grade), Subjects: make([]SubjectDTO, 0, len(d.Subjects))}
	for _, s := range d.Subjects {
		out.Subjects = append(out.Subjects, toSubjectDTO(s))
	}
	return out
}

func toSubjectDetailDTO(d services.SubjectDetail) SubjectDetailDTO {
	out := SubjectDetailDTO{SubjectDTO: toSubjectDTO(d.Subject), Proficiencies: make([]ProficiencyDTO, 0, len(d.Proficiencies))}
	for _, p := range d.Proficiencies {
		out.Proficiencies = append(out.Proficiencies, toProficiencyDTO(p))
	}
	return out
}

func toProficiencyLessonsDTO(d services.ProficiencyLessons) ProficiencyLessonsDTO {
	out := ProficiencyLessonsDTO{
		Proficiency: toProficiencyDTO(d.Proficiency),
		Subject:     toSubjectDTO(d.Subject),
		Lessons:     make([]LessonDTO, 0, len(d.Lessons)),
	}
	for _, l := range d.Lessons {
		out.Lessons = append(out.Lessons, toLessonDTO(l))
	}
	return out
}

func toLessonDetailDTO(d services.LessonDetail) LessonDetailDTO {
	return LessonDetailDTO{
		LessonDTO:       toLessonDTO(d.Lesson),
		SubjectName:     d.SubjectName,
		GradeName:       d.GradeName,
		ProficiencyName: d.ProficiencyName,
		CompletedByName: d.CompletedByName,
	}
}

// Requests

type CampusRequest struct {
	Code        *string `json:"campus_code" validate:"omitempty,notblank,max=10"`
	Name        *string `json:"name" validate:"omitempty,notblank,max=255"`
	Icon        *string `json:"icon"`
	Description *string `json:"description"`
}

func (r CampusRequest) input() services.CampusInput {
	return services.CampusInput{Code: r.Code, Name: r.Name, Icon: r.Icon, Description: r.Description}
}

type GradeRequest struct {
	CampusID *string `json:"campus_id" validate:"omitempty,uuid"`
	Code     *string `json:"grade_code" validate:"omitempty,notblank,max=10"`
	Name     *string `json:"name" validate:"omitempty,max=255"`
}

func (r GradeRequest) input() services.GradeInput {
	return services.GradeInput{CampusID: r.CampusID, Code: r.Code, Name: r.Name}
}

type SubjectRequest struct {
	GradeID   *string `json:"grade_id" validate:"omitempty,uuid"`
	Code      *string `json:"subject_code" validate:"omitempty,notblank,max=10"`
	Name      *string `json:"name" validate:"omitempty,max=255"`
	Icon      *string `json:"icon"`
	ColorCode *string `json:"colorcode" validate:"omitempty,max=10"`
}

func (r SubjectRequest) input() services.SubjectInput {
	return services.SubjectInput{GradeID: r.GradeID, Code: r.Code, Name: r.Name, Icon: r.Icon, ColorCode: r.ColorCode}
}

type ProficiencyRequest struct {
	SubjectID *string `json:"subject_id" validate:"omitempty,uuid"`
	Code      *string `json:"proficiency_code" validate:"omitempty,notblank,max=10"`
	Name      *string `json:"name" validate:"omitempty,max=255"`
}

func (r ProficiencyRequest) input() services.ProficiencyInput {
	return services.ProficiencyInput{SubjectID: r.SubjectID, Code: r.Code, Name: r.Name}
}

type LessonRequest struct {
	Code                    *string              `json:"lesson_code" validate:"omitempty,notblank,max=100"`
	Name                    *string              `json:"name" validate:"omitempty,notblank,max=255"`
	SubjectID               *string              `json:"subject_id" validate:"omitempty,uuid"`
	GradeID                 *string              `json:"grade_id" validate:"omitempty,uuid"`
	ProficiencyID           *string              `json:"proficiency_id" validate:"omitempty,uuid"`
	Objective               *string              `json:"objective"`
	Duration                *string              `json:"duration" validate:"omitempty,max=50"`
	SpecificLearningOutcome *string              `json:"specific_learning_outcome"`
	BehavioralOutcome       *string              `json:"behavioral_outcome"`
	MaterialsRequired       *string              `json:"materials_required"`
	Resources               *string              `json:"resources"`
	Activate                *models.ContentItems `json:"activate"`
	Acquire                 *models.ContentItems `json:"acquire"`
	Apply                   *models.ContentItems `json:"apply"`
	Assess                  *models.ContentItems `json:"assess"`
	IsDone                  *bool                `json:"is_done"`
	Verified                *bool                `json:"verified"`
}

func (r LessonRequest) input() services.LessonInput {
	return services.LessonInput{
		Code:                    r.Code,
		Name:                    r.Name,
		SubjectID:               r.SubjectID,
		GradeID:                 r.GradeID,
		ProficiencyID:           r.ProficiencyID,
		Objective:               r.Objective,
		Duration:                r.Duration,
		SpecificLearningOutcome: r.SpecificLearningOutcome,
		BehavioralOutcome:       r.BehavioralOutcome,
		MaterialsRequired:       r.MaterialsRequired,
		Resources:               r.Resources,
		Activate:                r.Activate,
		Acquire:                 r.Acquire,
		Apply:                   r.Apply,
		Assess:                  r.Assess,
		IsDone:                  r.IsDone,
		Verified:                r.Verified,
	}
}

type VerifyRequest struct {
	Verified *bool `json:"verified"`
}

type IngestCSVRequest struct {
	Directory  string `json:"directory" validate:"max=255"`
	CampusCode string `json:"campus_code" validate:"max=10"`
}

type IngestSheetsRequest struct {
	SpreadsheetID string `json:"spreadsheet_id" validate:"required,notblank"`
	CampusCode    string `json:"campus_code" validate:"max=10"`
}

type SheetListResponse struct {
	SpreadsheetID string   `json:"spreadsheet_id"`
	Sheets        []string `json:"sheets"`
}
