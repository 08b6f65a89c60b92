package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

const (
	RoleAdmin     = "ADMIN"
	RoleVolunteer = "VOLUNTEER"
)

type User struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	Name         string    `db:"name"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	IsActive     bool      `db:"is_active"`
	PushToken    *string   `db:"push_token"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type Campus struct {
	ID          string    `db:"id"`
	Code        string    `db:"campus_code"`
	Name        string    `db:"name"`
	Icon        string    `db:"icon"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type Grade struct {
	ID        string    `db:"id"`
	CampusID  string    `db:"campus_id"`
	Code      string    `db:"grade_code"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type Subject struct {
	ID        string    `db:"id"`
	GradeID   string    `db:"grade_id"`
	Code      string    `db:"subject_code"`
	Name      string    `db:"name"`
	Icon      string    `db:"icon"`
	ColorCode string    `db:"colorcode"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type Proficiency struct {
	ID        string    `db:"id"`
	SubjectID string    `db:"subject_id"`
	Code      string    `db:"proficiency_code"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type Lesson struct {
	ID                      string       `db:"id"`
	Code                    string       `db:"lesson_code"`
	Name                    string       `db:"name"`
	SubjectID               string       `db:"subject_id"`
	GradeID                 string       `db:"grade_id"`
	ProficiencyID           string       `db:"proficiency_id"`
	Objective               string       `db:"objective"`
	Duration                string       `db:"duration"`
	SpecificLearningOutcome string       `db:"specific_learning_outcome"`
	BehavioralOutcome       string       `db:"behavioral_outcome"`
	MaterialsRequired       string       `db:"materials_required"`
	Resources               string       `db:"resources"`
	Activate                ContentItems `db:"activate"`
	Acquire                 ContentItems `db:"acquire"`
	Apply                   ContentItems `db:"apply"`
	Assess                  ContentItems `db:"assess"`
	IsDone                  bool         `db:"is_done"`
	Verified                bool         `db:"verified"`
	CompletedBy             *string      `db:"completed_by"`
	CompletedAt             *time.Time   `db:"completed_at"`
	CreatedAt               time.Time    `db:"created_at"`
	UpdatedAt               time.Time    `db:"updated_at"`
}

// ContentItem is one titled step of a lesson phase.
type ContentItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ContentItems keeps display order and is stored as a JSON array.
type ContentItems []ContentItem

func (c ContentItems) Value() (driver.Value, error) {
	if c == nil {
		return "[]", nil
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

func (c *ContentItems) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*c = ContentItems{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("content items: unsupported source type")
	}
	items := ContentItems{}
	if err := json.Unmarshal(raw, &items); err != nil {
		return err
	}
	*c = items
	return nil
}

// Clone returns a copy that does not share backing storage.
func (c ContentItems) Clone() ContentItems {
	if c == nil {
		return nil
	}
	out := make(ContentItems, len(c))
	copy(out, c)
	return out
}
