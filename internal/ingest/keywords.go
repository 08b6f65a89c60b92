package ingest

import "belakoo-backend-go/internal/models"

const (
	KeywordLessonCode         = "LESSON CODE"
	KeywordSubject            = "SUBJECT"
	KeywordObjective          = "OBJECTIVE"
	KeywordDuration           = "Duration"
	KeywordLearningOutcome    = "Specific Learning Outcome"
	KeywordBehaviouralOutcome = "Behavioural Outcome"
	KeywordMaterials          = "Materials Required"
	KeywordResources          = "Resources"

	KeywordHook                = "HOOK"
	KeywordAssess              = "ASSESS"
	KeywordInform              = "INFORM"
	KeywordEngage              = "ENGAGE"
	KeywordTeach               = "TEACH"
	KeywordGuidedPractice      = "GUIDED PRACTICE"
	KeywordIndependentPractice = "INDEPENDENT PRACTICE"
	KeywordAssessment          = "ASSESSMENT"
	KeywordShare               = "SHARE"
)

// Content keyword groups per lesson phase. Order within a group is display order.
var (
	activateKeywords = []string{KeywordHook, KeywordAssess, KeywordInform}
	acquireKeywords  = []string{KeywordEngage, KeywordTeach}
	applyKeywords    = []string{KeywordGuidedPractice, KeywordIndependentPractice}
	assessKeywords   = []string{KeywordAssessment, KeywordShare}
)

// Keywords lists every recognized keyword in report order.
var Keywords = []string{
	KeywordLessonCode, KeywordSubject, KeywordObjective, KeywordDuration,
	KeywordLearningOutcome, KeywordBehaviouralOutcome, KeywordMaterials, KeywordResources,
	KeywordHook, KeywordAssess, KeywordInform,
	KeywordEngage, KeywordTeach,
	KeywordGuidedPractice, KeywordIndependentPractice,
	KeywordAssessment, KeywordShare,
}

const (
	valueOffset    = 1
	resourceOffset = 2
)

// Find scans rows top to bottom and stops at the first cell equal to
// keyword. It returns the cell offset columns to its right; ok is false
// when the keyword is absent or that cell does not exist.
func Find(rows [][]string, keyword string, offset int) (string, bool) {
	for _, row := range rows {
		for col, cell := range row {
			if cell != keyword {
				continue
			}
			if col+offset >= len(row) {
				return "", false
			}
			return row[col+offset], true
		}
	}
	return "", false
}

// Extract returns the value right next to keyword.
func Extract(rows [][]string, keyword string) (string, bool) {
	return Find(rows, keyword, valueOffset)
}

// ExtractResource returns the value two columns right of keyword.
func ExtractResource(rows [][]string, keyword string) (string, bool) {
	return Find(rows, keyword, resourceOffset)
}

// ExtractStructured concatenates {title: keyword, description: value} items
// for each keyword found, in the order the keywords are given.
func ExtractStructured(rows [][]string, keywords ...string) models.ContentItems {
	items := models.ContentItems{}
	for _, keyword := range keywords {
		if value, ok := Extract(rows, keyword); ok {
			items = append(items, models.ContentItem{Title: keyword, Description: value})
		}
	}
	return items
}

// Fields is everything pulled out of one sheet.
type Fields struct {
	LessonCode              string
	SubjectName             string
	Objective               string
	Duration                string
	SpecificLearningOutcome string
	BehavioralOutcome       string
	Materials               string
	Resources               string
	Activate                models.ContentItems
	Acquire                 models.ContentItems
	Apply                   models.ContentItems
	Assess                  models.ContentItems

	// Found records which keywords were located in the sheet.
	Found map[string]bool
}

func ExtractFields(rows [][]string) Fields {
	f := Fields{Found: make(map[string]bool, len(Keywords))}
	text := func(keyword string, dst *string) {
		if value, ok := Extract(rows, keyword); ok {
			*dst = value
			f.Found[keyword] = true
		}
	}
	text(KeywordLessonCode, &f.LessonCode)
	text(KeywordSubject, &f.SubjectName)
	text(KeywordObjective, &f.Objective)
	text(KeywordDuration, &f.Duration)
	text(KeywordLearningOutcome, &f.SpecificLearningOutcome)
	text(KeywordBehaviouralOutcome, &f.BehavioralOutcome)
	text(KeywordMaterials, &f.Materials)
	if value, ok := ExtractResource(rows, KeywordResources); ok {
		f.Resources = value
		f.Found[KeywordResources] = true
	}

	f.Activate = ExtractStructured(rows, activateKeywords...)
	f.Acquire = ExtractStructured(rows, acquireKeywords...)
	f.Apply = ExtractStructured(rows, applyKeywords...)
	f.Assess = ExtractStructured(rows, assessKeywords...)
	for _, group := range []models.ContentItems{f.Activate, f.Acquire, f.Apply, f.Assess} {
		for _, item := range group {
			f.Found[item.Title] = true
		}
	}
	return f
}
