package ingest

import (
	"testing"

	"belakoo-backend-go/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestFind(t *testing.T) {
	rows := [][]string{
		{"", "OBJECTIVE", "Learn fractions"},
		{"Resources", "", "https://example.com/sheet"},
		{"HOOK"},
		{"OBJECTIVE", "second objective"},
		{"Duration", ""},
	}

	tests := []struct {
		name    string
		keyword string
		offset  int
		want    string
		ok      bool
	}{
		{"adjacent value", "OBJECTIVE", valueOffset, "Learn fractions", true},
		{"resource offset", "Resources", resourceOffset, "https://example.com/sheet", true},
		{"last column", "HOOK", valueOffset, "", false},
		{"missing keyword", "TEACH", valueOffset, "", false},
		{"empty adjacent cell", "Duration", valueOffset, "", true},
		{"case sensitive", "objective", valueOffset, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Find(rows, tt.keyword, tt.offset)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindStopsAtFirstMatch(t *testing.T) {
	rows := [][]string{
		{"note", "HOOK"},
		{"HOOK", "never read"},
	}
	_, ok := Extract(rows, "HOOK")
	assert.False(t, ok, "a match in the last column ends the search")
}

func TestExtractStructuredKeepsKeywordOrder(t *testing.T) {
	rows := [][]string{
		{"INFORM", "Tell"},
		{"HOOK", "Ask a question"},
	}
	got := ExtractStructured(rows, activateKeywords...)
	assert.Equal(t, models.ContentItems{
		{Title: "HOOK", Description: "Ask a question"},
		{Title: "INFORM", Description: "Tell"},
	}, got)

	assert.Equal(t, models.ContentItems{}, ExtractStructured(rows, acquireKeywords...))
}

func TestExtractFields(t *testing.T) {
	rows := [][]string{
		{"LESSON CODE", " MATH.G5.01.P1 "},
		{"SUBJECT", "Mathematics"},
		{"Resources", "link", "https://example.com"},
		{"ENGAGE", "Play", "TEACH", "Explain"},
		{"SHARE", "Pairs"},
	}
	f := ExtractFields(rows)

	assert.Equal(t, " MATH.G5.01.P1 ", f.LessonCode)
	assert.Equal(t, "Mathematics", f.SubjectName)
	assert.Equal(t, "https://example.com", f.Resources)
	assert.Equal(t, models.ContentItems{{Title: "ENGAGE", Description: "Play"}, {Title: "TEACH", Description: "Explain"}}, f.Acquire)
	assert.Equal(t, models.ContentItems{{Title: "SHARE", Description: "Pairs"}}, f.Assess)
	assert.Empty(t, f.Activate)
	assert.True(t, f.Found[KeywordResources])
	assert.True(t, f.Found[KeywordTeach])
	assert.False(t, f.Found[KeywordObjective])
}
