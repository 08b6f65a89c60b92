package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLessonCode(t *testing.T) {
	code, err := ParseLessonCode("MATH.G5.01.P1")
	require.NoError(t, err)
	assert.Equal(t, LessonCode{Raw: "MATH.G5.01.P1", Subject: "MATH", Grade: "G5", Number: "01", Proficiency: "P1"}, code)
	assert.Equal(t, "MATH.G5.01.P1", code.String())
}

func TestParseLessonCodeArity(t *testing.T) {
	for _, raw := range []string{"", "BAD", "BAD.CODE", "A.B.C", "A.B.C.D.E", "MATH.G5.01.P1."} {
		t.Run(raw, func(t *testing.T) {
			_, err := ParseLessonCode(raw)
			assert.ErrorIs(t, err, ErrInvalidLessonCode)
		})
	}
}

func TestParseLessonCodeAllowsEmptyParts(t *testing.T) {
	code, err := ParseLessonCode("..01.")
	require.NoError(t, err)
	assert.Equal(t, "01", code.Number)
	assert.Empty(t, code.Subject)
}
