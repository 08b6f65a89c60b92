package ingest

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidLessonCode = errors.New("invalid lesson code")

// LessonCode is a dotted SUBJECT.GRADE.NUMBER.PROFICIENCY code, e.g. MATH.G5.01.P1.
type LessonCode struct {
	Raw         string
	Subject     string
	Grade       string
	Number      string
	Proficiency string
}

// ParseLessonCode only checks arity; the parts are not validated further.
func ParseLessonCode(raw string) (LessonCode, error) {
	parts := strings.Split(raw, ".")
	if len(parts) != 4 {
		return LessonCode{}, fmt.Errorf("%w %q: expected 4 dot-separated parts, got %d", ErrInvalidLessonCode, raw, len(parts))
	}
	return LessonCode{
		Raw:         raw,
		Subject:     parts[0],
		Grade:       parts[1],
		Number:      parts[2],
		Proficiency: parts[3],
	}, nil
}

func (c LessonCode) String() string {
	return c.Raw
}
