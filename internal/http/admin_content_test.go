package httpapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHierarchyCRUD(t *testing.T) {
	api := newTestAPI(t, t.TempDir())
	campus, grade, subject, prof := api.seed()
	assert.Equal(t, "G5", grade.Name)

	rec := api.do(http.MethodPost, "/api/admin/campuses", api.adminToken, map[string]string{"campus_code": "c1", "name": "Again"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = api.do(http.MethodPost, "/api/admin/grades", api.adminToken, map[string]string{"campus_id": "5b1c43b4-8f2e-4c55-a2a5-9d2f8e1a0c11", "grade_code": "G6"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(http.MethodPost, "/api/admin/grades", api.adminToken, map[string]string{"campus_id": "nope", "grade_code": "G6"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody[ErrorResponse](t, rec).Fields, "campus_id")

	rec = api.do(http.MethodPost, "/api/admin/campuses", api.adminToken, map[string]string{"campus_code": "   ", "name": "Blank"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "campus_code cannot be blank", decodeBody[ErrorResponse](t, rec).Message)

	rec = api.do(http.MethodPut, "/api/admin/subjects/"+subject.ID, api.adminToken, map[string]string{"colorcode": "#FF0000"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "#FF0000", decodeBody[SubjectDTO](t, rec).ColorCode)

	rec = api.do(http.MethodPut, "/api/admin/proficiencies/"+prof.ID, api.adminToken, map[string]string{"name": "Beginner"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Beginner", decodeBody[ProficiencyDTO](t, rec).Name)

	rec = api.do(http.MethodGet, "/api/campuses/"+campus.ID, api.volToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[CampusDetailDTO](t, rec).Grades, 1)

	assert.Equal(t, http.StatusNoContent, api.do(http.MethodDelete, "/api/admin/campuses/"+campus.ID, api.adminToken, nil).Code)
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, "/api/subjects/"+subject.ID, api.volToken, nil).Code)
}

func TestLessonAdministration(t *testing.T) {
	api := newTestAPI(t, t.TempDir())
	_, grade, subject, prof := api.seed()

	body := map[string]interface{}{
		"lesson_code":    "MATH.G5.01.P1",
		"name":           "Lesson 01",
		"subject_id":     subject.ID,
		"grade_id":       grade.ID,
		"proficiency_id": prof.ID,
		"acquire":        []map[string]string{{"title": "TEACH", "description": "Explain halves"}},
	}
	rec := api.do(http.MethodPost, "/api/admin/lessons", api.adminToken, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	lesson := decodeBody[LessonDTO](t, rec)
	require.Len(t, lesson.Acquire, 1)
	assert.NotNil(t, lesson.Activate)

	rec = api.do(http.MethodPost, "/api/admin/lessons", api.adminToken, body)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = api.do(http.MethodPost, "/api/admin/lessons/"+lesson.Code+"/verify", api.adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	verified := decodeBody[LessonDTO](t, rec)
	assert.True(t, verified.Verified)
	assert.True(t, verified.IsDone)

	rec = api.do(http.MethodPut, "/api/admin/lessons/"+lesson.ID, api.adminToken, map[string]bool{"is_done": false})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeBody[LessonDTO](t, rec)
	assert.False(t, updated.IsDone)
	assert.False(t, updated.Verified)

	assert.Equal(t, http.StatusForbidden, api.do(http.MethodPost, "/api/admin/lessons/"+lesson.ID+"/verify", api.volToken, nil).Code)

	rec = api.do(http.MethodDelete, "/api/admin/lessons/content", api.adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]int64{"deleted": 1}, decodeBody[map[string]int64](t, rec))
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, "/api/lessons/"+lesson.ID, api.volToken, nil).Code)
}

func TestSystemStatus(t *testing.T) {
	api := newTestAPI(t, t.TempDir())

	rec := api.do(http.MethodGet, "/api/admin/system", api.adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[map[string]interface{}](t, rec)
	assert.Equal(t, "ok", body["database"])
	assert.Greater(t, body["goroutines"], float64(0))
}
