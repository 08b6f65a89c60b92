package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) ListCampuses(w http.ResponseWriter, r *http.Request) {
	campuses, err := s.Content.ListCampuses(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	items := make([]CampusDTO, 0, len(campuses))
	for _, c := range campuses {
		items = append(items, toCampusDTO(c))
	}
	WriteJSON(w, http.StatusOK, ItemsResponse[CampusDTO]{Items: items})
}

func (s *Server) CampusDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := s.Content.CampusDetail(r.Context(), chi.URLParam(r, "campusId"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, toCampusDetailDTO(detail))
}

func (s *Server) GradeDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := s.Content.GradeDetail(r.Context(), chi.URLParam(r, "gradeId"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, toGradeDetailDTO(detail))
}

func (s *Server) SubjectDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := s.Content.SubjectDetail(r.Context(), chi.URLParam(r, "subjectId"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, toSubjectDetailDTO(detail))
}

func (s *Server) ProficiencyLessons(w http.ResponseWriter, r *http.Request) {
	detail, err := s.Content.ProficiencyLessons(r.Context(), chi.URLParam(r, "proficiencyId"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, toProficiencyLessonsDTO(detail))
}

// LessonDetail accepts a lesson id or a lesson code.
func (s *Server) LessonDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := s.Content.LessonDetail(r.Context(), chi.URLParam(r, "lessonRef"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, toLessonDetailDTO(detail))
}

func (s *Server) MarkLessonDone(w http.ResponseWriter, r *http.Request) {
	lesson, err := s.Lessons.MarkDone(r.Context(), CurrentUserID(r), chi.URLParam(r, "lessonRef"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, toLessonDTO(lesson))
}

func (s *Server) MarkLessonNotDone(w http.ResponseWriter, r *http.Request) {
	lesson, err := s.Lessons.MarkNotDone(r.Context(), CurrentUserID(r), chi.URLParam(r, "lessonRef"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, toLessonDTO(lesson))
}
