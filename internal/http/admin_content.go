package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Campuses

func (s *Server) CreateCampus(w http.ResponseWriter, r *http.Request) {
	var req CampusRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	campus, err := s.Content.CreateCampus(r.Context(), req.input())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, toCampusDTO(campus))
}

func (s *Server) UpdateCampus(w http.ResponseWriter, r *http.Request) {
	var req CampusRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	campus, err := s.Content.UpdateCampus(r.Context(), chi.URLParam(r, "campusId"), req.input())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, toCampusDTO(campus))
}

func (s *Server) DeleteCampus(w http.ResponseWriter, r *http.Request) {
	s.writeDeleted(w, r, s.Content.DeleteCampus(r.Context(), chi.URLParam(r, "campusId")))
}

// Grades

func (s *Server) CreateGrade(w http.ResponseWriter, r *http.Request) {
	var req GradeRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	grade, err := s.Content.CreateGrade(r.Context(), req.input())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, toGradeDTO(grade))
}

func (s *Server) UpdateGrade(w http.ResponseWriter, r *http.Request) {
	var req GradeRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	grade, err := s.Content.UpdateGrade(r.Context(), chi.URLParam(r, "gradeId"), req.input())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, toGradeDTO(grade))
}

func (s *Server) DeleteGrade(w http.ResponseWriter, r *http.Request) {
	s.writeDeleted(w, r, s.Content.DeleteGrade(r.Context(), chi.URLParam(r, "gradeId")))
}

// Subjects

func (s *Server) CreateSubject(w http.ResponseWriter, r *http.Request) {
	var req SubjectRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	subject, err := s.Content.CreateSubject(r.Context(), req.input())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, toSubjectDTO(subject))
}

func (s *Server) UpdateSubject(w http.ResponseWriter, r *http.Request) {
	var req SubjectRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	subject, err := s.Content.UpdateSubject(r.Context(), chi.URLParam(r, "subjectId"), req.input())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, toSubjectDTO(subject))
}

func (s *Server) DeleteSubject(w http.ResponseWriter, r *http.Request) {
	s.writeDeleted(w, r, s.Content.DeleteSubject(r.Context(), chi.URLParam(r, "subjectId")))
}

// Proficiencies

func (s *Server) CreateProficiency(w http.ResponseWriter, r *http.Request) {
	var req ProficiencyRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	prof, err := s.Content.CreateProficiency(r.Context(), req.input())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, toProficiencyDTO(prof))
}

func (s *Server) UpdateProficiency(w http.ResponseWriter, r *http.Request) {
	var req ProficiencyRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	prof, err := s.Content.UpdateProficiency(r.Context(), chi.URLParam(r, "proficiencyId"), req.input())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, toProficiencyDTO(prof))
}

func (s *Server) DeleteProficiency(w http.ResponseWriter, r *http.Request) {
	s.writeDeleted(w, r, s.Content.DeleteProficiency(r.Context(), chi.URLParam(r, "proficiencyId")))
}

// Lessons

func (s *Server) CreateLesson(w http.ResponseWriter, r *http.Request) {
	var req LessonRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	lesson, err := s.Content.CreateLesson(r.Context(), req.input())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, toLessonDTO(lesson))
}

func (s *Server) UpdateLesson(w http.ResponseWriter, r *http.Request) {
	var req LessonRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	lesson, err := s.Content.UpdateLesson(r.Context(), chi.URLParam(r, "lessonRef"), req.input())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, toLessonDTO(lesson))
}

func (s *Server) DeleteLesson(w http.ResponseWriter, r *http.Request) {
	s.writeDeleted(w, r, s.Content.DeleteLesson(r.Context(), chi.URLParam(r, "lessonRef")))
}

func (s *Server) VerifyLesson(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	verified := true
	if req.Verified != nil {
		verified = *req.Verified
	}
	lesson, err := s.Lessons.Verify(r.Context(), CurrentUserID(r), chi.URLParam(r, "lessonRef"), verified)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, toLessonDTO(lesson))
}

// DeleteAllLessons clears lesson content ahead of a full re-import.
func (s *Server) DeleteAllLessons(w http.ResponseWriter, r *http.Request) {
	n, err := s.Content.DeleteAllLessons(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]int64{"deleted": n})
}

func (s *Server) writeDeleted(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

