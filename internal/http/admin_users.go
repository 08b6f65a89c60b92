package httpapi

import (
	"net/http"

	"belakoo-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
)

type VolunteerCreateRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"max=255"`
	Password string `json:"password" validate:"required,min=6"`
}

type ItemsResponse[T any] struct {
	Items []T `json:"items"`
}

func (s *Server) ListVolunteers(w http.ResponseWriter, r *http.Request) {
	users, err := s.Users.ListVolunteers(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, ItemsResponse[UserDTO]{Items: toUserDTOs(users)})
}

func (s *Server) CreateVolunteer(w http.ResponseWriter, r *http.Request) {
	var req VolunteerCreateRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	user, err := s.Users.CreateVolunteer(r.Context(), services.NewUser{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, toUserDTO(user))
}

func (s *Server) DeleteVolunteer(w http.ResponseWriter, r *http.Request) {
	if err := s.Users.DeleteVolunteer(r.Context(), chi.URLParam(r, "userId")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
