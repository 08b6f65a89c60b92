package httpapi

import (
	"net/http"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,notblank"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	AccessToken  string  `json:"accessToken"`
	RefreshToken string  `json:"refreshToken"`
	ExpiresAt    int64   `json:"expiresAt"`
	User         UserDTO `json:"user"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type PushTokenRequest struct {
	PushToken string `json:"push_token" validate:"max=255"`
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	user, pair, err := s.Users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.ExpiresAt,
		User:         toUserDTO(user),
	})
}

func (s *Server) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, http.StatusUnauthorized, "Authentication failed")
		return
	}
	user, pair, err := s.Users.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.ExpiresAt,
		User:         toUserDTO(user),
	})
}

func (s *Server) Me(w http.ResponseWriter, r *http.Request) {
	user, err := s.Users.Get(r.Context(), CurrentUserID(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, toUserDTO(user))
}

func (s *Server) UpdatePushToken(w http.ResponseWriter, r *http.Request) {
	var req PushTokenRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	user, err := s.Users.UpdatePushToken(r.Context(), CurrentUserID(r), req.PushToken)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, toUserDTO(user))
}
