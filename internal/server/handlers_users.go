package server

import (
	"net/http"

	"github.com/careerforward/career-quest/internal/server/middleware"
)

// handleGetMe returns the authenticated user's profile.
func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := s.userService.GetUser(r.Context(), userID)
	if err != nil {
		s.serviceError(w, "get user", err)
		return
	}
	jsonResponse(w, http.StatusOK, user)
}
