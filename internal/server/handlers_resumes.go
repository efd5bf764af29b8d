package server

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/careerforward/career-quest/internal/db"
	"github.com/careerforward/career-quest/internal/server/middleware"
	"github.com/careerforward/career-quest/internal/types"
)

// handleGetResume returns the stored resume.
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	stored, err := s.store.GetResume(r.Context(), userID)
	if err != nil {
		s.serviceError(w, "get resume", err)
		return
	}
	if stored == nil {
		s.serviceError(w, "get resume", &ErrResumeNotFound{UserID: userID})
		return
	}
	jsonResponse(w, http.StatusOK, stored)
}

// handleSaveResume stores a structured resume supplied by the client.
func (s *Server) handleSaveResume(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req types.SaveResumeRequest
	if err := decodeJSON(r, &req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	s.storeResume(w, r, userID, req.Resume, req.RawText, db.ResumeSourceManual)
}

// handleParseResume runs raw text through the resume parser and stores the result.
func (s *Server) handleParseResume(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if s.parser == nil {
		errorResponse(w, http.StatusServiceUnavailable, "Resume parsing is not configured")
		return
	}

	var req types.ParseResumeRequest
	if err := decodeJSON(r, &req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	resume, err := s.parser.Parse(r.Context(), req.Text)
	if err != nil {
		s.serviceError(w, "parse resume", err)
		return
	}
	s.storeResume(w, r, userID, resume, req.Text, db.ResumeSourceParsed)
}

func (s *Server) storeResume(w http.ResponseWriter, r *http.Request, userID uuid.UUID, resume *types.ParsedResume, rawText, source string) {
	if err := s.store.SaveResume(r.Context(), userID, resume, rawText, source); err != nil {
		s.serviceError(w, "save resume", err)
		return
	}
	s.logger.Info("resume stored", zap.String("user_id", userID.String()), zap.String("source", source))

	stored, err := s.store.GetResume(r.Context(), userID)
	if err != nil || stored == nil {
		stored = &db.StoredResume{UserID: userID, Resume: resume, RawText: rawText, Source: source}
	}
	jsonResponse(w, http.StatusOK, stored)
}
