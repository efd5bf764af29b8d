package server

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/careerforward/career-quest/internal/db"
	"github.com/careerforward/career-quest/internal/scoring"
	"github.com/careerforward/career-quest/internal/server/middleware"
	"github.com/careerforward/career-quest/internal/types"
)

// LockedDescription replaces recommendation descriptions for free-tier users.
const LockedDescription = "Upgrade to Premium to see how to apply this recommendation."

// Scorer calculates a score for a resume.
type Scorer interface {
	Calculate(ctx context.Context, resume *types.ParsedResume, req scoring.Request) (*types.ScoreResult, error)
}

// ScoreListResponse is the body of GET /scores.
type ScoreListResponse struct {
	Scores []db.ScoreRecord `json:"scores"`
	Limit  int              `json:"limit"`
}

// handleCreateScore scores the supplied resume, or the stored one when none is given, and records it.
func (s *Server) handleCreateScore(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req types.ScoreRequest
	if err := decodeJSON(r, &req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	// Resolve the tier before anything is recorded.
	premium, err := s.isPremium(r.Context(), userID)
	if err != nil {
		s.serviceError(w, "get user", err)
		return
	}

	resume, rawText := req.Resume, req.RawText
	if resume == nil {
		stored, err := s.store.GetResume(r.Context(), userID)
		if err != nil {
			s.serviceError(w, "get resume", err)
			return
		}
		if stored == nil || stored.Resume == nil {
			s.serviceError(w, "score", &ErrResumeNotFound{UserID: userID})
			return
		}
		resume = stored.Resume
		if rawText == "" {
			rawText = stored.RawText
		}
	}

	result, err := s.scorer.Calculate(r.Context(), resume, scoring.Request{
		RawText:    rawText,
		TargetRole: req.TargetRole,
		Location:   req.Location,
		Industry:   req.Industry,
	})
	if err != nil {
		s.serviceError(w, "score", err)
		return
	}

	sc := db.ScoreContext{TargetRole: req.TargetRole, Location: req.Location, Industry: req.Industry}
	id, err := s.store.InsertScore(r.Context(), userID, result, sc)
	if err != nil {
		s.serviceError(w, "insert score", err)
		return
	}
	s.logger.Info("score calculated",
		zap.String("user_id", userID.String()),
		zap.String("score_id", id.String()),
		zap.Int("total_score", result.TotalScore),
		zap.Bool("market_data", result.MarketData != nil),
	)

	record := db.ScoreRecord{ID: id, UserID: userID, ScoreContext: sc, ScoreResult: *result}
	if !premium {
		blurRecord(&record)
	}
	jsonResponse(w, http.StatusCreated, record)
}

// handleListScores returns score history, newest first.
func (s *Server) handleListScores(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit := db.DefaultScoreListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.serviceError(w, "list scores", &ErrValidation{Field: "limit", Message: "must be a positive integer"})
			return
		}
		limit = db.ClampScoreLimit(n)
	}

	records, err := s.store.ListScores(r.Context(), userID, limit)
	if err != nil {
		s.serviceError(w, "list scores", err)
		return
	}
	if records == nil {
		records = []db.ScoreRecord{}
	}

	premium, err := s.isPremium(r.Context(), userID)
	if err != nil {
		s.serviceError(w, "get user", err)
		return
	}
	if !premium {
		for i := range records {
			blurRecord(&records[i])
		}
	}
	jsonResponse(w, http.StatusOK, ScoreListResponse{Scores: records, Limit: limit})
}

// handleLatestScore returns the most recent score.
func (s *Server) handleLatestScore(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	record, err := s.store.GetLatestScore(r.Context(), userID)
	if err != nil {
		s.serviceError(w, "latest score", err)
		return
	}
	if record == nil {
		errorResponse(w, http.StatusNotFound, "No scores recorded yet")
		return
	}

	premium, err := s.isPremium(r.Context(), userID)
	if err != nil {
		s.serviceError(w, "get user", err)
		return
	}
	if !premium {
		blurRecord(record)
	}
	jsonResponse(w, http.StatusOK, record)
}

func (s *Server) isPremium(ctx context.Context, userID uuid.UUID) (bool, error) {
	user, err := s.userService.GetUser(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.IsPremium(), nil
}

// blurRecord hides recommendation descriptions. Title, category, priority and gain stay visible.
func blurRecord(rec *db.ScoreRecord) {
	rec.Recommendations = BlurRecommendations(rec.Recommendations)
}

// BlurRecommendations returns a copy of recs with every description replaced by LockedDescription.
func BlurRecommendations(recs []types.Recommendation) []types.Recommendation {
	if recs == nil {
		return nil
	}
	out := make([]types.Recommendation, len(recs))
	for i, rec := range recs {
		rec.Description = LockedDescription
		out[i] = rec
	}
	return out
}
