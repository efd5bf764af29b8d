package server

import (
	"context"

	"github.com/google/uuid"

	"github.com/careerforward/career-quest/internal/db"
	"github.com/careerforward/career-quest/internal/types"
)

// UserStore is the account persistence used by UserService.
type UserStore interface {
	CreateUser(ctx context.Context, name, email, phone string) (uuid.UUID, error)
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

// Store is everything the API persists. *db.DB implements it.
type Store interface {
	UserStore
	SaveResume(ctx context.Context, userID uuid.UUID, resume *types.ParsedResume, rawText, source string) error
	GetResume(ctx context.Context, userID uuid.UUID) (*db.StoredResume, error)
	InsertScore(ctx context.Context, userID uuid.UUID, result *types.ScoreResult, sc db.ScoreContext) (uuid.UUID, error)
	ListScores(ctx context.Context, userID uuid.UUID, limit int) ([]db.ScoreRecord, error)
	GetLatestScore(ctx context.Context, userID uuid.UUID) (*db.ScoreRecord, error)
	Ping(ctx context.Context) error
}

// ResumeParser turns raw resume text into a structured resume.
type ResumeParser interface {
	Parse(ctx context.Context, text string) (*types.ParsedResume, error)
}

var _ Store = (*db.DB)(nil)
