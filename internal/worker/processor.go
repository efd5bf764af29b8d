// Package worker scores uploaded resumes from a RabbitMQ queue and publishes progress updates.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/careerforward/career-quest/internal/db"
	"github.com/careerforward/career-quest/internal/parsing"
	"github.com/careerforward/career-quest/internal/scoring"
	"github.com/careerforward/career-quest/internal/types"
)

// Job statuses published on the updates exchange.
const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Update is one status message for a job.
type Update struct {
	UserID     string    `json:"user_id"`
	ObjectKey  string    `json:"object_key"`
	Status     string    `json:"status"`
	Message    string    `json:"message"`
	ScoreID    string    `json:"score_id,omitempty"`
	TotalScore *int      `json:"total_score,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Downloader fetches an uploaded resume.
type Downloader interface {
	Download(ctx context.Context, key string) ([]byte, error)
}

// Parser turns resume text into a structured resume.
type Parser interface {
	Parse(ctx context.Context, text string) (*types.ParsedResume, error)
}

// Scorer calculates a score.
type Scorer interface {
	Calculate(ctx context.Context, resume *types.ParsedResume, req scoring.Request) (*types.ScoreResult, error)
}

// Store persists the parsed resume and the resulting score.
type Store interface {
	SaveResume(ctx context.Context, userID uuid.UUID, resume *types.ParsedResume, rawText, source string) error
	InsertScore(ctx context.Context, userID uuid.UUID, result *types.ScoreResult, sc db.ScoreContext) (uuid.UUID, error)
}

// Publisher delivers status updates.
type Publisher interface {
	Publish(ctx context.Context, update Update) error
}

// JobError is a job that could not be completed. Jobs are never retried by redelivery.
type JobError struct {
	Stage string
	Cause error
}

func (e *JobError) Error() string {
	return fmt.Sprintf("job failed at %s: %v", e.Stage, e.Cause)
}

func (e *JobError) Unwrap() error {
	return e.Cause
}

// Processor runs one scoring job end to end.
type Processor struct {
	downloader Downloader
	parser     Parser
	scorer     Scorer
	store      Store
	publisher  Publisher
	logger     *zap.Logger
	now        func() time.Time
}

// NewProcessor wires a Processor. A nil logger discards output.
func NewProcessor(downloader Downloader, parser Parser, scorer Scorer, store Store, publisher Publisher, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{
		downloader: downloader,
		parser:     parser,
		scorer:     scorer,
		store:      store,
		publisher:  publisher,
		logger:     logger,
		now:        time.Now,
	}
}

// Handle decodes a message body and processes it, publishing processing and then completed or failed.
func (p *Processor) Handle(ctx context.Context, body []byte) error {
	var job types.ScoreJob
	if err := json.Unmarshal(body, &job); err != nil {
		return &JobError{Stage: "decode", Cause: err}
	}
	if err := job.Validate(); err != nil {
		p.publish(ctx, job, StatusFailed, "invalid job", nil)
		return &JobError{Stage: "validate", Cause: err}
	}

	log := p.logger.With(zap.String("user_id", job.UserID), zap.String("object_key", job.ObjectKey))
	log.Info("processing score job")
	p.publish(ctx, job, StatusProcessing, "scoring started", nil)

	id, result, err := p.process(ctx, job)
	if err != nil {
		log.Error("score job failed", zap.Error(err))
		p.publish(ctx, job, StatusFailed, "scoring failed", nil)
		return err
	}

	log.Info("score job completed", zap.String("score_id", id.String()), zap.Int("total_score", result.TotalScore))
	p.publish(ctx, job, StatusCompleted, "scoring completed", &completion{id: id, total: result.TotalScore})
	return nil
}

func (p *Processor) process(ctx context.Context, job types.ScoreJob) (uuid.UUID, *types.ScoreResult, error) {
	userID, err := uuid.Parse(job.UserID)
	if err != nil {
		return uuid.Nil, nil, &JobError{Stage: "validate", Cause: err}
	}

	data, err := p.downloader.Download(ctx, job.ObjectKey)
	if err != nil {
		return uuid.Nil, nil, &JobError{Stage: "download", Cause: err}
	}

	text, err := parsing.ExtractText(job.Mime, data)
	if err != nil {
		return uuid.Nil, nil, &JobError{Stage: "extract", Cause: err}
	}

	resume, err := p.parser.Parse(ctx, text)
	if err != nil {
		return uuid.Nil, nil, &JobError{Stage: "parse", Cause: err}
	}
	if err := p.store.SaveResume(ctx, userID, resume, text, db.ResumeSourceUpload); err != nil {
		return uuid.Nil, nil, &JobError{Stage: "save resume", Cause: err}
	}

	result, err := p.scorer.Calculate(ctx, resume, scoring.Request{
		RawText:    text,
		TargetRole: job.TargetRole,
		Location:   job.Location,
		Industry:   job.Industry,
	})
	if err != nil {
		return uuid.Nil, nil, &JobError{Stage: "score", Cause: err}
	}

	id, err := p.store.InsertScore(ctx, userID, result, db.ScoreContext{
		TargetRole: job.TargetRole,
		Location:   job.Location,
		Industry:   job.Industry,
	})
	if err != nil {
		return uuid.Nil, nil, &JobError{Stage: "insert score", Cause: err}
	}
	return id, result, nil
}

type completion struct {
	id    uuid.UUID
	total int
}

// publish never fails the job; a lost update is only logged.
func (p *Processor) publish(ctx context.Context, job types.ScoreJob, status, message string, done *completion) {
	if p.publisher == nil {
		return
	}
	update := Update{
		UserID:    job.UserID,
		ObjectKey: job.ObjectKey,
		Status:    status,
		Message:   message,
		Timestamp: p.now().UTC(),
	}
	if done != nil {
		update.ScoreID = done.id.String()
		total := done.total
		update.TotalScore = &total
	}
	if err := p.publisher.Publish(ctx, update); err != nil {
		p.logger.Warn("failed to publish update",
			zap.String("user_id", job.UserID),
			zap.String("status", status),
			zap.Error(err))
	}
}
