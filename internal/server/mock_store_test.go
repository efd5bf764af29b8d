package server

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/careerforward/career-quest/internal/db"
	"github.com/careerforward/career-quest/internal/types"
)

// mockStore is an in-memory Store.
type mockStore struct {
	mu      sync.Mutex
	users   map[uuid.UUID]*db.User
	resumes map[uuid.UUID]*db.StoredResume
	scores  []db.ScoreRecord
	clock   time.Time

	failUpdatePassword error
	failInsertScore    error
	failGetUser        error
	pingErr            error
	deleted            []uuid.UUID
}

func newMockStore() *mockStore {
	return &mockStore{
		users:   make(map[uuid.UUID]*db.User),
		resumes: make(map[uuid.UUID]*db.StoredResume),
		clock:   time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (m *mockStore) tick() time.Time {
	m.clock = m.clock.Add(time.Minute)
	return m.clock
}

func (m *mockStore) CreateUser(_ context.Context, name, email, phone string) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return uuid.Nil, fmt.Errorf("duplicate email %s", email)
		}
	}
	now := m.tick()
	u := &db.User{ID: uuid.New(), Name: name, Email: email, Phone: phone,
		SubscriptionTier: types.TierFree, CreatedAt: now, UpdatedAt: now}
	m.users[u.ID] = u
	return u.ID, nil
}

func (m *mockStore) GetUser(_ context.Context, id uuid.UUID) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGetUser != nil {
		return nil, m.failGetUser
	}
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *mockStore) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockStore) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	u, err := m.GetUserByEmail(ctx, email)
	return u != nil, err
}

func (m *mockStore) UpdatePassword(_ context.Context, userID uuid.UUID, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failUpdatePassword != nil {
		return m.failUpdatePassword
	}
	u, ok := m.users[userID]
	if !ok {
		return fmt.Errorf("user not found: %s", userID)
	}
	u.PasswordHash = passwordHash
	u.PasswordSet = true
	return nil
}

func (m *mockStore) DeleteUser(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockStore) setTier(id uuid.UUID, tier string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[id].SubscriptionTier = tier
}

func (m *mockStore) SaveResume(_ context.Context, userID uuid.UUID, resume *types.ParsedResume, rawText, source string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.tick()
	created := now
	if prev, ok := m.resumes[userID]; ok {
		created = prev.CreatedAt
	}
	m.resumes[userID] = &db.StoredResume{UserID: userID, Resume: resume, RawText: rawText,
		Source: source, CreatedAt: created, UpdatedAt: now}
	return nil
}

func (m *mockStore) GetResume(_ context.Context, userID uuid.UUID) (*db.StoredResume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.resumes[userID]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (m *mockStore) InsertScore(_ context.Context, userID uuid.UUID, result *types.ScoreResult, sc db.ScoreContext) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failInsertScore != nil {
		return uuid.Nil, m.failInsertScore
	}
	rec := db.ScoreRecord{ID: uuid.New(), UserID: userID, ScoreContext: sc, ScoreResult: *result}
	rec.Recommendations = append([]types.Recommendation(nil), result.Recommendations...)
	m.scores = append(m.scores, rec)
	return rec.ID, nil
}

func (m *mockStore) ListScores(_ context.Context, userID uuid.UUID, limit int) ([]db.ScoreRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []db.ScoreRecord
	for i := len(m.scores) - 1; i >= 0; i-- {
		rec := m.scores[i]
		if rec.UserID != userID {
			continue
		}
		rec.Recommendations = append([]types.Recommendation(nil), rec.Recommendations...)
		out = append(out, rec)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CalculatedAt.After(out[j].CalculatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockStore) GetLatestScore(ctx context.Context, userID uuid.UUID) (*db.ScoreRecord, error) {
	recs, err := m.ListScores(ctx, userID, 1)
	if err != nil || len(recs) == 0 {
		return nil, err
	}
	return &recs[0], nil
}

func (m *mockStore) Ping(context.Context) error {
	return m.pingErr
}

var _ Store = (*mockStore)(nil)
