package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/careerforward/career-quest/internal/config"
	"github.com/careerforward/career-quest/internal/scoring"
	"github.com/careerforward/career-quest/internal/server/ratelimit"
	"github.com/careerforward/career-quest/internal/types"
)

const testJWTSecret = "test-secret-key-for-jwt-signing-minimum-32-bytes"

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type fakeParser struct {
	resume *types.ParsedResume
	err    error
	calls  int
}

func (p *fakeParser) Parse(_ context.Context, _ string) (*types.ParsedResume, error) {
	p.calls++
	return p.resume, p.err
}

type testAPI struct {
	server  *Server
	store   *mockStore
	parser  *fakeParser
	handler http.Handler
}

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{Secret: testJWTSecret, Issuer: config.DefaultJWTIssuer, ExpirationHours: 24}
}

func newTestAPI(t *testing.T, limiter *ratelimit.Limiter) *testAPI {
	t.Helper()
	store := newMockStore()
	parser := &fakeParser{}
	srv, err := New(config.ServerConfig{Port: 8080}, Deps{
		Store:       store,
		Scorer:      scoring.NewEngine(scoring.Config{Now: func() time.Time { return fixedNow }}),
		Parser:      parser,
		JWT:         testJWTConfig(),
		Password:    &config.PasswordConfig{BcryptCost: 10},
		RateLimiter: limiter,
	})
	require.NoError(t, err)
	return &testAPI{server: srv, store: store, parser: parser, handler: srv.Handler("")}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, req)
	return w
}

// register creates an account and returns its token and ID.
func (a *testAPI) register(t *testing.T, email string) (string, uuid.UUID) {
	t.Helper()
	w := a.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"name":     "Test User",
		"email":    email,
		"password": "correct-horse-battery",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp types.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token, resp.User.ID
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func sampleResume() *types.ParsedResume {
	return &types.ParsedResume{
		Contact: types.Contact{
			Name:     "Ana Ruiz",
			Email:    "ana.ruiz@example.com",
			Phone:    "+1 512 555 0100",
			Location: "Austin, TX",
		},
		Summary: "Motivated professional seeking new opportunities in customer service.",
	}
}
