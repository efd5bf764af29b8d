package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerforward/career-quest/internal/config"
)

type fakeS3 struct {
	failures int
	err      error
	body     string
	calls    int
	lastKey  string
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.calls++
	f.lastKey = *in.Key
	if f.calls <= f.failures {
		return nil, f.err
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(f.body))}, nil
}

func newTestStore(client ObjectGetter) *Store {
	s := New(client, "resumes", nil)
	s.backoff = 0
	return s
}

func TestDownload(t *testing.T) {
	transient := errors.New("connection reset")

	tests := []struct {
		name      string
		client    *fakeS3
		wantErr   bool
		wantCalls int
		notFound  bool
	}{
		{name: "first try", client: &fakeS3{body: "resume"}, wantCalls: 1},
		{name: "retried then succeeds", client: &fakeS3{failures: 2, err: transient, body: "resume"}, wantCalls: 3},
		{name: "gives up after three attempts", client: &fakeS3{failures: 5, err: transient}, wantErr: true, wantCalls: 3},
		{name: "missing object is not retried", client: &fakeS3{failures: 5, err: &s3types.NoSuchKey{}}, wantErr: true, wantCalls: 1, notFound: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := newTestStore(tt.client).Download(context.Background(), "u/1/resume.pdf")
			assert.Equal(t, tt.wantCalls, tt.client.calls)
			assert.Equal(t, "u/1/resume.pdf", tt.client.lastKey)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, "resume", string(data))
				return
			}
			var se *Error
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.notFound, se.NotFound)
		})
	}
}

func TestDownload_ContextCanceled(t *testing.T) {
	client := &fakeS3{failures: 5, err: errors.New("timeout")}
	s := New(client, "resumes", nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Download(ctx, "key")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, client.calls)
}

func TestDownload_TooLarge(t *testing.T) {
	client := &fakeS3{body: strings.Repeat("x", MaxObjectSize+1)}
	_, err := newTestStore(client).Download(context.Background(), "big")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds")
	assert.Equal(t, 1, client.calls)
}

func TestNewS3_RequiresBucket(t *testing.T) {
	_, err := NewS3(context.Background(), config.StorageConfig{Region: "auto"}, nil)
	assert.Error(t, err)
}

func TestError(t *testing.T) {
	cause := errors.New("boom")
	err := &Error{Key: "k", Message: "failed", Cause: cause}
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "storage error for k: failed: boom", err.Error())
	assert.Equal(t, "storage error for k: gone", (&Error{Key: "k", Message: "gone"}).Error())
}
