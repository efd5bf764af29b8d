package parsing

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerforward/career-quest/internal/llm"
)

// fakeClient returns canned responses in order.
type fakeClient struct {
	responses []string
	err       error
	prompts   []string
	tiers     []llm.ModelTier
}

func (f *fakeClient) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return f.GenerateJSON(ctx, prompt, tier)
}

func (f *fakeClient) GenerateJSON(_ context.Context, prompt string, tier llm.ModelTier) (string, error) {
	f.prompts = append(f.prompts, prompt)
	f.tiers = append(f.tiers, tier)
	if f.err != nil {
		return "", f.err
	}
	if len(f.responses) == 0 {
		return "", errors.New("no more responses")
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp, nil
}

func (f *fakeClient) GetModel(llm.ModelTier) string { return "fake" }
func (f *fakeClient) Close() error                  { return nil }

const sampleResponse = "```json\n" + `{
  "contact": {"name": "Ana Ruiz", "email": "ana@example.com"},
  "summary": "Registered nurse.",
  "experience": [
    {"company": "St. Mary", "title": "RN", "start_date": "2019-03", "end_date": "Present"}
  ],
  "skills": ["ehr", "EHR", "cpr", "Patient Care"]
}` + "\n```"

func TestResumeParser_Parse(t *testing.T) {
	client := &fakeClient{responses: []string{sampleResponse}}
	parser := NewResumeParser(client, nil)

	resume, err := parser.Parse(context.Background(), "Ana Ruiz\r\nRegistered nurse\r\n")
	require.NoError(t, err)

	assert.Equal(t, "Ana Ruiz", resume.Contact.Name)
	require.Len(t, resume.Experience, 1)
	assert.True(t, resume.Experience[0].Current)
	assert.Empty(t, resume.Experience[0].EndDate)
	assert.Equal(t, []string{"EHR", "CPR", "Patient Care"}, resume.Skills)

	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "Ana Ruiz\nRegistered nurse")
	assert.Equal(t, llm.TierStandard, client.tiers[0])
}

func TestResumeParser_RepairsMalformedJSON(t *testing.T) {
	client := &fakeClient{responses: []string{`{"summary": "Nurse",}`, `{"summary": "Nurse"}`}}

	resume, err := NewResumeParser(client, nil).Parse(context.Background(), "Nurse")
	require.NoError(t, err)
	assert.Equal(t, "Nurse", resume.Summary)

	require.Len(t, client.prompts, 2)
	assert.Contains(t, client.prompts[1], `{"summary": "Nurse",}`)
	assert.Equal(t, llm.TierLite, client.tiers[1])
}

func TestResumeParser_Errors(t *testing.T) {
	tests := []struct {
		name   string
		client *fakeClient
		text   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "empty text",
			client: &fakeClient{},
			text:   " \n\t ",
			check: func(t *testing.T, err error) {
				var vErr *ValidationError
				assert.True(t, errors.As(err, &vErr))
			},
		},
		{
			name:   "api failure",
			client: &fakeClient{err: errors.New("quota exceeded")},
			text:   "resume",
			check: func(t *testing.T, err error) {
				var apiErr *APICallError
				require.True(t, errors.As(err, &apiErr))
				assert.Contains(t, err.Error(), "quota exceeded")
			},
		},
		{
			name:   "unrepairable JSON",
			client: &fakeClient{responses: []string{"not json", "still not json"}},
			text:   "resume",
			check: func(t *testing.T, err error) {
				var pErr *ParseError
				assert.True(t, errors.As(err, &pErr))
			},
		},
		{
			name:   "nothing extracted",
			client: &fakeClient{responses: []string{`{}`}},
			text:   "resume",
			check: func(t *testing.T, err error) {
				var vErr *ValidationError
				assert.True(t, errors.As(err, &vErr))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewResumeParser(tt.client, nil).Parse(context.Background(), tt.text)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestResumeParser_TruncatesLongText(t *testing.T) {
	client := &fakeClient{responses: []string{`{"summary": "x"}`}}
	_, err := NewResumeParser(client, nil).Parse(context.Background(), strings.Repeat("word ", 20000))
	require.NoError(t, err)
	assert.Less(t, len(client.prompts[0]), maxResumeChars+5000)
}

func TestParseResume_RequiresAPIKey(t *testing.T) {
	_, err := ParseResume(context.Background(), "text", "", nil)
	var apiErr *APICallError
	assert.True(t, errors.As(err, &apiErr))
}
