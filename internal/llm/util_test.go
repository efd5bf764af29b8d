package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"json code block", "```json\n{\"key\": \"value\"}\n```", `{"key": "value"}`},
		{"generic code block", "```\n{\"key\": \"value\"}\n```", `{"key": "value"}`},
		{"code block with language", "```javascript\n{\"key\": \"value\"}\n```", `{"key": "value"}`},
		{"plain JSON", `{"key": "value"}`, `{"key": "value"}`},
		{"preamble before object", "Here is the resume:\n{\"summary\": \"Nurse\"} Hope this helps!", `{"summary": "Nurse"}`},
		{"preamble before array", "Skills: [\"Go\", \"SQL\"]", `["Go", "SQL"]`},
		{"no JSON", "sorry, I cannot help", "sorry, I cannot help"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"nested objects", `{"outer": {"inner": "value"}}`, `{"outer": {"inner": "value"}}`},
		{"trailing text", `{"key": "value"} and more`, `{"key": "value"}`},
		{"braces inside string", `{"template": "Hello {name}!"}`, `{"template": "Hello {name}!"}`},
		{"escaped quote", `{"q": "say \"}\""} x`, `{"q": "say \"}\""}`},
		{"unbalanced", `{"key": "value"`, ""},
		{"empty input", "", ""},
		{"not an object", "not json", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractJSONObject(tt.input))
		})
	}
}

func TestExtractJSONArray(t *testing.T) {
	assert.Equal(t, `[[1, 2], [3, 4]]`, extractJSONArray(`[[1, 2], [3, 4]] tail`))
	assert.Equal(t, `[{"id": 1}]`, extractJSONArray(`[{"id": 1}]`))
	assert.Equal(t, "", extractJSONArray("nope"))
}
