package parsing

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDocx(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := map[string]string{
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8"?><w:document><w:body>` + body + `</w:body></w:document>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8"?><Relationships></Relationships>`,
	}
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractText_PlainText(t *testing.T) {
	text, err := ExtractText("text/plain; charset=utf-8", []byte("Ana Ruiz\r\n\r\n\r\n\r\nNurse   at  St. Mary"))
	require.NoError(t, err)
	assert.Equal(t, "Ana Ruiz\n\nNurse at St. Mary", text)
}

func TestExtractText_DOCX(t *testing.T) {
	data := buildDocx(t, `<w:p><w:r><w:t>Ana Ruiz</w:t></w:r></w:p><w:p><w:r><w:t>R&amp;D Engineer</w:t><w:tab/><w:t>2020</w:t></w:r></w:p>`)

	text, err := ExtractText(MimeDOCX, data)
	require.NoError(t, err)
	assert.Equal(t, "Ana Ruiz\nR&D Engineer 2020", text)
}

func TestExtractText_HTML(t *testing.T) {
	page := `<html><head><style>p{}</style></head><body>
		<nav>Home</nav>
		<h1>Ana Ruiz</h1>
		<p>Registered nurse</p>
		<ul><li>Triage</li><li>EHR charting</li></ul>
		<script>alert(1)</script>
	</body></html>`

	text, err := ExtractText(MimeHTML, []byte(page))
	require.NoError(t, err)
	assert.Equal(t, "Ana Ruiz\nRegistered nurse\n- Triage\n- EHR charting", text)
}

func TestExtractText_Errors(t *testing.T) {
	tests := []struct {
		name string
		mime string
		data []byte
	}{
		{"empty", MimeText, nil},
		{"unsupported", "image/png", []byte{0x89, 0x50}},
		{"corrupt pdf", MimePDF, []byte("%PDF-not really")},
		{"corrupt docx", MimeDOCX, []byte("not a zip")},
		{"whitespace only", MimeText, []byte(" \n\t ")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractText(tt.mime, tt.data)
			require.Error(t, err)
			var extractErr *ExtractError
			assert.True(t, errors.As(err, &extractErr))
		})
	}
}

func TestMimeFromFilename(t *testing.T) {
	tests := map[string]string{
		"resume.pdf":  MimePDF,
		"Resume.DOCX": MimeDOCX,
		"cv.txt":      MimeText,
		"cv.md":       MimeText,
		"page.html":   MimeHTML,
	}
	for name, want := range tests {
		got, err := MimeFromFilename(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := MimeFromFilename("photo.png")
	assert.Error(t, err)
}
