package autosave

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonathan/resume-ats/internal/schemas"
	"github.com/jonathan/resume-ats/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDocument() *types.ResumeDocument {
	doc := types.NewResumeDocument()
	doc.PersonalInfo.FullName = "Jane Doe"
	doc.PersonalInfo.Email = "jane@example.com"
	doc.Skills = append(doc.Skills, types.SkillEntry{ID: "s1", Name: "Go", Category: "Languages", Level: types.SkillExpert})
	doc.Projects = append(doc.Projects, types.ProjectEntry{ID: "p1", Name: "Ledger", Technologies: []string{"Go"}})
	return doc
}

func TestSessionKey(t *testing.T) {
	assert.Equal(t, "resumeai_autosave:abc", SessionKey("abc"))
}

func TestNewSnapshot(t *testing.T) {
	doc := testDocument()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	s := NewSnapshot(doc, types.TemplateClassic, now)
	doc.Skills[0].Name = "Rust"

	assert.Equal(t, "Go", s.ResumeData.Skills[0].Name, "snapshot must not share the document")
	assert.Equal(t, types.TemplateClassic, s.SelectedTemplate)
	assert.Equal(t, now.UnixMilli(), s.Timestamp)
	assert.True(t, now.Equal(s.SavedAt()))
	assert.Equal(t, time.Hour, s.Age(now.Add(time.Hour)))
}

func TestNewSnapshot_NilDocument(t *testing.T) {
	s := NewSnapshot(nil, "", time.Now())
	require.NotNil(t, s.ResumeData)
	assert.Empty(t, s.ResumeData.Experience)
}

func TestEncodeDecode(t *testing.T) {
	now := time.UnixMilli(1760000000000)
	s := NewSnapshot(testDocument(), types.TemplateMinimal, now)

	data, err := s.Encode()
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, s, decoded)
}

func TestDecode_BrowserBlob(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "..", "testdata", "valid", "autosave_snapshot.json"))
	require.NoError(t, err)

	s, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", s.ResumeData.PersonalInfo.FullName)
	assert.Equal(t, types.TemplateClassic, s.SelectedTemplate)
	assert.Equal(t, int64(1760000000000), s.Timestamp)
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not json", data: `{"resumeData":`},
		{name: "empty object", data: `{}`},
		{name: "missing timestamp", data: `{"resumeData": {"personalInfo": {}}, "selectedTemplate": "modern"}`},
		{name: "string timestamp", data: `{"resumeData": {"personalInfo": {}}, "selectedTemplate": "modern", "timestamp": "yesterday"}`},
		{name: "null resume", data: `{"resumeData": null, "selectedTemplate": "modern", "timestamp": 1}`},
		{name: "resume without personal info", data: `{"resumeData": {}, "selectedTemplate": "modern", "timestamp": 1}`},
		{
			name: "bad skill level",
			data: `{"resumeData": {"personalInfo": {}, "skills": [{"id": "s", "name": "Go", "level": "Guru"}]}, "selectedTemplate": "modern", "timestamp": 1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestDecode_ReportsResumeFieldErrors(t *testing.T) {
	data := `{"resumeData": {"personalInfo": {}, "skills": [{"id": "s", "name": "Go", "level": "Guru"}]}, "selectedTemplate": "modern", "timestamp": 1}`

	_, err := Decode([]byte(data))

	var validationErr *schemas.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Contains(t, err.Error(), "resumeData")
}
