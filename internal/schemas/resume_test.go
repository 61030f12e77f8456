package schemas

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeResume(t *testing.T) {
	doc, err := DecodeResume([]byte(`{
		"personalInfo": {"fullName": "Jane Doe", "email": "jane@example.com"},
		"skills": [{"id": "s1", "name": "Go", "category": "Languages", "level": "Expert"}]
	}`))
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", doc.PersonalInfo.FullName)
	require.Len(t, doc.Skills, 1)
	assert.Equal(t, "Go", doc.Skills[0].Name)
}

func TestDecodeResume_SchemaViolation(t *testing.T) {
	_, err := DecodeResume([]byte(`{"personalInfo": {}, "skills": [{"id": "s1", "name": "Go", "level": "Guru"}]}`))
	require.Error(t, err)

	var validationErr *ValidationError
	assert.True(t, errors.As(err, &validationErr))
}

func TestDecodeResume_NotJSON(t *testing.T) {
	_, err := DecodeResume([]byte(`not json`))
	assert.Error(t, err)
}

func TestReadResume(t *testing.T) {
	doc, err := ReadResume(filepath.Join("..", "..", "testdata", "valid", "resume.json"))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", doc.PersonalInfo.FullName)

	_, err = ReadResume(filepath.Join("..", "..", "testdata", "invalid", "resume_bad_level.json"))
	var validationErr *ValidationError
	assert.True(t, errors.As(err, &validationErr))

	_, err = ReadResume(filepath.Join(t.TempDir(), "missing.json"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
