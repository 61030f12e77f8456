package schemas

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/resume-ats/internal/types"
	schemafiles "github.com/jonathan/resume-ats/schemas"
)

// DecodeResume checks data against the resume document schema and unmarshals it.
// Schema violations are returned as *ValidationError.
func DecodeResume(data []byte) (*types.ResumeDocument, error) {
	if err := ValidateEmbedded(schemafiles.ResumeDocument, data); err != nil {
		return nil, err
	}

	var doc types.ResumeDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal resume: %w", err)
	}
	return &doc, nil
}

// ReadResume reads and decodes a resume JSON file.
func ReadResume(path string) (*types.ResumeDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume file %s: %w", path, err)
	}

	doc, err := DecodeResume(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}
