package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"time"
)

// JobDescription is prepared job description text plus where it came from
type JobDescription struct {
	Text       string `json:"text"`
	Source     string `json:"source,omitempty"` // file path or URL; empty when pasted
	Hash       string `json:"hash"`             // SHA256 hex digest of Text
	IngestedAt string `json:"ingested_at"`      // RFC3339 format
}

// NewJobDescription wraps already prepared text.
func NewJobDescription(text, source string) *JobDescription {
	return &JobDescription{
		Text:       text,
		Source:     source,
		Hash:       computeHash(text),
		IngestedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// ReadJobDescription reads a text or HTML job description file and prepares it.
func ReadJobDescription(path string) (*JobDescription, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	text, err := PrepareJobDescription(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to prepare %s: %w", path, err)
	}

	return NewJobDescription(text, path), nil
}
