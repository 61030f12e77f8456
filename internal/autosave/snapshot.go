// Package autosave persists the in-progress resume to a key/value store and
// restores it on the next start if it is recent enough.
package autosave

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jonathan/resume-ats/internal/schemas"
	"github.com/jonathan/resume-ats/internal/types"
	schemafiles "github.com/jonathan/resume-ats/schemas"
)

const (
	// StorageKey is the fixed key the snapshot is stored under. It matches the
	// browser client so both can share a store.
	StorageKey = "resumeai_autosave"
	// MaxAge is how old a snapshot may get before it is no longer restored.
	MaxAge = 24 * time.Hour
)

// SessionKey returns the storage key of a server-side session.
func SessionKey(sessionID string) string {
	return StorageKey + ":" + sessionID
}

// Snapshot is the persisted editing state. Timestamp is in Unix milliseconds.
type Snapshot struct {
	ResumeData       *types.ResumeDocument `json:"resumeData"`
	SelectedTemplate types.TemplateID      `json:"selectedTemplate"`
	Timestamp        int64                 `json:"timestamp"`
}

// NewSnapshot captures doc and template at time now. doc is deep-copied.
func NewSnapshot(doc *types.ResumeDocument, template types.TemplateID, now time.Time) *Snapshot {
	if doc == nil {
		doc = types.NewResumeDocument()
	}
	return &Snapshot{
		ResumeData:       doc.Clone(),
		SelectedTemplate: template,
		Timestamp:        now.UnixMilli(),
	}
}

// SavedAt returns the snapshot time.
func (s *Snapshot) SavedAt() time.Time {
	return time.UnixMilli(s.Timestamp)
}

// Age returns how long before now the snapshot was taken.
func (s *Snapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.SavedAt())
}

// Encode serializes the snapshot to its stored JSON form.
func (s *Snapshot) Encode() ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return data, nil
}

// Decode parses a stored blob. The envelope and the embedded resume are both
// checked against their JSON Schemas before unmarshaling.
func Decode(data []byte) (*Snapshot, error) {
	if err := schemas.ValidateEmbedded(schemafiles.AutosaveSnapshot, data); err != nil {
		return nil, err
	}

	var raw struct {
		ResumeData json.RawMessage `json:"resumeData"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	if err := schemas.ValidateEmbedded(schemafiles.ResumeDocument, raw.ResumeData); err != nil {
		return nil, fmt.Errorf("resumeData: %w", err)
	}

	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &s, nil
}
