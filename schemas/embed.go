// Package schemas holds the JSON Schemas of the documents the tool reads and writes.
package schemas

import (
	"embed"
	"fmt"
	"io/fs"
)

// Schema file names
const (
	ResumeDocument   = "resume_document.schema.json"
	ATSScore         = "ats_score.schema.json"
	AutosaveSnapshot = "autosave_snapshot.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Read returns the content of the named schema file.
func Read(name string) ([]byte, error) {
	data, err := files.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("unknown schema %q: %w", name, err)
	}
	return data, nil
}

// Names lists every embedded schema file.
func Names() []string {
	names, _ := fs.Glob(files, "*.schema.json")
	return names
}
