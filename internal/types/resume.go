// Package types provides type definitions for structured data used throughout the resume builder.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"slices"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// SkillLevel is a self-assessed proficiency level
type SkillLevel string

// Skill levels accepted by the skills form
const (
	SkillBeginner     SkillLevel = "Beginner"
	SkillIntermediate SkillLevel = "Intermediate"
	SkillAdvanced     SkillLevel = "Advanced"
	SkillExpert       SkillLevel = "Expert"
)

// SkillLevels lists every valid skill level in ascending order.
var SkillLevels = []SkillLevel{SkillBeginner, SkillIntermediate, SkillAdvanced, SkillExpert}

// ParseSkillLevel returns the SkillLevel matching s exactly.
func ParseSkillLevel(s string) (SkillLevel, error) {
	for _, level := range SkillLevels {
		if string(level) == s {
			return level, nil
		}
	}
	return "", fmt.Errorf("unknown skill level %q", s)
}

// PersonalInfo holds the singleton contact block of a resume.
// Field names match the browser client so autosave blobs round-trip.
type PersonalInfo struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	Location string `json:"location" validate:"required"`
	Website  string `json:"website,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Summary  string `json:"summary" validate:"required"`
}

// Validate reports whether the personal info block is complete enough to leave
// the first wizard step.
func (p *PersonalInfo) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}

// ExperienceEntry is a single work history item. EndDate is ignored when Current is set.
type ExperienceEntry struct {
	ID          string   `json:"id"`
	Company     string   `json:"company"`
	Position    string   `json:"position"`
	Location    string   `json:"location"`
	StartDate   string   `json:"startDate"` // YYYY-MM
	EndDate     string   `json:"endDate"`   // YYYY-MM
	Current     bool     `json:"current"`
	Description []string `json:"description"`
}

// EducationEntry is a single education item
type EducationEntry struct {
	ID          string `json:"id"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	GPA         string `json:"gpa,omitempty"`
}

// SkillEntry is a single skill with a free-form category
type SkillEntry struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Category string     `json:"category"`
	Level    SkillLevel `json:"level"`
}

// ProjectEntry is a single portfolio project
type ProjectEntry struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	URL          string   `json:"url,omitempty"`
	GitHub       string   `json:"github,omitempty"`
}

// CertificationEntry is a single certification
type CertificationEntry struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"` // YYYY-MM
	URL    string `json:"url,omitempty"`
}

// ResumeDocument is the aggregate root edited by the wizard.
type ResumeDocument struct {
	PersonalInfo   PersonalInfo         `json:"personalInfo"`
	Experience     []ExperienceEntry    `json:"experience"`
	Education      []EducationEntry     `json:"education"`
	Skills         []SkillEntry         `json:"skills"`
	Projects       []ProjectEntry       `json:"projects"`
	Certifications []CertificationEntry `json:"certifications"`
}

// NewResumeDocument returns an empty document with non-nil lists, matching the
// state a new wizard session starts from.
func NewResumeDocument() *ResumeDocument {
	return &ResumeDocument{
		Experience:     []ExperienceEntry{},
		Education:      []EducationEntry{},
		Skills:         []SkillEntry{},
		Projects:       []ProjectEntry{},
		Certifications: []CertificationEntry{},
	}
}

// Clone returns a deep copy of the document.
func (d *ResumeDocument) Clone() *ResumeDocument {
	if d == nil {
		return nil
	}
	out := &ResumeDocument{
		PersonalInfo:   d.PersonalInfo,
		Experience:     slices.Clone(d.Experience),
		Education:      slices.Clone(d.Education),
		Skills:         slices.Clone(d.Skills),
		Projects:       slices.Clone(d.Projects),
		Certifications: slices.Clone(d.Certifications),
	}
	for i := range out.Experience {
		out.Experience[i].Description = slices.Clone(out.Experience[i].Description)
	}
	for i := range out.Projects {
		out.Projects[i].Technologies = slices.Clone(out.Projects[i].Technologies)
	}
	return out
}

// NewEntryID returns a fresh identifier for a list entry.
// IDs only need to be unique within one document.
func NewEntryID() string {
	return uuid.NewString()
}

// NewExperienceEntry returns an experience entry with a fresh ID and one empty bullet placeholder.
func NewExperienceEntry() ExperienceEntry {
	return ExperienceEntry{ID: NewEntryID(), Description: []string{""}}
}

// NewEducationEntry returns an education entry with a fresh ID.
func NewEducationEntry() EducationEntry {
	return EducationEntry{ID: NewEntryID()}
}

// NewSkillEntry returns a skill entry with a fresh ID at the given level.
func NewSkillEntry(name, category string, level SkillLevel) SkillEntry {
	return SkillEntry{ID: NewEntryID(), Name: name, Category: category, Level: level}
}

// NewProjectEntry returns a project entry with a fresh ID.
func NewProjectEntry() ProjectEntry {
	return ProjectEntry{ID: NewEntryID(), Technologies: []string{}}
}

// NewCertificationEntry returns a certification entry with a fresh ID.
func NewCertificationEntry() CertificationEntry {
	return CertificationEntry{ID: NewEntryID()}
}
