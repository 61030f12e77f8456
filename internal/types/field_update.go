// Package types provides type definitions for structured data used throughout the resume builder.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"slices"
)

// EntryNotFoundError is returned when an update targets an ID that is not in the list
type EntryNotFoundError struct {
	Kind string
	ID   string
}

func (e *EntryNotFoundError) Error() string {
	return fmt.Sprintf("%s entry not found: %s", e.Kind, e.ID)
}

// UnknownFieldError is returned for an update naming a field the entry does not have
type UnknownFieldError struct {
	Kind  string
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown %s field %q", e.Kind, e.Field)
}

// SkillField names an editable skill field
type SkillField string

// Editable skill fields
const (
	SkillFieldName     SkillField = "name"
	SkillFieldCategory SkillField = "category"
	SkillFieldLevel    SkillField = "level"
)

// SkillUpdate sets one field of the skill with the given ID.
type SkillUpdate struct {
	ID    string     `json:"id"`
	Field SkillField `json:"field"`
	Value string     `json:"value"`
}

// ProjectField names an editable project field
type ProjectField string

// Editable project fields. AddTechnology and RemoveTechnology edit the tag list.
const (
	ProjectFieldName             ProjectField = "name"
	ProjectFieldDescription      ProjectField = "description"
	ProjectFieldURL              ProjectField = "url"
	ProjectFieldGitHub           ProjectField = "github"
	ProjectFieldAddTechnology    ProjectField = "addTechnology"
	ProjectFieldRemoveTechnology ProjectField = "removeTechnology"
)

// ProjectUpdate sets one field of the project with the given ID.
type ProjectUpdate struct {
	ID    string       `json:"id"`
	Field ProjectField `json:"field"`
	Value string       `json:"value"`
}

// ApplySkillUpdate applies u in place.
func (d *ResumeDocument) ApplySkillUpdate(u SkillUpdate) error {
	idx := slices.IndexFunc(d.Skills, func(s SkillEntry) bool { return s.ID == u.ID })
	if idx < 0 {
		return &EntryNotFoundError{Kind: "skill", ID: u.ID}
	}
	skill := &d.Skills[idx]
	switch u.Field {
	case SkillFieldName:
		skill.Name = u.Value
	case SkillFieldCategory:
		skill.Category = u.Value
	case SkillFieldLevel:
		level, err := ParseSkillLevel(u.Value)
		if err != nil {
			return err
		}
		skill.Level = level
	default:
		return &UnknownFieldError{Kind: "skill", Field: string(u.Field)}
	}
	return nil
}

// ApplyProjectUpdate applies u in place. Technology tags are unique and
// compared case-sensitively, as entered.
func (d *ResumeDocument) ApplyProjectUpdate(u ProjectUpdate) error {
	idx := slices.IndexFunc(d.Projects, func(p ProjectEntry) bool { return p.ID == u.ID })
	if idx < 0 {
		return &EntryNotFoundError{Kind: "project", ID: u.ID}
	}
	project := &d.Projects[idx]
	switch u.Field {
	case ProjectFieldName:
		project.Name = u.Value
	case ProjectFieldDescription:
		project.Description = u.Value
	case ProjectFieldURL:
		project.URL = u.Value
	case ProjectFieldGitHub:
		project.GitHub = u.Value
	case ProjectFieldAddTechnology:
		if u.Value != "" && !slices.Contains(project.Technologies, u.Value) {
			project.Technologies = append(project.Technologies, u.Value)
		}
	case ProjectFieldRemoveTechnology:
		project.Technologies = slices.DeleteFunc(project.Technologies, func(t string) bool { return t == u.Value })
	default:
		return &UnknownFieldError{Kind: "project", Field: string(u.Field)}
	}
	return nil
}

// UpdateExperience replaces the experience entry carrying the same ID.
func (d *ResumeDocument) UpdateExperience(entry ExperienceEntry) error {
	return replaceByID(d.Experience, entry, "experience", func(e ExperienceEntry) string { return e.ID })
}

// UpdateEducation replaces the education entry carrying the same ID.
func (d *ResumeDocument) UpdateEducation(entry EducationEntry) error {
	return replaceByID(d.Education, entry, "education", func(e EducationEntry) string { return e.ID })
}

// UpdateCertification replaces the certification entry carrying the same ID.
func (d *ResumeDocument) UpdateCertification(entry CertificationEntry) error {
	return replaceByID(d.Certifications, entry, "certification", func(e CertificationEntry) string { return e.ID })
}

// RemoveExperience deletes the experience entry with the given ID, reporting whether it existed.
func (d *ResumeDocument) RemoveExperience(id string) bool {
	var ok bool
	d.Experience, ok = removeByID(d.Experience, id, func(e ExperienceEntry) string { return e.ID })
	return ok
}

// RemoveEducation deletes the education entry with the given ID.
func (d *ResumeDocument) RemoveEducation(id string) bool {
	var ok bool
	d.Education, ok = removeByID(d.Education, id, func(e EducationEntry) string { return e.ID })
	return ok
}

// RemoveSkill deletes the skill with the given ID.
func (d *ResumeDocument) RemoveSkill(id string) bool {
	var ok bool
	d.Skills, ok = removeByID(d.Skills, id, func(e SkillEntry) string { return e.ID })
	return ok
}

// RemoveProject deletes the project with the given ID.
func (d *ResumeDocument) RemoveProject(id string) bool {
	var ok bool
	d.Projects, ok = removeByID(d.Projects, id, func(e ProjectEntry) string { return e.ID })
	return ok
}

// RemoveCertification deletes the certification with the given ID.
func (d *ResumeDocument) RemoveCertification(id string) bool {
	var ok bool
	d.Certifications, ok = removeByID(d.Certifications, id, func(e CertificationEntry) string { return e.ID })
	return ok
}

func replaceByID[T any](list []T, entry T, kind string, idOf func(T) string) error {
	id := idOf(entry)
	for i := range list {
		if idOf(list[i]) == id {
			list[i] = entry
			return nil
		}
	}
	return &EntryNotFoundError{Kind: kind, ID: id}
}

func removeByID[T any](list []T, id string, idOf func(T) string) ([]T, bool) {
	before := len(list)
	list = slices.DeleteFunc(list, func(e T) bool { return idOf(e) == id })
	return list, len(list) != before
}
