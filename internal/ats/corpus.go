// Package ats scores a resume against a job description the way a keyword-based
// applicant tracking system might, and explains the result.
package ats

import (
	"strings"

	"github.com/jonathan/resume-ats/internal/types"
)

// Corpus flattens a resume into the single text blob used for keyword analysis.
// Field order is fixed: name, summary, experience (position, company, bullets),
// education (degree, field, institution), skills (name, category), projects
// (name, description, technologies). Certifications are not part of the corpus.
func Corpus(doc *types.ResumeDocument) string {
	if doc == nil {
		return ""
	}

	var sb strings.Builder
	write := func(parts ...string) {
		for _, p := range parts {
			sb.WriteString(p)
			sb.WriteString(" ")
		}
	}

	write(doc.PersonalInfo.FullName, doc.PersonalInfo.Summary)
	for _, exp := range doc.Experience {
		write(exp.Position, exp.Company, strings.Join(exp.Description, " "))
	}
	for _, edu := range doc.Education {
		write(edu.Degree, edu.Field, edu.Institution)
	}
	for _, skill := range doc.Skills {
		write(skill.Name, skill.Category)
	}
	for _, project := range doc.Projects {
		write(project.Name, project.Description, strings.Join(project.Technologies, " "))
	}

	return sb.String()
}
