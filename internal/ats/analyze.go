package ats

import (
	"slices"

	"github.com/jonathan/resume-ats/internal/types"
)

// Analyze scores doc against jobDescription and adds the breakdowns shown next
// to the score: the leading job keywords, skills alignment, experience relevance
// and the score band. Like Score, it never modifies doc.
func Analyze(doc *types.ResumeDocument, jobDescription string, template types.TemplateID) *types.JobMatchReport {
	a := newAnalysis(doc, jobDescription)
	score := a.score(template)
	band := BandFor(score.Overall)

	return &types.JobMatchReport{
		Score:               *score,
		JobKeywords:         slices.Clone(truncate(a.jobKeywords, MaxReportedJobKeywords)),
		SkillsAlignment:     computeSkillsAlignment(a.doc.Skills, a.jobKeywords),
		ExperienceRelevance: computeExperienceRelevance(a.doc.Experience, a.jobKeywords),
		Band:                string(band),
		BandMessage:         band.Message(),
	}
}
