package ats

import (
	"math"

	"github.com/jonathan/resume-ats/internal/keywords"
	"github.com/jonathan/resume-ats/internal/types"
)

const (
	// MaxMissingKeywords caps the missing keyword list of a score.
	MaxMissingKeywords = 10
	// MaxMatchedKeywords caps the matched keyword list of a score. The keyword
	// match percentage still counts every match.
	MaxMatchedKeywords = 15
	// MaxReportedJobKeywords caps the job keyword list of a report.
	MaxReportedJobKeywords = 20
)

// analysis holds the intermediate values shared by Score and Analyze
type analysis struct {
	doc         *types.ResumeDocument
	corpus      string
	jobKeywords []string
	matched     []string
	missing     []string
}

func newAnalysis(doc *types.ResumeDocument, jobDescription string) *analysis {
	if doc == nil {
		doc = types.NewResumeDocument()
	}
	corpus := Corpus(doc)
	jobKeywords := keywords.Extract(jobDescription)
	matched, missing := matchKeywords(jobKeywords, keywords.Extract(corpus))

	return &analysis{
		doc:         doc,
		corpus:      corpus,
		jobKeywords: jobKeywords,
		matched:     matched,
		missing:     missing,
	}
}

func (a *analysis) score(template types.TemplateID) *types.ATSScore {
	keywordMatch := computeKeywordMatchScore(len(a.matched), len(a.jobKeywords))
	formatting := computeFormattingScore(a.doc)
	sections := computeSectionScore(a.doc)
	readability := computeReadabilityScore(a.corpus)

	// Unweighted mean of the four sub-scores
	overall := int(math.Round(float64(keywordMatch+formatting+sections+readability) / 4))

	return &types.ATSScore{
		Overall:         overall,
		KeywordMatch:    keywordMatch,
		Formatting:      formatting,
		Sections:        sections,
		Readability:     readability,
		Suggestions:     Suggest(a.doc, a.missing, keywordMatch),
		MatchedKeywords: truncate(a.matched, MaxMatchedKeywords),
		MissingKeywords: a.missing,
		TemplateScore:   types.TemplateScore(template),
	}
}

// Score rates doc against jobDescription. It is a pure function of its inputs:
// doc is never modified and repeated calls return equal scores. template selects
// the reported template score; an empty or unknown template reports the default.
func Score(doc *types.ResumeDocument, jobDescription string, template types.TemplateID) *types.ATSScore {
	return newAnalysis(doc, jobDescription).score(template)
}

func truncate(list []string, n int) []string {
	if len(list) <= n {
		return list
	}
	return list[:n]
}
