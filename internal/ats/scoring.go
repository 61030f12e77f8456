package ats

import (
	"math"
	"regexp"
	"slices"
	"strings"

	"github.com/jonathan/resume-ats/internal/fuzzy"
	"github.com/jonathan/resume-ats/internal/types"
)

// Formatting penalties
const (
	missingNamePenalty  = 10
	missingEmailPenalty = 10
	missingPhonePenalty = 10
	noExperiencePenalty = 20
	noSkillsPenalty     = 15
)

// Section completeness points
const (
	summaryPoints    = 20
	experiencePoints = 30
	educationPoints  = 20
	skillsPoints     = 20
	projectsPoints   = 10
)

var sentenceSeparators = regexp.MustCompile(`[.!?]+`)

// matchKeywords splits job keywords into those found in the resume and those
// missing from it. Missing keywords exclude any keyword contained in a matched
// one and are capped at MaxMissingKeywords.
func matchKeywords(jobKeywords, resumeKeywords []string) (matched, missing []string) {
	matched = make([]string, 0, len(jobKeywords))
	for _, kw := range jobKeywords {
		if fuzzy.AnyMatch(kw, resumeKeywords) {
			matched = append(matched, kw)
		}
	}

	missing = make([]string, 0, MaxMissingKeywords)
	for _, kw := range jobKeywords {
		if len(missing) == MaxMissingKeywords {
			break
		}
		if !slices.ContainsFunc(matched, func(m string) bool { return strings.Contains(m, kw) }) {
			missing = append(missing, kw)
		}
	}

	return matched, missing
}

// computeKeywordMatchScore returns the rounded percentage of job keywords matched.
// A job description without extractable keywords scores 0.
func computeKeywordMatchScore(matched, total int) int {
	if total == 0 {
		return 0
	}
	return roundPercent(matched, total)
}

// computeFormattingScore starts at 100 and subtracts a penalty per missing element.
func computeFormattingScore(doc *types.ResumeDocument) int {
	score := 100

	if doc.PersonalInfo.FullName == "" {
		score -= missingNamePenalty
	}
	if doc.PersonalInfo.Email == "" {
		score -= missingEmailPenalty
	}
	if doc.PersonalInfo.Phone == "" {
		score -= missingPhonePenalty
	}
	if len(doc.Experience) == 0 {
		score -= noExperiencePenalty
	}
	if len(doc.Skills) == 0 {
		score -= noSkillsPenalty
	}

	return max(score, 0)
}

// computeSectionScore awards points for each resume section with content.
func computeSectionScore(doc *types.ResumeDocument) int {
	score := 0

	if doc.PersonalInfo.Summary != "" {
		score += summaryPoints
	}
	if len(doc.Experience) > 0 {
		score += experiencePoints
	}
	if len(doc.Education) > 0 {
		score += educationPoints
	}
	if len(doc.Skills) > 0 {
		score += skillsPoints
	}
	if len(doc.Projects) > 0 {
		score += projectsPoints
	}

	return min(score, 100)
}

// computeReadabilityScore maps the average sentence length of text onto fixed bands.
// Text without any sentence counts as one sentence.
func computeReadabilityScore(text string) int {
	sentences := 0
	for _, s := range sentenceSeparators.Split(text, -1) {
		if strings.TrimSpace(s) != "" {
			sentences++
		}
	}
	sentences = max(sentences, 1)

	words := len(strings.Fields(text))
	avgWordsPerSentence := float64(words) / float64(sentences)

	switch {
	case avgWordsPerSentence < 15:
		return 95
	case avgWordsPerSentence < 20:
		return 85
	case avgWordsPerSentence < 25:
		return 75
	default:
		return 65
	}
}

// roundPercent returns round(100 * part / total); total must be positive.
func roundPercent(part, total int) int {
	return int(math.Round(100 * float64(part) / float64(total)))
}
