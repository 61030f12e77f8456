package ats

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-ats/internal/types"
)

const (
	lowKeywordMatchThreshold = 60
	missingKeywordsThreshold = 5
	namedMissingKeywords     = 3
)

// Suggest turns a score's inputs into recommendations. Every rule is evaluated
// independently and fires in a fixed order; the result may be empty.
func Suggest(doc *types.ResumeDocument, missingKeywords []string, keywordMatch int) []string {
	if doc == nil {
		doc = types.NewResumeDocument()
	}
	suggestions := make([]string, 0, 4)

	if keywordMatch < lowKeywordMatchThreshold {
		suggestions = append(suggestions,
			"Consider incorporating more relevant keywords from the job description into your experience descriptions.")
	}

	if len(missingKeywords) > missingKeywordsThreshold {
		suggestions = append(suggestions,
			fmt.Sprintf("Add skills related to: %s to better match the job requirements.",
				strings.Join(missingKeywords[:namedMissingKeywords], ", ")))
	}

	if doc.PersonalInfo.Summary == "" {
		suggestions = append(suggestions,
			"Add a professional summary that highlights your key qualifications for this role.")
	}

	if len(doc.Experience) == 0 {
		suggestions = append(suggestions,
			"Add relevant work experience to strengthen your application.")
	}

	return suggestions
}
