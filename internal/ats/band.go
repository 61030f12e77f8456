package ats

// Band is a coarse verdict on an overall score
type Band string

// Score bands, from best to worst
const (
	BandExcellent        Band = "excellent"
	BandGood             Band = "good"
	BandFair             Band = "fair"
	BandNeedsImprovement Band = "needs_improvement"
)

var bandMessages = map[Band]string{
	BandExcellent:        "Excellent! Your resume is highly optimized for ATS systems.",
	BandGood:             "Good! Your resume should perform well with most ATS systems.",
	BandFair:             "Fair. Consider implementing the suggestions below.",
	BandNeedsImprovement: "Needs improvement. Follow our recommendations to boost your ATS score.",
}

// BandFor returns the band an overall score falls in.
func BandFor(overall int) Band {
	switch {
	case overall >= 90:
		return BandExcellent
	case overall >= 80:
		return BandGood
	case overall >= 70:
		return BandFair
	default:
		return BandNeedsImprovement
	}
}

// Message returns the user-facing sentence for the band.
func (b Band) Message() string {
	return bandMessages[b]
}
