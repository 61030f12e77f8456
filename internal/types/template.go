// Package types provides type definitions for structured data used throughout the resume builder.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"slices"
	"sort"
)

// TemplateID identifies one of the fixed document templates
type TemplateID string

// Template identifiers. These are part of the client contract and must not change.
const (
	TemplateModern   TemplateID = "modern"
	TemplateClassic  TemplateID = "classic"
	TemplateCreative TemplateID = "creative"
	TemplateMinimal  TemplateID = "minimal"
)

// DefaultTemplateScore is reported when no known template is selected.
const DefaultTemplateScore = 85

// TemplateRating is the static ATS friendliness rating of a template
type TemplateRating struct {
	ID       TemplateID `json:"id"`
	Name     string     `json:"name"`
	ATSScore int        `json:"atsScore"`
	Pros     []string   `json:"pros"`
	Cons     []string   `json:"cons"`
	BestFor  []string   `json:"bestFor"`
}

var templateRatings = map[TemplateID]TemplateRating{
	TemplateModern: {
		ID:       TemplateModern,
		Name:     "Modern Professional",
		ATSScore: 92,
		Pros:     []string{"Clean structure", "Standard sections", "Good keyword placement"},
		Cons:     []string{"Some graphics may not parse well"},
		BestFor:  []string{"Tech roles", "Creative positions", "Startups"},
	},
	TemplateClassic: {
		ID:       TemplateClassic,
		Name:     "Executive Classic",
		ATSScore: 98,
		Pros:     []string{"Excellent ATS compatibility", "Standard formatting", "No graphics"},
		Cons:     []string{"Less visually appealing"},
		BestFor:  []string{"Corporate roles", "Finance", "Legal"},
	},
	TemplateCreative: {
		ID:       TemplateCreative,
		Name:     "Creative Portfolio",
		ATSScore: 75,
		Pros:     []string{"Eye-catching design", "Good for portfolios"},
		Cons:     []string{"Complex layout", "Graphics may cause parsing issues"},
		BestFor:  []string{"Design roles", "Marketing", "Creative industries"},
	},
	TemplateMinimal: {
		ID:       TemplateMinimal,
		Name:     "Minimal Clean",
		ATSScore: 95,
		Pros:     []string{"Clean parsing", "Simple structure", "High readability"},
		Cons:     []string{"May appear too plain"},
		BestFor:  []string{"All industries", "Conservative fields", "Entry-level"},
	},
}

// ParseTemplateID validates a template identifier.
func ParseTemplateID(s string) (TemplateID, error) {
	id := TemplateID(s)
	if _, ok := templateRatings[id]; !ok {
		return "", fmt.Errorf("unknown template %q", s)
	}
	return id, nil
}

// LookupTemplate returns a copy of the rating for id.
func LookupTemplate(id TemplateID) (TemplateRating, bool) {
	rating, ok := templateRatings[id]
	if !ok {
		return TemplateRating{}, false
	}
	return rating.clone(), true
}

// TemplateScore returns the ATS rating of id, or DefaultTemplateScore when id is unknown.
func TemplateScore(id TemplateID) int {
	if rating, ok := templateRatings[id]; ok {
		return rating.ATSScore
	}
	return DefaultTemplateScore
}

// Templates returns every template rating, best rated first.
func Templates() []TemplateRating {
	out := make([]TemplateRating, 0, len(templateRatings))
	for _, rating := range templateRatings {
		out = append(out, rating.clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ATSScore != out[j].ATSScore {
			return out[i].ATSScore > out[j].ATSScore
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r TemplateRating) clone() TemplateRating {
	r.Pros = slices.Clone(r.Pros)
	r.Cons = slices.Clone(r.Cons)
	r.BestFor = slices.Clone(r.BestFor)
	return r
}
