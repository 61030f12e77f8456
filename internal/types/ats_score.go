// Package types provides type definitions for structured data used throughout the resume builder.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ATSScore is the derived result of one analysis run. It is recomputed wholesale
// on every run and never patched incrementally.
type ATSScore struct {
	Overall         int      `json:"overall"`
	KeywordMatch    int      `json:"keywordMatch"`
	Formatting      int      `json:"formatting"`
	Sections        int      `json:"sections"`
	Readability     int      `json:"readability"`
	Suggestions     []string `json:"suggestions"`
	MatchedKeywords []string `json:"matchedKeywords"`
	MissingKeywords []string `json:"missingKeywords"`
	TemplateScore   int      `json:"templateScore"`
}

// SkillsAlignment summarizes how many listed skills line up with the job keywords
type SkillsAlignment struct {
	Total         int          `json:"total"`
	Aligned       int          `json:"aligned"`
	Percentage    int          `json:"percentage"`
	AlignedSkills []SkillEntry `json:"alignedSkills"`
}

// ExperienceRelevance summarizes how many experience entries mention a job keyword
type ExperienceRelevance struct {
	Total      int `json:"total"`
	Relevant   int `json:"relevant"`
	Percentage int `json:"percentage"`
}

// JobMatchReport is the full output of a job-description analysis: the score plus
// the supporting breakdowns shown next to it.
type JobMatchReport struct {
	Score               ATSScore            `json:"score"`
	JobKeywords         []string            `json:"jobKeywords"`
	SkillsAlignment     SkillsAlignment     `json:"skillsAlignment"`
	ExperienceRelevance ExperienceRelevance `json:"experienceRelevance"`
	Band                string              `json:"band"`
	BandMessage         string              `json:"bandMessage"`
}
