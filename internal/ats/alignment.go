package ats

import (
	"strings"

	"github.com/jonathan/resume-ats/internal/fuzzy"
	"github.com/jonathan/resume-ats/internal/keywords"
	"github.com/jonathan/resume-ats/internal/types"
)

// computeSkillsAlignment counts the skills whose name is similar to a job keyword.
// Both the normalized skill name and each of its tokens are tried, so "React.js"
// aligns with "react" and "Google Cloud Platform" aligns with "cloud".
func computeSkillsAlignment(skills []types.SkillEntry, jobKeywords []string) types.SkillsAlignment {
	aligned := make([]types.SkillEntry, 0, len(skills))
	for _, skill := range skills {
		if skillAligns(skill.Name, jobKeywords) {
			aligned = append(aligned, skill)
		}
	}

	result := types.SkillsAlignment{
		Total:         len(skills),
		Aligned:       len(aligned),
		AlignedSkills: aligned,
	}
	if result.Total > 0 {
		result.Percentage = roundPercent(result.Aligned, result.Total)
	}
	return result
}

func skillAligns(name string, jobKeywords []string) bool {
	candidates := append([]string{keywords.NormalizeSkillName(name)}, keywords.Extract(name)...)
	for _, kw := range jobKeywords {
		for _, c := range candidates {
			if c != "" && fuzzy.Similar(c, kw) {
				return true
			}
		}
	}
	return false
}

// computeExperienceRelevance counts the experience entries whose position,
// company or bullets mention at least one job keyword.
func computeExperienceRelevance(experience []types.ExperienceEntry, jobKeywords []string) types.ExperienceRelevance {
	relevant := 0
	for _, exp := range experience {
		text := strings.ToLower(exp.Position + " " + exp.Company + " " + strings.Join(exp.Description, " "))
		for _, kw := range jobKeywords {
			if strings.Contains(text, kw) {
				relevant++
				break
			}
		}
	}

	result := types.ExperienceRelevance{
		Total:    len(experience),
		Relevant: relevant,
	}
	if result.Total > 0 {
		result.Percentage = roundPercent(result.Relevant, result.Total)
	}
	return result
}
