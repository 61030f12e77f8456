package keywords

import "strings"

// skillNormalizations maps common skill name variants to a canonical lowercase form
var skillNormalizations = map[string]string{
	"golang":              "go",
	"go lang":             "go",
	"js":                  "javascript",
	"ts":                  "typescript",
	"k8s":                 "kubernetes",
	"react.js":            "react",
	"reactjs":             "react",
	"vue.js":              "vue",
	"vuejs":               "vue",
	"node.js":             "node",
	"nodejs":              "node",
	"postgres":            "postgresql",
	"amazon web services": "aws",
	"gcp":                 "google cloud",
	"c sharp":             "c#",
	"dotnet":              ".net",
}

// NormalizeSkillName returns the canonical lowercase form of a skill name so
// that spelling variants compare equal. Whitespace runs collapse to one space.
func NormalizeSkillName(name string) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(name), " "))
	if normalized == "" {
		return ""
	}
	if canonical, ok := skillNormalizations[normalized]; ok {
		return canonical
	}
	return normalized
}
