// Package observability provides formatted output for verbose CLI mode and
// prometheus metrics for the engine and server.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-ats/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// barWidth is the number of cells in a score bar
	barWidth = 20
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "..."
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

// scoreBar renders a 0-100 score as a fixed-width bar
func scoreBar(score int) string {
	score = max(0, min(100, score))
	filled := score * barWidth / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

// writeList writes up to limit items as bullets followed by an overflow line
func writeList(sb *strings.Builder, items []string, limit int) {
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
}

// PrintScore outputs the score breakdown with keyword lists.
func (p *Printer) PrintScore(score *types.ATSScore) {
	if score == nil {
		return
	}

	var sb strings.Builder
	rows := []struct {
		label string
		value int
	}{
		{"Overall", score.Overall},
		{"Keyword match", score.KeywordMatch},
		{"Formatting", score.Formatting},
		{"Sections", score.Sections},
		{"Readability", score.Readability},
		{"Template", score.TemplateScore},
	}
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("%-14s %3d/100  %s\n", row.label, row.value, scoreBar(row.value)))
	}

	if len(score.MatchedKeywords) > 0 {
		sb.WriteString(fmt.Sprintf("\nMatched keywords (%d):\n", len(score.MatchedKeywords)))
		writeList(&sb, score.MatchedKeywords, maxItemsToShow)
	}
	if len(score.MissingKeywords) > 0 {
		sb.WriteString(fmt.Sprintf("\nMissing keywords (%d):\n", len(score.MissingKeywords)))
		writeList(&sb, score.MissingKeywords, maxItemsToShow)
	}

	p.printBox("ATS SCORE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSuggestions outputs the improvement suggestions, or a success line when there are none.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintSuggestions(suggestions []string) {
	if len(suggestions) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO SUGGESTIONS")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	for i, s := range suggestions {
		sb.WriteString(fmt.Sprintf("%d. %s", i+1, s))
		if i < len(suggestions)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("SUGGESTIONS", sb.String())
}

// PrintReport outputs the full job match report: score, alignment and suggestions.
func (p *Printer) PrintReport(report *types.JobMatchReport) {
	if report == nil {
		return
	}

	p.PrintScore(&report.Score)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Band:        %s\n", report.Band))
	sb.WriteString(fmt.Sprintf("             %s\n\n", report.BandMessage))

	sa := report.SkillsAlignment
	sb.WriteString(fmt.Sprintf("Skills:      %d of %d aligned (%d%%)\n", sa.Aligned, sa.Total, sa.Percentage))
	names := make([]string, 0, len(sa.AlignedSkills))
	for _, s := range sa.AlignedSkills {
		names = append(names, s.Name)
	}
	writeList(&sb, names, maxItemsToShow)

	er := report.ExperienceRelevance
	sb.WriteString(fmt.Sprintf("Experience:  %d of %d relevant (%d%%)\n", er.Relevant, er.Total, er.Percentage))

	if len(report.JobKeywords) > 0 {
		keywords := strings.Join(report.JobKeywords, ", ")
		sb.WriteString(fmt.Sprintf("\nJob keywords: %s\n", truncate(keywords, boxWidth-18)))
	}

	p.printBox("JOB MATCH", strings.TrimSuffix(sb.String(), "\n"))
	p.PrintSuggestions(report.Score.Suggestions)
}

// PrintTemplates outputs the template rating table.
func (p *Printer) PrintTemplates(templates []types.TemplateRating) {
	if len(templates) == 0 {
		return
	}

	var sb strings.Builder
	for i, t := range templates {
		sb.WriteString(fmt.Sprintf("%-9s %-16s ATS %3d\n", t.ID, t.Name, t.ATSScore))
		if len(t.BestFor) > 0 {
			sb.WriteString(fmt.Sprintf("  Best for: %s\n", strings.Join(t.BestFor, ", ")))
		}
		if i < len(templates)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("TEMPLATES", strings.TrimSuffix(sb.String(), "\n"))
}

// RankedJob is one line of a batch ranking
type RankedJob struct {
	Source       string
	Overall      int
	KeywordMatch int
	Band         string
	Err          error
}

// PrintRanking outputs batch results in the order given.
func (p *Printer) PrintRanking(jobs []RankedJob) {
	if len(jobs) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Ranked %d job descriptions:\n\n", len(jobs)))
	for i, j := range jobs {
		if j.Err != nil {
			sb.WriteString(fmt.Sprintf("#%d  %s\n    error: %v\n", i+1, j.Source, j.Err))
			continue
		}
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, j.Source))
		sb.WriteString(fmt.Sprintf("    Overall %d  Keywords %d  (%s)\n", j.Overall, j.KeywordMatch, j.Band))
	}

	p.printBox("BATCH RANKING", strings.TrimSuffix(sb.String(), "\n"))
}
