// Package ingestion turns pasted, uploaded or fetched job descriptions into the
// plain text the keyword extractor works on.
package ingestion

import (
	"regexp"
	"strings"
)

var (
	spaceRun      = regexp.MustCompile(`\s+`)
	blankLineRun  = regexp.MustCompile(`\n\n\n+`)
	htmlTagSniff  = regexp.MustCompile(`(?i)<(html|body|div|p|br|ul|ol|li|h[1-6]|span|table|section|article)[\s>/]`)
	htmlLeadSniff = regexp.MustCompile(`(?i)^\s*<(html|body|div|p|br|ul|ol|li|h[1-6]|span|table|section|article)[\s>/]`)
	htmlDocSniff  = regexp.MustCompile(`(?i)^\s*(<!doctype html|<html)`)
	bulletMarkers = []string{"- ", "* ", "• ", "· "}
)

// CleanText cleans and normalizes text content while preserving structure
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleanedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		cleanedLines = append(cleanedLines, cleanLine(line))
	}

	result := strings.Join(cleanedLines, "\n")
	result = blankLineRun.ReplaceAllString(result, "\n\n")

	return strings.TrimSpace(result)
}

// cleanLine cleans a single line while preserving headings and bullets
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")

	if strings.TrimSpace(line) == "" {
		return ""
	}

	trimmed := strings.TrimLeft(line, " \t")
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	if isBulletLine(trimmed) {
		indent := len(line) - len(trimmed)
		return strings.Repeat(" ", indent) + trimmed
	}

	leadingSpace := len(line) - len(trimmed)
	content := spaceRun.ReplaceAllString(strings.TrimSpace(line), " ")
	return strings.Repeat(" ", leadingSpace) + content
}

// isBulletLine checks if a line is a bullet list item
func isBulletLine(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	for _, marker := range bulletMarkers {
		if strings.HasPrefix(trimmed, marker) {
			return true
		}
	}
	return false
}

// minHTMLTags is how many tags text must carry before it is treated as markup
// when it does not start with one.
const minHTMLTags = 3

// LooksLikeHTML reports whether pasted content is markup rather than text.
// Content counts as markup when it starts with a document marker or a tag, or
// carries at least minHTMLTags tags, so prose that names a tag stays text.
func LooksLikeHTML(content string) bool {
	if htmlDocSniff.MatchString(content) || htmlLeadSniff.MatchString(content) {
		return true
	}
	return len(htmlTagSniff.FindAllStringIndex(content, minHTMLTags)) >= minHTMLTags
}

// PrepareJobDescription converts raw input to clean text, stripping markup
// first when the input looks like HTML.
func PrepareJobDescription(raw string) (string, error) {
	if LooksLikeHTML(raw) {
		text, err := HTMLToText(raw)
		if err != nil {
			return "", err
		}
		raw = text
	}
	return CleanText(raw), nil
}
