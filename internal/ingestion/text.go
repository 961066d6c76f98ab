// Package ingestion turns uploaded resume documents into clean text lines for the parsers.
package ingestion

import (
	"regexp"
	"strings"
)

var (
	spaceRunRE = regexp.MustCompile(`[ \t\f\v\x{00A0}\x{2007}\x{202F}]+`)
	blankRunRE = regexp.MustCompile(`\n\n\n+`)
)

// repeatedLineMinLength is the length above which a line seen more than
// repeatedLineMaxCount times is considered a running header or footer.
const (
	repeatedLineMinLength = 40
	repeatedLineMaxCount  = 2
)

// CleanText normalizes line endings and whitespace while preserving line structure.
// Runs of blank lines collapse to a single blank line.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.TrimPrefix(content, "\ufeff")
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, cleanLine(line))
	}

	result := strings.Join(cleaned, "\n")
	result = blankRunRE.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine collapses inner whitespace, trims the line and repairs mojibake.
func cleanLine(line string) string {
	line = spaceRunRE.ReplaceAllString(line, " ")
	line = strings.TrimSpace(line)
	if line == "" {
		return ""
	}
	return RepairMojibake(line)
}

// SplitLines cleans content and returns its lines, blank lines included.
func SplitLines(content string) []string {
	cleaned := CleanText(content)
	if cleaned == "" {
		return nil
	}
	return strings.Split(cleaned, "\n")
}

// CompactLines trims every line, drops immediate repeats and long lines that
// recur more than twice (page headers and footers), and keeps at most one
// blank line between content lines. Leading and trailing blanks are dropped.
func CompactLines(lines []string) []string {
	compacted := make([]string, 0, len(lines))
	seen := make(map[string]int)
	last := ""
	pendingBlank := false
	for _, line := range lines {
		cleaned := strings.TrimSpace(line)
		if cleaned == "" {
			pendingBlank = len(compacted) > 0
			continue
		}
		if cleaned == last {
			continue
		}
		last = cleaned
		key := NormalizeASCII(cleaned)
		seen[key]++
		if seen[key] > repeatedLineMaxCount && len(cleaned) > repeatedLineMinLength {
			continue
		}
		if pendingBlank {
			compacted = append(compacted, "")
			pendingBlank = false
		}
		compacted = append(compacted, cleaned)
	}
	return compacted
}
