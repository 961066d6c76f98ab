package heuristics

import (
	"strings"
)

// AppendHighlight adds the bullet content of line to highlights. Lines
// carrying several bullet glyphs are split into several highlights, and a
// fragment that continues the previous highlight (lower-case start, or the
// previous one ending in a comma) is joined onto it.
func AppendHighlight(highlights []string, line string) []string {
	var parts []string
	if ContainsBulletSymbol(line) {
		parts = highlightSplitRE.Split(line, -1)
	} else {
		parts = []string{line}
	}
	for _, part := range parts {
		cleaned := CleanBullet(part)
		if cleaned == "" {
			continue
		}
		for _, chunk := range SplitHighlightChunks(cleaned) {
			if n := len(highlights); n > 0 && IsContinuation(highlights[n-1], chunk) {
				highlights[n-1] = strings.TrimRight(highlights[n-1], " ") + " " + strings.TrimLeft(chunk, " ")
				continue
			}
			highlights = append(highlights, chunk)
		}
	}
	return highlights
}

// IsContinuation reports whether current continues previous rather than
// starting a new highlight.
func IsContinuation(previous, current string) bool {
	if previous == "" || current == "" {
		return false
	}
	if strings.ContainsAny(previous[len(previous)-1:], ".;:!?") {
		return false
	}
	if StartsLower(current) {
		return true
	}
	return strings.HasSuffix(previous, ",")
}

// SplitHighlightChunks splits text on real and literal "\n" line breaks.
func SplitHighlightChunks(text string) []string {
	chunks := SplitEscapedNewlines(text)
	if len(chunks) == 0 {
		return []string{text}
	}
	return chunks
}

// SplitEscapedNewlines splits text into trimmed non-empty lines, treating
// the two-character sequence `\n` as a line break too.
func SplitEscapedNewlines(text string) []string {
	s := strings.ReplaceAll(text, `\r\n`, "\n")
	s = strings.ReplaceAll(s, `\n`, "\n")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	var parts []string
	for _, line := range strings.Split(s, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			parts = append(parts, t)
		}
	}
	return parts
}

// SplitItemsText parses item text one item per line, keeping commas inside
// an item. Single digits split onto separate lines by extraction ("1", "2",
// "3") are re-joined into one "1, 2, 3" item.
func SplitItemsText(raw string) []string {
	var items []string
	for _, line := range SplitEscapedNewlines(raw) {
		if item := CleanBullet(line); item != "" {
			items = append(items, item)
		}
	}
	if len(items) >= 2 {
		allDigits := true
		for _, item := range items {
			if RuneLen(item) != 1 || !IsDigits(item) {
				allDigits = false
				break
			}
		}
		if allDigits {
			return []string{strings.Join(items, ", ")}
		}
	}
	return items
}

// LooksLikeInlineList reports whether line is a bullet-less "A, B, C" list:
// at least three parts and no date range. Two-part lines are left to the
// location heuristics.
func LooksLikeInlineList(line string) bool {
	s := strings.TrimSpace(line)
	if s == "" || HasDateRange(s) {
		return false
	}
	parts := SplitFields(s, ",")
	if len(parts) < 3 && strings.Count(s, ",") < 2 {
		return false
	}
	return len(parts) != 2
}
