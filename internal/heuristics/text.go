package heuristics

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/resume-importer/internal/ingestion"
)

var (
	leadingNonLetterRE = regexp.MustCompile(`^[^A-Za-zÀ-ÿ]+`)
	codeSymbolRE       = regexp.MustCompile(`[#+./\\-]`)
)

// Fold is the ASCII folding used for every keyword comparison.
func Fold(text string) string {
	return ingestion.NormalizeASCII(text)
}

// IsUpper reports whether text has at least one cased letter and no lower-case letters.
func IsUpper(text string) bool {
	cased := false
	for _, r := range text {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			cased = true
		}
	}
	return cased
}

// StartsUpper reports whether the first rune of text is upper-case.
func StartsUpper(text string) bool {
	r, _ := utf8.DecodeRuneInString(text)
	return r != utf8.RuneError && unicode.IsUpper(r)
}

// StartsLower reports whether the first rune of text is lower-case.
func StartsLower(text string) bool {
	r, _ := utf8.DecodeRuneInString(text)
	return r != utf8.RuneError && unicode.IsLower(r)
}

// HasDigit reports whether text contains a decimal digit.
func HasDigit(text string) bool {
	return strings.IndexFunc(text, unicode.IsDigit) >= 0
}

// IsDigits reports whether text is non-empty and made only of digits.
func IsDigits(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// IsAlpha reports whether text is non-empty and made only of letters.
func IsAlpha(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// RuneLen is the character length used by every length threshold.
func RuneLen(text string) int {
	return utf8.RuneCountInString(text)
}

// ContainsAny reports whether text contains any of needles.
func ContainsAny(text string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(text, needle) {
			return true
		}
	}
	return false
}

// HasContactData reports whether line carries an email, phone number or URL.
func HasContactData(line string) bool {
	return EmailRE.MatchString(line) || PhoneRE.MatchString(line) || URLRE.MatchString(line)
}

// FirstMatch returns the trimmed first match of re in text.
func FirstMatch(re *regexp.Regexp, text string) string {
	return strings.TrimSpace(re.FindString(text))
}

// IsBullet reports whether line opens with a bullet marker.
func IsBullet(line string) bool {
	return BulletRE.MatchString(strings.TrimSpace(line))
}

// ContainsBulletSymbol reports whether text contains a typographic bullet anywhere.
func ContainsBulletSymbol(text string) bool {
	return strings.ContainsAny(text, bulletSymbols)
}

// CleanBullet removes bullet glyphs and a leading "-"/"*" marker.
func CleanBullet(text string) string {
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(bulletSymbols, r) {
			return -1
		}
		return r
	}, text)
	cleaned = BulletRE.ReplaceAllString(cleaned, "")
	cleaned = strings.Trim(cleaned, "-* ")
	return strings.TrimSpace(cleaned)
}

// NormalizeHeadingLine strips bullets and leading non-letter decoration.
func NormalizeHeadingLine(line string) string {
	cleaned := strings.TrimSpace(CleanBullet(line))
	cleaned = leadingNonLetterRE.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(cleaned)
}

// JoinParagraph joins lines into paragraphs; empty lines separate paragraphs
// and paragraphs are joined with a newline.
func JoinParagraph(lines []string) string {
	var chunks []string
	var current []string
	for _, line := range lines {
		if line == "" {
			if len(current) > 0 {
				chunks = append(chunks, strings.Join(current, " "))
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}
	return strings.TrimSpace(strings.Join(chunks, "\n"))
}

// SplitFields splits text on sep and returns the trimmed non-empty parts.
func SplitFields(text, sep string) []string {
	var parts []string
	for _, part := range strings.Split(text, sep) {
		if p := strings.TrimSpace(part); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
