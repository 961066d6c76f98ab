package ingestion

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeASCII folds text for keyword comparison: diacritics removed
// (NFKD minus combining marks), whitespace collapsed, lower-cased.
func NormalizeASCII(text string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	folded, _, err := transform.String(t, text)
	if err != nil {
		folded = text
	}
	return strings.ToLower(strings.Join(strings.Fields(folded), " "))
}

// mojibakeMarkers are sequences produced when UTF-8 text is decoded as Windows-1252.
var mojibakeMarkers = []string{"Ã", "Â", "â€"}

// RepairMojibake reverses a UTF-8 → Windows-1252 mis-decoding such as
// "EDUCACIÃ“N". Text without the typical markers, or text that does not
// re-encode into valid UTF-8, is returned unchanged.
func RepairMojibake(text string) string {
	if !hasMojibakeMarker(text) {
		return text
	}
	raw, err := charmap.Windows1252.NewEncoder().String(text)
	if err != nil || !utf8.ValidString(raw) || raw == text {
		return text
	}
	return raw
}

func hasMojibakeMarker(text string) bool {
	for _, marker := range mojibakeMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}
