package lines

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/resume-importer/internal/heuristics"
)

// BulletChars are the leading markers stripped from PDF lines.
const BulletChars = "●•◦-–—·"

var boldFontTokens = []string{"bold", "black", "heavy", "semibold", "demi"}

// Enrich derives the per-line features in place: indentation relative to
// the page's leftmost line, size ratio to the page's median font size,
// bold fonts, leading bullet markers (stripped from Text), uppercase ratio,
// comma density and contact/date flags.
func Enrich(all []Line) {
	if len(all) == 0 {
		return
	}
	minX0 := make(map[int]float64)
	sizes := make(map[int][]float64)
	for _, line := range all {
		if x, ok := minX0[line.Page]; !ok || line.X0 < x {
			minX0[line.Page] = line.X0
		}
		if line.FontSize > 0 {
			sizes[line.Page] = append(sizes[line.Page], line.FontSize)
		}
	}
	medianSize := make(map[int]float64, len(sizes))
	for page, values := range sizes {
		medianSize[page] = Median(values)
	}

	for i := range all {
		line := &all[i]
		line.Text = NormalizeSpaces(line.Text)
		line.Indent = line.X0 - minX0[line.Page]
		line.SizeRatio = 0
		if median := medianSize[line.Page]; median > 0 && line.FontSize > 0 {
			line.SizeRatio = line.FontSize / median
		}
		if font := strings.ToLower(line.FontName); font != "" {
			line.IsBold = heuristics.ContainsAny(font, boldFontTokens)
		}
		if stripped, marker, ok := StripBulletPrefix(line.Text); ok {
			line.IsBullet = true
			line.BulletChar = marker
			line.Text = stripped
		}
		applyTextFeatures(line)
	}
}

func applyTextFeatures(line *Line) {
	line.UppercaseRatio = clamp01(UppercaseRatio(line.Text))
	line.CommaDensity = clamp01(CommaDensity(line.Text))
	line.EndsWithColon = strings.HasSuffix(strings.TrimRightFunc(line.Text, unicode.IsSpace), ":")
	line.HasEmail = heuristics.EmailRE.MatchString(line.Text)
	line.HasPhone = heuristics.PhoneRE.MatchString(line.Text)
	line.HasURL = heuristics.URLRE.MatchString(line.Text)
	line.IsDateRange = heuristics.MonthDateRangeRE.MatchString(line.Text)
	line.IsOpenDateRange = heuristics.MonthOpenDateRangeRE.MatchString(line.Text)
}

// StripBulletPrefix removes a leading bullet marker and reports which one.
func StripBulletPrefix(text string) (string, string, bool) {
	stripped := strings.TrimLeftFunc(text, unicode.IsSpace)
	if stripped == "" {
		return text, "", false
	}
	r, size := utf8.DecodeRuneInString(stripped)
	if !strings.ContainsRune(BulletChars, r) {
		return text, "", false
	}
	return NormalizeSpaces(stripped[size:]), string(r), true
}

// UppercaseRatio is the share of upper-case letters among all letters.
func UppercaseRatio(text string) float64 {
	letters, uppers := 0, 0
	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if unicode.IsUpper(r) {
			uppers++
		}
	}
	if letters == 0 {
		return 0
	}
	return float64(uppers) / float64(letters)
}

// CommaDensity is the number of commas per character of the trimmed text.
func CommaDensity(text string) float64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}
	return float64(strings.Count(text, ",")) / float64(utf8.RuneCountInString(text))
}

// NormalizeSpaces collapses whitespace runs into single spaces.
func NormalizeSpaces(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Median returns the median of values, or 0 for none.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	ordered := append([]float64(nil), values...)
	sort.Float64s(ordered)
	mid := len(ordered) / 2
	if len(ordered)%2 == 1 {
		return ordered[mid]
	}
	return (ordered[mid-1] + ordered[mid]) / 2
}

// MostCommon returns the most frequent non-empty value. Ties go to the
// value seen first.
func MostCommon(values []string) string {
	counts := make(map[string]int)
	best, bestCount := "", 0
	for _, v := range values {
		if v == "" {
			continue
		}
		counts[v]++
	}
	for _, v := range values {
		if c := counts[v]; c > bestCount {
			best, bestCount = v, c
		}
	}
	return best
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
