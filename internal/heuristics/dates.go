package heuristics

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	isoMonthRE     = regexp.MustCompile(`^\d{4}-\d{2}$`)
	yearRE         = regexp.MustCompile(`^\d{4}$`)
	slashMonthRE   = regexp.MustCompile(`^(\d{1,2})/(\d{4})$`)
	displayMonthRE = regexp.MustCompile(`^(\d{4})(?:-(\d{1,2}))?$`)
	separatorRunRE = regexp.MustCompile(`\s*[|·•]\s*`)

	dateStartIdx = DateRangeRE.SubexpIndex("start")
	dateEndIdx   = DateRangeRE.SubexpIndex("end")
)

// DateRange is a normalized start/end pair. An empty End on a non-empty
// Start means the range is still open.
type DateRange struct {
	Start string
	End   string
}

// IsZero reports whether neither bound is set.
func (d DateRange) IsZero() bool {
	return d.Start == "" && d.End == ""
}

// ExtractDateRange finds a date range in line and returns it normalized,
// together with the line minus the matched span and residual separators.
func ExtractDateRange(line string) (DateRange, string, bool) {
	if line == "" {
		return DateRange{}, line, false
	}
	loc := DateRangeRE.FindStringSubmatchIndex(line)
	if loc == nil {
		return DateRange{}, line, false
	}
	dr := DateRange{
		Start: NormalizeDateToken(line[loc[2*dateStartIdx]:loc[2*dateStartIdx+1]]),
		End:   NormalizeDateToken(line[loc[2*dateEndIdx]:loc[2*dateEndIdx+1]]),
	}
	remainder := strings.TrimSpace(line[:loc[0]] + line[loc[1]:])
	remainder = strings.Trim(remainder, "()[]{}")
	remainder = separatorRunRE.ReplaceAllString(remainder, " ")
	remainder = strings.Trim(remainder, "-–— ")
	return dr, remainder, true
}

// HasDateRange reports whether line contains a loose date range.
func HasDateRange(line string) bool {
	return DateRangeRE.MatchString(line)
}

// FindMonthDateRange returns the first strict month-based range (closed or open) in text.
func FindMonthDateRange(text string) (string, bool) {
	if match := MonthDateRangeRE.FindString(text); match != "" {
		return match, true
	}
	if match := MonthOpenDateRangeRE.FindString(text); match != "" {
		return match, true
	}
	return "", false
}

// NormalizeDateToken converts a date token to YYYY-MM (or YYYY when no
// month is known). Open-ended words normalize to "". Already normalized
// tokens and unrecognized text are returned unchanged.
func NormalizeDateToken(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if OpenEndWords[Fold(value)] {
		return ""
	}
	if isoMonthRE.MatchString(value) || yearRE.MatchString(value) {
		return value
	}
	if m := slashMonthRE.FindStringSubmatch(value); m != nil {
		month := m[1]
		if len(month) == 1 {
			month = "0" + month
		}
		return m[2] + "-" + month
	}

	parts := strings.Fields(strings.ReplaceAll(value, ".", ""))
	if len(parts) >= 2 {
		if month, ok := Months[Fold(parts[0])]; ok && IsDigits(parts[1]) {
			return parts[1] + "-" + month
		}
	}
	return value
}

// FormatDateToken renders YYYY-MM as "Mon YYYY" and leaves other tokens as they are.
func FormatDateToken(value string) string {
	value = strings.TrimSpace(value)
	m := displayMonthRE.FindStringSubmatch(value)
	if m == nil {
		return value
	}
	if m[2] == "" {
		return m[1]
	}
	month := m[2]
	if len(month) == 1 {
		month = "0" + month
	}
	if short, ok := MonthsShort[month]; ok {
		return fmt.Sprintf("%s %s", short, m[1])
	}
	return fmt.Sprintf("%s %s", month, m[1])
}

// OpenEndLabel is rendered for a range without an end.
const OpenEndLabel = "Actualidad"

// FormatDateRange renders a start/end pair for display. A start without
// end renders as an open range.
func FormatDateRange(start, end string) string {
	s := FormatDateToken(start)
	e := FormatDateToken(end)
	switch {
	case s != "" && e != "":
		return s + " – " + e
	case s != "":
		return s + " – " + OpenEndLabel
	default:
		return e
	}
}
