package heuristics

import (
	"regexp"
	"strings"
)

var (
	locationSepRE      = regexp.MustCompile(`\s*[|·•/]\s*`)
	locationLabelRE    = regexp.MustCompile(`(?i)^(?:ubicacion|ubicación|location)\s*:\s*`)
	locationSplitRE    = regexp.MustCompile(`\s*[|·•]\s*|\s+—\s+|\s+–\s+|\s+-\s+`)
	locationCityIdx    = LocationRE.SubexpIndex("city")
	locationCountryIdx = LocationRE.SubexpIndex("country")
)

// Location is a city/country pair.
type Location struct {
	City    string
	Country string
}

// IsZero reports whether no city was found.
func (l Location) IsZero() bool {
	return l.City == ""
}

// String joins the populated parts with ", ".
func (l Location) String() string {
	switch {
	case l.City != "" && l.Country != "":
		return l.City + ", " + l.Country
	case l.City != "":
		return l.City
	default:
		return l.Country
	}
}

// LooksLikeLocation is the shape test for locations: no digits, shorter
// than 60 characters and carrying a separator.
func LooksLikeLocation(line string) bool {
	if HasDigit(line) || RuneLen(line) >= 60 {
		return false
	}
	if strings.Contains(line, ",") {
		return true
	}
	for _, sep := range []string{" · ", " • ", " | ", " / "} {
		if strings.Contains(line, sep) {
			return true
		}
	}
	return false
}

// HasHonorsHint reports whether text mentions an honors keyword.
func HasHonorsHint(text string) bool {
	return ContainsAny(Fold(text), HonorsHints)
}

// ParseLocation reads "City, Country" (or a |·•/ joined equivalent) from a
// single candidate. Candidates with contact data, a colon, honors keywords
// or a technology-list shape are rejected.
func ParseLocation(line string) Location {
	candidate := strings.TrimSpace(line)
	if candidate == "" {
		return Location{}
	}
	candidate = locationSepRE.ReplaceAllString(candidate, ", ")
	if strings.Contains(candidate, ":") || LooksLikeTech(candidate) {
		return Location{}
	}
	if HasContactData(candidate) || HasHonorsHint(candidate) {
		return Location{}
	}
	if !LooksLikeLocation(candidate) {
		return Location{}
	}
	if m := LocationRE.FindStringSubmatch(candidate); m != nil {
		return Location{
			City:    strings.TrimSpace(m[locationCityIdx]),
			Country: strings.TrimSpace(m[locationCountryIdx]),
		}
	}
	parts := SplitFields(candidate, ",")
	if len(parts) >= 2 {
		if len(strings.Fields(parts[0])) > 4 || len(strings.Fields(parts[1])) > 4 {
			return Location{}
		}
		return Location{City: parts[0], Country: strings.Join(parts[1:], ", ")}
	}
	return Location{}
}

// ExtractLocation finds a location in a line that may carry a "Ubicación:"
// label or other segments joined by separators. A labelled work-mode word
// ("Ubicación: Remoto") is returned as the city.
func ExtractLocation(line string) Location {
	if line == "" {
		return Location{}
	}
	trimmed := strings.TrimSpace(line)
	cleaned := locationLabelRE.ReplaceAllString(trimmed, "")
	cleaned = strings.Trim(cleaned, "()[]{}")
	if cleaned != trimmed && IsRemoteHint(cleaned) {
		return Location{City: strings.TrimSpace(cleaned)}
	}
	candidates := append([]string{cleaned}, locationSplitRE.Split(cleaned, -1)...)
	for _, candidate := range candidates {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		if loc := ParseLocation(candidate); !loc.IsZero() {
			return loc
		}
	}
	return Location{}
}

// SplitOrgPlace splits an "Org | Place" line where Place, after the last
// pipe, is a "City, Country" pair or a work-mode word. The line comes back
// unchanged with a zero Location when it has no such tail.
func SplitOrgPlace(line string) (string, Location) {
	trimmed := strings.TrimSpace(line)
	idx := strings.LastIndex(trimmed, "|")
	if idx < 0 || HasDateRange(trimmed) {
		return trimmed, Location{}
	}
	org := strings.TrimSpace(trimmed[:idx])
	tail := strings.TrimSpace(trimmed[idx+1:])
	if org == "" || tail == "" {
		return trimmed, Location{}
	}
	if IsRemoteHint(tail) {
		return org, Location{City: tail}
	}
	if loc := ParseLocation(tail); !loc.IsZero() {
		return org, loc
	}
	return trimmed, Location{}
}

// IsLocationCandidate reports whether a header chunk may be the owner's
// location. Chunks containing any known contact value are skipped.
func IsLocationCandidate(candidate string, contactValues []string) bool {
	for _, value := range contactValues {
		if value != "" && strings.Contains(candidate, value) {
			return false
		}
	}
	if strings.Contains(candidate, ":") || LooksLikeTech(candidate) {
		return false
	}
	if HasContactData(candidate) || HasHonorsHint(candidate) {
		return false
	}
	return LooksLikeLocation(candidate)
}

// IsRemoteHint reports whether text is a work-mode word used in place of a city.
func IsRemoteHint(text string) bool {
	folded := Fold(text)
	for _, hint := range RemoteHints {
		if folded == hint {
			return true
		}
	}
	return false
}
