package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-importer/internal/heuristics"
	"github.com/jonathan/resume-importer/internal/sections"
	"github.com/jonathan/resume-importer/internal/types"
)

var (
	contactLabelRE = regexp.MustCompile(`(?i)^(?:datos de contacto|contacto|contact)\s*:?$`)
	contactFieldRE = regexp.MustCompile(`^(?:[-*•]\s*)?([^:]{2,24}):\s*(.+)$`)
	headerChunkRE  = regexp.MustCompile(`[·•|]`)
)

// contactField is the Basics field a "- Label: value" line fills.
type contactField int

const (
	fieldNone contactField = iota
	fieldEmail
	fieldPhone
	fieldLinkedIn
	fieldGitHub
	fieldLocation
)

var contactFieldLabels = map[string]contactField{
	"email":     fieldEmail,
	"e-mail":    fieldEmail,
	"correo":    fieldEmail,
	"mail":      fieldEmail,
	"telefono":  fieldPhone,
	"phone":     fieldPhone,
	"tel":       fieldPhone,
	"celular":   fieldPhone,
	"linkedin":  fieldLinkedIn,
	"github":    fieldGitHub,
	"ubicacion": fieldLocation,
	"location":  fieldLocation,
	"ciudad":    fieldLocation,
}

// ExtractContact finds the first email and phone number in text, and the
// first LinkedIn and GitHub URLs. Year ranges are not taken for phones.
func ExtractContact(text string) types.Basics {
	basics := types.Basics{Email: heuristics.FirstMatch(heuristics.EmailRE, text)}
	for _, match := range heuristics.PhoneRE.FindAllString(text, -1) {
		// "2019 - 2023" has the shape of a phone number
		if !heuristics.HasDateRange(match) {
			basics.Phone = strings.TrimSpace(match)
			break
		}
	}
	for _, url := range heuristics.URLRE.FindAllString(text, -1) {
		low := strings.ToLower(url)
		if basics.LinkedIn == "" && strings.Contains(low, "linkedin.com") {
			basics.LinkedIn = url
		}
		if basics.GitHub == "" && strings.Contains(low, "github.com") {
			basics.GitHub = url
		}
	}
	return basics
}

// ExtractHeader reads the header block of a compacted line list: the name
// is the first line without contact data, the description runs until the
// first section heading, and a "Contacto" block contributes labelled
// contact fields. It returns the filled basics and the lines from the
// first heading on.
func ExtractHeader(all []string, text string) (types.Basics, []string) {
	basics := ExtractContact(text)
	var description []string

	i := 0
	for i < len(all) {
		line := all[i]
		if line == "" {
			if basics.Name != "" {
				description = append(description, "")
			}
			i++
			continue
		}
		if contactLabelRE.MatchString(line) {
			i = consumeContactBlock(all, i+1, &basics)
			continue
		}
		if containsContactValue(line, basics) {
			i++
			continue
		}
		if basics.Name == "" {
			basics.Name = line
			i++
			continue
		}
		if startsSection(all, i) {
			break
		}
		description = append(description, line)
		i++
	}

	basics.Description = heuristics.JoinParagraph(description)
	if basics.City == "" && basics.Country == "" {
		loc := extractHeaderLocation(all[:i], basics)
		basics.City, basics.Country = loc.City, loc.Country
	}
	return basics, all[i:]
}

// startsSection reports whether the line at idx opens the resume body.
func startsSection(all []string, idx int) bool {
	line := all[idx]
	if sections.IsHeading(line) || sections.CanonicalCoreSection(line) != "" {
		return true
	}
	return idx+1 < len(all) && sections.IsUnderline(all[idx+1])
}

// consumeContactBlock reads "- Label: value" lines starting at idx and
// returns the index of the first line that is not part of the block.
func consumeContactBlock(all []string, idx int, basics *types.Basics) int {
	for idx < len(all) {
		line := all[idx]
		if line == "" {
			idx++
			continue
		}
		m := contactFieldRE.FindStringSubmatch(line)
		if m == nil {
			return idx
		}
		field := contactFieldLabels[heuristics.Fold(strings.TrimSpace(m[1]))]
		if field == fieldNone {
			return idx
		}
		applyContactField(basics, field, strings.TrimSpace(m[2]))
		idx++
	}
	return idx
}

func applyContactField(basics *types.Basics, field contactField, value string) {
	switch field {
	case fieldEmail:
		basics.Email = value
	case fieldPhone:
		basics.Phone = value
	case fieldLinkedIn:
		basics.LinkedIn = value
	case fieldGitHub:
		basics.GitHub = value
	case fieldLocation:
		if loc := heuristics.ParseLocation(value); !loc.IsZero() {
			basics.City, basics.Country = loc.City, loc.Country
		} else {
			basics.City = value
		}
	}
}

func contactValues(basics types.Basics) []string {
	var values []string
	for _, v := range []string{basics.Email, basics.Phone, basics.LinkedIn, basics.GitHub} {
		if v != "" {
			values = append(values, v)
		}
	}
	return values
}

func containsContactValue(line string, basics types.Basics) bool {
	for _, value := range contactValues(basics) {
		if strings.Contains(line, value) {
			return true
		}
	}
	return false
}

// extractHeaderLocation scans header lines split on "·", "•" and "|" for a
// "City, Country" chunk.
func extractHeaderLocation(header []string, basics types.Basics) heuristics.Location {
	values := contactValues(basics)
	for _, line := range header {
		if line == "" {
			continue
		}
		for _, chunk := range headerChunkRE.Split(line, -1) {
			chunk = strings.TrimSpace(chunk)
			if chunk == "" || !heuristics.IsLocationCandidate(chunk, values) {
				continue
			}
			if loc := heuristics.ParseLocation(chunk); loc.City != "" && loc.Country != "" {
				return loc
			}
		}
	}
	return heuristics.Location{}
}
