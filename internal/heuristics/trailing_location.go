package heuristics

import (
	"strings"
)

// maxCityWords bounds the backwards scan for a city name.
const maxCityWords = 3

// SplitTrailingLocation separates a trailing "City, Country" from the rest
// of line, e.g. "Acme Labs Viña del Mar, Chile" → ("Acme Labs", "Viña del Mar", "Chile").
// When no location is found the line is returned as leftover with an empty Location.
func SplitTrailingLocation(line string) (string, Location) {
	candidate := strings.TrimSpace(line)
	if candidate == "" || !strings.Contains(candidate, ",") {
		return candidate, Location{}
	}

	lastComma := strings.LastIndex(candidate, ",")
	leftPart := strings.TrimSpace(candidate[:lastComma])
	countryPart := strings.TrimSpace(candidate[lastComma+1:])
	if leftPart == "" || countryPart == "" || HasDigit(countryPart) {
		return candidate, Location{}
	}

	leftWords := strings.Fields(leftPart)
	if len(leftWords) == 0 {
		return candidate, Location{}
	}

	looseFallback := func() (string, Location) {
		leftover, city := SplitLocationTailLoose(leftPart)
		if city != "" {
			return leftover, Location{City: city, Country: countryPart}
		}
		return candidate, Location{}
	}

	startIdx := len(leftWords)
	significant := 0
	for idx := len(leftWords) - 1; idx >= 0; idx-- {
		word := leftWords[idx]
		lowered := Fold(word)
		if NonCityHints[lowered] {
			break
		}
		if CityConnectors[lowered] {
			startIdx = idx
			continue
		}
		prevLowered := ""
		if idx > 0 {
			prevLowered = Fold(leftWords[idx-1])
		}
		if NonCityHints[prevLowered] && !CityPrefixes[lowered] {
			break
		}
		if StartsUpper(word) && RuneLen(word) >= 2 {
			significant++
			startIdx = idx
			if significant >= maxCityWords {
				break
			}
			continue
		}
		break
	}

	cityWords := append([]string{}, leftWords[startIdx:]...)
	if len(cityWords) == 0 {
		return looseFallback()
	}
	leftoverWords := append([]string{}, leftWords[:startIdx]...)

	for len(cityWords) > 0 && CityConnectors[Fold(cityWords[0])] {
		leftoverWords = append(leftoverWords, cityWords[0])
		cityWords = cityWords[1:]
	}

	// "Chile Santiago, Chile": a city starting with the country words gives them back.
	countryWords := strings.Fields(countryPart)
	if len(countryWords) > 0 && len(cityWords) >= len(countryWords) {
		same := true
		for i, word := range countryWords {
			if Fold(cityWords[i]) != Fold(word) {
				same = false
				break
			}
		}
		if same {
			leftoverWords = append(leftoverWords, cityWords[:len(countryWords)]...)
			cityWords = cityWords[len(countryWords):]
		}
	}

	if len(cityWords) == 0 {
		return looseFallback()
	}

	loc := ParseLocation(strings.Join(cityWords, " ") + ", " + countryPart)
	if loc.IsZero() {
		return looseFallback()
	}
	return strings.Join(leftoverWords, " "), loc
}

// SplitLocationTailLoose splits text into (rest, city) using the last
// separator, or else the last word extended backwards over city connectors
// and prefixes.
func SplitLocationTailLoose(text string) (string, string) {
	candidate := strings.TrimSpace(text)
	if candidate == "" {
		return "", ""
	}
	for _, sep := range []string{" | ", " / ", " - ", " – ", " — ", " · "} {
		if idx := strings.LastIndex(candidate, sep); idx >= 0 {
			return strings.TrimSpace(candidate[:idx]), strings.TrimSpace(candidate[idx+len(sep):])
		}
	}
	words := strings.Fields(candidate)
	if len(words) == 0 {
		return candidate, ""
	}
	cityWords := []string{words[len(words)-1]}
	words = words[:len(words)-1]
	for len(words) > 0 {
		last := Fold(words[len(words)-1])
		if !CityConnectors[last] && !CityPrefixes[last] {
			break
		}
		cityWords = append([]string{words[len(words)-1]}, cityWords...)
		words = words[:len(words)-1]
	}
	return strings.TrimSpace(strings.Join(words, " ")), strings.TrimSpace(strings.Join(cityWords, " "))
}

// LooksLikeLocationPrefix reports whether text could be the first half of
// a city name split across columns.
func LooksLikeLocationPrefix(text string) bool {
	candidate := strings.TrimSpace(text)
	if candidate == "" || HasDigit(candidate) || HasDateRange(candidate) {
		return false
	}
	return RuneLen(candidate) <= 45
}

// IsLocationPrefixOnly reports whether every word of text is a city connector or prefix.
func IsLocationPrefixOnly(text string) bool {
	for _, word := range strings.Fields(text) {
		folded := Fold(word)
		if !CityConnectors[folded] && !CityPrefixes[folded] {
			return false
		}
	}
	return true
}

// IsLocationStub reports whether text is leftover noise next to a
// location: empty, a number or a short upper-case code.
func IsLocationStub(text string) bool {
	stripped := strings.TrimSpace(text)
	if stripped == "" || IsDigits(stripped) {
		return true
	}
	return RuneLen(stripped) <= 4 && IsAlpha(stripped) && IsUpper(stripped)
}

func isTitleWord(word string) bool {
	return StartsUpper(word) && !IsDigits(word)
}

// SplitLocationPrefixFromText detaches a trailing two-word city prefix
// ("... San Pedro", "... Viña del") from text.
func SplitLocationPrefixFromText(text string) (string, string) {
	words := strings.Fields(text)
	if len(words) < 2 {
		return text, ""
	}
	last := words[len(words)-1]
	prev := words[len(words)-2]
	base := strings.TrimSpace(strings.Join(words[:len(words)-2], " "))
	suffix := prev + " " + last

	if CityConnectors[Fold(last)] && isTitleWord(prev) {
		return base, suffix
	}
	if CityPrefixes[Fold(prev)] && isTitleWord(last) {
		return base, suffix
	}
	return text, ""
}

// SplitTitleLocationSuffix detaches a trailing city-like phrase from a title,
// e.g. "Analista Datos San Pedro" → ("Analista Datos", "San Pedro").
func SplitTitleLocationSuffix(title string) (string, string) {
	words := strings.Fields(title)
	if len(words) < 3 {
		return title, ""
	}
	maxLen := len(words)
	if maxLen > 4 {
		maxLen = 4
	}
	for length := maxLen; length > 1; length-- {
		segment := words[len(words)-length:]
		allTitle := true
		for _, word := range segment {
			if !isTitleWord(word) {
				allTitle = false
				break
			}
		}
		if !allTitle {
			continue
		}
		normalized := make([]string, len(segment))
		hasPrefix := false
		for i, word := range segment {
			normalized[i] = Fold(word)
			if CityPrefixes[normalized[i]] {
				hasPrefix = true
			}
		}
		if !hasPrefix {
			continue
		}
		base := strings.TrimSpace(strings.Join(words[:len(words)-length], " "))
		if base == "" {
			continue
		}
		hasConnector := false
		for _, word := range normalized[:len(normalized)-1] {
			if CityConnectors[word] {
				hasConnector = true
				break
			}
		}
		if CityPrefixes[normalized[len(normalized)-1]] && hasConnector {
			if !CityConnectors[normalized[0]] && !CityPrefixes[normalized[0]] {
				continue
			}
			return base, strings.Join(segment, " ")
		}
		if CityPrefixes[normalized[0]] && length <= 3 {
			return base, strings.Join(segment, " ")
		}
	}
	return title, ""
}
