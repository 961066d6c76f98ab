package heuristics

import (
	"regexp"
	"strings"
)

var (
	techTokenSplitRE = regexp.MustCompile(`\s*(?:,|·|•|/)\s*`)
	stackTokenRE     = regexp.MustCompile(`^(?:c\+\+|c#|node\.js|[a-z]{2,}(?:[-.][a-z0-9]+)+)$`)
)

// Tech list thresholds.
const (
	techShortTokenLen = 22
	techShortRatio    = 0.7
	techTitleRatio    = 0.6
	techAcronymMaxLen = 6
	techMinTokens     = 2
)

// LooksLikeTech reports whether line reads as a technology stack. It
// matches tech keywords, or a list of mostly short tokens with code-like
// symbols or Title-Case words. A two-token list without symbols ("Santiago,
// Chile") only counts when both tokens are short acronyms ("AWS, GCP").
func LooksLikeTech(line string) bool {
	raw := strings.TrimSpace(line)
	if raw == "" {
		return false
	}
	normalized := Fold(raw)
	if ContainsAny(normalized, TechKeywords) {
		return true
	}

	if strings.Contains(raw, ",") || ContainsAny(raw, []string{" · ", " • ", " / "}) {
		var tokens []string
		for _, tok := range techTokenSplitRE.Split(raw, -1) {
			if tok = strings.TrimSpace(tok); tok != "" {
				tokens = append(tokens, tok)
			}
		}
		if len(tokens) >= techMinTokens {
			short, titled := 0, 0
			hasSymbols, stackToken := false, false
			for _, tok := range tokens {
				if RuneLen(tok) <= techShortTokenLen {
					short++
				}
				if StartsUpper(tok) {
					titled++
				}
				if codeSymbolRE.MatchString(tok) {
					hasSymbols = true
				}
				if stackTokenRE.MatchString(Fold(tok)) {
					stackToken = true
				}
			}
			n := float64(len(tokens))

			if len(tokens) == 2 && !hasSymbols && !stackToken {
				for _, tok := range tokens {
					if !IsUpper(tok) || RuneLen(tok) > techAcronymMaxLen {
						return false
					}
				}
				return true
			}
			if float64(short)/n >= techShortRatio &&
				(hasSymbols || stackToken || float64(titled)/n >= techTitleRatio) {
				return true
			}
		}
	}

	if strings.Contains(raw, ",") {
		if ContainsAny(normalized, stackWords) {
			return true
		}
		if codeSymbolRE.MatchString(raw) {
			return true
		}
	}
	return false
}

// ExtractTech returns line when it is an explicitly labelled technology
// line ("Tecnologías: ...", "Stack ...").
func ExtractTech(line string) string {
	stripped := strings.TrimSpace(line)
	if stripped == "" {
		return ""
	}
	if label, _, ok := strings.Cut(stripped, ":"); ok {
		if ContainsAny(Fold(label), techLabelKeywords) {
			return stripped
		}
	}
	normalized := Fold(stripped)
	for _, prefix := range []string{"tecnolog", "detalle", "tech", "stack"} {
		if strings.HasPrefix(normalized, prefix) {
			return stripped
		}
	}
	return ""
}

// HasTechPrefix reports whether line starts with an explicit technologies label.
func HasTechPrefix(line string) bool {
	return TechPrefixRE.MatchString(line)
}

// StripTechPrefix removes an explicit technologies label.
func StripTechPrefix(line string) string {
	return strings.TrimSpace(TechPrefixRE.ReplaceAllString(line, ""))
}

// TechValue returns the value of a labelled technology line ("Stack: Go"
// gives "Go"); unlabelled lines come back trimmed.
func TechValue(line string) string {
	stripped := strings.TrimSpace(line)
	if label, value, ok := strings.Cut(stripped, ":"); ok {
		if value = strings.TrimSpace(value); value != "" && ContainsAny(Fold(label), techLabelKeywords) {
			return value
		}
	}
	return stripped
}
