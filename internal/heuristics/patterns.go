// Package heuristics provides the field extractors and bilingual keyword tables
// shared by the text and PDF resume parsers. Every function is a pure
// predicate or extractor over a single line of text.
package heuristics

import "regexp"

// Contact patterns.
var (
	EmailRE = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	PhoneRE = regexp.MustCompile(`\+?\d[\d\s().-]{7,}\d`)
	URLRE   = regexp.MustCompile(`(?i)https?://\S+|www\.\S+`)
)

// BulletRE matches a leading bullet marker followed by whitespace.
var BulletRE = regexp.MustCompile(`^\s*[\x{2022}\x{2023}\x{25CF}\x{25A0}\x{25AA}\x{25CB}\x{25E6}\x{2043}\x{2219}\-\*]\s+`)

// bulletSymbols are stripped anywhere in a line by CleanBullet.
const bulletSymbols = "•‣●■▪○◦⁃∙·"

// highlightSplitRE splits a single line into several highlights.
var highlightSplitRE = regexp.MustCompile(`[•‣●■▪○◦⁃∙·]+`)

// LocationRE matches a "City, Country" pair.
var LocationRE = regexp.MustCompile(`^(?P<city>[A-Za-zÀ-ÿ.'\-\s]+),\s*(?P<country>[A-Za-zÀ-ÿ.'\-\s]+)$`)

// DateRangeRE matches loose date ranges: "03/2019 - 2020", "Mar 2017 – Nov 2023",
// "2019 a Presente".
var DateRangeRE = regexp.MustCompile(
	`(?i)(?P<start>\d{1,2}/\d{4}|\d{4}|[a-z]{3,}\.?\s+\d{4})\s*(?:-|–|—|a|to|hasta)\s*` +
		`(?P<end>\d{1,2}/\d{4}|\d{4}|[a-z]{3,}\.?\s+\d{4}|actualidad|actual|presente|hoy|current|present)`,
)

// monthWord is a Spanish or English month name or abbreviation.
const monthWord = `(?:ene(?:ro)?|feb(?:rero|ruary)?|mar(?:zo|ch)?|abr(?:il)?|apr(?:il)?|may(?:o)?|jun(?:io|e)?|jul(?:io|y)?|ago(?:sto)?|aug(?:ust)?|sep(?:t|tiembre|tember)?|oct(?:ubre|ober)?|nov(?:iembre|ember)?|dic(?:iembre)?|dec(?:ember)?|jan(?:uary)?)\.?`

// MonthDateRangeRE matches a closed "<Month> <Year> – <Month> <Year>" range.
// It is the strict form used for line features in layout-aware parsing.
var MonthDateRangeRE = regexp.MustCompile(
	`(?i)\b` + monthWord + `\s+(?:19|20)\d{2}\s*(?:[-–—]|a|to|hasta)\s*` + monthWord + `\s+(?:19|20)\d{2}\b`,
)

// MonthOpenDateRangeRE matches an open "<Month> <Year> – Presente" range.
var MonthOpenDateRangeRE = regexp.MustCompile(
	`(?i)\b` + monthWord + `\s+(?:19|20)\d{2}\s*(?:[-–—]|a|to|hasta)\s*(?:presente|actualidad|actual|hoy|present|current)\b`,
)

// TechPrefixRE matches an explicit technologies label.
var TechPrefixRE = regexp.MustCompile(`(?i)^\s*(?:tecnolog[ií]as|technologies)\s*:\s*`)

// HonorsPrefixRE matches an explicit honors label.
var HonorsPrefixRE = regexp.MustCompile(`(?i)^\s*(?:honores|honors|honours|menci[oó]n)\s*:\s*`)

// SectionKeyword maps a core module id to the headings that open it.
type SectionKeyword struct {
	Module   string
	Keywords []string
}

// SectionKeywords lists core section headings, compared against ASCII-folded text.
var SectionKeywords = []SectionKeyword{
	{Module: "experience", Keywords: []string{
		"experiencia", "experiencia profesional", "experiencia laboral",
		"work experience", "professional experience", "experience",
	}},
	{Module: "education", Keywords: []string{"educacion", "formacion", "education"}},
	{Module: "skills", Keywords: []string{"habilidades", "skills", "competencias", "tecnologias"}},
}

// ExtraKeywords are common headings of extra sections.
var ExtraKeywords = []string{
	"proyectos", "certificaciones", "idiomas", "publicaciones", "voluntariado",
	"premios", "logros", "referencias",
	"projects", "certifications", "languages", "publications", "volunteering",
	"awards", "achievements", "references",
}

// OrgHints mark organization and institution names.
var OrgHints = []string{
	"universidad", "instituto", "company", "corp", "ltda", "spa", "limitada",
	"s.a.", "s.a", "academia", "academy", "bootcamp", "college", "escuela",
	"school", "university", "institute",
}

// DegreeHints mark academic degree titles.
var DegreeHints = []string{
	"ingenier", "licenc", "magister", "maestr", "doctor", "master", "phd",
	"bachelor", "degree",
}

// HonorsHints mark honors lines.
var HonorsHints = []string{"honor", "mencion", "distincion", "cum laude"}

// TechKeywords mark technology stack lines anywhere in the folded text.
var TechKeywords = []string{
	"tecnolog", "technolog", "tech", "stack", "herramient", "plataform",
	"framework", "lenguaj", "tools", "tooling", "motor",
}

// techLabelKeywords mark an explicit "<label>: value" technology line.
var techLabelKeywords = []string{
	"tecnolog", "tech", "stack", "herramient", "tools", "tooling",
	"plataform", "framework", "lenguaj", "motor",
}

// stackWords are tokens that flag a comma list as a technology stack.
var stackWords = []string{
	"c#", "c++", "node", "python", "pandas", "scikit", "pytorch", "keras",
	"docker", "react", "django", "astro", "sql", "excel", "unity", "aws",
	"gcp", "vercel",
}

// RemoteHints are accepted in place of a city.
var RemoteHints = []string{"remoto", "remote", "hibrido", "presencial", "hybrid", "on-site", "onsite"}

// CityConnectors join multi-word city names ("Viña del Mar").
var CityConnectors = wordSet("de", "del", "la", "las", "los", "y", "da", "do", "das", "dos", "el")

// CityPrefixes open multi-word city names ("San Pedro", "Puerto Montt").
var CityPrefixes = wordSet("san", "santa", "santo", "sta", "st", "saint", "puerto", "villa",
	"ciudad", "new", "los", "las", "la", "el")

// NonCityHints stop a backwards city scan.
var NonCityHints = func() map[string]bool {
	set := wordSet("empresa", "proyecto", "proyectos", "project", "projects")
	for _, hint := range OrgHints {
		set[hint] = true
	}
	return set
}()

// Months maps folded month names to their two-digit number.
var Months = map[string]string{
	"ene": "01", "enero": "01", "jan": "01", "january": "01",
	"feb": "02", "febrero": "02", "february": "02",
	"mar": "03", "marzo": "03", "march": "03",
	"abr": "04", "abril": "04", "apr": "04", "april": "04",
	"may": "05", "mayo": "05",
	"jun": "06", "junio": "06", "june": "06",
	"jul": "07", "julio": "07", "july": "07",
	"ago": "08", "agosto": "08", "aug": "08", "august": "08",
	"sep": "09", "sept": "09", "septiembre": "09", "september": "09",
	"oct": "10", "octubre": "10", "october": "10",
	"nov": "11", "noviembre": "11", "november": "11",
	"dic": "12", "diciembre": "12", "dec": "12", "december": "12",
}

// MonthsShort maps two-digit month numbers to the display abbreviation.
var MonthsShort = map[string]string{
	"01": "Ene", "02": "Feb", "03": "Mar", "04": "Abr", "05": "May", "06": "Jun",
	"07": "Jul", "08": "Ago", "09": "Sep", "10": "Oct", "11": "Nov", "12": "Dic",
}

// OpenEndWords denote a range that is still ongoing.
var OpenEndWords = wordSet("actualidad", "actual", "presente", "hoy", "current", "present")

func wordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
