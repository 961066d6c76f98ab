// Package lines provides the Line model shared by the text and PDF parsers,
// the clustering of positioned PDF words into lines and the derived line
// features (bullets, indentation, font salience, contact and date flags).
package lines

import (
	"strings"

	"github.com/jonathan/resume-importer/internal/heuristics"
)

// Line is one visually or logically contiguous run of text. Geometry and
// font fields are zero for lines that come from plain text.
type Line struct {
	Text     string  `json:"text"`
	Page     int     `json:"page,omitempty"`
	X0       float64 `json:"x0,omitempty"`
	Top      float64 `json:"top,omitempty"`
	X1       float64 `json:"x1,omitempty"`
	Bottom   float64 `json:"bottom,omitempty"`
	FontName string  `json:"fontname,omitempty"`
	FontSize float64 `json:"size,omitempty"`

	HasRuleBelow    bool    `json:"has_rule_below,omitempty"`
	Indent          float64 `json:"indent,omitempty"`
	IsBullet        bool    `json:"is_bullet,omitempty"`
	BulletChar      string  `json:"bullet_char,omitempty"`
	UppercaseRatio  float64 `json:"uppercase_ratio,omitempty"`
	CommaDensity    float64 `json:"comma_density,omitempty"`
	EndsWithColon   bool    `json:"ends_with_colon,omitempty"`
	HasEmail        bool    `json:"has_email,omitempty"`
	HasPhone        bool    `json:"has_phone,omitempty"`
	HasURL          bool    `json:"has_url,omitempty"`
	IsDateRange     bool    `json:"is_date_range,omitempty"`
	IsOpenDateRange bool    `json:"is_open_date_range,omitempty"`
	IsBold          bool    `json:"is_bold,omitempty"`
	SizeRatio       float64 `json:"size_ratio,omitempty"`
}

// IsBlank reports whether the line carries no text.
func (l Line) IsBlank() bool {
	return strings.TrimSpace(l.Text) == ""
}

// HasContact reports whether the line carries an email, phone number or URL.
func (l Line) HasContact() bool {
	return l.HasEmail || l.HasPhone || l.HasURL
}

// HasAnyDateRange reports whether a closed or open month range was found.
func (l Line) HasAnyDateRange() bool {
	return l.IsDateRange || l.IsOpenDateRange
}

// MarkedBullet reports whether the line is a bullet either by its enriched
// flag or by a marker still present in its text.
func (l Line) MarkedBullet() bool {
	return l.IsBullet || heuristics.IsBullet(l.Text)
}

// FromText converts plain text lines into Lines. Bullet markers stay in
// the text; only the text-derived features are filled in.
func FromText(texts []string) []Line {
	out := make([]Line, 0, len(texts))
	for _, text := range texts {
		line := Line{Text: strings.TrimSpace(text)}
		applyTextFeatures(&line)
		line.IsBullet = heuristics.IsBullet(line.Text)
		out = append(out, line)
	}
	return out
}

// Texts returns the text of every line.
func Texts(lines []Line) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = line.Text
	}
	return out
}

// NonBlank returns the lines that carry text.
func NonBlank(lines []Line) []Line {
	out := make([]Line, 0, len(lines))
	for _, line := range lines {
		if !line.IsBlank() {
			out = append(out, line)
		}
	}
	return out
}
