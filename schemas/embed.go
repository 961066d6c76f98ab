// Package schemas holds the JSON Schema documents shipped with the importer.
package schemas

import _ "embed"

// ResumeStructure is the JSON Schema of a ResumeStructure document.
//
//go:embed resume_structure.schema.json
var ResumeStructure string
