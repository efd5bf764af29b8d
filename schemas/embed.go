// Package schemas embeds the JSON Schemas for the documents the CLI reads and writes.
package schemas

import "embed"

// FS holds every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS

// Schema file names
const (
	ParsedResume = "parsed_resume.schema.json"
	ScoreResult  = "score_result.schema.json"
)
