// Package schemas holds the JSON Schema documents that LLM outputs are validated against.
package schemas

import "embed"

// Files contains every *.schema.json document in this directory.
//
//go:embed *.schema.json
var Files embed.FS
