package generator

import (
	"regexp"
	"strings"
)

var invalidSchemaChars = regexp.MustCompile(`[^a-zA-Z0-9_]`)

// requestSchemaName derives a component name such as PostApiAuthRegisterRequest from an operation id.
func (g *Generator) requestSchemaName(operationID string) string {
	return g.cleanSchemaName(toPascalCase(operationID) + "Request")
}

// cleanSchemaName ensures schema names are valid for OpenAPI
func (g *Generator) cleanSchemaName(name string) string {
	cleaned := invalidSchemaChars.ReplaceAllString(name, "")

	// Ensure it starts with a letter
	if len(cleaned) > 0 && !(cleaned[0] >= 'a' && cleaned[0] <= 'z' || cleaned[0] >= 'A' && cleaned[0] <= 'Z') {
		cleaned = "Schema" + cleaned
	}

	// If empty after cleaning, give it a default name
	if cleaned == "" {
		cleaned = "UnknownSchema"
	}

	return cleaned
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
