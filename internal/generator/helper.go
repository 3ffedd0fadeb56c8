package generator

import (
	"strings"

	"github.com/Aman-s12345/go-routescope/internal/analyzer"
)

func (g *Generator) generateOperation(route analyzer.RouteDescriptor, openAPIPath string) *Operation {
	operation := &Operation{
		Summary:     g.generateSummary(route),
		Description: g.generateDescription(route),
		OperationID: g.generateOperationID(route.Method, openAPIPath),
		Parameters:  []Parameter{},
		Responses:   make(map[string]Response),
	}

	if tag := g.getTagFromPath(route.Path); tag != "" {
		operation.Tags = []string{tag}
	}

	for _, name := range g.pathParameterNames(openAPIPath) {
		operation.Parameters = append(operation.Parameters, Parameter{
			Name:     name,
			In:       "path",
			Required: true,
			Schema:   Schema{Type: "string"},
		})
	}

	operation.Responses["200"] = Response{
		Description: "Successful operation",
	}

	// Add error responses
	operation.Responses["400"] = Response{
		Description: "Bad request",
		Content: map[string]MediaType{
			"application/json": {
				Schema: Schema{
					Ref: schemaRefPrefix + "ErrorResponse",
				},
			},
		},
	}
	operation.Responses["500"] = Response{
		Description: "Internal server error",
		Content: map[string]MediaType{
			"application/json": {
				Schema: Schema{
					Ref: schemaRefPrefix + "ErrorResponse",
				},
			},
		},
	}

	return operation
}

func (g *Generator) generateOperationID(method, openAPIPath string) string {
	path := openAPIPath

	// Clean the path for operation ID
	path = strings.ReplaceAll(path, "/", "_")
	path = strings.ReplaceAll(path, "{", "")
	path = strings.ReplaceAll(path, "}", "")
	path = strings.ReplaceAll(path, "-", "_")

	// Remove leading underscore if present
	path = strings.TrimPrefix(path, "_")
	path = strings.TrimSuffix(path, "_")

	return strings.ToLower(method) + "_" + path
}

func (g *Generator) generateSummary(route analyzer.RouteDescriptor) string {
	action := g.getActionFromMethod(route.Method)
	resource := g.getResourceFromPath(route.Path)
	return action + " " + resource
}

func (g *Generator) generateDescription(route analyzer.RouteDescriptor) string {
	desc := strings.ToUpper(route.Method) + " " + route.Path
	if route.Body == nil {
		return desc + " (no request body inferred)"
	}
	return desc
}

func (g *Generator) generateTagDescription(tagName string) string {
	descriptions := map[string]string{
		"auth": "Authentication and OTP verification endpoints",
		"user": "User management endpoints",
	}

	if desc, exists := descriptions[tagName]; exists {
		return desc
	}
	return capitalize(tagName) + " related endpoints"
}

func (g *Generator) getActionFromMethod(method string) string {
	actions := map[string]string{
		"GET":    "Get",
		"POST":   "Create",
		"PUT":    "Update",
		"DELETE": "Delete",
		"PATCH":  "Patch",
	}

	if action, exists := actions[strings.ToUpper(method)]; exists {
		return action
	}
	return method
}

func (g *Generator) getResourceFromPath(path string) string {
	parts := strings.Split(path, "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] != "" && !strings.HasPrefix(parts[i], ":") && !strings.HasPrefix(parts[i], "{") {
			return capitalize(parts[i])
		}
	}
	return "Resource"
}

// getTagFromPath returns the first segment after an optional "api" prefix.
func (g *Generator) getTagFromPath(path string) string {
	var segments []string
	for _, part := range strings.Split(path, "/") {
		if part != "" {
			segments = append(segments, part)
		}
	}
	if len(segments) > 0 && segments[0] == "api" {
		segments = segments[1:]
	}
	if len(segments) == 0 || strings.HasPrefix(segments[0], ":") || strings.HasPrefix(segments[0], "{") {
		return ""
	}
	return segments[0]
}
