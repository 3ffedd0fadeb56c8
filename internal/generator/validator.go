package generator

import (
	"fmt"
	"regexp"
)

var pathTemplateParam = regexp.MustCompile(`\{([^}]+)\}`)

// ValidateAndCleanSpec checks every path has an operation and aligns path parameters with the path template.
func (g *Generator) ValidateAndCleanSpec(spec *OpenAPISpec) error {
	if err := g.validatePaths(spec); err != nil {
		return fmt.Errorf("path validation failed: %w", err)
	}
	return nil
}

func (g *Generator) validatePaths(spec *OpenAPISpec) error {
	for path, pathItem := range spec.Paths {
		if len(pathItem.operations()) == 0 {
			return fmt.Errorf("path %s has no operations", path)
		}
		g.validatePathParameters(path, pathItem)
	}
	return nil
}

func (g *Generator) validatePathParameters(path string, pathItem PathItem) {
	pathParams := pathTemplateParam.FindAllStringSubmatch(path, -1)
	for _, operation := range pathItem.operations() {
		g.validateOperationParameters(operation, pathParams)
	}
}

func (g *Generator) validateOperationParameters(operation *Operation, pathParams [][]string) {
	if operation == nil {
		return
	}

	// Create a map of expected path parameters
	expectedParams := make(map[string]bool)
	var expectedOrder []string
	for _, param := range pathParams {
		if len(param) > 1 && !expectedParams[param[1]] {
			expectedParams[param[1]] = true
			expectedOrder = append(expectedOrder, param[1])
		}
	}

	// Filter operation parameters to only include valid path parameters
	validParams := []Parameter{}
	present := make(map[string]bool)
	for _, param := range operation.Parameters {
		if param.In == "path" {
			if expectedParams[param.Name] && !present[param.Name] {
				present[param.Name] = true
				validParams = append(validParams, param)
			}
		} else {
			// Keep non-path parameters
			validParams = append(validParams, param)
		}
	}

	// Add missing path parameters
	for _, paramName := range expectedOrder {
		if !present[paramName] {
			validParams = append(validParams, Parameter{
				Name:     paramName,
				In:       "path",
				Required: true,
				Schema:   Schema{Type: "string"},
			})
		}
	}

	operation.Parameters = validParams
}
