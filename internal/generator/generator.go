package generator

import (
	"io"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Aman-s12345/go-routescope/internal/analyzer"
)

const schemaRefPrefix = "#/components/schemas/"

func New(config Config) *Generator {
	log := config.Logger
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}
	return &Generator{config: config, log: log.WithField("component", "generator")}
}

// Generate builds an OpenAPI document from listed routes. Descriptors with an inferred
// body get a request schema component; the rest get none.
func (g *Generator) Generate(routes []analyzer.RouteDescriptor) *OpenAPISpec {
	spec := &OpenAPISpec{
		OpenAPI: "3.0.3",
		Info: Info{
			Title:       g.config.Title,
			Description: g.config.Description,
			Version:     g.config.Version,
		},
		Servers: []Server{
			{
				URL:         g.config.ServerURL,
				Description: "Development server",
			},
		},
		Paths: make(map[string]PathItem),
		Components: Components{
			Schemas: map[string]Schema{
				"ErrorResponse": {
					Type: "object",
					Properties: map[string]Schema{
						"message": {Type: "string", Description: "Error message"},
					},
				},
			},
		},
	}

	tags := make(map[string]bool)
	processedPaths := make(map[string]bool) // Track processed paths to avoid duplicates

	for _, route := range routes {
		openAPIPath := g.convertPathFormat(route.Path)

		pathKey := route.Method + ":" + openAPIPath
		if processedPaths[pathKey] {
			continue
		}
		processedPaths[pathKey] = true

		pathItem := spec.Paths[openAPIPath]
		operation := g.generateOperation(route, openAPIPath)

		if route.Body != nil && route.Body.Len() > 0 {
			name := g.requestSchemaName(operation.OperationID)
			spec.Components.Schemas[name] = g.generateSchemaFromFields(route.Body)
			operation.RequestBody = g.generateRequestBody(route, name)
		}

		for _, tag := range operation.Tags {
			tags[tag] = true
		}

		if !setOperation(&pathItem, route.Method, operation) {
			continue
		}
		spec.Paths[openAPIPath] = pathItem
	}

	tagNames := make([]string, 0, len(tags))
	for tagName := range tags {
		tagNames = append(tagNames, tagName)
	}
	sort.Strings(tagNames)
	for _, tagName := range tagNames {
		spec.Tags = append(spec.Tags, Tag{
			Name:        tagName,
			Description: g.generateTagDescription(tagName),
		})
	}

	g.validate(spec)
	return spec
}

// validate fixes path parameters and reports structural problems without failing generation.
func (g *Generator) validate(spec *OpenAPISpec) {
	if err := g.ValidateAndCleanSpec(spec); err != nil {
		g.log.WithError(err).Warn("openapi validation errors found")
	}
}

func setOperation(pathItem *PathItem, method string, operation *Operation) bool {
	switch strings.ToUpper(method) {
	case "GET":
		pathItem.Get = operation
	case "POST":
		pathItem.Post = operation
	case "PUT":
		pathItem.Put = operation
	case "DELETE":
		pathItem.Delete = operation
	case "PATCH":
		pathItem.Patch = operation
	case "HEAD":
		pathItem.Head = operation
	case "OPTIONS":
		pathItem.Options = operation
	default:
		return false
	}
	return true
}

// generateSchemaFromFields maps every inferred field to a string property;
// non-optional fields are required, in field order.
func (g *Generator) generateSchemaFromFields(fields *analyzer.FieldSchema) Schema {
	schema := Schema{
		Type:       "object",
		Properties: make(map[string]Schema),
	}
	for _, name := range fields.Keys() {
		prop := Schema{Type: "string"}
		if fields.IsOptional(name) {
			prop.Description = "optional"
		} else {
			schema.Required = append(schema.Required, name)
		}
		schema.Properties[name] = prop
	}
	return schema
}

func (g *Generator) generateRequestBody(route analyzer.RouteDescriptor, schemaName string) *RequestBody {
	contentType := route.Headers["Content-Type"]
	if contentType == "" {
		contentType = "application/json"
	}
	return &RequestBody{
		Description: "Request body",
		Required:    true,
		Content: map[string]MediaType{
			contentType: {
				Schema: Schema{Ref: schemaRefPrefix + schemaName},
			},
		},
	}
}
