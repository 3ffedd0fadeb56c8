package analyzer

import (
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultBodyPatternCacheSize = 256

// Body isolation shapes. %s is the quoted function name; group 1 captures the body
// from the opening brace up to the first closing brace that begins a line.
var bodyShapes = []string{
	`(?ms)\bconst\s+%s\s*=\s*async\s*\([^)]*\)\s*=>\s*\{(.*?)^\}`,
	`(?ms)\bconst\s+%s\s*=\s*\([^)]*\)\s*=>\s*\{(.*?)^\}`,
	`(?ms)\basync\s+function\s+%s\s*\([^)]*\)\s*\{(.*?)^\}`,
	`(?ms)\bfunction\s+%s\s*\([^)]*\)\s*\{(.*?)^\}`,
	`(?ms)\b(?:module\.)?exports\.%s\s*=\s*(?:async\s+)?(?:function\s*(?:` + identPattern + `)?\s*)?\([^)]*\)\s*(?:=>\s*)?\{(.*?)^\}`,
}

const payloadPattern = `(?:req|request)\.body\b`

var (
	constDestructure = regexp.MustCompile(`const\s*\{([^}]*)\}\s*=\s*` + payloadPattern)
	bareDestructure  = regexp.MustCompile(`\{([^}]*)\}\s*=\s*` + payloadPattern)
	identifierRe     = regexp.MustCompile(`^` + identPattern + `$`)
)

// SchemaExtractor infers request payload fields from handler source text.
// Compiled body patterns are memoized per function name.
type SchemaExtractor struct {
	patterns *lru.Cache[string, []*regexp.Regexp]
}

func NewSchemaExtractor(cacheSize int) *SchemaExtractor {
	if cacheSize <= 0 {
		cacheSize = defaultBodyPatternCacheSize
	}
	cache, err := lru.New[string, []*regexp.Regexp](cacheSize)
	if err != nil {
		// only reachable with a non-positive size
		panic(err)
	}
	return &SchemaExtractor{patterns: cache}
}

var defaultExtractor = NewSchemaExtractor(defaultBodyPatternCacheSize)

// ExtractSchema isolates functionName's body in source and returns the payload fields it destructures.
func ExtractSchema(functionName, source string) (*FieldSchema, bool) {
	return defaultExtractor.Extract(functionName, source)
}

func (e *SchemaExtractor) Extract(functionName, source string) (*FieldSchema, bool) {
	body, ok := e.FunctionBody(functionName, source)
	if !ok {
		return nil, false
	}

	fields := destructuredFields(body)
	if len(fields) == 0 {
		return nil, false
	}

	schema := NewFieldSchema()
	for _, field := range fields {
		if isOptionalField(field, body) {
			schema.Set(field, FieldOptional)
		} else {
			schema.Set(field, FieldRequired)
		}
	}
	return schema, true
}

// FunctionBody returns the text between the function's opening brace and its closing line.
func (e *SchemaExtractor) FunctionBody(functionName, source string) (string, bool) {
	if functionName == "" {
		return "", false
	}
	for _, re := range e.bodyPatterns(functionName) {
		if match := re.FindStringSubmatch(source); len(match) > 1 {
			return match[1], true
		}
	}
	return "", false
}

func (e *SchemaExtractor) bodyPatterns(functionName string) []*regexp.Regexp {
	if cached, ok := e.patterns.Get(functionName); ok {
		return cached
	}
	quoted := regexp.QuoteMeta(functionName)
	patterns := make([]*regexp.Regexp, 0, len(bodyShapes))
	for _, shape := range bodyShapes {
		patterns = append(patterns, regexp.MustCompile(strings.Replace(shape, "%s", quoted, 1)))
	}
	e.patterns.Add(functionName, patterns)
	return patterns
}

// destructuredFields collects field names from every destructuring of the request payload, in order.
func destructuredFields(body string) []string {
	var fields []string
	for _, re := range []*regexp.Regexp{constDestructure, bareDestructure} {
		for _, match := range re.FindAllStringSubmatch(body, -1) {
			for _, piece := range strings.Split(match[1], ",") {
				if name, ok := fieldName(piece); ok {
					fields = append(fields, name)
				}
			}
		}
	}
	return fields
}

// fieldName strips rename (a: b) and default (a = 1) syntax and validates what remains.
func fieldName(piece string) (string, bool) {
	piece = strings.TrimSpace(piece)
	if looksLikeComment(piece) {
		return "", false
	}
	if idx := strings.Index(piece, ":"); idx >= 0 {
		piece = piece[:idx]
	}
	if idx := strings.Index(piece, "="); idx >= 0 {
		piece = piece[:idx]
	}
	piece = strings.TrimSpace(piece)
	if !identifierRe.MatchString(piece) {
		return "", false
	}
	return piece, true
}

func looksLikeComment(piece string) bool {
	return strings.Contains(piece, "//") ||
		strings.Contains(piece, "/*") ||
		strings.Contains(piece, "*/") ||
		strings.HasPrefix(piece, "*")
}

func isOptionalField(field, body string) bool {
	return strings.Contains(body, "if ("+field+")") ||
		strings.Contains(body, field+" ?") ||
		strings.Contains(body, field+" &&") ||
		strings.Contains(body, field+" ||")
}
