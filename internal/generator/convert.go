package generator

import (
	"regexp"
	"strings"
)

var expressParam = regexp.MustCompile(`:([a-zA-Z][a-zA-Z0-9_]*)`)

// muxParam matches {name} and {name:pattern}.
var muxParam = regexp.MustCompile(`\{([a-zA-Z][a-zA-Z0-9_]*)(?::[^}]*)?\}`)

// convertPathFormat converts :param and {param:regex} segments to OpenAPI {param}.
func (g *Generator) convertPathFormat(path string) string {
	converted := expressParam.ReplaceAllString(path, "{$1}")
	converted = muxParam.ReplaceAllString(converted, "{$1}")

	// Ensure the path starts with /
	if !strings.HasPrefix(converted, "/") {
		converted = "/" + converted
	}

	return converted
}

func (g *Generator) pathParameterNames(openAPIPath string) []string {
	var names []string
	for _, match := range muxParam.FindAllStringSubmatch(openAPIPath, -1) {
		names = append(names, match[1])
	}
	return names
}

// toPascalCase turns "post_api_auth_verify_otp" into "PostApiAuthVerifyOtp".
func toPascalCase(str string) string {
	parts := strings.FieldsFunc(str, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9')
	})
	var b strings.Builder
	for _, part := range parts {
		b.WriteString(strings.ToUpper(part[:1]) + part[1:])
	}
	return b.String()
}
