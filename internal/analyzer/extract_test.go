package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSchemaRegisterUser(t *testing.T) {
	schema, ok := ExtractSchema("registerUser", authController)
	require.True(t, ok)

	assert.Equal(t, []string{"name", "email", "password", "phone"}, schema.Keys())
	assert.Equal(t, map[string]string{
		"name":     FieldRequired,
		"email":    FieldRequired,
		"password": FieldRequired,
		"phone":    FieldOptional,
	}, schema.Map())
}

func TestExtractSchemaDeclarationShapes(t *testing.T) {
	tests := []struct {
		function string
		keys     []string
	}{
		{"loginUser", []string{"email", "password"}},
		{"verifyOtp", []string{"email", "otp"}},
		{"resendOtp", []string{"email"}},
		{"resetPassword", []string{"email", "otp", "password"}},
	}

	for _, tt := range tests {
		t.Run(tt.function, func(t *testing.T) {
			schema, ok := ExtractSchema(tt.function, authController)
			require.True(t, ok)
			assert.Equal(t, tt.keys, schema.Keys())
		})
	}
}

func TestExtractSchemaOptionalHeuristics(t *testing.T) {
	schema, ok := ExtractSchema("createUserByAdmin", userController)
	require.True(t, ok)

	assert.False(t, schema.IsOptional("name"))
	assert.False(t, schema.IsOptional("email"))
	assert.True(t, schema.IsOptional("role"), "role || fallback")
	assert.True(t, schema.IsOptional("phone"), "phone ? ternary")

	source := `const updateSettings = (req, res) => {
  const { theme, locale } = request.body;
  const rtl = locale && locale.startsWith("ar");
  res.json({ theme, rtl });
};
`
	schema, ok = ExtractSchema("updateSettings", source)
	require.True(t, ok)
	assert.Equal(t, FieldRequired, mustGet(t, schema, "theme"))
	assert.Equal(t, FieldOptional, mustGet(t, schema, "locale"))
}

func TestExtractSchemaRenameDefaultAndComments(t *testing.T) {
	source := `const submitForm = async (req, res) => {
  const {
    email,
    password: secret,
    attempts = 0,
    /* legacy */ code,
    otp
  } = req.body;
  res.json({ email, secret, attempts, otp });
};
`
	schema, ok := ExtractSchema("submitForm", source)
	require.True(t, ok)
	assert.Equal(t, []string{"email", "password", "attempts", "otp"}, schema.Keys())
}

func TestExtractSchemaBareDestructuring(t *testing.T) {
	source := `const patchNote = async (req, res) => {
  let title, body;
  ({ title, body } = req.body);
  res.json({ title, body });
};
`
	schema, ok := ExtractSchema("patchNote", source)
	require.True(t, ok)
	assert.Equal(t, []string{"title", "body"}, schema.Keys())
}

func TestExtractSchemaRepeatedFieldCollapses(t *testing.T) {
	source := `function mergeProfile(req, res) {
  const { email, phone } = req.body;
  const { email: primary } = req.body;
  if (phone) {
    notify(primary);
  }
}
`
	schema, ok := ExtractSchema("mergeProfile", source)
	require.True(t, ok)
	assert.Equal(t, []string{"email", "phone"}, schema.Keys())
	assert.True(t, schema.IsOptional("phone"))
}

func TestFunctionBodyNeedsWholeKeyword(t *testing.T) {
	source := `myfunction submit(req, res) {
  const { ignored } = req.body;
}

function submit(req, res) {
  const { email } = req.body;
}
`
	schema, ok := ExtractSchema("submit", source)
	require.True(t, ok)
	assert.Equal(t, []string{"email"}, schema.Keys())
}

func TestExtractSchemaNoFields(t *testing.T) {
	_, ok := ExtractSchema("getAllUsers", userController)
	assert.False(t, ok, "body without destructuring")

	_, ok = ExtractSchema("missingHandler", userController)
	assert.False(t, ok, "function not found")

	_, ok = ExtractSchema("", userController)
	assert.False(t, ok)

	// only a closing brace at line start ends a body
	_, ok = ExtractSchema("inline", `const inline = (req) => { const { a } = req.body; };`)
	assert.False(t, ok)
}

func TestFunctionBodyStopsAtFirstLineStartBrace(t *testing.T) {
	source := `const first = async (req, res) => {
  const { a } = req.body;
};

const second = async (req, res) => {
  const { b } = req.body;
};
`
	body, ok := NewSchemaExtractor(4).FunctionBody("first", source)
	require.True(t, ok)
	assert.Contains(t, body, "{ a }")
	assert.NotContains(t, body, "{ b }")
}

func TestSchemaExtractorCachesPatterns(t *testing.T) {
	extractor := NewSchemaExtractor(1)

	_, ok := extractor.Extract("loginUser", authController)
	require.True(t, ok)
	assert.True(t, extractor.patterns.Contains("loginUser"))

	_, ok = extractor.Extract("verifyOtp", authController)
	require.True(t, ok)
	assert.False(t, extractor.patterns.Contains("loginUser"), "evicted at capacity")
	assert.Equal(t, 1, extractor.patterns.Len())
}

func TestFieldName(t *testing.T) {
	tests := []struct {
		piece string
		name  string
		ok    bool
	}{
		{" email ", "email", true},
		{"password: secret", "password", true},
		{"limit = 10", "limit", true},
		{"role: userRole = \"user\"", "role", true},
		{"// trailing", "", false},
		{"...rest", "", false},
		{"", "", false},
		{"$meta", "$meta", true},
	}

	for _, tt := range tests {
		t.Run(tt.piece, func(t *testing.T) {
			name, ok := fieldName(tt.piece)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.name, name)
		})
	}
}

func mustGet(t *testing.T, schema *FieldSchema, name string) string {
	t.Helper()
	v, ok := schema.Get(name)
	require.True(t, ok, "missing field %s", name)
	return v
}
