package analyzer

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverControllers(t *testing.T) {
	root := writeProject(t, map[string]string{
		"controllers/user.controller.js":          userController,
		"controllers/auth.controller.ts":          authController,
		"controllers/notes.txt":                   "ignored",
		"controllers/helpers.js":                  "function helper() {}",
		"controllers/.controller.js":              "no name",
		"controllers/report.controller.test.js":   "multi-dot extension",
		"controllers/nested.controller.js/keep.x": "directories are skipped",
	})

	index := DiscoverControllers(root)
	require.Equal(t, 2, index.Len())

	entries := index.Entries()
	assert.Equal(t, "/api/auth", entries[0].Key)
	assert.Equal(t, "/api/user", entries[1].Key)
	for _, entry := range entries {
		assert.True(t, filepath.IsAbs(entry.Path), entry.Path)
	}
	assert.Equal(t, "auth.controller.ts", filepath.Base(entries[0].Path))
}

func TestDiscoverControllersMissingDirectory(t *testing.T) {
	index := DiscoverControllers(t.TempDir())
	assert.Equal(t, 0, index.Len())

	_, ok := index.Lookup("/api/auth/login")
	assert.False(t, ok)
}

func TestControllerIndexLookup(t *testing.T) {
	index := &ControllerIndex{}
	index.add("/api/user", "/p/user.controller.js")
	index.add("/api/users", "/p/users.controller.js")

	entry, ok := index.Lookup("/api/users/42")
	require.True(t, ok)
	assert.Equal(t, "/api/user", entry.Key, "first prefix in listing order wins")

	_, ok = index.Lookup("/api/orders")
	assert.False(t, ok)

	var nilIndex *ControllerIndex
	_, ok = nilIndex.Lookup("/api/user")
	assert.False(t, ok)
	assert.Equal(t, 0, nilIndex.Len())
}

func TestControllerKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
		ok   bool
	}{
		{"auth.controller.js", "auth", true},
		{"user-profile.controller.mjs", "user-profile", true},
		{"auth.controller.", "", false},
		{"auth.controller.spec.js", "", false},
		{"auth.js", "", false},
		{".controller.js", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := controllerKey(tt.name, ControllerSuffix)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.key, key)
		})
	}
}
