package analyzer

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// ControllersDir is the subdirectory of the project root holding controller files.
	ControllersDir = "controllers"
	// ControllerSuffix marks a controller file: <name>.controller.<ext>
	ControllerSuffix = ".controller."
	// APIPrefix is prepended to the controller key to form the route-group base path.
	APIPrefix = "/api/"
)

// DiscoverControllers maps /api/<name> to the absolute path of <root>/controllers/<name>.controller.<ext>.
// A missing or unreadable directory yields an empty index.
func DiscoverControllers(rootDir string) *ControllerIndex {
	return discoverControllers(rootDir, ControllersDir, ControllerSuffix)
}

func discoverControllers(rootDir, subDir, suffix string) *ControllerIndex {
	index := &ControllerIndex{}

	dir := filepath.Join(rootDir, subDir)
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return index
	}

	// os.ReadDir returns entries sorted by filename, which fixes lookup order.
	entries, err := os.ReadDir(absDir)
	if err != nil {
		return index
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		key, ok := controllerKey(entry.Name(), suffix)
		if !ok {
			continue
		}
		index.add(APIPrefix+key, filepath.Join(absDir, entry.Name()))
	}

	return index
}

// controllerKey strips "<suffix><ext>" from a file name, e.g. auth.controller.js -> auth.
func controllerKey(fileName, suffix string) (string, bool) {
	idx := strings.LastIndex(fileName, suffix)
	if idx <= 0 {
		return "", false
	}
	ext := fileName[idx+len(suffix):]
	if ext == "" || strings.Contains(ext, ".") {
		return "", false
	}
	return fileName[:idx], true
}
