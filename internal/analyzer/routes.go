package analyzer

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

const (
	// RoutesDir is the subdirectory of the project root holding route files.
	RoutesDir = "routes"
	// RoutesSuffix marks a route file: <name>.routes.<ext>
	RoutesSuffix = ".routes."
)

const quotedPath = "[\"'`]([^\"'`]+)[\"'`]"

var (
	// router.post("/register", ...)
	directRouteCall = regexp.MustCompile(`\b(?:\w*[Rr]outer|app)\s*\.\s*(get|post|put|delete|patch|head|options)\s*\(\s*` + quotedPath)
	// router.route("/:id").get(...).put(...)
	chainedRouteCall = regexp.MustCompile(`\b(?:\w*[Rr]outer|app)\s*\.\s*route\s*\(\s*` + quotedPath + `\s*\)([^;]*)`)
	chainedMethod    = regexp.MustCompile(`\.\s*(get|post|put|delete|patch|head|options)\s*\(`)
)

// ScanRegistry discovers route groups by lexically scanning <root>/routes/<name>.routes.<ext>.
// Each file becomes the group /api/<name>. It never executes the route files.
type ScanRegistry struct {
	root string
}

func NewScanRegistry(root string) *ScanRegistry {
	return &ScanRegistry{root: root}
}

// RegisteredRoutes rescans the routes directory. A missing directory yields no groups.
func (r *ScanRegistry) RegisteredRoutes() []RouteGroup {
	dir := filepath.Join(r.root, RoutesDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var groups []RouteGroup
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		key, ok := controllerKey(entry.Name(), RoutesSuffix)
		if !ok {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		groups = append(groups, RouteGroup{
			BasePath: APIPrefix + key,
			Routes:   ParseRouteSource(string(data)),
		})
	}
	return groups
}

type routeCall struct {
	offset int
	path   string
	method string
}

// ParseRouteSource extracts route definitions in source order, merging methods declared for the same path.
func ParseRouteSource(source string) []RouteDef {
	var calls []routeCall

	for _, m := range directRouteCall.FindAllStringSubmatchIndex(source, -1) {
		calls = append(calls, routeCall{
			offset: m[0],
			method: source[m[2]:m[3]],
			path:   source[m[4]:m[5]],
		})
	}

	for _, m := range chainedRouteCall.FindAllStringSubmatchIndex(source, -1) {
		path := source[m[2]:m[3]]
		chain := source[m[4]:m[5]]
		// without semicolons the chain can run into the next router statement
		for _, re := range []*regexp.Regexp{directRouteCall, chainedRouteCall} {
			if loc := re.FindStringIndex(chain); loc != nil {
				chain = chain[:loc[0]]
			}
		}
		for i, mm := range chainedMethod.FindAllStringSubmatchIndex(chain, -1) {
			calls = append(calls, routeCall{
				offset: m[0] + i,
				method: chain[mm[2]:mm[3]],
				path:   path,
			})
		}
	}

	sort.SliceStable(calls, func(i, j int) bool {
		return calls[i].offset < calls[j].offset
	})

	var defs []RouteDef
	positions := make(map[string]int)
	for _, call := range calls {
		method := strings.ToUpper(call.method)
		if pos, exists := positions[call.path]; exists {
			defs[pos].Methods = appendMethod(defs[pos].Methods, method)
			continue
		}
		positions[call.path] = len(defs)
		defs = append(defs, RouteDef{SubPath: call.path, Methods: []string{method}})
	}
	return defs
}
