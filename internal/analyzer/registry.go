package analyzer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Registry supplies the registered route groups. Listing only ever reads from it.
type Registry interface {
	RegisteredRoutes() []RouteGroup
}

// StaticRegistry is a fixed list of route groups.
type StaticRegistry []RouteGroup

func (r StaticRegistry) RegisteredRoutes() []RouteGroup {
	return []RouteGroup(r)
}

// ManifestRegistry holds route groups declared in a YAML or JSON manifest:
//
//	groups:
//	  - basePath: /api/auth
//	    routes:
//	      - path: /register
//	        methods: [post]
type ManifestRegistry struct {
	Groups []RouteGroup `json:"groups" yaml:"groups"`
}

func (r *ManifestRegistry) RegisteredRoutes() []RouteGroup {
	if r == nil {
		return nil
	}
	return r.Groups
}

// LoadManifest reads a manifest file. YAML is a superset of JSON, so both parse.
func LoadManifest(path string) (*ManifestRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return ParseManifest(data)
}

func ParseManifest(data []byte) (*ManifestRegistry, error) {
	var manifest ManifestRegistry
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	for i, group := range manifest.Groups {
		if group.BasePath == "" {
			return nil, fmt.Errorf("manifest group %d has no basePath", i)
		}
		for j, def := range group.Routes {
			for _, method := range def.Methods {
				if !isHTTPMethod(method) {
					return nil, fmt.Errorf("manifest group %s route %d: unsupported method %q", group.BasePath, j, method)
				}
			}
		}
	}
	return &manifest, nil
}
