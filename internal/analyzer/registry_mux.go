package analyzer

import (
	"strings"

	"github.com/gorilla/mux"
)

type muxGroup struct {
	basePath string
	router   *mux.Router
}

// MuxRegistry records route groups mounted on a gorilla/mux router so they can be listed later.
type MuxRegistry struct {
	root   *mux.Router
	groups []muxGroup
}

func NewMuxRegistry(root *mux.Router) *MuxRegistry {
	if root == nil {
		root = mux.NewRouter()
	}
	return &MuxRegistry{root: root}
}

func (r *MuxRegistry) Router() *mux.Router {
	return r.root
}

// Mount creates a subrouter under basePath, lets register populate it, and records the group.
func (r *MuxRegistry) Mount(basePath string, register func(*mux.Router)) *mux.Router {
	sub := r.root.PathPrefix(basePath).Subrouter()
	if register != nil {
		register(sub)
	}
	r.groups = append(r.groups, muxGroup{basePath: basePath, router: sub})
	return sub
}

// RegisteredRoutes walks each mounted subrouter in registration order.
// Routes without a method matcher (nested prefixes) are skipped.
func (r *MuxRegistry) RegisteredRoutes() []RouteGroup {
	groups := make([]RouteGroup, 0, len(r.groups))
	for _, g := range r.groups {
		group := RouteGroup{BasePath: g.basePath}
		_ = g.router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
			tpl, err := route.GetPathTemplate()
			if err != nil {
				return nil
			}
			methods, err := route.GetMethods()
			if err != nil || len(methods) == 0 {
				return nil
			}
			group.Routes = append(group.Routes, RouteDef{
				SubPath: strings.TrimPrefix(tpl, g.basePath),
				Methods: methods,
			})
			return nil
		})
		groups = append(groups, group)
	}
	return groups
}
