package server

import (
	"encoding/json"
	"net/http"

	"github.com/Aman-s12345/go-routescope/internal/generator"
)

// handleRoutes handles GET /api/routes
func (s *Server) handleRoutes(w http.ResponseWriter, r *http.Request) {
	routes := s.opts.Analyzer.List(s.opts.Registry, s.opts.ProjectPath)
	s.writeJSON(w, http.StatusOK, routes)
}

// handleSelfRoutes handles GET /api/routes/self
func (s *Server) handleSelfRoutes(w http.ResponseWriter, r *http.Request) {
	routes := s.opts.Analyzer.List(s.self, s.opts.ProjectPath)
	s.writeJSON(w, http.StatusOK, routes)
}

// handleOpenAPI handles GET /api/openapi?format=json|yaml
func (s *Server) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	if format != "json" && format != "yaml" {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "unsupported format: " + format})
		return
	}

	routes := s.opts.Analyzer.List(s.opts.Registry, s.opts.ProjectPath)
	spec := s.opts.Generator.Generate(routes)

	if format == "yaml" {
		w.Header().Set("Content-Type", "application/yaml")
	} else {
		w.Header().Set("Content-Type", "application/json")
	}
	if err := generator.Encode(w, spec, format); err != nil {
		s.log.WithError(err).Error("failed to encode openapi document")
	}
}

// handleHealth handles GET /healthz
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	groups := 0
	if s.opts.Registry != nil {
		groups = len(s.opts.Registry.RegisteredRoutes())
	}
	controllers := s.opts.Analyzer.DiscoverControllers(s.opts.ProjectPath).Len()
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"groups":      groups,
		"controllers": controllers,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.WithError(err).Error("failed to encode response")
	}
}
