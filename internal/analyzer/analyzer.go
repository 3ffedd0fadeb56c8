package analyzer

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Schema inference outcomes, one per listed route+method.
const (
	OutcomeInferred     = "inferred"
	OutcomeNoBodyMethod = "no_body_method"
	OutcomeNoController = "no_controller"
	OutcomeReadError    = "read_error"
	OutcomeUnresolved   = "unresolved"
	OutcomeNoSchema     = "no_schema"
	OutcomePanic        = "panic"
)

// Recorder receives listing events. Implementations must not block.
type Recorder interface {
	RouteListed(method string)
	SchemaOutcome(outcome string)
	ListingDuration(d time.Duration)
}

type noopRecorder struct{}

func (noopRecorder) RouteListed(string)            {}
func (noopRecorder) SchemaOutcome(string)          {}
func (noopRecorder) ListingDuration(time.Duration) {}

type Options struct {
	Logger    logrus.FieldLogger
	Recorder  Recorder
	Matcher   *Matcher
	Extractor *SchemaExtractor
	// ControllersDir and ControllerSuffix override the controllers/ and .controller. conventions.
	ControllersDir   string
	ControllerSuffix string
}

// Analyzer lists registered routes and infers request body schemas from controller sources.
// It holds no per-pass state and is safe for concurrent use.
type Analyzer struct {
	log              logrus.FieldLogger
	recorder         Recorder
	matcher          *Matcher
	extractor        *SchemaExtractor
	controllersDir   string
	controllerSuffix string
}

func New(opts Options) *Analyzer {
	a := &Analyzer{
		log:              opts.Logger,
		recorder:         opts.Recorder,
		matcher:          opts.Matcher,
		extractor:        opts.Extractor,
		controllersDir:   opts.ControllersDir,
		controllerSuffix: opts.ControllerSuffix,
	}
	if a.log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		a.log = discard
	}
	if a.recorder == nil {
		a.recorder = noopRecorder{}
	}
	if a.matcher == nil {
		a.matcher = DefaultMatcher()
	}
	if a.extractor == nil {
		a.extractor = defaultExtractor
	}
	if a.controllersDir == "" {
		a.controllersDir = ControllersDir
	}
	if a.controllerSuffix == "" {
		a.controllerSuffix = ControllerSuffix
	}
	return a
}

// ListRoutes lists routes with default options.
func ListRoutes(groups []RouteGroup, rootDir string) []RouteDescriptor {
	return New(Options{}).ListRoutes(groups, rootDir)
}

// List reads the registry once and lists its routes.
func (a *Analyzer) List(reg Registry, rootDir string) []RouteDescriptor {
	if reg == nil {
		return []RouteDescriptor{}
	}
	return a.ListRoutes(reg.RegisteredRoutes(), rootDir)
}

// ListRoutes returns one descriptor per route and declared method, in input order.
// Inference failures never abort the pass; the affected descriptor gets a nil body.
func (a *Analyzer) ListRoutes(groups []RouteGroup, rootDir string) []RouteDescriptor {
	start := time.Now()
	index := a.DiscoverControllers(rootDir)
	a.log.WithFields(logrus.Fields{
		"root":        rootDir,
		"controllers": index.Len(),
	}).Debug("controller index built")

	routes := []RouteDescriptor{}
	inferred := 0

	for _, group := range groups {
		for _, def := range group.Routes {
			fullPath := group.BasePath + def.SubPath
			for _, m := range def.Methods {
				method := strings.ToUpper(m)

				body, outcome := a.inferBody(fullPath, method, index)
				if outcome == OutcomeInferred {
					inferred++
				}
				a.recorder.RouteListed(method)
				a.recorder.SchemaOutcome(outcome)

				routes = append(routes, RouteDescriptor{
					Path:    fullPath,
					Method:  method,
					Body:    body,
					Headers: headersFor(method),
				})
			}
		}
	}

	elapsed := time.Since(start)
	a.recorder.ListingDuration(elapsed)
	a.log.WithFields(logrus.Fields{
		"routes":   len(routes),
		"inferred": inferred,
		"elapsed":  elapsed.String(),
	}).Info("route listing complete")

	return routes
}

// DiscoverControllers builds the controller index using the analyzer's conventions.
func (a *Analyzer) DiscoverControllers(rootDir string) *ControllerIndex {
	return discoverControllers(rootDir, a.controllersDir, a.controllerSuffix)
}

func (a *Analyzer) inferBody(fullPath, method string, index *ControllerIndex) (schema *FieldSchema, outcome string) {
	if !hasRequestBody(method) {
		return nil, OutcomeNoBodyMethod
	}

	entry := a.log.WithFields(logrus.Fields{"path": fullPath, "method": method})

	defer func() {
		if r := recover(); r != nil {
			entry.WithField("panic", fmt.Sprint(r)).Warn("schema inference panicked")
			schema, outcome = nil, OutcomePanic
		}
	}()

	controller, ok := index.Lookup(fullPath)
	if !ok {
		entry.Debug("no controller for route")
		return nil, OutcomeNoController
	}
	entry = entry.WithField("controller", controller.Path)

	// Read the whole file so no handle outlives this route.
	data, err := os.ReadFile(controller.Path)
	if err != nil {
		entry.WithError(err).Debug("controller unreadable")
		return nil, OutcomeReadError
	}
	source := string(data)

	inventory := ExtractFunctionNames(source)
	resolution, ok := a.matcher.Resolve(fullPath, method, inventory)
	if !ok {
		entry.WithField("functions", len(inventory)).Debug("no handler matched route")
		return nil, OutcomeUnresolved
	}
	entry = entry.WithFields(logrus.Fields{
		"function": resolution.Function,
		"strategy": resolution.Strategy,
	})

	schema, ok = a.extractor.Extract(resolution.Function, source)
	if !ok {
		entry.Debug("no payload fields recovered")
		return nil, OutcomeNoSchema
	}

	entry.WithField("fields", schema.Len()).Debug("schema inferred")
	return schema, OutcomeInferred
}

// hasRequestBody is false for methods whose body is never inferred.
func hasRequestBody(method string) bool {
	return method != "GET" && method != "DELETE"
}

func headersFor(method string) map[string]string {
	if method == "POST" || method == "PUT" {
		return map[string]string{"Content-Type": "application/json"}
	}
	return nil
}
