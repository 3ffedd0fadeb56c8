package analyzer

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authGroup() RouteGroup {
	return RouteGroup{
		BasePath: "/api/auth",
		Routes: []RouteDef{
			{SubPath: "/register", Methods: []string{"post"}},
			{SubPath: "/login", Methods: []string{"post"}},
			{SubPath: "/verify-otp", Methods: []string{"post"}},
			{SubPath: "/reset-password", Methods: []string{"post"}},
		},
	}
}

func userGroup() RouteGroup {
	return RouteGroup{
		BasePath: "/api/user",
		Routes: []RouteDef{
			{SubPath: "/all-users", Methods: []string{"get"}},
			{SubPath: "/", Methods: []string{"post"}},
			{SubPath: "/:id", Methods: []string{"put", "delete", "patch"}},
		},
	}
}

func TestListRoutesRegisterUser(t *testing.T) {
	root := sampleProject(t)

	routes := ListRoutes([]RouteGroup{authGroup()}, root)
	require.Len(t, routes, 4)

	register := routes[0]
	assert.Equal(t, "/api/auth/register", register.Path)
	assert.Equal(t, "POST", register.Method)
	require.NotNil(t, register.Body)
	assert.Equal(t, map[string]string{
		"name":     "string",
		"email":    "string",
		"password": "string",
		"phone":    "string (optional)",
	}, register.Body.Map())
	assert.Equal(t, map[string]string{"Content-Type": "application/json"}, register.Headers)

	assert.Equal(t, []string{"email", "password"}, routes[1].Body.Keys())
	assert.Equal(t, []string{"email", "otp"}, routes[2].Body.Keys())
	assert.Nil(t, routes[3].Body, "unresolved handler")
	assert.NotNil(t, routes[3].Headers)
}

func TestListRoutesBodylessMethods(t *testing.T) {
	root := sampleProject(t)

	routes := ListRoutes([]RouteGroup{userGroup()}, root)
	require.Len(t, routes, 5)

	allUsers := routes[0]
	assert.Equal(t, "/api/user/all-users", allUsers.Path)
	assert.Equal(t, "GET", allUsers.Method)
	assert.Nil(t, allUsers.Body)
	assert.Nil(t, allUsers.Headers)

	create := routes[1]
	assert.Equal(t, "/api/user/", create.Path)
	require.NotNil(t, create.Body)
	assert.Equal(t, []string{"name", "email", "role", "phone"}, create.Body.Keys())

	assert.Equal(t, "PUT", routes[2].Method)
	require.NotNil(t, routes[2].Body)
	assert.Equal(t, []string{"name", "email", "phone"}, routes[2].Body.Keys())

	assert.Equal(t, "DELETE", routes[3].Method)
	assert.Nil(t, routes[3].Body)
	assert.Nil(t, routes[3].Headers)

	// PATCH is inferred but carries no headers
	assert.Equal(t, "PATCH", routes[4].Method)
	assert.NotNil(t, routes[4].Body)
	assert.Nil(t, routes[4].Headers)
}

func TestListRoutesMissingController(t *testing.T) {
	root := sampleProject(t)

	groups := []RouteGroup{{
		BasePath: "/api/orders",
		Routes: []RouteDef{
			{SubPath: "/", Methods: []string{"POST", "GET"}},
			{SubPath: "/:id", Methods: []string{"PUT"}},
		},
	}}

	routes := ListRoutes(groups, root)
	require.Len(t, routes, 3)
	for _, route := range routes {
		assert.Nil(t, route.Body, "%s %s", route.Method, route.Path)
	}
	assert.NotNil(t, routes[0].Headers)
	assert.Nil(t, routes[1].Headers)
}

func TestListRoutesOrderAndCardinality(t *testing.T) {
	root := sampleProject(t)
	groups := []RouteGroup{userGroup(), authGroup()}

	routes := ListRoutes(groups, root)

	var want []string
	for _, group := range groups {
		for _, def := range group.Routes {
			for _, m := range def.Methods {
				want = append(want, strings.ToUpper(m)+" "+group.BasePath+def.SubPath)
			}
		}
	}
	got := make([]string, 0, len(routes))
	for _, route := range routes {
		got = append(got, route.Method+" "+route.Path)
	}
	assert.Equal(t, want, got)
}

func TestListRoutesIdempotent(t *testing.T) {
	root := sampleProject(t)
	groups := []RouteGroup{authGroup(), userGroup()}

	first := ListRoutes(groups, root)
	second := ListRoutes(groups, root)
	assert.Equal(t, first, second)
}

func TestListRoutesEmpty(t *testing.T) {
	routes := ListRoutes(nil, t.TempDir())
	assert.NotNil(t, routes)
	assert.Empty(t, routes)

	routes = ListRoutes([]RouteGroup{{BasePath: "/api/auth"}}, t.TempDir())
	assert.Empty(t, routes)
}

func TestListRoutesMissingProjectRoot(t *testing.T) {
	routes := ListRoutes([]RouteGroup{authGroup()}, filepath.Join(t.TempDir(), "nope"))
	require.Len(t, routes, 4)
	for _, route := range routes {
		assert.Nil(t, route.Body)
	}
}

type panickingStrategy struct{}

func (panickingStrategy) Kind() MatchKind { return ExactMatch }

func (panickingStrategy) Resolve(RouteQuery, FunctionInventory) (Resolution, bool) {
	panic("strategy exploded")
}

func TestListRoutesRecoversFromPanics(t *testing.T) {
	root := sampleProject(t)
	recorder := &recordingRecorder{}

	a := New(Options{
		Matcher:  NewMatcher(panickingStrategy{}),
		Recorder: recorder,
	})

	routes := a.ListRoutes([]RouteGroup{authGroup()}, root)
	require.Len(t, routes, 4)
	for _, route := range routes {
		assert.Nil(t, route.Body)
	}
	assert.Equal(t, []string{OutcomePanic, OutcomePanic, OutcomePanic, OutcomePanic}, recorder.outcomes)
}

func TestListRoutesUnreadableController(t *testing.T) {
	root := writeProject(t, map[string]string{"controllers/.keep": ""})
	target := filepath.Join(root, "missing.js")
	link := filepath.Join(root, ControllersDir, "auth.controller.js")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	recorder := &recordingRecorder{}
	routes := New(Options{Recorder: recorder}).ListRoutes([]RouteGroup{authGroup()}, root)
	require.Len(t, routes, 4)
	assert.Nil(t, routes[0].Body)
	assert.Equal(t, OutcomeReadError, recorder.outcomes[0])
}

func TestAnalyzerRecordsOutcomes(t *testing.T) {
	root := sampleProject(t)
	recorder := &recordingRecorder{}

	groups := []RouteGroup{
		authGroup(),
		{BasePath: "/api/orders", Routes: []RouteDef{{SubPath: "/", Methods: []string{"post"}}}},
		{BasePath: "/api/user", Routes: []RouteDef{{SubPath: "/all-users", Methods: []string{"get"}}}},
	}
	New(Options{Recorder: recorder}).ListRoutes(groups, root)

	assert.Equal(t, []string{"POST", "POST", "POST", "POST", "POST", "GET"}, recorder.methods)
	assert.Equal(t, []string{
		OutcomeInferred,
		OutcomeInferred,
		OutcomeInferred,
		OutcomeUnresolved,
		OutcomeNoController,
		OutcomeNoBodyMethod,
	}, recorder.outcomes)
	assert.Equal(t, 1, recorder.passes)
}

func TestAnalyzerNoSchemaOutcome(t *testing.T) {
	root := writeProject(t, map[string]string{
		"controllers/ping.controller.js": "const pingPost = async (req, res) => {\n  res.send(\"pong\");\n};\n",
	})
	recorder := &recordingRecorder{}

	routes := New(Options{Recorder: recorder}).ListRoutes([]RouteGroup{{
		BasePath: "/api/ping",
		Routes:   []RouteDef{{SubPath: "", Methods: []string{"POST"}}},
	}}, root)

	require.Len(t, routes, 1)
	assert.Equal(t, "/api/ping", routes[0].Path)
	assert.Nil(t, routes[0].Body)
	assert.Equal(t, []string{OutcomeNoSchema}, recorder.outcomes)
}

func TestAnalyzerCustomConventions(t *testing.T) {
	root := writeProject(t, map[string]string{
		"handlers/auth.handler.js": authController,
	})

	a := New(Options{ControllersDir: "handlers", ControllerSuffix: ".handler."})
	index := a.DiscoverControllers(root)
	require.Equal(t, 1, index.Len())

	routes := a.ListRoutes([]RouteGroup{authGroup()}, root)
	require.NotNil(t, routes[0].Body)
	assert.Equal(t, 4, routes[0].Body.Len())
}

func TestAnalyzerLogsSummary(t *testing.T) {
	root := sampleProject(t)
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetLevel(logrus.DebugLevel)

	New(Options{Logger: logger}).ListRoutes([]RouteGroup{authGroup()}, root)

	assert.Contains(t, buf.String(), "route listing complete")
	assert.Contains(t, buf.String(), "function=registerUser")
}

func TestAnalyzerListRegistry(t *testing.T) {
	root := sampleProject(t)
	a := New(Options{})

	assert.Empty(t, a.List(nil, root))

	routes := a.List(StaticRegistry{authGroup()}, root)
	require.Len(t, routes, 4)
	assert.Equal(t, "/api/auth/register", routes[0].Path)
}
