package analyzer

import (
	"strings"
)

// actionVerbs lists the handler-name prefixes conventionally used for each HTTP method.
var actionVerbs = map[string][]string{
	"GET":    {"get", "fetch", "retrieve", "list", "show", "find"},
	"POST":   {"create", "add", "register", "login", "send", "verify", "resend"},
	"PUT":    {"update", "edit", "modify", "change"},
	"DELETE": {"delete", "remove", "destroy"},
	"PATCH":  {"patch", "update", "modify"},
}

// RouteQuery is a route path broken into the parts the name heuristics work with.
type RouteQuery struct {
	Path       string
	Method     string
	Segments   []string
	Last       string
	SecondLast string
}

func NewRouteQuery(routePath, method string) RouteQuery {
	q := RouteQuery{
		Path:   routePath,
		Method: strings.ToUpper(method),
	}
	for _, seg := range strings.Split(routePath, "/") {
		if seg != "" {
			q.Segments = append(q.Segments, seg)
		}
	}
	if n := len(q.Segments); n > 0 {
		q.Last = q.Segments[n-1]
		if n > 1 {
			q.SecondLast = q.Segments[n-2]
		}
	}
	return q
}

func (q RouteQuery) hasSegment(name string) bool {
	for _, seg := range q.Segments {
		if seg == name {
			return true
		}
	}
	return false
}

// exactNames are the tier-one guesses: last, method+Last, last+Method.
func (q RouteQuery) exactNames() []string {
	if q.Last == "" {
		return nil
	}
	method := strings.ToLower(q.Method)
	return []string{
		q.Last,
		method + capitalize(q.Last),
		q.Last + capitalize(method),
	}
}

// patternNames builds the ordered tier-two candidate list.
func (q RouteQuery) patternNames() []string {
	names := newNameList()
	names.add(q.userGuesses()...)

	if q.Last == "" {
		return names.list
	}

	names.add(q.Last, q.Last+"User")
	if q.SecondLast != "" {
		names.add(q.Last + capitalize(q.SecondLast))
	}

	for _, verb := range actionVerbs[q.Method] {
		names.add(verb + capitalize(q.Last))
		if q.SecondLast != "" {
			names.add(verb + capitalize(q.SecondLast))
		}
	}

	camel := toCamelCase(q.Last)
	names.add(strings.ReplaceAll(q.Last, "-", ""), camel)
	names.add(strings.ToLower(q.Method) + capitalize(camel))

	return names.list
}

// userGuesses returns domain-specific names for routes under a "user" segment.
func (q RouteQuery) userGuesses() []string {
	if !q.hasSegment("user") {
		return nil
	}
	bare := q.Last == "user"

	switch q.Method {
	case "GET":
		if bare {
			return []string{"getAllUsers", "getUsers", "listUsers"}
		}
		return []string{"getUser", "getUserById", "getUserProfile"}
	case "POST":
		if bare {
			return []string{"createUserByAdmin", "createUser", "addUser"}
		}
	case "PUT":
		if q.Last == "profile" {
			return []string{"updateProfile", "updateUserProfile", "editProfile"}
		}
		return []string{"updateUser", "updateUserByAdmin", "updateProfile", "editUser"}
	case "DELETE":
		return []string{"deleteUser", "deleteUserByAdmin", "removeUser"}
	}
	return nil
}

// nameList is an ordered, case-insensitively de-duplicated list of non-empty names.
type nameList struct {
	list []string
	seen map[string]bool
}

func newNameList() *nameList {
	return &nameList{seen: make(map[string]bool)}
}

func (nl *nameList) add(names ...string) {
	for _, name := range names {
		key := strings.ToLower(name)
		if key == "" || nl.seen[key] {
			continue
		}
		nl.seen[key] = true
		nl.list = append(nl.list, name)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// toCamelCase turns "all-users" or "reset_password" into "allUsers" / "resetPassword".
func toCamelCase(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == '_'
	})
	if len(parts) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(parts[0])
	for _, part := range parts[1:] {
		b.WriteString(capitalize(part))
	}
	return b.String()
}
