package analyzer

import (
	"strings"

	"github.com/agext/levenshtein"
)

// MaxFuzzyDistance is the largest edit distance the fuzzy tier accepts.
const MaxFuzzyDistance = 2

// Strategy is one tier of the name-resolution cascade.
type Strategy interface {
	Kind() MatchKind
	Resolve(q RouteQuery, inventory FunctionInventory) (Resolution, bool)
}

// Matcher evaluates its strategies in order and returns the first hit.
type Matcher struct {
	strategies []Strategy
}

func NewMatcher(strategies ...Strategy) *Matcher {
	return &Matcher{strategies: strategies}
}

// DefaultMatcher is exact names first, then the ordered pattern walk with a fuzzy fallback per candidate.
func DefaultMatcher() *Matcher {
	return NewMatcher(
		ExactStrategy{},
		PatternStrategy{Tests: []NameTest{ContainmentTest(), DistanceTest(MaxFuzzyDistance)}},
	)
}

// Resolve finds the function implementing routePath+method, if any.
func (m *Matcher) Resolve(routePath, method string, inventory FunctionInventory) (Resolution, bool) {
	if len(inventory) == 0 {
		return Resolution{}, false
	}
	q := NewRouteQuery(routePath, method)
	for _, strategy := range m.strategies {
		if res, ok := strategy.Resolve(q, inventory); ok {
			return res, true
		}
	}
	return Resolution{}, false
}

// ResolveFunction runs the default cascade.
func ResolveFunction(routePath, method string, inventory FunctionInventory) (Resolution, bool) {
	return DefaultMatcher().Resolve(routePath, method, inventory)
}

// ExactStrategy accepts a function whose name equals one of the tier-one guesses, ignoring case.
type ExactStrategy struct{}

func (ExactStrategy) Kind() MatchKind { return ExactMatch }

func (ExactStrategy) Resolve(q RouteQuery, inventory FunctionInventory) (Resolution, bool) {
	for _, guess := range q.exactNames() {
		for _, fn := range inventory {
			if strings.EqualFold(fn, guess) {
				return Resolution{Function: fn, Strategy: ExactMatch, Candidate: guess}, true
			}
		}
	}
	return Resolution{}, false
}

// NameTest decides whether a function name satisfies a candidate. Both arrive lower-cased.
type NameTest struct {
	Kind   MatchKind
	Accept func(fn, candidate string) bool
}

// ContainmentTest accepts equal names and names that contain, or are contained by, the candidate.
func ContainmentTest() NameTest {
	return NameTest{
		Kind: PatternMatch,
		Accept: func(fn, candidate string) bool {
			return fn == candidate || strings.Contains(fn, candidate) || strings.Contains(candidate, fn)
		},
	}
}

// DistanceTest accepts names within maxDistance edits of the candidate.
func DistanceTest(maxDistance int) NameTest {
	return NameTest{
		Kind: FuzzyMatch,
		Accept: func(fn, candidate string) bool {
			return Distance(fn, candidate) <= maxDistance
		},
	}
}

// PatternStrategy walks the ordered candidate list. The first candidate with any
// accepted function wins; among functions, inventory order breaks ties.
type PatternStrategy struct {
	Tests []NameTest
}

func (PatternStrategy) Kind() MatchKind { return PatternMatch }

func (s PatternStrategy) Resolve(q RouteQuery, inventory FunctionInventory) (Resolution, bool) {
	for _, candidate := range q.patternNames() {
		if fn, kind, ok := s.matchCandidate(candidate, inventory); ok {
			return Resolution{Function: fn, Strategy: kind, Candidate: candidate}, true
		}
	}
	return Resolution{}, false
}

func (s PatternStrategy) matchCandidate(candidate string, inventory FunctionInventory) (string, MatchKind, bool) {
	lc := strings.ToLower(candidate)
	if lc == "" {
		return "", "", false
	}
	for _, fn := range inventory {
		lf := strings.ToLower(fn)
		if lf == "" {
			continue
		}
		for _, test := range s.Tests {
			if test.Accept(lf, lc) {
				return fn, test.Kind, true
			}
		}
	}
	return "", "", false
}

// Distance is the unit-cost Levenshtein distance between the lower-cased inputs.
func Distance(a, b string) int {
	return levenshtein.Distance(strings.ToLower(a), strings.ToLower(b), nil)
}
