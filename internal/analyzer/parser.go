package analyzer

import (
	"regexp"
)

const identPattern = `[A-Za-z_$][A-Za-z0-9_$]*`

// Declaration shapes, applied in this order. Earlier shapes win the first-seen position.
var functionDeclPatterns = []*regexp.Regexp{
	// const NAME = async (...) =>
	regexp.MustCompile(`\bconst\s+(` + identPattern + `)\s*=\s*async\s*\([^)]*\)\s*=>`),
	// const NAME = (...) =>
	regexp.MustCompile(`\bconst\s+(` + identPattern + `)\s*=\s*\([^)]*\)\s*=>`),
	// async function NAME(
	regexp.MustCompile(`\basync\s+function\s+(` + identPattern + `)\s*\(`),
	// function NAME(
	regexp.MustCompile(`\bfunction\s+(` + identPattern + `)\s*\(`),
}

// ExtractFunctionNames returns the top-level function names declared in source.
// It is purely syntactic and intentionally over-inclusive.
func ExtractFunctionNames(source string) FunctionInventory {
	inventory := FunctionInventory{}
	seen := make(map[string]bool)

	for _, re := range functionDeclPatterns {
		for _, match := range re.FindAllStringSubmatch(source, -1) {
			if len(match) < 2 {
				continue
			}
			name := match[1]
			if seen[name] {
				continue
			}
			seen[name] = true
			inventory = append(inventory, name)
		}
	}

	return inventory
}

// Contains reports whether name is in the inventory (case-sensitive).
func (inv FunctionInventory) Contains(name string) bool {
	for _, fn := range inv {
		if fn == name {
			return true
		}
	}
	return false
}
