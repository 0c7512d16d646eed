package lex

import (
	"fmt"
	"regexp"
)

// aliasRef matches a `{name}` reference inside a pattern. Names are
// restricted to the characters one would realistically use for a macro
// name; this is deliberately narrower than "anything between braces" so
// that a regex using literal `{n,m}` repetition counts is never mistaken
// for an alias reference.
var aliasRef = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// ExpandAliases resolves every `{name}` reference inside every pattern of
// aliases against the other entries of aliases, transitively, and returns a
// new map in which no `{name}` reference remains. Expansion is memoized: an
// alias referenced by more than one other alias is only ever expanded once.
//
// Self-reference and cycles are reported as an error rather than looped on
// forever, per spec.md §4.1 ("an implementation should fail fast with a
// clear error rather than loop").
func ExpandAliases(aliases map[string]string) (map[string]string, error) {
	expanded := make(map[string]string, len(aliases))
	inProgress := make(map[string]bool, len(aliases))

	var expand func(name string) (string, error)
	expand = func(name string) (string, error) {
		if done, ok := expanded[name]; ok {
			return done, nil
		}
		pattern, ok := aliases[name]
		if !ok {
			return "", fmt.Errorf("alias %q is referenced but not defined", name)
		}
		if inProgress[name] {
			return "", fmt.Errorf("alias %q is involved in a reference cycle", name)
		}
		inProgress[name] = true
		defer delete(inProgress, name)

		result, err := substitute(pattern, expand)
		if err != nil {
			return "", err
		}
		expanded[name] = result
		return result, nil
	}

	for name := range aliases {
		if _, err := expand(name); err != nil {
			return nil, err
		}
	}
	return expanded, nil
}

// ExpandPattern applies an already-expanded alias table (the output of
// ExpandAliases) to a single pattern, in one pass, per spec.md §4.1's "A
// second operation expands a single pattern against the expanded alias
// table in one pass."
func ExpandPattern(pattern string, expandedAliases map[string]string) (string, error) {
	return substitute(pattern, func(name string) (string, error) {
		result, ok := expandedAliases[name]
		if !ok {
			return "", fmt.Errorf("alias %q is referenced but not defined", name)
		}
		return result, nil
	})
}

// substitute replaces every `{name}` occurrence in pattern with resolve(name),
// left to right, non-recursively on the result of a single resolve call (the
// recursion, when needed, lives in resolve itself).
func substitute(pattern string, resolve func(name string) (string, error)) (string, error) {
	var outerErr error

	result := aliasRef.ReplaceAllStringFunc(pattern, func(match string) string {
		if outerErr != nil {
			return match
		}
		name := aliasRef.FindStringSubmatch(match)[1]
		repl, err := resolve(name)
		if err != nil {
			outerErr = err
			return match
		}
		return repl
	})
	if outerErr != nil {
		return "", outerErr
	}
	return result, nil
}
