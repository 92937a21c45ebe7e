package spacing

import (
	"strings"
	"unicode"
)

// NormalizeName lowercases a crop identifier and strips a trailing numeric
// variety suffix, so "Tomato-2", "tomato_12" and "tomato 3" all become
// "tomato".
func NormalizeName(cropID string) string {
	name := strings.ToLower(strings.TrimSpace(cropID))
	trimmed := strings.TrimRightFunc(name, unicode.IsDigit)
	if trimmed == name || trimmed == "" {
		return name
	}
	return strings.TrimRight(trimmed, "-_ ")
}

// ResolveKey finds the table entry for a crop identifier.
//
// Precedence, after NormalizeName:
//  1. exact key match;
//  2. the longest key that is a prefix of the name ("tomato" for
//     "tomato-cherry");
//  3. no match (ok is false; the caller applies its default).
func ResolveKey[V any](cropID string, table map[string]V) (key string, ok bool) {
	name := NormalizeName(cropID)
	if name == "" {
		return "", false
	}
	if _, hit := table[name]; hit {
		return name, true
	}
	for k := range table {
		if k != "" && strings.HasPrefix(name, k) && len(k) > len(key) {
			key = k
		}
	}
	return key, key != ""
}

// lookup is ResolveKey returning the value.
func lookup[V any](cropID string, table map[string]V) (V, bool) {
	key, ok := ResolveKey(cropID, table)
	if !ok {
		var zero V
		return zero, false
	}
	return table[key], true
}
