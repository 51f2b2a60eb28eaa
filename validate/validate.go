// Package validate decides whether a candidate answer carries real
// content or is a blank/refusal that must never be stored.
package validate

import "strings"

// nonAnswers is the fixed vocabulary of refusal values. A non-answer is
// rejected regardless of whether the field is mandatory; it only changes
// whether the engine re-asks or accepts a blank.
var nonAnswers = map[string]struct{}{
	"n/a":           {},
	"não se aplica": {},
	"não":           {},
	"nao":           {},
	"-":             {},
	"none":          {},
	"null":          {},
}

// Usable reports whether v counts as a usable answer. Strings are trimmed
// and checked against the non-answer vocabulary; maps and slices are usable
// iff at least one entry is independently usable; anything else is not.
func Usable(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return UsableString(x)
	case map[string]string:
		for _, s := range x {
			if UsableString(s) {
				return true
			}
		}
		return false
	case map[string]any:
		for _, e := range x {
			if Usable(e) {
				return true
			}
		}
		return false
	case []string:
		for _, s := range x {
			if UsableString(s) {
				return true
			}
		}
		return false
	case []any:
		for _, e := range x {
			if Usable(e) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// UsableString is the string form of Usable.
func UsableString(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	_, refusal := nonAnswers[strings.ToLower(s)]
	return !refusal
}
