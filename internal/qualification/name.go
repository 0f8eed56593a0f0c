package qualification

import (
	"strings"
	"unicode/utf8"
)

// nameRules run against the lowercased name with internal whitespace
// collapsed to single spaces.
var nameRules = []rule{
	{"placeholder name", pattern(`^(test|fake)`)},
	{"placeholder name", inSet(setOf("john doe", "jane doe", "first last", "name"))},
	{"keyboard gibberish", pattern(`^(asdf|qwerty)`)},
	{"starts with a digit", pattern(`^[0-9]`)},
}

// CheckName validates a submitter's full name and names the first rule it
// breaks.
func CheckName(name string) Verdict {
	trimmed := strings.TrimSpace(name)
	if utf8.RuneCountInString(trimmed) < 2 {
		return fail("too short")
	}
	words := strings.Fields(trimmed)
	if len(words) < 2 {
		return fail("first and last name required")
	}
	normalized := strings.ToLower(strings.Join(words, " "))
	if reason, hit := firstMatch(nameRules, normalized); hit {
		return fail(reason)
	}
	return pass()
}

// ValidateName reports whether name holds at least a first and last name
// and is not a known placeholder.
func ValidateName(name string) bool {
	return CheckName(name).Valid
}
