package qualification

import "regexp"

// rule is one entry in a validator's ordered rule table. match returns true
// when the input trips the rule.
type rule struct {
	reason string
	match  func(string) bool
}

func pattern(expr string) func(string) bool {
	re := regexp.MustCompile(expr)
	return re.MatchString
}

func inSet(set map[string]struct{}) func(string) bool {
	return func(s string) bool {
		_, ok := set[s]
		return ok
	}
}

func setOf(values ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// firstMatch returns the reason of the first rule that matches s.
func firstMatch(rules []rule, s string) (string, bool) {
	for _, r := range rules {
		if r.match(s) {
			return r.reason, true
		}
	}
	return "", false
}

// longestRun returns the length of the longest run of a single repeated byte.
func longestRun(s string) int {
	best, run := 0, 0
	for i := 0; i < len(s); i++ {
		if i > 0 && s[i] == s[i-1] {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	return best
}
