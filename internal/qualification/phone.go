package qualification

import "strings"

// phoneFakeRules run against the digits of a phone number regardless of
// whether its length and prefix are plausible.
var phoneFakeRules = []rule{
	{"all zeros", pattern(`^0+$`)},
	{"repeated digit", func(d string) bool { return longestRun(d) >= 10 }},
	{"sequential digits", func(d string) bool { return strings.HasPrefix(d, "123456789") }},
	{"repeated fives", pattern(`5{9,}`)},
	{"fictional 555 number", func(d string) bool { return strings.Contains(d, "555") }},
}

// CheckPhone validates a North American phone number and names the first
// rule it breaks.
func CheckPhone(phone string) Verdict {
	d := digitsOnly(phone)
	if reason := phoneShape(d); reason != "" {
		return fail(reason)
	}
	if reason, hit := firstMatch(phoneFakeRules, d); hit {
		return fail(reason)
	}
	return pass()
}

// ValidatePhone reports whether phone is a plausible NANP number: ten digits
// with an area code not starting with 0 or 1, optionally prefixed with the
// country code 1, and not one of the known fake patterns.
func ValidatePhone(phone string) bool {
	return CheckPhone(phone).Valid
}

func phoneShape(d string) string {
	switch {
	case len(d) < 10:
		return "too few digits"
	case len(d) == 10:
		if d[0] == '0' || d[0] == '1' {
			return "invalid area code"
		}
	case len(d) == 11:
		if d[0] != '1' {
			return "invalid country code"
		}
		if d[1] == '0' || d[1] == '1' {
			return "invalid area code"
		}
	default:
		return "too many digits"
	}
	return ""
}

// digitsOnly strips every non-digit character.
func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}
