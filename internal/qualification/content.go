package qualification

import (
	"regexp"
	"strings"
)

// specificDetailPatterns recognise concrete facts: years, durations,
// employers, diagnoses and named relatives or sites.
var specificDetailPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{4}s?\b`),
	regexp.MustCompile(`\b\d+\s+years?\s+ago\b`),
	regexp.MustCompile(`\bworked\s+(at|for|in)\b`),
	regexp.MustCompile(`\bdiagnosed\s+(with|in)\b`),
	regexp.MustCompile(`\bmy\s+(father|husband|wife)\b`),
	regexp.MustCompile(`\b\w+\s+(shipyard|plant|mill|company|corporation)\b`),
}

// AnalyzeMessageContent scans the free-text fields of a submission. Empty
// exposure or diagnosis values are skipped.
func AnalyzeMessageContent(message, exposure, diagnosis string) ContentAnalysis {
	parts := make([]string, 0, 3)
	for _, p := range []string{message, exposure, diagnosis} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	text := strings.ToLower(strings.Join(parts, " "))

	return ContentAnalysis{
		HighValueKeywords:       matchKeywords(text, highValueKeywords),
		MediumValueKeywords:     matchKeywords(text, mediumValueKeywords),
		RedFlags:                matchKeywords(text, redFlagKeywords),
		WordCount:               len(strings.Fields(text)),
		ContainsSpecificDetails: containsSpecificDetails(text),
	}
}

// matchKeywords returns the table entries found in text, in table order.
func matchKeywords(text string, table []string) []string {
	found := []string{}
	if text == "" {
		return found
	}
	for _, kw := range table {
		if strings.Contains(text, kw) {
			found = append(found, kw)
		}
	}
	return found
}

func containsSpecificDetails(text string) bool {
	for _, re := range specificDetailPatterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
