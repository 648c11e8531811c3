// Package greeting pattern-matches the small fixed set of opener phrases that
// short-circuit the retrieval pipeline. Pure string analysis, no side effects.
package greeting

import (
	"regexp"
	"strings"
)

// The patterns anchor at the start of the utterance so that questions which
// merely mention a greeting word ("what does hello world mean?") still take
// the retrieval path.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`^(hi|hello|hey|good morning|good afternoon|good evening|greetings)(\s|$)`),
	regexp.MustCompile(`^(how are you|what's up|wassup|sup)(\?|\s|$)`),
	regexp.MustCompile(`^(hola|bonjour|hallo|ciao)(\s|$)`),
}

// IsGreeting reports whether the raw user utterance opens with a known
// greeting. Matching is case-insensitive and tolerant of surrounding
// whitespace.
func IsGreeting(utterance string) bool {
	normalized := strings.ToLower(strings.TrimSpace(utterance))
	for _, pattern := range patterns {
		if pattern.MatchString(normalized) {
			return true
		}
	}
	return false
}
