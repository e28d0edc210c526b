package grading

import (
	"regexp"
	"strings"
)

// Q is a minimal view of a question needed for deterministic matching.
// Keep this in sync with whatever fields your submission type uses.
type Q struct {
	Type          string
	Options       []string
	CorrectAnswer string
	UserAnswer    string
}

// Answers treated as "true" for true/false questions; anything else is false.
var truthy = map[string]bool{
	"true": true,
	"t":    true,
	"1":    true,
	"yes":  true,
}

// e.g. "a) DNS resolution", "B. Paris", "c: 42"
var letterPrefixRe = regexp.MustCompile(`^([a-f])[.):\s]+(.+)$`)

// Match returns the correctness verdict for deterministic question types
// (mcq, true-false). An empty user answer is always incorrect. Comparisons
// are case-insensitive and whitespace-trimmed.
func Match(q Q) bool {
	ua := fold(q.UserAnswer)
	if ua == "" {
		return false
	}
	ca := fold(q.CorrectAnswer)
	switch q.Type {
	case "true-false":
		return truthy[ua] == truthy[ca]
	case "mcq":
		return matchChoice(ua, ca, q.Options)
	}
	return false
}

// matchChoice checks the MCQ acceptance rules in precedence order. The order
// matters: a bare letter answer must resolve against the options list before
// any literal-text comparison can reject it.
func matchChoice(ua, ca string, options []string) bool {
	opts := make([]string, len(options))
	for i, o := range options {
		opts[i] = fold(o)
	}

	// 1. literal equality
	if ua == ca {
		return true
	}

	// 2. correct answer is a bare option letter (a-f)
	if i, ok := letterIndex(ca); ok && i < len(opts) {
		if ua == opts[i] {
			return true
		}
	}

	// 3. user answered with a bare option letter
	if i, ok := letterIndex(ua); ok && i < len(opts) {
		if opts[i] == ca {
			return true
		}
	}

	// 4. correct answer carries a letter prefix, e.g. "a) dns resolution"
	if m := letterPrefixRe.FindStringSubmatch(ca); m != nil {
		if ua == strings.TrimSpace(m[2]) {
			return true
		}
		if i, ok := letterIndex(m[1]); ok && i < len(opts) && ua == opts[i] {
			return true
		}
	}

	// 5. both answers name an option; compare positions
	if ui, ok := optionIndex(opts, ua); ok {
		if ci, ok := optionIndex(opts, ca); ok && ui == ci {
			return true
		}
	}

	// 6. fuzzy containment for longer answers
	if len(ca) > 3 && strings.Contains(ua, ca) {
		return true
	}
	if len(ua) > 3 && strings.Contains(ca, ua) {
		return true
	}
	return false
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func letterIndex(s string) (int, bool) {
	if len(s) != 1 || s[0] < 'a' || s[0] > 'f' {
		return 0, false
	}
	return int(s[0] - 'a'), true
}

func optionIndex(opts []string, s string) (int, bool) {
	for i, o := range opts {
		if o == s {
			return i, true
		}
	}
	return 0, false
}
