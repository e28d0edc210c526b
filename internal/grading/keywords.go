package grading

import "strings"

// keywordThreshold is the share of the correct answer's content words that
// must appear in the user's answer for the fallback to accept it.
const keywordThreshold = 0.7

// KeywordMatch is the approximate correctness check used when AI grading is
// unavailable: accept an exact match, or a user answer containing at least
// 70% of the correct answer's content words. A correct answer with a single
// content word passes only on exact match.
func KeywordMatch(userAnswer, correctAnswer string) bool {
	ua := normalize(userAnswer)
	ca := normalize(correctAnswer)
	if ua == "" {
		return false
	}
	if ua == ca {
		return true
	}
	words := contentWords(correctAnswer)
	if len(words) < 2 {
		return false
	}
	hits := 0
	for _, w := range words {
		if strings.Contains(ua, w) {
			hits++
		}
	}
	return float64(hits)/float64(len(words)) >= keywordThreshold
}
