package llm

import (
	"errors"
	"strings"
)

var errNoJSONArray = errors.New("no json array in response")

// extractJSONArray strips an optional markdown code fence (```json ... ```)
// and returns the first JSON array in the text. Models wrap their output in
// fences often enough that this gets its own parsing step.
func extractJSONArray(content string) (string, error) {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```") {
		start := 3
		// skip the language identifier line, e.g. "json"
		if nl := strings.Index(content[start:], "\n"); nl != -1 {
			start += nl + 1
		}
		if end := strings.Index(content[start:], "```"); end != -1 {
			content = content[start : start+end]
		} else {
			content = content[start:]
		}
		content = strings.TrimSpace(content)
	}

	open := strings.Index(content, "[")
	close := strings.LastIndex(content, "]")
	if open == -1 || close <= open {
		return "", errNoJSONArray
	}
	return content[open : close+1], nil
}
