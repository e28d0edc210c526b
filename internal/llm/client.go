package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/prime-pentrix/tutor-core/internal/grading"
)

// ErrUnavailable is returned internally when no provider is configured.
var ErrUnavailable = errors.New("no grading provider available")

// TextQuestion is the free-text subset of a question a grading call needs.
type TextQuestion struct {
	ID            string
	Prompt        string
	CorrectAnswer string
	UserAnswer    string
}

// Verdict is one per-question grading outcome, aligned by position with the
// submitted batch.
type Verdict struct {
	Correct  bool   `json:"correct"`
	Feedback string `json:"feedback,omitempty"`
}

// Client grades free-text answers through a cascade of chat-completion
// providers, degrading to the keyword heuristic when the cascade fails.
type Client struct {
	providers []Provider
}

func NewClient(providers []Provider) *Client {
	return &Client{providers: providers}
}

// ProviderNames lists the configured cascade in attempt order.
func (c *Client) ProviderNames() []string {
	out := make([]string, 0, len(c.providers))
	for _, p := range c.providers {
		out = append(out, p.Name())
	}
	return out
}

// GradeTextAnswers grades the whole batch with one prompt against the first
// provider that returns a usable verdict array. It never fails: when the
// cascade is exhausted or unconfigured, every question falls back to
// grading.KeywordMatch. Caller cancellation does not abort the attempt; the
// per-provider timeout bounds each call instead, so the orchestrator always
// gets a best-effort result.
func (c *Client) GradeTextAnswers(ctx context.Context, qs []TextQuestion) []Verdict {
	if len(qs) == 0 {
		return nil
	}
	verdicts, err := c.tryProviders(context.WithoutCancel(ctx), qs)
	if err == nil {
		return verdicts
	}
	if !errors.Is(err, ErrUnavailable) {
		log.Printf("llm: cascade exhausted, using keyword fallback: %v", err)
	}
	out := make([]Verdict, len(qs))
	for i, q := range qs {
		out[i] = Verdict{Correct: grading.KeywordMatch(q.UserAnswer, q.CorrectAnswer)}
	}
	return out
}

func (c *Client) tryProviders(ctx context.Context, qs []TextQuestion) ([]Verdict, error) {
	if len(c.providers) == 0 {
		return nil, ErrUnavailable
	}
	prompt := buildPrompt(qs)
	var lastErr error
	for _, p := range c.providers {
		text, err := p.Complete(ctx, prompt)
		if err != nil {
			log.Printf("llm: provider %s failed: %v", p.Name(), err)
			lastErr = err
			continue
		}
		verdicts, err := parseVerdicts(text, len(qs))
		if err != nil {
			log.Printf("llm: provider %s returned unusable output: %v", p.Name(), err)
			lastErr = err
			continue
		}
		return verdicts, nil
	}
	return nil, lastErr
}

// buildPrompt covers the whole batch in one request so the provider grades
// the set with consistent context and we pay for a single round trip.
func buildPrompt(qs []TextQuestion) string {
	var b strings.Builder
	b.WriteString("You are grading short free-text quiz answers. Compare each student answer with the expected answer.\n")
	b.WriteString("Mark correct: semantically equivalent answers, and answers with minor typos or spelling mistakes.\n")
	b.WriteString("Mark incorrect: vague answers, answers missing the key concept, blank answers, and \"I don't know\". When in doubt, mark incorrect.\n\n")
	for i, q := range qs {
		fmt.Fprintf(&b, "Item %d:\n", i+1)
		if q.Prompt != "" {
			fmt.Fprintf(&b, "Question: %s\n", q.Prompt)
		}
		fmt.Fprintf(&b, "Expected answer: %s\n", q.CorrectAnswer)
		fmt.Fprintf(&b, "Student answer: %s\n\n", q.UserAnswer)
	}
	fmt.Fprintf(&b, "Respond with only a JSON array of exactly %d elements, one per item in the same order, shaped like:\n", len(qs))
	b.WriteString(`[{"correct": true, "feedback": "one short sentence for the student"}]`)
	return b.String()
}

// parseVerdicts decodes the provider output into a verdict per question.
// Anything that is not an array of the right length counts as a provider
// failure so the cascade can move on.
func parseVerdicts(text string, want int) ([]Verdict, error) {
	raw, err := extractJSONArray(text)
	if err != nil {
		return nil, err
	}
	var verdicts []Verdict
	if err := json.Unmarshal([]byte(raw), &verdicts); err != nil {
		return nil, fmt.Errorf("decode verdicts: %w", err)
	}
	if len(verdicts) != want {
		return nil, fmt.Errorf("got %d verdicts, want %d", len(verdicts), want)
	}
	return verdicts, nil
}
