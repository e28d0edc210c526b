package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeProvider struct {
	name  string
	reply string
	err   error
	calls int
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Complete(_ context.Context, _ string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func batch() []TextQuestion {
	return []TextQuestion{
		{ID: "q1", Prompt: "What does DNS do?", CorrectAnswer: "resolves names to addresses", UserAnswer: "it resolves names to addresses"},
		{ID: "q2", Prompt: "What is ARP?", CorrectAnswer: "address resolution protocol", UserAnswer: "no idea"},
	}
}

func TestGradeTextAnswersFirstProviderWins(t *testing.T) {
	first := &fakeProvider{name: "first", reply: `[{"correct":true,"feedback":"good"},{"correct":false}]`}
	second := &fakeProvider{name: "second", reply: `[{"correct":false},{"correct":false}]`}
	c := NewClient([]Provider{first, second})

	got := c.GradeTextAnswers(context.Background(), batch())
	if len(got) != 2 {
		t.Fatalf("expected 2 verdicts, got %d", len(got))
	}
	if !got[0].Correct || got[0].Feedback != "good" {
		t.Fatalf("unexpected first verdict: %+v", got[0])
	}
	if second.calls != 0 {
		t.Fatalf("second provider should not be tried, got %d calls", second.calls)
	}
}

func TestGradeTextAnswersCascades(t *testing.T) {
	down := &fakeProvider{name: "down", err: errors.New("503 service unavailable")}
	up := &fakeProvider{name: "up", reply: "```json\n[{\"correct\":true},{\"correct\":true}]\n```"}
	c := NewClient([]Provider{down, up})

	got := c.GradeTextAnswers(context.Background(), batch())
	if down.calls != 1 || up.calls != 1 {
		t.Fatalf("expected both providers tried, got %d/%d", down.calls, up.calls)
	}
	if !got[0].Correct || !got[1].Correct {
		t.Fatalf("expected fenced verdicts parsed: %+v", got)
	}
}

func TestGradeTextAnswersFallsBackOnGarbage(t *testing.T) {
	garbled := &fakeProvider{name: "garbled", reply: "Sure! The first answer looks right to me."}
	c := NewClient([]Provider{garbled})

	got := c.GradeTextAnswers(context.Background(), batch())
	// keyword fallback: q1 shares the correct answer's words, q2 does not
	if !got[0].Correct {
		t.Fatalf("q1 should pass keyword fallback")
	}
	if got[1].Correct {
		t.Fatalf("q2 should fail keyword fallback")
	}
}

func TestGradeTextAnswersFallsBackOnWrongLength(t *testing.T) {
	short := &fakeProvider{name: "short", reply: `[{"correct":true}]`}
	c := NewClient([]Provider{short})

	got := c.GradeTextAnswers(context.Background(), batch())
	if len(got) != 2 {
		t.Fatalf("fallback must still cover the whole batch, got %d", len(got))
	}
}

func TestGradeTextAnswersNoProviders(t *testing.T) {
	c := NewClient(nil)
	got := c.GradeTextAnswers(context.Background(), batch())
	if len(got) != 2 {
		t.Fatalf("expected keyword verdicts for the whole batch, got %d", len(got))
	}
	if !got[0].Correct || got[1].Correct {
		t.Fatalf("unexpected fallback verdicts: %+v", got)
	}
}

func TestGradeTextAnswersEmptyBatch(t *testing.T) {
	p := &fakeProvider{name: "p", reply: "[]"}
	c := NewClient([]Provider{p})
	if got := c.GradeTextAnswers(context.Background(), nil); got != nil {
		t.Fatalf("expected nil for empty batch, got %v", got)
	}
	if p.calls != 0 {
		t.Fatalf("empty batch must not hit a provider")
	}
}

func TestBuildPromptCoversBatch(t *testing.T) {
	p := buildPrompt(batch())
	for _, want := range []string{"Item 1", "Item 2", "What does DNS do?", "resolves names to addresses", "no idea", "JSON array of exactly 2"} {
		if !strings.Contains(p, want) {
			t.Fatalf("prompt missing %q:\n%s", want, p)
		}
	}
}

func TestNewProvidersDropsUnconfigured(t *testing.T) {
	ps := NewProviders([]ProviderConfig{
		{Name: "a", APIKey: "", Model: "m", Priority: 1},
		{Name: "b", APIKey: "changeme", Model: "m", Priority: 2},
		{Name: "c", APIKey: "sk-real", Model: "m", Priority: 3},
		{Name: "d", APIKey: "sk-real-too", Model: "m", Priority: 0},
	})
	if len(ps) != 2 {
		t.Fatalf("expected 2 configured providers, got %d", len(ps))
	}
	if ps[0].Name() != "d" || ps[1].Name() != "c" {
		t.Fatalf("expected priority order d,c; got %s,%s", ps[0].Name(), ps[1].Name())
	}
}
