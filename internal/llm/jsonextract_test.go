package llm

import "testing"

func TestExtractJSONArray(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"bare array", `[{"correct":true}]`, `[{"correct":true}]`, false},
		{"fenced with language", "```json\n[{\"correct\":false}]\n```", `[{"correct":false}]`, false},
		{"fenced without language", "```\n[1,2]\n```", `[1,2]`, false},
		{"unterminated fence", "```json\n[true]", `[true]`, false},
		{"prose around array", "Here you go:\n[{\"correct\":true}]\nHope that helps.", `[{"correct":true}]`, false},
		{"object only", `{"correct":true}`, "", true},
		{"empty", "", "", true},
		{"no json at all", "I cannot grade this.", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := extractJSONArray(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}
