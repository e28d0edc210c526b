package grading

import "testing"

func TestKeywordMatch(t *testing.T) {
	cases := []struct {
		name    string
		user    string
		correct string
		want    bool
	}{
		{"identical", "a denial of service attack", "a denial of service attack", true},
		{"identical modulo case and punctuation", "Denial-of-Service attack!", "denial of service attack", true},
		{"enough keywords present", "it floods the target server with traffic", "floods the target with traffic", true},
		{"too few keywords", "something about networks", "floods the target server with excess traffic", false},
		{"single word requires exact", "tcpdump", "tcp", false},
		{"single word exact passes", "tcp", "TCP", true},
		{"empty user answer", "", "transport layer security", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := KeywordMatch(tc.user, tc.correct); got != tc.want {
				t.Fatalf("KeywordMatch(%q, %q) = %v, want %v", tc.user, tc.correct, got, tc.want)
			}
		})
	}
}

// Four distinct keyword-bearing words with fewer than 70% present must not
// match.
func TestKeywordMatchThreshold(t *testing.T) {
	correct := "encryption handshake certificate authority"
	user := "the encryption handshake happens first" // 2 of 4 keywords
	if KeywordMatch(user, correct) {
		t.Fatalf("50%% keyword overlap should not match")
	}
	user = "encryption handshake with a certificate from the authority" // 4 of 4
	if !KeywordMatch(user, correct) {
		t.Fatalf("full keyword overlap should match")
	}
}

func TestContentWords(t *testing.T) {
	got := contentWords("The TCP, the TCP and an IP!")
	want := []string{"the", "tcp", "and"}
	if len(got) != len(want) {
		t.Fatalf("contentWords = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("contentWords = %v, want %v", got, want)
		}
	}
}
