package keyword

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestExtract_DedupKeepsFirstOccurrence(t *testing.T) {
	s := Extract("Contract contract breach breach damages", QueryLimit)
	want := []string{"contract", "breach", "damages"}
	if !reflect.DeepEqual(s.Words(), want) {
		t.Errorf("Words() = %v, want %v", s.Words(), want)
	}
}

func TestExtract_Deterministic(t *testing.T) {
	text := "What is the punishment for data breach under the IT Act in India?"
	a := Extract(text, QueryLimit)
	b := Extract(text, QueryLimit)
	if !reflect.DeepEqual(a.Words(), b.Words()) {
		t.Errorf("two extractions differ: %v vs %v", a.Words(), b.Words())
	}
}

func TestExtract_DropsStopWordsAndShortTokens(t *testing.T) {
	s := Extract("The law shall have been such that you were hereby into this", QueryLimit)
	if !s.IsEmpty() {
		t.Errorf("Words() = %v, want empty", s.Words())
	}
}

func TestExtract_Lowercases(t *testing.T) {
	s := Extract("CONTRACT Breach DAMAGES", QueryLimit)
	want := []string{"contract", "breach", "damages"}
	if !reflect.DeepEqual(s.Words(), want) {
		t.Errorf("Words() = %v, want %v", s.Words(), want)
	}
}

func TestExtract_SplitsOnNonLetters(t *testing.T) {
	s := Extract("section-43A penalty/compensation (unauthorised access)", QueryLimit)
	want := []string{"penalty", "compensation", "unauthorised", "access"}
	if !reflect.DeepEqual(s.Words(), want) {
		t.Errorf("Words() = %v, want %v", s.Words(), want)
	}
}

func TestExtract_RespectsLimit(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 50; i++ {
		fmt.Fprintf(&sb, "uniqueword%c ", 'a'+rune(i%26))
	}
	s := Extract(sb.String(), QueryLimit)
	if s.Len() > QueryLimit {
		t.Errorf("Len() = %d, want <= %d", s.Len(), QueryLimit)
	}

	s = Extract("alpha bravo charlie delta echoes foxtrot golfing", 3)
	want := []string{"alpha", "bravo", "charlie"}
	if !reflect.DeepEqual(s.Words(), want) {
		t.Errorf("Words() = %v, want %v", s.Words(), want)
	}
}

func TestExtract_EveryGuarantee(t *testing.T) {
	text := "The Digital Personal Data Protection Act 2023 regulates processing " +
		"of digital personal data and the obligations of data fiduciaries thereof."
	s := Extract(text, PageLimit)

	if s.Len() > PageLimit {
		t.Fatalf("Len() = %d, want <= %d", s.Len(), PageLimit)
	}
	seen := make(map[string]bool)
	for _, w := range s.Words() {
		if len(w) <= minTokenLength {
			t.Errorf("keyword %q too short", w)
		}
		if stopWords[w] {
			t.Errorf("keyword %q is a stop word", w)
		}
		if w != strings.ToLower(w) {
			t.Errorf("keyword %q not lowercase", w)
		}
		if seen[w] {
			t.Errorf("keyword %q duplicated", w)
		}
		seen[w] = true
	}
}

func TestExtract_ZeroLimit(t *testing.T) {
	if s := Extract("plenty of perfectly good words here", 0); !s.IsEmpty() {
		t.Errorf("Words() = %v, want empty", s.Words())
	}
}

func TestScore_CountsDistinctHits(t *testing.T) {
	s := Reconstruct([]string{"data", "protection", "penalty"})

	tests := []struct {
		name string
		text string
		want int
	}{
		{"all present", "Data Protection Act prescribes a penalty", 3},
		{"some present", "data processing obligations", 1},
		{"none present", "the companies act regulates firms", 0},
		{"repeats count once", "data data data data", 1},
		{"case insensitive", "DATA PROTECTION", 2},
		{"substring match", "metadata protections", 2},
		{"empty text", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Score(tt.text); got != tt.want {
				t.Errorf("Score(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestScore_EmptySet(t *testing.T) {
	if got := (Set{}).Score("any text at all"); got != 0 {
		t.Errorf("Score() = %d, want 0", got)
	}
}

func TestScore_BoundedBySetSize(t *testing.T) {
	s := Extract("negligence liability compensation damages tribunal", QueryLimit)
	text := strings.Repeat("negligence liability compensation damages tribunal ", 10)
	if got := s.Score(text); got != s.Len() {
		t.Errorf("Score() = %d, want %d", got, s.Len())
	}
}

func TestScore_GrowsWithMatchingKeywordsOnly(t *testing.T) {
	text := "penalty for unauthorised disclosure of personal data"

	base := Reconstruct([]string{"penalty"}).Score(text)

	withHit := Reconstruct([]string{"penalty", "disclosure"}).Score(text)
	if withHit < base {
		t.Errorf("adding a matching keyword lowered the score: %d < %d", withHit, base)
	}

	withMiss := Reconstruct([]string{"penalty", "arbitration"}).Score(text)
	if withMiss != base {
		t.Errorf("adding a non-matching keyword changed the score: %d != %d", withMiss, base)
	}
}
