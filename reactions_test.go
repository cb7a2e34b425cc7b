package main

import (
	"errors"
	"testing"

	"github.com/google/go-github/v74/github"
)

func TestLookupReaction_Known(t *testing.T) {
	r, err := LookupReaction("HOORAY")
	if err != nil {
		t.Fatalf("LookupReaction failed: %v", err)
	}
	if r.Label != "🎉" {
		t.Errorf("Expected hooray glyph, got %q", r.Label)
	}
	if r.Icon == "" {
		t.Error("Expected an icon resource")
	}

	// REST spelling resolves to the same entry.
	rest, err := LookupReaction("+1")
	if err != nil {
		t.Fatalf("LookupReaction failed: %v", err)
	}
	if rest.Label != "👍" {
		t.Errorf("Expected thumbs up glyph, got %q", rest.Label)
	}
}

func TestLookupReaction_Unknown(t *testing.T) {
	_, err := LookupReaction("PARTY")
	var le *LookupError
	if !errors.As(err, &le) {
		t.Fatalf("Expected *LookupError, got %v", err)
	}
	if le.Content != "PARTY" {
		t.Errorf("Expected content PARTY, got %q", le.Content)
	}
}

func TestSummarizeReactions(t *testing.T) {
	out, err := summarizeReactions([]reactionCount{
		{Content: "THUMBS_UP", Count: 3, ViewerHasReacted: true},
		{Content: "EYES", Count: 0},
		{Content: "HEART", Count: 1},
	})
	if err != nil {
		t.Fatalf("summarizeReactions failed: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("Zero-count groups should be dropped, got %d entries", len(out))
	}
	if out[0].Label != "👍" || out[0].Count != 3 || !out[0].ViewerHasReacted {
		t.Errorf("Wrong first entry: %+v", out[0])
	}
	if out[1].Label != "❤️" || out[1].Count != 1 {
		t.Errorf("Wrong second entry: %+v", out[1])
	}
}

func TestSummarizeReactions_UnknownFailsEvenAtZero(t *testing.T) {
	_, err := summarizeReactions([]reactionCount{{Content: "PARTY", Count: 0}})
	var le *LookupError
	if !errors.As(err, &le) {
		t.Fatalf("Unknown content must fail loudly, got %v", err)
	}
}

func TestSummarizeRESTReactions(t *testing.T) {
	out := SummarizeRESTReactions(&github.Reactions{
		PlusOne: github.Ptr(2),
		Rocket:  github.Ptr(1),
	})
	if len(out) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(out))
	}
	if out[0].Label != "👍" || out[0].Count != 2 {
		t.Errorf("Wrong first entry: %+v", out[0])
	}
	if out[1].Label != "🚀" || out[1].Count != 1 {
		t.Errorf("Wrong second entry: %+v", out[1])
	}
	if SummarizeRESTReactions(nil) != nil {
		t.Error("Nil rollup should yield nil")
	}
}
