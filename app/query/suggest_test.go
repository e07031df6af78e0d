package query

import (
	"testing"
)

func TestSuggest_ReturnsMostSimilarFirst(t *testing.T) {
	vocabulary := []string{"Athletics", "Academic", "Arts"}

	suggestions := Suggest("Acadmic", vocabulary, 3)
	if len(suggestions) == 0 {
		t.Fatal("Expected suggestions")
	}
	if suggestions[0] != "Academic" {
		t.Errorf("Expected 'Academic' first, got %v", suggestions)
	}
}

func TestSuggest_CapsAtLimit(t *testing.T) {
	vocabulary := []string{"Sport", "Sports", "Sporting", "Sported", "Sporty"}

	suggestions := Suggest("sport", vocabulary, 3)
	if len(suggestions) > 3 {
		t.Errorf("Expected at most 3 suggestions, got %d", len(suggestions))
	}
}

func TestSuggest_NoneBelowSimilarityFloor(t *testing.T) {
	vocabulary := []string{"Academic", "Social"}

	suggestions := Suggest("zzzzzzzz", vocabulary, 3)
	if len(suggestions) != 0 {
		t.Errorf("Expected no suggestions below the floor, got %v", suggestions)
	}
}

func TestSuggest_EmptyQuery(t *testing.T) {
	if got := Suggest("", []string{"Academic"}, 3); got != nil {
		t.Errorf("Expected nil for empty query, got %v", got)
	}
}

func TestSuggest_CaseInsensitive(t *testing.T) {
	suggestions := Suggest("ACADEMIC", []string{"Academic"}, 3)
	if len(suggestions) != 1 || suggestions[0] != "Academic" {
		t.Errorf("Expected case-insensitive exact hit, got %v", suggestions)
	}
}

func TestSimilarity_Bounds(t *testing.T) {
	if got := similarity("abc", "abc"); got != 1 {
		t.Errorf("Expected 1 for equal strings, got %f", got)
	}
	if got := similarity("abc", "xyz"); got != 0 {
		t.Errorf("Expected 0 for a full rewrite, got %f", got)
	}
	if got := similarity("", ""); got != 1 {
		t.Errorf("Expected 1 for two empty strings, got %f", got)
	}
}
