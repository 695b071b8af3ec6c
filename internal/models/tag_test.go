// ABOUTME: Tests for tag normalization.
// ABOUTME: Covers trimming, hyphenation, case folding and deduplication.

package models

import (
	"reflect"
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func TestNormalizeTag(t *testing.T) {
	cases := map[string]string{
		"TestTag":          "testtag",
		"  My Tag  ":       "my-tag",
		"travel \t  plans": "travel-plans",
		"   ":              "",
	}
	for in, want := range cases {
		if got := NormalizeTag(in); got != want {
			t.Errorf("NormalizeTag(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{"Work ", "WORK", "  travel  plans"})
	want := []string{"work", "travel-plans"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestParseTagInput(t *testing.T) {
	got := ParseTagInput(" work, , personal ,travel plans,")
	want := []string{"work", "personal", "travel plans"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestNormalizeTagsProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		raw := rapid.SliceOf(rapid.StringMatching(`[ \tA-Za-z-]{0,12}`)).Draw(t, "tags")

		got := NormalizeTags(raw)

		seen := map[string]bool{}
		for _, tag := range got {
			if tag == "" {
				t.Fatal("empty tag kept")
			}
			if tag != strings.ToLower(tag) {
				t.Fatalf("tag %q not lowercase", tag)
			}
			if strings.ContainsAny(tag, " \t") {
				t.Fatalf("tag %q contains whitespace", tag)
			}
			if seen[tag] {
				t.Fatalf("duplicate tag %q", tag)
			}
			seen[tag] = true
		}
		if !reflect.DeepEqual(NormalizeTags(got), got) {
			t.Fatal("normalization is not idempotent")
		}
	})
}
