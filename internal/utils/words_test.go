package utils_test

import (
	"testing"

	"github.com/KaramelBytes/tweetsift-cli/internal/utils"
)

func TestCountWords(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"   ", 0},
		{"hello world", 2},
		{"  tabs\tand\nnewlines  ", 3},
	}
	for _, c := range cases {
		if got := utils.CountWords(c.in); got != c.want {
			t.Errorf("CountWords(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestIsShouting(t *testing.T) {
	cases := map[string]bool{
		"LOVE":   true,
		"NEWS":   true,
		"I":      false,
		"Sun!!":  false,
		"ABC123": false,
		"MiXeD":  false,
		"ÉTÉ":    true,
		"שלום":   false, // uncased letters
		"":       false,
	}
	for in, want := range cases {
		if got := utils.IsShouting(in); got != want {
			t.Errorf("IsShouting(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestIsQualifying(t *testing.T) {
	cases := map[string]bool{
		"hi":    true,
		"a":     false,
		"abc1":  false,
		"don't": false,
		"café":  true,
	}
	for in, want := range cases {
		if got := utils.IsQualifying(in); got != want {
			t.Errorf("IsQualifying(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestStripPunctuationAndCollapse(t *testing.T) {
	got := utils.CollapseSpace(utils.Lower(utils.StripPunctuation("  Hello, WORLD!!  ")))
	if got != "hello world" {
		t.Fatalf("got %q", got)
	}
	if utils.StripPunctuation("«quoted» — dash") != "«quoted» — dash" {
		t.Fatalf("non-ASCII punctuation must be kept")
	}
}
