package analysis

import (
	"errors"
	"strings"
	"testing"

	"github.com/KaramelBytes/tweetsift-cli/internal/dataset"
)

func TestDescribeAndMarkdown(t *testing.T) {
	tbl, err := dataset.FromStrings([]string{"Username", "Text", "Biased"}, [][]string{
		{"alice", "I LOVE the Sun!!", "1"},
		{"bob", "hi there", "0"},
		{"alice", "BIG NEWS today", ""},
	})
	if err != nil {
		t.Fatal(err)
	}
	p, err := Describe("tweets.csv", tbl)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if p.Rows != 3 || len(p.Cols) != 3 {
		t.Fatalf("unexpected shape %d x %d", p.Rows, len(p.Cols))
	}
	label := p.Cols[2]
	if label.Missing != 1 || label.NonNull != 2 {
		t.Fatalf("label missing=%d non-null=%d", label.Missing, label.NonNull)
	}
	if label.Kind != "numeric" {
		t.Fatalf("label kind = %q, want numeric", label.Kind)
	}
	user := p.Cols[0]
	if user.Kind != "categorical" || user.Unique != 2 {
		t.Fatalf("username summary = %+v", user)
	}
	if len(user.TopValues) == 0 || user.TopValues[0].Value != "alice" || user.TopValues[0].Count != 2 {
		t.Fatalf("username top = %+v", user.TopValues)
	}

	md := p.Markdown()
	for _, want := range []string{
		"[DATASET SUMMARY]",
		"File: tweets.csv",
		"Shape: 3 rows × 3 columns",
		"[SCHEMA]",
		"- Biased: numeric (non-null 2, missing 1 (33.3%), unique 2)",
		"alice(2)",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestDescribeEmpty(t *testing.T) {
	tbl, _ := dataset.FromStrings([]string{"Text"}, nil)
	if _, err := Describe("x.csv", tbl); !errors.Is(err, dataset.ErrEmptyDataset) {
		t.Fatalf("expected ErrEmptyDataset, got %v", err)
	}
}

func TestStatsMarkdown(t *testing.T) {
	st := &Stats{
		Counts: &Counts{ByLabel: map[dataset.Label]int{dataset.Positive: 2, dataset.Negative: 1}, Total: 4, Missing: 1},
		Uppercase: &UppercaseCounts{
			ByLabel: map[dataset.Label]int{dataset.Positive: 3, dataset.Negative: 0},
			Total:   3,
		},
	}
	words := []string{"the", "sun"}
	st.CommonWords = &words
	md := st.Markdown(map[dataset.Label]string{
		dataset.Positive: "antisemitic",
		dataset.Negative: "non_antisemitic",
		dataset.Missing:  "unspecified",
	})
	for _, want := range []string{
		"- antisemitic: 2 (50.0%)",
		"- non_antisemitic: 1 (25.0%)",
		"- unspecified: 1 (25.0%)",
		"- total: 4",
		"[UPPERCASE WORDS]",
		"the, sun",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
	if strings.Contains(md, "[AVERAGE LENGTH]") {
		t.Fatalf("uncomputed metric rendered:\n%s", md)
	}
}
