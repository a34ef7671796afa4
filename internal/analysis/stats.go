package analysis

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/tweetsift-cli/internal/dataset"
)

// Counts holds row counts per label.
type Counts struct {
	ByLabel map[dataset.Label]int
	Total   int
	Missing int
}

// AverageLengths holds mean word counts. Values keep full precision;
// rounding happens when the results document is built.
type AverageLengths struct {
	ByLabel  map[dataset.Label]float64
	Total    float64
	HasTotal bool
}

// LongestTexts maps each label with rows to its longest texts.
type LongestTexts map[dataset.Label][]string

// UppercaseCounts holds shouting-word totals.
type UppercaseCounts struct {
	ByLabel map[dataset.Label]int
	Total   int
}

// Stats is the statistics bundle. A nil field was not computed.
type Stats struct {
	Counts        *Counts
	AverageLength *AverageLengths
	CommonWords   *[]string
	Longest       *LongestTexts
	Uppercase     *UppercaseCounts
}

// Markdown renders a compact human summary. names maps labels to display
// names; Missing names the unspecified bucket.
func (s *Stats) Markdown(names map[dataset.Label]string) string {
	name := func(l dataset.Label) string {
		if n, ok := names[l]; ok && n != "" {
			return n
		}
		return l.String()
	}
	var b strings.Builder
	if c := s.Counts; c != nil {
		b.WriteString("[DISTRIBUTION]\n")
		for _, l := range dataset.Labels {
			n, ok := c.ByLabel[l]
			if !ok {
				continue
			}
			b.WriteString(fmt.Sprintf("- %s: %d (%.1f%%)\n", name(l), n, pct(n, c.Total)))
		}
		if c.Missing > 0 {
			b.WriteString(fmt.Sprintf("- %s: %d (%.1f%%)\n", name(dataset.Missing), c.Missing, pct(c.Missing, c.Total)))
		}
		b.WriteString(fmt.Sprintf("- total: %d\n", c.Total))
	}
	if a := s.AverageLength; a != nil {
		b.WriteString("\n[AVERAGE LENGTH]\n")
		for _, l := range dataset.Labels {
			if v, ok := a.ByLabel[l]; ok {
				b.WriteString(fmt.Sprintf("- %s: %.1f words\n", name(l), v))
			}
		}
		if a.HasTotal {
			b.WriteString(fmt.Sprintf("- overall: %.1f words\n", a.Total))
		}
	}
	if u := s.Uppercase; u != nil {
		b.WriteString("\n[UPPERCASE WORDS]\n")
		for _, l := range dataset.Labels {
			if v, ok := u.ByLabel[l]; ok {
				b.WriteString(fmt.Sprintf("- %s: %d\n", name(l), v))
			}
		}
		b.WriteString(fmt.Sprintf("- total: %d\n", u.Total))
	}
	if w := s.CommonWords; w != nil {
		b.WriteString("\n[COMMON WORDS]\n")
		b.WriteString(strings.Join(*w, ", "))
		b.WriteString("\n")
	}
	if lt := s.Longest; lt != nil {
		b.WriteString("\n[LONGEST TEXTS]\n")
		for _, l := range dataset.Labels {
			texts, ok := (*lt)[l]
			if !ok {
				continue
			}
			b.WriteString(fmt.Sprintf("- %s:\n", name(l)))
			for i, t := range texts {
				b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, preview(t, 100)))
			}
		}
	}
	return b.String()
}

func pct(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) * 100.0 / float64(total)
}

func preview(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) > max {
		return string(r[:max]) + "..."
	}
	return s
}
