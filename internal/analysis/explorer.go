package analysis

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/KaramelBytes/tweetsift-cli/internal/dataset"
	"github.com/KaramelBytes/tweetsift-cli/internal/utils"
	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"
)

// Metric names a statistic of the bundle. The value is also its key in the
// results document.
type Metric string

const (
	MetricCounts        Metric = "total_tweets"
	MetricAverageLength Metric = "average_length"
	MetricCommonWords   Metric = "common_words"
	MetricLongest       Metric = "longest_3_tweets"
	MetricUppercase     Metric = "uppercase_words"
)

// AllMetrics lists every metric in document order.
var AllMetrics = []Metric{MetricCounts, MetricAverageLength, MetricCommonWords, MetricLongest, MetricUppercase}

// ParseMetrics validates metric names and removes duplicates. An empty list
// selects every metric.
func ParseMetrics(names []string) ([]Metric, error) {
	if len(names) == 0 {
		return AllMetrics, nil
	}
	known := make(map[Metric]bool, len(AllMetrics))
	for _, m := range AllMetrics {
		known[m] = true
	}
	seen := map[Metric]bool{}
	var out []Metric
	for _, n := range names {
		m := Metric(strings.ToLower(strings.TrimSpace(n)))
		if !known[m] {
			return nil, dataset.Configf("metrics", "unknown metric %q (use %s)", n, joinMetrics(AllMetrics))
		}
		if seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out, nil
}

func joinMetrics(ms []Metric) string {
	parts := make([]string, len(ms))
	for i, m := range ms {
		parts[i] = string(m)
	}
	return strings.Join(parts, "|")
}

// Options controls which columns the explorer reads and how many items the
// ranked statistics return.
type Options struct {
	TextColumn  string
	LabelColumn string
	Scheme      dataset.LabelScheme
	// CommonWordsTop is the number of common words returned.
	CommonWordsTop int
	// LongestTop is the number of longest texts kept per label.
	LongestTop int
}

// DefaultOptions returns the corpus defaults.
func DefaultOptions() Options {
	return Options{
		TextColumn:     "Text",
		LabelColumn:    "Biased",
		Scheme:         dataset.DefaultScheme(),
		CommonWordsTop: 10,
		LongestTop:     3,
	}
}

// Explorer computes descriptive statistics over a raw table. It only reads
// the table; derived values live in the explorer, never in the table.
type Explorer struct {
	opt    Options
	texts  []dataset.Cell
	labels []dataset.Label
}

// NewExplorer validates t against opt. It fails with dataset.ErrEmptyDataset
// for a table without rows and with a *dataset.ConfigError when a column is
// absent or a label value is not recognized.
func NewExplorer(t *dataset.Table, opt Options) (*Explorer, error) {
	if t == nil || t.Len() == 0 {
		return nil, dataset.ErrEmptyDataset
	}
	if err := dataset.RequireColumns(t, opt.TextColumn, opt.LabelColumn); err != nil {
		return nil, err
	}
	texts, err := t.Column(opt.TextColumn)
	if err != nil {
		return nil, err
	}
	labels, err := opt.Scheme.ClassifyColumn(t, opt.LabelColumn)
	if err != nil {
		return nil, err
	}
	return &Explorer{opt: opt, texts: texts, labels: labels}, nil
}

// Len returns the number of rows explored.
func (e *Explorer) Len() int { return len(e.labels) }

// Run computes the selected metrics concurrently. No metric depends on
// another, so the result equals a sequential computation.
func (e *Explorer) Run(ctx context.Context, metrics ...Metric) (*Stats, error) {
	if len(metrics) == 0 {
		metrics = AllMetrics
	}
	st := &Stats{}
	// resolve every metric before starting any goroutine
	var tasks []func()
	seen := map[Metric]bool{}
	for _, m := range metrics {
		if seen[m] {
			continue
		}
		seen[m] = true
		switch m {
		case MetricCounts:
			tasks = append(tasks, func() { c := e.CountCategories(); st.Counts = &c })
		case MetricAverageLength:
			tasks = append(tasks, func() { a := e.AverageWordLength(); st.AverageLength = &a })
		case MetricCommonWords:
			tasks = append(tasks, func() { w := e.CommonWords(e.opt.CommonWordsTop); st.CommonWords = &w })
		case MetricLongest:
			tasks = append(tasks, func() { l := e.LongestTexts(e.opt.LongestTop); st.Longest = &l })
		case MetricUppercase:
			tasks = append(tasks, func() { u := e.UppercaseWordCounts(); st.Uppercase = &u })
		default:
			return nil, dataset.Configf("metrics", "unknown metric %q", m)
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, task := range tasks {
		task := task
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			task()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("explore: %w", err)
	}
	return st, nil
}

// CountCategories counts rows per label. Missing labels are counted
// separately and never folded into a category.
func (e *Explorer) CountCategories() Counts {
	c := Counts{ByLabel: map[dataset.Label]int{}, Total: len(e.labels)}
	for _, l := range e.labels {
		if l == dataset.Missing {
			c.Missing++
			continue
		}
		c.ByLabel[l]++
	}
	return c
}

// AverageWordLength averages the word count per label and over all rows. A
// missing text counts as zero words. Labels without rows are absent.
func (e *Explorer) AverageWordLength() AverageLengths {
	per := map[dataset.Label][]float64{}
	all := make([]float64, 0, len(e.texts))
	for i, wc := range e.wordCounts() {
		x := float64(wc)
		all = append(all, x)
		if l := e.labels[i]; l != dataset.Missing {
			per[l] = append(per[l], x)
		}
	}
	out := AverageLengths{ByLabel: map[dataset.Label]float64{}}
	for l, xs := range per {
		if m, err := stats.Mean(xs); err == nil {
			out.ByLabel[l] = m
		}
	}
	if m, err := stats.Mean(all); err == nil {
		out.Total = m
		out.HasTotal = true
	}
	return out
}

// LongestTexts returns up to n texts per label with the most words, longest
// first. Ties keep row order. Rows with a missing label are excluded.
func (e *Explorer) LongestTexts(n int) LongestTexts {
	wc := e.wordCounts()
	out := LongestTexts{}
	for _, l := range dataset.Labels {
		var idx []int
		for i, li := range e.labels {
			if li == l {
				idx = append(idx, i)
			}
		}
		if len(idx) == 0 {
			continue
		}
		sort.SliceStable(idx, func(a, b int) bool { return wc[idx[a]] > wc[idx[b]] })
		if n >= 0 && len(idx) > n {
			idx = idx[:n]
		}
		texts := make([]string, len(idx))
		for k, i := range idx {
			texts[k] = e.texts[i].Value
		}
		out[l] = texts
	}
	return out
}

// CommonWords returns the n most frequent qualifying tokens across every
// present text after lowercasing and stripping punctuation. Ties keep the
// order in which tokens first appear.
func (e *Explorer) CommonWords(n int) []string {
	counts := map[string]int{}
	var order []string
	for _, c := range e.texts {
		if !c.Valid {
			continue
		}
		for _, w := range utils.Words(utils.StripPunctuation(utils.Lower(c.Value))) {
			if !utils.IsQualifying(w) {
				continue
			}
			if counts[w] == 0 {
				order = append(order, w)
			}
			counts[w]++
		}
	}
	sort.SliceStable(order, func(a, b int) bool { return counts[order[a]] > counts[order[b]] })
	if n < 0 {
		n = 0
	}
	if len(order) > n {
		order = order[:n]
	}
	return order
}

// UppercaseWordCounts sums shouting words per label and over all rows.
func (e *Explorer) UppercaseWordCounts() UppercaseCounts {
	out := UppercaseCounts{ByLabel: map[dataset.Label]int{}}
	for i, c := range e.texts {
		n := 0
		if c.Valid {
			n = utils.CountShouting(c.Value)
		}
		out.Total += n
		if l := e.labels[i]; l != dataset.Missing {
			out.ByLabel[l] += n
		}
	}
	return out
}

func (e *Explorer) wordCounts() []int {
	out := make([]int, len(e.texts))
	for i, c := range e.texts {
		if c.Valid {
			out[i] = utils.CountWords(c.Value)
		}
	}
	return out
}
