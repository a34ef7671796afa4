package report

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/KaramelBytes/tweetsift-cli/internal/analysis"
	"github.com/KaramelBytes/tweetsift-cli/internal/dataset"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioStats() *analysis.Stats {
	words := []string{"love", "the"}
	longest := analysis.LongestTexts{
		dataset.Positive: {"I LOVE the Sun!!", "BIG NEWS today"},
		dataset.Negative: {"hi"},
	}
	return &analysis.Stats{
		Counts: &analysis.Counts{ByLabel: map[dataset.Label]int{dataset.Positive: 2, dataset.Negative: 1}, Total: 3},
		AverageLength: &analysis.AverageLengths{
			ByLabel:  map[dataset.Label]float64{dataset.Positive: 3.5, dataset.Negative: 1},
			Total:    8.0 / 3.0,
			HasTotal: true,
		},
		CommonWords: &words,
		Longest:     &longest,
		Uppercase: &analysis.UppercaseCounts{
			ByLabel: map[dataset.Label]int{dataset.Positive: 3, dataset.Negative: 0},
			Total:   3,
		},
	}
}

func defaultNames(t *testing.T) Names {
	t.Helper()
	n, err := NewNames(dataset.DefaultScheme(), "antisemitic", "non_antisemitic", "unspecified")
	require.NoError(t, err)
	return n
}

func TestFormatExactJSON(t *testing.T) {
	d := Format(scenarioStats(), dataset.DefaultScheme(), defaultNames(t))
	out, err := d.Marshal(4)
	require.NoError(t, err)

	want := `{
    "total_tweets": {
        "antisemitic": 2,
        "non_antisemitic": 1,
        "total": 3,
        "unspecified": 0
    },
    "average_length": {
        "antisemitic": 3.5,
        "non_antisemitic": 1.0,
        "total": 2.7
    },
    "common_words": {
        "total": [
            "love",
            "the"
        ]
    },
    "longest_3_tweets": {
        "antisemitic": [
            "I LOVE the Sun!!",
            "BIG NEWS today"
        ],
        "non_antisemitic": [
            "hi"
        ]
    },
    "uppercase_words": {
        "antisemitic": 3,
        "non_antisemitic": 0,
        "total": 3
    }
}
`
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("json mismatch (-want +got):\n%s", diff)
	}
}

func TestRawKeepsCodesAndPrecision(t *testing.T) {
	d := Raw(scenarioStats(), dataset.DefaultScheme())
	s, ok := d.Section(SectionTotalTweets)
	require.True(t, ok)
	assert.Equal(t, []string{"1", "0", "total", "unspecified"}, s.Keys())

	avg, ok := d.Section(SectionAverageLength)
	require.True(t, ok)
	v, _ := avg.Get(KeyTotal)
	assert.InDelta(t, 8.0/3.0, v, 1e-12)
}

func TestRenameIsIdempotent(t *testing.T) {
	names := defaultNames(t)
	once := Raw(scenarioStats(), dataset.DefaultScheme()).Rename(names)
	twice := once.Rename(names)

	a, err := once.Marshal(4)
	require.NoError(t, err)
	b, err := twice.Marshal(4)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))

	s, _ := twice.Section(SectionUppercase)
	assert.Equal(t, []string{"antisemitic", "non_antisemitic", "total"}, s.Keys())
}

func TestRenameLeavesInputUntouched(t *testing.T) {
	raw := Raw(scenarioStats(), dataset.DefaultScheme())
	_ = raw.Rename(defaultNames(t))
	s, _ := raw.Section(SectionTotalTweets)
	assert.Equal(t, "1", s.Entries[0].Key)
}

func TestConditionalKeys(t *testing.T) {
	tbl, err := dataset.FromStrings([]string{"Text", "Biased"}, [][]string{
		{"only positive rows", "1"},
		{"no label", ""},
	})
	require.NoError(t, err)
	e, err := analysis.NewExplorer(tbl, analysis.DefaultOptions())
	require.NoError(t, err)
	st, err := e.Run(context.Background(), analysis.MetricCounts, analysis.MetricLongest)
	require.NoError(t, err)

	d := Format(st, dataset.DefaultScheme(), defaultNames(t))
	assert.Equal(t, []string{SectionTotalTweets, SectionLongest}, d.Names())

	out, err := d.Marshal(4)
	require.NoError(t, err)
	var got map[string]map[string]any
	require.NoError(t, json.Unmarshal(out, &got))
	assert.NotContains(t, got[SectionLongest], "non_antisemitic")
	assert.NotContains(t, got[SectionTotalTweets], "non_antisemitic")
	assert.EqualValues(t, 1, got[SectionTotalTweets]["unspecified"])
}

func TestMarshalWritesTextLiterally(t *testing.T) {
	words := []string{"café", "tom&jerry"}
	d := Format(&analysis.Stats{CommonWords: &words}, dataset.DefaultScheme(), defaultNames(t))
	out, err := d.Marshal(4)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"café"`)
	assert.Contains(t, string(out), `"tom&jerry"`)
	assert.False(t, strings.Contains(string(out), `\u`))
}

func TestEmptyCommonWordsIsArray(t *testing.T) {
	var words []string
	d := Raw(&analysis.Stats{CommonWords: &words}, dataset.DefaultScheme())
	out, err := d.Marshal(2)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"total": []`)
}

func TestDecimal1(t *testing.T) {
	for in, want := range map[float64]string{12: "12.0", 3.14: "3.1", 0: "0.0"} {
		b, err := json.Marshal(Decimal1(in))
		require.NoError(t, err)
		assert.Equal(t, want, string(b))
	}
}

func TestFormatRoundsOnce(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{249.0 / 20.0, "12.4"},
		{0.15, "0.1"},
		{2.25, "2.2"},
		{3.35, "3.4"},
		{8.0 / 3.0, "2.7"},
	}
	for _, tc := range cases {
		st := &analysis.Stats{AverageLength: &analysis.AverageLengths{
			ByLabel: map[dataset.Label]float64{dataset.Positive: tc.in},
		}}
		s, _ := Format(st, dataset.DefaultScheme(), defaultNames(t)).Section(SectionAverageLength)
		v, ok := s.Get("antisemitic")
		require.True(t, ok)
		b, err := json.Marshal(v)
		require.NoError(t, err)
		assert.Equal(t, tc.want, string(b), "average %v", tc.in)
		assert.Equal(t, []string{"antisemitic"}, s.Keys(), "total omitted when not computed")
	}
}

func TestNewNamesRejects(t *testing.T) {
	scheme := dataset.DefaultScheme()
	cases := map[string][3]string{
		"empty":    {"", "neg", "unspecified"},
		"reserved": {"total", "neg", "unspecified"},
		"dup":      {"same", "same", "unspecified"},
		"chain":    {"0", "neg", "unspecified"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewNames(scheme, c[0], c[1], c[2])
			assert.True(t, dataset.IsConfigError(err), "got %v", err)
		})
	}
	_, err := NewNames(dataset.LabelScheme{Positive: "x", Negative: "x"}, "a", "b", "c")
	assert.True(t, dataset.IsConfigError(err))
}

func TestNamesLabels(t *testing.T) {
	got := defaultNames(t).Labels(dataset.DefaultScheme())
	assert.Equal(t, "antisemitic", got[dataset.Positive])
	assert.Equal(t, "unspecified", got[dataset.Missing])
}
