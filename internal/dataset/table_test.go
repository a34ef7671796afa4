package dataset

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(t *testing.T) *Table {
	t.Helper()
	tbl, err := FromStrings([]string{"Text", "Biased", "Username"}, [][]string{
		{"I LOVE the Sun!!", "1", "a"},
		{"hi", "0", "b"},
		{"BIG NEWS today", "1", ""},
		{"no label here", "", "d"},
	})
	require.NoError(t, err)
	return tbl
}

func TestNewRejectsBadShapes(t *testing.T) {
	_, err := New([]string{"a", "a"}, nil)
	assert.Error(t, err)
	_, err = New([]string{"a", " "}, nil)
	assert.Error(t, err)
	_, err = New([]string{"a", "b"}, [][]Cell{{Str("x")}})
	assert.Error(t, err)
}

func TestTransformsDoNotMutate(t *testing.T) {
	tbl := sample(t)

	lower, err := tbl.MapColumn("Text", func(c Cell) Cell { return Str("x") })
	require.NoError(t, err)
	filtered := tbl.Filter(func(i int) bool { return i%2 == 0 })
	dropped, absent := tbl.DropColumns("Username", "Nope")

	orig, _ := tbl.At(0, "Text")
	assert.Equal(t, "I LOVE the Sun!!", orig.Value)
	assert.Equal(t, 4, tbl.Len())
	assert.Equal(t, []string{"Text", "Biased", "Username"}, tbl.Columns())

	got, _ := lower.At(0, "Text")
	assert.Equal(t, "x", got.Value)
	assert.Equal(t, 2, filtered.Len())
	assert.Equal(t, []string{"Text", "Biased"}, dropped.Columns())
	assert.Equal(t, []string{"Nope"}, absent)
}

func TestSelectAndRecords(t *testing.T) {
	tbl := sample(t)
	sel, err := tbl.Select("Biased", "Text")
	require.NoError(t, err)
	recs := sel.Records()
	require.Len(t, recs, 5)
	assert.Equal(t, []string{"Biased", "Text"}, recs[0])
	assert.Equal(t, []string{"", "no label here"}, recs[4])

	_, err = tbl.Select("Text", "Text")
	assert.Error(t, err)
	_, err = tbl.Select("Missing")
	assert.Error(t, err)
}

func TestClassifyColumn(t *testing.T) {
	tbl := sample(t)
	labels, err := DefaultScheme().ClassifyColumn(tbl, "Biased")
	require.NoError(t, err)
	assert.Equal(t, []Label{Positive, Negative, Positive, Missing}, labels)
}

func TestClassifyNumericEquivalence(t *testing.T) {
	s := DefaultScheme()
	l, ok := s.Classify(Str(" 1.0 "))
	assert.True(t, ok)
	assert.Equal(t, Positive, l)
	l, ok = s.Classify(Str("0.0"))
	assert.True(t, ok)
	assert.Equal(t, Negative, l)
}

func TestClassifyUnknownIsConfigError(t *testing.T) {
	tbl, err := FromStrings([]string{"Text", "Biased"}, [][]string{{"a", "1"}, {"b", "maybe"}})
	require.NoError(t, err)
	_, err = DefaultScheme().ClassifyColumn(tbl, "Biased")
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
	assert.Contains(t, err.Error(), "row 2")

	_, err = DefaultScheme().ClassifyColumn(tbl, "Label")
	var ce *ConfigError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "Label", ce.Field)
}

func TestRequireColumns(t *testing.T) {
	tbl := sample(t)
	assert.NoError(t, RequireColumns(tbl, "Text", "Biased"))
	err := RequireColumns(tbl, "Text", "Tweet")
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}
