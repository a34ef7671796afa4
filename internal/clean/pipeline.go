package clean

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/tweetsift-cli/internal/dataset"
	"go.uber.org/zap"
)

// Stage names, in pipeline order.
const (
	StageDropColumns         = "drop-columns"
	StageDropUnlabeled       = "drop-unlabeled"
	StageStripPunctuation    = "strip-punctuation"
	StageLowercase           = "lowercase"
	StageNormalizeWhitespace = "normalize-whitespace"
	StageDropEmptyText       = "drop-empty-text"
)

// StageResult records the row counts around one pipeline stage.
type StageResult struct {
	Name       string `json:"name"`
	RowsBefore int    `json:"rows_before"`
	RowsAfter  int    `json:"rows_after"`
	Removed    int    `json:"removed"`
}

// Report summarizes a pipeline run.
type Report struct {
	Stages       []StageResult `json:"stages"`
	RowsIn       int           `json:"rows_in"`
	RowsOut      int           `json:"rows_out"`
	ColumnsIn    int           `json:"columns_in"`
	ColumnsOut   int           `json:"columns_out"`
	TotalRemoved int           `json:"total_removed"`
	Warnings     []string      `json:"warnings,omitempty"`
}

// Pipeline projects t onto the text and label columns, text first, then
// applies drop-unlabeled, strip-punctuation, lowercase, normalize-whitespace
// and drop-empty-text in that order. Later stages rely on the earlier ones,
// so the order is fixed.
func (c *Cleaner) Pipeline(t *dataset.Table, textField, labelField string) (*dataset.Table, *Report) {
	rep := &Report{RowsIn: t.Len(), ColumnsIn: len(t.Columns())}
	text := []string{textField}
	steps := []struct {
		name string
		run  func(*dataset.Table) *dataset.Table
	}{
		{StageDropColumns, func(t *dataset.Table) *dataset.Table { return c.KeepColumns(t, []string{textField, labelField}) }},
		{StageDropUnlabeled, func(t *dataset.Table) *dataset.Table { return c.DropUnlabeled(t, []string{labelField}) }},
		{StageStripPunctuation, func(t *dataset.Table) *dataset.Table { return c.StripPunctuation(t, text) }},
		{StageLowercase, func(t *dataset.Table) *dataset.Table { return c.ToLowercase(t, text) }},
		{StageNormalizeWhitespace, func(t *dataset.Table) *dataset.Table { return c.NormalizeWhitespace(t, text) }},
		{StageDropEmptyText, func(t *dataset.Table) *dataset.Table { return c.DropEmptyText(t, text) }},
	}

	cur := t
	warnBefore := len(c.Warnings())
	for _, s := range steps {
		before := cur.Len()
		cur = s.run(cur)
		res := StageResult{Name: s.name, RowsBefore: before, RowsAfter: cur.Len(), Removed: before - cur.Len()}
		rep.Stages = append(rep.Stages, res)
		c.log.Debug("clean stage", zap.String("stage", s.name), zap.Int("rows", res.RowsAfter), zap.Int("removed", res.Removed))
	}
	rep.RowsOut = cur.Len()
	rep.ColumnsOut = len(cur.Columns())
	rep.TotalRemoved = rep.RowsIn - rep.RowsOut
	rep.Warnings = c.Warnings()[warnBefore:]
	c.log.Info("cleaning completed", zap.Int("rows_in", rep.RowsIn), zap.Int("rows_out", rep.RowsOut), zap.Int("removed", rep.TotalRemoved))
	return cur, rep
}

// Stage returns the result for the named stage.
func (r *Report) Stage(name string) (StageResult, bool) {
	for _, s := range r.Stages {
		if s.Name == name {
			return s, true
		}
	}
	return StageResult{}, false
}

// Markdown renders the report in the same sectioned style as the dataset
// summaries.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[CLEANING]\n")
	for _, s := range r.Stages {
		b.WriteString(fmt.Sprintf("- %s: %d → %d (removed %d)\n", s.Name, s.RowsBefore, s.RowsAfter, s.Removed))
	}
	pct := 0.0
	if r.RowsIn > 0 {
		pct = float64(r.TotalRemoved) * 100.0 / float64(r.RowsIn)
	}
	b.WriteString(fmt.Sprintf("- columns: %d → %d\n", r.ColumnsIn, r.ColumnsOut))
	b.WriteString(fmt.Sprintf("- total: %d → %d rows (removed %d, %.1f%%)\n", r.RowsIn, r.RowsOut, r.TotalRemoved, pct))
	if len(r.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range r.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}
