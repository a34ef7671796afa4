package report

import (
	"strings"

	"github.com/KaramelBytes/tweetsift-cli/internal/analysis"
	"github.com/KaramelBytes/tweetsift-cli/internal/dataset"
)

// Names maps raw document keys to display names.
type Names map[string]string

// NewNames builds the display mapping for scheme. Display names must be
// non-empty and distinct, must not be "total", and must not collide with a
// raw key they do not rename; otherwise renaming could chain.
func NewNames(scheme dataset.LabelScheme, positive, negative, unspecified string) (Names, error) {
	if scheme.Positive == scheme.Negative {
		return nil, dataset.Configf("positive_label", "positive and negative codes are both %q", scheme.Positive)
	}
	n := Names{
		scheme.Positive: strings.TrimSpace(positive),
		scheme.Negative: strings.TrimSpace(negative),
		KeyUnspecified:  strings.TrimSpace(unspecified),
	}
	seen := map[string]string{}
	for raw, display := range n {
		field := fieldFor(scheme, raw)
		if display == "" {
			return nil, dataset.Configf(field, "display name for %q is empty", raw)
		}
		if display == KeyTotal {
			return nil, dataset.Configf(field, "display name %q is reserved", display)
		}
		if prev, dup := seen[display]; dup {
			return nil, dataset.Configf(field, "display name %q is used for both %q and %q", display, prev, raw)
		}
		seen[display] = raw
		if _, isRaw := n[display]; isRaw && display != raw {
			return nil, dataset.Configf(field, "display name %q is itself a raw key", display)
		}
	}
	return n, nil
}

// Labels maps labels to their display names, with Missing as the
// unspecified bucket.
func (n Names) Labels(scheme dataset.LabelScheme) map[dataset.Label]string {
	return map[dataset.Label]string{
		dataset.Positive: n.display(scheme.Positive),
		dataset.Negative: n.display(scheme.Negative),
		dataset.Missing:  n.display(KeyUnspecified),
	}
}

func (n Names) display(raw string) string {
	if d, ok := n[raw]; ok {
		return d
	}
	return raw
}

func fieldFor(scheme dataset.LabelScheme, raw string) string {
	switch raw {
	case scheme.Positive:
		return "positive_name"
	case scheme.Negative:
		return "negative_name"
	}
	return "unspecified_name"
}

// Raw builds the document keyed by raw label codes. Averages keep full
// precision.
func Raw(st *analysis.Stats, scheme dataset.LabelScheme) *Document {
	d := &Document{}
	if c := st.Counts; c != nil {
		s := Section{Name: SectionTotalTweets}
		for _, l := range dataset.Labels {
			if n, ok := c.ByLabel[l]; ok {
				s.Entries = append(s.Entries, Entry{scheme.Raw(l), n})
			}
		}
		s.Entries = append(s.Entries, Entry{KeyTotal, c.Total}, Entry{KeyUnspecified, c.Missing})
		d.Sections = append(d.Sections, s)
	}
	if a := st.AverageLength; a != nil {
		s := Section{Name: SectionAverageLength}
		for _, l := range dataset.Labels {
			if v, ok := a.ByLabel[l]; ok {
				s.Entries = append(s.Entries, Entry{scheme.Raw(l), v})
			}
		}
		if a.HasTotal {
			s.Entries = append(s.Entries, Entry{KeyTotal, a.Total})
		}
		d.Sections = append(d.Sections, s)
	}
	if w := st.CommonWords; w != nil {
		words := append([]string{}, (*w)...)
		d.Sections = append(d.Sections, Section{Name: SectionCommonWords, Entries: []Entry{{KeyTotal, words}}})
	}
	if lt := st.Longest; lt != nil {
		s := Section{Name: SectionLongest}
		for _, l := range dataset.Labels {
			if texts, ok := (*lt)[l]; ok {
				s.Entries = append(s.Entries, Entry{scheme.Raw(l), append([]string{}, texts...)})
			}
		}
		d.Sections = append(d.Sections, s)
	}
	if u := st.Uppercase; u != nil {
		s := Section{Name: SectionUppercase}
		for _, l := range dataset.Labels {
			if n, ok := u.ByLabel[l]; ok {
				s.Entries = append(s.Entries, Entry{scheme.Raw(l), n})
			}
		}
		s.Entries = append(s.Entries, Entry{KeyTotal, u.Total})
		d.Sections = append(d.Sections, s)
	}
	return d
}

// Format builds the display document: Raw, then Rename, then averages
// written with one decimal place. The values keep full precision until
// they are written, so rounding happens once, on the exact float.
func Format(st *analysis.Stats, scheme dataset.LabelScheme, names Names) *Document {
	d := Raw(st, scheme).Rename(names)
	for i, s := range d.Sections {
		if s.Name != SectionAverageLength {
			continue
		}
		for j, e := range s.Entries {
			if v, ok := e.Value.(float64); ok {
				d.Sections[i].Entries[j].Value = Decimal1(v)
			}
		}
	}
	return d
}
