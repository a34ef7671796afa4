// Package report builds the statistics document written to results.json.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/KaramelBytes/tweetsift-cli/internal/utils"
)

// Section names, in output order.
const (
	SectionTotalTweets   = "total_tweets"
	SectionAverageLength = "average_length"
	SectionCommonWords   = "common_words"
	SectionLongest       = "longest_3_tweets"
	SectionUppercase     = "uppercase_words"
)

// Reserved sub-keys that are not label codes.
const (
	KeyTotal       = "total"
	KeyUnspecified = "unspecified"
)

// Entry is one key/value pair of a section.
type Entry struct {
	Key   string
	Value any
}

// Section is an ordered JSON object.
type Section struct {
	Name    string
	Entries []Entry
}

// Get returns the value stored under key.
func (s Section) Get(key string) (any, bool) {
	for _, e := range s.Entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Keys returns the entry keys in order.
func (s Section) Keys() []string {
	out := make([]string, len(s.Entries))
	for i, e := range s.Entries {
		out[i] = e.Key
	}
	return out
}

// MarshalJSON writes the entries as an object, keeping their order.
func (s Section) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range s.Entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writePair(&buf, e.Key, e.Value); err != nil {
			return nil, fmt.Errorf("%s.%s: %w", s.Name, e.Key, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Document is the statistics document. Sections appear only for metrics
// that were computed.
type Document struct {
	Sections []Section
}

// Section returns the named section.
func (d *Document) Section(name string) (Section, bool) {
	for _, s := range d.Sections {
		if s.Name == name {
			return s, true
		}
	}
	return Section{}, false
}

// Names returns the section names in order.
func (d *Document) Names() []string {
	out := make([]string, len(d.Sections))
	for i, s := range d.Sections {
		out[i] = s.Name
	}
	return out
}

// MarshalJSON writes the sections as an object, keeping their order.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range d.Sections {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writePair(&buf, s.Name, s); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Marshal renders the document as indented JSON.
func (d *Document) Marshal(indent int) ([]byte, error) {
	return utils.PrettyJSON(d, indent)
}

// Rename returns a copy of d with every section key found in mapping
// replaced by its display name. Keys absent from mapping are kept, so
// renaming an already renamed document with names from NewNames changes
// nothing.
func (d *Document) Rename(mapping Names) *Document {
	out := &Document{Sections: make([]Section, len(d.Sections))}
	for i, s := range d.Sections {
		ns := Section{Name: s.Name, Entries: make([]Entry, len(s.Entries))}
		for j, e := range s.Entries {
			if to, ok := mapping[e.Key]; ok {
				e.Key = to
			}
			ns.Entries[j] = e
		}
		out.Sections[i] = ns
	}
	return out
}

// Decimal1 is a float written with exactly one decimal place, so 12 is
// written as 12.0.
type Decimal1 float64

func (d Decimal1) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(d), 'f', 1, 64)), nil
}

func writePair(buf *bytes.Buffer, key string, v any) error {
	k, err := encode(key)
	if err != nil {
		return err
	}
	val, err := encode(v)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(val)
	return nil
}

// encode marshals v without HTML escaping.
func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
