// Package aggregate derives count summaries from the survey dataset.
//
// All operations are pure reads over an immutable dataset.Dataset and may be
// called from any number of goroutines.
package aggregate

import (
	"bytes"
	"cmp"
	"encoding/json"
	"slices"
	"strconv"
	"strings"

	"github.com/listenupapp/attendance-insights/internal/dataset"
	"github.com/listenupapp/attendance-insights/internal/normalize"
)

// DefaultDelimiter separates answers in multi-select survey fields.
const DefaultDelimiter = ";"

// nanLiteral is how some exports spell a blank multi-select answer.
const nanLiteral = "nan"

// Aggregator computes summaries over a dataset.
type Aggregator struct {
	ds *dataset.Dataset
}

// New creates an aggregator over ds.
func New(ds *dataset.Dataset) *Aggregator {
	return &Aggregator{ds: ds}
}

// Dataset returns the underlying dataset.
func (a *Aggregator) Dataset() *dataset.Dataset {
	return a.ds
}

// ValueCounts counts each distinct value of field across all records.
// Missing values are counted under the empty label, so the counts always sum
// to the number of records. Results are ranked by count, ties in first-seen order.
func (a *Aggregator) ValueCounts(field string) (CategoryCount, error) {
	cells, err := a.ds.Values(field)
	if err != nil {
		return nil, err
	}

	c := newCounter()
	for _, cell := range cells {
		c.add(cell.Text())
	}
	return c.ranked(), nil
}

// GroupRow is one group of a GroupCount result.
type GroupRow struct {
	FieldA string
	FieldB string
	A      string
	B      string
	Count  int
}

// MarshalJSON renders the row as {fieldA: A, fieldB: B, "count": Count}.
func (r GroupRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, kv := range [][2]string{{r.FieldA, r.A}, {r.FieldB, r.B}} {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(kv[0])
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(kv[1])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteString(`,"count":`)
	buf.WriteString(strconv.Itoa(r.Count))
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// GroupCount counts records per (fieldA, fieldB) value pair. Records with a
// missing value in either field are grouped under the empty label. Rows are
// ordered by A then B.
func (a *Aggregator) GroupCount(fieldA, fieldB string) ([]GroupRow, error) {
	colA, err := a.ds.Values(fieldA)
	if err != nil {
		return nil, err
	}
	colB, err := a.ds.Values(fieldB)
	if err != nil {
		return nil, err
	}

	type key struct{ a, b string }
	counts := make(map[key]int)
	for i := range colA {
		counts[key{colA[i].Text(), colB[i].Text()}]++
	}

	rows := make([]GroupRow, 0, len(counts))
	for k, n := range counts {
		rows = append(rows, GroupRow{FieldA: fieldA, FieldB: fieldB, A: k.a, B: k.b, Count: n})
	}
	slices.SortFunc(rows, func(x, y GroupRow) int {
		return cmp.Or(strings.Compare(x.A, y.A), strings.Compare(x.B, y.B))
	})
	return rows, nil
}

// SplitMultiValue flattens a multi-select field into individual answers.
// Records whose value is missing, empty or "nan" are skipped. Every other value
// is split on delimiter and each piece is trimmed; empty pieces are dropped.
// An empty delimiter means DefaultDelimiter.
func (a *Aggregator) SplitMultiValue(field, delimiter string) ([]string, error) {
	cells, err := a.ds.Values(field)
	if err != nil {
		return nil, err
	}
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}

	var tokens []string
	for _, cell := range cells {
		if cell.Missing {
			continue
		}
		raw := normalize.Text(cell.Value)
		if raw == "" || raw == nanLiteral {
			continue
		}
		for _, part := range strings.Split(raw, delimiter) {
			if tok := normalize.Text(part); tok != "" {
				tokens = append(tokens, tok)
			}
		}
	}
	return tokens, nil
}

// TopN counts tokens and returns the n most common, highest first. Equal
// counts keep the order in which each token first appeared. n <= 0 yields an
// empty result.
func TopN(tokens []string, n int) CategoryCount {
	if n <= 0 {
		return CategoryCount{}
	}

	c := newCounter()
	for _, tok := range tokens {
		c.add(tok)
	}
	ranked := c.ranked()
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
