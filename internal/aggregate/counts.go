package aggregate

import (
	"bytes"
	"encoding/json"
	"slices"
	"strconv"
)

// LabelCount is one entry of a CategoryCount.
type LabelCount struct {
	Label string
	Count int
}

// CategoryCount is a label to count summary kept in rank order.
// It marshals to a JSON object whose keys appear in that order.
type CategoryCount []LabelCount

// Total returns the sum of all counts.
func (c CategoryCount) Total() int {
	total := 0
	for _, lc := range c {
		total += lc.Count
	}
	return total
}

// Get returns the count for label.
func (c CategoryCount) Get(label string) (int, bool) {
	for _, lc := range c {
		if lc.Label == label {
			return lc.Count, true
		}
	}
	return 0, false
}

// MarshalJSON renders the counts as an ordered JSON object.
func (c CategoryCount) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, lc := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(lc.Label)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(lc.Count))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// counter tallies labels, remembering the order each label was first seen.
type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(label string) {
	if _, seen := c.counts[label]; !seen {
		c.order = append(c.order, label)
	}
	c.counts[label]++
}

// ranked returns counts sorted descending; equal counts keep first-seen order.
func (c *counter) ranked() CategoryCount {
	out := make(CategoryCount, len(c.order))
	for i, label := range c.order {
		out[i] = LabelCount{Label: label, Count: c.counts[label]}
	}
	slices.SortStableFunc(out, func(a, b LabelCount) int {
		return b.Count - a.Count
	})
	return out
}
