package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// OrderedCounts is a key -> count mapping with a stable, explicit iteration
// order. Chart consumers are order-sensitive, so it marshals to a JSON
// object whose keys appear in insertion (or sorted) order.
type OrderedCounts struct {
	keys   []string
	counts map[string]int
}

func NewOrderedCounts() *OrderedCounts {
	return &OrderedCounts{
		counts: map[string]int{},
	}
}

// Add increments the count for key, registering the key on first sight.
func (o *OrderedCounts) Add(key string, n int) {
	if _, ok := o.counts[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.counts[key] += n
}

// Set overwrites the count for key, registering the key on first sight.
func (o *OrderedCounts) Set(key string, n int) {
	if _, ok := o.counts[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.counts[key] = n
}

func (o *OrderedCounts) Get(key string) (int, bool) {
	n, ok := o.counts[key]
	return n, ok
}

func (o *OrderedCounts) Len() int {
	return len(o.keys)
}

// Keys returns the keys in iteration order. The returned slice is shared;
// callers must not modify it.
func (o *OrderedCounts) Keys() []string {
	return o.keys
}

// SortByCountDesc reorders keys by descending count. Ties keep their
// previous relative order, so counts built in record order break ties by
// first appearance.
func (o *OrderedCounts) SortByCountDesc() {
	sort.SliceStable(o.keys, func(i, j int) bool {
		return o.counts[o.keys[i]] > o.counts[o.keys[j]]
	})
}

// Truncate keeps only the first n keys in iteration order.
func (o *OrderedCounts) Truncate(n int) {
	if n < len(o.keys) {
		for _, key := range o.keys[n:] {
			delete(o.counts, key)
		}
		o.keys = o.keys[:n]
	}
}

func (o *OrderedCounts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		fmt.Fprintf(&buf, "%d", o.counts[key])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (o *OrderedCounts) UnmarshalJSON(data []byte) error {
	o.keys = nil
	o.counts = map[string]int{}

	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil { // opening brace
		return err
	}
	for dec.More() {
		t, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := t.(string)
		if !ok {
			return fmt.Errorf("unexpected token %v", t)
		}
		var n int
		if err := dec.Decode(&n); err != nil {
			return err
		}
		o.Set(key, n)
	}
	_, err := dec.Token() // closing brace
	return err
}

// OrderedMeans is OrderedCounts for float-valued breakdowns (for example
// mean severity per contributing factor).
type OrderedMeans struct {
	keys   []string
	values map[string]float64
}

func NewOrderedMeans() *OrderedMeans {
	return &OrderedMeans{
		values: map[string]float64{},
	}
}

func (o *OrderedMeans) Set(key string, v float64) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

func (o *OrderedMeans) Get(key string) (float64, bool) {
	v, ok := o.values[key]
	return v, ok
}

func (o *OrderedMeans) Len() int {
	return len(o.keys)
}

func (o *OrderedMeans) Keys() []string {
	return o.keys
}

func (o *OrderedMeans) SortByValueDesc() {
	sort.SliceStable(o.keys, func(i, j int) bool {
		return o.values[o.keys[i]] > o.values[o.keys[j]]
	})
}

func (o *OrderedMeans) Truncate(n int) {
	if n < len(o.keys) {
		for _, key := range o.keys[n:] {
			delete(o.values, key)
		}
		o.keys = o.keys[:n]
	}
}

func (o *OrderedMeans) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(o.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (o *OrderedMeans) UnmarshalJSON(data []byte) error {
	o.keys = nil
	o.values = map[string]float64{}

	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return err
	}
	for dec.More() {
		t, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := t.(string)
		if !ok {
			return fmt.Errorf("unexpected token %v", t)
		}
		var v float64
		if err := dec.Decode(&v); err != nil {
			return err
		}
		o.Set(key, v)
	}
	_, err := dec.Token()
	return err
}
