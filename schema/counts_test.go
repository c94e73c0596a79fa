package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderedCountsMarshalKeepsOrder(t *testing.T) {
	o := NewOrderedCounts()
	o.Add("Brooklyn", 3)
	o.Add("Queens", 1)
	o.Add("Brooklyn", 2)

	data, err := json.Marshal(o)
	assert.NoError(t, err)
	assert.Equal(t, `{"Brooklyn":5,"Queens":1}`, string(data))
}

func TestOrderedCountsSortStableOnTies(t *testing.T) {
	o := NewOrderedCounts()
	o.Set("first", 2)
	o.Set("second", 2)
	o.Set("third", 5)

	o.SortByCountDesc()
	assert.Equal(t, []string{"third", "first", "second"}, o.Keys())
}

func TestOrderedCountsTruncate(t *testing.T) {
	o := NewOrderedCounts()
	o.Set("a", 3)
	o.Set("b", 2)
	o.Set("c", 1)

	o.Truncate(2)
	assert.Equal(t, 2, o.Len())
	_, ok := o.Get("c")
	assert.False(t, ok)

	// truncating beyond the length is a no-op
	o.Truncate(10)
	assert.Equal(t, 2, o.Len())
}

func TestOrderedCountsUnmarshalKeepsOrder(t *testing.T) {
	var o OrderedCounts
	err := json.Unmarshal([]byte(`{"z":1,"a":2,"m":3}`), &o)
	assert.NoError(t, err)
	assert.Equal(t, []string{"z", "a", "m"}, o.Keys())

	n, ok := o.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 2, n)
}

func TestOrderedMeansRoundTrip(t *testing.T) {
	o := NewOrderedMeans()
	o.Set("Unsafe Speed", 4.5)
	o.Set("Alcohol Involvement", 6.25)
	o.SortByValueDesc()

	data, err := json.Marshal(o)
	assert.NoError(t, err)
	assert.Equal(t, `{"Alcohol Involvement":6.25,"Unsafe Speed":4.5}`, string(data))

	var back OrderedMeans
	assert.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, o.Keys(), back.Keys())
	v, _ := back.Get("Unsafe Speed")
	assert.Equal(t, 4.5, v)
}

func TestHasFactor(t *testing.T) {
	assert.True(t, AccidentRecord{Factor: "Unsafe Speed"}.HasFactor())
	assert.False(t, AccidentRecord{Factor: ""}.HasFactor())
	assert.False(t, AccidentRecord{Factor: FactorUnspecified}.HasFactor())
}
