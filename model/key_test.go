package model

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		raw  string
		want Key
	}{
		{"42", NewIntKey(42)},
		{"-7", NewIntKey(-7)},
		{" 8 ", NewIntKey(8)},
		{"A1", NewStringKey("A1")},
		{"4.2", NewStringKey("4.2")},
		{"", NewStringKey("")},
		{" x", NewStringKey(" x")},
		{"99999999999999999999", NewStringKey("99999999999999999999")},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseKey(tt.raw))
		})
	}
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, "42", ParseKey("042").String())
	assert.Equal(t, "A1", ParseKey("A1").String())
}

func TestKeyCompare(t *testing.T) {
	keys := []Key{
		NewStringKey("b"), NewIntKey(10), NewStringKey("B"), NewIntKey(9), NewIntKey(-1), NewStringKey("10"),
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	assert.Equal(t, []Key{
		NewIntKey(-1), NewIntKey(9), NewIntKey(10), NewStringKey("10"), NewStringKey("B"), NewStringKey("b"),
	}, keys)

	assert.Zero(t, NewIntKey(3).Compare(ParseKey("3")))
	assert.NotEqual(t, NewIntKey(3), NewStringKey("3"))
}

func TestRow(t *testing.T) {
	var nilRow *Row
	assert.True(t, nilRow.IsEmpty())
	_, ok := nilRow.Get("x")
	assert.False(t, ok)

	r := &Row{Key: NewIntKey(1), Columns: map[string]string{"x": "1.000000"}}
	v, ok := r.Get("x")
	assert.True(t, ok)
	assert.Equal(t, "1.000000", v)
	assert.False(t, r.IsEmpty())
}
