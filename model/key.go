package model

import (
	"cmp"
	"strconv"
	"strings"
)

type KeyKind int

const (
	IntKey    KeyKind = 1
	StringKey KeyKind = 2
)

// Key is a group identifier: an integer when the raw value parses fully as one,
// otherwise the raw string. Key is comparable and used directly as a map key.
type Key struct {
	Kind KeyKind
	Int  int64
	Str  string
}

func NewIntKey(v int64) Key {
	return Key{Kind: IntKey, Int: v}
}

func NewStringKey(v string) Key {
	return Key{Kind: StringKey, Str: v}
}

// ParseKey applies the identifier normalization policy: integer if the trimmed
// raw value parses as a base 10 int64, the untouched raw string otherwise.
func ParseKey(raw string) Key {
	if v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); err == nil {
		return NewIntKey(v)
	}
	return NewStringKey(raw)
}

func (k Key) String() string {
	if k.Kind == IntKey {
		return strconv.FormatInt(k.Int, 10)
	}
	return k.Str
}

// Compare orders integer keys numerically and string keys by bytes.
// Across kinds every integer key sorts before every string key.
func (k Key) Compare(other Key) int {
	if k.Kind != other.Kind {
		return cmp.Compare(k.Kind, other.Kind)
	}
	if k.Kind == IntKey {
		return cmp.Compare(k.Int, other.Int)
	}
	return strings.Compare(k.Str, other.Str)
}

func (k Key) Less(other Key) bool {
	return k.Compare(other) < 0
}
