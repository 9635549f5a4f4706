package infra

import "cmp"

type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Unsigned is a constraint that permits any unsigned integer type.
// If future releases of Go add new predeclared unsigned integer types,
// this constraint will be modified to include them.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Integer is a constraint that permits any integer type.
// If future releases of Go add new predeclared integer types,
// this constraint will be modified to include them.
type Integer interface {
	Signed | Unsigned
}

// Float is a constraint that permits any floating-point type.
// If future releases of Go add new predeclared floating-point types,
// this constraint will be modified to include them.
type Float interface {
	~float32 | ~float64
}

// OrderedKey
// byte => ~uint8
type OrderedKey interface {
	Integer | Float | ~string
}

// Ordering is the result of a three-way comparison.
type Ordering int8

const (
	Less Ordering = -1 + iota
	Equal
	Greater
)

func (o Ordering) String() string {
	switch o {
	case Less:
		return "less"
	case Equal:
		return "equal"
	case Greater:
		return "greater"
	default:
	}
	return "unknown"
}

// Reverse flips Less and Greater, used by descending trees.
func (o Ordering) Reverse() Ordering {
	return -o
}

// OrderedKeyComparator
// Assume i is the new key.
//  1. i == j, return Equal.
//  2. i > j, return Greater, turn to right part.
//  3. i < j, return Less, turn to left part.
type OrderedKeyComparator[K OrderedKey] func(i, j K) Ordering

// Compare is the natural key order. A NaN is less than any
// other float and equal to another NaN, so floats stay totally
// ordered inside a tree.
func Compare[K OrderedKey](i, j K) Ordering {
	return Ordering(cmp.Compare(i, j))
}
