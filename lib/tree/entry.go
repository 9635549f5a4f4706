package tree

import (
	"encoding/binary"
	"fmt"
	"math"
	"reflect"

	"github.com/cespare/xxhash/v2"

	"github.com/benz9527/xtree/lib/infra"
)

// Entry is a key/value pair ordered by key only.
// Equality and hashing look at both the key and the value, so two
// entries are the same entry no matter where they sit in a tree.
type Entry[K infra.OrderedKey, V comparable] struct {
	key K
	val V
}

func NewEntry[K infra.OrderedKey, V comparable](key K, val V) Entry[K, V] {
	return Entry[K, V]{
		key: key,
		val: val,
	}
}

func (e Entry[K, V]) Key() K {
	return e.key
}

func (e Entry[K, V]) Value() V {
	return e.val
}

// SetValue replaces the value and returns the previous one.
func (e *Entry[K, V]) SetValue(val V) V {
	old := e.val
	e.val = val
	return old
}

func (e Entry[K, V]) Compare(other KeyValue[K, V]) infra.Ordering {
	return infra.Compare(e.key, other.Key())
}

func (e Entry[K, V]) Equals(other KeyValue[K, V]) bool {
	return e.key == other.Key() && e.val == other.Value()
}

// Hash is consistent with Equals.
func (e Entry[K, V]) Hash() uint64 {
	d := xxhash.New()
	writeValue(d, reflect.ValueOf(e.key))
	_, _ = d.Write([]byte{0})
	writeValue(d, reflect.ValueOf(e.val))
	return d.Sum64()
}

func (e Entry[K, V]) String() string {
	return fmt.Sprintf("%v=%v", e.key, e.val)
}

// writeValue feeds rv into d so that values equal under == write the
// same bytes. Composites are walked element by element.
func writeValue(d *xxhash.Digest, rv reflect.Value) {
	var buf [binary.MaxVarintLen64]byte
	switch rv.Kind() {
	case reflect.Invalid:
		// nil interface
		_, _ = d.Write(buf[:1])
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		_, _ = d.Write(buf[:binary.PutVarint(buf[:], rv.Int())])
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		_, _ = d.Write(buf[:binary.PutUvarint(buf[:], rv.Uint())])
	case reflect.Float32, reflect.Float64:
		writeFloat(d, rv.Float())
	case reflect.Complex64, reflect.Complex128:
		c := rv.Complex()
		writeFloat(d, real(c))
		writeFloat(d, imag(c))
	case reflect.String:
		s := rv.String()
		_, _ = d.Write(buf[:binary.PutUvarint(buf[:], uint64(len(s)))])
		_, _ = d.WriteString(s)
	case reflect.Bool:
		if rv.Bool() {
			buf[0] = 1
		}
		_, _ = d.Write(buf[:1])
	case reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			writeValue(d, rv.Index(i))
		}
	case reflect.Struct:
		for i := 0; i < rv.NumField(); i++ {
			writeValue(d, rv.Field(i))
		}
	case reflect.Interface:
		writeValue(d, rv.Elem())
	case reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		// Identity, the same as ==.
		_, _ = d.Write(buf[:binary.PutUvarint(buf[:], uint64(rv.Pointer()))])
	default:
		_, _ = fmt.Fprintf(d, "%#v", rv)
	}
}

func writeFloat(d *xxhash.Digest, f float64) {
	if f == 0 {
		// -0 == +0
		f = 0
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
	_, _ = d.Write(buf[:])
}
