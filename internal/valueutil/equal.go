package valueutil

import (
	"hash"
	"hash/fnv"
	"sort"
	"strconv"
)

// maxNodes caps how many nested values a single Equal or Hash call visits.
// Go values may share a map or slice many times over, so a tree within
// MaxDepth can still be exponentially large.
const maxNodes = 1 << 20

// Equal reports whether a and b are structurally equal JSON values.
// Numbers compare exactly, so integers beyond 2^53 stay distinct. Values
// nested deeper than MaxDepth, including self-referencing ones, are never
// equal.
func Equal(a, b any) bool {
	w := walk{budget: maxNodes}
	return w.equal(a, b, 0)
}

// Hash computes a structural hash of v consistent with Equal: equal values
// hash equally. Collisions are possible; confirm with Equal.
func Hash(v any) uint64 {
	h := fnv.New64a()
	w := walk{budget: maxNodes}
	w.write(h, v, 0)
	return h.Sum64()
}

type walk struct {
	budget int
}

func (w *walk) enter(depth int) bool {
	w.budget--
	return depth <= MaxDepth && w.budget >= 0
}

func (w *walk) equal(a, b any, depth int) bool {
	if !w.enter(depth) {
		return false
	}
	ka, kb := KindOf(a), KindOf(b)
	if ka.IsNumeric() && kb.IsNumeric() {
		return numbersEqual(a, b)
	}
	if ka != kb {
		return false
	}

	switch ka {
	case KindNull:
		return true
	case KindBoolean:
		return asBool(a) == asBool(b)
	case KindString:
		sa, _ := AsString(a)
		sb, _ := AsString(b)
		return sa == sb
	case KindArray:
		aa, _ := AsArray(a)
		ab, _ := AsArray(b)
		if len(aa) != len(ab) {
			return false
		}
		for i := range aa {
			if !w.equal(aa[i], ab[i], depth+1) {
				return false
			}
		}
		return true
	case KindObject:
		oa, _ := AsObject(a)
		ob, _ := AsObject(b)
		if len(oa) != len(ob) {
			return false
		}
		for k, va := range oa {
			vb, ok := ob[k]
			if !ok || !w.equal(va, vb, depth+1) {
				return false
			}
		}
		return true
	}
	return false
}

func numbersEqual(a, b any) bool {
	ra, fa, _ := AsNumber(a)
	rb, fb, _ := AsNumber(b)
	switch {
	case ra != nil && rb != nil:
		return ra.Cmp(rb) == 0
	case ra == nil && rb == nil:
		return fa == fb
	}
	return false
}

func (w *walk) write(h hash.Hash64, v any, depth int) {
	if !w.enter(depth) {
		writeString(h, "!;")
		return
	}
	k := KindOf(v)
	switch {
	case k == KindNull:
		writeString(h, "n;")
	case k == KindBoolean:
		if asBool(v) {
			writeString(h, "b1;")
		} else {
			writeString(h, "b0;")
		}
	case k.IsNumeric():
		// SetFloat64(-0) is zero, so -0 and 0 share a hash.
		r, f, _ := AsNumber(v)
		if r != nil {
			writeString(h, "d")
			writeString(h, r.RatString())
		} else {
			writeString(h, "f")
			writeString(h, strconv.FormatFloat(f, 'g', -1, 64))
		}
		writeString(h, ";")
	case k == KindString:
		s, _ := AsString(v)
		writeString(h, "s")
		writeString(h, strconv.Itoa(len(s)))
		writeString(h, ":")
		writeString(h, s)
	case k == KindArray:
		arr, _ := AsArray(v)
		writeString(h, "a")
		writeString(h, strconv.Itoa(len(arr)))
		writeString(h, "[")
		for _, item := range arr {
			w.write(h, item, depth+1)
		}
		writeString(h, "]")
	case k == KindObject:
		obj, _ := AsObject(v)
		keys := make([]string, 0, len(obj))
		for key := range obj {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		writeString(h, "o")
		writeString(h, strconv.Itoa(len(keys)))
		writeString(h, "{")
		for _, key := range keys {
			writeString(h, strconv.Itoa(len(key)))
			writeString(h, ":")
			writeString(h, key)
			w.write(h, obj[key], depth+1)
		}
		writeString(h, "}")
	default:
		writeString(h, "?;")
	}
}

func writeString(h hash.Hash64, s string) {
	_, _ = h.Write([]byte(s))
}
