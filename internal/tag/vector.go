package tag

import (
	"strconv"
	"strings"
)

// Vector is a fixed-length (ntags) sequence of tag versions. Vectors are
// value-equal; callers should go through Pool.Insert to get an interned
// handle rather than comparing vectors directly.
type Vector []Version

// key builds a canonical string key for interning, the same
// build-a-separated-string approach the teacher's TDFAGenerator.nfaSetKey
// uses to dedup NFA state sets (internal/compiler/tdfa.go).
func (v Vector) key() string {
	var b strings.Builder
	for i, ver := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(int(ver)))
	}
	return b.String()
}

func (v Vector) equal(other Vector) bool {
	if len(v) != len(other) {
		return false
	}
	for i := range v {
		if v[i] != other[i] {
			return false
		}
	}
	return true
}
