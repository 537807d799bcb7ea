package tag

import "github.com/relexgen/tdfacore/internal/assertx"

// Handle is an opaque reference into a Pool's interned vectors.
type Handle int

// ZeroTags is the reserved handle for the all-Zero vector; every Pool
// has it preinterned at construction.
const ZeroTags Handle = 0

// Pool is a hash-consed store of tag-version vectors: equal vectors
// intern to equal handles, and insertion of an already-seen vector
// stores nothing new (only its lookup key is built). It also owns three scratch buffers used by the
// closure kernel for in-place tag computation; they are not safe to
// retain across kernel calls (spec.md S9 "Scratch buffers on TagPool").
type Pool struct {
	ntags   int
	vectors []Vector
	index   map[string]Handle

	buf1, buf2, buf3 Vector
}

// NewPool creates a pool for vectors of length ntags, with ZeroTags
// preinterned.
func NewPool(ntags int) *Pool {
	p := &Pool{
		ntags: ntags,
		index: make(map[string]Handle),
	}
	zero := make(Vector, ntags)
	p.vectors = append(p.vectors, zero)
	p.index[zero.key()] = ZeroTags

	p.buf1 = make(Vector, ntags)
	p.buf2 = make(Vector, ntags)
	p.buf3 = make(Vector, ntags)
	return p
}

// NTags returns the fixed vector length for this pool.
func (p *Pool) NTags() int {
	return p.ntags
}

// Insert interns v, returning its handle. Equal inputs return equal
// handles; the vector is copied on first insertion so the caller's
// scratch buffer can be reused afterward.
func (p *Pool) Insert(v Vector) Handle {
	assertx.True(len(v) == p.ntags, "tag: vector width %d != ntags %d", len(v), p.ntags)

	k := v.key()
	if h, ok := p.index[k]; ok {
		return h
	}
	stored := make(Vector, p.ntags)
	copy(stored, v)
	h := Handle(len(p.vectors))
	p.vectors = append(p.vectors, stored)
	p.index[k] = h
	return h
}

// Lookup returns a read-only view of the vector interned at h.
func (p *Pool) Lookup(h Handle) Vector {
	return p.vectors[h]
}

// Buffer1, Buffer2, Buffer3 return the pool's three scratch vectors,
// zeroed. Callers own them for the duration of one kernel call only.
func (p *Pool) Buffer1() Vector { return p.zeroed(p.buf1) }
func (p *Pool) Buffer2() Vector { return p.zeroed(p.buf2) }
func (p *Pool) Buffer3() Vector { return p.zeroed(p.buf3) }

func (p *Pool) zeroed(buf Vector) Vector {
	for i := range buf {
		buf[i] = Zero
	}
	return buf
}
