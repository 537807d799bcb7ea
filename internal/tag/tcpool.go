package tag

import (
	"strconv"
	"strings"
)

// SaveHandle is an opaque reference into a TcPool's interned Save
// records.
type SaveHandle int

// Save is the tag-commit instruction emitted for one DFA transition:
// "write the current input position into every slot in Cursor, and
// bottom (unset) into every slot in Bottom". Slots are addressed by the
// absolute value of the allocated tag version, not by tag index — two
// different tags that happen to fire on the same transition get two
// distinct slots because mergeTransitionTags gives each a distinct
// version (spec.md S4.2.6).
type Save struct {
	Cursor []int
	Bottom []int
}

func (s Save) key() string {
	var b strings.Builder
	b.WriteString("c:")
	for i, slot := range s.Cursor {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(slot))
	}
	b.WriteString("|b:")
	for i, slot := range s.Bottom {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(slot))
	}
	return b.String()
}

// TcPool hash-conses Save records the same way Pool hash-conses tag
// vectors, so two transitions with identical save instructions share a
// handle.
type TcPool struct {
	saves []Save
	index map[string]SaveHandle
}

// NewTcPool creates an empty commit pool.
func NewTcPool() *TcPool {
	return &TcPool{index: make(map[string]SaveHandle)}
}

// ConvToSave builds and interns the Save record for one transition from
// the per-tag cur/bot scratch vectors computed by mergeTransitionTags:
// cur[t] != Zero means tag t got a fresh cursor-origin version at
// abs(cur[t]); bot[t] != Zero means a fresh bottom-origin version at
// abs(bot[t]).
func (p *TcPool) ConvToSave(bot, cur Vector) SaveHandle {
	var s Save
	for t := range cur {
		if cur[t] != Zero {
			s.Cursor = append(s.Cursor, int(abs(cur[t])))
		}
	}
	for t := range bot {
		if bot[t] != Zero {
			s.Bottom = append(s.Bottom, int(abs(bot[t])))
		}
	}

	k := s.key()
	if h, ok := p.index[k]; ok {
		return h
	}
	h := SaveHandle(len(p.saves))
	p.saves = append(p.saves, s)
	p.index[k] = h
	return h
}

// Lookup returns the Save record interned at h.
func (p *TcPool) Lookup(h SaveHandle) Save {
	return p.saves[h]
}

func abs(v Version) Version {
	if v < 0 {
		return -v
	}
	return v
}
