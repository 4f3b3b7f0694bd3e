// Package strpool deduplicates byte sequences into a single append-only arena.
//
// Every interned sequence is stored once as a record of the form
//
//	hash:u32 | length:u32 | bytes
//
// and located through an open-addressed index keyed by the FNV-1a hash of the
// bytes. Records never move inside the arena; growing the index only rehashes
// it, so a Str handed out earlier keeps its offset for the life of the pool.
// A Pool is not safe for concurrent use.
package strpool

import (
	"bytes"
	"encoding/binary"
	"math"
	"math/bits"

	"github.com/ian-shakespeare/tstm/internal/report"
)

const headerSize = 8

const (
	DefaultArenaCapacity = 1024
	DefaultIndexCapacity = 1024
	DefaultMaxLoad       = 0.75
)

type Options struct {
	// ArenaCapacity is the initial arena size in bytes.
	ArenaCapacity uint32
	// IndexCapacity is rounded up to a power of two.
	IndexCapacity uint32
	// MaxLoad is the index load factor that triggers doubling.
	MaxLoad float32
}

func DefaultOptions() Options {
	return Options{
		ArenaCapacity: DefaultArenaCapacity,
		IndexCapacity: DefaultIndexCapacity,
		MaxLoad:       DefaultMaxLoad,
	}
}

type entry struct {
	hash   uint32
	offset uint32
	live   bool
}

type Pool struct {
	data    []byte
	used    uint32
	index   []entry
	length  uint32
	maxLoad float32
}

func New(opts Options) *Pool {
	if opts.ArenaCapacity == 0 {
		opts.ArenaCapacity = DefaultArenaCapacity
	}
	if opts.IndexCapacity == 0 {
		opts.IndexCapacity = DefaultIndexCapacity
	}
	if opts.MaxLoad <= 0 || opts.MaxLoad >= 1 {
		opts.MaxLoad = DefaultMaxLoad
	}

	return &Pool{
		data:    make([]byte, opts.ArenaCapacity),
		index:   make([]entry, roundPow2(opts.IndexCapacity)),
		maxLoad: opts.MaxLoad,
	}
}

// Intern returns the pooled copy of b, inserting it when it is not present.
// It fails with report.ErrAllocation when the arena would outgrow the 32-bit
// offset space; the pool is left unchanged in that case.
func (p *Pool) Intern(b []byte) (Str, error) {
	hash := Hash(b)
	slot, found := p.lookup(hash, b)
	if found {
		return p.view(p.index[slot].offset), nil
	}

	needed := uint64(headerSize) + uint64(len(b))
	if uint64(p.used)+needed > math.MaxUint32 {
		return Str{}, report.NewAllocationError("strpool arena", uint64(p.used)+needed)
	}

	if p.overloaded() {
		for p.overloaded() {
			if err := p.growIndex(); err != nil {
				return Str{}, err
			}
		}
		slot = p.probe(hash)
	}

	p.ensureSpace(uint32(needed))

	offset := p.used
	binary.LittleEndian.PutUint32(p.data[offset:], hash)
	binary.LittleEndian.PutUint32(p.data[offset+4:], uint32(len(b)))
	copy(p.data[offset+headerSize:], b)
	p.used += uint32(needed)

	p.index[slot] = entry{hash: hash, offset: offset, live: true}
	p.length++

	return p.view(offset), nil
}

func (p *Pool) InternString(s string) (Str, error) {
	return p.Intern([]byte(s))
}

// Find looks b up without inserting it.
func (p *Pool) Find(b []byte) (Str, bool) {
	slot, found := p.lookup(Hash(b), b)
	if !found {
		return Str{}, false
	}
	return p.view(p.index[slot].offset), true
}

// Reset forgets every record but keeps the arena and index allocations so the
// pool can be reused for the next compilation. Views handed out before the
// reset must not be used afterwards.
func (p *Pool) Reset() {
	p.used = 0
	p.length = 0
	clear(p.index)
}

// Len is the number of distinct sequences in the pool.
func (p *Pool) Len() int {
	return int(p.length)
}

type Stats struct {
	ArenaUsed     uint32
	ArenaCapacity uint32
	IndexLength   uint32
	IndexCapacity uint32
	Load          float32
}

func (p *Pool) Stats() Stats {
	return Stats{
		ArenaUsed:     p.used,
		ArenaCapacity: uint32(len(p.data)),
		IndexLength:   p.length,
		IndexCapacity: uint32(len(p.index)),
		Load:          float32(p.length) / float32(len(p.index)),
	}
}

// lookup returns the slot holding b, or the first free slot on its probe
// sequence when b is absent.
func (p *Pool) lookup(hash uint32, b []byte) (int, bool) {
	mask := uint32(len(p.index) - 1)
	slot := hash & mask
	first := slot

	for p.index[slot].live {
		e := p.index[slot]
		if e.hash == hash && bytes.Equal(p.record(e.offset), b) {
			return int(slot), true
		}

		slot = (slot + 1) & mask
		if slot == first {
			break
		}
	}

	return int(slot), false
}

// overloaded reports whether one more entry would push the index past its
// load limit.
func (p *Pool) overloaded() bool {
	return float32(p.length+1)/float32(len(p.index)) > p.maxLoad
}

func (p *Pool) probe(hash uint32) int {
	mask := uint32(len(p.index) - 1)
	slot := hash & mask
	for p.index[slot].live {
		slot = (slot + 1) & mask
	}
	return int(slot)
}

// growIndex doubles the index and reinserts every arena record using the
// hash stored in its header.
func (p *Pool) growIndex() error {
	if len(p.index) > math.MaxUint32/2 {
		return report.NewAllocationError("strpool index", uint64(len(p.index))*2)
	}

	p.index = make([]entry, len(p.index)*2)
	p.length = 0

	for offset := uint32(0); offset < p.used; {
		hash := binary.LittleEndian.Uint32(p.data[offset:])
		length := binary.LittleEndian.Uint32(p.data[offset+4:])

		p.index[p.probe(hash)] = entry{hash: hash, offset: offset, live: true}
		p.length++

		offset += headerSize + length
	}

	return nil
}

func (p *Pool) ensureSpace(needed uint32) {
	required := uint64(p.used) + uint64(needed)
	if required <= uint64(len(p.data)) {
		return
	}

	capacity := uint64(len(p.data))
	if capacity == 0 {
		capacity = DefaultArenaCapacity
	}
	for capacity < required {
		capacity *= 2
	}
	if capacity > math.MaxUint32 {
		capacity = math.MaxUint32
	}

	data := make([]byte, capacity)
	copy(data, p.data[:p.used])
	p.data = data
}

func (p *Pool) record(offset uint32) []byte {
	length := binary.LittleEndian.Uint32(p.data[offset+4:])
	start := offset + headerSize
	return p.data[start : start+length : start+length]
}

func (p *Pool) view(offset uint32) Str {
	return Str{data: p.record(offset), offset: offset, valid: true}
}

func roundPow2(n uint32) uint32 {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len32(n-1)
}
