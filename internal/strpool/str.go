package strpool

// Str is a read-only view of an interned sequence. Two views of the same
// record share an offset.
type Str struct {
	data   []byte
	offset uint32
	valid  bool
}

func (s Str) Bytes() []byte {
	return s.data
}

func (s Str) String() string {
	return string(s.data)
}

func (s Str) Len() int {
	return len(s.data)
}

// Offset is the position of the record header inside the arena.
func (s Str) Offset() uint32 {
	return s.offset
}

func (s Str) IsNil() bool {
	return !s.valid
}

// Same reports whether both views point at the same record.
func (s Str) Same(other Str) bool {
	return s.valid && other.valid && s.offset == other.offset
}
