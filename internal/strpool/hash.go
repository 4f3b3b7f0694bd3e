package strpool

const (
	fnvOffset32 = 2166136261
	fnvPrime32  = 16777619
)

// Hash is the 32-bit FNV-1a hash of b.
func Hash(b []byte) uint32 {
	hash := uint32(fnvOffset32)
	for _, c := range b {
		hash ^= uint32(c)
		hash *= fnvPrime32
	}
	return hash
}
