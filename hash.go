package ohash

const (
	offset64 = 14695981039346656037
	prime64  = 1099511628211
)

// hashKey computes a 64-bit FNV-1a hash of the key
func hashKey(key string) uint64 {
	hash := uint64(offset64)
	for i := 0; i < len(key); i++ {
		hash ^= uint64(key[i])
		hash *= prime64
	}
	return hash
}

// index reduces the key's digest to a slot index for the given capacity.
// The result changes whenever capacity does, so resize must rehash.
func index(key string, capacity int) int {
	return int(hashKey(key) % uint64(capacity))
}
