package command

import "github.com/cespare/xxhash/v2"

// Hash returns the 32-bit lookup key for a command name: the low half of the
// name's xxhash64. Distinct names can collide; the table keeps the original
// name to tell them apart.
func Hash(name string) uint32 {
	return uint32(xxhash.Sum64String(name))
}
