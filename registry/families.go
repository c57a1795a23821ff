package registry

import (
	"crypto/cipher"
	"hash"
)

// Cipher describes a block cipher implementation.
type Cipher interface {
	// Name is the unique name the cipher is registered under.
	Name() string
	// ID is a small numeric identifier, unique among ciphers.
	ID() uint8
	// BlockSize returns the block size in bytes.
	BlockSize() int
	// MinKeySize and MaxKeySize return the supported key size range in bytes.
	MinKeySize() int
	MaxKeySize() int
	// DefaultRounds returns the number of rounds used by New.
	DefaultRounds() int
	// KeySize returns the largest supported key size that is not larger
	// than size.
	KeySize(size int) (int, error)
	// New sets up the key schedule for key.
	New(key []byte) (cipher.Block, error)
	// Test runs a self-test of the implementation.
	Test() error
}

// Hash describes a hash function implementation.
type Hash interface {
	Name() string
	ID() uint8
	// Size returns the digest size in bytes.
	Size() int
	// BlockSize returns the input block size in bytes.
	BlockSize() int
	// OID returns the ASN.1 object identifier arcs, if there are any.
	OID() []uint64
	// New returns a fresh hash state.
	New() hash.Hash
	Test() error
}

// PRNG describes a pseudo random number generator implementation.
type PRNG interface {
	Name() string
	// ExportSize returns the number of bytes produced by Generator.Export.
	ExportSize() int
	// Start returns a new, started generator instance.
	Start() (Generator, error)
	Test() error
}

// Generator is a running PRNG instance.
type Generator interface {
	// AddEntropy mixes data into the generator state.
	AddEntropy(data []byte) error
	// Ready makes the generator ready to be read from.
	Ready() error
	// Read fills p and returns the number of bytes produced. Any failure is
	// reported as 0.
	Read(p []byte) int
	// Done terminates the generator.
	Done() error
	// Export returns ExportSize bytes that can later be passed to Import.
	Export() ([]byte, error)
	// Import restarts the generator and mixes data into its state. The
	// output after Import is not determined by data alone: implementations
	// may mix in fresh entropy on restart.
	Import(data []byte) error
}
