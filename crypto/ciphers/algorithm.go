package ciphers

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/des" //nolint:gosec // listed for compatibility only
	"fmt"

	"github.com/aead/serpent"
	"golang.org/x/crypto/tea"

	"github.com/safing/portcrypt/registry"
)

// Algorithm is a block cipher. Every Algorithm is a registry.Cipher.
type Algorithm uint8

// Algorithms.
const (
	AES Algorithm = 1 + iota
	Serpent
	Twofish
	Blowfish
	CAST5
	XTEA
	TEA
	DES
	TripleDES
)

type attributes struct {
	name      string
	id        uint8
	blockSize int
	// supported key sizes in bytes, ascending
	keySizes []int
	// any size between the first and the last key size is supported
	keyRange bool
	rounds   int
	fn       func(key []byte) (cipher.Block, error)
}

var algorithms = map[Algorithm]*attributes{
	AES:       {"aes", 6, 16, []int{16, 24, 32}, false, 10, aes.NewCipher},
	Serpent:   {"serpent", 25, 16, []int{16, 24, 32}, false, 32, serpent.NewCipher},
	Twofish:   {"twofish", 7, 16, []int{16, 24, 32}, false, 16, newTwofish},
	Blowfish:  {"blowfish", 0, 8, []int{8, 56}, true, 16, newBlowfish},
	CAST5:     {"cast5", 15, 8, []int{16}, false, 16, newCAST5},
	XTEA:      {"xtea", 1, 8, []int{16}, false, 32, newXTEA},
	TEA:       {"tea", 26, 8, []int{16}, false, 64, tea.NewCipher},
	DES:       {"des", 13, 8, []int{8}, false, 16, des.NewCipher},
	TripleDES: {"3des", 14, 8, []int{24}, false, 48, des.NewTripleDESCipher},
}

var _ registry.Cipher = AES

// Algorithms returns all known ciphers, ordered by their value.
func Algorithms() []Algorithm {
	all := make([]Algorithm, 0, len(algorithms))
	for a := AES; a <= TripleDES; a++ {
		all = append(all, a)
	}
	return all
}

// FromName returns the cipher with the given name.
func FromName(name string) (Algorithm, bool) {
	for alg, att := range algorithms {
		if att.name == name {
			return alg, true
		}
	}
	return 0, false
}

func (a Algorithm) String() string {
	return a.Name()
}

// Name returns the registry name.
func (a Algorithm) Name() string {
	att, ok := algorithms[a]
	if !ok {
		return ""
	}
	return att.name
}

// ID returns the registry ID.
func (a Algorithm) ID() uint8 {
	att, ok := algorithms[a]
	if !ok {
		return 0xFF
	}
	return att.id
}

// BlockSize returns the block size in bytes.
func (a Algorithm) BlockSize() int {
	att, ok := algorithms[a]
	if !ok {
		return 0
	}
	return att.blockSize
}

// MinKeySize returns the smallest supported key size in bytes.
func (a Algorithm) MinKeySize() int {
	att, ok := algorithms[a]
	if !ok {
		return 0
	}
	return att.keySizes[0]
}

// MaxKeySize returns the largest supported key size in bytes.
func (a Algorithm) MaxKeySize() int {
	att, ok := algorithms[a]
	if !ok {
		return 0
	}
	return att.keySizes[len(att.keySizes)-1]
}

// DefaultRounds returns the number of rounds of the implementation.
func (a Algorithm) DefaultRounds() int {
	att, ok := algorithms[a]
	if !ok {
		return 0
	}
	return att.rounds
}

// KeySize returns the largest supported key size that is not larger than
// size.
func (a Algorithm) KeySize(size int) (int, error) {
	att, ok := algorithms[a]
	if !ok {
		return 0, ErrUnknownAlgorithm
	}
	if size < att.keySizes[0] {
		return 0, fmt.Errorf("%w: %s needs at least %d bytes, got %d", ErrInvalidKeySize, att.name, att.keySizes[0], size)
	}
	if att.keyRange {
		return min(size, att.keySizes[len(att.keySizes)-1]), nil
	}
	chosen := att.keySizes[0]
	for _, supported := range att.keySizes {
		if supported <= size {
			chosen = supported
		}
	}
	return chosen, nil
}

// New sets up the key schedule.
func (a Algorithm) New(key []byte) (cipher.Block, error) {
	att, ok := algorithms[a]
	if !ok {
		return nil, ErrUnknownAlgorithm
	}
	if size, err := a.KeySize(len(key)); err != nil || size != len(key) {
		return nil, fmt.Errorf("%w: %s does not support %d byte keys", ErrInvalidKeySize, att.name, len(key))
	}
	block, err := att.fn(key)
	if err != nil {
		return nil, fmt.Errorf("ciphers: failed to set up %s: %w", att.name, err)
	}
	return block, nil
}
