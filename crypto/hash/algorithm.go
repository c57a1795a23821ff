// Copyright Safing ICS Technologies GmbH. Use of this source code is governed by the AGPL license that can be found in the LICENSE file.

package hash

import (
	"crypto/md5"  //nolint:gosec // listed for compatibility only
	"crypto/sha1" //nolint:gosec // listed for compatibility only
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // listed for compatibility only
	"golang.org/x/crypto/sha3"

	"github.com/safing/portcrypt/registry"
)

// Algorithm is a hash algorithm. Every Algorithm is a registry.Hash.
type Algorithm uint8

// Algorithms.
const (
	SHA2_224 Algorithm = 1 + iota
	SHA2_256
	SHA2_512_224
	SHA2_512_256
	SHA2_384
	SHA2_512
	SHA3_224
	SHA3_256
	SHA3_384
	SHA3_512
	BLAKE2S_256
	BLAKE2B_256
	BLAKE2B_384
	BLAKE2B_512
	MD5
	SHA1
	RIPEMD160
)

type attributes struct {
	name string
	id   uint8

	// in bytes
	blockSize        int
	size             int
	securityStrength int

	oid []uint64
	fn  func() hash.Hash
}

var (
	nistHashOID   = []uint64{2, 16, 840, 1, 101, 3, 4, 2}
	blake2bOIDArc = []uint64{1, 3, 6, 1, 4, 1, 1722, 12, 2, 1}
	blake2sOIDArc = []uint64{1, 3, 6, 1, 4, 1, 1722, 12, 2, 2}

	algorithms = map[Algorithm]*attributes{
		SHA2_224:     {"SHA2-224", 10, 64, 28, 14, oid(nistHashOID, 4), sha256.New224},
		SHA2_256:     {"SHA2-256", 0, 64, 32, 16, oid(nistHashOID, 1), sha256.New},
		SHA2_512_224: {"SHA2-512/224", 15, 128, 28, 14, oid(nistHashOID, 5), sha512.New512_224},
		SHA2_512_256: {"SHA2-512/256", 16, 128, 32, 16, oid(nistHashOID, 6), sha512.New512_256},
		SHA2_384:     {"SHA2-384", 4, 128, 48, 24, oid(nistHashOID, 2), sha512.New384},
		SHA2_512:     {"SHA2-512", 5, 128, 64, 32, oid(nistHashOID, 3), sha512.New},
		SHA3_224:     {"SHA3-224", 17, 144, 28, 14, oid(nistHashOID, 7), sha3.New224},
		SHA3_256:     {"SHA3-256", 18, 136, 32, 16, oid(nistHashOID, 8), sha3.New256},
		SHA3_384:     {"SHA3-384", 19, 104, 48, 24, oid(nistHashOID, 9), sha3.New384},
		SHA3_512:     {"SHA3-512", 20, 72, 64, 32, oid(nistHashOID, 10), sha3.New512},
		BLAKE2S_256:  {"Blake2s-256", 24, 64, 32, 16, oid(blake2sOIDArc, 8), NewBlake2s256},
		BLAKE2B_256:  {"Blake2b-256", 26, 128, 32, 16, oid(blake2bOIDArc, 8), NewBlake2b256},
		BLAKE2B_384:  {"Blake2b-384", 27, 128, 48, 24, oid(blake2bOIDArc, 12), NewBlake2b384},
		BLAKE2B_512:  {"Blake2b-512", 28, 128, 64, 32, oid(blake2bOIDArc, 16), NewBlake2b512},
		// broken, only for interoperability
		MD5:       {"MD5", 3, 64, 16, 0, []uint64{1, 2, 840, 113549, 2, 5}, md5.New},
		SHA1:      {"SHA1", 2, 64, 20, 0, []uint64{1, 3, 14, 3, 2, 26}, sha1.New},
		RIPEMD160: {"RIPEMD-160", 9, 64, 20, 10, []uint64{1, 3, 36, 3, 2, 1}, ripemd160.New},
	}

	// just ordered by strength and establishment, no research conducted yet.
	orderedByRecommendation = []Algorithm{
		SHA3_512,     // {72, 64, 32}
		SHA2_512,     // {128, 64, 32}
		BLAKE2B_512,  // {128, 64, 32}
		SHA3_384,     // {104, 48, 24}
		SHA2_384,     // {128, 48, 24}
		BLAKE2B_384,  // {128, 48, 24}
		SHA3_256,     // {136, 32, 16}
		SHA2_512_256, // {128, 32, 16}
		SHA2_256,     // {64, 32, 16}
		BLAKE2B_256,  // {128, 32, 16}
		BLAKE2S_256,  // {64, 32, 16}
		SHA3_224,     // {144, 28, 14}
		SHA2_512_224, // {128, 28, 14}
		SHA2_224,     // {64, 28, 14}
	}
)

var _ registry.Hash = SHA2_256

func oid(arc []uint64, last uint64) []uint64 {
	return append(append(make([]uint64, 0, len(arc)+1), arc...), last)
}

// Algorithms returns all known algorithms, ordered by their value.
func Algorithms() []Algorithm {
	all := make([]Algorithm, 0, len(algorithms))
	for a := SHA2_224; a <= RIPEMD160; a++ {
		all = append(all, a)
	}
	return all
}

// BlockSize returns the block size in bytes.
func (a Algorithm) BlockSize() int {
	att, ok := algorithms[a]
	if !ok {
		return 0
	}
	return att.blockSize
}

// Size returns the digest size in bytes.
func (a Algorithm) Size() int {
	att, ok := algorithms[a]
	if !ok {
		return 0
	}
	return att.size
}

// SecurityStrength returns the collision resistance in bytes.
func (a Algorithm) SecurityStrength() int {
	att, ok := algorithms[a]
	if !ok {
		return 0
	}
	return att.securityStrength
}

// ID returns the registry ID of the algorithm.
func (a Algorithm) ID() uint8 {
	att, ok := algorithms[a]
	if !ok {
		return 0xFF
	}
	return att.id
}

// OID returns the ASN.1 object identifier arcs.
func (a Algorithm) OID() []uint64 {
	att, ok := algorithms[a]
	if !ok {
		return nil
	}
	return append([]uint64(nil), att.oid...)
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

// New returns a new hash state.
func (a Algorithm) New() hash.Hash {
	att, ok := algorithms[a]
	if !ok {
		return nil
	}
	return att.fn()
}

// FromName returns the algorithm with the given name.
func FromName(name string) (Algorithm, bool) {
	for alg, att := range algorithms {
		if att.name == name {
			return alg, true
		}
	}
	return 0, false
}
