// Copyright Safing ICS Technologies GmbH. Use of this source code is governed by the AGPL license that can be found in the LICENSE file.

package hash

import (
	"hash"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
)

// Unkeyed blake2 constructors never fail.

// NewBlake2s256 returns an unkeyed Blake2s-256 state.
func NewBlake2s256() hash.Hash {
	h, _ := blake2s.New256(nil)
	return h
}

// NewBlake2b256 returns an unkeyed Blake2b-256 state.
func NewBlake2b256() hash.Hash {
	h, _ := blake2b.New256(nil)
	return h
}

// NewBlake2b384 returns an unkeyed Blake2b-384 state.
func NewBlake2b384() hash.Hash {
	h, _ := blake2b.New384(nil)
	return h
}

// NewBlake2b512 returns an unkeyed Blake2b-512 state.
func NewBlake2b512() hash.Hash {
	h, _ := blake2b.New512(nil)
	return h
}
