// Copyright Safing ICS Technologies GmbH. Use of this source code is governed by the AGPL license that can be found in the LICENSE file.

package hash

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/safing/portcrypt/registry"
)

// Hash is a digest tagged with its algorithm.
type Hash struct {
	Algorithm Algorithm
	Sum       []byte
}

// FromBytes parses a tagged digest as produced by Bytes.
func FromBytes(data []byte) (*Hash, error) {
	if len(data) < 1 {
		return nil, fmt.Errorf("%w: empty", ErrMalformed)
	}
	alg := Algorithm(data[0])
	if alg.Size() == 0 {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, data[0])
	}
	if len(data)-1 != alg.Size() {
		return nil, fmt.Errorf("%w: %s digest must be %d bytes, got %d", ErrMalformed, alg, alg.Size(), len(data)-1)
	}
	return &Hash{
		Algorithm: alg,
		Sum:       data[1:],
	}, nil
}

// Bytes returns the algorithm tag followed by the digest.
func (h *Hash) Bytes() []byte {
	return append([]byte{byte(h.Algorithm)}, h.Sum...)
}

// FromSafe64 parses a tagged digest encoded with Safe64.
func FromSafe64(s string) (*Hash, error) {
	data, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return FromBytes(data)
}

// Safe64 returns the tagged digest in unpadded URL safe base64.
func (h *Hash) Safe64() string {
	return base64.RawURLEncoding.EncodeToString(h.Bytes())
}

// FromHex parses a tagged digest encoded with Hex.
func FromHex(s string) (*Hash, error) {
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return FromBytes(data)
}

// Hex returns the tagged digest in hex.
func (h *Hash) Hex() string {
	return hex.EncodeToString(h.Bytes())
}

// Equal reports whether both hashes have the same algorithm and digest.
func (h *Hash) Equal(other *Hash) bool {
	if h.Algorithm != other.Algorithm {
		return false
	}
	return bytes.Equal(h.Sum, other.Sum)
}

// Sum hashes data.
func Sum(data []byte, alg Algorithm) *Hash {
	hasher := alg.New()
	_, _ = hasher.Write(data)
	return &Hash{
		Algorithm: alg,
		Sum:       hasher.Sum(nil),
	}
}

// SumString hashes a string.
func SumString(data string, alg Algorithm) *Hash {
	hasher := alg.New()
	_, _ = io.WriteString(hasher, data)
	return &Hash{
		Algorithm: alg,
		Sum:       hasher.Sum(nil),
	}
}

// SumReader hashes everything read from reader.
func SumReader(reader io.Reader, alg Algorithm) (*Hash, error) {
	hasher := alg.New()
	_, err := io.Copy(hasher, reader)
	if err != nil {
		return nil, err
	}
	return &Hash{
		Algorithm: alg,
		Sum:       hasher.Sum(nil),
	}, nil
}

// SumReaderWith hashes everything read from reader with the hash registered
// under name.
func SumReaderWith(reg *registry.Registry, name string, reader io.Reader) ([]byte, error) {
	alg, err := reg.Hash(name)
	if err != nil {
		return nil, fmt.Errorf("hash: %s: %w", name, err)
	}
	hasher := alg.New()
	if hasher == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, name)
	}
	if _, err := io.Copy(hasher, reader); err != nil {
		return nil, err
	}
	return hasher.Sum(nil), nil
}

// SumAndCompare hashes data with the algorithm of other and compares.
func SumAndCompare(data []byte, other Hash) (bool, *Hash) {
	newHash := Sum(data, other.Algorithm)
	return other.Equal(newHash), newHash
}

// SumReaderAndCompare hashes the reader with the algorithm of other and
// compares.
func SumReaderAndCompare(reader io.Reader, other Hash) (bool, *Hash, error) {
	newHash, err := SumReader(reader, other.Algorithm)
	if err != nil {
		return false, nil, err
	}
	return other.Equal(newHash), newHash, nil
}

// RecommendedAlg returns the weakest recommended algorithm that has at least
// the given security strength.
func RecommendedAlg(strengthInBits uint16) Algorithm {
	strengthInBytes := int(strengthInBits / 8)
	if strengthInBits%8 != 0 {
		strengthInBytes++
	}
	if strengthInBytes == 0 {
		strengthInBytes = 0xFF
	}
	chosenAlg := orderedByRecommendation[0]
	for _, alg := range orderedByRecommendation {
		strength := alg.SecurityStrength()
		if strength < strengthInBytes {
			break
		}
		chosenAlg = alg
		if strength == strengthInBytes {
			break
		}
	}
	return chosenAlg
}
