package registry

import (
	"slices"
)

// Family names.
const (
	FamilyCipher = "cipher"
	FamilyHash   = "hash"
	FamilyPRNG   = "prng"
)

// Registry bundles the descriptor tables of all families.
type Registry struct {
	Ciphers *Table[Cipher]
	Hashes  *Table[Hash]
	PRNGs   *Table[PRNG]
}

// Default is the process wide registry.
var Default = New()

// New returns a registry with empty tables.
func New() *Registry {
	return &Registry{
		Ciphers: NewTable[Cipher](FamilyCipher),
		Hashes:  NewTable[Hash](FamilyHash),
		PRNGs:   NewTable[PRNG](FamilyPRNG),
	}
}

// Reset empties all tables.
func (r *Registry) Reset() {
	r.Ciphers.Reset()
	r.Hashes.Reset()
	r.PRNGs.Reset()
}

// Cipher returns the cipher registered under name.
func (r *Registry) Cipher(name string) (Cipher, error) {
	_, c, err := r.Ciphers.Lookup(name)
	return c, err
}

// Hash returns the hash registered under name.
func (r *Registry) Hash(name string) (Hash, error) {
	_, h, err := r.Hashes.Lookup(name)
	return h, err
}

// PRNG returns the PRNG registered under name.
func (r *Registry) PRNG(name string) (PRNG, error) {
	_, p, err := r.PRNGs.Lookup(name)
	return p, err
}

// FindCipherAny finds a cipher by name. If there is none, it returns the
// first cipher with the given block size that accepts keys of keySize bytes.
func (r *Registry) FindCipherAny(name string, blockSize, keySize int) (int, error) {
	if name != "" {
		idx, err := r.Ciphers.Find(name)
		if err == nil {
			return idx, nil
		}
	}

	idx, _, err := r.Ciphers.FindFunc(func(c Cipher) bool {
		return c.BlockSize() == blockSize && keySize <= c.MaxKeySize()
	})
	return idx, err
}

// FindCipherID finds a cipher by its numeric ID.
func (r *Registry) FindCipherID(id uint8) (int, error) {
	idx, _, err := r.Ciphers.FindFunc(func(c Cipher) bool {
		return c.ID() == id
	})
	return idx, err
}

// FindHashAny finds a hash by name. If there is none, it returns the hash
// with the smallest digest that is at least digestSize bytes long.
func (r *Registry) FindHashAny(name string, digestSize int) (int, error) {
	if name != "" {
		idx, err := r.Hashes.Find(name)
		if err == nil {
			return idx, nil
		}
	}

	best, bestSize := -1, 0
	for _, entry := range r.Hashes.Entries() {
		size := entry.Descriptor.Size()
		if size >= digestSize && (best < 0 || size < bestSize) {
			best, bestSize = entry.Index, size
		}
	}
	if best < 0 {
		return -1, ErrNotFound
	}
	return best, nil
}

// FindHashID finds a hash by its numeric ID.
func (r *Registry) FindHashID(id uint8) (int, error) {
	idx, _, err := r.Hashes.FindFunc(func(h Hash) bool {
		return h.ID() == id
	})
	return idx, err
}

// FindHashOID finds a hash by its ASN.1 object identifier.
func (r *Registry) FindHashOID(oid []uint64) (int, error) {
	if len(oid) == 0 {
		return -1, ErrInvalidArgument
	}
	idx, _, err := r.Hashes.FindFunc(func(h Hash) bool {
		return slices.Equal(h.OID(), oid)
	})
	return idx, err
}
