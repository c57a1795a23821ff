package ciphers

import (
	"crypto/cipher"

	"golang.org/x/crypto/blowfish" //nolint:staticcheck // listed for compatibility only
	"golang.org/x/crypto/cast5"    //nolint:staticcheck // listed for compatibility only
	"golang.org/x/crypto/twofish"
	"golang.org/x/crypto/xtea"
)

// Some constructors return concrete types.

func newTwofish(key []byte) (cipher.Block, error) {
	return twofish.NewCipher(key)
}

func newBlowfish(key []byte) (cipher.Block, error) {
	return blowfish.NewCipher(key)
}

func newCAST5(key []byte) (cipher.Block, error) {
	return cast5.NewCipher(key)
}

func newXTEA(key []byte) (cipher.Block, error) {
	return xtea.NewCipher(key)
}
