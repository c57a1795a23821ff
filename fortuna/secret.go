package fortuna

// secret holds key material that must be zeroed after use.
type secret []byte

func newSecret(size int) secret {
	return make(secret, size)
}

func (s secret) wipe() {
	clear(s)
}
