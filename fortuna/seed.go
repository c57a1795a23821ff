package fortuna

// ExportSize is the size of an exported seed.
const ExportSize = KeySize

// Export returns the generator key for storage in a seed file. The key in
// use is replaced afterwards, so the exported key never produces output of
// this generator.
func (f *Fortuna) Export() ([]byte, error) {
	out := make([]byte, ExportSize)
	if _, err := f.ExportTo(out); err != nil {
		return nil, err
	}
	return out, nil
}

// ExportTo writes the generator key to out and returns the number of bytes
// written.
func (f *Fortuna) ExportTo(out []byte) (int, error) {
	if len(out) < ExportSize {
		return 0, ErrBufferTooSmall
	}

	f.lock.Lock()
	defer f.lock.Unlock()

	if !f.started() {
		return 0, ErrNotStarted
	}

	copy(out, f.key[:])
	if err := f.ratchet(); err != nil {
		clear(out[:ExportSize])
		return 0, err
	}
	return ExportSize, nil
}

// Import restarts the generator and mixes the seed into the fresh key.
// Ready must be called afterwards.
func (f *Fortuna) Import(seed []byte) error {
	if len(seed) < ExportSize {
		return ErrSeedTooShort
	}

	f.lock.Lock()
	defer f.lock.Unlock()

	if err := f.start(); err != nil {
		return err
	}
	return f.mix(seed)
}

// UpdateSeed mixes data into the key of a running generator.
func (f *Fortuna) UpdateSeed(data []byte) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	if !f.started() {
		return ErrNotStarted
	}
	return f.mix(data)
}

// mix sets key = H(key || data).
func (f *Fortuna) mix(data []byte) error {
	next := newSecret(f.hash.Size())
	defer next.wipe()

	md := f.hash.New()
	_, _ = md.Write(f.key[:])
	_, _ = md.Write(data)
	copy(f.key[:], md.Sum(next[:0]))

	if err := f.rekey(); err != nil {
		return err
	}
	f.incrementCounter()
	return nil
}
