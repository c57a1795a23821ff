package fortuna

import (
	"bytes"
	"fmt"
)

// Test runs the self tests of the hash and the cipher and then exercises the
// lifecycle of a separate generator with the same config. The receiver is
// not modified.
func (f *Fortuna) Test() error {
	if err := f.hash.Test(); err != nil {
		return fmt.Errorf("fortuna: self test of %s failed: %w", f.hash.Name(), err)
	}
	if err := f.cipher.Test(); err != nil {
		return fmt.Errorf("fortuna: self test of %s failed: %w", f.cipher.Name(), err)
	}

	check, err := New(f.cfg)
	if err != nil {
		return err
	}
	if err := check.Start(); err != nil {
		return err
	}
	if check.Read(make([]byte, 16)) != 0 {
		return fmt.Errorf("fortuna: self test: output before ready")
	}
	for i := 0; i < check.Pools(); i++ {
		if err := check.AddRandomEvent(byte(i), i, []byte("fortuna self test event data....")); err != nil {
			return err
		}
	}
	if err := check.Ready(); err != nil {
		return err
	}

	a := make([]byte, 48)
	b := make([]byte, 48)
	if check.Read(a) != len(a) || check.Read(b) != len(b) {
		return fmt.Errorf("fortuna: self test: short read")
	}
	if bytes.Equal(a, b) {
		return fmt.Errorf("fortuna: self test: repeated output")
	}
	return check.Done()
}
