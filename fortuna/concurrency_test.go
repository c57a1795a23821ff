package fortuna

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestConcurrentUse(t *testing.T) {
	t.Parallel()

	f := newReady(t, Config{ReseedEvery: 1})

	var group errgroup.Group
	for i := 0; i < 8; i++ {
		source := byte(i)
		group.Go(func() error {
			for j := 0; j < 200; j++ {
				if err := f.AddRandomEvent(source, j%f.Pools(), []byte{source, byte(j), 0xAA, 0x55}); err != nil {
					return err
				}
				if err := f.AddEntropy([]byte{byte(j)}); err != nil {
					return err
				}
			}
			return nil
		})
		group.Go(func() error {
			buf := make([]byte, 33)
			for j := 0; j < 200; j++ {
				if n := f.Read(buf); n != len(buf) {
					return fmt.Errorf("short read of %d bytes", n)
				}
			}
			return nil
		})
	}
	group.Go(func() error {
		for j := 0; j < 20; j++ {
			if _, err := f.Export(); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, group.Wait())

	read(t, f, 16)
	assert.Greater(t, f.ReseedCount(), uint64(1), "pool 0 must have triggered reseeds")
	require.NoError(t, f.Done())
}

func TestIndependentInstances(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t)

	var group errgroup.Group
	outputs := make([][]byte, 4)
	for i := range outputs {
		i := i
		group.Go(func() error {
			f, err := New(Config{Registry: reg})
			if err != nil {
				return err
			}
			if err := f.Start(); err != nil {
				return err
			}
			if err := f.AddEntropy([]byte{byte(i), 1, 2, 3}); err != nil {
				return err
			}
			if err := f.Ready(); err != nil {
				return err
			}
			outputs[i] = make([]byte, 32)
			if f.Read(outputs[i]) != 32 {
				return fmt.Errorf("short read")
			}
			return f.Done()
		})
	}
	require.NoError(t, group.Wait())

	for i := range outputs {
		for j := i + 1; j < len(outputs); j++ {
			assert.NotEqual(t, outputs[i], outputs[j])
		}
	}
}
