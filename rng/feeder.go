package rng

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"

	"github.com/tevino/abool"
)

// Entropy sources, used as the source byte of Fortuna events.
const (
	SourceOS byte = iota
	SourceTick
	SourceHost
	SourceExternal
)

var (
	rngFeeder = make(chan *feed)

	sourceNames = map[byte]string{
		SourceOS:       "os",
		SourceTick:     "tick",
		SourceHost:     "host",
		SourceExternal: "external",
	}
)

type feed struct {
	source byte
	data   []byte
}

// The Feeder is used to feed entropy to the RNG.
type Feeder struct {
	source       byte
	input        chan *entropyData
	entropy      int64
	needsEntropy *abool.AtomicBool
	buffer       *bytes.Buffer
}

type entropyData struct {
	data    []byte
	entropy int
}

// NewFeeder returns a new entropy Feeder. Collected entropy is fed to the RNG
// as events of the given source.
func NewFeeder(source byte) *Feeder {
	newFeeder := &Feeder{
		source:       source,
		input:        make(chan *entropyData),
		needsEntropy: abool.NewBool(true),
		buffer:       new(bytes.Buffer),
	}
	module.StartWorker(fmt.Sprintf("feeder %s", sourceName(source)), newFeeder.run)
	return newFeeder
}

// NeedsEntropy returns whether the feeder is currently gathering entropy.
func (f *Feeder) NeedsEntropy() bool {
	return f.needsEntropy.IsSet()
}

// SupplyEntropy supplies entropy to the Feeder, it will block until the Feeder
// has read from it or the module is stopping.
func (f *Feeder) SupplyEntropy(data []byte, entropy int) {
	select {
	case f.input <- &entropyData{
		data:    data,
		entropy: entropy,
	}:
	case <-module.Stopping():
	}
}

// SupplyEntropyIfNeeded supplies entropy to the Feeder, but will not block if
// no entropy is currently needed.
func (f *Feeder) SupplyEntropyIfNeeded(data []byte, entropy int) {
	if !f.needsEntropy.IsSet() {
		return
	}

	select {
	case f.input <- &entropyData{
		data:    data,
		entropy: entropy,
	}:
	default:
	}
}

// SupplyEntropyAsInt supplies entropy to the Feeder, it will block until the
// Feeder has read from it.
func (f *Feeder) SupplyEntropyAsInt(n int64, entropy int) {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, uint64(n))
	f.SupplyEntropy(b, entropy)
}

// SupplyEntropyAsIntIfNeeded supplies entropy to the Feeder, but will not
// block if no entropy is currently needed.
func (f *Feeder) SupplyEntropyAsIntIfNeeded(n int64, entropy int) {
	if f.needsEntropy.IsSet() { // avoid allocating a slice if possible
		b := make([]byte, 8)
		binary.LittleEndian.PutUint64(b, uint64(n))
		f.SupplyEntropyIfNeeded(b, entropy)
	}
}

// CloseFeeder stops the feed processing - the responsible worker exits.
func (f *Feeder) CloseFeeder() {
	select {
	case f.input <- nil:
	case <-module.Stopping():
	}
}

func (f *Feeder) run(ctx context.Context) error {
	defer f.needsEntropy.UnSet()

	for {
		// gather
		f.needsEntropy.Set()
	gather:
		for {
			select {
			case newEntropy := <-f.input:
				if newEntropy == nil {
					return nil
				}
				f.buffer.Write(newEntropy.data)
				f.entropy += int64(newEntropy.entropy)
				if f.entropy >= minFeedEntropy() {
					break gather
				}
			case <-ctx.Done():
				return nil
			}
		}

		// feed
		f.needsEntropy.UnSet()
		select {
		case rngFeeder <- &feed{
			source: f.source,
			data:   bytes.Clone(f.buffer.Bytes()),
		}:
		case <-ctx.Done():
			return nil
		}
		f.buffer.Reset()
		f.entropy = 0
	}
}

func sourceName(source byte) string {
	name, ok := sourceNames[source]
	if !ok {
		return fmt.Sprintf("source-%d", source)
	}
	return name
}
