package rng

import (
	"bytes"
	"context"
	"encoding/binary"
	"math"
	"time"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"

	"github.com/safing/portcrypt/log"
)

const (
	hostFeederInterval = 5 * time.Second

	// host statistics are observable by other processes on the same machine,
	// only the low bits of the counters are assumed to be unpredictable.
	hostSampleEntropy = 8
)

// hostFeeder feeds CPU time and memory counters of the host.
func hostFeeder(ctx context.Context) error {
	feeder := NewFeeder(SourceHost)
	defer feeder.CloseFeeder()

	for {
		select {
		case <-time.After(hostFeederInterval):
			feeder.SupplyEntropy(hostSample(), hostSampleEntropy)
		case <-ctx.Done():
			return nil
		}
	}
}

// hostSample returns a snapshot of host statistics. It never fails, missing
// statistics are skipped.
func hostSample() []byte {
	buf := new(bytes.Buffer)
	writeUint64 := func(v uint64) {
		_ = binary.Write(buf, binary.LittleEndian, v)
	}

	writeUint64(uint64(time.Now().UnixNano()))

	times, err := cpu.Times(false)
	if err != nil {
		log.Tracef("rng: failed to get cpu times: %s", err)
	}
	for _, t := range times {
		for _, v := range []float64{t.User, t.System, t.Idle, t.Nice, t.Iowait, t.Irq, t.Softirq} {
			writeUint64(math.Float64bits(v))
		}
	}

	vm, err := mem.VirtualMemory()
	if err != nil {
		log.Tracef("rng: failed to get memory stats: %s", err)
	} else {
		writeUint64(vm.Used)
		writeUint64(vm.Free)
		writeUint64(vm.Available)
	}

	return buf.Bytes()
}
