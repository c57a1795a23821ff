package main

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/safing/portcrypt/crypto/hash"
	"github.com/safing/portcrypt/crypto/random"
	"github.com/safing/portcrypt/fortuna"
	"github.com/safing/portcrypt/info"
	"github.com/safing/portcrypt/log"
	"github.com/safing/portcrypt/modules"
	"github.com/safing/portcrypt/registry"
	"github.com/safing/portcrypt/rng"
	"github.com/safing/portcrypt/run"
)

const usage = `usage: %s <mode>
  fortuna [prng]       write 1MB from a prng (default: fortuna) to stdout
  tickfeeder           write 1MB of tick feeder samples to stdout
  algorithms           list the registered algorithms
  hash <name> <file>   hash a file with a registered hash
  serve                run the rng module and print its metrics periodically
`

func noise() {
	// do some aes ctr for noise

	key, _ := hex.DecodeString("6368616e676520746869732070617373")
	data := []byte("some plaintext x")

	block, err := aes.NewCipher(key)
	if err != nil {
		panic(err)
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		panic(err)
	}

	stream := cipher.NewCTR(block, iv)
	for {
		stream.XORKeyStream(data, data)
	}
}

func main() {
	if len(os.Args) < 2 {
		fmt.Printf(usage, os.Args[0])
		os.Exit(1)
	}

	if err := rng.RegisterAlgorithms(registry.Default); err != nil {
		fmt.Fprintf(os.Stderr, "failed to register algorithms: %s\n", err)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "fortuna":
		name := fortuna.Name
		if len(os.Args) > 2 {
			name = os.Args[2]
		}
		exitOnErr(writePRNG(name))
	case "tickfeeder":
		writeTicks()
	case "algorithms":
		listAlgorithms()
	case "hash":
		if len(os.Args) < 4 {
			fmt.Printf(usage, os.Args[0])
			os.Exit(1)
		}
		exitOnErr(hashFile(os.Args[2], os.Args[3]))
	case "serve":
		os.Exit(serve())
	default:
		fmt.Printf(usage, os.Args[0])
		os.Exit(1)
	}
}

func exitOnErr(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}

func writePRNG(name string) error {
	d, err := registry.Default.PRNG(name)
	if err != nil {
		return err
	}
	g, err := d.Start()
	if err != nil {
		return err
	}
	defer func() {
		_ = g.Done()
	}()

	// seed every pool at least once
	event := make([]byte, fortuna.MaxEventSize)
	for i := 0; i < 32; i++ {
		if _, err := io.ReadFull(rand.Reader, event); err != nil {
			return err
		}
		if err := g.AddEntropy(event); err != nil {
			return err
		}
	}
	if err := g.Ready(); err != nil {
		return err
	}

	return writeMB(random.Reader{Generator: g}, 64)
}

func writeMB(r io.Reader, chunk int) error {
	fmt.Fprint(os.Stderr, "writing 1MB to stdout, a \".\" will be printed at every 1024 bytes.\n")

	b := make([]byte, chunk)
	var bytesWritten int
	for bytesWritten < 1000000 {
		if _, err := io.ReadFull(r, b); err != nil {
			return err
		}
		if _, err := os.Stdout.Write(b); err != nil {
			return err
		}

		bytesWritten += chunk
		if bytesWritten%1024 == 0 {
			fmt.Fprint(os.Stderr, ".")
		}
		if bytesWritten%65536 == 0 {
			fmt.Fprintf(os.Stderr, "\n%d bytes written\n", bytesWritten)
		}
	}
	fmt.Fprintln(os.Stderr)
	return nil
}

type tickReader struct{}

func (tickReader) Read(b []byte) (int, error) {
	var value uint64
	for pushes := 0; pushes < 64; pushes++ {
		time.Sleep(10 * time.Nanosecond)
		value = (value << 1) | uint64(time.Now().UnixNano()%2)
	}
	binary.LittleEndian.PutUint64(b, value)
	return 8, nil
}

func writeTicks() {
	runtime.GOMAXPROCS(1)
	go noise()

	exitOnErr(writeMB(tickReader{}, 8))
}

func listAlgorithms() {
	fmt.Println("ciphers:")
	for _, e := range registry.Default.Ciphers.Entries() {
		c := e.Descriptor
		fmt.Printf("  %2d %-10s block=%-2d keys=%d-%d\n", e.Index, c.Name(), c.BlockSize(), c.MinKeySize(), c.MaxKeySize())
	}
	fmt.Println("hashes:")
	for _, e := range registry.Default.Hashes.Entries() {
		h := e.Descriptor
		fmt.Printf("  %2d %-14s size=%-2d block=%d\n", e.Index, h.Name(), h.Size(), h.BlockSize())
	}
	fmt.Println("prngs:")
	for _, e := range registry.Default.PRNGs.Entries() {
		p := e.Descriptor
		fmt.Printf("  %2d %-18s export=%d\n", e.Index, p.Name(), p.ExportSize())
	}
}

func hashFile(name, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = file.Close()
	}()

	sum, err := hash.SumReaderWith(registry.Default, name, file)
	if err != nil {
		return err
	}
	fmt.Printf("%s  %s\n", hex.EncodeToString(sum), path)
	return nil
}

func serve() int {
	info.Set("portcrypt-rng-test", "", "")

	go func() {
		ticker := time.NewTicker(10 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				rng.WriteMetrics(os.Stderr, false)
				if status := modules.GetStatus(); status != nil {
					log.Infof("test: %d workers running", status.Total.Workers)
				}
			case <-modules.ShuttingDown():
				return
			}
		}
	}()

	return run.Run()
}
