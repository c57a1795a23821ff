/*
Package fortuna implements the Fortuna cryptographically secure pseudo random
number generator.

Entropy events are spread over a set of hash pools. The generator key is
derived from the pools on reseed, where pool i takes part in every 2^i-th
reseed. Output is produced by encrypting a 128 bit counter with a block cipher
keyed with the generator key, and the key is replaced after every read.

The hash and the block cipher are resolved from a registry once, when the
generator is created:

	f, err := fortuna.New(fortuna.Config{})
	if err != nil {
		return err
	}
	err = f.Start()
	...
	err = f.AddEntropy(seed)
	...
	err = f.Ready()
	...
	n := f.Read(buf)

A generator is safe for concurrent use. Generators do not share any state.
*/
package fortuna
