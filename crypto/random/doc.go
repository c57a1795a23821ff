// Package random provides PRNG descriptors for the algorithm registry and
// helpers to draw numbers from any random source.
//
// Two descriptors are available:
//   - "sprng": the operating system RNG
//   - "fortuna-generator": the Fortuna generator of github.com/seehuhn/fortuna,
//     with the block cipher taken from the registry
package random
