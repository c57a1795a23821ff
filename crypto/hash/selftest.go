package hash

import (
	"bytes"
	"encoding/hex"
	"fmt"
)

var selfTestData = []byte("The quick brown fox jumps over the lazy dog")

// digests of the empty message
var knownAnswers = map[Algorithm]string{
	SHA2_224:     "d14a028c2a3a2bc9476102bb288234c415a2b01f828ea62ac5b3e42f",
	SHA2_256:     "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
	SHA2_512_224: "6ed0dd02806fa89e25de060c19d3ac86cabb87d6a0ddd05c333b84f4",
	SHA2_512_256: "c672b8d1ef56ed28ab87c3622c5114069bdd3ad7b8f9737498d0c01ecef0967a",
	SHA2_384:     "38b060a751ac96384cd9327eb1b1e36a21fdb71114be07434c0cc7bf63f6e1da274edebfe76f65fbd51ad2f14898b95b",
	SHA2_512:     "cf83e1357eefb8bdf1542850d66d8007d620e4050b5715dc83f4a921d36ce9ce47d0d13c5d85f2b0ff8318d2877eec2f63b931bd47417a81a538327af927da3e",
	SHA3_224:     "6b4e03423667dbb73b6e15454f0eb1abd4597f9a1b078e3f5b5a6bc7",
	SHA3_256:     "a7ffc6f8bf1ed76651c14756a061d662f580ff4de43b49fa82d80a4b80f8434a",
	SHA3_512:     "a69f73cca23a9ac5c8b567dc185a756e97c982164fe25859e0d1dcc1475c80a615b2123af1f5f94c11e3e9402c3ac558f500199d95b6d3e301758586281dcd26",
	BLAKE2S_256:  "69217a3079908094e11121d042354a7c1f55b6482ca1a51e1b250dfd1ed0eef9",
	BLAKE2B_256:  "0e5751c026e543b2e8ab2eb06099daa1d1e5df47778f7787faab45cdf12fe3a8",
	BLAKE2B_512:  "786a02f742015903c6c6fd852552d272912f4740e15847618a86e217f71f5419d25e1031afee585313896444934eb04b903a685b1448b755d56f701afe9be2ce",
	MD5:          "d41d8cd98f00b204e9800998ecf8427e",
	SHA1:         "da39a3ee5e6b4b0d3255bfef95601890afd80709",
	RIPEMD160:    "9c1185a5c5e9fc54612808977ee8f548b2258d31",
}

// Test checks the algorithm against its known answer, if there is one, and
// checks that incremental and one shot hashing agree.
func (a Algorithm) Test() error {
	h := a.New()
	if h == nil {
		return ErrUnknownAlgorithm
	}
	if h.Size() != a.Size() || h.BlockSize() != a.BlockSize() {
		return fmt.Errorf("%w: %s: size mismatch", ErrSelfTestFailed, a)
	}

	empty := h.Sum(nil)
	if expected, ok := knownAnswers[a]; ok {
		if hex.EncodeToString(empty) != expected {
			return fmt.Errorf("%w: %s: known answer mismatch", ErrSelfTestFailed, a)
		}
	}

	_, _ = h.Write(selfTestData[:10])
	_, _ = h.Write(selfTestData[10:])
	incremental := h.Sum(nil)

	h.Reset()
	_, _ = h.Write(selfTestData)
	oneShot := h.Sum(nil)

	switch {
	case !bytes.Equal(incremental, oneShot):
		return fmt.Errorf("%w: %s: incremental digest mismatch", ErrSelfTestFailed, a)
	case bytes.Equal(empty, oneShot):
		return fmt.Errorf("%w: %s: digest ignores input", ErrSelfTestFailed, a)
	}
	return nil
}
