package fortuna

import (
	"fmt"
	"hash"

	"github.com/safing/portcrypt/registry"
)

// pool accumulates entropy events in a running hash.
type pool struct {
	state     hash.Hash
	finalized bool
}

func newPool(alg registry.Hash) (*pool, error) {
	state := alg.New()
	if state == nil {
		return nil, fmt.Errorf("fortuna: hash %s returned no state", alg.Name())
	}
	return &pool{
		state: state,
	}, nil
}

func (p *pool) write(data ...[]byte) error {
	if p.finalized {
		return ErrFinalized
	}
	for _, d := range data {
		// hash.Hash.Write never returns an error
		_, _ = p.state.Write(d)
	}
	return nil
}

// finalize appends the digest to out. The pool cannot be written to until it
// is reset.
func (p *pool) finalize(out []byte) ([]byte, error) {
	if p.finalized {
		return nil, ErrFinalized
	}
	p.finalized = true
	return p.state.Sum(out), nil
}

func (p *pool) reset() {
	p.state.Reset()
	p.finalized = false
}
