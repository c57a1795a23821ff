package random

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/safing/portcrypt/registry"
)

// RegisterAll registers the system RNG and the seehuhn Fortuna generator
// with the given registry. The generator resolves its cipher from reg.
func RegisterAll(reg *registry.Registry) error {
	var result *multierror.Error
	for _, d := range []registry.PRNG{
		System{},
		Generator{Registry: reg},
	} {
		if _, err := reg.PRNGs.Register(d); err != nil {
			result = multierror.Append(result, fmt.Errorf("failed to register %s: %w", d.Name(), err))
		}
	}
	return result.ErrorOrNil()
}
