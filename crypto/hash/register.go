package hash

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/safing/portcrypt/registry"
)

// RegisterAll registers all algorithms with the given registry.
func RegisterAll(reg *registry.Registry) error {
	var result *multierror.Error
	for _, alg := range Algorithms() {
		if _, err := reg.Hashes.Register(alg); err != nil {
			result = multierror.Append(result, fmt.Errorf("failed to register %s: %w", alg, err))
		}
	}
	return result.ErrorOrNil()
}
