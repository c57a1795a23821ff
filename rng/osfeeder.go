package rng

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
)

func osFeeder(ctx context.Context) error {
	feeder := NewFeeder(SourceOS)
	defer feeder.CloseFeeder()

	for {
		// get feed entropy
		minEntropyBytes := int(minFeedEntropy())/8 + 1
		if minEntropyBytes < 32 {
			minEntropyBytes = 64
		}

		// get entropy
		osEntropy := make([]byte, minEntropyBytes)
		_, err := io.ReadFull(rand.Reader, osEntropy)
		if err != nil {
			return fmt.Errorf("could not read entropy from os: %w", err)
		}

		// feed
		feeder.SupplyEntropy(osEntropy, minEntropyBytes*8)

		select {
		case <-ctx.Done():
			return nil
		default:
		}
	}
}
