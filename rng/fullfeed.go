package rng

import (
	"context"
	"time"

	"github.com/safing/portcrypt/fortuna"
	"github.com/safing/portcrypt/log"
)

// nextPool is the pool the next feed chunk is added to.
var nextPool int

func getFullFeedDuration() time.Duration {
	// full feed every 5x time of reseedAfterSeconds
	secsUntilFullFeed := reseedAfterSeconds() * 5

	// full feed at most once per minute
	if secsUntilFullFeed < 60 {
		secsUntilFullFeed = 60
	}

	return time.Duration(secsUntilFullFeed * int64(time.Second))
}

// fullFeeder periodically distributes all pending feeds over the pools.
func fullFeeder(ctx context.Context) error {
	fullFeedDuration := 100 * time.Millisecond

	for {
		select {
		case <-time.After(fullFeedDuration):
			rngLock.Lock()
			fed := 0
		feedAll:
			for {
				select {
				case f := <-rngFeeder:
					addFeed(f)
					fed++
				default:
					break feedAll
				}
			}
			rngLock.Unlock()
			log.Tracef("rng: full feed added %d feeds", fed)

		case <-ctx.Done():
			return nil
		}

		fullFeedDuration = getFullFeedDuration()
	}
}

// addFeed splits the feed into events and adds them to the pools in turn.
// It must be called with rngLock held.
func addFeed(f *feed) {
	if rng == nil {
		return
	}

	data := f.data
	for len(data) > 0 {
		chunk := data
		if len(chunk) > fortuna.MaxEventSize {
			chunk = chunk[:fortuna.MaxEventSize]
		}
		data = data[len(chunk):]

		if err := rng.AddRandomEvent(f.source, nextPool%rng.Pools(), chunk); err != nil {
			log.Warningf("rng: failed to add %s event: %s", sourceName(f.source), err)
			return
		}
		nextPool = (nextPool + 1) % rng.Pools()
	}
	entropyBytes(f.source).Add(len(f.data))
}
