package fortuna

import "time"

// rateLimiter decides whether a reseed attempt may proceed. A skipped reseed
// is not an error.
type rateLimiter interface {
	// allow is called on every reseed attempt.
	allow() bool
	// reseeded records a completed reseed.
	reseeded()
	// prime makes the next attempt pass.
	prime()
	reset()
}

func newRateLimiter(cfg Config) rateLimiter {
	if cfg.RateLimit == RateLimitTimed {
		return &timedLimiter{
			clock:   cfg.Clock,
			quantum: cfg.ReseedQuantum,
		}
	}
	return &counterLimiter{
		every: cfg.ReseedEvery,
	}
}

type counterLimiter struct {
	every    int
	attempts int
}

func (l *counterLimiter) allow() bool {
	l.attempts++
	return l.attempts >= l.every
}

func (l *counterLimiter) reseeded() { l.attempts = 0 }
func (l *counterLimiter) prime()    { l.attempts = l.every }
func (l *counterLimiter) reset()    { l.attempts = 0 }

type timedLimiter struct {
	clock   Clock
	quantum time.Duration
	last    int64
}

func (l *timedLimiter) slot() int64 {
	return l.clock.Now().UnixNano() / int64(l.quantum)
}

func (l *timedLimiter) allow() bool {
	return l.slot() != l.last
}

func (l *timedLimiter) reseeded() { l.last = l.slot() }
func (l *timedLimiter) prime()    { l.last = l.slot() - 1 }
func (l *timedLimiter) reset()    { l.last = 0 }
