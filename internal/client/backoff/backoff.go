// Package backoff decides when a failed sync attempt may be retried.
package backoff

import (
	"time"

	"github.com/sethvargo/go-retry"
)

// Policy is an exponential backoff with a ceiling on both the delay and the
// number of attempts.
type Policy struct {
	Base          time.Duration
	Cap           time.Duration
	MaxAttempts   int
	JitterPercent uint64
}

// Default is used when the configuration leaves fields unset.
var Default = Policy{
	Base:        2 * time.Second,
	Cap:         5 * time.Minute,
	MaxAttempts: 8,
}

func (p Policy) normalized() Policy {
	if p.Base <= 0 {
		p.Base = Default.Base
	}
	if p.Cap <= 0 {
		p.Cap = Default.Cap
	}
	if p.Cap < p.Base {
		p.Cap = p.Base
	}
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = Default.MaxAttempts
	}
	return p
}

// Delay returns how long to wait after the given number of failed attempts.
// attempts below 1 are treated as 1.
func (p Policy) Delay(attempts int) time.Duration {
	p = p.normalized()
	if attempts < 1 {
		attempts = 1
	}

	var b retry.Backoff = retry.NewExponential(p.Base)
	if p.JitterPercent > 0 {
		b = retry.WithJitterPercent(p.JitterPercent, b)
	}
	b = retry.WithCappedDuration(p.Cap, b)

	var d time.Duration
	for i := 0; i < attempts; i++ {
		d, _ = b.Next()
		if d >= p.Cap {
			break
		}
	}
	return d
}

// Exhausted reports whether no further attempt is allowed.
func (p Policy) Exhausted(attempts int) bool {
	return attempts >= p.normalized().MaxAttempts
}
