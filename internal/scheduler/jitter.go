package scheduler

import (
	"math/rand"
	"time"
)

// Jitter spreads inter-message delays within ±10% of the base value so the
// send cadence never looks perfectly periodic. Not cryptographically
// sensitive; a seeded source can be injected for reproducible tests.
type Jitter struct {
	rng *rand.Rand
}

func NewJitter() *Jitter {
	return &Jitter{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func NewSeededJitter(seed int64) *Jitter {
	return &Jitter{rng: rand.New(rand.NewSource(seed))}
}

// Minutes returns a delay drawn uniformly from
// [base - floor(0.1*base), base + floor(0.1*base)], both bounds inclusive.
// A base of zero (or less) always returns 0.
func (j *Jitter) Minutes(base int) int {
	if base <= 0 {
		return 0
	}
	spread := base / 10
	return base - spread + j.rng.Intn(2*spread+1)
}
