package shuffle

import (
	"math/rand"
	"sync"
	"time"
)

// Shuffler randomizes element order in place
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Config for the default shuffler
type Config struct {
	// Optional seed for testing
	Seed int64
}

// Default implements Shuffler using math/rand
type Default struct {
	mu     sync.Mutex
	random *rand.Rand
}

// New creates a new shuffler
func New(cfg *Config) *Default {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return &Default{
		random: rand.New(rand.NewSource(seed)),
	}
}

// Shuffle performs a Fisher-Yates shuffle over n elements. rand.Rand is not
// safe for concurrent use, so calls are serialized.
func (d *Default) Shuffle(n int, swap func(i, j int)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.random.Shuffle(n, swap)
}
