package services

import (
	"sync"
	"time"
)

type rateWindow struct {
	count       int
	windowStart time.Time
}

// RateLimiter counts requests per client identity over a fixed window.
// The count resets once the window elapses. Entries are only removed by
// Purge; callers that never purge keep the original grow-forever behavior.
type RateLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	clients map[string]*rateWindow
	now     func() time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:   limit,
		window:  window,
		clients: make(map[string]*rateWindow),
		now:     time.Now,
	}
}

// Allow records one request for the client and reports whether it is still
// within the limit for the current window.
func (rl *RateLimiter) Allow(clientID string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	currentTime := rl.now()
	w, ok := rl.clients[clientID]
	if !ok {
		w = &rateWindow{windowStart: currentTime}
		rl.clients[clientID] = w
	}

	if currentTime.Sub(w.windowStart) > rl.window {
		w.count = 0
		w.windowStart = currentTime
	}

	w.count++
	return w.count <= rl.limit
}

// Purge drops windows that elapsed before now. Safe to call at any time.
func (rl *RateLimiter) Purge() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	currentTime := rl.now()
	for id, w := range rl.clients {
		if currentTime.Sub(w.windowStart) > rl.window {
			delete(rl.clients, id)
		}
	}
}
