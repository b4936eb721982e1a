package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_CeilingWithinWindow(t *testing.T) {
	rl := NewRateLimiter(8, time.Minute)

	for i := 0; i < 8; i++ {
		assert.True(t, rl.Allow("10.0.0.1"), "request %d should be allowed", i+1)
	}
	assert.False(t, rl.Allow("10.0.0.1"), "9th request within the window must be rejected")
}

func TestRateLimiter_WindowReset(t *testing.T) {
	current := time.Now()
	rl := NewRateLimiter(8, time.Minute)
	rl.now = func() time.Time { return current }

	for i := 0; i < 9; i++ {
		rl.Allow("10.0.0.1")
	}
	assert.False(t, rl.Allow("10.0.0.1"))

	current = current.Add(time.Minute + time.Second)
	assert.True(t, rl.Allow("10.0.0.1"), "request just after the window elapses must succeed")
}

func TestRateLimiter_ClientsAreIndependent(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.2"))
}

func TestRateLimiter_Purge(t *testing.T) {
	current := time.Now()
	rl := NewRateLimiter(8, time.Minute)
	rl.now = func() time.Time { return current }

	rl.Allow("10.0.0.1")
	rl.Allow("10.0.0.2")
	assert.Len(t, rl.clients, 2)

	current = current.Add(2 * time.Minute)
	rl.Purge()
	assert.Empty(t, rl.clients)
}
