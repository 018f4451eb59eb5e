// Package globaltime is the clock used for generated_at stamps and merge
// timestamps. Tests pin it with SetMockTime so composed payloads compare
// deterministically.
package globaltime

import (
	"sync"
	"time"
)

var (
	mu       sync.RWMutex
	override *time.Time
)

// Now returns the pinned time when one is set, the wall clock otherwise.
func Now() time.Time {
	mu.RLock()
	defer mu.RUnlock()
	if override != nil {
		return *override
	}
	return time.Now()
}

// UTC is Now in UTC, the zone every emitted timestamp uses.
func UTC() time.Time {
	return Now().UTC()
}

// SetMockTime pins the clock until ResetTime is called.
func SetMockTime(t time.Time) {
	mu.Lock()
	defer mu.Unlock()
	pinned := t
	override = &pinned
}

// ResetTime restores the wall clock.
func ResetTime() {
	mu.Lock()
	defer mu.Unlock()
	override = nil
}
