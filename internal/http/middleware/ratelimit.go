package middleware

import (
	"sync"
	"time"
)

type windowInfo struct {
	start time.Time
	count int
}

var rlMu sync.Mutex
var windows = make(map[string]*windowInfo)

// localAllow is the in-memory fixed-window limiter used when Redis is not
// configured. Counts per key, resets when the window rolls over.
func localAllow(key string, maxRequests int, window time.Duration) bool {
	rlMu.Lock()
	defer rlMu.Unlock()

	now := time.Now()
	w, ok := windows[key]
	if !ok || now.Sub(w.start) > window {
		windows[key] = &windowInfo{start: now, count: 1}
		return true
	}

	w.count++
	return w.count <= maxRequests
}
