package index

import "sync/atomic"

// buildLock provides non-blocking admission for index rebuilds using atomic
// operations, so a second rebuild can fail fast instead of queueing.
type buildLock struct {
	state atomic.Int32 // 0 = unlocked, 1 = locked
}

// TryAcquire attempts to acquire the lock without blocking.
// Returns true if the lock was successfully acquired, false otherwise.
func (l *buildLock) TryAcquire() bool {
	return l.state.CompareAndSwap(0, 1)
}

// Release releases the lock.
// Must only be called by the goroutine that successfully acquired the lock.
func (l *buildLock) Release() {
	l.state.Store(0)
}
