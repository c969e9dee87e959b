package draft

import (
	"sync"
	"time"
)

// Autosaver coalesces a burst of edits into a single deferred save.
// Each Touch cancels the pending save and reschedules it, so only the
// last edit before a quiet period actually persists. Saves are
// fire-and-forget; failures are the save func's problem to swallow.
type Autosaver struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
	save  func()
}

// NewAutosaver creates an autosaver that invokes save after delay of
// inactivity following a Touch.
func NewAutosaver(delay time.Duration, save func()) *Autosaver {
	return &Autosaver{delay: delay, save: save}
}

// Touch records an edit: any pending save is cancelled and a new one is
// scheduled.
func (a *Autosaver) Touch() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.delay, a.save)
}

// Flush runs a pending save immediately, if any.
func (a *Autosaver) Flush() {
	a.mu.Lock()
	pending := a.timer != nil && a.timer.Stop()
	a.timer = nil
	a.mu.Unlock()
	if pending {
		a.save()
	}
}

// Stop cancels any pending save without running it.
func (a *Autosaver) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}
