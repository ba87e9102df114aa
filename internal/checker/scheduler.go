package checker

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/blackwell-systems/prosecheck/internal/textnorm"
)

// schedState is the debounce state machine's explicit state. Running and
// Queued are carried by the check goroutine and the semaphore's FIFO
// waiters rather than by a named state here.
type schedState int

const (
	stateIdle schedState = iota
	stateScheduled
	stateDisabled
)

// scheduler drives debounced re-analysis from content-change events.
// All fields are guarded by the owning Service's mutex.
type scheduler struct {
	svc   *Service
	state schedState
	timer *time.Timer

	// pendingRaw is the raw text the armed timer will analyze; each new
	// event replaces it and resets the timer.
	pendingRaw string

	// latest is the fingerprint of the newest content seen. A completed
	// run whose fingerprint no longer matches is stale and its result is
	// discarded rather than emitted.
	latest string

	// lastLen is the rune length of the last accepted event, for the
	// minimum-change gate.
	lastLen int

	// gen invalidates already-armed timers on disable.
	gen int64
}

func (sc *scheduler) init(svc *Service) {
	sc.svc = svc
	sc.state = stateIdle
}

// OnContentChanged is the fire-and-forget scheduling entry point for
// editors. It debounces: analysis runs only after events stop arriving for
// the configured quiet period, and always for the newest content.
func (s *Service) OnContentChanged(text string) {
	norm := textnorm.Normalize(text, s.cfg.MinTextRunes)

	s.mu.Lock()
	if s.disposed || !s.enabled || s.sched.state == stateDisabled {
		s.mu.Unlock()
		return
	}

	sc := &s.sched

	if norm.TooShort {
		// Too short to analyze: cancel pending work and surface the
		// empty result immediately.
		sc.cancelTimerLocked()
		sc.state = stateIdle
		sc.latest = norm.Fingerprint
		sc.lastLen = 0
		fn := s.resultFn
		s.mu.Unlock()
		if fn != nil {
			fn(emptyResult(0))
		}
		return
	}

	if norm.Fingerprint == sc.latest && sc.state == stateIdle {
		s.mu.Unlock()
		return
	}

	runes := utf8.RuneCountInString(norm.Clean)
	delta := runes - sc.lastLen
	if delta < 0 {
		delta = -delta
	}
	// From Idle, only a meaningful change arms the timer. Once Scheduled,
	// every event resets it so the newest content wins.
	if sc.state == stateIdle && delta < s.cfg.MinChangeRunes && sc.latest != "" {
		s.mu.Unlock()
		return
	}

	sc.latest = norm.Fingerprint
	sc.lastLen = runes
	sc.pendingRaw = text
	sc.armTimerLocked()
	s.mu.Unlock()
}

// armTimerLocked arms or resets the debounce timer.
func (sc *scheduler) armTimerLocked() {
	sc.cancelTimerLocked()
	sc.state = stateScheduled
	gen := sc.gen
	debounce := time.Duration(sc.svc.cfg.Scheduler.DebounceMs) * time.Millisecond
	sc.timer = time.AfterFunc(debounce, func() {
		sc.fire(gen)
	})
}

// cancelTimerLocked stops a pending (not yet fired) timer outright.
func (sc *scheduler) cancelTimerLocked() {
	if sc.timer != nil {
		sc.timer.Stop()
		sc.timer = nil
	}
}

// disableLocked moves to Disabled: pending timer and queued work are
// cancelled and any in-flight run's result will be dropped on arrival.
func (sc *scheduler) disableLocked() {
	sc.cancelTimerLocked()
	sc.state = stateDisabled
	sc.pendingRaw = ""
	sc.latest = ""
	sc.lastLen = 0
	sc.gen++
}

// enableLocked returns to Idle after a disable.
func (sc *scheduler) enableLocked() {
	if sc.state == stateDisabled {
		sc.state = stateIdle
	}
}

// fire runs when the debounce timer expires: it claims the pending text and
// starts the check. Concurrency slots are bounded inside CheckText; when
// all slots are busy the run waits its FIFO turn there.
func (sc *scheduler) fire(gen int64) {
	s := sc.svc

	s.mu.Lock()
	if s.disposed || !s.enabled || sc.state != stateScheduled || gen != sc.gen {
		s.mu.Unlock()
		return
	}
	raw := sc.pendingRaw
	fingerprint := sc.latest
	sc.pendingRaw = ""
	sc.timer = nil
	sc.state = stateIdle
	fn := s.resultFn
	s.mu.Unlock()

	res, err := s.CheckText(context.Background(), raw, Options{})
	if err != nil {
		return
	}

	// Content may have moved on while this run was in flight. A stale
	// result must not overwrite one computed from newer content.
	s.mu.Lock()
	stale := sc.latest != fingerprint || sc.gen != gen || !s.enabled
	s.mu.Unlock()
	if stale || fn == nil {
		return
	}
	fn(res)
}
