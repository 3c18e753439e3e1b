package store

import (
	"context"
	"sync"
	"time"
)

// SaveStatus is the externally visible persistence state.
type SaveStatus int

const (
	StatusIdle SaveStatus = iota
	StatusPending
	StatusSaving
	StatusSaved
	StatusFailed
)

func (s SaveStatus) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPending:
		return "pending"
	case StatusSaving:
		return "saving"
	case StatusSaved:
		return "saved"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Saver coalesces bursts of edits into single saves. Enqueue marks the state
// dirty and (re)arms a debounce timer; when it fires, the save function runs
// against whatever state is current at that moment, so edits made during the
// debounce window are never lost. Flush drains synchronously for shutdown
// and reload paths.
type Saver struct {
	save     func(context.Context) error
	debounce time.Duration

	mu      sync.Mutex
	status  SaveStatus
	dirty   bool
	saving  bool
	timer   *time.Timer
	lastErr error

	wg sync.WaitGroup
}

// NewSaver builds a saver around the given save function. A zero debounce
// defaults to 500ms.
func NewSaver(save func(context.Context) error, debounce time.Duration) *Saver {
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	return &Saver{
		save:     save,
		debounce: debounce,
		status:   StatusIdle,
	}
}

// Status returns the current persistence state.
func (s *Saver) Status() SaveStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Err returns the error from the most recent failed save, or nil.
func (s *Saver) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Enqueue marks the state dirty and arms the debounce timer. Repeated calls
// within the window collapse into one save.
func (s *Saver) Enqueue() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dirty = true
	s.status = StatusPending

	if s.saving {
		// The in-flight save will observe dirty and go again.
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, s.fire)
}

func (s *Saver) fire() {
	s.mu.Lock()
	if s.saving || !s.dirty {
		s.mu.Unlock()
		return
	}
	s.saving = true
	s.dirty = false
	s.status = StatusSaving
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		s.runSave(context.Background())
	}()
}

// runSave executes one save and re-arms when edits landed mid-flight.
func (s *Saver) runSave(ctx context.Context) {
	err := s.save(ctx)

	s.mu.Lock()
	s.saving = false
	s.lastErr = err
	if err != nil {
		s.status = StatusFailed
	} else if !s.dirty {
		s.status = StatusSaved
	}
	rearm := s.dirty && err == nil
	s.mu.Unlock()

	if rearm {
		s.mu.Lock()
		if s.timer != nil {
			s.timer.Stop()
		}
		s.timer = time.AfterFunc(s.debounce, s.fire)
		s.mu.Unlock()
	}
}

// Flush synchronously drains pending work: waits for any in-flight save,
// then saves once more if edits are still dirty. Safe to call with nothing
// pending.
func (s *Saver) Flush(ctx context.Context) error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.mu.Unlock()

	// fire() sets saving and bumps the WaitGroup under the same lock, so a
	// timer that slips in between Wait and Lock is caught by re-checking
	// saving and waiting again.
	for {
		s.wg.Wait()

		s.mu.Lock()
		if s.saving {
			s.mu.Unlock()
			continue
		}
		if !s.dirty {
			err := s.lastErr
			s.mu.Unlock()
			return err
		}
		s.dirty = false
		s.saving = true
		s.status = StatusSaving
		s.mu.Unlock()
		break
	}

	err := s.save(ctx)

	s.mu.Lock()
	s.saving = false
	s.lastErr = err
	if err != nil {
		s.status = StatusFailed
	} else {
		s.status = StatusSaved
	}
	s.mu.Unlock()
	return err
}
