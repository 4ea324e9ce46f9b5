package tui

import (
	"time"

	"github.com/dailyflow/dailyflow/internal/store"
)

// focusState tracks the current state of the focus timer.
type focusState int

const (
	focusStopped focusState = iota
	focusRunning
	focusPaused
)

// focusModel manages the focus timer. Stopping a session accrues the
// elapsed time into today's actual hours.
type focusModel struct {
	store *store.Store

	state     focusState
	startTime time.Time
	elapsed   time.Duration
	pausedAt  time.Time
	pauseGap  time.Duration
}

func newFocusModel(s *store.Store) focusModel {
	return focusModel{store: s, state: focusStopped}
}

func (f *focusModel) start() {
	f.state = focusRunning
	f.startTime = time.Now()
	f.elapsed = 0
	f.pauseGap = 0
}

// stop ends the session and writes the elapsed time into today's day
// record. Returns the hours accrued.
func (f *focusModel) stop() (float64, error) {
	if f.state == focusStopped {
		return 0, nil
	}
	elapsed := f.currentElapsed()
	f.state = focusStopped
	f.elapsed = 0

	hours := elapsed.Hours()
	if err := f.store.AddActualHours(todayKey(), hours); err != nil {
		return 0, err
	}
	return hours, nil
}

func (f *focusModel) pause() {
	if f.state != focusRunning {
		return
	}
	f.state = focusPaused
	f.pausedAt = time.Now()
}

func (f *focusModel) resume() {
	if f.state != focusPaused {
		return
	}
	f.pauseGap += time.Since(f.pausedAt)
	f.state = focusRunning
}

func (f *focusModel) toggle() {
	switch f.state {
	case focusRunning:
		f.pause()
	case focusPaused:
		f.resume()
	}
}

func (f *focusModel) tick() {
	if f.state == focusRunning {
		f.elapsed = time.Since(f.startTime) - f.pauseGap
	}
}

func (f focusModel) running() bool {
	return f.state != focusStopped
}

func (f focusModel) paused() bool {
	return f.state == focusPaused
}

func (f focusModel) currentElapsed() time.Duration {
	if f.state == focusStopped {
		return 0
	}
	if f.state == focusPaused {
		return time.Since(f.startTime) - f.pauseGap - time.Since(f.pausedAt)
	}
	return time.Since(f.startTime) - f.pauseGap
}
