package usecase

import (
	"radio-box-ng/business/entity"
)

// SleepTimer is a single deadline checked once per tick. It is owned by
// the radio use case and accessed only under its lock.
type SleepTimer struct {
	state entity.SleepTimerState
}

// Arm sets the deadline minutes from now; zero or negative disarms.
func (t *SleepTimer) Arm(minutes int, nowMs int64) {
	if minutes <= 0 {
		t.Disarm()
		return
	}
	t.state = entity.SleepTimerState{
		Active:      true,
		DurationMs:  int64(minutes) * 60000,
		StartedAtMs: nowMs,
	}
}

func (t *SleepTimer) Disarm() {
	t.state = entity.SleepTimerState{}
}

// CheckExpiry reports whether playback must be stopped now. The timer
// disarms itself when it fires; a transient non-playing state leaves it
// untouched (every stop path disarms explicitly anyway).
func (t *SleepTimer) CheckExpiry(nowMs int64, playing bool) bool {
	if !t.state.Active || !playing {
		return false
	}
	if nowMs-t.state.StartedAtMs < t.state.DurationMs {
		return false
	}
	t.Disarm()
	return true
}

func (t *SleepTimer) RemainingMs(nowMs int64) int64 {
	if !t.state.Active {
		return 0
	}
	left := t.state.DurationMs - (nowMs - t.state.StartedAtMs)
	if left < 0 {
		return 0
	}
	return left
}

func (t *SleepTimer) State() entity.SleepTimerState {
	return t.state
}
