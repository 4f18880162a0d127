package usecase

import (
	"radio-box-ng/business/entity"
)

const (
	debounceWindowMs = 50
	longPressMs      = 3000
)

// ButtonClassifier turns raw pin samples into press events. It is fed one
// sample per device-loop tick and never blocks; level true means pressed.
//
// A held button fires LongPress as soon as the threshold elapses and the
// latch keeps the release from firing a second event. Presses shorter than
// the debounce window are treated as contact noise.
type ButtonClassifier struct {
	lastChangeMs int64
	level        bool
	pressed      bool
	pressStartMs int64
	longFired    bool
	primed       bool
}

func NewButtonClassifier() *ButtonClassifier {
	return &ButtonClassifier{}
}

func (b *ButtonClassifier) Sample(level bool, nowMs int64) entity.ButtonEvent {
	if !b.primed {
		b.primed = true
		b.lastChangeMs = nowMs - debounceWindowMs
	}

	if level != b.level {
		if nowMs-b.lastChangeMs < debounceWindowMs {
			return entity.ButtonNone
		}
		b.lastChangeMs = nowMs
		b.level = level

		if level {
			b.pressed = true
			b.pressStartMs = nowMs
			b.longFired = false
			return entity.ButtonNone
		}

		if !b.pressed {
			return entity.ButtonNone
		}
		b.pressed = false

		held := nowMs - b.pressStartMs
		switch {
		case b.longFired:
			return entity.ButtonNone
		case held >= longPressMs:
			b.longFired = true
			return entity.ButtonLongPress
		case held >= debounceWindowMs:
			return entity.ButtonShortPress
		default:
			return entity.ButtonNone
		}
	}

	// Still held: fire the long press immediately rather than waiting
	// for the release, so the user gets live feedback.
	if level && b.pressed && !b.longFired && nowMs-b.pressStartMs >= longPressMs {
		b.longFired = true
		return entity.ButtonLongPress
	}

	return entity.ButtonNone
}
