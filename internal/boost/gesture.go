package boost

import "time"

type decision int

const (
	decisionSuppress decision = iota
	decisionPulseTouch
	decisionPulseVsync
)

// touchState is the gesture classifier's short-lived state. It distinguishes
// discrete taps from scrolling by inter-event timing alone and budgets the
// boost pulses issued after a finger release. All mutation happens under the
// coordinator's lock.
type touchState struct {
	touchBoostDisable      bool
	timerSet               bool
	vsyncBoost             bool
	consecutiveFastTouches uint32
	vsyncPulseBudget       uint32
	lastEventTime          time.Time
	lastTouchTime          time.Time
}

func (t *touchState) reset() {
	t.touchBoostDisable = false
	t.timerSet = false
	t.vsyncBoost = false
	t.consecutiveFastTouches = 0
	t.vsyncPulseBudget = 0
}

// onInteraction classifies one touch hint. Caller must hold the shared lock.
func (t *touchState) onInteraction(now time.Time, cfg Config) decision {
	gap := now.Sub(t.lastEventTime)
	t.lastEventTime = now
	t.lastTouchTime = now

	if gap < cfg.ShortTouchTime {
		t.consecutiveFastTouches++
	} else if gap > cfg.LongTouchTime {
		t.reset()
	}

	// Simple taps keep boosting; once enough fast touches pile up the user
	// is scrolling and per-tap pulses are wasted energy.
	if gap < cfg.ShortTouchTime && !t.touchBoostDisable &&
		t.consecutiveFastTouches > scrollDetectCount {
		t.touchBoostDisable = true
	}

	// Sustained scroll: sensitivity mode. No control-plane write keys off
	// this flag; it only gates its own re-arming until the next reset.
	if t.touchBoostDisable && t.consecutiveFastTouches > sensitivityCount &&
		!t.timerSet {
		t.timerSet = true
	}

	if t.touchBoostDisable {
		return decisionSuppress
	}
	return decisionPulseTouch
}

// onVsync classifies one vsync hint. Caller must hold the shared lock.
func (t *touchState) onVsync(now time.Time, hasPayload bool, cfg Config) decision {
	if t.touchBoostDisable {
		// A vsync this long after the last touch means the finger was
		// released; re-enable pulses and arm the vsync budget.
		if now.Sub(t.lastTouchTime) > cfg.VsyncTouchTime {
			t.timerSet = false
			t.vsyncBoost = true
			t.touchBoostDisable = false
			t.vsyncPulseBudget = cfg.VsyncBoostCount
		}
	}

	if t.vsyncBoost && hasPayload && t.vsyncPulseBudget > 0 {
		t.vsyncPulseBudget--
		if t.vsyncPulseBudget == 0 {
			t.vsyncBoost = false
		}
		return decisionPulseVsync
	}

	return decisionSuppress
}
