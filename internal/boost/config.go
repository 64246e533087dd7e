package boost

import "time"

// Control endpoints for the two boost mechanisms.
const (
	defaultPulsePath     = "/sys/devices/system/cpu/cpufreq/interactive/touchboostpulse"
	defaultSchedTunePath = "/dev/stune/foreground/schedtune.boost"
)

// Two touch hints closer than the short threshold are treated as part of a
// scroll; two hints further apart than the long threshold start a new
// gesture. A vsync hint more than the vsync-touch gap after the last touch
// means the finger was released.
const (
	defaultShortTouchTime = 20 * time.Millisecond
	defaultLongTouchTime  = 100 * time.Millisecond
	defaultVsyncTouchTime = 30 * time.Millisecond

	// Number of boost pulses granted after a finger release.
	defaultVsyncBoostCount = 4

	// How long a schedtune boost is held after the most recent request.
	defaultHoldDuration = 1 * time.Second
)

// Fast-touch counts that flip the classifier into scroll detection and then
// sensitivity mode.
const (
	scrollDetectCount = 4
	sensitivityCount  = 15
)

const (
	schedTuneBoosted = "40"
	schedTuneNormal  = "10"
	pulseValue       = "1"
)

// Config carries the endpoint paths and tunables of the coordinator. The
// zero value is not usable; start from DefaultConfig.
type Config struct {
	PulsePath     string
	SchedTunePath string

	ShortTouchTime time.Duration
	LongTouchTime  time.Duration
	VsyncTouchTime time.Duration

	VsyncBoostCount uint32
	HoldDuration    time.Duration

	BoostedValue string
	NormalValue  string
	PulseValue   string
}

func DefaultConfig() Config {
	return Config{
		PulsePath:       defaultPulsePath,
		SchedTunePath:   defaultSchedTunePath,
		ShortTouchTime:  defaultShortTouchTime,
		LongTouchTime:   defaultLongTouchTime,
		VsyncTouchTime:  defaultVsyncTouchTime,
		VsyncBoostCount: defaultVsyncBoostCount,
		HoldDuration:    defaultHoldDuration,
		BoostedValue:    schedTuneBoosted,
		NormalValue:     schedTuneNormal,
		PulseValue:      pulseValue,
	}
}
