// Package boost turns transient interaction events into bounded,
// auto-reverting CPU performance boosts. The coordinator owns the gesture
// classifier, the boost backend selected at init and the deboost scheduler,
// all sharing a single lock.
package boost

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-logr/logr"

	"github.com/divyalingaiah/powerhal/internal/launchboost"
	"github.com/divyalingaiah/powerhal/internal/sysfs"
)

// Func definitions for unit testing
var (
	openHandleFunc = sysfs.OpenHandle
)

// HintKind identifies an event delivered by the hosting runtime.
type HintKind int

const (
	HintInteraction HintKind = iota
	HintVsync
	HintLowPower
	HintAppLaunch
)

func (k HintKind) String() string {
	switch k {
	case HintInteraction:
		return "interaction"
	case HintVsync:
		return "vsync"
	case HintLowPower:
		return "low-power"
	case HintAppLaunch:
		return "app-launch"
	default:
		return "unknown"
	}
}

// StateSetter enables or disables a group of power-managed resources. The
// device power monitor and the cpuset controller satisfy it.
type StateSetter interface {
	SetState(enabled bool)
}

type counters struct {
	boosts      atomic.Uint64
	deboosts    atomic.Uint64
	touchPulses atomic.Uint64
	vsyncPulses atomic.Uint64
	suppressed  atomic.Uint64
}

// Coordinator is the externally visible entry point for power hints. A
// single instance is created at process start; Init must be called before
// any hint is delivered.
type Coordinator struct {
	mu  sync.Mutex
	cfg Config
	fs  sysfs.Interface
	log logr.Logger

	collaborators []StateSetter

	backend     Backend
	touch       touchState
	sched       *deboostScheduler
	schedHandle *sysfs.Handle
	launch      launchboost.Booster

	stats    counters
	initOnce sync.Once
}

func New(cfg Config, fs sysfs.Interface, collaborators []StateSetter, log logr.Logger) *Coordinator {
	return &Coordinator{
		cfg:           cfg,
		fs:            fs,
		collaborators: collaborators,
		log:           log,
	}
}

// Init enables the external collaborators and selects the boost backend.
// Safe to call more than once; only the first call has any effect.
func (c *Coordinator) Init() {
	c.initOnce.Do(func() {
		for _, collaborator := range c.collaborators {
			collaborator.SetState(true)
		}

		c.backend = c.selectBackend()
		c.launch = launchboost.Select(
			c.fs,
			c.backend == BackendInteractiveGovernor,
			launchboost.DefaultConfig(),
			c.log.WithName("launchboost"),
		)
		c.log.Info("boost backend selected", "backend", c.backend.String())
	})
}

// selectBackend probes the scheduler-tunable endpoint first and keeps the
// write handle open for the process lifetime; the interactive governor is
// the fallback. Probe failures are non-fatal and degrade to no boosting.
func (c *Coordinator) selectBackend() Backend {
	handle, err := openHandleFunc(c.cfg.SchedTunePath)
	if err == nil {
		c.schedHandle = handle
		c.sched = newDeboostScheduler(&c.mu, handle, c.cfg, &c.stats, c.log.WithName("deboost"))
		return BackendSchedTunable
	}
	c.log.V(4).Info("scheduler-tunable endpoint unavailable",
		"path", c.cfg.SchedTunePath, "reason", err.Error())

	if _, err := c.fs.Read(c.cfg.PulsePath, 1); err == nil {
		return BackendInteractiveGovernor
	}
	c.log.V(4).Info("interactive governor pulse endpoint unavailable",
		"path", c.cfg.PulsePath)

	return BackendNone
}

// SetInteractive forwards interactivity changes to the collaborators.
func (c *Coordinator) SetInteractive(on bool) {
	for _, collaborator := range c.collaborators {
		collaborator.SetState(on)
	}
}

// Hint routes one event from the hosting runtime. A nil data means no
// payload. Unknown kinds and low-power hints are no-ops.
func (c *Coordinator) Hint(kind HintKind, data any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Sampled under the lock so concurrently delivered hints cannot reach
	// the classifier or scheduler with out-of-order timestamps.
	now := timeNow()

	switch kind {
	case HintInteraction:
		c.onInteractionHint(now)
	case HintVsync:
		c.onVsyncHint(now, data != nil)
	case HintAppLaunch:
		if c.launch != nil {
			c.launch.Apply(data != nil)
		}
	default:
	}
}

func (c *Coordinator) onInteractionHint(now time.Time) {
	switch c.backend {
	case BackendSchedTunable:
		// Classifier state is bypassed for this backend; every hint
		// extends the deboost window.
		c.sched.requestBoost(now)
		c.stats.touchPulses.Add(1)
	case BackendInteractiveGovernor:
		if c.touch.onInteraction(now, c.cfg) == decisionPulseTouch {
			c.pulse()
			c.stats.touchPulses.Add(1)
		} else {
			c.stats.suppressed.Add(1)
		}
	default:
		c.stats.suppressed.Add(1)
	}
}

func (c *Coordinator) onVsyncHint(now time.Time, hasPayload bool) {
	if c.backend != BackendInteractiveGovernor {
		c.stats.suppressed.Add(1)
		return
	}

	if c.touch.onVsync(now, hasPayload, c.cfg) == decisionPulseVsync {
		c.pulse()
		c.stats.vsyncPulses.Add(1)
	} else {
		c.stats.suppressed.Add(1)
	}
}

func (c *Coordinator) pulse() {
	if err := c.fs.Write(c.cfg.PulsePath, c.cfg.PulseValue); err != nil {
		c.log.Error(err, "touchboost pulse failed")
	}
}

// Backend returns the backend selected at init.
func (c *Coordinator) Backend() Backend {
	return c.backend
}

// BoostActive reports whether a scheduler-tunable boost window is open.
func (c *Coordinator) BoostActive() bool {
	if c.sched == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sched.armed()
}

func (c *Coordinator) Boosts() uint64          { return c.stats.boosts.Load() }
func (c *Coordinator) Deboosts() uint64        { return c.stats.deboosts.Load() }
func (c *Coordinator) TouchPulses() uint64     { return c.stats.touchPulses.Load() }
func (c *Coordinator) VsyncPulses() uint64     { return c.stats.vsyncPulses.Load() }
func (c *Coordinator) SuppressedHints() uint64 { return c.stats.suppressed.Load() }

// Close stops the deboost scheduler and releases the retained endpoint
// handle.
func (c *Coordinator) Close() {
	if c.sched != nil {
		c.sched.stop()
	}
	if c.schedHandle != nil {
		if err := c.schedHandle.Close(); err != nil {
			c.log.V(5).Info("error while closing boost endpoint handle", "err", err.Error())
		}
	}
}
