// Package launchboost applies a two-state performance boost while app launch
// data is present, using whichever mechanism the platform offers.
package launchboost

import (
	"sync"

	"github.com/go-logr/logr"

	"github.com/divyalingaiah/powerhal/internal/sysfs"
)

const (
	defaultInteractiveBoostPath = "/sys/devices/system/cpu/cpufreq/interactive/boost"
	defaultPStatePath           = "/sys/devices/system/cpu/intel_pstate/min_perf_pct"

	pstateBoostValue = "100"
	minPerfPctLen    = 4
)

type Config struct {
	InteractiveBoostPath string
	PStatePath           string
}

func DefaultConfig() Config {
	return Config{
		InteractiveBoostPath: defaultInteractiveBoostPath,
		PStatePath:           defaultPStatePath,
	}
}

// Booster toggles the app-launch boost. Apply is keyed on whether launch
// data is present in the hint.
type Booster interface {
	Apply(active bool)
}

// Select picks the launch boost mechanism once at init: the interactive
// governor's boost toggle when that backend is active, otherwise the
// intel_pstate min_perf_pct floor if it is readable, otherwise nothing.
func Select(fs sysfs.Interface, governorActive bool, cfg Config, log logr.Logger) Booster {
	if governorActive {
		return &interactiveBooster{fs: fs, path: cfg.InteractiveBoostPath, log: log}
	}

	if _, err := fs.Read(cfg.PStatePath, minPerfPctLen); err == nil {
		return &pstateBooster{fs: fs, path: cfg.PStatePath, log: log}
	}

	log.V(4).Info("no launch boost mechanism available")
	return disabledBooster{}
}

type interactiveBooster struct {
	fs   sysfs.Interface
	path string
	log  logr.Logger
}

func (b *interactiveBooster) Apply(active bool) {
	value := "0"
	if active {
		value = "1"
	}

	if err := b.fs.Write(b.path, value); err != nil {
		b.log.Error(err, "launch boost write failed")
		return
	}
	b.log.V(4).Info("launch boost toggled", "active", active)
}

// pstateBooster raises the intel_pstate minimum performance floor to 100%
// for the duration of a launch, restoring the value read before boosting.
// Repeated Apply calls with the same state are no-ops.
type pstateBooster struct {
	fs   sysfs.Interface
	path string
	log  logr.Logger

	mu        sync.Mutex
	boosted   bool
	savedPerf string
}

func (b *pstateBooster) Apply(active bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if active {
		if b.boosted {
			return
		}
		saved, err := b.fs.Read(b.path, minPerfPctLen)
		if err != nil {
			b.log.Error(err, "failed to read min_perf_pct before boosting")
			return
		}
		if err := b.fs.Write(b.path, pstateBoostValue); err != nil {
			b.log.Error(err, "launch boost write failed")
			return
		}
		b.savedPerf = saved
		b.boosted = true
		b.log.V(4).Info("launch boost applied", "restoreValue", saved)
		return
	}

	if !b.boosted {
		return
	}
	if err := b.fs.Write(b.path, b.savedPerf); err != nil {
		b.log.Error(err, "failed to restore min_perf_pct")
		return
	}
	b.boosted = false
	b.log.V(4).Info("launch boost released")
}

type disabledBooster struct{}

func (disabledBooster) Apply(bool) {}
