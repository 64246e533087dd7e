// Package devices toggles runtime power management for monitored device
// subsystems through their sysfs power/control nodes.
package devices

import (
	"path/filepath"

	"github.com/go-logr/logr"

	"github.com/divyalingaiah/powerhal/internal/sysfs"
)

var defaultRoots = []string{
	"/sys/bus/i2c/devices",
	"/sys/bus/usb/devices",
	"/sys/bus/sdio/devices",
}

const (
	controlOn   = "on"
	controlAuto = "auto"
)

// Func definitions for unit testing
var (
	globFunc = filepath.Glob
)

// Monitor enables or disables runtime PM for every device found under the
// configured subsystem roots.
type Monitor struct {
	fs    sysfs.Interface
	roots []string
	log   logr.Logger
}

func NewMonitor(fs sysfs.Interface, roots []string, log logr.Logger) *Monitor {
	if len(roots) == 0 {
		roots = defaultRoots
	}

	return &Monitor{fs: fs, roots: roots, log: log}
}

// SetState keeps devices fully powered while the system is interactive and
// lets them autosuspend otherwise. Per-device failures are logged and do
// not stop the sweep.
func (m *Monitor) SetState(enabled bool) {
	value := controlAuto
	if enabled {
		value = controlOn
	}

	for _, root := range m.roots {
		nodes, err := globFunc(filepath.Join(root, "*", "power", "control"))
		if err != nil {
			m.log.Error(err, "failed to enumerate devices", "root", root)
			continue
		}

		for _, node := range nodes {
			if err := m.fs.Write(node, value); err != nil {
				m.log.V(5).Info("skipping device", "node", node, "reason", err.Error())
			}
		}
	}

	m.log.V(4).Info("device power state updated", "enabled", enabled)
}
