// Package cpuset assigns CPU spans to cgroup cpuset groups as the system
// moves between interactive and non-interactive states.
package cpuset

import (
	"path/filepath"

	"github.com/go-logr/logr"

	"github.com/divyalingaiah/powerhal/internal/sysfs"
)

const defaultMountRoot = "/dev/cpuset"

// Group is one cpuset cgroup and the CPU spans it gets in each state.
type Group struct {
	Name         string
	EnabledCPUs  string
	DisabledCPUs string
}

type Config struct {
	MountRoot string
	Groups    []Group
}

func DefaultConfig() Config {
	return Config{
		MountRoot: defaultMountRoot,
		Groups: []Group{
			{Name: "foreground", EnabledCPUs: "0-7", DisabledCPUs: "0"},
			{Name: "background", EnabledCPUs: "0-7", DisabledCPUs: "0"},
		},
	}
}

// Controller writes the configured CPU spans to each group's cpus node.
type Controller struct {
	cfg Config
	fs  sysfs.Interface
	log logr.Logger
}

func NewController(cfg Config, fs sysfs.Interface, log logr.Logger) *Controller {
	return &Controller{cfg: cfg, fs: fs, log: log}
}

// SetState applies the interactive or non-interactive span to every group.
// Per-group failures are logged and do not stop the sweep.
func (c *Controller) SetState(enabled bool) {
	for _, group := range c.cfg.Groups {
		cpus := group.DisabledCPUs
		if enabled {
			cpus = group.EnabledCPUs
		}

		node := filepath.Join(c.cfg.MountRoot, group.Name, "cpus")
		if err := c.fs.Write(node, cpus); err != nil {
			c.log.Error(err, "failed to update cpuset group", "group", group.Name)
			continue
		}
		c.log.V(5).Info("cpuset group updated", "group", group.Name, "cpus", cpus)
	}
}
