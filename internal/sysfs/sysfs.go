// Package sysfs provides access to the kernel control endpoints used for
// boosting: short string values written to or read from sysfs and cgroup
// pseudofiles.
package sysfs

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-logr/logr"
)

const defaultReadLen = 80

// Interface is the control plane primitive. All boost mechanisms go through
// it so that tests can substitute an in-memory implementation.
type Interface interface {
	// Write writes value to the endpoint at path.
	Write(path string, value string) error
	// Read reads up to maxLen bytes from the endpoint at path and returns
	// the value with surrounding whitespace trimmed.
	Read(path string, maxLen int) (string, error)
}

type fsAccessor struct {
	log logr.Logger
}

// New returns an Interface backed by the real filesystem.
func New(log logr.Logger) Interface {
	return &fsAccessor{log: log}
}

func (f *fsAccessor) Write(path string, value string) error {
	if err := os.WriteFile(path, []byte(value), 0644); err != nil {
		return fmt.Errorf("failed to write %q to %s: %w", value, path, err)
	}

	f.log.V(5).Info("wrote control endpoint", "path", path, "value", value)
	return nil
}

func (f *fsAccessor) Read(path string, maxLen int) (string, error) {
	if maxLen <= 0 {
		maxLen = defaultReadLen
	}

	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	buf := make([]byte, maxLen)
	n, err := file.Read(buf)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	return strings.TrimSpace(string(buf[:n])), nil
}
