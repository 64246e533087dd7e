package sysfs

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Handle is a long-lived writer for a single control endpoint. The endpoint
// is opened once and every Write lands at offset 0, so the handle can be
// reused for the process lifetime without reopening the node per write.
type Handle struct {
	path string
	fd   int
}

// OpenHandle opens path for writing and retains the descriptor.
func OpenHandle(path string) (*Handle, error) {
	fd, err := unix.Open(path, unix.O_WRONLY|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s for writing: %w", path, err)
	}

	return &Handle{path: path, fd: fd}, nil
}

// Write writes value to the retained endpoint.
func (h *Handle) Write(value string) error {
	if _, err := unix.Pwrite(h.fd, []byte(value), 0); err != nil {
		return fmt.Errorf("failed to write %q to %s: %w", value, h.path, err)
	}
	return nil
}

// Path returns the endpoint this handle writes to.
func (h *Handle) Path() string {
	return h.path
}

func (h *Handle) Close() error {
	return unix.Close(h.fd)
}
