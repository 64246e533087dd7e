// Package input tails Linux evdev devices and delivers an interaction hint
// to the coordinator for every touch event.
package input

import (
	"context"
	"os"
	"sync"

	"github.com/go-logr/logr"

	"github.com/divyalingaiah/powerhal/internal/boost"
)

const readBufSize = 4096

// Hinter receives the hints decoded from the event stream. Satisfied by
// *boost.Coordinator.
type Hinter interface {
	Hint(kind boost.HintKind, data any)
}

// Reader reads touch events from a set of evdev device nodes for the
// process lifetime. Each device gets its own goroutine; a device that fails
// to open or read is logged and abandoned, the rest keep running.
type Reader struct {
	hinter     Hinter
	log        logr.Logger
	cancelFunc func()
	waitGroup  sync.WaitGroup
}

func NewReader(hinter Hinter, devicePaths []string, log logr.Logger) *Reader {
	ctx, cancelFunc := context.WithCancel(context.Background())

	r := &Reader{
		hinter:     hinter,
		log:        log,
		cancelFunc: cancelFunc,
	}

	for _, path := range devicePaths {
		r.waitGroup.Add(1)
		go r.readLoop(ctx, path)
	}

	return r
}

func (r *Reader) Stop() {
	r.cancelFunc()
	r.waitGroup.Wait()
}

func (r *Reader) readLoop(ctx context.Context, path string) {
	defer r.waitGroup.Done()

	device, err := os.Open(path)
	if err != nil {
		r.log.Error(err, "failed to open input device", "path", path)
		return
	}
	defer device.Close()

	go func() {
		<-ctx.Done()
		// Unblocks the pending Read.
		device.Close()
	}()

	parser := &eventParser{}
	buf := make([]byte, readBufSize)

	for {
		n, err := device.Read(buf)
		if err != nil {
			if ctx.Err() == nil {
				r.log.Error(err, "input device read failed", "path", path)
			}
			return
		}

		parser.feed(buf[:n], func(etype uint16, code uint16, value int32) {
			if isTouchEvent(etype, code) {
				r.hinter.Hint(boost.HintInteraction, nil)
			}
		})
	}
}
