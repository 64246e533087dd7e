package boost

// Backend identifies the boost mechanism selected at init. Selection happens
// once; the value is immutable for the process lifetime.
type Backend int

const (
	// BackendNone means no boost endpoint was available; all hints are no-ops.
	BackendNone Backend = iota
	// BackendInteractiveGovernor pulses the interactive governor's
	// touchboost endpoint. The pulse is self-expiring in the kernel.
	BackendInteractiveGovernor
	// BackendSchedTunable writes schedtune boost values and relies on the
	// deboost scheduler to revert them.
	BackendSchedTunable
)

func (b Backend) String() string {
	switch b {
	case BackendInteractiveGovernor:
		return "interactive-governor"
	case BackendSchedTunable:
		return "scheduler-tunable"
	default:
		return "none"
	}
}
