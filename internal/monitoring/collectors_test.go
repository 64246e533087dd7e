package monitoring

import (
	"strings"
	"testing"

	"github.com/go-logr/logr"
	prom "github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/divyalingaiah/powerhal/internal/boost"
)

type noopSysfs struct{}

func (noopSysfs) Write(string, string) error { return nil }

func (noopSysfs) Read(string, int) (string, error) { return "", nil }

func newTestCoordinator() *boost.Coordinator {
	// Not initialized, so the backend stays None and interaction hints are
	// counted as suppressed.
	return boost.New(boost.DefaultConfig(), noopSysfs{}, nil, logr.Discard())
}

func TestRegisterCollectors(t *testing.T) {
	coord := newTestCoordinator()
	registry := prom.NewPedanticRegistry()

	require.NoError(t, RegisterCollectors(registry, coord, logr.Discard()))

	// 4 unlabeled metrics plus one pulse metric per hint kind.
	count, err := promtestutil.GatherAndCount(registry)
	require.NoError(t, err)
	assert.Equal(t, 6, count)
}

func TestRegisterCollectors_DuplicateRegistration(t *testing.T) {
	coord := newTestCoordinator()
	registry := prom.NewPedanticRegistry()

	require.NoError(t, RegisterCollectors(registry, coord, logr.Discard()))
	assert.Error(t, RegisterCollectors(registry, coord, logr.Discard()))
}

func TestCollectors_SuppressedHints(t *testing.T) {
	coord := newTestCoordinator()
	registry := prom.NewPedanticRegistry()
	require.NoError(t, RegisterCollectors(registry, coord, logr.Discard()))

	coord.Hint(boost.HintInteraction, nil)
	coord.Hint(boost.HintInteraction, nil)

	expected := `
		# HELP powerhal_hints_suppressed_total Number of hints that did not result in a boost pulse.
		# TYPE powerhal_hints_suppressed_total counter
		powerhal_hints_suppressed_total 2
	`
	assert.NoError(t, promtestutil.GatherAndCompare(registry,
		strings.NewReader(expected), "powerhal_hints_suppressed_total"))
}

func TestCollectors_BoostActiveGauge(t *testing.T) {
	coord := newTestCoordinator()
	registry := prom.NewPedanticRegistry()
	require.NoError(t, RegisterCollectors(registry, coord, logr.Discard()))

	expected := `
		# HELP powerhal_boost_active Whether a scheduler-tunable boost window is currently open.
		# TYPE powerhal_boost_active gauge
		powerhal_boost_active 0
	`
	assert.NoError(t, promtestutil.GatherAndCompare(registry,
		strings.NewReader(expected), "powerhal_boost_active"))
}
