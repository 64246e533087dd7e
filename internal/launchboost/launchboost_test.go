package launchboost

import (
	"os"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type sysfsMock struct {
	mock.Mock
}

func (m *sysfsMock) Write(path string, value string) error {
	return m.Called(path, value).Error(0)
}

func (m *sysfsMock) Read(path string, maxLen int) (string, error) {
	args := m.Called(path, maxLen)
	return args.String(0), args.Error(1)
}

func TestSelect_GovernorActive(t *testing.T) {
	fs := &sysfsMock{}

	booster := Select(fs, true, DefaultConfig(), logr.Discard())

	require.IsType(t, &interactiveBooster{}, booster)
}

func TestSelect_PStateFallback(t *testing.T) {
	cfg := DefaultConfig()
	fs := &sysfsMock{}
	fs.On("Read", cfg.PStatePath, minPerfPctLen).Return("45", nil)

	booster := Select(fs, false, cfg, logr.Discard())

	require.IsType(t, &pstateBooster{}, booster)
}

func TestSelect_NothingAvailable(t *testing.T) {
	cfg := DefaultConfig()
	fs := &sysfsMock{}
	fs.On("Read", cfg.PStatePath, minPerfPctLen).Return("", os.ErrNotExist)

	booster := Select(fs, false, cfg, logr.Discard())

	require.IsType(t, disabledBooster{}, booster)
	assert.NotPanics(t, func() {
		booster.Apply(true)
		booster.Apply(false)
	})
	fs.AssertNotCalled(t, "Write", mock.Anything, mock.Anything)
}

func TestInteractiveBooster_Apply(t *testing.T) {
	cfg := DefaultConfig()
	fs := &sysfsMock{}
	fs.On("Write", cfg.InteractiveBoostPath, "1").Return(nil)
	fs.On("Write", cfg.InteractiveBoostPath, "0").Return(nil)

	booster := &interactiveBooster{fs: fs, path: cfg.InteractiveBoostPath, log: logr.Discard()}

	booster.Apply(true)
	fs.AssertCalled(t, "Write", cfg.InteractiveBoostPath, "1")

	booster.Apply(false)
	fs.AssertCalled(t, "Write", cfg.InteractiveBoostPath, "0")
}

func TestPStateBooster_SaveAndRestore(t *testing.T) {
	cfg := DefaultConfig()
	fs := &sysfsMock{}
	fs.On("Read", cfg.PStatePath, minPerfPctLen).Return("45", nil)
	fs.On("Write", cfg.PStatePath, pstateBoostValue).Return(nil)
	fs.On("Write", cfg.PStatePath, "45").Return(nil)

	booster := &pstateBooster{fs: fs, path: cfg.PStatePath, log: logr.Discard()}

	booster.Apply(true)
	fs.AssertCalled(t, "Write", cfg.PStatePath, pstateBoostValue)

	// Repeated application is a no-op while boosted.
	booster.Apply(true)
	fs.AssertNumberOfCalls(t, "Write", 1)

	booster.Apply(false)
	fs.AssertCalled(t, "Write", cfg.PStatePath, "45")

	// Release without an active boost is a no-op.
	booster.Apply(false)
	fs.AssertNumberOfCalls(t, "Write", 2)
}

func TestPStateBooster_ReadFailureSkipsBoost(t *testing.T) {
	cfg := DefaultConfig()
	fs := &sysfsMock{}
	fs.On("Read", cfg.PStatePath, minPerfPctLen).Return("", os.ErrPermission)

	booster := &pstateBooster{fs: fs, path: cfg.PStatePath, log: logr.Discard()}

	booster.Apply(true)

	assert.False(t, booster.boosted)
	fs.AssertNotCalled(t, "Write", mock.Anything, mock.Anything)
}
