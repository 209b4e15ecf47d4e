package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimConfig_Validate(t *testing.T) {
	lathe := machineType("lathe", 10, 2, 3)
	crew := adjusterGroup("crew", 1, "lathe")

	tests := []struct {
		name    string
		cfg     SimConfig
		wantErr error
	}{
		{"valid", NewSimConfig([]MachineTypeSpec{lathe}, []AdjusterGroupSpec{crew}, 1), nil},
		{"no machine types", NewSimConfig(nil, []AdjusterGroupSpec{crew}, 1), ErrNoMachineTypes},
		{"no adjuster groups", NewSimConfig([]MachineTypeSpec{lathe}, nil, 1), ErrNoAdjusterGroups},
		{"zero years", NewSimConfig([]MachineTypeSpec{lathe}, []AdjusterGroupSpec{crew}, 0), ErrInvalidYears},
		{"empty capabilities", NewSimConfig([]MachineTypeSpec{lathe}, []AdjusterGroupSpec{adjusterGroup("idle", 1)}, 1), ErrEmptyCapabilities},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
		})
	}
}

func TestSimConfig_Validate_RejectsNonPositiveMachineFields(t *testing.T) {
	cfg := NewSimConfig([]MachineTypeSpec{machineType("press", 0, 1, 1)}, []AdjusterGroupSpec{adjusterGroup("crew", 1, "press")}, 1)
	assert.Error(t, cfg.Validate())
}

func TestSimConfig_Validate_RejectsUnknownTimelineLevel(t *testing.T) {
	cfg := NewSimConfig([]MachineTypeSpec{machineType("press", 5, 1, 1)}, []AdjusterGroupSpec{adjusterGroup("crew", 1, "press")}, 1)
	cfg.TimelineLevel = "verbose"
	assert.Error(t, cfg.Validate())
}

func TestNewSimulator_PreconditionFailure_ReturnsError(t *testing.T) {
	// GIVEN a configuration without adjuster groups
	cfg := NewSimConfig([]MachineTypeSpec{machineType("lathe", 10, 2, 1)}, nil, 1)

	// WHEN a simulator is requested
	s, err := NewSimulator(cfg)

	// THEN the precondition is reported and no simulator is built
	require.ErrorIs(t, err, ErrNoAdjusterGroups)
	assert.Nil(t, s)
}

func TestSimConfig_WithSeed_DoesNotAliasOriginal(t *testing.T) {
	base := NewSimConfig([]MachineTypeSpec{machineType("lathe", 10, 2, 1)}, []AdjusterGroupSpec{adjusterGroup("crew", 1, "lathe")}, 2)
	seeded := base.WithSeed(5)
	assert.Nil(t, base.Seed)
	require.NotNil(t, seeded.Seed)
	assert.Equal(t, int64(5), *seeded.Seed)
	assert.Equal(t, 2*DaysPerYear, seeded.TotalDays())
}

func TestAdjusterGroupSpec_CanService(t *testing.T) {
	g := adjusterGroup("crew", 2, "lathe", "mill")
	assert.True(t, g.CanService("mill"))
	assert.False(t, g.CanService("press"))
}
