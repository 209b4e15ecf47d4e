package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/factory-sim/maintenance-sim/sim/internal/testutil"
)

// TestSimulator_GoldenDataset runs each hand-computed scenario with a fixed
// failure threshold and compares every counter.
func TestSimulator_GoldenDataset(t *testing.T) {
	dataset := testutil.LoadGoldenDataset(t)
	if len(dataset.Tests) == 0 {
		t.Fatal("golden dataset has no test cases")
	}

	for _, tc := range dataset.Tests {
		t.Run(tc.Name, func(t *testing.T) {
			types := make([]MachineTypeSpec, len(tc.MachineTypes))
			for i, mt := range tc.MachineTypes {
				types[i] = machineType(mt.Name, mt.MTTFDays, mt.RepairDays, mt.Quantity)
			}
			groups := make([]AdjusterGroupSpec, len(tc.AdjusterGroups))
			for i, g := range tc.AdjusterGroups {
				groups[i] = adjusterGroup(g.ID, g.Count, g.Services...)
			}
			cfg := NewSimConfig(types, groups, tc.Years)
			cfg.FailureModel = &fixedFailures{days: tc.ThresholdDays}

			s := newTestSimulator(t, cfg)
			m := s.Run()

			var working, busy int64
			for _, v := range m.MachineWorkingDays {
				working += v
			}
			for _, v := range m.AdjusterBusyDays {
				busy += v
			}
			want := tc.Metrics
			assert.Equal(t, want.Failures, m.Failures, "failures")
			assert.Equal(t, want.Repairs, m.Repairs, "repairs")
			assert.Equal(t, want.WorkingDays, working, "working days")
			assert.Equal(t, want.BusyDays, busy, "busy days")
			assert.Equal(t, want.PeakQueueLength, m.PeakQueueLength, "peak queue length")
			assert.Equal(t, want.PeakQueueDay, m.PeakQueueDay, "peak queue day")

			u := s.Utilization()
			testutil.AssertFloat64Equal(t, "machine_utilization_percent", want.MachineUtilizationPercent, u.OverallMachineUtilization, 1e-9)
			testutil.AssertFloat64Equal(t, "adjuster_utilization_percent", want.AdjusterUtilizationPercent, u.OverallAdjusterUtilization, 1e-9)
		})
	}
}
