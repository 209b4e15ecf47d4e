package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newInvariantSim(t *testing.T) *Simulator {
	t.Helper()
	s := newTestSimulator(t, NewSimConfig(
		[]MachineTypeSpec{machineType("lathe", 10, 2, 2)},
		[]AdjusterGroupSpec{adjusterGroup("crew", 1, "lathe")}, 1))
	s.Initialize()
	return s
}

func TestCheckInvariants_FreshRunIsConsistent(t *testing.T) {
	assert.NoError(t, newInvariantSim(t).CheckInvariants())
}

func TestCheckInvariants_BeforeInitialize(t *testing.T) {
	s := newTestSimulator(t, NewSimConfig(
		[]MachineTypeSpec{machineType("lathe", 10, 2, 1)},
		[]AdjusterGroupSpec{adjusterGroup("crew", 1, "lathe")}, 1))
	assert.NoError(t, s.CheckInvariants())
}

func TestCheckInvariants_DetectsCorruption(t *testing.T) {
	tests := []struct {
		name    string
		corrupt func(s *Simulator)
	}{
		{"queued machine missing from queue", func(s *Simulator) {
			s.pop.Machine(0).State = MachineQueued
		}},
		{"working machine in queue", func(s *Simulator) {
			s.queue.Enqueue(0)
		}},
		{"duplicate queue entry", func(s *Simulator) {
			s.pop.Machine(0).State = MachineQueued
			s.queue.Enqueue(0)
			s.queue.Enqueue(0)
		}},
		{"busy adjuster without machine", func(s *Simulator) {
			s.pop.Adjuster(0).Busy = true
		}},
		{"in-repair machine without holder", func(s *Simulator) {
			s.pop.Machine(1).State = MachineInRepair
		}},
		{"working past threshold", func(s *Simulator) {
			m := s.pop.Machine(0)
			m.RunningDays = m.FailureThreshold
		}},
		{"statistics drift", func(s *Simulator) {
			s.Metrics.RecordWorkingDay(0)
		}},
		{"assignment count drift", func(s *Simulator) {
			s.Metrics.Assignments++
		}},
		{"busy-day drift", func(s *Simulator) {
			s.pop.Adjuster(0).TotalBusyDays = 4
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newInvariantSim(t)
			tt.corrupt(s)
			assert.Error(t, s.CheckInvariants())
		})
	}
}
