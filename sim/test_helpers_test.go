package sim

import "testing"

// fixedFailures returns the same threshold for every draw.
type fixedFailures struct {
	days  int
	draws int
}

func (f *fixedFailures) DaysToFailure(MachineTypeSpec) int {
	f.draws++
	return f.days
}

// scriptedFailures returns thresholds from seq in order, then fallback.
type scriptedFailures struct {
	seq      []int
	fallback int
}

func (s *scriptedFailures) DaysToFailure(MachineTypeSpec) int {
	if len(s.seq) == 0 {
		return s.fallback
	}
	d := s.seq[0]
	s.seq = s.seq[1:]
	return d
}

func machineType(name string, mttf, repair, qty int) MachineTypeSpec {
	return MachineTypeSpec{Name: name, MTTFDays: mttf, RepairDays: repair, Quantity: qty}
}

func adjusterGroup(id string, count int, caps ...string) AdjusterGroupSpec {
	return AdjusterGroupSpec{ID: id, Count: count, Capabilities: caps}
}

// newTestSimulator builds a seeded simulator and fails the test on error.
func newTestSimulator(t *testing.T, cfg SimConfig) *Simulator {
	t.Helper()
	if cfg.Seed == nil {
		cfg = cfg.WithSeed(42)
	}
	s, err := NewSimulator(cfg)
	if err != nil {
		t.Fatalf("NewSimulator: %v", err)
	}
	return s
}

// dayCounters is the per-instance progress recorded before a step.
type dayCounters struct {
	machineState []MachineState
	runningDays  []int
	daysWorked   []int
}

func snapshotCounters(pop *Population) dayCounters {
	c := dayCounters{
		machineState: make([]MachineState, len(pop.Machines)),
		runningDays:  make([]int, len(pop.Machines)),
		daysWorked:   make([]int, len(pop.Adjusters)),
	}
	for i, m := range pop.Machines {
		c.machineState[i] = m.State
		c.runningDays[i] = m.RunningDays
	}
	for i, a := range pop.Adjusters {
		c.daysWorked[i] = a.DaysWorked
	}
	return c
}

// checkCounterProgress verifies one day of progress: a machine working on
// both sides of the step ran exactly one more day, any other machine has
// RunningDays 0; a busy adjuster worked exactly one more day (an idle one
// counts as 0 before the step), an idle adjuster has DaysWorked 0.
func checkCounterProgress(t *testing.T, day int, before dayCounters, pop *Population) {
	t.Helper()
	for i, m := range pop.Machines {
		want := 0
		if before.machineState[i] == MachineWorking && m.State == MachineWorking {
			want = before.runningDays[i] + 1
		}
		if m.RunningDays != want {
			t.Fatalf("day %d: machine %d (%s -> %s) RunningDays = %d, want %d",
				day, i, before.machineState[i], m.State, m.RunningDays, want)
		}
	}
	for i, a := range pop.Adjusters {
		want := 0
		if a.Busy {
			want = before.daysWorked[i] + 1
		}
		if a.DaysWorked != want {
			t.Fatalf("day %d: adjuster %d (busy=%v) DaysWorked = %d, want %d",
				day, i, a.Busy, a.DaysWorked, want)
		}
	}
}

// stepChecked advances n days, verifying invariants and per-instance
// counter progress after each one.
func stepChecked(t *testing.T, s *Simulator, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		before := snapshotCounters(s.Population())
		s.Step()
		if err := s.CheckInvariants(); err != nil {
			t.Fatalf("day %d: %v", s.Day(), err)
		}
		checkCounterProgress(t, s.Day(), before, s.Population())
	}
}
