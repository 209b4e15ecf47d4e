package sim

import (
	"github.com/sirupsen/logrus"

	"github.com/factory-sim/maintenance-sim/sim/trace"
)

// AssignmentPolicy picks an idle adjuster able to repair a machine.
// Implementations must be deterministic for a fixed population state.
type AssignmentPolicy interface {
	SelectAdjuster(m *Machine, pop *Population) (AdjusterID, bool)
}

// FirstIdlePolicy scans capable groups in configured order and, within a
// group, adjusters in index order; the first idle adjuster wins.
type FirstIdlePolicy struct {
	// capableGroups[t] lists group indices able to service machine type t,
	// in configured group order.
	capableGroups [][]int
}

// NewFirstIdlePolicy precomputes the capability index for types and groups.
func NewFirstIdlePolicy(types []MachineTypeSpec, groups []AdjusterGroupSpec) *FirstIdlePolicy {
	capable := make([][]int, len(types))
	for t, mt := range types {
		for g, grp := range groups {
			if grp.CanService(mt.Name) {
				capable[t] = append(capable[t], g)
			}
		}
	}
	return &FirstIdlePolicy{capableGroups: capable}
}

// CapableGroups returns the group indices that can service machine type t.
func (p *FirstIdlePolicy) CapableGroups(typeIdx int) []int {
	return p.capableGroups[typeIdx]
}

func (p *FirstIdlePolicy) SelectAdjuster(m *Machine, pop *Population) (AdjusterID, bool) {
	for _, g := range p.capableGroups[m.TypeIndex] {
		for _, id := range pop.AdjustersOfGroup(g) {
			if !pop.Adjuster(id).Busy {
				return id, true
			}
		}
	}
	return 0, false
}

// assignAdjusters drains the repair queue against idle adjusters. Only the
// machines queued when the pass starts are offered, each exactly once, in
// arrival order; a machine nobody can take goes back to the tail and waits
// for the next day's pass.
func (sim *Simulator) assignAdjusters(day int) {
	n := sim.queue.Len()
	for i := 0; i < n; i++ {
		id, ok := sim.queue.Dequeue()
		if !ok {
			break
		}
		m := sim.pop.Machine(id)
		adjID, found := sim.policy.SelectAdjuster(m, sim.pop)
		if !found {
			sim.queue.Enqueue(id)
			continue
		}
		sim.startRepair(day, m, sim.pop.Adjuster(adjID))
	}
}

// startRepair links an idle adjuster to a queued machine.
func (sim *Simulator) startRepair(day int, m *Machine, a *Adjuster) {
	if a.Busy {
		panic("startRepair: adjuster is already busy")
	}
	if m.State != MachineQueued {
		panic("startRepair: machine is not queued")
	}
	mt := sim.config.MachineTypes[m.TypeIndex]

	a.Busy = true
	a.DaysWorked = 0
	a.RequiredDays = mt.RepairDays
	a.Machine = m.ID

	m.State = MachineInRepair
	sim.Metrics.Assignments++

	desc := "assign " + adjusterLabel(sim.config.AdjusterGroups, a) + " to repair machine " + machineLabel(sim.config.MachineTypes, m)
	sim.recordEvent(day, trace.KindAssignment, m, a, desc)
	logrus.Debugf("[day %05d] %s", day, desc)
}
