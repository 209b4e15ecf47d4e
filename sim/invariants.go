package sim

import "fmt"

// CheckInvariants verifies the structural guarantees of the current run:
//   - every machine is in exactly one of working, queued, in-repair
//   - queued machines appear in the repair queue exactly once
//   - an adjuster is busy iff it holds a machine, and that machine is in repair
//   - no machine is held by two adjusters or by an incapable group
//   - per-type instance counts match the configured quantities
//   - accumulated statistics equal the per-instance counters, and every
//     assignment is either a completed repair or one in progress
func (sim *Simulator) CheckInvariants() error {
	if sim.pop == nil {
		return nil
	}
	types := sim.config.MachineTypes
	groups := sim.config.AdjusterGroups

	inQueue := make(map[MachineID]int, sim.queue.Len())
	for _, id := range sim.queue.Items() {
		inQueue[id]++
	}
	holders := make(map[MachineID]AdjusterID)

	for _, a := range sim.pop.Adjusters {
		if a.Busy != (a.Machine != NoMachine) {
			return fmt.Errorf("%s: busy=%v but machine=%d", adjusterLabel(groups, &a), a.Busy, a.Machine)
		}
		if !a.Busy {
			continue
		}
		if prev, dup := holders[a.Machine]; dup {
			return fmt.Errorf("machine %d held by adjusters %d and %d", a.Machine, prev, a.ID)
		}
		holders[a.Machine] = a.ID
		m := sim.pop.Machine(a.Machine)
		if m.State != MachineInRepair {
			return fmt.Errorf("%s holds %s in state %s", adjusterLabel(groups, &a), machineLabel(types, m), m.State)
		}
		if !groups[a.GroupIndex].CanService(types[m.TypeIndex].Name) {
			return fmt.Errorf("%s cannot service %s", adjusterLabel(groups, &a), machineLabel(types, m))
		}
		if a.DaysWorked >= a.RequiredDays {
			return fmt.Errorf("%s: progress %d reached required %d without completing", adjusterLabel(groups, &a), a.DaysWorked, a.RequiredDays)
		}
	}

	working := make([]int64, len(types))
	for i := range sim.pop.Machines {
		m := &sim.pop.Machines[i]
		working[m.TypeIndex] += int64(m.TotalWorkingDays)
		_, held := holders[m.ID]
		switch m.State {
		case MachineWorking:
			if inQueue[m.ID] != 0 || held {
				return fmt.Errorf("working %s is queued or held", machineLabel(types, m))
			}
			if m.RunningDays >= m.FailureThreshold {
				return fmt.Errorf("working %s ran %d days past threshold %d", machineLabel(types, m), m.RunningDays, m.FailureThreshold)
			}
		case MachineQueued:
			if inQueue[m.ID] != 1 || held {
				return fmt.Errorf("queued %s appears %d times in queue (held=%v)", machineLabel(types, m), inQueue[m.ID], held)
			}
		case MachineInRepair:
			if inQueue[m.ID] != 0 || !held {
				return fmt.Errorf("%s in repair but queued or unheld", machineLabel(types, m))
			}
		default:
			return fmt.Errorf("%s has unknown state %q", machineLabel(types, m), m.State)
		}
	}
	if len(inQueue) != sim.queue.Len() {
		return fmt.Errorf("repair queue holds duplicates: %s", sim.queue)
	}

	for t, mt := range types {
		if got := len(sim.pop.MachinesOfType(t)); got != mt.Quantity {
			return fmt.Errorf("machine type %q has %d instances, want %d", mt.Name, got, mt.Quantity)
		}
		if sim.Metrics != nil && sim.Metrics.MachineWorkingDays[t] != working[t] {
			return fmt.Errorf("machine type %q: collected %d working days, instances report %d",
				mt.Name, sim.Metrics.MachineWorkingDays[t], working[t])
		}
	}
	if sim.Metrics != nil {
		if want := sim.Metrics.Repairs + len(holders); sim.Metrics.Assignments != want {
			return fmt.Errorf("%d assignments, but %d repairs completed and %d in progress",
				sim.Metrics.Assignments, sim.Metrics.Repairs, len(holders))
		}
		busy := make([]int64, len(groups))
		for _, a := range sim.pop.Adjusters {
			busy[a.GroupIndex] += int64(a.TotalBusyDays)
		}
		for g, grp := range groups {
			if sim.Metrics.AdjusterBusyDays[g] != busy[g] {
				return fmt.Errorf("adjuster group %q: collected %d busy days, instances report %d",
					grp.ID, sim.Metrics.AdjusterBusyDays[g], busy[g])
			}
		}
	}
	return nil
}
