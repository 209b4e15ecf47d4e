package sim

// MachineTypeStatus is a read-only snapshot of one machine type.
type MachineTypeStatus struct {
	Spec     MachineTypeSpec
	Working  int
	Queued   int
	InRepair int
}

// Broken counts machines that are queued or being repaired.
func (s MachineTypeStatus) Broken() int {
	return s.Queued + s.InRepair
}

// AdjusterGroupStatus is a read-only snapshot of one adjuster group.
type AdjusterGroupStatus struct {
	Spec AdjusterGroupSpec
	Busy int
	Idle int
}

// MachineTypeStatuses counts current machine states per type.
// Before Initialize every count is zero.
func (sim *Simulator) MachineTypeStatuses() []MachineTypeStatus {
	out := make([]MachineTypeStatus, len(sim.config.MachineTypes))
	for t, mt := range sim.config.MachineTypes {
		out[t].Spec = mt
		if sim.pop == nil {
			continue
		}
		for _, id := range sim.pop.MachinesOfType(t) {
			switch sim.pop.Machine(id).State {
			case MachineWorking:
				out[t].Working++
			case MachineQueued:
				out[t].Queued++
			case MachineInRepair:
				out[t].InRepair++
			}
		}
	}
	return out
}

// AdjusterGroupStatuses counts busy and idle adjusters per group.
// Before Initialize every count is zero.
func (sim *Simulator) AdjusterGroupStatuses() []AdjusterGroupStatus {
	out := make([]AdjusterGroupStatus, len(sim.config.AdjusterGroups))
	for g, grp := range sim.config.AdjusterGroups {
		out[g].Spec = grp
		if sim.pop == nil {
			continue
		}
		for _, id := range sim.pop.AdjustersOfGroup(g) {
			if sim.pop.Adjuster(id).Busy {
				out[g].Busy++
			} else {
				out[g].Idle++
			}
		}
	}
	return out
}
