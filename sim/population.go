package sim

import "fmt"

// MachineID indexes a machine in Population.Machines.
type MachineID int

// AdjusterID indexes an adjuster in Population.Adjusters.
type AdjusterID int

// NoMachine marks an idle adjuster.
const NoMachine MachineID = -1

// MachineState is the lifecycle state of a machine instance.
// Exactly one state holds at any time.
type MachineState string

const (
	MachineWorking  MachineState = "working"
	MachineQueued   MachineState = "queued"
	MachineInRepair MachineState = "in-repair"
)

// Machine is one physical unit of a machine type.
type Machine struct {
	ID          MachineID
	TypeIndex   int // index into SimConfig.MachineTypes
	IndexInType int

	State            MachineState
	RunningDays      int // days run since the last repair
	FailureThreshold int // running days at which the machine fails
	TotalWorkingDays int
}

// Working reports whether the machine is running and accruing days.
func (m *Machine) Working() bool {
	return m.State == MachineWorking
}

// Adjuster is one technician of an adjuster group.
type Adjuster struct {
	ID           AdjusterID
	GroupIndex   int // index into SimConfig.AdjusterGroups
	IndexInGroup int

	Busy          bool
	DaysWorked    int       // progress on the current job
	RequiredDays  int       // repair duration of the current job
	Machine       MachineID // NoMachine when idle
	TotalBusyDays int
}

// Population owns every machine and adjuster instance of a run. Adjusters
// refer to machines by MachineID, never by pointer.
type Population struct {
	Machines  []Machine
	Adjusters []Adjuster

	machinesByType   [][]MachineID
	adjustersByGroup [][]AdjusterID
}

// NewPopulation builds fresh instances: every machine working with a newly
// drawn failure threshold, every adjuster idle.
func NewPopulation(types []MachineTypeSpec, groups []AdjusterGroupSpec, failures FailureModel) *Population {
	p := &Population{
		machinesByType:   make([][]MachineID, len(types)),
		adjustersByGroup: make([][]AdjusterID, len(groups)),
	}

	for t, mt := range types {
		ids := make([]MachineID, 0, mt.Quantity)
		for q := 0; q < mt.Quantity; q++ {
			id := MachineID(len(p.Machines))
			p.Machines = append(p.Machines, Machine{
				ID:               id,
				TypeIndex:        t,
				IndexInType:      q,
				State:            MachineWorking,
				FailureThreshold: failures.DaysToFailure(mt),
			})
			ids = append(ids, id)
		}
		p.machinesByType[t] = ids
	}

	for g, grp := range groups {
		ids := make([]AdjusterID, 0, grp.Count)
		for q := 0; q < grp.Count; q++ {
			id := AdjusterID(len(p.Adjusters))
			p.Adjusters = append(p.Adjusters, Adjuster{
				ID:           id,
				GroupIndex:   g,
				IndexInGroup: q,
				Machine:      NoMachine,
			})
			ids = append(ids, id)
		}
		p.adjustersByGroup[g] = ids
	}

	return p
}

// Machine returns the machine with the given id.
func (p *Population) Machine(id MachineID) *Machine {
	return &p.Machines[id]
}

// Adjuster returns the adjuster with the given id.
func (p *Population) Adjuster(id AdjusterID) *Adjuster {
	return &p.Adjusters[id]
}

// MachinesOfType returns the ids of a machine type's instances in index order.
func (p *Population) MachinesOfType(typeIdx int) []MachineID {
	return p.machinesByType[typeIdx]
}

// AdjustersOfGroup returns the ids of a group's adjusters in index order.
func (p *Population) AdjustersOfGroup(groupIdx int) []AdjusterID {
	return p.adjustersByGroup[groupIdx]
}

// machineLabel renders "lathe #3" (1-based) for timeline descriptions.
func machineLabel(types []MachineTypeSpec, m *Machine) string {
	return fmt.Sprintf("%s #%d", types[m.TypeIndex].Name, m.IndexInType+1)
}

// adjusterLabel renders "adjuster 2 of group crew-a" (1-based).
func adjusterLabel(groups []AdjusterGroupSpec, a *Adjuster) string {
	return fmt.Sprintf("adjuster %d of group %s", a.IndexInGroup+1, groups[a.GroupIndex].ID)
}
