// Package trace provides the day-tagged event timeline of a maintenance run.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// EventKind classifies a timeline record.
type EventKind string

const (
	KindFailure        EventKind = "failure"
	KindAssignment     EventKind = "assignment"
	KindRepairComplete EventKind = "repair-complete"
)

// Record captures one state change of the simulation.
// Adjuster fields are empty/zero for failure records.
type Record struct {
	Day           int
	Kind          EventKind
	MachineType   string
	MachineIndex  int // 1-based within its type
	AdjusterGroup string
	AdjusterIndex int // 1-based within its group
	Description   string
}
