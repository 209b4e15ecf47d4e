// Package sim provides the day-stepped maintenance simulation engine.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - population.go: machine and adjuster instances (working → queued → in-repair)
//   - assignment.go: the daily pass matching queued machines to idle, capable adjusters
//   - simulator.go: the day loop, failures and repair completion
//
// # Architecture
//
// The sim package owns the core; collaborators live in sub-packages:
//   - sim/factory/: YAML factory definitions, validation, conversion to SimConfig
//   - sim/trace/: the day-tagged event timeline
//   - sim/report/: utilization tables, queue chart and JSON export
//
// # Key Interfaces
//
//   - FailureModel: days until a machine's next failure
//   - AssignmentPolicy: choose an idle adjuster for a queued machine
//
// Machines live in a single arena (Population.Machines); adjusters refer to
// them by MachineID. All randomness comes from one PartitionedRNG seeded at
// construction, with one failure stream per machine type name, so a fixed
// seed reproduces a run exactly.
package sim
