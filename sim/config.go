package sim

import (
	"errors"
	"fmt"

	"github.com/factory-sim/maintenance-sim/sim/trace"
)

// DaysPerYear is the number of simulated days in one year of run length.
const DaysPerYear = 365

var (
	ErrNoMachineTypes    = errors.New("at least one machine type is required")
	ErrNoAdjusterGroups  = errors.New("at least one adjuster group is required")
	ErrEmptyCapabilities = errors.New("adjuster group must service at least one machine type")
	ErrInvalidYears      = errors.New("run length must be at least one year")
)

// MachineTypeSpec describes one kind of machine and how many units run.
type MachineTypeSpec struct {
	Name       string // unique key
	MTTFDays   int    // mean time to failure (>= 1)
	RepairDays int    // days of adjuster work per repair (>= 1)
	Quantity   int    // instance count (1-1000)
}

// AdjusterGroupSpec describes a crew of interchangeable technicians.
type AdjusterGroupSpec struct {
	ID           string   // unique key
	Count        int      // technician count (1-1000)
	Capabilities []string // machine type names this crew can repair
}

// CanService reports whether the group lists machineType among its capabilities.
func (g AdjusterGroupSpec) CanService(machineType string) bool {
	for _, name := range g.Capabilities {
		if name == machineType {
			return true
		}
	}
	return false
}

// SimConfig groups everything NewSimulator needs for one run.
type SimConfig struct {
	MachineTypes   []MachineTypeSpec
	AdjusterGroups []AdjusterGroupSpec
	Years          int

	// Seed fixes the random stream; nil draws a non-deterministic key.
	Seed *int64

	// FailureModel overrides the exponential model (tests script thresholds).
	// When nil, an ExponentialFailureModel over the run's PartitionedRNG is used.
	FailureModel FailureModel

	// TimelineLevel selects timeline collection; empty means trace.LevelEvents.
	TimelineLevel trace.Level
}

// NewSimConfig builds a SimConfig without a fixed seed.
func NewSimConfig(machineTypes []MachineTypeSpec, groups []AdjusterGroupSpec, years int) SimConfig {
	return SimConfig{
		MachineTypes:   machineTypes,
		AdjusterGroups: groups,
		Years:          years,
	}
}

// WithSeed returns a copy of the config pinned to seed.
func (c SimConfig) WithSeed(seed int64) SimConfig {
	c.Seed = &seed
	return c
}

// TotalDays is the run horizon in simulated days.
func (c SimConfig) TotalDays() int {
	return c.Years * DaysPerYear
}

// Validate checks the preconditions the engine relies on. Range and
// uniqueness checks belong to the configuration loader (see sim/factory);
// only conditions that would make a run meaningless are rejected here.
func (c SimConfig) Validate() error {
	if len(c.MachineTypes) == 0 {
		return ErrNoMachineTypes
	}
	if len(c.AdjusterGroups) == 0 {
		return ErrNoAdjusterGroups
	}
	if c.Years < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidYears, c.Years)
	}
	if !trace.IsValidLevel(string(c.TimelineLevel)) {
		return fmt.Errorf("unknown timeline level %q", c.TimelineLevel)
	}
	for _, mt := range c.MachineTypes {
		if mt.MTTFDays < 1 || mt.RepairDays < 1 || mt.Quantity < 1 {
			return fmt.Errorf("machine type %q: mttf, repair days and quantity must be >= 1", mt.Name)
		}
	}
	for _, g := range c.AdjusterGroups {
		if len(g.Capabilities) == 0 {
			return fmt.Errorf("adjuster group %q: %w", g.ID, ErrEmptyCapabilities)
		}
		if g.Count < 1 {
			return fmt.Errorf("adjuster group %q: count must be >= 1", g.ID)
		}
	}
	return nil
}
