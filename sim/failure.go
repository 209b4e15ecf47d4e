package sim

import "math"

// FailureModel draws the number of running days until a machine's next failure.
type FailureModel interface {
	// DaysToFailure returns a threshold >= 1 for one unit of machine type mt
	// (mt.MTTFDays >= 1).
	DaysToFailure(mt MachineTypeSpec) int
}

// ExponentialFailureModel draws thresholds from Exp(1/mttf), truncated to
// whole days and clamped up to 1 so no machine fails before running a day.
// Each machine type draws from its own stream, SubsystemMachineType(name).
type ExponentialFailureModel struct {
	rng *PartitionedRNG
}

// NewExponentialFailureModel binds the model to a run's partitioned RNG.
func NewExponentialFailureModel(rng *PartitionedRNG) *ExponentialFailureModel {
	if rng == nil {
		panic("NewExponentialFailureModel: rng must not be nil")
	}
	return &ExponentialFailureModel{rng: rng}
}

func (m *ExponentialFailureModel) DaysToFailure(mt MachineTypeSpec) int {
	mttf := mt.MTTFDays
	if mttf < 1 {
		mttf = 1
	}
	val := m.rng.ForSubsystem(SubsystemMachineType(mt.Name)).ExpFloat64() * float64(mttf)
	if math.IsInf(val, 0) || math.IsNaN(val) {
		return 1
	}
	days := int(math.Floor(val))
	if days < 1 {
		return 1
	}
	return days
}
