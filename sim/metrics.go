// Accumulates run-wide maintenance statistics: machine working days,
// adjuster busy days and repair-queue depth.

package sim

// Metrics aggregates statistics about the simulation for final reporting.
type Metrics struct {
	SimulatedDays int

	MachineWorkingDays []int64 // indexed by machine type
	AdjusterBusyDays   []int64 // indexed by adjuster group

	PeakQueueLength int
	PeakQueueDay    int   // first day the peak was observed
	QueueLengths    []int // queue length at the end of each day

	Failures    int
	Assignments int
	Repairs     int
}

// NewMetrics creates zeroed counters for numTypes machine types and numGroups groups.
func NewMetrics(numTypes, numGroups int) *Metrics {
	return &Metrics{
		MachineWorkingDays: make([]int64, numTypes),
		AdjusterBusyDays:   make([]int64, numGroups),
		QueueLengths:       make([]int, 0),
	}
}

// RecordWorkingDay credits one running day to a machine type.
func (m *Metrics) RecordWorkingDay(typeIdx int) {
	m.MachineWorkingDays[typeIdx]++
}

// RecordBusyDay credits one busy day to an adjuster group.
func (m *Metrics) RecordBusyDay(groupIdx int) {
	m.AdjusterBusyDays[groupIdx]++
}

// SampleQueue records the queue length at a day boundary.
func (m *Metrics) SampleQueue(day, length int) {
	m.SimulatedDays = day
	m.QueueLengths = append(m.QueueLengths, length)
	if length > m.PeakQueueLength {
		m.PeakQueueLength = length
		m.PeakQueueDay = day
	}
}

// MeanQueueLength averages the end-of-day queue samples.
func (m *Metrics) MeanQueueLength() float64 {
	return CalculateMean(m.QueueLengths)
}

// MachineTypeUtilization is the derived uptime of one machine type.
type MachineTypeUtilization struct {
	Name          string  `json:"name"`
	Quantity      int     `json:"quantity"`
	WorkingDays   int64   `json:"working_days"`
	UptimePercent float64 `json:"uptime_percent"`
}

// AdjusterGroupUtilization is the derived utilization of one adjuster group.
type AdjusterGroupUtilization struct {
	ID                 string  `json:"id"`
	Count              int     `json:"count"`
	BusyDays           int64   `json:"busy_days"`
	UtilizationPercent float64 `json:"utilization_percent"`
}

// Utilization holds the percentages derived from Metrics. Overall figures
// sum numerators and denominators; they are never averages of percentages.
type Utilization struct {
	SimulatedDays int `json:"simulated_days"`

	MachineTypes              []MachineTypeUtilization `json:"machine_types"`
	OverallMachineUtilization float64                  `json:"overall_machine_utilization_percent"`

	AdjusterGroups             []AdjusterGroupUtilization `json:"adjuster_groups"`
	OverallAdjusterUtilization float64                    `json:"overall_adjuster_utilization_percent"`

	PeakQueueLength int     `json:"peak_queue_length"`
	PeakQueueDay    int     `json:"peak_queue_day"`
	MeanQueueLength float64 `json:"mean_queue_length"`
	P95QueueLength  float64 `json:"p95_queue_length"`
	Failures        int     `json:"failures"`
	Assignments     int     `json:"assignments"`
	Repairs         int     `json:"repairs"`
}

// Utilization derives per-type uptime and per-group utilization.
func (m *Metrics) Utilization(types []MachineTypeSpec, groups []AdjusterGroupSpec) Utilization {
	days := int64(m.SimulatedDays)
	u := Utilization{
		SimulatedDays:   m.SimulatedDays,
		MachineTypes:    make([]MachineTypeUtilization, len(types)),
		AdjusterGroups:  make([]AdjusterGroupUtilization, len(groups)),
		PeakQueueLength: m.PeakQueueLength,
		PeakQueueDay:    m.PeakQueueDay,
		MeanQueueLength: m.MeanQueueLength(),
		P95QueueLength:  CalculatePercentile(m.QueueLengths, 95),
		Failures:        m.Failures,
		Assignments:     m.Assignments,
		Repairs:         m.Repairs,
	}

	var machineDays, workingDays int64
	for t, mt := range types {
		capacity := int64(mt.Quantity) * days
		worked := m.MachineWorkingDays[t]
		machineDays += capacity
		workingDays += worked
		u.MachineTypes[t] = MachineTypeUtilization{
			Name:          mt.Name,
			Quantity:      mt.Quantity,
			WorkingDays:   worked,
			UptimePercent: percent(worked, capacity),
		}
	}
	u.OverallMachineUtilization = percent(workingDays, machineDays)

	var adjusterDays, busyDays int64
	for g, grp := range groups {
		capacity := int64(grp.Count) * days
		busy := m.AdjusterBusyDays[g]
		adjusterDays += capacity
		busyDays += busy
		u.AdjusterGroups[g] = AdjusterGroupUtilization{
			ID:                 grp.ID,
			Count:              grp.Count,
			BusyDays:           busy,
			UtilizationPercent: percent(busy, capacity),
		}
	}
	u.OverallAdjusterUtilization = percent(busyDays, adjusterDays)

	return u
}

// percent returns 100*num/denom, or 0 when denom is 0.
func percent(num, denom int64) float64 {
	if denom <= 0 {
		return 0
	}
	return 100 * float64(num) / float64(denom)
}
