// sim/simulator.go
package sim

import (
	"github.com/sirupsen/logrus"

	"github.com/factory-sim/maintenance-sim/sim/trace"
)

// Simulator is the core object that holds the simulated day, the machine and
// adjuster population, the repair queue and the day-step loop.
//
// One day is processed as: assignment pass, machine pass, adjuster pass,
// queue sample. A machine failing on day N is first offered to adjusters on
// day N+1; an adjuster finishing on day N takes new work on day N+1.
type Simulator struct {
	config SimConfig
	key    SimulationKey
	rng    *PartitionedRNG

	failures FailureModel
	policy   AssignmentPolicy

	pop      *Population
	queue    *RepairQueue
	timeline *trace.Timeline
	Metrics  *Metrics

	day       int
	totalDays int
}

// NewSimulator validates cfg and builds a simulator. The random streams are
// seeded once here; re-initializing does not re-seed them.
func NewSimulator(cfg SimConfig) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	key := NewRandomSimulationKey()
	if cfg.Seed != nil {
		key = NewSimulationKey(*cfg.Seed)
	}
	rng := NewPartitionedRNG(key)

	failures := cfg.FailureModel
	if failures == nil {
		failures = NewExponentialFailureModel(rng)
	}

	policy := NewFirstIdlePolicy(cfg.MachineTypes, cfg.AdjusterGroups)
	for t, mt := range cfg.MachineTypes {
		if len(policy.CapableGroups(t)) == 0 {
			logrus.Warnf("machine type %q is not serviced by any adjuster group; failed units will stay queued", mt.Name)
		}
	}

	return &Simulator{
		config:    cfg,
		key:       key,
		rng:       rng,
		failures:  failures,
		policy:    policy,
		queue:     &RepairQueue{},
		timeline:  trace.NewTimeline(cfg.TimelineLevel),
		totalDays: cfg.TotalDays(),
	}, nil
}

// Initialize discards any previous run and builds a fresh population.
// The repair queue, timeline and statistics are cleared as well.
func (sim *Simulator) Initialize() {
	sim.pop = NewPopulation(sim.config.MachineTypes, sim.config.AdjusterGroups, sim.failures)
	sim.queue.Reset()
	sim.timeline.Reset()
	sim.Metrics = NewMetrics(len(sim.config.MachineTypes), len(sim.config.AdjusterGroups))
	sim.day = 0

	logrus.Infof("Simulation initialized: %d machine types (%d machines), %d adjuster groups (%d adjusters)",
		len(sim.config.MachineTypes), len(sim.pop.Machines),
		len(sim.config.AdjusterGroups), len(sim.pop.Adjusters))
}

// Run initializes and simulates the full horizon of Years*365 days.
func (sim *Simulator) Run() *Metrics {
	sim.Initialize()
	logrus.Infof("Starting simulation for %d year(s) (%d days), key=%d", sim.config.Years, sim.totalDays, sim.key)
	for !sim.Done() {
		sim.Step()
	}
	logrus.Infof("[day %05d] Simulation ended: %d failures, %d repairs, peak queue %d",
		sim.day, sim.Metrics.Failures, sim.Metrics.Repairs, sim.Metrics.PeakQueueLength)
	return sim.Metrics
}

// Step simulates the next day. Initialize must have been called.
func (sim *Simulator) Step() {
	if sim.pop == nil {
		panic("Simulator.Step() called before Initialize()")
	}
	sim.day++
	day := sim.day

	sim.assignAdjusters(day)
	sim.updateMachines(day)
	sim.updateAdjusters(day)

	sim.Metrics.SampleQueue(day, sim.queue.Len())
	logrus.Debugf("[day %05d] queue length: %d", day, sim.queue.Len())
}

// Done reports whether the configured horizon has been simulated.
func (sim *Simulator) Done() bool {
	return sim.day >= sim.totalDays
}

// updateMachines advances every working machine by one running day and
// fails those reaching their threshold. Machines that are queued or in
// repair are left untouched.
func (sim *Simulator) updateMachines(day int) {
	for i := range sim.pop.Machines {
		m := &sim.pop.Machines[i]
		if !m.Working() {
			continue
		}
		m.RunningDays++
		m.TotalWorkingDays++
		sim.Metrics.RecordWorkingDay(m.TypeIndex)
		if m.RunningDays >= m.FailureThreshold {
			sim.failMachine(day, m)
		}
	}
}

// failMachine queues a machine for repair. The threshold for the next cycle
// is drawn now, at failure time, not when the repair completes.
func (sim *Simulator) failMachine(day int, m *Machine) {
	mt := sim.config.MachineTypes[m.TypeIndex]
	m.State = MachineQueued
	m.RunningDays = 0
	m.FailureThreshold = sim.failures.DaysToFailure(mt)
	sim.queue.Enqueue(m.ID)
	sim.Metrics.Failures++

	desc := "machine " + machineLabel(sim.config.MachineTypes, m) + " failed"
	sim.recordEvent(day, trace.KindFailure, m, nil, desc)
	logrus.Debugf("[day %05d] %s", day, desc)
}

// updateAdjusters advances every busy adjuster by one day of work and
// completes repairs that reach their required days.
func (sim *Simulator) updateAdjusters(day int) {
	for i := range sim.pop.Adjusters {
		a := &sim.pop.Adjusters[i]
		if !a.Busy {
			continue
		}
		a.DaysWorked++
		a.TotalBusyDays++
		sim.Metrics.RecordBusyDay(a.GroupIndex)
		if a.DaysWorked >= a.RequiredDays {
			sim.completeRepair(day, a)
		}
	}
}

// completeRepair frees the adjuster and returns its machine to service.
func (sim *Simulator) completeRepair(day int, a *Adjuster) {
	if a.Machine == NoMachine {
		panic("completeRepair: busy adjuster holds no machine")
	}
	m := sim.pop.Machine(a.Machine)

	desc := adjusterLabel(sim.config.AdjusterGroups, a) + " finished repair on machine " + machineLabel(sim.config.MachineTypes, m)
	sim.recordEvent(day, trace.KindRepairComplete, m, a, desc)
	logrus.Debugf("[day %05d] %s", day, desc)

	a.Busy = false
	a.DaysWorked = 0
	a.RequiredDays = 0
	a.Machine = NoMachine

	m.State = MachineWorking
	m.RunningDays = 0
	sim.Metrics.Repairs++
}

// recordEvent appends a timeline record; a may be nil for failures.
func (sim *Simulator) recordEvent(day int, kind trace.EventKind, m *Machine, a *Adjuster, desc string) {
	if !sim.timeline.Enabled() {
		return
	}
	r := trace.Record{
		Day:          day,
		Kind:         kind,
		MachineType:  sim.config.MachineTypes[m.TypeIndex].Name,
		MachineIndex: m.IndexInType + 1,
		Description:  desc,
	}
	if a != nil {
		r.AdjusterGroup = sim.config.AdjusterGroups[a.GroupIndex].ID
		r.AdjusterIndex = a.IndexInGroup + 1
	}
	sim.timeline.Append(r)
}

// Day returns the last simulated day (0 before the first Step).
func (sim *Simulator) Day() int {
	return sim.day
}

// TotalDays returns the configured horizon in days.
func (sim *Simulator) TotalDays() int {
	return sim.totalDays
}

// Key returns the SimulationKey that seeded this simulator.
func (sim *Simulator) Key() SimulationKey {
	return sim.key
}

// Config returns the configuration the simulator was built with.
func (sim *Simulator) Config() SimConfig {
	return sim.config
}

// Population returns the current run's instances (nil before Initialize).
func (sim *Simulator) Population() *Population {
	return sim.pop
}

// Queue returns the repair queue.
func (sim *Simulator) Queue() *RepairQueue {
	return sim.queue
}

// Timeline returns the event timeline of the current run.
func (sim *Simulator) Timeline() *trace.Timeline {
	return sim.timeline
}

// Utilization derives the run's percentages from its Metrics.
func (sim *Simulator) Utilization() Utilization {
	if sim.Metrics == nil {
		return NewMetrics(len(sim.config.MachineTypes), len(sim.config.AdjusterGroups)).
			Utilization(sim.config.MachineTypes, sim.config.AdjusterGroups)
	}
	return sim.Metrics.Utilization(sim.config.MachineTypes, sim.config.AdjusterGroups)
}
