package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/factory-sim/maintenance-sim/sim"
	"github.com/factory-sim/maintenance-sim/sim/trace"
)

// MachineTypeSnapshot is the JSON form of sim.MachineTypeStatus.
type MachineTypeSnapshot struct {
	Name     string `json:"name"`
	Working  int    `json:"working"`
	Queued   int    `json:"queued"`
	InRepair int    `json:"in_repair"`
}

// AdjusterGroupSnapshot is the JSON form of sim.AdjusterGroupStatus.
type AdjusterGroupSnapshot struct {
	ID   string `json:"id"`
	Busy int    `json:"busy"`
	Idle int    `json:"idle"`
}

// Result is the machine-readable output of one run.
type Result struct {
	Seed           int64                   `json:"seed"`
	Years          int                     `json:"years"`
	Utilization    sim.Utilization         `json:"utilization"`
	MachineTypes   []MachineTypeSnapshot   `json:"machine_types_at_end"`
	AdjusterGroups []AdjusterGroupSnapshot `json:"adjuster_groups_at_end"`
	Events         *trace.Summary          `json:"events"`
}

// NewResult collects a finished simulator's output.
func NewResult(s *sim.Simulator) Result {
	r := Result{
		Seed:        int64(s.Key()),
		Years:       s.Config().Years,
		Utilization: s.Utilization(),
		Events:      trace.Summarize(s.Timeline()),
	}
	for _, st := range s.MachineTypeStatuses() {
		r.MachineTypes = append(r.MachineTypes, MachineTypeSnapshot{
			Name: st.Spec.Name, Working: st.Working, Queued: st.Queued, InRepair: st.InRepair,
		})
	}
	for _, st := range s.AdjusterGroupStatuses() {
		r.AdjusterGroups = append(r.AdjusterGroups, AdjusterGroupSnapshot{
			ID: st.Spec.ID, Busy: st.Busy, Idle: st.Idle,
		})
	}
	return r
}

// WriteJSON encodes r as indented JSON.
func WriteJSON(w io.Writer, r Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	return nil
}

// SaveJSON writes r to path, replacing any existing file.
func SaveJSON(path string, r Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteJSON(f, r); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	logrus.Infof("Saved results to %s", path)
	return nil
}
