// Package factory loads and validates factory definitions: the machine types
// on the floor and the adjuster groups that repair them.
package factory

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/factory-sim/maintenance-sim/sim"
	"github.com/factory-sim/maintenance-sim/sim/trace"
)

// Limits enforced on factory definitions.
const (
	MaxDays     = 10000
	MaxQuantity = 1000
	MaxCount    = 1000
	MaxYears    = 1000
)

// FactorySpec is the top-level factory configuration.
// Loaded from YAML via LoadFactorySpec(path).
type FactorySpec struct {
	Version        string              `yaml:"version"`
	Years          int                 `yaml:"years"`
	Seed           *int64              `yaml:"seed,omitempty"`
	Timeline       string              `yaml:"timeline,omitempty"` // "events" (default) or "none"
	MachineTypes   []MachineTypeSpec   `yaml:"machine_types"`
	AdjusterGroups []AdjusterGroupSpec `yaml:"adjuster_groups"`
}

// MachineTypeSpec defines one machine type.
type MachineTypeSpec struct {
	Name       string `yaml:"name"`
	MTTFDays   int    `yaml:"mttf_days"`
	RepairDays int    `yaml:"repair_days"`
	Quantity   int    `yaml:"quantity"`
}

// AdjusterGroupSpec defines one adjuster group.
type AdjusterGroupSpec struct {
	ID       string   `yaml:"id"`
	Count    int      `yaml:"count"`
	Services []string `yaml:"services"`
}

// LoadFactorySpec reads and parses a YAML factory definition.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadFactorySpec(path string) (*FactorySpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading factory spec: %w", err)
	}
	return ParseFactorySpec(data)
}

// ParseFactorySpec parses a YAML factory definition from memory.
func ParseFactorySpec(data []byte) (*FactorySpec, error) {
	var spec FactorySpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing factory spec: %w", err)
	}
	if spec.Version == "" {
		spec.Version = "1"
	}
	spec.normalize()
	return &spec, nil
}

// normalize trims names and drops repeated capability entries, keeping the
// first occurrence so group order is preserved.
func (s *FactorySpec) normalize() {
	for i := range s.MachineTypes {
		s.MachineTypes[i].Name = strings.TrimSpace(s.MachineTypes[i].Name)
	}
	for i := range s.AdjusterGroups {
		g := &s.AdjusterGroups[i]
		g.ID = strings.TrimSpace(g.ID)
		seen := make(map[string]bool, len(g.Services))
		deduped := g.Services[:0]
		for _, name := range g.Services {
			name = strings.TrimSpace(name)
			if seen[name] {
				logrus.Warnf("adjuster group %q: duplicate capability %q ignored", g.ID, name)
				continue
			}
			seen[name] = true
			deduped = append(deduped, name)
		}
		g.Services = deduped
	}
}

// Validate checks that all fields of the factory definition are valid.
func (s *FactorySpec) Validate() error {
	if s.Version != "1" {
		return fmt.Errorf("unsupported version %q; valid: 1", s.Version)
	}
	if err := validateRange("years", s.Years, 1, MaxYears); err != nil {
		return err
	}
	if !trace.IsValidLevel(s.Timeline) {
		return fmt.Errorf("unknown timeline %q; valid: events, none", s.Timeline)
	}
	if len(s.MachineTypes) == 0 {
		return fmt.Errorf("at least one machine type required")
	}
	if len(s.AdjusterGroups) == 0 {
		return fmt.Errorf("at least one adjuster group required")
	}

	names := make(map[string]bool, len(s.MachineTypes))
	for i, mt := range s.MachineTypes {
		if err := validateMachineType(&mt, i); err != nil {
			return err
		}
		if names[mt.Name] {
			return fmt.Errorf("machine_types[%d]: machine type %q already exists", i, mt.Name)
		}
		names[mt.Name] = true
	}

	ids := make(map[string]bool, len(s.AdjusterGroups))
	for i, g := range s.AdjusterGroups {
		if err := validateAdjusterGroup(&g, i, names); err != nil {
			return err
		}
		if ids[g.ID] {
			return fmt.Errorf("adjuster_groups[%d]: adjuster group %q already exists", i, g.ID)
		}
		ids[g.ID] = true
	}
	return nil
}

func validateMachineType(mt *MachineTypeSpec, idx int) error {
	prefix := fmt.Sprintf("machine_types[%d]", idx)
	if mt.Name == "" {
		return fmt.Errorf("%s: name is required", prefix)
	}
	if err := validateRange(prefix+".mttf_days", mt.MTTFDays, 1, MaxDays); err != nil {
		return err
	}
	if err := validateRange(prefix+".repair_days", mt.RepairDays, 1, MaxDays); err != nil {
		return err
	}
	return validateRange(prefix+".quantity", mt.Quantity, 1, MaxQuantity)
}

func validateAdjusterGroup(g *AdjusterGroupSpec, idx int, machineTypes map[string]bool) error {
	prefix := fmt.Sprintf("adjuster_groups[%d]", idx)
	if g.ID == "" {
		return fmt.Errorf("%s: id is required", prefix)
	}
	if err := validateRange(prefix+".count", g.Count, 1, MaxCount); err != nil {
		return err
	}
	if len(g.Services) == 0 {
		return fmt.Errorf("%s: services must name at least one machine type", prefix)
	}
	for _, name := range g.Services {
		if !machineTypes[name] {
			return fmt.Errorf("%s: services references unknown machine type %q", prefix, name)
		}
	}
	return nil
}

func validateRange(name string, val, lo, hi int) error {
	if val < lo || val > hi {
		return fmt.Errorf("%s must be between %d and %d, got %d", name, lo, hi, val)
	}
	return nil
}

// SimConfig converts a validated spec into the engine's configuration.
func (s *FactorySpec) SimConfig() sim.SimConfig {
	types := make([]sim.MachineTypeSpec, len(s.MachineTypes))
	for i, mt := range s.MachineTypes {
		types[i] = sim.MachineTypeSpec{
			Name:       mt.Name,
			MTTFDays:   mt.MTTFDays,
			RepairDays: mt.RepairDays,
			Quantity:   mt.Quantity,
		}
	}
	groups := make([]sim.AdjusterGroupSpec, len(s.AdjusterGroups))
	for i, g := range s.AdjusterGroups {
		groups[i] = sim.AdjusterGroupSpec{
			ID:           g.ID,
			Count:        g.Count,
			Capabilities: append([]string(nil), g.Services...),
		}
	}
	cfg := sim.NewSimConfig(types, groups, s.Years)
	cfg.TimelineLevel = trace.Level(s.Timeline)
	if s.Seed != nil {
		cfg = cfg.WithSeed(*s.Seed)
	}
	return cfg
}
