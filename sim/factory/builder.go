package factory

import (
	"fmt"
	"strconv"
	"strings"
)

// Builder assembles a FactorySpec one definition at a time, rejecting each
// bad definition as it is added.
type Builder struct {
	spec FactorySpec
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{spec: FactorySpec{Version: "1"}}
}

// AddMachineType appends a machine type. Names must be unique.
func (b *Builder) AddMachineType(mt MachineTypeSpec) error {
	mt.Name = strings.TrimSpace(mt.Name)
	if err := validateMachineType(&mt, len(b.spec.MachineTypes)); err != nil {
		return err
	}
	for _, existing := range b.spec.MachineTypes {
		if existing.Name == mt.Name {
			return fmt.Errorf("machine type %q already exists", mt.Name)
		}
	}
	b.spec.MachineTypes = append(b.spec.MachineTypes, mt)
	return nil
}

// AddAdjusterGroup appends an adjuster group. At least one machine type must
// be defined first; ids must be unique and every capability must name an
// already-defined machine type. Repeated capabilities are collapsed.
func (b *Builder) AddAdjusterGroup(g AdjusterGroupSpec) error {
	if len(b.spec.MachineTypes) == 0 {
		return fmt.Errorf("add at least one machine type before adding adjuster groups")
	}
	g.ID = strings.TrimSpace(g.ID)
	for _, existing := range b.spec.AdjusterGroups {
		if existing.ID == g.ID {
			return fmt.Errorf("adjuster group %q already exists", g.ID)
		}
	}

	services := make([]string, 0, len(g.Services))
	seen := make(map[string]bool, len(g.Services))
	for _, name := range g.Services {
		name = strings.TrimSpace(name)
		if !seen[name] {
			seen[name] = true
			services = append(services, name)
		}
	}
	g.Services = services

	known := make(map[string]bool, len(b.spec.MachineTypes))
	for _, mt := range b.spec.MachineTypes {
		known[mt.Name] = true
	}
	if err := validateAdjusterGroup(&g, len(b.spec.AdjusterGroups), known); err != nil {
		return err
	}
	b.spec.AdjusterGroups = append(b.spec.AdjusterGroups, g)
	return nil
}

// Build returns a validated spec for a run of the given number of years.
func (b *Builder) Build(years int) (*FactorySpec, error) {
	spec := b.spec
	spec.Years = years
	spec.MachineTypes = append([]MachineTypeSpec(nil), b.spec.MachineTypes...)
	spec.AdjusterGroups = append([]AdjusterGroupSpec(nil), b.spec.AdjusterGroups...)
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// ParseMachineType parses "name:mttf_days:repair_days:quantity".
func ParseMachineType(s string) (MachineTypeSpec, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 4 {
		return MachineTypeSpec{}, fmt.Errorf("machine type %q: want name:mttf_days:repair_days:quantity", s)
	}
	nums := make([]int, 3)
	for i, p := range parts[1:] {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return MachineTypeSpec{}, fmt.Errorf("machine type %q: %w", s, err)
		}
		nums[i] = n
	}
	return MachineTypeSpec{Name: parts[0], MTTFDays: nums[0], RepairDays: nums[1], Quantity: nums[2]}, nil
}

// ParseAdjusterGroup parses "id:count:type[,type...]".
func ParseAdjusterGroup(s string) (AdjusterGroupSpec, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) != 3 {
		return AdjusterGroupSpec{}, fmt.Errorf("adjuster group %q: want id:count:type[,type...]", s)
	}
	count, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return AdjusterGroupSpec{}, fmt.Errorf("adjuster group %q: %w", s, err)
	}
	var services []string
	for _, name := range strings.Split(parts[2], ",") {
		if name = strings.TrimSpace(name); name != "" {
			services = append(services, name)
		}
	}
	return AdjusterGroupSpec{ID: parts[0], Count: count, Services: services}, nil
}
