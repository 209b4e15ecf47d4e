package factory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/factory-sim/maintenance-sim/sim/trace"
)

const sampleYAML = `
version: "1"
years: 3
seed: 99
timeline: none
machine_types:
  - name: lathe
    mttf_days: 30
    repair_days: 3
    quantity: 12
  - name: mill
    mttf_days: 45
    repair_days: 5
    quantity: 6
adjuster_groups:
  - id: turners
    count: 2
    services: [lathe, mill]
  - id: millers
    count: 1
    services: [mill]
`

func validSpec() *FactorySpec {
	return &FactorySpec{
		Version: "1",
		Years:   1,
		MachineTypes: []MachineTypeSpec{
			{Name: "lathe", MTTFDays: 30, RepairDays: 3, Quantity: 4},
		},
		AdjusterGroups: []AdjusterGroupSpec{
			{ID: "crew", Count: 1, Services: []string{"lathe"}},
		},
	}
}

func TestParseFactorySpec_ValidYAML(t *testing.T) {
	// GIVEN a complete factory definition
	spec, err := ParseFactorySpec([]byte(sampleYAML))

	// THEN every field is decoded and validation passes
	require.NoError(t, err)
	require.NoError(t, spec.Validate())
	assert.Equal(t, 3, spec.Years)
	require.NotNil(t, spec.Seed)
	assert.Equal(t, int64(99), *spec.Seed)
	assert.Equal(t, "none", spec.Timeline)
	require.Len(t, spec.MachineTypes, 2)
	assert.Equal(t, MachineTypeSpec{Name: "mill", MTTFDays: 45, RepairDays: 5, Quantity: 6}, spec.MachineTypes[1])
	require.Len(t, spec.AdjusterGroups, 2)
	assert.Equal(t, []string{"lathe", "mill"}, spec.AdjusterGroups[0].Services)
}

func TestParseFactorySpec_UnknownKey_Rejected(t *testing.T) {
	_, err := ParseFactorySpec([]byte("years: 1\nmachine_typos: []\n"))
	assert.Error(t, err)
}

func TestParseFactorySpec_MissingVersion_DefaultsToOne(t *testing.T) {
	spec, err := ParseFactorySpec([]byte("years: 1\n"))
	require.NoError(t, err)
	assert.Equal(t, "1", spec.Version)
}

func TestParseFactorySpec_DuplicateServices_Collapsed(t *testing.T) {
	// GIVEN a group listing the same machine type twice, once padded
	data := []byte(`
years: 1
machine_types:
  - {name: lathe, mttf_days: 10, repair_days: 1, quantity: 1}
adjuster_groups:
  - {id: crew, count: 1, services: [lathe, " lathe "]}
`)

	// WHEN parsed
	spec, err := ParseFactorySpec(data)

	// THEN the repeat is dropped and the definition is valid
	require.NoError(t, err)
	assert.Equal(t, []string{"lathe"}, spec.AdjusterGroups[0].Services)
	assert.NoError(t, spec.Validate())
}

func TestFactorySpec_Validate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *FactorySpec)
		wantMsg string
	}{
		{"version", func(s *FactorySpec) { s.Version = "2" }, "unsupported version"},
		{"years zero", func(s *FactorySpec) { s.Years = 0 }, "years must be between 1 and 1000"},
		{"years too large", func(s *FactorySpec) { s.Years = MaxYears + 1 }, "years must be between"},
		{"timeline", func(s *FactorySpec) { s.Timeline = "all" }, "unknown timeline"},
		{"no machine types", func(s *FactorySpec) { s.MachineTypes = nil }, "at least one machine type"},
		{"no adjuster groups", func(s *FactorySpec) { s.AdjusterGroups = nil }, "at least one adjuster group"},
		{"empty name", func(s *FactorySpec) { s.MachineTypes[0].Name = "" }, "name is required"},
		{"mttf zero", func(s *FactorySpec) { s.MachineTypes[0].MTTFDays = 0 }, "mttf_days must be between"},
		{"repair too long", func(s *FactorySpec) { s.MachineTypes[0].RepairDays = MaxDays + 1 }, "repair_days must be between"},
		{"quantity too large", func(s *FactorySpec) { s.MachineTypes[0].Quantity = MaxQuantity + 1 }, "quantity must be between"},
		{"duplicate machine type", func(s *FactorySpec) {
			s.MachineTypes = append(s.MachineTypes, s.MachineTypes[0])
		}, `machine type "lathe" already exists`},
		{"empty id", func(s *FactorySpec) { s.AdjusterGroups[0].ID = "" }, "id is required"},
		{"count zero", func(s *FactorySpec) { s.AdjusterGroups[0].Count = 0 }, "count must be between"},
		{"no services", func(s *FactorySpec) { s.AdjusterGroups[0].Services = nil }, "services must name at least one"},
		{"unknown service", func(s *FactorySpec) { s.AdjusterGroups[0].Services = []string{"press"} }, `unknown machine type "press"`},
		{"duplicate group", func(s *FactorySpec) {
			s.AdjusterGroups = append(s.AdjusterGroups, s.AdjusterGroups[0])
		}, `adjuster group "crew" already exists`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSpec()
			tt.mutate(s)
			err := s.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestFactorySpec_Validate_BoundaryValuesAccepted(t *testing.T) {
	s := validSpec()
	s.Years = MaxYears
	s.MachineTypes[0].MTTFDays = 1
	s.MachineTypes[0].RepairDays = MaxDays
	s.MachineTypes[0].Quantity = MaxQuantity
	s.AdjusterGroups[0].Count = MaxCount
	assert.NoError(t, s.Validate())
}

func TestFactorySpec_SimConfig(t *testing.T) {
	// GIVEN a parsed spec with a seed and timeline level
	spec, err := ParseFactorySpec([]byte(sampleYAML))
	require.NoError(t, err)

	// WHEN converted
	cfg := spec.SimConfig()

	// THEN the engine configuration mirrors it
	assert.Equal(t, 3, cfg.Years)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, int64(99), *cfg.Seed)
	assert.Equal(t, trace.LevelNone, cfg.TimelineLevel)
	require.Len(t, cfg.AdjusterGroups, 2)
	assert.True(t, cfg.AdjusterGroups[0].CanService("mill"))
	assert.NoError(t, cfg.Validate())

	// AND the capability list does not alias the definition
	cfg.AdjusterGroups[0].Capabilities[0] = "changed"
	assert.Equal(t, "lathe", spec.AdjusterGroups[0].Services[0])
}

func TestLoadFactorySpec(t *testing.T) {
	path := filepath.Join(t.TempDir(), "factory.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	spec, err := LoadFactorySpec(path)
	require.NoError(t, err)
	assert.Len(t, spec.MachineTypes, 2)

	_, err = LoadFactorySpec(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
