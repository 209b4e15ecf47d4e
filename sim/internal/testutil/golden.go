// Package testutil provides shared test infrastructure for the maintenance
// simulator. It holds the golden dataset types and assertion helpers used
// across the sim/ test packages.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one factory run with a fixed failure threshold, so its
// outcome can be worked out by hand.
type GoldenTestCase struct {
	Name           string              `json:"name"`
	Years          int                 `json:"years"`
	ThresholdDays  int                 `json:"threshold_days"`
	MachineTypes   []GoldenMachineType `json:"machine_types"`
	AdjusterGroups []GoldenGroup       `json:"adjuster_groups"`
	Metrics        GoldenMetrics       `json:"metrics"`
}

type GoldenMachineType struct {
	Name       string `json:"name"`
	MTTFDays   int    `json:"mttf_days"`
	RepairDays int    `json:"repair_days"`
	Quantity   int    `json:"quantity"`
}

type GoldenGroup struct {
	ID       string   `json:"id"`
	Count    int      `json:"count"`
	Services []string `json:"services"`
}

// GoldenMetrics represents the expected statistics of a golden test case.
type GoldenMetrics struct {
	// Exact match counters
	Failures        int   `json:"failures"`
	Repairs         int   `json:"repairs"`
	WorkingDays     int64 `json:"working_days"`
	BusyDays        int64 `json:"busy_days"`
	PeakQueueLength int   `json:"peak_queue_length"`
	PeakQueueDay    int   `json:"peak_queue_day"`

	// Derived percentages
	MachineUtilizationPercent  float64 `json:"machine_utilization_percent"`
	AdjusterUtilizationPercent float64 `json:"adjuster_utilization_percent"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
