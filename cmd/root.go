package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/factory-sim/maintenance-sim/sim"
	"github.com/factory-sim/maintenance-sim/sim/factory"
	"github.com/factory-sim/maintenance-sim/sim/report"
	"github.com/factory-sim/maintenance-sim/sim/trace"
)

var (
	// Factory definition
	configFile   string   // YAML factory definition
	machineFlags []string // name:mttf:repair:qty, when no config file is given
	groupFlags   []string // id:count:type[,type...]
	years        int      // Run length override (years)
	seed         int64    // Seed override for the failure stream
	timeline     string   // Timeline level: events or none

	// Output
	logLevel       string // Log verbosity level
	recentEvents   int    // Number of trailing timeline events to print
	showChart      bool   // Print the queue-length chart
	showDetails    bool   // Print per-type and per-group snapshots
	jsonOut        string // Path for JSON results ("-" for stdout)
	queueSeriesOut string // Path for the per-day queue length CSV
	checkEveryDay  bool   // Verify invariants after every simulated day
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "fms",
	Short: "Factory maintenance simulator",
	Long: `Simulates machines that fail at random and the adjuster crews that
repair them, one day at a time, and reports machine uptime, adjuster
utilization and repair-queue depth.`,
	SilenceUsage: true,
}

// runCmd executes the simulation using a factory definition
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the maintenance simulation",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(logLevel)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, err := loadFactory(cmd)
		if err != nil {
			return err
		}
		return runSimulation(cmd, spec)
	},
}

// validateCmd checks a factory definition without running it
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a factory definition",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(logLevel)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, err := loadFactory(cmd)
		if err != nil {
			return err
		}
		machines := 0
		for _, mt := range spec.MachineTypes {
			machines += mt.Quantity
		}
		adjusters := 0
		for _, g := range spec.AdjusterGroups {
			adjusters += g.Count
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Factory definition is valid:\n  Machine types: %d (%d machines)\n  Adjuster groups: %d (%d adjusters)\n  Years: %d\n",
			len(spec.MachineTypes), machines, len(spec.AdjusterGroups), adjusters, spec.Years)
		return nil
	},
}

func setupLogging(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logrus.SetLevel(lvl)
	return nil
}

// loadFactory builds a validated spec from --config or from --machine/--group,
// then applies the --years, --seed and --timeline overrides.
func loadFactory(cmd *cobra.Command) (*factory.FactorySpec, error) {
	var spec *factory.FactorySpec
	switch {
	case configFile != "" && (len(machineFlags) > 0 || len(groupFlags) > 0):
		return nil, fmt.Errorf("--config cannot be combined with --machine/--group")
	case configFile != "":
		loaded, err := factory.LoadFactorySpec(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		spec = loaded
		logrus.Infof("Loaded factory definition from %s", configFile)
	default:
		built, err := buildFromFlags()
		if err != nil {
			return nil, err
		}
		spec = built
	}

	if cmd.Flags().Changed("years") || spec.Years == 0 {
		spec.Years = years
	}
	if cmd.Flags().Changed("seed") {
		s := seed
		spec.Seed = &s
	}
	if cmd.Flags().Changed("timeline") {
		spec.Timeline = timeline
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return spec, nil
}

func buildFromFlags() (*factory.FactorySpec, error) {
	b := factory.NewBuilder()
	for _, s := range machineFlags {
		mt, err := factory.ParseMachineType(s)
		if err != nil {
			return nil, err
		}
		if err := b.AddMachineType(mt); err != nil {
			return nil, err
		}
	}
	for _, s := range groupFlags {
		g, err := factory.ParseAdjusterGroup(s)
		if err != nil {
			return nil, err
		}
		if err := b.AddAdjusterGroup(g); err != nil {
			return nil, err
		}
	}
	// Years is applied by the caller; 1 satisfies validation here.
	return b.Build(1)
}

func runSimulation(cmd *cobra.Command, spec *factory.FactorySpec) error {
	s, err := sim.NewSimulator(spec.SimConfig())
	if err != nil {
		return fmt.Errorf("cannot start simulation: %w", err)
	}
	// With --json -, stdout carries only the JSON document.
	out := cmd.OutOrStdout()
	if jsonOut == "-" {
		out = cmd.ErrOrStderr()
	}

	fmt.Fprintf(out, "Starting simulation for %d year(s) (%d days), seed %d...\n", spec.Years, s.TotalDays(), s.Key())
	if checkEveryDay {
		s.Initialize()
		for !s.Done() {
			s.Step()
			if err := s.CheckInvariants(); err != nil {
				return fmt.Errorf("day %d: invariant violated: %w", s.Day(), err)
			}
		}
	} else {
		s.Run()
	}

	gen := report.NewGenerator()
	fmt.Fprint(out, gen.GenerateUtilization(s.Utilization()))
	if showChart {
		fmt.Fprint(out, gen.GenerateQueueChart(s.Metrics.QueueLengths))
	}
	if s.Timeline().Enabled() {
		fmt.Fprint(out, gen.GenerateEventSummary(trace.Summarize(s.Timeline())))
		if recentEvents > 0 {
			fmt.Fprint(out, gen.GenerateRecentEvents(s.Timeline().Recent(recentEvents)))
		}
	}
	if showDetails {
		fmt.Fprint(out, gen.GenerateMachineDetails(s.MachineTypeStatuses()))
		fmt.Fprint(out, gen.GenerateAdjusterDetails(s.AdjusterGroupStatuses()))
	}

	if queueSeriesOut != "" {
		if err := s.Metrics.SaveQueueLengths(queueSeriesOut); err != nil {
			return err
		}
	}
	switch jsonOut {
	case "":
	case "-":
		return report.WriteJSON(cmd.OutOrStdout(), report.NewResult(s))
	default:
		return report.SaveJSON(jsonOut, report.NewResult(s))
	}
	return nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	for _, c := range []*cobra.Command{runCmd, validateCmd} {
		c.Flags().StringVarP(&configFile, "config", "c", "", "Path to factory definition (YAML)")
		c.Flags().StringArrayVar(&machineFlags, "machine", nil, "Machine type as name:mttf_days:repair_days:quantity (repeatable)")
		c.Flags().StringArrayVar(&groupFlags, "group", nil, "Adjuster group as id:count:type[,type...] (repeatable)")
		c.Flags().IntVar(&years, "years", 1, "Number of years to simulate")
		c.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	}

	runCmd.Flags().Int64Var(&seed, "seed", 0, "Seed for failure draws (default: non-deterministic)")
	runCmd.Flags().StringVar(&timeline, "timeline", string(trace.LevelEvents), "Timeline collection: events or none")
	runCmd.Flags().IntVar(&recentEvents, "recent", 10, "Number of most recent events to print")
	runCmd.Flags().BoolVar(&showChart, "chart", true, "Print the repair queue chart")
	runCmd.Flags().BoolVar(&showDetails, "details", true, "Print machine type and adjuster group details")
	runCmd.Flags().StringVar(&jsonOut, "json", "", "Write JSON results to this path (\"-\" for stdout; the text report then goes to stderr)")
	runCmd.Flags().StringVar(&queueSeriesOut, "queue-series", "", "Write the per-day queue length CSV to this path")
	runCmd.Flags().BoolVar(&checkEveryDay, "check", false, "Verify simulation invariants after every day")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
}
