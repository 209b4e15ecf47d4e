// Package report renders the results of a maintenance run as text and JSON.
package report

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/factory-sim/maintenance-sim/sim"
	"github.com/factory-sim/maintenance-sim/sim/trace"
)

const (
	chartWidth  = 80
	chartHeight = 12
)

// Generator renders report sections as strings.
type Generator struct {
	width  int
	height int
}

// NewGenerator creates a new report generator.
func NewGenerator() *Generator {
	return &Generator{
		width:  chartWidth,
		height: chartHeight,
	}
}

func (g *Generator) header(sb *strings.Builder, title string) {
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", g.width))
	sb.WriteString("\n\n")
}

// GenerateUtilization renders machine uptime, adjuster utilization and the
// queue statistics.
func (g *Generator) GenerateUtilization(u sim.Utilization) string {
	var sb strings.Builder
	g.header(&sb, fmt.Sprintf("Simulation Results (%d days)", u.SimulatedDays))

	sb.WriteString("Machine Utilization:\n")
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Machine Type\tQuantity\tWorking Days\tEstimated Uptime(%)")
	for _, mt := range u.MachineTypes {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.2f\n", mt.Name, mt.Quantity, mt.WorkingDays, mt.UptimePercent)
	}
	tw.Flush()
	sb.WriteString(fmt.Sprintf("\nOverall machine utilization: %.2f%%\n\n", u.OverallMachineUtilization))

	sb.WriteString("Adjuster Utilization:\n")
	tw = tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Adjuster ID\tCount\tBusy Days\tEstimated Utilization(%)")
	for _, ag := range u.AdjusterGroups {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.2f\n", ag.ID, ag.Count, ag.BusyDays, ag.UtilizationPercent)
	}
	tw.Flush()
	sb.WriteString(fmt.Sprintf("\nOverall adjuster utilization: %.2f%%\n\n", u.OverallAdjusterUtilization))

	sb.WriteString(fmt.Sprintf("Max repair queue length during simulation: %d", u.PeakQueueLength))
	if u.PeakQueueLength > 0 {
		sb.WriteString(fmt.Sprintf(" (first reached on day %d)", u.PeakQueueDay))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Mean / p95 repair queue length: %.2f / %.2f\n", u.MeanQueueLength, u.P95QueueLength))
	sb.WriteString(fmt.Sprintf("Failures: %d, assignments: %d, completed repairs: %d\n", u.Failures, u.Assignments, u.Repairs))

	return sb.String()
}

// GenerateQueueChart renders the end-of-day queue length series. Each column
// covers a span of days and shows the highest length seen in that span.
func (g *Generator) GenerateQueueChart(queueLengths []int) string {
	if len(queueLengths) == 0 {
		return "No data to display"
	}

	var sb strings.Builder
	g.header(&sb, "Repair Queue Length Over Time")

	plotWidth := g.width - 6
	columns := min(plotWidth, len(queueLengths))
	buckets := make([]int, columns)
	for day, length := range queueLengths {
		col := day * columns / len(queueLengths)
		buckets[col] = max(buckets[col], length)
	}

	peak := 0
	for _, b := range buckets {
		peak = max(peak, b)
	}
	if peak == 0 {
		sb.WriteString("Repair queue stayed empty.\n")
		return sb.String()
	}

	rows := min(g.height, peak)
	for row := rows; row >= 1; row-- {
		// Threshold for this row, scaled so the top row is the peak.
		threshold := (row*peak + rows - 1) / rows
		sb.WriteString(fmt.Sprintf("%4d |", threshold))
		for _, b := range buckets {
			if b >= threshold {
				sb.WriteString("█")
			} else {
				sb.WriteString(" ")
			}
		}
		sb.WriteString("\n")
	}

	sb.WriteString("     +")
	sb.WriteString(strings.Repeat("-", columns))
	sb.WriteString("\n")

	// X-axis: mark the first day of every simulated year that fits.
	labelLine := []rune(strings.Repeat(" ", columns))
	for day := 0; day < len(queueLengths); day += sim.DaysPerYear {
		pos := day * columns / len(queueLengths)
		marker := fmt.Sprintf("y%d", day/sim.DaysPerYear)
		if pos+len(marker) > columns {
			break
		}
		for i, ch := range marker {
			labelLine[pos+i] = ch
		}
	}
	sb.WriteString("      ")
	sb.WriteString(string(labelLine))
	sb.WriteString("\n")

	return sb.String()
}

// GenerateEventSummary renders timeline counts.
func (g *Generator) GenerateEventSummary(s *trace.Summary) string {
	var sb strings.Builder
	g.header(&sb, "Event Summary")

	sb.WriteString(fmt.Sprintf("Total Events: %d\n", s.Failures+s.Assignments+s.Completions))
	sb.WriteString(fmt.Sprintf("  - Failures: %d\n", s.Failures))
	sb.WriteString(fmt.Sprintf("  - Assignments: %d\n", s.Assignments))
	sb.WriteString(fmt.Sprintf("  - Repairs Completed: %d\n", s.Completions))
	return sb.String()
}

// GenerateRecentEvents renders the last records of the timeline.
func (g *Generator) GenerateRecentEvents(records []trace.Record) string {
	var sb strings.Builder
	g.header(&sb, fmt.Sprintf("Recent Simulation Events (last %d)", len(records)))

	if len(records) == 0 {
		sb.WriteString("No events recorded.\n")
		return sb.String()
	}
	for _, r := range records {
		icon := " "
		switch r.Kind {
		case trace.KindFailure:
			icon = "!"
		case trace.KindAssignment:
			icon = ">"
		case trace.KindRepairComplete:
			icon = "+"
		}
		sb.WriteString(fmt.Sprintf("Day %d: %s %s\n", r.Day, icon, r.Description))
	}
	return sb.String()
}

// GenerateMachineDetails renders the per-type snapshot taken after the run.
func (g *Generator) GenerateMachineDetails(statuses []sim.MachineTypeStatus) string {
	var sb strings.Builder
	g.header(&sb, "Machine Type Details")

	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Machine Type\tMTTF (days)\tRepair (days)\tQuantity\tWorking\tQueued\tIn Repair")
	for _, s := range statuses {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\t%d\n",
			s.Spec.Name, s.Spec.MTTFDays, s.Spec.RepairDays, s.Spec.Quantity, s.Working, s.Queued, s.InRepair)
	}
	tw.Flush()
	return sb.String()
}

// GenerateAdjusterDetails renders the per-group snapshot taken after the run.
func (g *Generator) GenerateAdjusterDetails(statuses []sim.AdjusterGroupStatus) string {
	var sb strings.Builder
	g.header(&sb, "Adjuster Group Details")

	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Adjuster Group\tCount\tBusy\tIdle\tServices")
	for _, s := range statuses {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\n",
			s.Spec.ID, s.Spec.Count, s.Busy, s.Idle, strings.Join(s.Spec.Capabilities, ", "))
	}
	tw.Flush()
	return sb.String()
}
