package trace

// Summary aggregates counts from a Timeline.
type Summary struct {
	Failures    int `json:"failures"`
	Assignments int `json:"assignments"`
	Completions int `json:"completions"`
	FirstDay    int `json:"first_day"`
	LastDay     int `json:"last_day"`

	FailuresByType     map[string]int `json:"failures_by_type"`     // machine type -> failures
	CompletionsByGroup map[string]int `json:"completions_by_group"` // adjuster group -> finished repairs
}

// Summarize computes aggregate counts from a Timeline.
// Safe for nil or empty timelines (returns zero-value fields).
func Summarize(tl *Timeline) *Summary {
	s := &Summary{
		FailuresByType:     make(map[string]int),
		CompletionsByGroup: make(map[string]int),
	}
	if tl == nil || len(tl.Records) == 0 {
		return s
	}

	s.FirstDay = tl.Records[0].Day
	s.LastDay = tl.Records[len(tl.Records)-1].Day
	for _, r := range tl.Records {
		switch r.Kind {
		case KindFailure:
			s.Failures++
			s.FailuresByType[r.MachineType]++
		case KindAssignment:
			s.Assignments++
		case KindRepairComplete:
			s.Completions++
			s.CompletionsByGroup[r.AdjusterGroup]++
		}
	}
	return s
}
