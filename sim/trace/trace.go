package trace

// Level controls whether the timeline is collected.
type Level string

const (
	// LevelNone disables the timeline (long runs with large populations).
	LevelNone Level = "none"
	// LevelEvents records failures, assignments and repair completions.
	LevelEvents Level = "events"
)

var validLevels = map[Level]bool{
	LevelNone:   true,
	LevelEvents: true,
	"":          true, // empty defaults to events
}

// IsValidLevel returns true if the given level string is recognized.
func IsValidLevel(level string) bool {
	return validLevels[Level(level)]
}

// Timeline is an append-only, chronological log of records.
// The simulation never reads it back.
type Timeline struct {
	Level   Level
	Records []Record
}

// NewTimeline creates a Timeline ready for recording.
func NewTimeline(level Level) *Timeline {
	if level == "" {
		level = LevelEvents
	}
	return &Timeline{
		Level:   level,
		Records: make([]Record, 0),
	}
}

// Enabled reports whether records are kept.
func (tl *Timeline) Enabled() bool {
	return tl != nil && tl.Level != LevelNone
}

// Append adds a record unless the timeline is disabled.
func (tl *Timeline) Append(r Record) {
	if !tl.Enabled() {
		return
	}
	tl.Records = append(tl.Records, r)
}

// Reset drops every record, keeping the level.
func (tl *Timeline) Reset() {
	tl.Records = tl.Records[:0]
}

// Len returns the number of records.
func (tl *Timeline) Len() int {
	if tl == nil {
		return 0
	}
	return len(tl.Records)
}

// Recent returns the last n records in chronological order.
func (tl *Timeline) Recent(n int) []Record {
	if tl == nil || n <= 0 {
		return nil
	}
	start := len(tl.Records) - n
	if start < 0 {
		start = 0
	}
	return tl.Records[start:]
}

// OfKind returns the records of one kind in chronological order.
func (tl *Timeline) OfKind(kind EventKind) []Record {
	var out []Record
	if tl == nil {
		return out
	}
	for _, r := range tl.Records {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}
