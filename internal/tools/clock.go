package tools

import (
	"context"
	"strconv"
	"time"
)

// clockTool answers one facet of the current time. The now function is
// injectable so tests get a fixed clock.
type clockTool struct {
	name    string
	aliases []string
	desc    string
	render  func(time.Time) string
	now     func() time.Time
}

func (t clockTool) Name() string        { return t.name }
func (t clockTool) Aliases() []string   { return t.aliases }
func (t clockTool) Description() string { return t.desc }

func (t clockTool) Execute(_ context.Context, _ string) Result {
	return Result{Content: t.render(t.now())}
}

// ClockTools returns the time/date tool family. A nil now uses the
// system clock.
func ClockTools(now func() time.Time) []Tool {
	if now == nil {
		now = time.Now
	}
	specs := []clockTool{
		{
			name:    "time",
			aliases: []string{"get_time", "current_time"},
			desc:    "Current time of day",
			render:  func(t time.Time) string { return t.Format("15:04:05") },
		},
		{
			name:    "date",
			aliases: []string{"get_date", "current_date"},
			desc:    "Current calendar date",
			render:  func(t time.Time) string { return t.Format("2006-01-02") },
		},
		{
			name:    "datetime",
			aliases: []string{"get_datetime"},
			desc:    "Full current date and time",
			render:  func(t time.Time) string { return t.Format("2006-01-02 15:04:05") },
		},
		{
			name:    "day",
			aliases: []string{"weekday", "day_of_week"},
			desc:    "Current day of the week",
			render:  func(t time.Time) string { return t.Weekday().String() },
		},
		{
			name:    "timestamp",
			aliases: []string{"unix_time"},
			desc:    "Current Unix timestamp",
			render:  func(t time.Time) string { return strconv.FormatInt(t.Unix(), 10) },
		},
		{
			name:   "year",
			desc:   "Current year",
			render: func(t time.Time) string { return strconv.Itoa(t.Year()) },
		},
		{
			name:   "month",
			desc:   "Current month name",
			render: func(t time.Time) string { return t.Month().String() },
		},
	}

	out := make([]Tool, 0, len(specs))
	for _, spec := range specs {
		spec.now = now
		out = append(out, spec)
	}
	return out
}
