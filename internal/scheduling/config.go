package scheduling

import (
	"fmt"
	"time"

	"github.com/spigell/hr-screener/internal/screening"
)

const (
	DefaultLeadDays        = 2
	DefaultSlots           = 3
	DefaultTimezone        = "IST"
	DefaultAttemptsPerSlot = 15
)

// Interval is an inclusive range of clock times, e.g. {"10:00", "12:00"}.
type Interval struct {
	Start string `mapstructure:"start"`
	End   string `mapstructure:"end"`
}

type Config struct {
	LeadDays        int        `mapstructure:"lead-days"`
	DurationMinutes int        `mapstructure:"duration-minutes"`
	Timezone        string     `mapstructure:"timezone"`
	PreferredTimes  []string   `mapstructure:"preferred-times"`
	BusinessHours   []Interval `mapstructure:"business-hours"`
	Holidays        []string   `mapstructure:"holidays"` // YYYY-MM-DD
	AttemptsPerSlot int        `mapstructure:"attempts-per-slot"`

	Now func() time.Time `mapstructure:"-" json:"-"`
}

func DefaultConfig() Config {
	return Config{
		LeadDays:        DefaultLeadDays,
		DurationMinutes: screening.DefaultDurationMinutes,
		Timezone:        DefaultTimezone,
		PreferredTimes: []string{
			"10:00 AM", "11:00 AM", "12:00 PM",
			"2:00 PM", "3:00 PM", "4:00 PM", "5:00 PM",
		},
		BusinessHours: []Interval{
			{Start: "10:00", End: "12:00"},
			{Start: "14:00", End: "17:00"},
		},
		Holidays: []string{
			"2026-01-01", "2026-01-14", "2026-02-04", "2026-04-14",
			"2026-05-01", "2026-05-22", "2026-12-25",
		},
		AttemptsPerSlot: DefaultAttemptsPerSlot,
		Now:             time.Now,
	}
}

// withDefaults fills zero values so a partially decoded config stays usable.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.LeadDays < 0 {
		c.LeadDays = def.LeadDays
	}
	if c.DurationMinutes <= 0 {
		c.DurationMinutes = def.DurationMinutes
	}
	if c.Timezone == "" {
		c.Timezone = def.Timezone
	}
	if c.PreferredTimes == nil {
		c.PreferredTimes = def.PreferredTimes
	}
	if c.BusinessHours == nil {
		c.BusinessHours = def.BusinessHours
	}
	if c.AttemptsPerSlot <= 0 {
		c.AttemptsPerSlot = def.AttemptsPerSlot
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

type span struct {
	start, end int
}

func (c Config) spans() ([]span, error) {
	spans := make([]span, 0, len(c.BusinessHours))
	for _, iv := range c.BusinessHours {
		start, err := screening.ParseClock(iv.Start)
		if err != nil {
			return nil, fmt.Errorf("business hours start: %w", err)
		}
		end, err := screening.ParseClock(iv.End)
		if err != nil {
			return nil, fmt.Errorf("business hours end: %w", err)
		}
		if end < start {
			return nil, fmt.Errorf("business hours %s-%s: end before start", iv.Start, iv.End)
		}
		spans = append(spans, span{start: start, end: end})
	}
	return spans, nil
}

// IsBusinessHour reports whether the clock time falls inside any configured
// business-hours interval, bounds included. Unparseable input is never a
// business hour.
func (c Config) IsBusinessHour(clock string) bool {
	minutes, err := screening.ParseClock(clock)
	if err != nil {
		return false
	}
	spans, err := c.spans()
	if err != nil {
		return false
	}
	return inSpans(spans, minutes)
}

func inSpans(spans []span, minutes int) bool {
	for _, s := range spans {
		if minutes >= s.start && minutes <= s.end {
			return true
		}
	}
	return false
}
