package screening

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// DateLayout renders slot dates, e.g. "Monday, February 03, 2026".
	DateLayout = "Monday, January 02, 2006"
	// TimeLayout renders slot times, e.g. "10:00 AM".
	TimeLayout = "3:04 PM"

	DefaultDurationMinutes = 60
)

// InterviewSlot is an immutable proposed interview time. Two slots are the
// same slot when their date and time match; duration and timezone are ignored.
type InterviewSlot struct {
	Date            string `json:"date"`
	Time            string `json:"time"`
	DurationMinutes int    `json:"duration_minutes"`
	Timezone        string `json:"timezone"`
}

// SlotKey identifies a slot for conflict detection.
type SlotKey struct {
	Date string
	Time string
}

func NewSlotKey(date, clock string) SlotKey {
	return SlotKey{Date: NormalizeDate(date), Time: NormalizeTime(clock)}
}

func (s InterviewSlot) Key() SlotKey {
	return NewSlotKey(s.Date, s.Time)
}

func (s InterviewSlot) Equal(other InterviewSlot) bool {
	return s.Key() == other.Key()
}

func (s InterviewSlot) String() string {
	return fmt.Sprintf("%s at %s (%s)", s.Date, s.Time, s.Timezone)
}

// Booking is a committed assignment of one slot to one candidate.
type Booking struct {
	CandidateName   string    `json:"candidate_name"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	Timezone        string    `json:"timezone"`
	DurationMinutes int       `json:"duration_minutes,omitempty"`
	BookedAt        time.Time `json:"booked_at"`
}

func NewBooking(candidate string, slot InterviewSlot, at time.Time) Booking {
	return Booking{
		CandidateName:   candidate,
		Date:            slot.Date,
		Time:            slot.Time,
		Timezone:        slot.Timezone,
		DurationMinutes: slot.DurationMinutes,
		BookedAt:        at,
	}
}

func (b Booking) Key() SlotKey {
	return NewSlotKey(b.Date, b.Time)
}

func (b Booking) Slot() InterviewSlot {
	return InterviewSlot{
		Date:            b.Date,
		Time:            b.Time,
		DurationMinutes: b.DurationMinutes,
		Timezone:        b.Timezone,
	}
}

// NormalizeDate canonicalizes a slot date. Dates in DateLayout or ISO form are
// re-rendered in DateLayout; anything else is only whitespace-collapsed.
func NormalizeDate(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	for _, layout := range []string{DateLayout, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(DateLayout)
		}
	}
	return s
}

// NormalizeTime canonicalizes a slot time into TimeLayout when it parses.
func NormalizeTime(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	minutes, err := ParseClock(s)
	if err != nil {
		return strings.ToUpper(s)
	}
	return FormatClock(minutes)
}

// ParseClock converts "10:00 AM", "2:00PM" or "14:00" into minutes since midnight.
func ParseClock(s string) (int, error) {
	raw := strings.ToUpper(strings.Join(strings.Fields(s), ""))
	if raw == "" {
		return 0, fmt.Errorf("empty time")
	}

	meridiem := ""
	if strings.HasSuffix(raw, "AM") || strings.HasSuffix(raw, "PM") {
		meridiem = raw[len(raw)-2:]
		raw = raw[:len(raw)-2]
	}

	hh, mm, ok := strings.Cut(raw, ":")
	if !ok {
		mm = "0"
	}

	hours, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("invalid hours in %q", s)
	}
	minutes, err := strconv.Atoi(mm)
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid minutes in %q", s)
	}

	switch meridiem {
	case "":
		if hours < 0 || hours > 23 {
			return 0, fmt.Errorf("invalid hours in %q", s)
		}
	default:
		if hours < 1 || hours > 12 {
			return 0, fmt.Errorf("invalid hours in %q", s)
		}
		hours %= 12
		if meridiem == "PM" {
			hours += 12
		}
	}

	return hours*60 + minutes, nil
}

// FormatClock renders minutes since midnight in TimeLayout.
func FormatClock(minutes int) string {
	t := time.Date(2000, time.January, 1, minutes/60, minutes%60, 0, 0, time.UTC)
	return t.Format(TimeLayout)
}
