// Package scheduling proposes interview slots that fall on working days inside
// business hours and are not yet held in the booking ledger.
package scheduling

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/hr-screener/internal/booking"
	"github.com/spigell/hr-screener/internal/screening"
)

// Ledger is the part of the booking store the allocator depends on.
type Ledger interface {
	IsAvailable(ctx context.Context, date, clock string) bool
	Reserve(ctx context.Context, b screening.Booking) error
}

type Allocator struct {
	cfg    Config
	ledger Ledger
	logger *zap.Logger
}

func NewAllocator(cfg Config, ledger Ledger, logger *zap.Logger) *Allocator {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Allocator{
		cfg:    cfg.withDefaults(),
		ledger: ledger,
		logger: logger,
	}
}

func (a *Allocator) Config() Config {
	return a.cfg
}

// GenerateSlots returns up to count available slots in chronological order.
// Every skipped date and every checked date/time pair consumes one attempt;
// the walk stops after count*AttemptsPerSlot attempts.
func (a *Allocator) GenerateSlots(ctx context.Context, count int) []screening.InterviewSlot {
	slots := []screening.InterviewSlot{}
	if count <= 0 {
		return slots
	}

	times := a.validTimes()
	if len(times) == 0 {
		a.logger.Error("no preferred time falls within business hours",
			zap.Strings("preferred_times", a.cfg.PreferredTimes),
		)
		return slots
	}

	holidays := make(map[string]struct{}, len(a.cfg.Holidays))
	for _, h := range a.cfg.Holidays {
		holidays[h] = struct{}{}
	}

	now := a.cfg.Now()
	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, a.cfg.LeadDays)

	budget := count * a.cfg.AttemptsPerSlot
	attempts := 0

	for len(slots) < count && attempts < budget && ctx.Err() == nil {
		if isWeekend(date) || isHoliday(holidays, date) {
			attempts++
			date = date.AddDate(0, 0, 1)
			continue
		}

		day := date.Format(screening.DateLayout)
		for _, clock := range times {
			if len(slots) >= count || attempts >= budget {
				break
			}
			attempts++

			if !a.ledger.IsAvailable(ctx, day, clock) {
				continue
			}
			slots = append(slots, screening.InterviewSlot{
				Date:            day,
				Time:            clock,
				DurationMinutes: a.cfg.DurationMinutes,
				Timezone:        a.cfg.Timezone,
			})
		}
		date = date.AddDate(0, 0, 1)
	}

	if len(slots) < count {
		a.logger.Warn("fewer slots than requested",
			zap.Int("requested", count),
			zap.Int("found", len(slots)),
			zap.Int("attempts", attempts),
		)
	}

	return slots
}

// Allocate generates slots for the candidate and commits the first one to the
// ledger before returning. A reservation that loses a race regenerates from
// the fresh ledger state. The second result reports whether the first slot
// was durably booked; other ledger failures are logged and the slot is still
// returned.
func (a *Allocator) Allocate(ctx context.Context, candidate string, count int) ([]screening.InterviewSlot, bool) {
	if count <= 0 {
		return []screening.InterviewSlot{}, false
	}

	budget := count * a.cfg.AttemptsPerSlot
	for attempt := 1; ; attempt++ {
		slots := a.GenerateSlots(ctx, count)
		if len(slots) == 0 {
			return slots, false
		}

		first := slots[0]
		err := a.ledger.Reserve(ctx, screening.NewBooking(candidate, first, a.cfg.Now()))
		switch {
		case err == nil:
			a.logger.Info("slot booked",
				zap.String("candidate", candidate),
				zap.String("date", first.Date),
				zap.String("time", first.Time),
			)
			return slots, true
		case errors.Is(err, booking.ErrSlotTaken) && attempt < budget && ctx.Err() == nil:
			a.logger.Debug("slot taken concurrently, regenerating",
				zap.String("candidate", candidate),
				zap.String("date", first.Date),
				zap.String("time", first.Time),
				zap.Int("attempt", attempt),
			)
		default:
			a.logger.Error("failed to book slot, proceeding without durable booking",
				zap.String("candidate", candidate),
				zap.String("date", first.Date),
				zap.String("time", first.Time),
				zap.Error(err),
			)
			return slots, false
		}
	}
}

func (a *Allocator) validTimes() []string {
	spans, err := a.cfg.spans()
	if err != nil {
		a.logger.Error("invalid business hours", zap.Error(err))
		return nil
	}

	times := make([]string, 0, len(a.cfg.PreferredTimes))
	for _, t := range a.cfg.PreferredTimes {
		minutes, err := screening.ParseClock(t)
		if err != nil {
			a.logger.Warn("skipping unparseable preferred time", zap.String("time", t), zap.Error(err))
			continue
		}
		if inSpans(spans, minutes) {
			times = append(times, screening.FormatClock(minutes))
		}
	}
	return times
}

func isWeekend(d time.Time) bool {
	return d.Weekday() == time.Saturday || d.Weekday() == time.Sunday
}

func isHoliday(holidays map[string]struct{}, d time.Time) bool {
	_, ok := holidays[d.Format(time.DateOnly)]
	return ok
}
