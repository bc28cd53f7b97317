package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/hr-screener/internal/screening"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "data", "booked_slots.json"), zap.NewNop())
}

func sampleBooking(name, date, clock string) screening.Booking {
	slot := screening.InterviewSlot{Date: date, Time: clock, DurationMinutes: 60, Timezone: "IST"}
	return screening.NewBooking(name, slot, time.Date(2026, 1, 28, 9, 30, 0, 0, time.UTC))
}

func TestLoadAllMissingFileIsEmpty(t *testing.T) {
	store := newTestStore(t)

	bookings := store.LoadAll(context.Background())
	assert.NotNil(t, bookings)
	assert.Empty(t, bookings)
}

func TestLoadAllCorruptFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "booked_slots.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	core, observed := observer.New(zapcore.WarnLevel)
	store := NewFileStore(path, zap.New(core))

	assert.Empty(t, store.LoadAll(context.Background()))
	assert.Equal(t, 1, observed.FilterMessage("bookings file is corrupt, treating as empty").Len())
	assert.True(t, store.IsAvailable(context.Background(), "Monday, February 02, 2026", "10:00 AM"))
}

func TestSaveAppendsExactlyOneRecord(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Clear(ctx))
	assert.Empty(t, store.LoadAll(ctx))

	b := sampleBooking("Jane Doe", "Monday, February 02, 2026", "10:00 AM")
	require.NoError(t, store.Save(ctx, b))

	bookings := store.LoadAll(ctx)
	require.Len(t, bookings, 1)
	assert.Equal(t, b.CandidateName, bookings[0].CandidateName)
	assert.Equal(t, b.Slot(), bookings[0].Slot())
	assert.True(t, b.BookedAt.Equal(bookings[0].BookedAt))

	assert.False(t, store.IsAvailable(ctx, "Monday, February 02, 2026", "10:00 AM"))
	assert.False(t, store.IsAvailable(ctx, "2026-02-02", "10:00"), "normalized lookups must see the booking")
	assert.True(t, store.IsAvailable(ctx, "Monday, February 02, 2026", "11:00 AM"))
}

func TestLedgerLayout(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Save(ctx, sampleBooking("Jane Doe", "Monday, February 02, 2026", "2:00 PM")))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 1)
	assert.Equal(t, "Jane Doe", raw[0]["candidate_name"])
	assert.Equal(t, "Monday, February 02, 2026", raw[0]["date"])
	assert.Equal(t, "2:00 PM", raw[0]["time"])
	assert.Equal(t, "IST", raw[0]["timezone"])
	assert.Equal(t, "2026-01-28T09:30:00Z", raw[0]["booked_at"])
}

func TestReserveRejectsTakenSlot(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Reserve(ctx, sampleBooking("Jane Doe", "Monday, February 02, 2026", "10:00 AM")))

	err := store.Reserve(ctx, sampleBooking("John Roe", "Monday, February 02, 2026", "10:00 AM"))
	require.ErrorIs(t, err, ErrSlotTaken)
	assert.Len(t, store.LoadAll(ctx), 1)
}

func TestReserveConcurrentSameSlotExactlyOneWins(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	const attempts = 16
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		wins   int
		losses int
	)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := store.Reserve(ctx, sampleBooking(fmt.Sprintf("candidate-%d", i), "Tuesday, February 03, 2026", "11:00 AM"))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case assert.ErrorIs(t, err, ErrSlotTaken):
				losses++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	assert.Equal(t, attempts-1, losses)
	assert.Len(t, store.LoadAll(ctx), 1)
}

func TestReserveSeesWritesFromAnotherStoreInstance(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "booked_slots.json")

	first := NewFileStore(path, nil)
	second := NewFileStore(path, nil)

	require.NoError(t, first.Reserve(ctx, sampleBooking("Jane Doe", "Monday, February 02, 2026", "3:00 PM")))
	require.ErrorIs(t, second.Reserve(ctx, sampleBooking("John Roe", "Monday, February 02, 2026", "3:00 PM")), ErrSlotTaken)
}

func TestCancelRemovesRecord(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Save(ctx, sampleBooking("A", "Monday, February 02, 2026", "10:00 AM")))
	require.NoError(t, store.Save(ctx, sampleBooking("B", "Monday, February 02, 2026", "11:00 AM")))
	require.NoError(t, store.Save(ctx, sampleBooking("C", "Monday, February 02, 2026", "12:00 PM")))

	cancelled, err := store.Cancel(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "B", cancelled.CandidateName)

	bookings := store.LoadAll(ctx)
	require.Len(t, bookings, 2)
	assert.Equal(t, "A", bookings[0].CandidateName)
	assert.Equal(t, "C", bookings[1].CandidateName)
	assert.True(t, store.IsAvailable(ctx, "Monday, February 02, 2026", "11:00 AM"))

	_, err = store.Cancel(ctx, 5)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestMutationOverCorruptFileKeepsBackup(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "booked_slots.json")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))

	store := NewFileStore(path, nil)
	require.NoError(t, store.Save(ctx, sampleBooking("Jane Doe", "Monday, February 02, 2026", "10:00 AM")))

	assert.Len(t, store.LoadAll(ctx), 1)

	backups, err := filepath.Glob(path + ".corrupt-*")
	require.NoError(t, err)
	assert.Len(t, backups, 1)
}
