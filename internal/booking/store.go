// Package booking keeps the durable ledger of interview slots assigned to
// candidates. The ledger is a JSON array on disk; every mutation happens under
// an in-process mutex and an exclusive file lock so that concurrent runs, in
// this process or another, never commit the same slot twice.
package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"go.uber.org/zap"

	"github.com/spigell/hr-screener/internal/screening"
)

const (
	DefaultPath = "data/booked_slots.json"

	lockRetryDelay = 10 * time.Millisecond
)

var (
	ErrSlotTaken       = errors.New("slot is already booked")
	ErrBookingNotFound = errors.New("booking not found")
)

type FileStore struct {
	path   string
	mu     sync.Mutex
	lock   *flock.Flock
	logger *zap.Logger
}

func NewFileStore(path string, logger *zap.Logger) *FileStore {
	if path == "" {
		path = DefaultPath
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &FileStore{
		path:   path,
		lock:   flock.New(path + ".lock"),
		logger: logger.With(zap.String("bookings_file", path)),
	}
}

func (s *FileStore) Path() string {
	return s.path
}

// LoadAll returns every booking in ledger order. A missing, empty, corrupt or
// unreadable ledger yields an empty list; problems are logged, never returned.
func (s *FileStore) LoadAll(_ context.Context) []screening.Booking {
	bookings, _ := s.read()
	return bookings
}

// IsAvailable reports whether no booking holds the given date and time.
func (s *FileStore) IsAvailable(ctx context.Context, date, clock string) bool {
	return !contains(s.LoadAll(ctx), screening.NewSlotKey(date, clock))
}

// Save appends the booking without checking for conflicts.
func (s *FileStore) Save(ctx context.Context, b screening.Booking) error {
	return s.mutate(ctx, func(bookings []screening.Booking) ([]screening.Booking, error) {
		return append(bookings, b), nil
	})
}

// Reserve atomically re-checks availability against the ledger on disk and
// appends the booking. ErrSlotTaken is returned when the slot is already held.
func (s *FileStore) Reserve(ctx context.Context, b screening.Booking) error {
	return s.mutate(ctx, func(bookings []screening.Booking) ([]screening.Booking, error) {
		if contains(bookings, b.Key()) {
			return nil, fmt.Errorf("%w: %s at %s", ErrSlotTaken, b.Date, b.Time)
		}
		return append(bookings, b), nil
	})
}

// Cancel removes the booking at the zero-based index and returns it.
func (s *FileStore) Cancel(ctx context.Context, index int) (screening.Booking, error) {
	var cancelled screening.Booking
	err := s.mutate(ctx, func(bookings []screening.Booking) ([]screening.Booking, error) {
		if index < 0 || index >= len(bookings) {
			return nil, fmt.Errorf("%w: index %d of %d", ErrBookingNotFound, index, len(bookings))
		}
		cancelled = bookings[index]
		return append(bookings[:index:index], bookings[index+1:]...), nil
	})
	if err != nil {
		return screening.Booking{}, err
	}

	s.logger.Info("booking cancelled",
		zap.String("candidate", cancelled.CandidateName),
		zap.String("date", cancelled.Date),
		zap.String("time", cancelled.Time),
	)
	return cancelled, nil
}

// Clear removes every booking.
func (s *FileStore) Clear(ctx context.Context) error {
	return s.mutate(ctx, func([]screening.Booking) ([]screening.Booking, error) {
		return []screening.Booking{}, nil
	})
}

func (s *FileStore) mutate(ctx context.Context, fn func([]screening.Booking) ([]screening.Booking, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating bookings directory: %w", err)
	}

	locked, err := s.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("locking bookings file: %w", err)
	}
	if !locked {
		return fmt.Errorf("locking bookings file: lock not acquired")
	}
	defer func() {
		if err := s.lock.Unlock(); err != nil {
			s.logger.Warn("unlocking bookings file", zap.Error(err))
		}
	}()

	bookings, corrupt := s.read()

	next, err := fn(bookings)
	if err != nil {
		return err
	}

	if corrupt {
		s.backupCorrupt()
	}

	return s.write(next)
}

// read loads the ledger; the second value reports a file that exists but
// could not be decoded.
func (s *FileStore) read() ([]screening.Booking, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("reading bookings file, treating as empty", zap.Error(err))
		}
		return []screening.Booking{}, false
	}

	if len(data) == 0 {
		return []screening.Booking{}, false
	}

	var bookings []screening.Booking
	if err := json.Unmarshal(data, &bookings); err != nil {
		s.logger.Warn("bookings file is corrupt, treating as empty", zap.Error(err))
		return []screening.Booking{}, true
	}

	if bookings == nil {
		bookings = []screening.Booking{}
	}
	return bookings, false
}

func (s *FileStore) write(bookings []screening.Booking) error {
	data, err := json.MarshalIndent(bookings, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding bookings: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".bookings-*.json")
	if err != nil {
		return fmt.Errorf("creating temporary bookings file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing bookings: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing bookings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing bookings: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing bookings file: %w", err)
	}

	return nil
}

func (s *FileStore) backupCorrupt() {
	backup := fmt.Sprintf("%s.corrupt-%d", s.path, time.Now().UnixNano())
	if err := os.Rename(s.path, backup); err != nil {
		s.logger.Warn("backing up corrupt bookings file", zap.Error(err))
		return
	}
	s.logger.Warn("corrupt bookings file moved aside", zap.String("backup", backup))
}

func contains(bookings []screening.Booking, key screening.SlotKey) bool {
	for _, b := range bookings {
		if b.Key() == key {
			return true
		}
	}
	return false
}
