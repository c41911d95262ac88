// Package filestore persists the whole event database as a single CBOR file.
//
// There is no cached state between calls: every operation re-reads the file,
// mutates an owned copy, and writes the whole encoding back, under one
// process-wide gate. This is deliberate — the store favors strong in-process
// consistency over throughput. Running two processes against the same file is
// not safe.
package filestore

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"sync"
	"time"

	"github.com/fxamacker/cbor/v2"

	"eventinvite/internal/domain"
)

// eventDB is the root aggregate as it lives on disk.
type eventDB struct {
	Events []domain.Event `json:"events"`
}

// Store owns the backing file, the gate that serializes access to it, and the
// id source. It implements domain.EventStore.
type Store struct {
	path   string
	logger *slog.Logger

	// gate serializes every load-modify-save cycle. Lookups take it too:
	// with no in-memory cache, a read racing a write could otherwise observe
	// a partially written file.
	gate sync.Mutex

	// idMu guards rng on its own so id draws never contend with file I/O.
	idMu sync.Mutex
	rng  *rand.Rand

	now func() time.Time
}

// New returns a Store over the file at path. The file does not need to exist;
// it is created on first use.
func New(path string, logger *slog.Logger) *Store {
	s1, s2 := osSeed()
	return &Store{
		path:   path,
		logger: logger,
		rng:    rand.New(rand.NewPCG(s1, s2)),
		now:    time.Now,
	}
}

func osSeed() (uint64, uint64) {
	var b [16]byte
	if _, err := crand.Read(b[:]); err != nil {
		n := uint64(time.Now().UnixNano())
		return n, n + 1
	}
	return binary.LittleEndian.Uint64(b[:8]), binary.LittleEndian.Uint64(b[8:])
}

// nextID draws a full-width random identifier. Uniqueness is probabilistic
// only; nothing checks for collisions on insert.
func (s *Store) nextID() uint64 {
	s.idMu.Lock()
	defer s.idMu.Unlock()
	return s.rng.Uint64()
}

// load reads and decodes the backing file. Caller must hold the gate.
//
// An unreadable file is treated as a first run and an undecodable one as a
// leftover from an older structure; both cases reset the file to an empty
// database. Only a failure to write that empty database is an error.
func (s *Store) load() (*eventDB, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		// likely the first run
		s.logger.Info("unable to open an existing database, creating new", "path", s.path, "err", err)
		db := &eventDB{}
		if err := s.write(db); err != nil {
			return nil, err
		}
		return db, nil
	}

	var db eventDB
	if err := cbor.Unmarshal(data, &db); err != nil {
		s.logger.Warn("database is corrupted, assuming its structure changed in the source; recreating",
			"path", s.path, "err", err)
		db = eventDB{}
		if err := s.write(&db); err != nil {
			return nil, err
		}
	}
	return &db, nil
}

// write encodes db and overwrites the backing file in a single call. There is
// no tmp-and-rename step, so a crash mid-write can corrupt the file; load then
// resets it. Caller must hold the gate.
func (s *Store) write(db *eventDB) error {
	data, err := cbor.Marshal(db)
	if err != nil {
		s.logger.Error("database could not be serialized, should not happen", "err", err)
		return fmt.Errorf("encode database: %w", domain.ErrUnavailable)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		s.logger.Error("failed to write back database, data is lost", "path", s.path, "err", err)
		return fmt.Errorf("write database: %w", domain.ErrUnavailable)
	}
	return nil
}

func cloneEvent(e *domain.Event) *domain.Event {
	c := *e
	if e.Name != nil {
		name := *e.Name
		c.Name = &name
	}
	c.Attendees = append([]domain.Attendee(nil), e.Attendees...)
	return &c
}

// CreateEvent appends a new unnamed event with no attendees and returns its id.
func (s *Store) CreateEvent(ctx context.Context) (uint64, error) {
	s.gate.Lock()
	defer s.gate.Unlock()

	db, err := s.load()
	if err != nil {
		return 0, err
	}

	id := s.nextID()
	db.Events = append(db.Events, domain.Event{
		ID:        id,
		Attendees: []domain.Attendee{},
		Created:   s.now(),
	})

	if err := s.write(db); err != nil {
		return 0, err
	}
	return id, nil
}

// GetEventByID returns a copy of the event with the given id.
func (s *Store) GetEventByID(ctx context.Context, eventID uint64) (*domain.Event, error) {
	s.gate.Lock()
	defer s.gate.Unlock()

	db, err := s.load()
	if err != nil {
		return nil, err
	}

	for i := range db.Events {
		if db.Events[i].ID == eventID {
			return cloneEvent(&db.Events[i]), nil
		}
	}
	return nil, fmt.Errorf("event %d: %w", eventID, domain.ErrNotFound)
}

// GetEventByAttendee scans all events for an attendee with the given id.
// Attendee ids are treated as unique across the whole database, not per
// event: the first match anywhere wins.
func (s *Store) GetEventByAttendee(ctx context.Context, attendeeID uint64) (*domain.Event, *domain.Attendee, error) {
	s.gate.Lock()
	defer s.gate.Unlock()

	db, err := s.load()
	if err != nil {
		return nil, nil, err
	}

	for i := range db.Events {
		for j := range db.Events[i].Attendees {
			if db.Events[i].Attendees[j].ID == attendeeID {
				at := db.Events[i].Attendees[j]
				return cloneEvent(&db.Events[i]), &at, nil
			}
		}
	}
	return nil, nil, fmt.Errorf("attendee %d: %w", attendeeID, domain.ErrNotFound)
}

// SetAccepted sets the acceptance flag on every attendee with the given id.
// Matching nothing is not an error.
func (s *Store) SetAccepted(ctx context.Context, attendeeID uint64, accepted bool) error {
	s.gate.Lock()
	defer s.gate.Unlock()

	db, err := s.load()
	if err != nil {
		return err
	}

	for i := range db.Events {
		for j := range db.Events[i].Attendees {
			if db.Events[i].Attendees[j].ID == attendeeID {
				db.Events[i].Attendees[j].HasAccepted = accepted
			}
		}
	}

	return s.write(db)
}

// UpdateEvent sets the name of every event with the given id and overwrites
// name and invitation body of each attendee that has an entry in
// change.Attendees. Matching nothing is not an error.
func (s *Store) UpdateEvent(ctx context.Context, eventID uint64, change domain.EventChange) error {
	s.gate.Lock()
	defer s.gate.Unlock()

	db, err := s.load()
	if err != nil {
		return err
	}

	for i := range db.Events {
		if db.Events[i].ID != eventID {
			continue
		}
		name := change.Name
		db.Events[i].Name = &name
		for j := range db.Events[i].Attendees {
			if upd, ok := change.Attendees[db.Events[i].Attendees[j].ID]; ok {
				db.Events[i].Attendees[j].Name = upd.Name
				db.Events[i].Attendees[j].CustomHTML = upd.CustomHTML
			}
		}
	}

	return s.write(db)
}

// AddAttendee appends a placeholder attendee to every event with the given id
// and returns the id of the attendee added last, or 0 when no event matched.
func (s *Store) AddAttendee(ctx context.Context, eventID uint64) (uint64, error) {
	s.gate.Lock()
	defer s.gate.Unlock()

	db, err := s.load()
	if err != nil {
		return 0, err
	}

	var attendeeID uint64
	for i := range db.Events {
		if db.Events[i].ID != eventID {
			continue
		}
		attendeeID = s.nextID()
		db.Events[i].Attendees = append(db.Events[i].Attendees, domain.Attendee{
			ID:         attendeeID,
			Name:       domain.DefaultAttendeeName,
			CustomHTML: domain.DefaultAttendeeHTML,
		})
	}

	if err := s.write(db); err != nil {
		return 0, err
	}
	return attendeeID, nil
}

// RemoveAttendee drops every attendee with the given id from every event.
// Matching nothing is not an error.
func (s *Store) RemoveAttendee(ctx context.Context, attendeeID uint64) error {
	s.gate.Lock()
	defer s.gate.Unlock()

	db, err := s.load()
	if err != nil {
		return err
	}

	for i := range db.Events {
		kept := db.Events[i].Attendees[:0]
		for _, at := range db.Events[i].Attendees {
			if at.ID != attendeeID {
				kept = append(kept, at)
			}
		}
		db.Events[i].Attendees = kept
	}

	return s.write(db)
}

// RemoveExpired drops every event whose age is maxAge or more. An event with a
// creation time in the future is a clock anomaly and is dropped too, with a
// warning. Returns the number of events dropped.
func (s *Store) RemoveExpired(ctx context.Context, maxAge time.Duration) (int, error) {
	s.gate.Lock()
	defer s.gate.Unlock()

	db, err := s.load()
	if err != nil {
		return 0, err
	}

	now := s.now()
	kept := db.Events[:0]
	for _, ev := range db.Events {
		age := now.Sub(ev.Created)
		if age < 0 {
			s.logger.Warn("purging event with creation time after current time", "event", ev.DisplayName())
			continue
		}
		if age < maxAge {
			kept = append(kept, ev)
		}
	}
	removed := len(db.Events) - len(kept)
	db.Events = kept

	if err := s.write(db); err != nil {
		return 0, err
	}
	return removed, nil
}
