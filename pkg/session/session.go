// Package session persists editing sessions across CLI invocations.
//
// An editing session remembers every standing-ticket id issued for one venue
// so that tickets added on demand ("seatplan standing add") never collide
// with tickets issued earlier, and so that the primary standing seat of each
// section keeps its id between compiles.
//
// Backends:
//   - [FileStore]: JSON files under ~/.config/seatplan/sessions (CLI)
//   - [MemoryStore]: in-process storage for hosts and tests
//
// # Usage
//
//	store, err := session.NewFileStore("")
//	sess, err := session.Current(ctx, store, venueHash)
//	if sess == nil {
//	    sess = session.New(venuePath, venueHash, session.DefaultTTL)
//	}
//	synth.Restore(sess.Standing)
//	// ... issue standing tickets ...
//	sess.Record(synth.Issued(), session.DefaultTTL)
//	store.Set(ctx, sess)
package session

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is how long an idle session is kept.
const DefaultTTL = 7 * 24 * time.Hour

// Session is the persisted state of one editing session.
type Session struct {
	ID        string `json:"id"`
	Venue     string `json:"venue"`
	VenueHash string `json:"venue_hash"`

	// Standing maps section keys to the standing ids issued for them,
	// in issue order. The first id of each section is its primary seat.
	Standing map[string][]string `json:"standing"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// New creates a session for the venue with the given content hash.
func New(venue, venueHash string, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		Venue:     venue,
		VenueHash: venueHash,
		Standing:  make(map[string][]string),
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Record replaces the standing ids and extends the session by ttl.
func (s *Session) Record(standing map[string][]string, ttl time.Duration) {
	s.Standing = make(map[string][]string, len(standing))
	for k, ids := range standing {
		s.Standing[k] = append([]string(nil), ids...)
	}
	s.UpdatedAt = time.Now()
	s.ExpiresAt = s.UpdatedAt.Add(ttl)
}

// StandingCount returns the number of standing ids issued in the session.
func (s *Session) StandingCount() int {
	n := 0
	for _, ids := range s.Standing {
		n += len(ids)
	}
	return n
}

// Sections returns the section keys with issued standing ids, sorted.
func (s *Session) Sections() []string {
	keys := make([]string, 0, len(s.Standing))
	for k := range s.Standing {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID.
	// Returns nil, nil if the session doesn't exist or has expired.
	Get(ctx context.Context, sessionID string) (*Session, error)

	// Set stores a session.
	Set(ctx context.Context, session *Session) error

	// Delete removes a session.
	Delete(ctx context.Context, sessionID string) error

	// List returns all live sessions, most recently updated first.
	List(ctx context.Context) ([]*Session, error)

	// Cleanup removes expired sessions.
	Cleanup(ctx context.Context) error
}

// Current returns the most recently updated live session for venueHash,
// or nil if there is none.
func Current(ctx context.Context, store Store, venueHash string) (*Session, error) {
	sessions, err := store.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, s := range sessions {
		if s.VenueHash == venueHash {
			return s, nil
		}
	}
	return nil, nil
}

func sortByUpdated(sessions []*Session) {
	sort.SliceStable(sessions, func(i, j int) bool {
		if !sessions[i].UpdatedAt.Equal(sessions[j].UpdatedAt) {
			return sessions[i].UpdatedAt.After(sessions[j].UpdatedAt)
		}
		return sessions[i].ID < sessions[j].ID
	})
}
