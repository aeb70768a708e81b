// Package session holds the per-visitor state: exactly three tracked days,
// each with its own log and per-day patient inputs, plus the session-wide
// age. Nothing here survives a restart; the spec excludes persistence.
package session

import (
	"sync"

	"github.com/Lappanawat/flowmind-ranocturia/internal/models"

	"github.com/google/uuid"
)

// DayCount is the number of days tracked per session.
const DayCount = 3

// DayState is one tracked day: its log plus the inputs that vary per day.
type DayState struct {
	Log          models.DayLog
	BodyWeightKg float64
	WakeTime     int
	BedTime      int
}

// Patient assembles the metrics-engine input for this day with the
// session-wide age.
func (d *DayState) Patient(age int) models.PatientContext {
	return models.PatientContext{
		Age:          age,
		BodyWeightKg: d.BodyWeightKg,
		WakeTime:     d.WakeTime,
		BedTime:      d.BedTime,
	}
}

// Session is one visitor's working state. Age is shared across the three
// days; everything else is per day.
type Session struct {
	ID   string
	Age  int
	Days [DayCount]*DayState
}

// Day returns the 1-based day, or nil for an out-of-range index.
func (s *Session) Day(n int) *DayState {
	if n < 1 || n > DayCount {
		return nil
	}
	return s.Days[n-1]
}

// Store is the in-process session registry, keyed by the token carried in
// the visitor's cookie. Sessions are independent and never shared.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	template models.DayLog
}

// NewStore creates an empty registry. New sessions seed each day's table
// from the given template log.
func NewStore(template models.DayLog) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		template: template,
	}
}

// Get looks up an existing session.
func (s *Store) Get(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// Create registers a fresh session with default per-day inputs and the demo
// template in each day's table.
func (s *Store) Create() *Session {
	sess := &Session{ID: uuid.NewString()}
	for i := range sess.Days {
		sess.Days[i] = &DayState{
			Log:          s.template.Clone(),
			BodyWeightKg: models.DefaultBodyWeightKg,
			WakeTime:     models.DefaultWakeTime,
			BedTime:      models.DefaultBedTime,
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return sess
}

// GetOrCreate resolves the cookie token to a session, creating one when the
// token is missing or stale (server restarted, session evicted).
func (s *Store) GetOrCreate(id string) *Session {
	if id != "" {
		if sess, ok := s.Get(id); ok {
			return sess
		}
	}
	return s.Create()
}
