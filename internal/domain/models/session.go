package models

import (
	"slices"
)

// SessionData is the persisted layout of one visitor session.
type SessionData struct {
	User   *Profile      `json:"user,omitempty"`
	Driver *DriverRecord `json:"driver,omitempty"`
	Laps   []LapRecord   `json:"laps"`
}

// Session is the per-request view of a visitor session. Handlers read and
// write through its accessors; the session manager persists it after the
// handler returns.
type Session struct {
	ID string

	data      SessionData
	isNew     bool
	dirty     bool
	destroyed bool
}

func NewSession(id string, data SessionData, isNew bool) *Session {
	return &Session{
		ID:    id,
		data:  data,
		isNew: isNew,
	}
}

// Data returns a copy of the session contents.
func (s *Session) Data() SessionData {
	d := SessionData{
		Laps: slices.Clone(s.data.Laps),
	}
	if s.data.User != nil {
		u := *s.data.User
		d.User = &u
	}
	if s.data.Driver != nil {
		dr := *s.data.Driver
		d.Driver = &dr
	}
	if d.Laps == nil {
		d.Laps = []LapRecord{}
	}
	return d
}

func (s *Session) IsNew() bool       { return s.isNew }
func (s *Session) IsDirty() bool     { return s.dirty }
func (s *Session) IsDestroyed() bool { return s.destroyed }

// User returns the profile stored in the session, nil when nobody registered.
func (s *Session) User() *Profile {
	return s.data.User
}

func (s *Session) SetUser(p Profile) {
	s.data.User = &p
	s.dirty = true
}

// UpdateUser mutates the stored profile in place. The driver record is left as registered.
func (s *Session) UpdateUser(fn func(p *Profile)) {
	if s.data.User == nil {
		s.data.User = &Profile{}
	}
	fn(s.data.User)
	s.dirty = true
}

func (s *Session) Driver() *DriverRecord {
	return s.data.Driver
}

func (s *Session) SetDriver(d DriverRecord) {
	s.data.Driver = &d
	s.dirty = true
}

// Laps returns the lap log in insertion order. Never nil.
func (s *Session) Laps() []LapRecord {
	if s.data.Laps == nil {
		return []LapRecord{}
	}
	return slices.Clone(s.data.Laps)
}

func (s *Session) AppendLap(l LapRecord) {
	s.data.Laps = append(s.data.Laps, l)
	s.dirty = true
}

// DeleteLap removes the lap at index and closes the gap. It reports whether
// anything was removed.
func (s *Session) DeleteLap(index int) bool {
	if index < 0 || index >= len(s.data.Laps) {
		return false
	}
	s.data.Laps = slices.Delete(s.data.Laps, index, index+1)
	s.dirty = true
	return true
}

// Destroy drops all session state.
func (s *Session) Destroy() {
	s.data = SessionData{}
	s.destroyed = true
	s.dirty = false
}
