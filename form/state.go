package form

import (
	"sync"

	"thumbnailer/logger"
	"thumbnailer/models"
)

// State holds the current text of the title, subtitle and category inputs.
//
// Every change notifies subscribers synchronously, after the lock is released,
// so the preview is redrawn before SetField returns and never shows stale text.
type State struct {
	mu        sync.Mutex
	fields    models.FormFields
	dirty     map[models.Field]bool
	listeners map[int]func(models.FormFields)
	nextID    int

	log *logger.Logger
}

// New creates an empty form state. The logger may be nil.
func New(log *logger.Logger) *State {
	return &State{
		dirty:     make(map[models.Field]bool),
		listeners: make(map[int]func(models.FormFields)),
		log:       log.Component("form"),
	}
}

// SetField updates one field and marks it dirty.
// Any string is accepted; unknown field names are ignored.
func (s *State) SetField(field models.Field, value string) {
	if !field.Valid() {
		s.log.Debugf("ignoring unknown form field %q", field)
		return
	}

	s.mu.Lock()
	s.fields = s.fields.With(field, value)
	s.dirty[field] = true
	snapshot, listeners := s.snapshotLocked()
	s.mu.Unlock()

	notify(listeners, snapshot)
}

// Field returns the current value of field, or "" if it was never set.
func (s *State) Field(field models.Field) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fields.Get(field)
}

// Fields returns a copy of all current values.
func (s *State) Fields() models.FormFields {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fields
}

// ResetAll clears every field to empty and drops all dirty flags.
func (s *State) ResetAll() {
	s.mu.Lock()
	s.fields = models.FormFields{}
	s.dirty = make(map[models.Field]bool)
	snapshot, listeners := s.snapshotLocked()
	s.mu.Unlock()

	s.log.Debug("form reset")
	notify(listeners, snapshot)
}

// IsDirty reports whether field was edited since creation or the last reset.
func (s *State) IsDirty(field models.Field) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty[field]
}

// DirtyFields returns the edited fields in display order.
func (s *State) DirtyFields() []models.Field {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Field, 0, len(s.dirty))
	for _, f := range models.AllFields {
		if s.dirty[f] {
			out = append(out, f)
		}
	}
	return out
}

// IsValid always reports true: every text entry is accepted.
// It exists so callers can gate actions on form validity if rules are ever added.
func (s *State) IsValid() bool {
	return true
}

// Subscribe registers fn to be called with the new values after every change.
func (s *State) Subscribe(fn func(models.FormFields)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// snapshotLocked copies the values and listeners in registration order.
// Caller must hold s.mu.
func (s *State) snapshotLocked() (models.FormFields, []func(models.FormFields)) {
	listeners := make([]func(models.FormFields), 0, len(s.listeners))
	for id := 0; id < s.nextID; id++ {
		if fn, ok := s.listeners[id]; ok {
			listeners = append(listeners, fn)
		}
	}
	return s.fields, listeners
}

func notify(listeners []func(models.FormFields), fields models.FormFields) {
	for _, fn := range listeners {
		fn(fields)
	}
}
