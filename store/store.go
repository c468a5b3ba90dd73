// server/store/store.go
package store

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ViniZap4/studynotes-server/domain"
	"github.com/ViniZap4/studynotes-server/filesystem"
	"github.com/ViniZap4/studynotes-server/platform"
)

var (
	ErrNotFound = errors.New("note not found")
	// ErrViewMode rejects mutations while the store is in view mode.
	ErrViewMode = errors.New("mutations require admin mode")
	// ErrFormClosed rejects draft edits when no form is open.
	ErrFormClosed = errors.New("no form is open")
)

// Event types published after a state change.
const (
	EventNoteCreated = "note_created"
	EventNoteUpdated = "note_updated"
	EventNoteDeleted = "note_deleted"
	EventNoteViewed  = "note_viewed"
	EventModeChanged = "mode_changed"
)

// Event describes a committed state change.
type Event struct {
	Type  string
	Note  *domain.Note
	Admin bool
}

// EventSink receives events after the store lock is released.
type EventSink interface {
	Publish(Event)
}

// Form is the create/edit form state.
type Form struct {
	Open      bool         `json:"open"`
	EditingID string       `json:"editing_id,omitempty"`
	Draft     domain.Draft `json:"draft"`
}

// NoteStore owns the catalog, the collection and all view state. It is
// the only writer of the collection.
type NoteStore struct {
	mu sync.Mutex

	subjects []domain.Subject
	notes    []*domain.Note

	selected string
	focusID  string
	admin    bool
	form     Form

	now      func() time.Time
	newID    func() string
	shareURL string
	sharer   platform.Sharer
	clip     platform.Clipboard
	notifier platform.Notifier
	events   EventSink
	log      zerolog.Logger
}

type Option func(*NoteStore)

func WithClock(now func() time.Time) Option {
	return func(s *NoteStore) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *NoteStore) { s.newID = newID }
}

func WithLogger(log zerolog.Logger) Option {
	return func(s *NoteStore) { s.log = log }
}

func WithEvents(sink EventSink) Option {
	return func(s *NoteStore) { s.events = sink }
}

// WithShare sets the share target, the clipboard fallback, the notice
// channel and the location attached to shared notes.
func WithShare(sharer platform.Sharer, clip platform.Clipboard, notifier platform.Notifier, url string) Option {
	return func(s *NoteStore) {
		s.sharer = sharer
		s.clip = clip
		s.notifier = notifier
		s.shareURL = url
	}
}

// New builds a store in view mode from seed.
func New(seed *filesystem.Seed, opts ...Option) *NoteStore {
	s := &NoteStore{
		now:      func() time.Time { return time.Now().UTC() },
		newID:    func() string { return uuid.NewString() },
		sharer:   platform.Unavailable{},
		clip:     platform.SystemClipboard{},
		log:      zerolog.Nop(),
		subjects: []domain.Subject{},
		notes:    []*domain.Note{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.notifier == nil {
		s.notifier = platform.LogNotifier{Log: s.log}
	}

	if seed != nil {
		s.subjects = append(s.subjects, seed.Subjects...)
		for _, n := range seed.Notes {
			s.notes = append(s.notes, n.Clone())
		}
	}
	return s
}

func (s *NoteStore) Subjects() []domain.Subject {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Subject{}, s.subjects...)
}

// Notes returns the whole collection in order.
func (s *NoteStore) Notes() []*domain.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.notes)
}

func (s *NoteStore) Get(id string) (*domain.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	return s.notes[i].Clone(), nil
}

func (s *NoteStore) SelectSubject(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = name
}

func (s *NoteStore) SelectedSubject() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Visible is the collection filtered by the selected subject.
func (s *NoteStore) Visible() []*domain.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(domain.Filter(s.notes, s.selected))
}

// FilterBy filters the collection by subject without touching the
// selection.
func (s *NoteStore) FilterBy(subject string) []*domain.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(domain.Filter(s.notes, subject))
}

func (s *NoteStore) indexOf(id string) int {
	for i, n := range s.notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

func (s *NoteStore) publish(ev Event) {
	if s.events != nil {
		s.events.Publish(ev)
	}
}

func cloneAll(notes []*domain.Note) []*domain.Note {
	out := make([]*domain.Note, 0, len(notes))
	for _, n := range notes {
		out = append(out, n.Clone())
	}
	return out
}
