// server/store/form.go
package store

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/ViniZap4/studynotes-server/domain"
)

var validate = validator.New()

// OpenCreate opens an empty form for a new note.
func (s *NoteStore) OpenCreate() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.admin {
		return ErrViewMode
	}
	s.form = Form{Open: true}
	return nil
}

// OpenEdit opens the form prefilled from the note with id and makes it
// the editing target.
func (s *NoteStore) OpenEdit(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.admin {
		return ErrViewMode
	}
	i := s.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	s.form = Form{
		Open:      true,
		EditingID: id,
		Draft:     domain.DraftFrom(s.notes[i]),
	}
	return nil
}

// UpdateDraft replaces the draft of an open form.
func (s *NoteStore) UpdateDraft(d domain.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.admin {
		return ErrViewMode
	}
	if !s.form.Open {
		return ErrFormClosed
	}
	s.form.Draft = d
	return nil
}

// Cancel closes the form and discards the draft.
func (s *NoteStore) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetForm()
}

func (s *NoteStore) Form() Form {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

func (s *NoteStore) resetForm() {
	s.form = Form{}
}

// Submit commits the draft. A blank title or content after trimming is a
// silent no-op that leaves the form open, reported as applied == false.
// Otherwise the draft creates a note (prepended) or replaces the editing
// target in place, and the form closes.
func (s *NoteStore) Submit() (*domain.Note, bool, error) {
	s.mu.Lock()
	if !s.admin {
		s.mu.Unlock()
		return nil, false, ErrViewMode
	}
	if !s.form.Open {
		s.mu.Unlock()
		return nil, false, ErrFormClosed
	}
	saved, ev, err := s.submitLocked(s.form)
	if saved != nil || errors.Is(err, ErrNotFound) {
		s.resetForm()
	}
	s.mu.Unlock()
	return s.afterSubmit(saved, ev, err)
}

// Create submits d as a new note in one step. The open form, if any, is
// left alone.
func (s *NoteStore) Create(d domain.Draft) (*domain.Note, bool, error) {
	s.mu.Lock()
	if !s.admin {
		s.mu.Unlock()
		return nil, false, ErrViewMode
	}
	saved, ev, err := s.submitLocked(Form{Open: true, Draft: d})
	s.mu.Unlock()
	return s.afterSubmit(saved, ev, err)
}

// Update submits d over the note with id in one step. The open form, if
// any, is left alone.
func (s *NoteStore) Update(id string, d domain.Draft) (*domain.Note, bool, error) {
	s.mu.Lock()
	if !s.admin {
		s.mu.Unlock()
		return nil, false, ErrViewMode
	}
	if s.indexOf(id) < 0 {
		s.mu.Unlock()
		return nil, false, ErrNotFound
	}
	saved, ev, err := s.submitLocked(Form{Open: true, EditingID: id, Draft: d})
	s.mu.Unlock()
	return s.afterSubmit(saved, ev, err)
}

func (s *NoteStore) afterSubmit(saved *domain.Note, ev Event, err error) (*domain.Note, bool, error) {
	if err != nil || saved == nil {
		return nil, false, err
	}
	s.log.Debug().Str("note_id", saved.ID).Str("event", ev.Type).Msg("note saved")
	s.publish(ev)
	return saved, true, nil
}

// submitLocked applies f to the collection. It returns a nil note and a
// nil error for a rejected draft and never touches s.form.
func (s *NoteStore) submitLocked(f Form) (*domain.Note, Event, error) {
	draft := f.Draft.Normalized()
	if err := validate.Struct(draft); err != nil {
		s.log.Debug().Err(err).Msg("draft rejected")
		return nil, Event{}, nil
	}

	subject := draft.Subject
	if subject == "" {
		subject = domain.DefaultSubject
	}
	now := s.now()

	if f.EditingID != "" {
		i := s.indexOf(f.EditingID)
		if i < 0 {
			// target deleted while the form was open
			return nil, Event{}, ErrNotFound
		}
		n := s.notes[i]
		n.Title = draft.Title
		n.Content = draft.Content
		n.Subject = subject
		n.Tags = domain.ParseTags(draft.Tags)
		n.Author = domain.Author
		if now.Before(n.UpdatedAt) {
			now = n.UpdatedAt
		}
		n.UpdatedAt = now
		return n.Clone(), Event{Type: EventNoteUpdated, Note: n.Clone()}, nil
	}

	n := &domain.Note{
		ID:        s.uniqueID(),
		Title:     draft.Title,
		Content:   draft.Content,
		Subject:   subject,
		Tags:      domain.ParseTags(draft.Tags),
		Author:    domain.Author,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.notes = append([]*domain.Note{n}, s.notes...)
	return n.Clone(), Event{Type: EventNoteCreated, Note: n.Clone()}, nil
}

// uniqueID draws ids until one is unused; seeded notes carry ids from a
// foreign scheme.
func (s *NoteStore) uniqueID() string {
	for {
		id := s.newID()
		if s.indexOf(id) < 0 {
			return id
		}
	}
}
