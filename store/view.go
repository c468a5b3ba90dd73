// server/store/view.go
package store

import (
	"errors"

	"github.com/ViniZap4/studynotes-server/domain"
	"github.com/ViniZap4/studynotes-server/platform"
)

// Open focuses the note with id and counts one view. Every call counts.
func (s *NoteStore) Open(id string) (*domain.Note, error) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return nil, ErrNotFound
	}
	n := s.notes[i]
	n.Views++
	s.focusID = id
	viewed := n.Clone()
	s.mu.Unlock()

	s.log.Debug().Str("note_id", id).Int("views", viewed.Views).Msg("note opened")
	s.publish(Event{Type: EventNoteViewed, Note: viewed.Clone()})
	return viewed, nil
}

// Back returns from the detail view to the list.
func (s *NoteStore) Back() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.focusID = ""
}

// Focused returns the note open in the detail view, or nil.
func (s *NoteStore) Focused() *domain.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.focusedLocked()
}

func (s *NoteStore) focusedLocked() *domain.Note {
	if s.focusID == "" {
		return nil
	}
	i := s.indexOf(s.focusID)
	if i < 0 {
		return nil
	}
	return s.notes[i].Clone()
}

// Delete asks c to confirm and then removes the note with id. It reports
// whether a note was removed. A focused or edited note being deleted
// sends the view back to the list and closes the form.
func (s *NoteStore) Delete(id string, c platform.Confirmer) (bool, error) {
	s.mu.Lock()
	if !s.admin {
		s.mu.Unlock()
		return false, ErrViewMode
	}
	if s.indexOf(id) < 0 {
		s.mu.Unlock()
		return false, ErrNotFound
	}
	s.mu.Unlock()

	// the prompt blocks, so it runs outside the lock
	if !c.Confirm(platform.DeletePrompt) {
		return false, nil
	}

	s.mu.Lock()
	if !s.admin {
		s.mu.Unlock()
		return false, ErrViewMode
	}
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return false, ErrNotFound
	}
	removed := s.notes[i]
	s.notes = append(s.notes[:i:i], s.notes[i+1:]...)
	if s.focusID == id {
		s.focusID = ""
	}
	if s.form.EditingID == id {
		s.resetForm()
	}
	s.mu.Unlock()

	s.log.Debug().Str("note_id", id).Msg("note deleted")
	s.publish(Event{Type: EventNoteDeleted, Note: removed})
	return true, nil
}

func (s *NoteStore) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.admin
}

// SetAdmin switches between admin and view mode. Leaving admin mode
// closes the form.
func (s *NoteStore) SetAdmin(admin bool) {
	s.mu.Lock()
	changed := s.setAdminLocked(admin)
	s.mu.Unlock()
	s.afterModeChange(admin, changed)
}

func (s *NoteStore) ToggleMode() bool {
	s.mu.Lock()
	admin := !s.admin
	s.setAdminLocked(admin)
	s.mu.Unlock()
	s.afterModeChange(admin, true)
	return admin
}

func (s *NoteStore) setAdminLocked(admin bool) bool {
	changed := s.admin != admin
	s.admin = admin
	if !admin {
		s.resetForm()
	}
	return changed
}

func (s *NoteStore) afterModeChange(admin, changed bool) {
	if !changed {
		return
	}
	s.log.Debug().Bool("admin", admin).Msg("mode changed")
	s.publish(Event{Type: EventModeChanged, Admin: admin})
}

// ShareResult reports how a note was shared.
type ShareResult struct {
	Method string             `json:"method"`
	Data   platform.ShareData `json:"data"`
	// Copied is false when the clipboard fallback could not write.
	Copied bool `json:"copied"`
}

const (
	ShareNative    = "native"
	ShareClipboard = "clipboard"
)

// Share hands the note to the native share target, or copies it to the
// clipboard and alerts when no target exists. A failed clipboard write is
// logged; the share itself never fails. Store state is untouched.
func (s *NoteStore) Share(id string) (*ShareResult, error) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return nil, ErrNotFound
	}
	n := s.notes[i].Clone()
	sharer, clip, notifier, url := s.sharer, s.clip, s.notifier, s.shareURL
	s.mu.Unlock()

	data := platform.ShareData{
		Title: n.Title,
		Text:  domain.Truncate(n.Content, domain.ShareExcerptLength),
		URL:   url,
	}
	err := sharer.Share(data)
	if err == nil {
		return &ShareResult{Method: ShareNative, Data: data}, nil
	}
	if !errors.Is(err, platform.ErrShareUnavailable) {
		return nil, err
	}

	copied := true
	if err := clip.WriteText(n.Title + "\n\n" + n.Content); err != nil {
		s.log.Warn().Err(err).Str("note_id", id).Msg("clipboard write failed")
		copied = false
	}
	notifier.Alert(platform.CopiedNotice)
	return &ShareResult{Method: ShareClipboard, Data: data, Copied: copied}, nil
}

// Snapshot is the complete view state.
type Snapshot struct {
	Admin           bool             `json:"admin"`
	SelectedSubject string           `json:"selected_subject"`
	Subjects        []domain.Subject `json:"subjects"`
	Notes           []*domain.Note   `json:"notes"`
	Focus           *domain.Note     `json:"focus"`
	Form            Form             `json:"form"`
}

func (s *NoteStore) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Admin:           s.admin,
		SelectedSubject: s.selected,
		Subjects:        append([]domain.Subject{}, s.subjects...),
		Notes:           cloneAll(domain.Filter(s.notes, s.selected)),
		Focus:           s.focusedLocked(),
		Form:            s.form,
	}
}
