// server/http/handlers.go
package http

import (
	"errors"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/ViniZap4/studynotes-server/domain"
	"github.com/ViniZap4/studynotes-server/filesystem"
	"github.com/ViniZap4/studynotes-server/platform"
	"github.com/ViniZap4/studynotes-server/store"
	"github.com/ViniZap4/studynotes-server/ws"
)

type Server struct {
	store *store.NoteStore
	hub   *ws.Hub
	log   zerolog.Logger
}

func NewServer(st *store.NoteStore, hub *ws.Hub, log zerolog.Logger) *Server {
	return &Server{store: st, hub: hub, log: log}
}

// NoteView is a note as the API renders it.
type NoteView struct {
	*domain.Note
	DisplayDate string `json:"display_date"`
}

func viewOf(n *domain.Note) *NoteView {
	if n == nil {
		return nil
	}
	return &NoteView{Note: n, DisplayDate: domain.FormatDate(n.UpdatedAt)}
}

func viewsOf(notes []*domain.Note) []*NoteView {
	views := make([]*NoteView, 0, len(notes))
	for _, n := range notes {
		views = append(views, viewOf(n))
	}
	return views
}

type stateView struct {
	Admin           bool             `json:"admin"`
	SelectedSubject string           `json:"selected_subject"`
	Subjects        []domain.Subject `json:"subjects"`
	Notes           []*NoteView      `json:"notes"`
	Focus           *NoteView        `json:"focus"`
	Form            store.Form       `json:"form"`
}

type submitResult struct {
	Applied bool      `json:"applied"`
	Note    *NoteView `json:"note,omitempty"`
}

// storeError maps store sentinels onto HTTP statuses.
func storeError(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Note not found")
	case errors.Is(err, store.ErrViewMode):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	case errors.Is(err, store.ErrFormClosed):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	default:
		return err
	}
}

func parseDraft(c *fiber.Ctx) (domain.Draft, error) {
	var d domain.Draft
	if err := c.BodyParser(&d); err != nil {
		return d, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return d, nil
}

func (s *Server) HandleSubjects(c *fiber.Ctx) error {
	return c.JSON(s.store.Subjects())
}

func (s *Server) HandleState(c *fiber.Ctx) error {
	snap := s.store.Snapshot()
	return c.JSON(stateView{
		Admin:           snap.Admin,
		SelectedSubject: snap.SelectedSubject,
		Subjects:        snap.Subjects,
		Notes:           viewsOf(snap.Notes),
		Focus:           viewOf(snap.Focus),
		Form:            snap.Form,
	})
}

// HandleNotes lists the visible notes. A subject query filters this read
// without changing the selected subject.
func (s *Server) HandleNotes(c *fiber.Ctx) error {
	if c.Context().QueryArgs().Has("subject") {
		return c.JSON(viewsOf(s.store.FilterBy(c.Query("subject"))))
	}
	return c.JSON(viewsOf(s.store.Visible()))
}

func (s *Server) HandleGetNote(c *fiber.Ctx) error {
	note, err := s.store.Get(c.Params("id"))
	if err != nil {
		return storeError(err)
	}
	return c.JSON(viewOf(note))
}

func (s *Server) HandleExportNote(c *fiber.Ctx) error {
	note, err := s.store.Get(c.Params("id"))
	if err != nil {
		return storeError(err)
	}
	data, err := filesystem.RenderMarkdown(note)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "text/markdown; charset=utf-8")
	return c.Send(data)
}

func (s *Server) HandleCreateNote(c *fiber.Ctx) error {
	draft, err := parseDraft(c)
	if err != nil {
		return err
	}
	return s.create(c, draft)
}

// HandleImportNote creates a note from a markdown document with YAML
// frontmatter, the format the export route produces. Only title, subject,
// tags and body are taken; id, author, timestamps and views are assigned
// as for any new note.
func (s *Server) HandleImportNote(c *fiber.Ctx) error {
	parsed, err := filesystem.ParseMarkdown(c.Body())
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return s.create(c, domain.Draft{
		Title:   parsed.Title,
		Content: parsed.Content,
		Subject: parsed.Subject,
		Tags:    domain.JoinTags(parsed.Tags),
	})
}

func (s *Server) create(c *fiber.Ctx, draft domain.Draft) error {
	note, applied, err := s.store.Create(draft)
	if err != nil {
		return storeError(err)
	}
	if !applied {
		return c.JSON(submitResult{Applied: false})
	}
	return c.Status(fiber.StatusCreated).JSON(submitResult{Applied: true, Note: viewOf(note)})
}

func (s *Server) HandleUpdateNote(c *fiber.Ctx) error {
	draft, err := parseDraft(c)
	if err != nil {
		return err
	}
	note, applied, err := s.store.Update(c.Params("id"), draft)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(submitResult{Applied: applied, Note: viewOf(note)})
}

// HandleDeleteNote takes the confirmation answer from the confirm query
// parameter.
func (s *Server) HandleDeleteNote(c *fiber.Ctx) error {
	confirmed := platform.Always(c.QueryBool("confirm", false))
	removed, err := s.store.Delete(c.Params("id"), confirmed)
	if err != nil {
		return storeError(err)
	}
	if !removed {
		return c.JSON(fiber.Map{"deleted": false})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) HandleOpenNote(c *fiber.Ctx) error {
	note, err := s.store.Open(c.Params("id"))
	if err != nil {
		return storeError(err)
	}
	return c.JSON(viewOf(note))
}

func (s *Server) HandleShareNote(c *fiber.Ctx) error {
	res, err := s.store.Share(c.Params("id"))
	if err != nil {
		return storeError(err)
	}
	return c.JSON(res)
}

func (s *Server) HandleBack(c *fiber.Ctx) error {
	s.store.Back()
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) HandleFilter(c *fiber.Ctx) error {
	var req struct {
		Subject string `json:"subject"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	s.store.SelectSubject(req.Subject)
	return c.JSON(viewsOf(s.store.Visible()))
}

func (s *Server) HandleSetMode(c *fiber.Ctx) error {
	var req struct {
		Admin *bool `json:"admin" validate:"required"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "admin is required")
	}
	s.store.SetAdmin(*req.Admin)
	return c.JSON(fiber.Map{"admin": *req.Admin})
}

func (s *Server) HandleToggleMode(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"admin": s.store.ToggleMode()})
}

func (s *Server) HandleFormNew(c *fiber.Ctx) error {
	if err := s.store.OpenCreate(); err != nil {
		return storeError(err)
	}
	return c.JSON(s.store.Form())
}

func (s *Server) HandleFormEdit(c *fiber.Ctx) error {
	if err := s.store.OpenEdit(c.Params("id")); err != nil {
		return storeError(err)
	}
	return c.JSON(s.store.Form())
}

func (s *Server) HandleFormDraft(c *fiber.Ctx) error {
	draft, err := parseDraft(c)
	if err != nil {
		return err
	}
	if err := s.store.UpdateDraft(draft); err != nil {
		return storeError(err)
	}
	return c.JSON(s.store.Form())
}

func (s *Server) HandleFormSubmit(c *fiber.Ctx) error {
	note, applied, err := s.store.Submit()
	if err != nil {
		return storeError(err)
	}
	return c.JSON(submitResult{Applied: applied, Note: viewOf(note)})
}

func (s *Server) HandleFormCancel(c *fiber.Ctx) error {
	s.store.Cancel()
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) HandleWebSocket(conn *websocket.Conn) {
	s.hub.Register(conn)
	s.hub.HandleConnection(conn)
}
