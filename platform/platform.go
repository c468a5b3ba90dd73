// server/platform/platform.go
package platform

import (
	"errors"

	"github.com/rs/zerolog"
)

// ErrShareUnavailable is returned by a Sharer that has no share target.
var ErrShareUnavailable = errors.New("native share unavailable")

const (
	DeletePrompt = "Delete this note?"
	CopiedNotice = "Note copied to clipboard!"
)

// ShareData is what a native share target receives.
type ShareData struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	URL   string `json:"url"`
}

// Confirmer answers a blocking yes/no prompt.
type Confirmer interface {
	Confirm(message string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(message string) bool

func (f ConfirmFunc) Confirm(message string) bool { return f(message) }

// Always is a Confirmer with a fixed answer.
type Always bool

func (a Always) Confirm(string) bool { return bool(a) }

type Sharer interface {
	Share(data ShareData) error
}

type Clipboard interface {
	WriteText(text string) error
}

type Notifier interface {
	Alert(message string)
}

// LogNotifier surfaces alerts as log records.
type LogNotifier struct {
	Log zerolog.Logger
}

func (n LogNotifier) Alert(message string) {
	n.Log.Info().Str("alert", message).Msg("notice")
}

// Unavailable is a Sharer for platforms without native share.
type Unavailable struct{}

func (Unavailable) Share(ShareData) error { return ErrShareUnavailable }
