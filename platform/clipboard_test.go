package platform

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubClipboard(t *testing.T, system, osc func(string) error) {
	t.Helper()
	origSystem, origOSC := clipboardWriteAll, clipboardWriteOSC52
	clipboardWriteAll, clipboardWriteOSC52 = system, osc
	t.Cleanup(func() {
		clipboardWriteAll, clipboardWriteOSC52 = origSystem, origOSC
	})
}

func TestSystemClipboard_WriteText(t *testing.T) {
	t.Run("system clipboard succeeds", func(t *testing.T) {
		var got string
		stubClipboard(t,
			func(s string) error { got = s; return nil },
			func(string) error { t.Fatal("OSC52 should not be used"); return nil },
		)

		require.NoError(t, SystemClipboard{}.WriteText("hello"))
		assert.Equal(t, "hello", got)
	})

	t.Run("falls back to OSC52", func(t *testing.T) {
		var got string
		stubClipboard(t,
			func(string) error { return errors.New("exit status 1") },
			func(s string) error { got = s; return nil },
		)

		require.NoError(t, SystemClipboard{}.WriteText("hello"))
		assert.Equal(t, "hello", got)
	})

	t.Run("both fail", func(t *testing.T) {
		oscErr := errors.New("no tty")
		stubClipboard(t,
			func(string) error { return errors.New("exit status 1") },
			func(string) error { return oscErr },
		)

		err := SystemClipboard{}.WriteText("hello")
		require.Error(t, err)
		assert.ErrorIs(t, err, oscErr)
		assert.Contains(t, err.Error(), "system clipboard failed")
	})
}

func TestWriteOSC52Sequence(t *testing.T) {
	t.Setenv("TMUX", "")
	var buf bytes.Buffer

	require.NoError(t, writeOSC52Sequence(&buf, "hi", "xterm-256color"))

	assert.Contains(t, buf.String(), "\x1b]52;")
}

func TestConfirmers(t *testing.T) {
	assert.True(t, Always(true).Confirm(DeletePrompt))
	assert.False(t, Always(false).Confirm(DeletePrompt))

	var asked string
	c := ConfirmFunc(func(msg string) bool { asked = msg; return true })
	assert.True(t, c.Confirm(DeletePrompt))
	assert.Equal(t, "Delete this note?", asked)
}

func TestUnavailable(t *testing.T) {
	assert.ErrorIs(t, Unavailable{}.Share(ShareData{}), ErrShareUnavailable)
}
