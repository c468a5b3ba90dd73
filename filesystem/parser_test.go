package filesystem

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ViniZap4/studynotes-server/domain"
)

func TestRenderMarkdown_RoundTrip(t *testing.T) {
	ts := time.Date(2024, time.January, 15, 10, 30, 0, 0, time.UTC)
	note := &domain.Note{
		ID:        "abc",
		Title:     "Introduction to Calculus",
		Content:   "Calculus is the study of change.\n\nSecond paragraph.",
		Subject:   "Mathematics",
		Tags:      []string{"calculus", "derivatives"},
		Author:    domain.Author,
		CreatedAt: ts,
		UpdatedAt: ts.Add(time.Hour),
		Views:     3,
	}

	data, err := RenderMarkdown(note)
	require.NoError(t, err)

	doc := string(data)
	assert.True(t, strings.HasPrefix(doc, "---\n"))
	assert.Contains(t, doc, "title: Introduction to Calculus")
	assert.NotContains(t, doc, "content:")
	assert.True(t, strings.HasSuffix(doc, "Second paragraph.\n"))

	parsed, err := ParseMarkdown(data)
	require.NoError(t, err)
	assert.Equal(t, note.ID, parsed.ID)
	assert.Equal(t, note.Title, parsed.Title)
	assert.Equal(t, note.Content, parsed.Content)
	assert.Equal(t, note.Subject, parsed.Subject)
	assert.Equal(t, note.Tags, parsed.Tags)
	assert.Equal(t, note.Views, parsed.Views)
	assert.True(t, note.CreatedAt.Equal(parsed.CreatedAt))
	assert.True(t, note.UpdatedAt.Equal(parsed.UpdatedAt))

	// rendering must not clear the caller's content
	assert.NotEmpty(t, note.Content)
}

func TestRenderMarkdown_RoundTripWithDashes(t *testing.T) {
	note := &domain.Note{
		ID:      "d1",
		Title:   "Limits --- a primer",
		Content: "Intro.\n\n---\n\nAfter the rule. a---b",
		Subject: "Mathematics",
		Tags:    []string{"limits"},
		Author:  domain.Author,
	}

	data, err := RenderMarkdown(note)
	require.NoError(t, err)

	parsed, err := ParseMarkdown(data)
	require.NoError(t, err)
	assert.Equal(t, "Limits --- a primer", parsed.Title)
	assert.Equal(t, note.Content, parsed.Content)
	assert.Equal(t, "Mathematics", parsed.Subject)
	assert.Equal(t, []string{"limits"}, parsed.Tags)
}

func TestParseMarkdown(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		title   string
		content string
	}{
		{name: "crlf line endings", input: "---\r\ntitle: A\r\n---\r\n\r\nbody\r\n", title: "A", content: "body"},
		{name: "empty frontmatter", input: "---\n---\nbody only", content: "body only"},
		{name: "closing delimiter at end", input: "---\ntitle: A\n---", title: "A"},
		{name: "dashes in body", input: "---\ntitle: A\n---\none\n---\ntwo", title: "A", content: "one\n---\ntwo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := ParseMarkdown([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.title, n.Title)
			assert.Equal(t, tt.content, n.Content)
			assert.Equal(t, []string{}, n.Tags)
		})
	}
}

func TestParseMarkdown_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "no frontmatter", input: "no frontmatter here"},
		{name: "dashes not at start", input: "title: a --- b --- c"},
		{name: "unclosed", input: "---\ntitle: a\nbody"},
		{name: "inline dashes only", input: "---\ntitle: x---y\nbody---z"},
		{name: "bad yaml", input: "---\ntitle: [\n---\nbody"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMarkdown([]byte(tt.input))
			assert.Error(t, err)
		})
	}
}
