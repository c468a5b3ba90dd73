// server/domain/note.go
package domain

import (
	"strings"
	"time"
)

const (
	// DefaultSubject is stored when a draft leaves the subject empty.
	DefaultSubject = "General"
	// Author is attached to every note; there is no per-user identity.
	Author = "Study Admin"
	// ShareExcerptLength bounds the text handed to the share target.
	ShareExcerptLength = 100
)

type Note struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Content   string    `json:"content" yaml:"content,omitempty"`
	Subject   string    `json:"subject" yaml:"subject"`
	Tags      []string  `json:"tags" yaml:"tags"`
	Author    string    `json:"author" yaml:"author"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
	Views     int       `json:"views" yaml:"views"`
}

// Clone returns a deep copy so callers never alias a stored note.
func (n *Note) Clone() *Note {
	if n == nil {
		return nil
	}
	c := *n
	c.Tags = append([]string{}, n.Tags...)
	return &c
}

type Subject struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Draft is the transient form state used for both create and edit.
// Tags holds the raw comma-separated input.
type Draft struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
	Subject string `json:"subject"`
	Tags    string `json:"tags"`
}

// Normalized trims title and content the way a submission sees them.
func (d Draft) Normalized() Draft {
	d.Title = strings.TrimSpace(d.Title)
	d.Content = strings.TrimSpace(d.Content)
	return d
}

// DraftFrom prefills a draft from an existing note.
func DraftFrom(n *Note) Draft {
	return Draft{
		Title:   n.Title,
		Content: n.Content,
		Subject: n.Subject,
		Tags:    JoinTags(n.Tags),
	}
}

// ParseTags splits a comma-separated list, trimming entries and dropping
// empty ones. Order and duplicates are kept.
func ParseTags(raw string) []string {
	tags := []string{}
	for _, part := range strings.Split(raw, ",") {
		tag := strings.TrimSpace(part)
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}

func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// Truncate cuts text to maxLength runes and appends an ellipsis when it
// was longer.
func Truncate(text string, maxLength int) string {
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	return string(runes[:maxLength]) + "..."
}

// FormatDate renders the short display date, e.g. "Jan 15, 2024".
func FormatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}
