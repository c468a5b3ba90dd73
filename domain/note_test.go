package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseTags(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "drops empty and whitespace-only segments",
			raw:  "calculus, , derivatives,  integrals ",
			want: []string{"calculus", "derivatives", "integrals"},
		},
		{
			name: "empty input yields empty list",
			raw:  "",
			want: []string{},
		},
		{
			name: "keeps duplicates in order",
			raw:  "b,a,b",
			want: []string{"b", "a", "b"},
		},
		{
			name: "only separators",
			raw:  " , ,, ",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTags(tt.raw))
		})
	}
}

func TestDraftFrom(t *testing.T) {
	n := &Note{Title: "T", Content: "C", Subject: "Physics", Tags: []string{"a", "b"}}

	d := DraftFrom(n)

	assert.Equal(t, Draft{Title: "T", Content: "C", Subject: "Physics", Tags: "a, b"}, d)
	assert.Equal(t, n.Tags, ParseTags(d.Tags))
}

func TestDraftNormalized(t *testing.T) {
	d := Draft{Title: "  t ", Content: "\n c\t", Subject: " s ", Tags: " x "}.Normalized()

	assert.Equal(t, "t", d.Title)
	assert.Equal(t, "c", d.Content)
	assert.Equal(t, " s ", d.Subject)
	assert.Equal(t, " x ", d.Tags)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "exactly10!", Truncate("exactly10!", 10))
	assert.Equal(t, "abc...", Truncate("abcdef", 3))
	assert.Equal(t, "héé...", Truncate("hééllo", 3))
}

func TestFormatDate(t *testing.T) {
	ts := time.Date(2024, time.January, 15, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "Jan 15, 2024", FormatDate(ts))
}

func TestCloneDoesNotAlias(t *testing.T) {
	n := &Note{ID: "1", Tags: []string{"a"}}

	c := n.Clone()
	c.Tags[0] = "changed"
	c.Views = 9

	assert.Equal(t, "a", n.Tags[0])
	assert.Zero(t, n.Views)
	assert.Nil(t, (*Note)(nil).Clone())
}
