package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter(t *testing.T) {
	notes := []*Note{
		{ID: "a", Subject: "Physics"},
		{ID: "b", Subject: "Mathematics"},
		{ID: "c", Subject: "Physics"},
		{ID: "d", Subject: "General"},
	}

	ids := func(ns []*Note) []string {
		out := []string{}
		for _, n := range ns {
			out = append(out, n.ID)
		}
		return out
	}

	tests := []struct {
		name    string
		subject string
		want    []string
	}{
		{name: "empty subject is identity", subject: "", want: []string{"a", "b", "c", "d"}},
		{name: "keeps relative order", subject: "Physics", want: []string{"a", "c"}},
		{name: "orphan subject", subject: "General", want: []string{"d"}},
		{name: "no match", subject: "Biology", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(notes, tt.subject)))
		})
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	notes := []*Note{{ID: "a", Subject: "X"}, {ID: "b", Subject: "Y"}}

	Filter(notes, "Y")

	assert.Equal(t, "a", notes[0].ID)
	assert.Len(t, notes, 2)
}
