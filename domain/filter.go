// server/domain/filter.go
package domain

// Filter projects the collection onto one subject. An empty subject
// selects everything. The result keeps collection order and is never
// cached by callers.
func Filter(notes []*Note, subject string) []*Note {
	if subject == "" {
		return notes
	}
	filtered := make([]*Note, 0, len(notes))
	for _, n := range notes {
		if n.Subject == subject {
			filtered = append(filtered, n)
		}
	}
	return filtered
}
