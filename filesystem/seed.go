// server/filesystem/seed.go
package filesystem

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/ViniZap4/studynotes-server/domain"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeed []byte

// Seed is the initial state of a store: the subject catalog and the
// sample notes, newest first.
type Seed struct {
	Subjects []domain.Subject `yaml:"subjects"`
	Notes    []*domain.Note   `yaml:"notes"`
}

// DefaultSeed parses the seed compiled into the binary.
func DefaultSeed() (*Seed, error) {
	return ParseSeed(defaultSeed)
}

// LoadSeed reads a seed document from path. An empty path yields the
// built-in seed.
func LoadSeed(path string) (*Seed, error) {
	if path == "" {
		return DefaultSeed()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	seed, err := ParseSeed(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return seed, nil
}

func ParseSeed(data []byte) (*Seed, error) {
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed: %w", err)
	}
	if err := seed.validate(); err != nil {
		return nil, err
	}
	for _, n := range seed.Notes {
		if n.Subject == "" {
			n.Subject = domain.DefaultSubject
		}
		if n.Author == "" {
			n.Author = domain.Author
		}
		if n.Tags == nil {
			n.Tags = []string{}
		}
		if n.UpdatedAt.IsZero() {
			n.UpdatedAt = n.CreatedAt
		}
	}
	return &seed, nil
}

func (s *Seed) validate() error {
	ids := make(map[string]bool)
	names := make(map[string]bool)
	for _, sub := range s.Subjects {
		if sub.ID == "" || sub.Name == "" {
			return fmt.Errorf("subject needs both id and name: %+v", sub)
		}
		if ids[sub.ID] {
			return fmt.Errorf("duplicate subject id: %s", sub.ID)
		}
		if names[sub.Name] {
			return fmt.Errorf("duplicate subject name: %s", sub.Name)
		}
		ids[sub.ID] = true
		names[sub.Name] = true
	}

	noteIDs := make(map[string]bool)
	for _, n := range s.Notes {
		if n == nil || n.ID == "" {
			return fmt.Errorf("note without id in seed")
		}
		if noteIDs[n.ID] {
			return fmt.Errorf("duplicate note id: %s", n.ID)
		}
		if n.Views < 0 {
			return fmt.Errorf("note %s has negative views", n.ID)
		}
		noteIDs[n.ID] = true
	}
	return nil
}
