// server/filesystem/parser.go
package filesystem

import (
	"bytes"
	"fmt"

	"github.com/ViniZap4/studynotes-server/domain"
	"gopkg.in/yaml.v3"
)

// RenderMarkdown writes a note as a markdown document with YAML
// frontmatter. The body is the note content.
func RenderMarkdown(note *domain.Note) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("---\n")

	meta := note.Clone()
	meta.Content = ""

	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(meta); err != nil {
		return nil, fmt.Errorf("failed to encode frontmatter: %w", err)
	}
	encoder.Close()

	buf.WriteString("---\n\n")
	buf.WriteString(note.Content)
	buf.WriteString("\n")

	return buf.Bytes(), nil
}

var (
	fence      = []byte("---\n")
	closeFence = []byte("\n---\n")
)

// ParseMarkdown is the inverse of RenderMarkdown. The document must open
// with a "---" line; the frontmatter ends at the first line that is exactly
// "---". Delimiters inside a title or the body are left alone.
func ParseMarkdown(data []byte) (*domain.Note, error) {
	meta, body, err := splitFrontmatter(data)
	if err != nil {
		return nil, err
	}

	note := &domain.Note{}
	if err := yaml.Unmarshal(meta, note); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
	}
	if note.Tags == nil {
		note.Tags = []string{}
	}

	note.Content = string(bytes.TrimSpace(body))

	return note, nil
}

func splitFrontmatter(data []byte) (meta, body []byte, err error) {
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))

	rest, ok := bytes.CutPrefix(data, fence)
	if !ok {
		return nil, nil, fmt.Errorf("invalid frontmatter format: missing opening delimiter")
	}
	if after, ok := bytes.CutPrefix(rest, fence); ok {
		return nil, after, nil
	}
	if meta, body, ok = bytes.Cut(rest, closeFence); ok {
		return meta, body, nil
	}
	if meta, ok = bytes.CutSuffix(rest, closeFence[:len(closeFence)-1]); ok {
		return meta, nil, nil
	}
	return nil, nil, fmt.Errorf("invalid frontmatter format: missing closing delimiter")
}
