package markdown

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// FrontMatter is the metadata block written at the top of every converted
// document. It carries enough to rebuild a document descriptor on a
// resolve-only rerun without touching the source HTML.
type FrontMatter struct {
	ID      string            `yaml:"id"`
	Title   string            `yaml:"title"`
	Slug    string            `yaml:"slug,omitempty"`
	URL     string            `yaml:"url,omitempty"`
	HTMLIDs map[string]string `yaml:"html_ids,omitempty"`
}

// ParseFrontMatter extracts metadata and Markdown body content from the
// provided source bytes. It returns the structured frontmatter, the Markdown
// body without delimiters, and any error encountered.
func ParseFrontMatter(source []byte) (FrontMatter, []byte, error) {
	var meta FrontMatter

	reader := bytes.NewReader(source)
	body, err := frontmatter.Parse(reader, &meta)
	if err != nil {
		return FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	return meta, body, nil
}

// EncodeDocument renders a complete output document: YAML frontmatter fences
// followed by the Markdown body.
func EncodeDocument(meta FrontMatter, body string) ([]byte, error) {
	encoded, err := yaml.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("encode frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(encoded)
	buf.WriteString("---\n\n")
	buf.WriteString(body)
	if !bytes.HasSuffix(buf.Bytes(), []byte("\n")) {
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}
