package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
)

// FrontMatter is the metadata block of a seed document.
type FrontMatter struct {
	Slug              string            `yaml:"slug"`
	TitleHi           string            `yaml:"title_hi"`
	TitleEn           string            `yaml:"title_en"`
	MetaTitleHi       string            `yaml:"meta_title_hi"`
	MetaTitleEn       string            `yaml:"meta_title_en"`
	MetaDescriptionHi string            `yaml:"meta_description_hi"`
	MetaDescriptionEn string            `yaml:"meta_description_en"`
	Template          string            `yaml:"template"`
	Published         bool              `yaml:"published"`
	Typography        map[string]string `yaml:"typography"`
	BodyEn            string            `yaml:"body_en"`
}

// Document is a parsed seed file. Body is the Hindi markdown body.
type Document struct {
	Path        string
	FrontMatter FrontMatter
	Body        string
}

// ParseDocument splits source into front matter and body.
func ParseDocument(path string, source []byte) (*Document, error) {
	var meta FrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return nil, fmt.Errorf("parse frontmatter %s: %w", path, err)
	}
	meta.Slug = strings.TrimSpace(meta.Slug)
	meta.Template = strings.TrimSpace(meta.Template)
	return &Document{
		Path:        path,
		FrontMatter: meta,
		Body:        strings.TrimSpace(string(body)),
	}, nil
}
