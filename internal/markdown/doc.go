// Package markdown renders sanitised HTML from markdown section bodies and
// loads markdown seed documents with YAML front matter.
package markdown
