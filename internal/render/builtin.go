package render

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/i18n"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/markdown"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/sections"
)

var builtinTemplates = template.Must(template.New("sections").Parse(`
{{define "HERO"}}<section class="section section-hero" id="section-{{.ID}}">
<h1 class="hero-title">{{.Title}}</h1>{{if .Subtitle}}
<p class="hero-description">{{.Subtitle}}</p>{{end}}{{if .ImageURL}}
<img class="hero-image" src="{{.ImageURL}}" alt="{{.Title}}">{{end}}{{if and .CTAURL .CTALabel}}
<a class="hero-cta" href="{{.CTAURL}}">{{.CTALabel}}</a>{{end}}
</section>{{end}}
{{define "RICHTEXT"}}<section class="section section-richtext" id="section-{{.ID}}">
{{.Body}}
</section>{{end}}
{{define "BIOGRAPHY"}}<section class="section section-biography" id="section-{{.ID}}">{{if .PhotoURL}}
<img class="bio-photo" src="{{.PhotoURL}}" alt="{{.Name}}">{{end}}
<h2 class="bio-name">{{.Name}}</h2>{{if .Role}}
<p class="bio-role">{{.Role}}</p>{{end}}
{{.Bio}}
</section>{{end}}
{{define "STATS"}}<section class="section section-stats" id="section-{{.ID}}">
<dl class="stats">{{range .Items}}
<div class="stat"><dt>{{.Label}}</dt><dd>{{.Value}}</dd></div>{{end}}
</dl>
</section>{{end}}
{{define "VIDEOS"}}<section class="section section-videos" id="section-{{.ID}}">
<ul class="videos">{{range .Items}}
<li><a href="{{.URL}}" rel="noopener" target="_blank">{{.Title}}</a></li>{{end}}
</ul>
</section>{{end}}
`))

type heroView struct {
	ID       string
	Title    string
	Subtitle string
	ImageURL string
	CTALabel string
	CTAURL   string
}

type richTextView struct {
	ID   string
	Body template.HTML
}

type biographyView struct {
	ID       string
	Name     string
	Role     string
	Bio      template.HTML
	PhotoURL string
}

type labelValue struct {
	Label string
	Value string
}

type statsView struct {
	ID    string
	Items []labelValue
}

type videoView struct {
	Title string
	URL   string
}

type videosView struct {
	ID    string
	Items []videoView
}

// NewDefaultRegistry returns a registry with a renderer for every section
// type. Markdown bodies go through md.
func NewDefaultRegistry(md *markdown.Renderer) (*Registry, error) {
	if md == nil {
		md = markdown.NewRenderer(markdown.Options{})
	}
	b := builtins{md: md}
	registry := NewRegistry()
	for t, fn := range map[sections.Type]Renderer{
		sections.TypeHero:      b.hero,
		sections.TypeRichText:  b.richText,
		sections.TypeBiography: b.biography,
		sections.TypeStats:     b.stats,
		sections.TypeVideos:    b.videos,
	} {
		if err := registry.Register(t, fn); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

type builtins struct {
	md *markdown.Renderer
}

func (b builtins) hero(_ context.Context, section *sections.Section, locale string) (template.HTML, error) {
	content, err := decode[sections.HeroContent](section)
	if err != nil {
		return "", err
	}
	return execute(string(sections.TypeHero), heroView{
		ID:       section.ID.String(),
		Title:    i18n.Pick(content.TitleHi, content.TitleEn, locale),
		Subtitle: i18n.Pick(content.SubtitleHi, content.SubtitleEn, locale),
		ImageURL: content.ImageURL,
		CTALabel: i18n.Pick(content.CTALabelHi, content.CTALabelEn, locale),
		CTAURL:   content.CTAURL,
	})
}

func (b builtins) richText(_ context.Context, section *sections.Section, locale string) (template.HTML, error) {
	content, err := decode[sections.RichTextContent](section)
	if err != nil {
		return "", err
	}
	body, err := b.markdown(i18n.Pick(content.BodyHi, content.BodyEn, locale))
	if err != nil {
		return "", err
	}
	return execute(string(sections.TypeRichText), richTextView{ID: section.ID.String(), Body: body})
}

func (b builtins) biography(_ context.Context, section *sections.Section, locale string) (template.HTML, error) {
	content, err := decode[sections.BiographyContent](section)
	if err != nil {
		return "", err
	}
	bio, err := b.markdown(i18n.Pick(content.BioHi, content.BioEn, locale))
	if err != nil {
		return "", err
	}
	return execute(string(sections.TypeBiography), biographyView{
		ID:       section.ID.String(),
		Name:     i18n.Pick(content.NameHi, content.NameEn, locale),
		Role:     i18n.Pick(content.RoleHi, content.RoleEn, locale),
		Bio:      bio,
		PhotoURL: content.PhotoURL,
	})
}

func (b builtins) stats(_ context.Context, section *sections.Section, locale string) (template.HTML, error) {
	content, err := decode[sections.StatsContent](section)
	if err != nil {
		return "", err
	}
	view := statsView{ID: section.ID.String(), Items: make([]labelValue, 0, len(content.Items))}
	for _, item := range content.Items {
		view.Items = append(view.Items, labelValue{
			Label: i18n.Pick(item.LabelHi, item.LabelEn, locale),
			Value: item.Value,
		})
	}
	return execute(string(sections.TypeStats), view)
}

func (b builtins) videos(_ context.Context, section *sections.Section, locale string) (template.HTML, error) {
	content, err := decode[sections.VideosContent](section)
	if err != nil {
		return "", err
	}
	view := videosView{ID: section.ID.String(), Items: make([]videoView, 0, len(content.Items))}
	for _, item := range content.Items {
		view.Items = append(view.Items, videoView{
			Title: i18n.Pick(item.TitleHi, item.TitleEn, locale),
			URL:   item.URL,
		})
	}
	return execute(string(sections.TypeVideos), view)
}

func (b builtins) markdown(source string) (template.HTML, error) {
	if source == "" {
		return "", nil
	}
	out, err := b.md.Render([]byte(source))
	if err != nil {
		return "", err
	}
	// Output is sanitised by the markdown renderer.
	return template.HTML(out), nil
}

func decode[T sections.Content](section *sections.Section) (T, error) {
	var zero T
	content, err := section.Decode()
	if err != nil {
		return zero, err
	}
	typed, ok := content.(T)
	if !ok {
		return zero, fmt.Errorf("render: %s content has unexpected shape %T", section.Type, content)
	}
	return typed, nil
}

func execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := builtinTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}
