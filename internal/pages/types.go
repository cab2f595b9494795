package pages

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/sections"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/util"
)

// Page is a routable bilingual content page. Sections are loaded separately
// and attached on demand.
type Page struct {
	bun.BaseModel `bun:"table:pages,alias:p"`

	ID                uuid.UUID         `bun:",pk,type:uuid" json:"id"`
	Slug              string            `bun:"slug,notnull,unique" json:"slug"`
	TitleHi           string            `bun:"title_hi,notnull" json:"title_hi"`
	TitleEn           string            `bun:"title_en" json:"title_en"`
	MetaTitleHi       string            `bun:"meta_title_hi" json:"meta_title_hi"`
	MetaTitleEn       string            `bun:"meta_title_en" json:"meta_title_en"`
	MetaDescriptionHi string            `bun:"meta_description_hi" json:"meta_description_hi"`
	MetaDescriptionEn string            `bun:"meta_description_en" json:"meta_description_en"`
	OGImageURL        string            `bun:"og_image_url" json:"og_image_url"`
	Published         bool              `bun:"published,notnull,default:false" json:"published"`
	Typography        map[string]string `bun:"typography,type:jsonb" json:"typography"`
	TemplateID        string            `bun:"template_id" json:"template_id"`
	CreatedBy         uuid.UUID         `bun:"created_by,type:uuid" json:"created_by"`
	UpdatedBy         uuid.UUID         `bun:"updated_by,type:uuid" json:"updated_by"`
	CreatedAt         time.Time         `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt         time.Time         `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`

	Sections []*sections.Section `bun:"-" json:"sections,omitempty"`
}

func clonePage(p *Page) *Page {
	if p == nil {
		return nil
	}
	cloned := *p
	cloned.Typography = util.CloneStringMap(p.Typography)
	if p.Sections != nil {
		cloned.Sections = make([]*sections.Section, len(p.Sections))
		for i, section := range p.Sections {
			cloned.Sections[i] = sections.Clone(section)
		}
	}
	return &cloned
}
