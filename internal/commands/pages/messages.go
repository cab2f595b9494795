package pagescmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

const (
	createPageMessageType  = "site.pages.create"
	updatePageMessageType  = "site.pages.update"
	publishPageMessageType = "site.pages.publish"
	deletePageMessageType  = "site.pages.delete"
)

// CreatePageCommand creates a page, instantiating TemplateID when it names a
// known blueprint. PageID is generated by the caller so it can read the page
// back after execution.
type CreatePageCommand struct {
	PageID            uuid.UUID         `json:"page_id"`
	Slug              string            `json:"slug"`
	TitleHi           string            `json:"title_hi"`
	TitleEn           string            `json:"title_en,omitempty"`
	MetaTitleHi       string            `json:"meta_title_hi,omitempty"`
	MetaTitleEn       string            `json:"meta_title_en,omitempty"`
	MetaDescriptionHi string            `json:"meta_description_hi,omitempty"`
	MetaDescriptionEn string            `json:"meta_description_en,omitempty"`
	OGImageURL        string            `json:"og_image_url,omitempty"`
	Published         bool              `json:"published"`
	Typography        map[string]string `json:"typography,omitempty"`
	TemplateID        string            `json:"template_id,omitempty"`
	ActorID           uuid.UUID         `json:"actor_id,omitempty"`
}

// Type implements command.Message.
func (CreatePageCommand) Type() string { return createPageMessageType }

func (m CreatePageCommand) Validate() error {
	errs := validation.Errors{}
	if m.PageID == uuid.Nil {
		errs["page_id"] = validation.NewError("site.pages.create.page_id_required", "page_id is required")
	}
	if strings.TrimSpace(m.Slug) == "" {
		errs["slug"] = validation.NewError("site.pages.create.slug_required", "slug is required")
	}
	if strings.TrimSpace(m.TitleHi) == "" {
		errs["title_hi"] = validation.NewError("site.pages.create.title_hi_required", "title_hi is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdatePageCommand replaces the editable fields of a page. A nil Typography
// keeps the stored overrides.
type UpdatePageCommand struct {
	PageID            uuid.UUID         `json:"page_id"`
	Slug              string            `json:"slug"`
	TitleHi           string            `json:"title_hi"`
	TitleEn           string            `json:"title_en,omitempty"`
	MetaTitleHi       string            `json:"meta_title_hi,omitempty"`
	MetaTitleEn       string            `json:"meta_title_en,omitempty"`
	MetaDescriptionHi string            `json:"meta_description_hi,omitempty"`
	MetaDescriptionEn string            `json:"meta_description_en,omitempty"`
	OGImageURL        string            `json:"og_image_url,omitempty"`
	Typography        map[string]string `json:"typography,omitempty"`
	ActorID           uuid.UUID         `json:"actor_id,omitempty"`
}

// Type implements command.Message.
func (UpdatePageCommand) Type() string { return updatePageMessageType }

func (m UpdatePageCommand) Validate() error {
	errs := validation.Errors{}
	if m.PageID == uuid.Nil {
		errs["page_id"] = validation.NewError("site.pages.update.page_id_required", "page_id is required")
	}
	if strings.TrimSpace(m.Slug) == "" {
		errs["slug"] = validation.NewError("site.pages.update.slug_required", "slug is required")
	}
	if strings.TrimSpace(m.TitleHi) == "" {
		errs["title_hi"] = validation.NewError("site.pages.update.title_hi_required", "title_hi is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// PublishPageCommand toggles public visibility of a page.
type PublishPageCommand struct {
	PageID    uuid.UUID `json:"page_id"`
	Published bool      `json:"published"`
	ActorID   uuid.UUID `json:"actor_id,omitempty"`
}

// Type implements command.Message.
func (PublishPageCommand) Type() string { return publishPageMessageType }

func (m PublishPageCommand) Validate() error {
	if m.PageID == uuid.Nil {
		return validation.Errors{
			"page_id": validation.NewError("site.pages.publish.page_id_required", "page_id is required"),
		}
	}
	return nil
}

// DeletePageCommand removes a page and all of its sections.
type DeletePageCommand struct {
	PageID uuid.UUID `json:"page_id"`
}

// Type implements command.Message.
func (DeletePageCommand) Type() string { return deletePageMessageType }

func (m DeletePageCommand) Validate() error {
	if m.PageID == uuid.Nil {
		return validation.Errors{
			"page_id": validation.NewError("site.pages.delete.page_id_required", "page_id is required"),
		}
	}
	return nil
}
