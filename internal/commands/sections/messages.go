package sectionscmd

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/sections"
)

const (
	createSectionMessageType   = "site.sections.create"
	updateSectionMessageType   = "site.sections.update"
	deleteSectionMessageType   = "site.sections.delete"
	moveSectionMessageType     = "site.sections.move"
	renumberSectionMessageType = "site.sections.renumber"
)

// CreateSectionCommand appends a section to a page. SectionID is generated
// by the caller.
type CreateSectionCommand struct {
	SectionID   uuid.UUID      `json:"section_id"`
	PageID      uuid.UUID      `json:"page_id"`
	SectionType sections.Type  `json:"type"`
	Content     map[string]any `json:"content,omitempty"`
	Visible     *bool          `json:"visible,omitempty"`
}

// Type implements command.Message.
func (CreateSectionCommand) Type() string { return createSectionMessageType }

func (m CreateSectionCommand) Validate() error {
	errs := validation.Errors{}
	if m.SectionID == uuid.Nil {
		errs["section_id"] = validation.NewError("site.sections.create.section_id_required", "section_id is required")
	}
	if m.PageID == uuid.Nil {
		errs["page_id"] = validation.NewError("site.sections.create.page_id_required", "page_id is required")
	}
	if !m.SectionType.Valid() {
		errs["type"] = validation.NewError("site.sections.create.type_invalid", "type is not a recognised section type")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateSectionCommand struct {
	SectionID uuid.UUID      `json:"section_id"`
	Content   map[string]any `json:"content,omitempty"`
	Visible   *bool          `json:"visible,omitempty"`
}

// Type implements command.Message.
func (UpdateSectionCommand) Type() string { return updateSectionMessageType }

func (m UpdateSectionCommand) Validate() error {
	errs := validation.Errors{}
	if m.SectionID == uuid.Nil {
		errs["section_id"] = validation.NewError("site.sections.update.section_id_required", "section_id is required")
	}
	if m.Content == nil && m.Visible == nil {
		errs["content"] = validation.NewError("site.sections.update.empty", "content or visible must be provided")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DeleteSectionCommand struct {
	SectionID uuid.UUID `json:"section_id"`
}

// Type implements command.Message.
func (DeleteSectionCommand) Type() string { return deleteSectionMessageType }

func (m DeleteSectionCommand) Validate() error {
	if m.SectionID == uuid.Nil {
		return validation.Errors{
			"section_id": validation.NewError("site.sections.delete.section_id_required", "section_id is required"),
		}
	}
	return nil
}

// MoveSectionCommand swaps a section with its neighbour in Direction.
type MoveSectionCommand struct {
	SectionID uuid.UUID          `json:"section_id"`
	Direction sections.Direction `json:"direction"`
}

// Type implements command.Message.
func (MoveSectionCommand) Type() string { return moveSectionMessageType }

func (m MoveSectionCommand) Validate() error {
	errs := validation.Errors{}
	if m.SectionID == uuid.Nil {
		errs["section_id"] = validation.NewError("site.sections.move.section_id_required", "section_id is required")
	}
	if m.Direction != sections.DirectionUp && m.Direction != sections.DirectionDown {
		errs["direction"] = validation.NewError("site.sections.move.direction_invalid", "direction must be UP or DOWN")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RenumberSectionsCommand rewrites the orders of a page's sections to 0..N-1.
type RenumberSectionsCommand struct {
	PageID uuid.UUID `json:"page_id"`
}

// Type implements command.Message.
func (RenumberSectionsCommand) Type() string { return renumberSectionMessageType }

func (m RenumberSectionsCommand) Validate() error {
	if m.PageID == uuid.Nil {
		return validation.Errors{
			"page_id": validation.NewError("site.sections.renumber.page_id_required", "page_id is required"),
		}
	}
	return nil
}
