package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	sectionscmd "github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/commands/sections"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/sections"
)

type sectionCreatePayload struct {
	Type    string         `json:"type"`
	Content map[string]any `json:"content"`
	Visible *bool          `json:"visible"`
}

type sectionUpdatePayload struct {
	Content map[string]any `json:"content"`
	Visible *bool          `json:"visible"`
}

type sectionMovePayload struct {
	Direction string `json:"direction"`
}

// sectionListResponse is returned by the operations that may reorder a page.
type sectionListResponse struct {
	PageID   uuid.UUID           `json:"page_id"`
	Sections []*sections.Section `json:"sections"`
}

func (s *Server) handleSectionList(c echo.Context) error {
	pageID, err := pathID(c)
	if err != nil {
		return err
	}
	return s.respondSections(c, http.StatusOK, pageID)
}

func (s *Server) handleSectionCreate(c echo.Context) error {
	pageID, err := pathID(c)
	if err != nil {
		return err
	}
	var payload sectionCreatePayload
	if err := bindJSON(c, &payload); err != nil {
		return err
	}
	ctx := c.Request().Context()
	id := uuid.New()
	err = s.deps.Commands.CreateSection.Execute(ctx, sectionscmd.CreateSectionCommand{
		SectionID:   id,
		PageID:      pageID,
		SectionType: sections.Type(payload.Type),
		Content:     payload.Content,
		Visible:     payload.Visible,
	})
	if err != nil {
		return err
	}
	created, err := s.deps.Sections.Get(ctx, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

func (s *Server) handleSectionUpdate(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var payload sectionUpdatePayload
	if err := bindJSON(c, &payload); err != nil {
		return err
	}
	ctx := c.Request().Context()
	err = s.deps.Commands.UpdateSection.Execute(ctx, sectionscmd.UpdateSectionCommand{
		SectionID: id,
		Content:   payload.Content,
		Visible:   payload.Visible,
	})
	if err != nil {
		return err
	}
	updated, err := s.deps.Sections.Get(ctx, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

func (s *Server) handleSectionDelete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	err = s.deps.Commands.DeleteSection.Execute(c.Request().Context(), sectionscmd.DeleteSectionCommand{SectionID: id})
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// handleSectionMove swaps the section with its neighbour and returns the
// page's sections in their new order. A move past either end succeeds with
// the order unchanged.
func (s *Server) handleSectionMove(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var payload sectionMovePayload
	if err := bindJSON(c, &payload); err != nil {
		return err
	}
	direction, err := sections.ParseDirection(payload.Direction)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	section, err := s.deps.Sections.Get(ctx, id)
	if err != nil {
		return err
	}
	err = s.deps.Commands.MoveSection.Execute(ctx, sectionscmd.MoveSectionCommand{
		SectionID: id,
		Direction: direction,
	})
	if err != nil {
		return err
	}
	return s.respondSections(c, http.StatusOK, section.PageID)
}

func (s *Server) handleSectionRenumber(c echo.Context) error {
	pageID, err := pathID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	if _, err := s.deps.Pages.Get(ctx, pageID); err != nil {
		return err
	}
	err = s.deps.Commands.RenumberSections.Execute(ctx, sectionscmd.RenumberSectionsCommand{PageID: pageID})
	if err != nil {
		return err
	}
	return s.respondSections(c, http.StatusOK, pageID)
}

func (s *Server) respondSections(c echo.Context, status int, pageID uuid.UUID) error {
	ctx := c.Request().Context()
	if _, err := s.deps.Pages.Get(ctx, pageID); err != nil {
		return err
	}
	records, err := s.deps.Sections.ListByPage(ctx, pageID)
	if err != nil {
		return err
	}
	if records == nil {
		records = []*sections.Section{}
	}
	return c.JSON(status, sectionListResponse{PageID: pageID, Sections: records})
}
