package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	pagescmd "github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/commands/pages"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/pages"
)

type pageCreatePayload struct {
	Slug              string            `json:"slug"`
	TitleHi           string            `json:"title_hi"`
	TitleEn           string            `json:"title_en"`
	MetaTitleHi       string            `json:"meta_title_hi"`
	MetaTitleEn       string            `json:"meta_title_en"`
	MetaDescriptionHi string            `json:"meta_description_hi"`
	MetaDescriptionEn string            `json:"meta_description_en"`
	OGImageURL        string            `json:"og_image_url"`
	Published         bool              `json:"published"`
	Typography        map[string]string `json:"typography"`
	TemplateID        string            `json:"template_id"`
}

// pageUpdatePayload is a partial update: nil fields keep their stored value.
type pageUpdatePayload struct {
	Slug              *string           `json:"slug"`
	TitleHi           *string           `json:"title_hi"`
	TitleEn           *string           `json:"title_en"`
	MetaTitleHi       *string           `json:"meta_title_hi"`
	MetaTitleEn       *string           `json:"meta_title_en"`
	MetaDescriptionHi *string           `json:"meta_description_hi"`
	MetaDescriptionEn *string           `json:"meta_description_en"`
	OGImageURL        *string           `json:"og_image_url"`
	Typography        map[string]string `json:"typography"`
	Published         *bool             `json:"published"`
}

func (p pageUpdatePayload) editsFields() bool {
	return p.Slug != nil || p.TitleHi != nil || p.TitleEn != nil ||
		p.MetaTitleHi != nil || p.MetaTitleEn != nil ||
		p.MetaDescriptionHi != nil || p.MetaDescriptionEn != nil ||
		p.OGImageURL != nil || p.Typography != nil
}

func (s *Server) handleTemplateList(c echo.Context) error {
	return c.JSON(http.StatusOK, s.deps.Catalog.List())
}

func (s *Server) handlePageList(c echo.Context) error {
	list, err := s.deps.Pages.List(c.Request().Context())
	if err != nil {
		return err
	}
	if list == nil {
		list = []*pages.Page{}
	}
	return c.JSON(http.StatusOK, list)
}

func (s *Server) handlePageGet(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	page, err := s.loadPage(c, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

func (s *Server) handlePageCreate(c echo.Context) error {
	var payload pageCreatePayload
	if err := bindJSON(c, &payload); err != nil {
		return err
	}
	ctx := c.Request().Context()
	id := uuid.New()
	err := s.deps.Commands.CreatePage.Execute(ctx, pagescmd.CreatePageCommand{
		PageID:            id,
		Slug:              payload.Slug,
		TitleHi:           payload.TitleHi,
		TitleEn:           payload.TitleEn,
		MetaTitleHi:       payload.MetaTitleHi,
		MetaTitleEn:       payload.MetaTitleEn,
		MetaDescriptionHi: payload.MetaDescriptionHi,
		MetaDescriptionEn: payload.MetaDescriptionEn,
		OGImageURL:        payload.OGImageURL,
		Published:         payload.Published,
		Typography:        payload.Typography,
		TemplateID:        payload.TemplateID,
		ActorID:           actorID(c),
	})
	if err != nil {
		return err
	}
	page, err := s.loadPage(c, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, page)
}

func (s *Server) handlePageUpdate(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var payload pageUpdatePayload
	if err := bindJSON(c, &payload); err != nil {
		return err
	}
	ctx := c.Request().Context()
	existing, err := s.deps.Pages.Get(ctx, id)
	if err != nil {
		return err
	}

	actor := actorID(c)
	if payload.editsFields() {
		cmd := pagescmd.UpdatePageCommand{
			PageID:            id,
			Slug:              valueOr(payload.Slug, existing.Slug),
			TitleHi:           valueOr(payload.TitleHi, existing.TitleHi),
			TitleEn:           valueOr(payload.TitleEn, existing.TitleEn),
			MetaTitleHi:       valueOr(payload.MetaTitleHi, existing.MetaTitleHi),
			MetaTitleEn:       valueOr(payload.MetaTitleEn, existing.MetaTitleEn),
			MetaDescriptionHi: valueOr(payload.MetaDescriptionHi, existing.MetaDescriptionHi),
			MetaDescriptionEn: valueOr(payload.MetaDescriptionEn, existing.MetaDescriptionEn),
			OGImageURL:        valueOr(payload.OGImageURL, existing.OGImageURL),
			Typography:        payload.Typography,
			ActorID:           actor,
		}
		if err := s.deps.Commands.UpdatePage.Execute(ctx, cmd); err != nil {
			return err
		}
	}
	if payload.Published != nil && *payload.Published != existing.Published {
		err := s.deps.Commands.PublishPage.Execute(ctx, pagescmd.PublishPageCommand{
			PageID:    id,
			Published: *payload.Published,
			ActorID:   actor,
		})
		if err != nil {
			return err
		}
	}

	page, err := s.loadPage(c, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

func (s *Server) handlePageDelete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := s.deps.Commands.DeletePage.Execute(c.Request().Context(), pagescmd.DeletePageCommand{PageID: id}); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// handlePagePreview renders a page whether or not it is published.
func (s *Server) handlePagePreview(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	page, err := s.deps.Pages.Get(ctx, id)
	if err != nil {
		return err
	}
	rendered, err := s.deps.Composer.Preview(ctx, page.Slug, c.QueryParam(langParam))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rendered)
}

// loadPage reads a page with all of its sections, hidden ones included.
func (s *Server) loadPage(c echo.Context, id uuid.UUID) (*pages.Page, error) {
	ctx := c.Request().Context()
	page, err := s.deps.Pages.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	records, err := s.deps.Sections.ListByPage(ctx, id)
	if err != nil {
		return nil, err
	}
	page.Sections = records
	return page, nil
}

func valueOr[T any](value *T, fallback T) T {
	if value == nil {
		return fallback
	}
	return *value
}
