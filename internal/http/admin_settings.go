package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	settingscmd "github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/commands/settings"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/settings"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/typography"
)

type typographyResponse struct {
	Page   string            `json:"page,omitempty"`
	Values map[string]string `json:"values"`
	CSS    string            `json:"css"`
}

type settingPayload struct {
	Value string `json:"value"`
}

type settingEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Set   bool   `json:"set"`
}

// handleTypography returns effective typography. Without ?page it reports
// the site-wide values.
func (s *Server) handleTypography(c echo.Context) error {
	slug := c.QueryParam("page")
	values := s.deps.Typography.Resolve(c.Request().Context(), slug)
	return c.JSON(http.StatusOK, typographyResponse{
		Page:   slug,
		Values: values,
		CSS:    typography.CSSVariables(values),
	})
}

// handleSettingList reports every recognised key, set or not.
func (s *Server) handleSettingList(c echo.Context) error {
	ctx := c.Request().Context()
	keys := s.deps.Settings.Registry().Keys()
	out := make([]settingEntry, 0, len(keys))
	for _, key := range keys {
		entry := settingEntry{Key: key}
		record, err := s.deps.Settings.Get(ctx, key)
		switch {
		case err == nil:
			entry.Value = record.Value
			entry.Set = true
		case settings.IsNotFound(err):
		default:
			return err
		}
		out = append(out, entry)
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) handleSettingUpsert(c echo.Context) error {
	key := c.Param("key")
	var payload settingPayload
	if err := bindJSON(c, &payload); err != nil {
		return err
	}
	ctx := c.Request().Context()
	err := s.deps.Commands.UpsertSetting.Execute(ctx, settingscmd.UpsertSettingCommand{
		Key:     key,
		Value:   payload.Value,
		ActorID: actorID(c),
	})
	if err != nil {
		return err
	}
	record, err := s.deps.Settings.Get(ctx, key)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, record)
}

func (s *Server) handleSettingDelete(c echo.Context) error {
	err := s.deps.Commands.DeleteSetting.Execute(c.Request().Context(), settingscmd.DeleteSettingCommand{Key: c.Param("key")})
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// handleUpload stores the multipart "file" field and returns its public URL.
func (s *Server) handleUpload(c echo.Context) error {
	if s.deps.Storage == nil {
		return echo.NewHTTPError(http.StatusNotFound, "uploads are not configured")
	}
	header, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file field is required")
	}
	src, err := header.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	stored, err := s.deps.Storage.Store(c.Request().Context(), header.Filename, header.Header.Get(echo.HeaderContentType), src)
	if err != nil {
		return err
	}
	requestLogger(s.logger, c).Info("http.upload.success", "url", stored.URL, "size", stored.Size, "mime_type", stored.MimeType)
	return c.JSON(http.StatusCreated, stored)
}

// bodyLimit leaves room for multipart framing on top of the file limit.
func bodyLimit(maxFile int64) string {
	return strconv.FormatInt(maxFile+(1<<20), 10)
}
