package http

import (
	"bytes"
	"html/template"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/composer"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/i18n"
)

const (
	langParam     = composer.LocaleQueryParam
	langCookie    = "lang"
	langCookieTTL = 365 * 24 * time.Hour
)

func (s *Server) handleHome(c echo.Context) error {
	return s.renderPublic(c, composer.HomeSlug)
}

func (s *Server) handlePage(c echo.Context) error {
	slug, err := url.PathUnescape(c.Param("slug"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed slug")
	}
	return s.renderPublic(c, slug)
}

func (s *Server) renderPublic(c echo.Context, slug string) error {
	ctx := i18n.WithLocale(c.Request().Context(), s.resolveLocale(c))
	c.SetRequest(c.Request().WithContext(ctx))
	page, err := s.deps.Composer.RenderPage(ctx, slug, "")
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := pageLayout.Execute(&buf, layoutView{Page: page, Locales: s.config.Locales.Locales}); err != nil {
		return err
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

// resolveLocale picks ?lang when supported and remembers it in a cookie,
// then falls back to the cookie and finally the default locale.
func (s *Server) resolveLocale(c echo.Context) string {
	cfg := s.config.Locales
	if requested := i18n.Normalize(c.QueryParam(langParam)); cfg.Supports(requested) {
		c.SetCookie(&http.Cookie{
			Name:     langCookie,
			Value:    requested,
			Path:     "/",
			MaxAge:   int(langCookieTTL.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			Secure:   s.config.CookieSecure,
		})
		return requested
	}
	if cookie, err := c.Cookie(langCookie); err == nil {
		if stored := i18n.Normalize(cookie.Value); cfg.Supports(stored) {
			return stored
		}
	}
	return cfg.Default()
}

func (s *Server) renderStatus(c echo.Context, status int) error {
	var buf bytes.Buffer
	if err := statusLayout.Execute(&buf, statusView{Code: status, Text: http.StatusText(status)}); err != nil {
		return c.String(status, http.StatusText(status))
	}
	return c.HTMLBlob(status, buf.Bytes())
}

type layoutView struct {
	Page    *composer.RenderedPage
	Locales []string
}

type statusView struct {
	Code int
	Text string
}

var pageLayout = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="{{.Page.Locale}}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Page.MetaTitle}}</title>
{{- with .Page.MetaDescription}}
<meta name="description" content="{{.}}">
{{- end}}
<meta property="og:title" content="{{.Page.MetaTitle}}">
{{- with .Page.OGImageURL}}
<meta property="og:image" content="{{.}}">
{{- end}}
{{- with .Page.CanonicalURL}}
<link rel="canonical" href="{{.}}">
{{- end}}
{{- range $locale, $url := .Page.Alternates}}
<link rel="alternate" hreflang="{{$locale}}" href="{{$url}}">
{{- end}}
<style>:root { {{.Page.CSSVariables}} }</style>
</head>
<body>
<main data-page="{{.Page.Slug}}">
{{- range .Page.Sections}}
{{.HTML}}
{{- end}}
</main>
</body>
</html>
`))

var statusLayout = template.Must(template.New("status").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Code}} {{.Text}}</title></head>
<body><h1>{{.Code}}</h1><p>{{.Text}}</p></body>
</html>
`))
