package composer

import (
	"fmt"
	"strings"

	urlkit "github.com/goliatone/go-urlkit"
)

const (
	routeGroup = "site"
	routePage  = "page"
	routeHome  = "home"
	// HomeSlug is the page served at the site root.
	HomeSlug = "home"
	// LocaleQueryParam selects the locale on public URLs.
	LocaleQueryParam = "lang"
)

// PageURLs builds public page URLs through a go-urlkit route manager.
type PageURLs struct {
	manager       *urlkit.RouteManager
	defaultLocale string
}

// NewPageURLs registers the public routes under baseURL. The default locale
// is served without a lang query parameter.
func NewPageURLs(baseURL, defaultLocale string) *PageURLs {
	manager := urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    routeGroup,
				BaseURL: strings.TrimRight(baseURL, "/"),
				Paths: map[string]string{
					routeHome: "/",
					routePage: "/:slug",
				},
			},
		},
	})
	return &PageURLs{manager: manager, defaultLocale: defaultLocale}
}

// PageURL returns the public URL of slug in locale.
func (u *PageURLs) PageURL(slug, locale string) (string, error) {
	if u == nil || u.manager == nil {
		return "", nil
	}
	group, err := u.group()
	if err != nil {
		return "", err
	}

	route := routePage
	if slug == HomeSlug {
		route = routeHome
	}
	builder, err := safeBuilder(group, route)
	if err != nil {
		return "", err
	}
	if route == routePage {
		builder.WithParam("slug", slug)
	}
	if locale != "" && locale != u.defaultLocale {
		builder.WithQuery(LocaleQueryParam, locale)
	}
	return builder.Build()
}

// Alternates returns the URL of slug for every locale.
func (u *PageURLs) Alternates(slug string, locales []string) (map[string]string, error) {
	out := make(map[string]string, len(locales))
	for _, locale := range locales {
		url, err := u.PageURL(slug, locale)
		if err != nil {
			return nil, err
		}
		out[locale] = url
	}
	return out, nil
}

func (u *PageURLs) group() (group *urlkit.Group, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("composer: route group %q not found", routeGroup)
		}
	}()
	group = u.manager.Group(routeGroup)
	return group, err
}

func safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("composer: urlkit builder panic: %v", rec)
		}
	}()
	builder = group.Builder(route)
	return builder, err
}
