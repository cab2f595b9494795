// Package http serves the site over echo.
//
// Public routes render published pages:
//   - GET /           the home page
//   - GET /:slug      any other page (?lang=hi|en, remembered in the lang cookie)
//
// Admin routes use a cookie session created by POST /admin/login and mount
// the JSON API under /admin/api:
//   - Templates: /templates
//   - Pages: /pages, /pages/:id, /pages/:id/preview
//   - Sections: /pages/:id/sections, /pages/:id/sections/renumber,
//     /sections/:id, /sections/:id/move
//   - Typography and settings: /typography, /settings/:key
//   - Uploads: /uploads
//
// Mutations run through the admin command handlers so the session and role
// checks are applied in one place.
package http
