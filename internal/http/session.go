package http

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/auth"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/pkg/interfaces"
)

const (
	sessionUserKey = "user_id"
	sessionRoleKey = "role"
)

func (s *Server) sessionMiddleware() echo.MiddlewareFunc {
	store := sessions.NewCookieStore([]byte(s.config.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		MaxAge:   int(s.config.SessionMaxAge.Seconds()),
		SameSite: http.SameSiteLaxMode,
		Secure:   s.config.CookieSecure,
	}
	return session.Middleware(store)
}

// loadSession copies a valid cookie session onto the request context so the
// command handlers can read it through auth.ContextAuth.
func (s *Server) loadSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !strings.HasPrefix(c.Request().URL.Path, "/admin") {
			return next(c)
		}
		if current, ok := s.readSession(c); ok {
			ctx := auth.WithSession(c.Request().Context(), current)
			c.SetRequest(c.Request().WithContext(ctx))
		}
		return next(c)
	}
}

func (s *Server) requireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, err := auth.Require(c.Request().Context(), auth.ContextAuth{}); err != nil {
			return err
		}
		return next(c)
	}
}

func (s *Server) readSession(c echo.Context) (interfaces.Session, bool) {
	sess, err := session.Get(s.config.SessionName, c)
	if err != nil {
		return interfaces.Session{}, false
	}
	rawID, _ := sess.Values[sessionUserKey].(string)
	rawRole, _ := sess.Values[sessionRoleKey].(string)
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return interfaces.Session{}, false
	}
	role := interfaces.Role(rawRole)
	if !auth.ValidRole(role) {
		return interfaces.Session{}, false
	}
	return interfaces.Session{UserID: userID, Role: role}, true
}

func (s *Server) writeSession(c echo.Context, current interfaces.Session) error {
	// A stale cookie yields a fresh session together with a decode error.
	sess, err := session.Get(s.config.SessionName, c)
	if sess == nil {
		return err
	}
	sess.Values[sessionUserKey] = current.UserID.String()
	sess.Values[sessionRoleKey] = string(current.Role)
	return sess.Save(c.Request(), c.Response())
}

func (s *Server) clearSession(c echo.Context) error {
	sess, err := session.Get(s.config.SessionName, c)
	if sess == nil {
		return err
	}
	sess.Values = map[any]any{}
	sess.Options.MaxAge = -1
	return sess.Save(c.Request(), c.Response())
}

type loginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type loginResponse struct {
	UserID uuid.UUID       `json:"user_id"`
	Role   interfaces.Role `json:"role"`
}

func (s *Server) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	current, err := s.deps.Authenticator.Authenticate(req.Email, req.Password)
	if err != nil {
		requestLogger(s.logger, c).Warn("http.login.rejected", "error", err)
		return err
	}
	if err := s.writeSession(c, current); err != nil {
		return err
	}
	requestLogger(s.logger, c).Info("http.login.success", "user_id", current.UserID, "role", current.Role)
	return c.JSON(http.StatusOK, loginResponse{UserID: current.UserID, Role: current.Role})
}

func (s *Server) handleLogout(c echo.Context) error {
	if err := s.clearSession(c); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
