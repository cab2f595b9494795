package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/auth"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/faults"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/logging"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/validation"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/pkg/interfaces"
)

var errInvalidID = errors.New("http: invalid id")

type errorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message,omitempty"`
	Fields  map[string]string            `json:"fields,omitempty"`
	Issues  []validation.ValidationIssue `json:"issues,omitempty"`
}

// mapError classifies err and builds the JSON body for it. Store failures
// carry no detail.
func mapError(err error) (int, errorResponse) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{
			Error:   strings.ToLower(strings.ReplaceAll(http.StatusText(he.Code), " ", "_")),
			Message: httpErrorMessage(he),
		}
	}
	if errors.Is(err, errInvalidID) {
		return http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"}
	}

	kind := faults.Classify(err)
	resp := errorResponse{Error: string(kind)}
	switch kind {
	case faults.KindStoreFailure:
		resp.Message = "internal error"
	case faults.KindValidationFailure:
		resp.Message = err.Error()
		resp.Fields = faults.Fields(err)
		resp.Issues = validation.Issues(err)
	default:
		resp.Message = err.Error()
	}
	return faults.Status(kind), resp
}

func httpErrorMessage(he *echo.HTTPError) string {
	if msg, ok := he.Message.(string); ok {
		return msg
	}
	return http.StatusText(he.Code)
}

func parseUUID(value string) (uuid.UUID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return uuid.Nil, errInvalidID
	}
	parsed, err := uuid.Parse(trimmed)
	if err != nil {
		return uuid.Nil, errInvalidID
	}
	return parsed, nil
}

func pathID(c echo.Context) (uuid.UUID, error) {
	return parseUUID(c.Param("id"))
}

// bindJSON decodes the request body into target. An empty body is accepted.
func bindJSON(c echo.Context, target any) error {
	if c.Request().ContentLength == 0 {
		return nil
	}
	if err := c.Bind(target); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	return nil
}

func actorID(c echo.Context) uuid.UUID {
	session, ok := auth.ContextAuth{}.CurrentSession(c.Request().Context())
	if !ok {
		return uuid.Nil
	}
	return session.UserID
}

func requestLogger(base interfaces.Logger, c echo.Context) interfaces.Logger {
	req := c.Request()
	fields := map[string]any{
		"method": req.Method,
		"path":   c.Path(),
	}
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		fields["request_id"] = id
	}
	if traceID := traceIDFromContext(req.Context()); traceID != "" {
		fields["trace_id"] = traceID
	}
	return logging.WithFields(base, fields)
}
