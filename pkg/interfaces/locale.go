package interfaces

import "context"

// LocaleProvider supplies the active locale code ("hi" or "en") for a request.
type LocaleProvider interface {
	Locale(ctx context.Context) string
}
