// Package faults classifies errors from the page, section, settings and
// command layers into the small set of kinds callers act on.
package faults

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"

	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/auth"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/pages"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/sections"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/settings"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/storage"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/typography"
	schemavalidation "github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/validation"
)

// Kind is the classification of a failed operation.
type Kind string

const (
	KindNone              Kind = ""
	KindNotFound          Kind = "not_found"
	KindDuplicateSlug     Kind = "duplicate_slug"
	KindUnauthorized      Kind = "unauthorized"
	KindForbidden         Kind = "forbidden"
	KindValidationFailure Kind = "validation_failed"
	KindStoreFailure      Kind = "store_failure"
)

// Classify maps err to a Kind. Anything unrecognised is a StoreFailure.
func Classify(err error) Kind {
	if err == nil {
		return KindNone
	}

	switch {
	case errors.Is(err, auth.ErrForbidden):
		return KindForbidden
	case errors.Is(err, auth.ErrUnauthorized), errors.Is(err, auth.ErrInvalidCredentials):
		return KindUnauthorized
	case errors.Is(err, pages.ErrSlugExists):
		return KindDuplicateSlug
	case isNotFound(err):
		return KindNotFound
	case isValidation(err):
		return KindValidationFailure
	}
	return KindStoreFailure
}

// Status returns the HTTP status code for kind.
func Status(kind Kind) int {
	switch kind {
	case KindNone:
		return http.StatusOK
	case KindNotFound:
		return http.StatusNotFound
	case KindDuplicateSlug:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindValidationFailure:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Fields returns per-field messages for validation failures, or nil.
func Fields(err error) map[string]string {
	var verrs validation.Errors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for field, fieldErr := range verrs {
		if fieldErr != nil {
			out[field] = fieldErr.Error()
		}
	}
	return out
}

func isNotFound(err error) bool {
	if pages.IsNotFound(err) || sections.IsNotFound(err) || settings.IsNotFound(err) {
		return true
	}
	return goerrors.IsCategory(err, repository.CategoryDatabaseNotFound)
}

func isValidation(err error) bool {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return true
	}
	var verr validation.Error
	if errors.As(err, &verr) {
		return true
	}
	if goerrors.IsCategory(err, goerrors.CategoryValidation) {
		return true
	}
	for _, sentinel := range []error{
		pages.ErrSlugRequired,
		pages.ErrSlugInvalid,
		pages.ErrTitleRequired,
		pages.ErrPageRequired,
		pages.ErrTypographyInvalid,
		sections.ErrSectionTypeInvalid,
		sections.ErrContentInvalid,
		sections.ErrDirectionInvalid,
		sections.ErrOrderInvalid,
		sections.ErrPageRequired,
		settings.ErrKeyRequired,
		settings.ErrKeyUnrecognized,
		settings.ErrValueTooLong,
		typography.ErrUnknownKey,
		typography.ErrInvalidValue,
		schemavalidation.ErrSchemaValidation,
		storage.ErrEmptyFile,
		storage.ErrFileTooLarge,
		storage.ErrUnsupportedType,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
