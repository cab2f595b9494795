package pages

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrSlugRequired       = errors.New("pages: slug is required")
	ErrSlugInvalid        = errors.New("pages: slug contains invalid characters")
	ErrSlugExists         = errors.New("pages: slug already exists")
	ErrTitleRequired      = errors.New("pages: hindi title is required")
	ErrPageRequired       = errors.New("pages: page id required")
	ErrPageNotFound       = errors.New("pages: page not found")
	ErrRepositoryRequired = errors.New("pages: repository is required")
	ErrTypographyInvalid  = errors.New("pages: typography overrides are invalid")
)

// PageNotFoundError is returned when a page lookup misses. It matches
// ErrPageNotFound under errors.Is.
type PageNotFoundError struct {
	Key string
}

func (e *PageNotFoundError) Error() string {
	if e.Key == "" {
		return "page not found"
	}
	return fmt.Sprintf("page %q not found", e.Key)
}

func (e *PageNotFoundError) Is(target error) bool {
	return target == ErrPageNotFound
}

// SlugExistsError names the conflicting slug. It matches ErrSlugExists.
type SlugExistsError struct {
	Slug string
}

func (e *SlugExistsError) Error() string {
	return fmt.Sprintf("%s: %q", ErrSlugExists.Error(), e.Slug)
}

func (e *SlugExistsError) Is(target error) bool {
	return target == ErrSlugExists
}

// IsNotFound reports whether err is a page miss.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrPageNotFound)
}

// isUniqueViolation recognises unique constraint failures from sqlite and
// postgres drivers without importing them.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "sqlstate 23505")
}
