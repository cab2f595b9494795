package sections

import (
	"errors"
	"fmt"
)

var (
	ErrSectionTypeInvalid = errors.New("sections: type is invalid")
	ErrPageRequired       = errors.New("sections: page id is required")
	ErrDirectionInvalid   = errors.New("sections: direction must be UP or DOWN")
	ErrContentInvalid     = errors.New("sections: content does not match section type")
	ErrOrderInvalid       = errors.New("sections: order must be zero or positive")
	ErrRepositoryRequired = errors.New("sections: repository is required")
)

// NotFoundError is returned when a section or its owning page cannot be found.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}
