package settings

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var (
	ErrKeyRequired        = errors.New("settings: key is required")
	ErrKeyUnrecognized    = errors.New("settings: key is not recognised")
	ErrValueTooLong       = errors.New("settings: value is too long")
	ErrRepositoryRequired = errors.New("settings: repository is required")
	ErrKeyAlreadyClaimed  = errors.New("settings: key already registered by another consumer")
)

// Setting is a single global configuration value, e.g. a typography knob.
type Setting struct {
	bun.BaseModel `bun:"table:site_settings,alias:ss"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Key       string    `bun:"setting_key,notnull,unique" json:"key"`
	Value     string    `bun:"value,notnull" json:"value"`
	UpdatedBy uuid.UUID `bun:"updated_by,type:uuid" json:"updated_by"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}

// NotFoundError reports a missing setting key.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("setting %q not found", e.Key)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func cloneSetting(s *Setting) *Setting {
	if s == nil {
		return nil
	}
	cloned := *s
	return &cloned
}
