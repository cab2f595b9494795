package settings

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/identity"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/logging"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/pkg/interfaces"
)

const maxValueLength = 256

// Service reads and writes global settings.
type Service interface {
	Get(ctx context.Context, key string) (*Setting, error)
	ListByPrefix(ctx context.Context, prefix string) ([]*Setting, error)
	Upsert(ctx context.Context, req UpsertSettingRequest) (*Setting, error)
	Delete(ctx context.Context, key string) error
	Registry() *KeyRegistry
}

type UpsertSettingRequest struct {
	Key       string
	Value     string
	UpdatedBy uuid.UUID
}

type ServiceOption func(*service)

// WithNow overrides the time source (primarily for tests).
func WithNow(now func() time.Time) ServiceOption {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		s.logger = logging.OrNoOp(logger)
	}
}

// WithRegistry shares a key registry between the service and its consumers.
func WithRegistry(registry *KeyRegistry) ServiceOption {
	return func(s *service) {
		if registry != nil {
			s.registry = registry
		}
	}
}

type service struct {
	repo     SettingRepository
	registry *KeyRegistry
	now      func() time.Time
	logger   interfaces.Logger
}

func NewService(repo SettingRepository, opts ...ServiceOption) Service {
	if repo == nil {
		panic(ErrRepositoryRequired)
	}
	s := &service{
		repo:     repo,
		registry: NewKeyRegistry(),
		now:      time.Now,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Registry() *KeyRegistry {
	return s.registry
}

func (s *service) Get(ctx context.Context, key string) (*Setting, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, ErrKeyRequired
	}
	return s.repo.Get(ctx, key)
}

func (s *service) ListByPrefix(ctx context.Context, prefix string) ([]*Setting, error) {
	return s.repo.ListByPrefix(ctx, strings.TrimSpace(prefix))
}

func (s *service) Upsert(ctx context.Context, req UpsertSettingRequest) (*Setting, error) {
	key := strings.TrimSpace(req.Key)
	value := strings.TrimSpace(req.Value)
	if err := s.validate(key, value); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	record := &Setting{
		ID:        identity.SettingUUID(key),
		Key:       key,
		Value:     value,
		UpdatedBy: req.UpdatedBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
	stored, err := s.repo.Upsert(ctx, record)
	if err != nil {
		return nil, err
	}
	logging.WithFields(s.logger, map[string]any{
		"setting_key": key,
		"updated_by":  req.UpdatedBy,
	}).Info("settings.upsert.success")
	return stored, nil
}

func (s *service) Delete(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrKeyRequired
	}
	if err := s.repo.Delete(ctx, key); err != nil {
		return err
	}
	s.logger.Info("settings.delete.success", "setting_key", key)
	return nil
}

func (s *service) validate(key, value string) error {
	if key == "" {
		return validation.Errors{
			"key": validation.NewError("settings.upsert.key_required", ErrKeyRequired.Error()),
		}
	}
	def, ok := s.registry.Lookup(key)
	if !ok {
		return validation.Errors{
			"key": validation.NewError("settings.upsert.key_unrecognized", ErrKeyUnrecognized.Error()),
		}
	}
	if utf8.RuneCountInString(value) > maxValueLength {
		return validation.Errors{
			"value": validation.NewError("settings.upsert.value_too_long", ErrValueTooLong.Error()),
		}
	}
	if def.Validate != nil {
		if err := def.Validate(value); err != nil {
			return validation.Errors{
				"value": validation.NewError("settings.upsert.value_invalid", err.Error()),
			}
		}
	}
	return nil
}
