package settingscmd

import (
	"context"

	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/auth"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/commands"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/settings"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/pkg/interfaces"
)

// UpsertSettingHandler writes global settings. Restricted to admin roles.
type UpsertSettingHandler struct {
	inner *commands.Handler[UpsertSettingCommand]
}

func NewUpsertSettingHandler(service settings.Service, authService interfaces.AuthService, logger interfaces.Logger, opts ...commands.HandlerOption[UpsertSettingCommand]) *UpsertSettingHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg UpsertSettingCommand) error {
		_, err := service.Upsert(ctx, settings.UpsertSettingRequest{
			Key:       msg.Key,
			Value:     msg.Value,
			UpdatedBy: msg.ActorID,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[UpsertSettingCommand]{
		commands.WithLogger[UpsertSettingCommand](baseLogger),
		commands.WithOperation[UpsertSettingCommand]("settings.upsert"),
		commands.WithAuth[UpsertSettingCommand](authService, auth.AdminRoles...),
		commands.WithMessageFields(func(msg UpsertSettingCommand) map[string]any {
			return map[string]any{"key": msg.Key}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[UpsertSettingCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &UpsertSettingHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

func (h *UpsertSettingHandler) Execute(ctx context.Context, msg UpsertSettingCommand) error {
	return h.inner.Execute(ctx, msg)
}

type DeleteSettingHandler struct {
	inner *commands.Handler[DeleteSettingCommand]
}

func NewDeleteSettingHandler(service settings.Service, authService interfaces.AuthService, logger interfaces.Logger, opts ...commands.HandlerOption[DeleteSettingCommand]) *DeleteSettingHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg DeleteSettingCommand) error {
		return service.Delete(ctx, msg.Key)
	}

	handlerOpts := []commands.HandlerOption[DeleteSettingCommand]{
		commands.WithLogger[DeleteSettingCommand](baseLogger),
		commands.WithOperation[DeleteSettingCommand]("settings.delete"),
		commands.WithAuth[DeleteSettingCommand](authService, auth.AdminRoles...),
		commands.WithMessageFields(func(msg DeleteSettingCommand) map[string]any {
			return map[string]any{"key": msg.Key}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[DeleteSettingCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &DeleteSettingHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

func (h *DeleteSettingHandler) Execute(ctx context.Context, msg DeleteSettingCommand) error {
	return h.inner.Execute(ctx, msg)
}
