package sectionscmd

import (
	"context"

	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/commands"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/sections"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/pkg/interfaces"
)

type CreateSectionHandler struct {
	inner *commands.Handler[CreateSectionCommand]
}

func NewCreateSectionHandler(service sections.Service, authService interfaces.AuthService, logger interfaces.Logger, opts ...commands.HandlerOption[CreateSectionCommand]) *CreateSectionHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg CreateSectionCommand) error {
		_, err := service.Create(ctx, sections.CreateSectionRequest{
			ID:      msg.SectionID,
			PageID:  msg.PageID,
			Type:    msg.SectionType,
			Content: msg.Content,
			Visible: msg.Visible,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[CreateSectionCommand]{
		commands.WithLogger[CreateSectionCommand](baseLogger),
		commands.WithOperation[CreateSectionCommand]("sections.create"),
		commands.WithAuth[CreateSectionCommand](authService),
		commands.WithMessageFields(func(msg CreateSectionCommand) map[string]any {
			return map[string]any{"section_id": msg.SectionID, "page_id": msg.PageID, "type": msg.SectionType}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[CreateSectionCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &CreateSectionHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

func (h *CreateSectionHandler) Execute(ctx context.Context, msg CreateSectionCommand) error {
	return h.inner.Execute(ctx, msg)
}

type UpdateSectionHandler struct {
	inner *commands.Handler[UpdateSectionCommand]
}

func NewUpdateSectionHandler(service sections.Service, authService interfaces.AuthService, logger interfaces.Logger, opts ...commands.HandlerOption[UpdateSectionCommand]) *UpdateSectionHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg UpdateSectionCommand) error {
		_, err := service.Update(ctx, sections.UpdateSectionRequest{
			ID:      msg.SectionID,
			Content: msg.Content,
			Visible: msg.Visible,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[UpdateSectionCommand]{
		commands.WithLogger[UpdateSectionCommand](baseLogger),
		commands.WithOperation[UpdateSectionCommand]("sections.update"),
		commands.WithAuth[UpdateSectionCommand](authService),
		commands.WithMessageFields(func(msg UpdateSectionCommand) map[string]any {
			return map[string]any{"section_id": msg.SectionID}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[UpdateSectionCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &UpdateSectionHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

func (h *UpdateSectionHandler) Execute(ctx context.Context, msg UpdateSectionCommand) error {
	return h.inner.Execute(ctx, msg)
}

type DeleteSectionHandler struct {
	inner *commands.Handler[DeleteSectionCommand]
}

func NewDeleteSectionHandler(service sections.Service, authService interfaces.AuthService, logger interfaces.Logger, opts ...commands.HandlerOption[DeleteSectionCommand]) *DeleteSectionHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg DeleteSectionCommand) error {
		return service.Delete(ctx, msg.SectionID)
	}

	handlerOpts := []commands.HandlerOption[DeleteSectionCommand]{
		commands.WithLogger[DeleteSectionCommand](baseLogger),
		commands.WithOperation[DeleteSectionCommand]("sections.delete"),
		commands.WithAuth[DeleteSectionCommand](authService),
		commands.WithMessageFields(func(msg DeleteSectionCommand) map[string]any {
			return map[string]any{"section_id": msg.SectionID}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[DeleteSectionCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &DeleteSectionHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

func (h *DeleteSectionHandler) Execute(ctx context.Context, msg DeleteSectionCommand) error {
	return h.inner.Execute(ctx, msg)
}

// MoveSectionHandler swaps a section with its neighbour. Moving past either
// end of the page succeeds without writing.
type MoveSectionHandler struct {
	inner *commands.Handler[MoveSectionCommand]
}

func NewMoveSectionHandler(service sections.Service, authService interfaces.AuthService, logger interfaces.Logger, opts ...commands.HandlerOption[MoveSectionCommand]) *MoveSectionHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg MoveSectionCommand) error {
		_, err := service.Move(ctx, sections.MoveSectionRequest{
			ID:        msg.SectionID,
			Direction: msg.Direction,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[MoveSectionCommand]{
		commands.WithLogger[MoveSectionCommand](baseLogger),
		commands.WithOperation[MoveSectionCommand]("sections.move"),
		commands.WithAuth[MoveSectionCommand](authService),
		commands.WithMessageFields(func(msg MoveSectionCommand) map[string]any {
			return map[string]any{"section_id": msg.SectionID, "direction": msg.Direction}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[MoveSectionCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &MoveSectionHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

func (h *MoveSectionHandler) Execute(ctx context.Context, msg MoveSectionCommand) error {
	return h.inner.Execute(ctx, msg)
}

type RenumberSectionsHandler struct {
	inner *commands.Handler[RenumberSectionsCommand]
}

func NewRenumberSectionsHandler(service sections.Service, authService interfaces.AuthService, logger interfaces.Logger, opts ...commands.HandlerOption[RenumberSectionsCommand]) *RenumberSectionsHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg RenumberSectionsCommand) error {
		_, err := service.Renumber(ctx, msg.PageID)
		return err
	}

	handlerOpts := []commands.HandlerOption[RenumberSectionsCommand]{
		commands.WithLogger[RenumberSectionsCommand](baseLogger),
		commands.WithOperation[RenumberSectionsCommand]("sections.renumber"),
		commands.WithAuth[RenumberSectionsCommand](authService),
		commands.WithMessageFields(func(msg RenumberSectionsCommand) map[string]any {
			return map[string]any{"page_id": msg.PageID}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[RenumberSectionsCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &RenumberSectionsHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

func (h *RenumberSectionsHandler) Execute(ctx context.Context, msg RenumberSectionsCommand) error {
	return h.inner.Execute(ctx, msg)
}
