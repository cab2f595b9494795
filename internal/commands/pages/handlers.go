package pagescmd

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/auth"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/commands"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/pages"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/pkg/interfaces"
)

// CreatePageHandler creates pages through the page service. Any signed-in
// role may create pages.
type CreatePageHandler struct {
	inner *commands.Handler[CreatePageCommand]
}

func NewCreatePageHandler(service pages.Service, authService interfaces.AuthService, logger interfaces.Logger, opts ...commands.HandlerOption[CreatePageCommand]) *CreatePageHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg CreatePageCommand) error {
		_, err := service.Create(ctx, pages.CreatePageRequest{
			ID:                msg.PageID,
			Slug:              msg.Slug,
			TitleHi:           msg.TitleHi,
			TitleEn:           msg.TitleEn,
			MetaTitleHi:       msg.MetaTitleHi,
			MetaTitleEn:       msg.MetaTitleEn,
			MetaDescriptionHi: msg.MetaDescriptionHi,
			MetaDescriptionEn: msg.MetaDescriptionEn,
			OGImageURL:        msg.OGImageURL,
			Published:         msg.Published,
			Typography:        msg.Typography,
			TemplateID:        msg.TemplateID,
			CreatedBy:         msg.ActorID,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[CreatePageCommand]{
		commands.WithLogger[CreatePageCommand](baseLogger),
		commands.WithOperation[CreatePageCommand]("pages.create"),
		commands.WithAuth[CreatePageCommand](authService),
		commands.WithMessageFields(func(msg CreatePageCommand) map[string]any {
			fields := map[string]any{"page_id": msg.PageID, "slug": msg.Slug}
			if t := strings.TrimSpace(msg.TemplateID); t != "" {
				fields["template_id"] = t
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[CreatePageCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &CreatePageHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[CreatePageCommand].
func (h *CreatePageHandler) Execute(ctx context.Context, msg CreatePageCommand) error {
	return h.inner.Execute(ctx, msg)
}

type UpdatePageHandler struct {
	inner *commands.Handler[UpdatePageCommand]
}

func NewUpdatePageHandler(service pages.Service, authService interfaces.AuthService, logger interfaces.Logger, opts ...commands.HandlerOption[UpdatePageCommand]) *UpdatePageHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg UpdatePageCommand) error {
		_, err := service.Update(ctx, pages.UpdatePageRequest{
			ID:                msg.PageID,
			Slug:              msg.Slug,
			TitleHi:           msg.TitleHi,
			TitleEn:           msg.TitleEn,
			MetaTitleHi:       msg.MetaTitleHi,
			MetaTitleEn:       msg.MetaTitleEn,
			MetaDescriptionHi: msg.MetaDescriptionHi,
			MetaDescriptionEn: msg.MetaDescriptionEn,
			OGImageURL:        msg.OGImageURL,
			Typography:        msg.Typography,
			UpdatedBy:         msg.ActorID,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[UpdatePageCommand]{
		commands.WithLogger[UpdatePageCommand](baseLogger),
		commands.WithOperation[UpdatePageCommand]("pages.update"),
		commands.WithAuth[UpdatePageCommand](authService),
		commands.WithMessageFields(func(msg UpdatePageCommand) map[string]any {
			return map[string]any{"page_id": msg.PageID, "slug": msg.Slug}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[UpdatePageCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &UpdatePageHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

func (h *UpdatePageHandler) Execute(ctx context.Context, msg UpdatePageCommand) error {
	return h.inner.Execute(ctx, msg)
}

type PublishPageHandler struct {
	inner *commands.Handler[PublishPageCommand]
}

func NewPublishPageHandler(service pages.Service, authService interfaces.AuthService, logger interfaces.Logger, opts ...commands.HandlerOption[PublishPageCommand]) *PublishPageHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg PublishPageCommand) error {
		_, err := service.SetPublished(ctx, pages.PublishPageRequest{
			ID:        msg.PageID,
			Published: msg.Published,
			UpdatedBy: msg.ActorID,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[PublishPageCommand]{
		commands.WithLogger[PublishPageCommand](baseLogger),
		commands.WithOperation[PublishPageCommand]("pages.publish"),
		commands.WithAuth[PublishPageCommand](authService),
		commands.WithMessageFields(func(msg PublishPageCommand) map[string]any {
			return map[string]any{"page_id": msg.PageID, "published": msg.Published}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[PublishPageCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &PublishPageHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

func (h *PublishPageHandler) Execute(ctx context.Context, msg PublishPageCommand) error {
	return h.inner.Execute(ctx, msg)
}

// DeletePageHandler removes pages. Restricted to admin roles.
type DeletePageHandler struct {
	inner *commands.Handler[DeletePageCommand]
}

func NewDeletePageHandler(service pages.Service, authService interfaces.AuthService, logger interfaces.Logger, opts ...commands.HandlerOption[DeletePageCommand]) *DeletePageHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg DeletePageCommand) error {
		return service.Delete(ctx, msg.PageID)
	}

	handlerOpts := []commands.HandlerOption[DeletePageCommand]{
		commands.WithLogger[DeletePageCommand](baseLogger),
		commands.WithOperation[DeletePageCommand]("pages.delete"),
		commands.WithAuth[DeletePageCommand](authService, auth.AdminRoles...),
		commands.WithMessageFields(func(msg DeletePageCommand) map[string]any {
			if msg.PageID == uuid.Nil {
				return nil
			}
			return map[string]any{"page_id": msg.PageID}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[DeletePageCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &DeletePageHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

func (h *DeletePageHandler) Execute(ctx context.Context, msg DeletePageCommand) error {
	return h.inner.Execute(ctx, msg)
}
