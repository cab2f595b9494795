package http

import (
	"context"

	pagescmd "github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/commands/pages"
	sectionscmd "github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/commands/sections"
	settingscmd "github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/commands/settings"
)

// Executor runs one admin command.
type Executor[T any] interface {
	Execute(ctx context.Context, msg T) error
}

// Commands groups the handlers behind the admin mutations.
type Commands struct {
	CreatePage       Executor[pagescmd.CreatePageCommand]
	UpdatePage       Executor[pagescmd.UpdatePageCommand]
	PublishPage      Executor[pagescmd.PublishPageCommand]
	DeletePage       Executor[pagescmd.DeletePageCommand]
	CreateSection    Executor[sectionscmd.CreateSectionCommand]
	UpdateSection    Executor[sectionscmd.UpdateSectionCommand]
	DeleteSection    Executor[sectionscmd.DeleteSectionCommand]
	MoveSection      Executor[sectionscmd.MoveSectionCommand]
	RenumberSections Executor[sectionscmd.RenumberSectionsCommand]
	UpsertSetting    Executor[settingscmd.UpsertSettingCommand]
	DeleteSetting    Executor[settingscmd.DeleteSettingCommand]
}

func (c Commands) validate() error {
	switch {
	case c.CreatePage == nil, c.UpdatePage == nil, c.PublishPage == nil, c.DeletePage == nil:
		return ErrDependencyMissing
	case c.CreateSection == nil, c.UpdateSection == nil, c.DeleteSection == nil:
		return ErrDependencyMissing
	case c.MoveSection == nil, c.RenumberSections == nil:
		return ErrDependencyMissing
	case c.UpsertSetting == nil, c.DeleteSetting == nil:
		return ErrDependencyMissing
	}
	return nil
}
