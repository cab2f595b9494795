package settingscmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

const (
	upsertSettingMessageType = "site.settings.upsert"
	deleteSettingMessageType = "site.settings.delete"
)

// UpsertSettingCommand writes a global setting. Only keys claimed by a
// consumer in the settings registry are accepted by the service.
type UpsertSettingCommand struct {
	Key     string    `json:"key"`
	Value   string    `json:"value"`
	ActorID uuid.UUID `json:"actor_id,omitempty"`
}

// Type implements command.Message.
func (UpsertSettingCommand) Type() string { return upsertSettingMessageType }

func (m UpsertSettingCommand) Validate() error {
	if strings.TrimSpace(m.Key) == "" {
		return validation.Errors{
			"key": validation.NewError("site.settings.upsert.key_required", "key is required"),
		}
	}
	return nil
}

type DeleteSettingCommand struct {
	Key string `json:"key"`
}

// Type implements command.Message.
func (DeleteSettingCommand) Type() string { return deleteSettingMessageType }

func (m DeleteSettingCommand) Validate() error {
	if strings.TrimSpace(m.Key) == "" {
		return validation.Errors{
			"key": validation.NewError("site.settings.delete.key_required", "key is required"),
		}
	}
	return nil
}
