package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultCampaignName используется, если имя кампании не передано.
	DefaultCampaignName = "New Adventure"
	// DefaultRuleSystem - система правил по умолчанию.
	DefaultRuleSystem = "AD&D 1e"
)

// Campaign - игровая кампания пользователя.
// Принадлежит ровно одному пользователю, сообщения только добавляются и упорядочены по времени создания.
type Campaign struct {
	ID                 uuid.UUID  `json:"id" db:"id"`
	UserID             uuid.UUID  `json:"userId" db:"user_id"`
	Name               string     `json:"name" db:"name"`
	System             string     `json:"system" db:"system"`
	AIModel            string     `json:"aiModel" db:"ai_model"`
	CustomInstructions *string    `json:"customInstructions" db:"custom_instructions"`
	Context            *string    `json:"context,omitempty" db:"context"`
	CharacterID        *uuid.UUID `json:"characterId" db:"character_id"`
	CreatedAt          time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time  `json:"updatedAt" db:"updated_at"`

	// Заполняются только при загрузке кампании вместе с историей.
	Character *Character `json:"character,omitempty" db:"-"`
	Messages  []Message  `json:"messages,omitempty" db:"-"`
}

// HasCharacter сообщает, привязан ли к кампании загруженный персонаж.
func (c *Campaign) HasCharacter() bool {
	return c != nil && c.Character != nil
}
