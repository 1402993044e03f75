package models

import (
	"time"

	"github.com/google/uuid"
)

// DiceRoll - результат одного броска кости.
type DiceRoll struct {
	Dice   string `json:"dice"` // например "d20"
	Sides  int    `json:"sides"`
	Result int    `json:"result"`
}

// TurnResult - итог одного хода: сохраненные сообщения и обновленный персонаж (если был).
// При ошибке модели UserMessage уже сохранено, AssistantMessage == nil.
type TurnResult struct {
	UserMessage      *Message   `json:"userMessage,omitempty"`
	AssistantMessage *Message   `json:"message,omitempty"`
	Character        *Character `json:"character"`
	Rolls            []DiceRoll `json:"rolls,omitempty"`
	Model            string     `json:"model,omitempty"`
	UsedFallback     bool       `json:"usedFallback,omitempty"`
}

// RollOutcome - итог броска, инициированного пользователем.
// Turn == nil, если ключа модели нет и реакция ведущего не запрашивалась.
type RollOutcome struct {
	Roll        DiceRoll    `json:"roll"`
	RollMessage *Message    `json:"rollMessage"`
	Turn        *TurnResult `json:"turn,omitempty"`
}

// TurnCompletedEvent публикуется после сохранения итогового сообщения хода.
type TurnCompletedEvent struct {
	CampaignID       uuid.UUID   `json:"campaign_id"`
	UserID           uuid.UUID   `json:"user_id"`
	MessageID        uuid.UUID   `json:"message_id"`
	Role             MessageRole `json:"role"`
	CharacterUpdated bool        `json:"character_updated"`
	Rolls            []DiceRoll  `json:"rolls,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
}
