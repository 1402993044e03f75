package models

import (
	"time"

	"github.com/google/uuid"
)

// MessageRole - роль автора сообщения в кампании.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleSystem    MessageRole = "system"
)

// IsValid проверяет, что роль входит в допустимый набор.
func (r MessageRole) IsValid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	}
	return false
}

// Message - неизменяемая запись переписки. Текст правится только до сохранения.
type Message struct {
	ID         uuid.UUID   `json:"id" db:"id"`
	CampaignID uuid.UUID   `json:"campaignId" db:"campaign_id"`
	Role       MessageRole `json:"role" db:"role"`
	Content    string      `json:"content" db:"content"`
	CreatedAt  time.Time   `json:"createdAt" db:"created_at"`
}
