package models

// ChatRole - роль реплики в словаре языковой модели (только две роли).
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatTurn - одна реплика истории, отправляемая модели.
type ChatTurn struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

// Prompt - системная инструкция и упорядоченная история для одного хода.
type Prompt struct {
	System string     `json:"system"`
	Turns  []ChatTurn `json:"turns"`
}

// ChatRoleFor сводит роль сообщения кампании к двум ролям модели:
// всё, что не user, уходит как assistant.
func ChatRoleFor(role MessageRole) ChatRole {
	if role == RoleUser {
		return ChatRoleUser
	}
	return ChatRoleAssistant
}
