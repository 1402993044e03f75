package models

// Коды ошибок API, на которые опирается клиент.
const (
	ErrCodeBadRequest            = "BAD_REQUEST"
	ErrCodeValidation            = "VALIDATION_ERROR"
	ErrCodeTokenInvalid          = "TOKEN_INVALID"
	ErrCodeTokenExpired          = "TOKEN_EXPIRED"
	ErrCodeForbidden             = "FORBIDDEN"
	ErrCodeNotFound              = "NOT_FOUND"
	ErrCodeAuthenticationMissing = "MODEL_CREDENTIAL_MISSING"
	ErrCodeModelUnavailable      = "MODEL_UNAVAILABLE"
	ErrCodeInvalidDice           = "INVALID_DICE"
	ErrCodeInternal              = "INTERNAL_ERROR"
)

// ErrorResponse - стандартная структура для ответа об ошибке в формате JSON.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// UserMessage возвращается при сорванном ходе: ввод игрока уже сохранен.
	UserMessage *Message `json:"userMessage,omitempty"`
}
