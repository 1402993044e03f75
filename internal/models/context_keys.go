package models

// UserIDKey - ключ gin-контекста, под которым middleware кладет uuid.UUID пользователя.
const UserIDKey = "user_id"
