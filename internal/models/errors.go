package models

import "errors"

// Application-wide standard errors
var (
	// Common Resource/DB Errors
	ErrNotFound          = errors.New("resource not found")
	ErrCampaignNotFound  = errors.New("campaign not found")
	ErrCharacterNotFound = errors.New("character not found")

	// Auth Errors
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrTokenInvalid   = errors.New("token is invalid")
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenNotFound  = errors.New("token not found in storage")

	// Game Master turn errors
	ErrAuthenticationMissing = errors.New("model API credential is missing")
	ErrModelUnavailable      = errors.New("language model is unavailable")
	ErrDirectiveParse        = errors.New("malformed update directive")
	ErrInvalidDiceSpec       = errors.New("invalid dice specification")

	// General Request/Server Errors
	ErrBadRequest   = errors.New("bad request")
	ErrInvalidInput = errors.New("invalid input data")
)
