package handler

import (
	"dm-server/internal/service"

	"github.com/google/uuid"
)

type createCampaignRequest struct {
	Name               string     `json:"name"`
	System             string     `json:"system"`
	AIModel            string     `json:"aiModel"`
	CustomInstructions string     `json:"customInstructions"`
	CharacterID        *uuid.UUID `json:"characterId"`
}

func (r createCampaignRequest) toInput() service.CreateCampaignInput {
	return service.CreateCampaignInput{
		Name:               r.Name,
		System:             r.System,
		AIModel:            r.AIModel,
		CustomInstructions: r.CustomInstructions,
		CharacterID:        r.CharacterID,
	}
}

type sendMessageRequest struct {
	Content string `json:"content" binding:"required"`
	APIKey  string `json:"apiKey"`
}

type rollRequest struct {
	Dice   string `json:"dice" binding:"required"`
	APIKey string `json:"apiKey"`
}

type appendContextRequest struct {
	Text string `json:"text" binding:"required"`
}

type appendContextResponse struct {
	Message       string `json:"message"`
	ContextLength int    `json:"contextLength"`
}

type createCharacterRequest struct {
	Name       string `json:"name" binding:"required"`
	Race       string `json:"race"`
	Class      string `json:"class"`
	Alignment  string `json:"alignment"`
	Background string `json:"background"`
	Level      int    `json:"level"`

	HP    int  `json:"hp"`
	MaxHP int  `json:"maxHp"`
	AC    *int `json:"ac"`

	Strength     int `json:"strength"`
	Dexterity    int `json:"dexterity"`
	Constitution int `json:"constitution"`
	Intelligence int `json:"intelligence"`
	Wisdom       int `json:"wisdom"`
	Charisma     int `json:"charisma"`

	GP        *int   `json:"gp"`
	Inventory string `json:"inventory"`
}

func (r createCharacterRequest) toInput() service.CreateCharacterInput {
	return service.CreateCharacterInput{
		Name:         r.Name,
		Race:         r.Race,
		Class:        r.Class,
		Alignment:    r.Alignment,
		Background:   r.Background,
		Level:        r.Level,
		HP:           r.HP,
		MaxHP:        r.MaxHP,
		AC:           r.AC,
		Strength:     r.Strength,
		Dexterity:    r.Dexterity,
		Constitution: r.Constitution,
		Intelligence: r.Intelligence,
		Wisdom:       r.Wisdom,
		Charisma:     r.Charisma,
		GP:           r.GP,
		Inventory:    r.Inventory,
	}
}
