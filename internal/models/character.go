package models

import (
	"time"

	"github.com/google/uuid"
)

// Character - лист персонажа игрока.
// Со стороны модели изменяется только через CharacterPatch (белый список полей).
type Character struct {
	ID         uuid.UUID `json:"id" db:"id"`
	UserID     uuid.UUID `json:"userId" db:"user_id"`
	Name       string    `json:"name" db:"name"`
	Race       string    `json:"race" db:"race"`
	Class      string    `json:"class" db:"class"`
	Alignment  string    `json:"alignment" db:"alignment"`
	Background string    `json:"background" db:"background"`
	Level      int       `json:"level" db:"level"`
	Experience int       `json:"experience" db:"experience"`

	HP    int `json:"hp" db:"hp"`
	MaxHP int `json:"maxHp" db:"max_hp"`
	AC    int `json:"ac" db:"ac"`

	Strength     int `json:"strength" db:"strength"`
	Dexterity    int `json:"dexterity" db:"dexterity"`
	Constitution int `json:"constitution" db:"constitution"`
	Intelligence int `json:"intelligence" db:"intelligence"`
	Wisdom       int `json:"wisdom" db:"wisdom"`
	Charisma     int `json:"charisma" db:"charisma"`

	PP int `json:"pp" db:"pp"`
	GP int `json:"gp" db:"gp"`
	EP int `json:"ep" db:"ep"`
	SP int `json:"sp" db:"sp"`
	CP int `json:"cp" db:"cp"`

	// Inventory всегда заменяется целиком, никогда не дополняется.
	Inventory string `json:"inventory" db:"inventory"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// CharacterPatch - частичное обновление персонажа. nil означает "не менять".
// Набор полей совпадает с белым списком ключей директивы UPDATE.
type CharacterPatch struct {
	HP           *int    `json:"hp,omitempty"`
	MaxHP        *int    `json:"maxHp,omitempty"`
	AC           *int    `json:"ac,omitempty"`
	Strength     *int    `json:"strength,omitempty"`
	Dexterity    *int    `json:"dexterity,omitempty"`
	Constitution *int    `json:"constitution,omitempty"`
	Intelligence *int    `json:"intelligence,omitempty"`
	Wisdom       *int    `json:"wisdom,omitempty"`
	Charisma     *int    `json:"charisma,omitempty"`
	PP           *int    `json:"pp,omitempty"`
	GP           *int    `json:"gp,omitempty"`
	EP           *int    `json:"ep,omitempty"`
	SP           *int    `json:"sp,omitempty"`
	CP           *int    `json:"cp,omitempty"`
	Inventory    *string `json:"inventory,omitempty"`
	Level        *int    `json:"level,omitempty"`
	Experience   *int    `json:"experience,omitempty"`
}

// IsEmpty возвращает true, если патч ничего не меняет.
func (p *CharacterPatch) IsEmpty() bool {
	if p == nil {
		return true
	}
	return len(p.IntFieldList()) == 0 && p.Inventory == nil
}

// Apply накладывает патч на копию персонажа и возвращает результат.
func (p *CharacterPatch) Apply(c Character) Character {
	if p == nil {
		return c
	}
	for _, f := range p.IntFieldList() {
		switch f.Key {
		case "hp":
			c.HP = f.Value
		case "maxHp":
			c.MaxHP = f.Value
		case "ac":
			c.AC = f.Value
		case "strength":
			c.Strength = f.Value
		case "dexterity":
			c.Dexterity = f.Value
		case "constitution":
			c.Constitution = f.Value
		case "intelligence":
			c.Intelligence = f.Value
		case "wisdom":
			c.Wisdom = f.Value
		case "charisma":
			c.Charisma = f.Value
		case "pp":
			c.PP = f.Value
		case "gp":
			c.GP = f.Value
		case "ep":
			c.EP = f.Value
		case "sp":
			c.SP = f.Value
		case "cp":
			c.CP = f.Value
		case "level":
			c.Level = f.Value
		case "experience":
			c.Experience = f.Value
		}
	}
	if p.Inventory != nil {
		c.Inventory = *p.Inventory
	}
	return c
}

// Keys возвращает ключи белого списка, присутствующие в патче.
func (p *CharacterPatch) Keys() []string {
	if p == nil {
		return nil
	}
	keys := make([]string, 0, 17)
	for _, f := range p.IntFieldList() {
		keys = append(keys, f.Key)
	}
	if p.Inventory != nil {
		keys = append(keys, "inventory")
	}
	return keys
}

// PatchIntField - числовое поле патча вместе с его ключом и колонкой в БД.
type PatchIntField struct {
	Key    string
	Column string
	Value  int
}

// IntFieldList возвращает заданные числовые поля в фиксированном порядке.
func (p *CharacterPatch) IntFieldList() []PatchIntField {
	if p == nil {
		return nil
	}
	all := []struct {
		key, column string
		v           *int
	}{
		{"hp", "hp", p.HP},
		{"maxHp", "max_hp", p.MaxHP},
		{"ac", "ac", p.AC},
		{"strength", "strength", p.Strength},
		{"dexterity", "dexterity", p.Dexterity},
		{"constitution", "constitution", p.Constitution},
		{"intelligence", "intelligence", p.Intelligence},
		{"wisdom", "wisdom", p.Wisdom},
		{"charisma", "charisma", p.Charisma},
		{"pp", "pp", p.PP},
		{"gp", "gp", p.GP},
		{"ep", "ep", p.EP},
		{"sp", "sp", p.SP},
		{"cp", "cp", p.CP},
		{"level", "level", p.Level},
		{"experience", "experience", p.Experience},
	}
	out := make([]PatchIntField, 0, len(all))
	for _, f := range all {
		if f.v != nil {
			out = append(out, PatchIntField{Key: f.key, Column: f.column, Value: *f.v})
		}
	}
	return out
}
