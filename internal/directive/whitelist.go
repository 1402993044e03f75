package directive

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"dm-server/internal/models"
)

// AllowedFields - единственные ключи, которые модель может менять у персонажа.
// Остальные ключи из блока UPDATE молча отбрасываются.
var AllowedFields = []string{
	"hp", "maxHp", "ac",
	"strength", "dexterity", "constitution", "intelligence", "wisdom", "charisma",
	"pp", "gp", "ep", "sp", "cp",
	"inventory", "level", "experience",
}

var allowedSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(AllowedFields))
	for _, f := range AllowedFields {
		m[f] = struct{}{}
	}
	return m
}()

// IsAllowed сообщает, входит ли ключ в белый список.
func IsAllowed(key string) bool {
	_, ok := allowedSet[key]
	return ok
}

// BuildPatch фильтрует разобранный JSON по белому списку.
// Возвращает патч и ключи, которые были отброшены (не из списка или с неверным типом значения).
func BuildPatch(fields map[string]json.RawMessage) (*models.CharacterPatch, []string) {
	patch := &models.CharacterPatch{}
	var dropped []string

	for key, raw := range fields {
		if !IsAllowed(key) {
			dropped = append(dropped, key)
			continue
		}
		if key == "inventory" {
			inv, err := decodeString(raw)
			if err != nil {
				dropped = append(dropped, key)
				continue
			}
			patch.Inventory = &inv
			continue
		}
		v, err := decodeInt(raw)
		if err != nil {
			dropped = append(dropped, key)
			continue
		}
		setInt(patch, key, v)
	}
	return patch, dropped
}

func setInt(p *models.CharacterPatch, key string, v int) {
	switch key {
	case "hp":
		p.HP = &v
	case "maxHp":
		p.MaxHP = &v
	case "ac":
		p.AC = &v
	case "strength":
		p.Strength = &v
	case "dexterity":
		p.Dexterity = &v
	case "constitution":
		p.Constitution = &v
	case "intelligence":
		p.Intelligence = &v
	case "wisdom":
		p.Wisdom = &v
	case "charisma":
		p.Charisma = &v
	case "pp":
		p.PP = &v
	case "gp":
		p.GP = &v
	case "ep":
		p.EP = &v
	case "sp":
		p.SP = &v
	case "cp":
		p.CP = &v
	case "level":
		p.Level = &v
	case "experience":
		p.Experience = &v
	}
}

// decodeInt принимает только JSON-число с целым значением в пределах int32 (колонки INTEGER).
func decodeInt(raw json.RawMessage) (int, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return 0, err
	}
	num, ok := v.(json.Number)
	if !ok {
		return 0, fmt.Errorf("expected number, got %T", v)
	}
	f, err := num.Float64()
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, fmt.Errorf("number %s is not a 32-bit integer", num)
	}
	return int(f), nil
}

func decodeString(raw json.RawMessage) (string, error) {
	var s *string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", err
	}
	if s == nil {
		return "", fmt.Errorf("inventory is null")
	}
	return *s, nil
}
