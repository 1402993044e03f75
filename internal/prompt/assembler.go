package prompt

import (
	"fmt"
	"strings"

	"dm-server/internal/directive"
	"dm-server/internal/models"
)

const (
	// MaxContextRunes - предел фоновых материалов кампании в системной инструкции.
	MaxContextRunes = 20000
	// MaxCustomInstructionsRunes - предел пользовательских инструкций.
	MaxCustomInstructionsRunes = 1000
)

const policyText = `Rule 1: Be descriptive but DO NOT PANDER. You are a referee, not a fan.
Rule 2: Dice results are LAW. Do not fudge rolls to save the character. Death is part of the game.
Rule 3: Adhere strictly to the provided campaign knowledge base (if any) for lore and rules.
Rule 4: YOU MUST TRACK THE CHARACTER'S STATUS. If the character's HP, coins, stats or inventory change, you MUST append a JSON block to the end of your response like this:
<<<UPDATE { "hp": 15, "gp": 50, "inventory": "Sword, Shield, Rations" }>>>
Only include fields that changed. "inventory" must be the FULL updated list string.
Allowed fields: %s.
Rule 5: When a roll is needed, do not invent the number. Request it with a tag like <<<ROLL d20>>> (any die size, e.g. d4, d6, d8, d10, d12, d20). The server replaces each tag with the real result.`

// Build собирает системную инструкцию и историю для одного хода.
// history - уже сохраненные сообщения кампании в порядке создания, userInput добавляется последним.
// Функция чистая: ничего не читает и не пишет за пределами аргументов.
func Build(c *models.Campaign, history []models.Message, userInput string) models.Prompt {
	turns := make([]models.ChatTurn, 0, len(history)+1)
	for _, m := range history {
		turns = append(turns, models.ChatTurn{
			Role:    models.ChatRoleFor(m.Role),
			Content: m.Content,
		})
	}
	turns = append(turns, models.ChatTurn{Role: models.ChatRoleUser, Content: userInput})

	return models.Prompt{
		System: SystemText(c),
		Turns:  turns,
	}
}

// SystemText формирует системную инструкцию ведущего для кампании.
func SystemText(c *models.Campaign) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("You are a BRUTAL, IMPARTIAL Dungeon Master running a solo campaign for a player using %s rules.\n", ruleSystem(c)))
	sb.WriteString("Setting: World of Greyhawk or as specified.\n")
	sb.WriteString(fmt.Sprintf(policyText, strings.Join(directive.AllowedFields, ", ")))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("Current Campaign: %s\n", c.Name))

	if c.HasCharacter() {
		sb.WriteString("\n")
		writeCharacterSheet(&sb, c.Character)
	}

	if c.Context != nil && strings.TrimSpace(*c.Context) != "" {
		sb.WriteString("\nCAMPAIGN KNOWLEDGE BASE (STRICT ADHERENCE REQUIRED):\n")
		sb.WriteString(TruncateRunes(*c.Context, MaxContextRunes))
		sb.WriteString("\n")
	}

	if c.CustomInstructions != nil && strings.TrimSpace(*c.CustomInstructions) != "" {
		sb.WriteString("\nCUSTOM INSTRUCTIONS:\n")
		sb.WriteString(TruncateRunes(*c.CustomInstructions, MaxCustomInstructionsRunes))
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}

// RollAddendum - дополнение к системной инструкции для хода, начатого броском игрока.
// Модель должна реагировать на уже известный результат, а не бросать заново.
func RollAddendum(roll models.DiceRoll) string {
	return fmt.Sprintf("\n\nThe player has just rolled a %s on the server and the result is %d. "+
		"This result is final: narrate its consequences and do NOT request or invent another roll for this action.",
		roll.Dice, roll.Result)
}

// TruncateRunes обрезает строку до limit символов, не разрывая многобайтовые руны.
func TruncateRunes(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}

func ruleSystem(c *models.Campaign) string {
	if strings.TrimSpace(c.System) == "" {
		return models.DefaultRuleSystem
	}
	return c.System
}

func writeCharacterSheet(sb *strings.Builder, ch *models.Character) {
	sb.WriteString("PLAYER CHARACTER:\n")
	sb.WriteString(fmt.Sprintf("Name: %s\n", ch.Name))
	sb.WriteString(fmt.Sprintf("Race: %s\n", ch.Race))
	sb.WriteString(fmt.Sprintf("Class: %s\n", ch.Class))
	sb.WriteString(fmt.Sprintf("Level: %d (XP %d)\n", ch.Level, ch.Experience))
	sb.WriteString(fmt.Sprintf("HP: %d/%d\n", ch.HP, ch.MaxHP))
	sb.WriteString(fmt.Sprintf("AC: %d\n", ch.AC))
	sb.WriteString(fmt.Sprintf("Stats: STR %d, DEX %d, CON %d, INT %d, WIS %d, CHA %d\n",
		ch.Strength, ch.Dexterity, ch.Constitution, ch.Intelligence, ch.Wisdom, ch.Charisma))
	sb.WriteString(fmt.Sprintf("Alignment: %s\n", ch.Alignment))
	inventory := ch.Inventory
	if strings.TrimSpace(inventory) == "" {
		inventory = "(empty)"
	}
	sb.WriteString(fmt.Sprintf("Inventory: %s\n", inventory))
	sb.WriteString(fmt.Sprintf("Coin Pouch: %d pp, %d gp, %d ep, %d sp, %d cp\n", ch.PP, ch.GP, ch.EP, ch.SP, ch.CP))
}
