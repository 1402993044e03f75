package dice

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"

	"dm-server/internal/models"
)

// Roller - источник равномерно распределенных целых в диапазоне [1, sides].
// Криптостойкость не требуется: это честность игры, а не безопасность.
type Roller interface {
	Roll(sides int) int
}

// defaultRoller использует глобальный генератор math/rand/v2, он потокобезопасен.
type defaultRoller struct{}

// NewRoller возвращает Roller на глобальном генераторе.
func NewRoller() Roller {
	return defaultRoller{}
}

func (defaultRoller) Roll(sides int) int {
	return rand.IntN(sides) + 1
}

// seededRoller - детерминированный Roller для тестов и CLI.
type seededRoller struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewSeededRoller создает воспроизводимый Roller.
func NewSeededRoller(seed uint64) Roller {
	return &seededRoller{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (r *seededRoller) Roll(sides int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.IntN(sides) + 1
}

// ParseSpec разбирает обозначение кости вида "d20" и возвращает число граней.
func ParseSpec(spec string) (int, error) {
	s := strings.TrimSpace(spec)
	if len(s) < 2 || (s[0] != 'd' && s[0] != 'D') {
		return 0, fmt.Errorf("%w: %q", models.ErrInvalidDiceSpec, spec)
	}
	digits := s[1:]
	for _, ch := range digits {
		if ch < '0' || ch > '9' {
			return 0, fmt.Errorf("%w: %q", models.ErrInvalidDiceSpec, spec)
		}
	}
	sides, err := strconv.Atoi(digits)
	if err != nil || sides <= 0 {
		return 0, fmt.Errorf("%w: %q", models.ErrInvalidDiceSpec, spec)
	}
	return sides, nil
}

// Throw бросает кость с заданным числом граней.
func Throw(r Roller, sides int) models.DiceRoll {
	return models.DiceRoll{
		Dice:   Name(sides),
		Sides:  sides,
		Result: r.Roll(sides),
	}
}

// Name возвращает каноническое обозначение кости.
func Name(sides int) string {
	return "d" + strconv.Itoa(sides)
}

// Annotation - подпись, которой заменяется директива броска в тексте ведущего.
func Annotation(roll models.DiceRoll) string {
	return fmt.Sprintf("(Rolled %s: %d)", roll.Dice, roll.Result)
}

// PlayerMessage - текст сообщения игрока о собственном броске.
func PlayerMessage(roll models.DiceRoll) string {
	return fmt.Sprintf("*Rolls %s... Result: %d*", roll.Dice, roll.Result)
}
