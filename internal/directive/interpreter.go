package directive

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"dm-server/internal/dice"
	"dm-server/internal/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var (
	directiveRollsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dm_directive_rolls_total",
			Help: "Total number of ROLL directives resolved, by die.",
		},
		[]string{"dice"},
	)
	directiveUpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dm_directive_updates_total",
			Help: "Total number of UPDATE directives found, by outcome.",
		},
		[]string{"outcome"}, // parsed, parse_error, empty
	)
)

// Result - итог обработки ответа модели.
type Result struct {
	// Text - текст для пользователя: броски подставлены, блок UPDATE вырезан.
	Text  string
	Rolls []models.DiceRoll
	// UpdateFound - найден структурно корректный блок UPDATE (даже если JSON битый).
	UpdateFound bool
	// Patch - отфильтрованные по белому списку изменения; nil, если применять нечего.
	Patch *models.CharacterPatch
	// DroppedKeys - ключи, отброшенные фильтром.
	DroppedKeys []string
	// ParseErr оборачивает models.ErrDirectiveParse. Не фатальна для хода.
	ParseErr error
}

// Interpreter находит директивы в сыром ответе модели, разрешает их и убирает из видимого текста.
type Interpreter struct {
	roller dice.Roller
	logger *zap.Logger
}

// NewInterpreter создает интерпретатор директив.
func NewInterpreter(roller dice.Roller, logger *zap.Logger) *Interpreter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interpreter{
		roller: roller,
		logger: logger.Named("DirectiveInterpreter"),
	}
}

// Interpret сначала подставляет броски (их может быть несколько),
// затем обрабатывает первый блок UPDATE.
func (in *Interpreter) Interpret(raw string) Result {
	text, rolls := in.ResolveRolls(raw)
	res := in.ExtractUpdate(text)
	res.Rolls = rolls
	return res
}

// ResolveRolls заменяет каждую директиву <<<ROLL dN>>> подписью с результатом.
// Броски независимы и разрешаются слева направо. Без директив текст возвращается без изменений.
func (in *Interpreter) ResolveRolls(text string) (string, []models.DiceRoll) {
	tokens := All(text, KindRoll)
	if len(tokens) == 0 {
		return text, nil
	}

	var sb strings.Builder
	rolls := make([]models.DiceRoll, 0, len(tokens))
	last := 0
	for _, tok := range tokens {
		roll := dice.Throw(in.roller, tok.Sides)
		rolls = append(rolls, roll)
		directiveRollsTotal.WithLabelValues(roll.Dice).Inc()

		sb.WriteString(text[last:tok.Start])
		sb.WriteString(dice.Annotation(roll))
		last = tok.End
	}
	sb.WriteString(text[last:])

	in.logger.Debug("Resolved roll directives", zap.Int("count", len(rolls)))
	return sb.String(), rolls
}

// ExtractUpdate обрабатывает только первый блок <<<UPDATE {...}>>>.
// Блок вырезается из текста (с обрезкой пробелов по краям) всегда, когда он найден,
// даже если JSON не разобрался. Если блока нет, текст не меняется.
func (in *Interpreter) ExtractUpdate(text string) Result {
	tok, ok := Next(text, 0, KindUpdate)
	if !ok {
		return Result{Text: text}
	}

	res := Result{
		Text:        strings.TrimSpace(text[:tok.Start] + text[tok.End:]),
		UpdateFound: true,
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(tok.Body), &fields); err != nil {
		res.ParseErr = fmt.Errorf("%w: %v", models.ErrDirectiveParse, err)
		directiveUpdatesTotal.WithLabelValues("parse_error").Inc()
		// Блок целиком в логе: из видимого текста он уже вырезан.
		in.logger.Warn("Failed to parse UPDATE directive, ignoring it",
			zap.String("block", text[tok.Start:tok.End]),
			zap.Error(err),
		)
		return res
	}

	patch, dropped := BuildPatch(fields)
	sort.Strings(dropped)
	res.DroppedKeys = dropped
	if len(dropped) > 0 {
		in.logger.Warn("UPDATE directive contained keys outside the whitelist or with bad values",
			zap.Strings("dropped", dropped))
	}
	if patch.IsEmpty() {
		directiveUpdatesTotal.WithLabelValues("empty").Inc()
		return res
	}

	res.Patch = patch
	directiveUpdatesTotal.WithLabelValues("parsed").Inc()
	in.logger.Debug("Parsed UPDATE directive", zap.Strings("keys", patch.Keys()))
	return res
}
