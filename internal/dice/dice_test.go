package dice_test

import (
	"errors"
	"math"
	"testing"

	"dm-server/internal/dice"
	"dm-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSpec(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		want    int
		wantErr bool
	}{
		{"d20", "d20", 20, false},
		{"uppercase", "D6", 6, false},
		{"spaces trimmed", "  d8 ", 8, false},
		{"missing d", "20", 0, true},
		{"missing size", "d", 0, true},
		{"zero sides", "d0", 0, true},
		{"non numeric", "dx", 0, true},
		{"negative", "d-4", 0, true},
		{"empty", "", 0, true},
		{"overflow", "d999999999999999999999", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dice.ParseSpec(tt.spec)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, models.ErrInvalidDiceSpec))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRollerRange(t *testing.T) {
	r := dice.NewRoller()
	for _, sides := range []int{1, 4, 6, 8, 10, 12, 20, 100} {
		for i := 0; i < 1000; i++ {
			v := r.Roll(sides)
			assert.GreaterOrEqual(t, v, 1)
			assert.LessOrEqual(t, v, sides)
		}
	}
}

// Хи-квадрат по 10 000 бросков для каждой стандартной кости.
func TestRollerUniformity(t *testing.T) {
	const trials = 10000
	// Критические значения хи-квадрата для p = 0.001 при (sides-1) степенях свободы.
	critical := map[int]float64{4: 16.27, 6: 20.52, 8: 24.32, 10: 27.88, 12: 31.26, 20: 43.82}

	for sides, limit := range critical {
		r := dice.NewSeededRoller(uint64(sides))
		counts := make([]int, sides+1)
		for i := 0; i < trials; i++ {
			v := r.Roll(sides)
			require.GreaterOrEqual(t, v, 1)
			require.LessOrEqual(t, v, sides)
			counts[v]++
		}
		expected := float64(trials) / float64(sides)
		chi := 0.0
		for face := 1; face <= sides; face++ {
			d := float64(counts[face]) - expected
			chi += d * d / expected
		}
		assert.Lessf(t, chi, limit, "d%d chi-square %.2f exceeds %.2f", sides, chi, limit)
		assert.False(t, math.IsNaN(chi))
	}
}

func TestSeededRollerIsReproducible(t *testing.T) {
	a := dice.NewSeededRoller(7)
	b := dice.NewSeededRoller(7)
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Roll(20), b.Roll(20))
	}
}

func TestAnnotationAndPlayerMessage(t *testing.T) {
	roll := models.DiceRoll{Dice: "d20", Sides: 20, Result: 14}
	assert.Equal(t, "(Rolled d20: 14)", dice.Annotation(roll))
	assert.Equal(t, "*Rolls d20... Result: 14*", dice.PlayerMessage(roll))
	assert.Equal(t, "d6", dice.Name(6))
}
