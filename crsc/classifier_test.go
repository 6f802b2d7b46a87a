package crsc

import (
	"testing"

	"github.com/Aashish23092/va-benefits-estimator/dto"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name  string
		flags dto.CombatFlags
		want  dto.CombatCategory
		ok    bool
	}{
		{"none", dto.CombatFlags{}, dto.CombatNone, false},
		{"armed conflict", dto.CombatFlags{ArmedConflict: true}, dto.CombatArmedConflict, true},
		{"hazardous", dto.CombatFlags{HazardousService: true}, dto.CombatHazardousService, true},
		{"simulated war", dto.CombatFlags{SimulatedWar: true}, dto.CombatSimulatedWar, true},
		{"instrumentality", dto.CombatFlags{InstrumentalityOfWar: true}, dto.CombatInstrumentalityOfWar, true},
		{"purple heart", dto.CombatFlags{PurpleHeart: true}, dto.CombatPurpleHeart, true},
		{"precedence", dto.CombatFlags{PurpleHeart: true, HazardousService: true}, dto.CombatHazardousService, true},
		{"override", dto.CombatFlags{ArmedConflict: true, PurpleHeart: true, NotCombatRelated: true}, dto.CombatNone, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Classify(tc.flags)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.ok, IsCombatRelated(tc.flags))
		})
	}
}
