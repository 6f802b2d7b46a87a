// Package crsc computes Combat-Related Special Compensation.
package crsc

import "github.com/Aashish23092/va-benefits-estimator/dto"

// Classify returns the combat category for a condition's flags. A set
// NotCombatRelated flag always wins. With several positive flags the first
// in statutory order is reported.
func Classify(f dto.CombatFlags) (dto.CombatCategory, bool) {
	if f.NotCombatRelated {
		return dto.CombatNone, false
	}
	switch {
	case f.ArmedConflict:
		return dto.CombatArmedConflict, true
	case f.HazardousService:
		return dto.CombatHazardousService, true
	case f.SimulatedWar:
		return dto.CombatSimulatedWar, true
	case f.InstrumentalityOfWar:
		return dto.CombatInstrumentalityOfWar, true
	case f.PurpleHeart:
		return dto.CombatPurpleHeart, true
	}
	return dto.CombatNone, false
}

// IsCombatRelated reports whether flags make a condition CRSC-eligible.
func IsCombatRelated(f dto.CombatFlags) bool {
	_, ok := Classify(f)
	return ok
}
