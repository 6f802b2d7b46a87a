package dd214

import (
	"strings"

	"github.com/Aashish23092/va-benefits-estimator/dto"
	"github.com/Aashish23092/va-benefits-estimator/utils"
)

// combatKeywords are matched as plain lowercase substrings. Any hit sets the
// combat flag. There is no negation handling: "PURPLE HEART NOT AWARDED"
// still counts.
var combatKeywords = []string{
	"purple heart",
	"combat action ribbon",
	"combat action badge",
	"combat infantryman badge",
	"combat medical badge",
	"combat aircrew",
	"bronze star medal with v",
	"with valor",
	"hostile fire",
	"imminent danger",
	"combat zone",
	"operation iraqi freedom",
	"operation enduring freedom",
	"operation new dawn",
	"operation inherent resolve",
	"operation freedom's sentinel",
	"operation desert storm",
	"operation desert shield",
	"operation just cause",
	"operation urgent fury",
	"iraq campaign medal",
	"afghanistan campaign medal",
	"global war on terrorism expeditionary",
	"southwest asia service medal",
	"kosovo campaign medal",
	"vietnam service medal",
	"republic of vietnam campaign",
	"korean service medal",
	"served in iraq",
	"served in afghanistan",
	"served in vietnam",
	"served in kuwait",
	"served in a designated imminent danger",
}

const confidenceCombatKeyword = 0.6

// detectCombat returns every keyword found, in list order.
func detectCombat(t utils.Text) (dto.ExtractedField, []string, bool) {
	lower := strings.ToLower(t.Normalized)
	var hits []string
	for _, kw := range combatKeywords {
		if strings.Contains(lower, kw) {
			hits = append(hits, kw)
		}
	}
	if len(hits) == 0 {
		return dto.ExtractedField{}, nil, false
	}
	return dto.ExtractedField{
		Name:             FieldCombat,
		Value:            "true",
		MatchedPatternID: "combat.keyword:" + hits[0],
		Confidence:       confidenceCombatKeyword,
	}, hits, true
}
