package ratingdecision

import (
	"fmt"

	"github.com/Aashish23092/va-benefits-estimator/dto"
)

// Validate returns non-fatal findings about an extraction. stated is the
// combined rating printed in the letter, if one was found.
func Validate(conds []dto.ServiceCondition, stated *int) []dto.ValidationWarning {
	warnings := []dto.ValidationWarning{}

	if len(conds) == 0 {
		warnings = append(warnings, dto.ValidationWarning{
			Code:    dto.WarnNoConditions,
			Message: "no conditions were found in the rating decision",
		})
	}

	highest := 0
	for _, c := range conds {
		if c.Rating%10 != 0 || c.Rating < 0 || c.Rating > 100 {
			warnings = append(warnings, dto.ValidationWarning{
				Code:    dto.WarnRatingNotMultipleTen,
				Message: fmt.Sprintf("%s: rating %d is not a multiple of 10 between 0 and 100", c.Name, c.Rating),
			})
		}
		if c.Status == dto.StatusGranted && c.Rating > highest {
			highest = c.Rating
		}
	}

	if stated == nil {
		return warnings
	}
	if *stated < 0 || *stated > 100 {
		warnings = append(warnings, dto.ValidationWarning{
			Code:    dto.WarnCombinedOutOfRange,
			Message: fmt.Sprintf("combined rating %d is outside 0-100", *stated),
		})
	}
	if *stated < highest {
		warnings = append(warnings, dto.ValidationWarning{
			Code:    dto.WarnCombinedBelowMax,
			Message: fmt.Sprintf("combined rating %d is below the highest individual rating %d", *stated, highest),
		})
	}
	return warnings
}
