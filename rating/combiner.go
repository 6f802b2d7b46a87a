// Package rating implements the VA combined rating table as a formula.
package rating

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/Aashish23092/va-benefits-estimator/dto"
)

// bilateralFactor is applied to the subtotal before the final rounding.
const bilateralFactor = 0.10

var pairedBodyPart = regexp.MustCompile(`(?i)\b(arm|leg|hand|foot|feet|knee|ankle|wrist|elbow|shoulder|hip)s?\b`)

// BodyPart returns the paired body part named in s ("Left Knee Strain" is
// "knee"), or "" when s names none.
func BodyPart(s string) string {
	m := pairedBodyPart.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	part := strings.ToLower(m[1])
	if part == "feet" {
		return "foot"
	}
	return part
}

// Combine folds ratings highest first with c + (100-c)*r/100, applies the
// bilateral factor when it qualifies, and rounds once at the end.
func Combine(inputs []dto.RatingInput) dto.CombinedRatingResult {
	ratings := make([]int, 0, len(inputs))
	for _, in := range inputs {
		ratings = append(ratings, clampRating(in.Percentage))
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ratings)))

	raw := fold(ratings)
	bilateral := bilateralApplies(inputs)
	if bilateral {
		raw += raw * bilateralFactor
	}

	return dto.CombinedRatingResult{
		InputRatings:       ratings,
		BilateralApplied:   bilateral,
		RawValue:           raw,
		CombinedPercentage: roundToTen(raw),
	}
}

// CombinePercentages combines plain percentages without a bilateral factor.
func CombinePercentages(ratings ...int) int {
	sorted := make([]int, 0, len(ratings))
	for _, r := range ratings {
		sorted = append(sorted, clampRating(r))
	}
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	return roundToTen(fold(sorted))
}

// CombineConditions combines granted conditions only; the body part and side
// come from the condition.
func CombineConditions(conds []dto.ServiceCondition) dto.CombinedRatingResult {
	inputs := make([]dto.RatingInput, 0, len(conds))
	for _, c := range conds {
		if c.Status != dto.StatusGranted {
			continue
		}
		inputs = append(inputs, dto.RatingInput{
			Percentage: c.Rating,
			BodyPart:   BodyPart(c.Name),
			Side:       c.BilateralSide,
		})
	}
	return Combine(inputs)
}

// fold expects ratings sorted descending. No intermediate rounding.
func fold(ratings []int) float64 {
	combined := 0.0
	for _, r := range ratings {
		combined += (100 - combined) * float64(r) / 100
	}
	return combined
}

// bilateralApplies needs two or more non-zero ratings on paired body parts
// with both sides present, or one of them marked bilateral.
func bilateralApplies(inputs []dto.RatingInput) bool {
	paired := 0
	var left, right, both bool
	for _, in := range inputs {
		if in.Percentage <= 0 || BodyPart(in.BodyPart) == "" {
			continue
		}
		paired++
		switch in.Side {
		case dto.SideLeft:
			left = true
		case dto.SideRight:
			right = true
		case dto.SideBilateral:
			both = true
		}
	}
	return paired >= 2 && (both || (left && right))
}

// roundToTen rounds half up to the nearest 10 and clips to [0,100]. The
// epsilon absorbs float error so a value that is 65 on paper rounds up.
func roundToTen(v float64) int {
	r := int(math.Floor(v/10+0.5+1e-9)) * 10
	return min(max(r, 0), 100)
}

func clampRating(r int) int {
	return min(max(r, 0), 100)
}
