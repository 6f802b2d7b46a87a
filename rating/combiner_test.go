package rating

import (
	"testing"

	"github.com/Aashish23092/va-benefits-estimator/dto"
	"github.com/stretchr/testify/assert"
)

func inputs(ratings ...int) []dto.RatingInput {
	out := make([]dto.RatingInput, 0, len(ratings))
	for _, r := range ratings {
		out = append(out, dto.RatingInput{Percentage: r})
	}
	return out
}

func TestCombine_Basics(t *testing.T) {
	assert.Equal(t, 0, Combine(nil).CombinedPercentage)
	assert.Equal(t, 50, Combine(inputs(50)).CombinedPercentage)

	res := Combine(inputs(30, 50))
	assert.Equal(t, 70, res.CombinedPercentage)
	assert.InDelta(t, 65.0, res.RawValue, 1e-9)
	assert.Equal(t, []int{50, 30}, res.InputRatings)
	assert.False(t, res.BilateralApplied)

	assert.Equal(t, 40, CombinePercentages(30, 10))
	assert.Equal(t, 0, CombinePercentages())
}

func TestCombine_PermutationInvariant(t *testing.T) {
	base := []int{10, 20, 30, 40}
	want := Combine(inputs(base...)).CombinedPercentage
	assert.Equal(t, 70, want)

	var permute func(prefix, rest []int)
	permute = func(prefix, rest []int) {
		if len(rest) == 0 {
			assert.Equal(t, want, Combine(inputs(prefix...)).CombinedPercentage, prefix)
			return
		}
		for i := range rest {
			next := append(append([]int{}, prefix...), rest[i])
			remaining := append(append([]int{}, rest[:i]...), rest[i+1:]...)
			permute(next, remaining)
		}
	}
	permute(nil, base)
}

func TestCombine_HundredAbsorbs(t *testing.T) {
	assert.Equal(t, 100, CombinePercentages(100))
	assert.Equal(t, 100, CombinePercentages(30, 100, 20, 10))
}

func TestCombine_NonDecreasing(t *testing.T) {
	ratings := []int{}
	prev := 0
	for _, r := range []int{10, 10, 20, 50, 30, 10, 70} {
		ratings = append(ratings, r)
		got := CombinePercentages(ratings...)
		assert.GreaterOrEqual(t, got, prev, ratings)
		prev = got
	}
}

func TestCombine_ClipsOutOfRangeInput(t *testing.T) {
	assert.Equal(t, 100, CombinePercentages(150))
	assert.Equal(t, 0, CombinePercentages(-20))
}

func TestCombine_Bilateral(t *testing.T) {
	knees := []dto.RatingInput{
		{Percentage: 30, BodyPart: "Left Knee Strain", Side: dto.SideLeft},
		{Percentage: 30, BodyPart: "knee", Side: dto.SideRight},
	}
	plain := Combine(inputs(30, 30))
	bilateral := Combine(knees)

	assert.True(t, bilateral.BilateralApplied)
	assert.Equal(t, 50, plain.CombinedPercentage)
	assert.Equal(t, 60, bilateral.CombinedPercentage)
	assert.InDelta(t, 56.1, bilateral.RawValue, 1e-9)
	assert.GreaterOrEqual(t, bilateral.CombinedPercentage, plain.CombinedPercentage)
}

func TestCombine_BilateralNeedsBothSides(t *testing.T) {
	sameSide := []dto.RatingInput{
		{Percentage: 30, BodyPart: "knee", Side: dto.SideLeft},
		{Percentage: 30, BodyPart: "ankle", Side: dto.SideLeft},
	}
	assert.False(t, Combine(sameSide).BilateralApplied)

	single := []dto.RatingInput{{Percentage: 30, BodyPart: "knee", Side: dto.SideBilateral}}
	assert.False(t, Combine(single).BilateralApplied)

	unpaired := []dto.RatingInput{
		{Percentage: 30, BodyPart: "ear", Side: dto.SideLeft},
		{Percentage: 30, BodyPart: "ear", Side: dto.SideRight},
	}
	assert.False(t, Combine(unpaired).BilateralApplied)

	explicit := []dto.RatingInput{
		{Percentage: 20, BodyPart: "feet", Side: dto.SideBilateral},
		{Percentage: 10, BodyPart: "hip"},
	}
	assert.True(t, Combine(explicit).BilateralApplied)
}

func TestCombine_BilateralClipsAtHundred(t *testing.T) {
	res := Combine([]dto.RatingInput{
		{Percentage: 100, BodyPart: "leg", Side: dto.SideLeft},
		{Percentage: 50, BodyPart: "leg", Side: dto.SideRight},
	})
	assert.Equal(t, 100, res.CombinedPercentage)
}

func TestCombineConditions_DropsNonGranted(t *testing.T) {
	res := CombineConditions([]dto.ServiceCondition{
		{Name: "Tinnitus", Rating: 10, Status: dto.StatusGranted},
		{Name: "Anxiety", Rating: 0, Status: dto.StatusDenied},
		{Name: "Migraine", Rating: 50, Status: dto.StatusUnknown},
	})
	assert.Equal(t, 10, res.CombinedPercentage)
	assert.Equal(t, []int{10}, res.InputRatings)

	res = CombineConditions([]dto.ServiceCondition{
		{Name: "Left Knee Strain", Rating: 30, Status: dto.StatusGranted, BilateralSide: dto.SideLeft},
		{Name: "Right Knee Strain", Rating: 30, Status: dto.StatusGranted, BilateralSide: dto.SideRight},
	})
	assert.True(t, res.BilateralApplied)
	assert.Equal(t, 60, res.CombinedPercentage)
}

func TestBodyPart(t *testing.T) {
	assert.Equal(t, "knee", BodyPart("Left Knee Strain"))
	assert.Equal(t, "foot", BodyPart("bilateral pes planus, feet"))
	assert.Equal(t, "shoulder", BodyPart("Shoulders"))
	assert.Equal(t, "", BodyPart("Tinnitus"))
	assert.Equal(t, "", BodyPart("Kneecap"))
}
