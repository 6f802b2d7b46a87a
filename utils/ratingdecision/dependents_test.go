package ratingdecision

import (
	"testing"

	"github.com/Aashish23092/va-benefits-estimator/dto"
	"github.com/Aashish23092/va-benefits-estimator/utils"
	"github.com/stretchr/testify/assert"
)

func TestExtractDependents(t *testing.T) {
	text := `DEPENDENTS ON YOUR AWARD
Name Relationship Effective Date
Jane Doe Spouse 01/01/2020
Jimmy Doe Son 02/15/2021
WHAT WE DECIDED
We removed Jimmy Doe from your award effective 06/01/2023.
We removed your child, Sarah Doe, effective June 1, 2023.`

	deps := extractDependents(utils.NormalizeText(text))

	assert.Equal(t, []dto.Dependent{
		{Name: "Jane Doe", Type: "Spouse", EffectiveDate: "2020-01-01"},
		{Name: "Jimmy Doe", Type: "Child", EffectiveDate: "2021-02-15", RemovalDate: "2023-06-01"},
		{Name: "Sarah Doe", Type: "Child", RemovalDate: "2023-06-01"},
	}, deps)
}

func TestExtractDependents_TypeFirstRows(t *testing.T) {
	text := `Dependency information
Spouse: Mary Smith, effective 05/10/2018
Stepchild: Alex Smith
How we made our decision`

	deps := extractDependents(utils.NormalizeText(text))

	assert.Equal(t, []dto.Dependent{
		{Name: "Mary Smith", Type: "Spouse", EffectiveDate: "2018-05-10"},
		{Name: "Alex Smith", Type: "Stepchild"},
	}, deps)
}

func TestExtractDependents_NoBlock(t *testing.T) {
	deps := extractDependents(utils.NormalizeText("Jane Doe Spouse 01/01/2020"))
	assert.Empty(t, deps)
	assert.NotNil(t, deps)
}
