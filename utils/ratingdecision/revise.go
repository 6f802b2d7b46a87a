package ratingdecision

import (
	"encoding/json"

	"github.com/Aashish23092/va-benefits-estimator/dto"
	"github.com/google/uuid"
)

// Revise applies user edits and returns a new version of the result. The
// input is not modified. Edits naming an unknown condition are ignored; an
// edit with no condition ID and a name adds a user-entered condition.
func Revise(prev dto.RatingDecisionResult, edits []dto.ConditionEdit) dto.RatingDecisionResult {
	byID := make(map[string]dto.ConditionEdit, len(edits))
	for _, e := range edits {
		byID[e.ConditionID] = e
	}

	next := prev
	next.Conditions = make([]dto.ServiceCondition, 0, len(prev.Conditions))
	for _, c := range prev.Conditions {
		e, ok := byID[c.ID]
		if !ok {
			next.Conditions = append(next.Conditions, c)
			continue
		}
		if e.Remove {
			continue
		}
		next.Conditions = append(next.Conditions, applyEdit(c, e))
	}
	for _, e := range edits {
		if e.ConditionID != "" || e.Remove || e.Name == nil {
			continue
		}
		c := applyEdit(dto.ServiceCondition{Status: dto.StatusGranted, BilateralSide: dto.SideNone}, e)
		if c.Name == "" {
			continue
		}
		if e.BilateralSide == nil {
			c.BilateralSide = sideOf(c.Name)
		}
		c.ID = ConditionID(c.Name)
		next.Conditions = append(next.Conditions, c)
	}
	next.Conditions = dedupe(next.Conditions)
	next.Dependents = append([]dto.Dependent{}, prev.Dependents...)
	next.ParentVersion = prev.Version
	next.Version = revisionVersion(prev.Version, edits)
	next.Warnings = Validate(next.Conditions, prev.StatedCombined)
	return next
}

func applyEdit(c dto.ServiceCondition, e dto.ConditionEdit) dto.ServiceCondition {
	if e.Name != nil {
		if name := cleanName(*e.Name); name != "" {
			c.Name = name
			c.ID = ConditionID(name)
		}
	}
	if e.Rating != nil {
		c.Rating = *e.Rating
	}
	if e.Status != nil {
		c.Status = *e.Status
	}
	if c.Status == dto.StatusDenied {
		c.Rating = 0
	} else {
		c.DenialReason = ""
	}
	if e.BilateralSide != nil {
		c.BilateralSide = *e.BilateralSide
	}
	if e.EffectiveDate != nil {
		c.EffectiveDate = *e.EffectiveDate
	}
	if e.DiagnosticCode != nil {
		c.DiagnosticCode = *e.DiagnosticCode
	}
	c.Source = dto.SourceUser
	return c
}

// revisionVersion derives the new version from the parent and the edits so
// replaying the same edits yields the same version.
func revisionVersion(parent string, edits []dto.ConditionEdit) string {
	space, err := uuid.Parse(parent)
	if err != nil {
		space = versionSpace
	}
	key, _ := json.Marshal(edits)
	return uuid.NewSHA1(space, key).String()
}
