// Package export writes a benefit report to an xlsx workbook.
package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Aashish23092/va-benefits-estimator/dto"
	"github.com/Aashish23092/va-benefits-estimator/evidence"
)

const (
	SheetSummary    = "Summary"
	SheetConditions = "Conditions"
	SheetCRSC       = "CRSC"
	SheetEvidence   = "Evidence"
)

type Exporter struct{}

func NewExporter() *Exporter {
	return &Exporter{}
}

// Export builds the workbook. The caller owns the returned file and must
// close it.
func (e *Exporter) Export(report dto.BenefitReport) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{SheetConditions, SheetCRSC, SheetEvidence} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}

	sheets := map[string][][]any{
		SheetSummary:    summaryRows(report),
		SheetConditions: conditionRows(report),
		SheetCRSC:       crscRows(report.CRSC),
		SheetEvidence:   evidenceRows(report.Evidence),
	}
	for name, rows := range sheets {
		if err := writeRows(f, name, rows); err != nil {
			f.Close()
			return nil, err
		}
		f.SetRowStyle(name, 1, 1, headerStyle)
	}

	f.SetColWidth(SheetSummary, "A", "A", 30)
	f.SetColWidth(SheetSummary, "B", "B", 60)
	f.SetColWidth(SheetConditions, "A", "A", 40)
	f.SetColWidth(SheetConditions, "B", "I", 15)
	f.SetColWidth(SheetCRSC, "A", "A", 90)
	f.SetColWidth(SheetEvidence, "A", "A", 35)
	f.SetColWidth(SheetEvidence, "B", "E", 25)

	return f, nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		for j, val := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return fmt.Errorf("write %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}

func summaryRows(r dto.BenefitReport) [][]any {
	rows := [][]any{{"Item", "Value"}}
	if sr := r.ServiceRecord; sr != nil {
		rows = append(rows,
			[]any{"Veteran (DD-214)", sr.VeteranName},
			[]any{"Branch", sr.Period.Branch},
			[]any{"Service dates", dateRange(sr.Period.EntryDate, sr.Period.SeparationDate)},
			[]any{"Character of service", sr.Period.CharacterOfService},
			[]any{"Retirement", sr.Period.RetirementType},
			[]any{"Combat service", yesNo(sr.Period.HasCombatService)},
		)
	}
	if rd := r.RatingDecision; rd != nil {
		rows = append(rows,
			[]any{"Veteran (rating decision)", rd.VeteranName},
			[]any{"Extraction version", rd.Version},
		)
		if rd.StatedCombined != nil {
			rows = append(rows, []any{"Stated combined rating", fmt.Sprintf("%d%%", *rd.StatedCombined)})
		}
	}
	rows = append(rows,
		[]any{"Combined rating", fmt.Sprintf("%d%%", r.Combined.CombinedPercentage)},
		[]any{"Bilateral factor applied", yesNo(r.Combined.BilateralApplied)},
		[]any{"CRSC monthly payment", r.CRSC.CRSCFinalPayment},
		[]any{"Names match", yesNo(r.CrossCheck.NameMatch)},
		[]any{"Appeal viability", string(r.Appeal.Viability)},
		[]any{"Processed at", r.ProcessedAt},
	)
	for _, note := range r.CrossCheck.Notes {
		rows = append(rows, []any{"Note", note})
	}
	return rows
}

func conditionRows(r dto.BenefitReport) [][]any {
	rows := [][]any{{"Condition", "Rating", "Status", "Diagnostic code", "Effective date", "Side", "Combat category", "Source", "Denial reason"}}
	if r.RatingDecision == nil {
		return rows
	}
	combat := make(map[string]dto.CombatCategory, len(r.Evidence))
	for _, m := range r.Evidence {
		combat[m.ConditionID] = m.CombatCategory
	}
	for _, c := range r.RatingDecision.Conditions {
		category := c.CombatCategory
		if category == dto.CombatNone {
			category = combat[c.ID]
		}
		rows = append(rows, []any{
			c.Name, c.Rating, string(c.Status), c.DiagnosticCode, c.EffectiveDate,
			string(c.BilateralSide), string(category), c.Source, c.DenialReason,
		})
	}
	return rows
}

func crscRows(res dto.CRSCComputationResult) [][]any {
	rows := [][]any{
		{"CRSC calculation"},
		{fmt.Sprintf("Combat-related rating: %d%%", res.CombatRelatedPercentage)},
		{fmt.Sprintf("Eligible amount: $%.2f", res.CRSCEligibleAmount)},
		{fmt.Sprintf("Retired pay offset: $%.2f", res.RetiredPayOffset)},
		{fmt.Sprintf("Monthly payment: $%.2f", res.CRSCFinalPayment)},
	}
	for _, line := range res.Rationale {
		rows = append(rows, []any{line})
	}
	return rows
}

func evidenceRows(mappings []dto.EvidenceMappingResult) [][]any {
	rows := [][]any{{"Condition", "Combat category", "Confidence", "Evidence", "Missing"}}
	for _, m := range mappings {
		titles := make([]string, 0, len(m.Evidence))
		for _, item := range m.Evidence {
			titles = append(titles, item.Title)
		}
		gaps := make([]string, 0, len(m.Gaps))
		for _, g := range m.Gaps {
			gaps = append(gaps, evidence.TypeLabel(g))
		}
		rows = append(rows, []any{
			m.ConditionName, string(m.CombatCategory), string(m.Confidence),
			strings.Join(titles, "; "), strings.Join(gaps, "; "),
		})
	}
	return rows
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func dateRange(from, to string) string {
	switch {
	case from == "":
		return to
	case to == "":
		return from
	}
	return from + " to " + to
}
