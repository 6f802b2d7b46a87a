// Package explain renders plain-language text from computed results. It
// performs no calculation of its own; every figure comes from its input.
package explain

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/Aashish23092/va-benefits-estimator/dto"
)

var funcs = template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("$%.2f", v) },
	"join":  strings.Join,
	"inc":   func(i int) int { return i + 1 },
	"percents": func(rs []int) string {
		parts := make([]string, len(rs))
		for i, r := range rs {
			parts[i] = fmt.Sprintf("%d%%", r)
		}
		return strings.Join(parts, ", ")
	},
}

var templates = template.Must(template.New("explain").Funcs(funcs).Parse(`
{{- define "conditions" -}}
{{- if not . -}}
No conditions were found in the rating decision.
{{- else -}}
Conditions in the rating decision:
{{- range . }}
- {{ .Name }}: {{ .Status }}{{ if eq .Status "Granted" }} at {{ .Rating }}%{{ end }}
{{- if .EffectiveDate }}, effective {{ .EffectiveDate }}{{ end }}
{{- if .DenialReason }} ({{ .DenialReason }}){{ end }}
{{- end }}
{{- end }}
{{- end -}}

{{- define "combined" -}}
{{- if not .InputRatings -}}
There are no granted ratings to combine, so the combined rating is 0%.
{{- else -}}
Granted ratings {{ percents .InputRatings }} combine to {{ printf "%.2f" .RawValue }}
{{- if .BilateralApplied }} including the bilateral factor{{ end }}, which rounds to a combined rating of {{ .CombinedPercentage }}%.
{{- end }}
{{- end -}}

{{- define "crsc" -}}
Combat-Related Special Compensation:
{{- range .Rationale }}
- {{ . }}
{{- end }}
{{- if gt .CRSCFinalPayment 0.0 }}
Estimated CRSC payment: {{ money .CRSCFinalPayment }} per month at {{ .CombatRelatedPercentage }}% combat-related.
{{- else }}
No CRSC payment is estimated.
{{- end }}
{{- end -}}

{{- define "report" -}}
{{ template "conditions" .Conditions }}

{{ template "combined" .Combined }}

{{ template "crsc" .CRSC }}
{{- end -}}

{{- define "appeal" -}}
Appeal viability: {{ .Viability }} ({{ .IssueCount }} condition{{ if ne .IssueCount 1 }}s{{ end }} with open issues).
{{- if .Issues }}
Open issues:
{{- range .Issues }}
- {{ . }}
{{- end }}
{{- end }}
Recommended steps:
{{- range $i, $s := .Steps }}
{{ inc $i }}. {{ $s }}
{{- end }}
{{- end -}}
`))

func render(name string, data any) string {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		// Templates are fixed and data is typed; an error here is a bug.
		panic(fmt.Sprintf("explain: render %s: %v", name, err))
	}
	return buf.String()
}

// ExplainConditions lists each condition with its status and rating.
func ExplainConditions(conds []dto.ServiceCondition) string {
	return render("conditions", conds)
}

// ExplainCombined describes how the combined rating was reached.
func ExplainCombined(res dto.CombinedRatingResult) string {
	return render("combined", res)
}

// ExplainCRSC restates the CRSC rationale verbatim followed by the outcome.
func ExplainCRSC(res dto.CRSCComputationResult) string {
	return render("crsc", res)
}

// Report joins the three explanations into one text.
func Report(conds []dto.ServiceCondition, combined dto.CombinedRatingResult, crscRes dto.CRSCComputationResult) string {
	return render("report", struct {
		Conditions []dto.ServiceCondition
		Combined   dto.CombinedRatingResult
		CRSC       dto.CRSCComputationResult
	}{conds, combined, crscRes})
}
