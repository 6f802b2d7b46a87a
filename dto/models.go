package dto

type DocumentType string

const (
	DocTypeDD214          DocumentType = "dd214"
	DocTypeRatingDecision DocumentType = "rating_decision"
)

// ExtractedField is one scalar fact plus the pattern that produced it.
type ExtractedField struct {
	Name             string  `json:"name"`
	Value            string  `json:"value"`
	MatchedPatternID string  `json:"matched_pattern_id"`
	Confidence       float64 `json:"confidence"`
}

type BilateralSide string

const (
	SideNone      BilateralSide = "None"
	SideLeft      BilateralSide = "Left"
	SideRight     BilateralSide = "Right"
	SideBilateral BilateralSide = "Bilateral"
)

type ConditionStatus string

const (
	StatusGranted ConditionStatus = "Granted"
	StatusDenied  ConditionStatus = "Denied"
	StatusUnknown ConditionStatus = "Unknown"
)

type CombatCategory string

const (
	CombatNone                 CombatCategory = ""
	CombatArmedConflict        CombatCategory = "Armed Conflict"
	CombatHazardousService     CombatCategory = "Hazardous Service"
	CombatSimulatedWar         CombatCategory = "Simulated War"
	CombatInstrumentalityOfWar CombatCategory = "Instrumentality of War"
	CombatPurpleHeart          CombatCategory = "Purple Heart"
)

const (
	SourceExtraction = "extraction"
	SourceUser       = "user"
)

// ServiceCondition is a disability from a rating decision. Rating is always a
// multiple of 10 in [0,100]; denied conditions carry 0.
type ServiceCondition struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Rating         int             `json:"rating"`
	DiagnosticCode string          `json:"diagnostic_code,omitempty"`
	EffectiveDate  string          `json:"effective_date,omitempty"`
	BilateralSide  BilateralSide   `json:"bilateral_side,omitempty"`
	Status         ConditionStatus `json:"status"`
	DenialReason   string          `json:"denial_reason,omitempty"`
	CombatCategory CombatCategory  `json:"combat_category,omitempty"`
	Tier           int             `json:"extraction_tier,omitempty"`
	Source         string          `json:"source"`
}

type Dependent struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	EffectiveDate string `json:"effective_date,omitempty"`
	RemovalDate   string `json:"removal_date,omitempty"`
}

type ServicePeriod struct {
	Branch             string   `json:"branch,omitempty"`
	EntryDate          string   `json:"entry_date,omitempty"`
	SeparationDate     string   `json:"separation_date,omitempty"`
	Rank               string   `json:"rank,omitempty"`
	PayGrade           string   `json:"pay_grade,omitempty"`
	Component          string   `json:"component,omitempty"`
	CharacterOfService string   `json:"character_of_service,omitempty"`
	IsRetirement       bool     `json:"is_retirement"`
	RetirementType     string   `json:"retirement_type,omitempty"`
	HasCombatService   bool     `json:"has_combat_service"`
	CombatIndicators   []string `json:"combat_indicators,omitempty"`
}

// ValidationWarning is a non-fatal finding that needs user confirmation.
type ValidationWarning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	WarnCombinedOutOfRange   = "combined_out_of_range"
	WarnRatingNotMultipleTen = "rating_not_multiple_of_ten"
	WarnNoConditions         = "no_conditions"
	WarnCombinedBelowMax     = "combined_below_max_individual"
)

type DD214Result struct {
	VeteranName   string           `json:"veteran_name,omitempty"`
	Period        ServicePeriod    `json:"service_period"`
	Fields        []ExtractedField `json:"fields"`
	MissingFields []string         `json:"missing_fields"`
}

type RatingDecisionResult struct {
	VeteranName    string              `json:"veteran_name,omitempty"`
	Conditions     []ServiceCondition  `json:"conditions"`
	Dependents     []Dependent         `json:"dependents"`
	StatedCombined *int                `json:"stated_combined_rating,omitempty"`
	Tier           int                 `json:"tier"`
	Warnings       []ValidationWarning `json:"warnings"`
	Version        string              `json:"version"`
	ParentVersion  string              `json:"parent_version,omitempty"`
}

// ConditionEdit is a user correction applied through ratingdecision.Revise.
// Nil pointers leave the field as extracted.
type ConditionEdit struct {
	ConditionID    string           `json:"condition_id"`
	Name           *string          `json:"name,omitempty"`
	Rating         *int             `json:"rating,omitempty"`
	Status         *ConditionStatus `json:"status,omitempty"`
	BilateralSide  *BilateralSide   `json:"bilateral_side,omitempty"`
	EffectiveDate  *string          `json:"effective_date,omitempty"`
	DiagnosticCode *string          `json:"diagnostic_code,omitempty"`
	Remove         bool             `json:"remove,omitempty"`
}

// RatingInput is one rating fed to the combiner.
type RatingInput struct {
	Percentage int           `json:"percentage"`
	BodyPart   string        `json:"body_part,omitempty"`
	Side       BilateralSide `json:"side,omitempty"`
}

type CombinedRatingResult struct {
	InputRatings       []int   `json:"input_ratings"`
	BilateralApplied   bool    `json:"bilateral_applied"`
	RawValue           float64 `json:"raw_value"`
	CombinedPercentage int     `json:"combined_percentage"`
}

// CombatFlags are the veteran-supplied CRSC category answers for one condition.
type CombatFlags struct {
	ArmedConflict        bool `json:"armed_conflict"`
	HazardousService     bool `json:"hazardous_service"`
	SimulatedWar         bool `json:"simulated_war"`
	InstrumentalityOfWar bool `json:"instrumentality_of_war"`
	PurpleHeart          bool `json:"purple_heart"`
	NotCombatRelated     bool `json:"not_combat_related"`
}

type CombatCondition struct {
	Condition ServiceCondition `json:"condition"`
	Flags     CombatFlags      `json:"flags"`
}

type CRSCInput struct {
	Conditions       []CombatCondition `json:"conditions"`
	IsRetired        bool              `json:"is_retired"`
	RetiredPayAmount float64           `json:"retired_pay_amount"`
	VAWaiverAmount   float64           `json:"va_waiver_amount"`
}

type CRSCComputationResult struct {
	CombatRelatedPercentage int                `json:"combat_related_percentage"`
	CombatRelatedConditions []ServiceCondition `json:"combat_related_conditions"`
	CRSCEligibleAmount      float64            `json:"crsc_eligible_amount"`
	RetiredPayOffset        float64            `json:"retired_pay_offset"`
	CRSCFinalPayment        float64            `json:"crsc_final_payment"`
	Rationale               []string           `json:"rationale"`
}

type EvidenceType string

const (
	EvidenceServiceTreatmentRecord EvidenceType = "service_treatment_record"
	EvidenceLineOfDuty             EvidenceType = "line_of_duty"
	EvidenceAfterActionReport      EvidenceType = "after_action_report"
	EvidenceAwardCitation          EvidenceType = "award_citation"
	EvidenceOther                  EvidenceType = "other"
)

// EvidenceItem is one supporting document in the veteran's inventory.
type EvidenceItem struct {
	ID                 string       `json:"id"`
	Type               EvidenceType `json:"type"`
	Title              string       `json:"title"`
	Description        string       `json:"description,omitempty"`
	Keywords           []string     `json:"keywords,omitempty"`
	LinkedConditionIDs []string     `json:"linked_condition_ids,omitempty"`
}

type Confidence string

const (
	ConfidenceLow    Confidence = "Low"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceHigh   Confidence = "High"
)

type EvidenceMappingResult struct {
	ConditionID    string         `json:"condition_id"`
	ConditionName  string         `json:"condition_name"`
	CombatCategory CombatCategory `json:"combat_category,omitempty"`
	Confidence     Confidence     `json:"confidence"`
	Evidence       []EvidenceItem `json:"evidence"`
	Gaps           []EvidenceType `json:"gaps"`
}

type Viability string

const (
	ViabilityHigh   Viability = "High"
	ViabilityMedium Viability = "Medium"
	ViabilityLow    Viability = "Low"
)

type AppealStrategy struct {
	Viability  Viability `json:"viability"`
	IssueCount int       `json:"issue_count"`
	Issues     []string  `json:"issues"`
	Steps      []string  `json:"steps"`
	Text       string    `json:"text"`
}

type CrossCheckResult struct {
	NameMatch      bool     `json:"name_match"`
	NameSimilarity float64  `json:"name_similarity"`
	Notes          []string `json:"notes"`
}
