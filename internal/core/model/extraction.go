package model

// Informativeness labels of the first classifier pass.
const (
	LabelInformative    = "informative"
	LabelNonInformative = "non-informative"
)

// HumanitarianCategories are the labels of the second classifier pass.
var HumanitarianCategories = []string{
	"affected_individuals",
	"infrastructure_and_utility_damage",
	"injured_or_dead_people",
	"missing_or_found_people",
	"not_humanitarian",
	"other_relevant_information",
	"rescue_volunteering_or_donation_effort",
	"vehicle_damage",
}

type InformativeResult struct {
	Label string `json:"label"`
}

type HumanitarianResult struct {
	Category string `json:"category"`
}

// Prompt context for the extraction pass.
type ExtractionContext struct {
	Tweet           string `json:"tweet"`
	ExistingSummary string `json:"existing_summary,omitempty"`
}

type MergedSummary struct {
	Summary string `json:"summary"`
}
