package domain

import (
	"encoding/json"
	"fmt"
	"math"
)

// Status is the rule-derived readiness verdict of a ticket.
type Status string

const (
	StatusReady           Status = "Ready"
	StatusNeedsRefinement Status = "NeedsRefinement"
	StatusNotReady        Status = "NotReady"
)

// Rank orders statuses from least to most ready.
func (s Status) Rank() int {
	switch s {
	case StatusReady:
		return 2
	case StatusNeedsRefinement:
		return 1
	default:
		return 0
	}
}

// Label returns the human-readable status.
func (s Status) Label() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusNeedsRefinement:
		return "Needs Refinement"
	default:
		return "Not Ready"
	}
}

// Mode selects how much of the report is rendered.
type Mode string

const (
	ModeActionable Mode = "actionable"
	ModeInsight    Mode = "insight"
	ModeSummary    Mode = "summary"
)

// ValidModes enumerates all rendering modes.
var ValidModes = []Mode{ModeActionable, ModeInsight, ModeSummary}

// ParseMode maps a user-supplied string to a Mode.
func ParseMode(s string) (Mode, error) {
	for _, m := range ValidModes {
		if string(m) == s {
			return m, nil
		}
	}
	if s == "" {
		return ModeActionable, nil
	}
	return "", fmt.Errorf("unknown mode %q (valid: actionable, insight, summary)", s)
}

// WeakArea is a required field that is present but judged low quality.
type WeakArea struct {
	Field  FieldKey `json:"field"`
	Reason string   `json:"reason"`
}

// Conflict is a pair of acceptance criteria that contradict each other.
// A and B index into the criteria list.
type Conflict struct {
	A      int    `json:"a"`
	B      int    `json:"b"`
	TextA  string `json:"text_a"`
	TextB  string `json:"text_b"`
	Reason string `json:"reason"`
}

// DoRResult is the Definition-of-Ready evaluation. Coverage is derived from
// Present and Missing and cannot be set on its own.
type DoRResult struct {
	Required     []FieldKey `json:"required"`
	Present      []FieldKey `json:"present"`
	Missing      []FieldKey `json:"missing"`
	WeakAreas    []WeakArea `json:"weak_areas,omitempty"`
	Conflicts    []Conflict `json:"conflicts,omitempty"`
	Inconsistent bool       `json:"inconsistent,omitempty"`
}

// Coverage returns round(100 * present / (present + missing)).
func (r DoRResult) Coverage() int {
	total := len(r.Present) + len(r.Missing)
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(len(r.Present)) / float64(total)))
}

// IsMissing reports whether key is in the missing list.
func (r DoRResult) IsMissing(key FieldKey) bool {
	for _, k := range r.Missing {
		if k == key {
			return true
		}
	}
	return false
}

// IsWeak reports whether key is in the weak-area list.
func (r DoRResult) IsWeak(key FieldKey) bool {
	for _, w := range r.WeakAreas {
		if w.Field == key {
			return true
		}
	}
	return false
}

func (r DoRResult) MarshalJSON() ([]byte, error) {
	type plain DoRResult
	return json.Marshal(struct {
		plain
		Coverage int `json:"coverage"`
	}{plain(r), r.Coverage()})
}

// VagueKind names the banned generic phrase a criterion matched.
type VagueKind string

const (
	VagueMatchesDesign  VagueKind = "matches_design"
	VagueWorksCorrectly VagueKind = "works_correctly"
	VagueAsExpected     VagueKind = "works_as_expected"
	VagueAsDesigned     VagueKind = "as_designed"
	VagueProperly       VagueKind = "properly"
	VagueCorrectly      VagueKind = "correctly"
	VagueUserFriendly   VagueKind = "user_friendly"
	VagueFast           VagueKind = "fast"
)

// AcceptanceCriterion is one parsed criterion line.
type AcceptanceCriterion struct {
	Index              int       `json:"index"`
	Text               string    `json:"text"`
	HasTrigger         bool      `json:"has_trigger"`
	TriggerImplicit    bool      `json:"trigger_implicit,omitempty"`
	HasExpectedOutcome bool      `json:"has_expected_outcome"`
	HasPassFailClarity bool      `json:"has_pass_fail_clarity"`
	Vague              VagueKind `json:"vague,omitempty"`
	VaguePhrase        string    `json:"vague_phrase,omitempty"`
	Rewrite            string    `json:"rewrite,omitempty"`
}

// NeedsRewrite reports whether the criterion is vague or structurally incomplete.
func (c AcceptanceCriterion) NeedsRewrite() bool {
	return c.Vague != "" || !c.HasTrigger || !c.HasExpectedOutcome || !c.HasPassFailClarity
}

// MissingElements lists the structural elements the criterion lacks.
func (c AcceptanceCriterion) MissingElements() []string {
	var out []string
	if !c.HasTrigger {
		out = append(out, "trigger")
	}
	if !c.HasExpectedOutcome {
		out = append(out, "expected outcome")
	}
	if !c.HasPassFailClarity {
		out = append(out, "pass/fail condition")
	}
	return out
}

// ScenarioCategory groups generated test scenarios.
type ScenarioCategory string

const (
	ScenarioPositive ScenarioCategory = "Positive"
	ScenarioNegative ScenarioCategory = "Negative"
	ScenarioError    ScenarioCategory = "Error"
)

// ScenarioCategories lists categories in rendering order.
var ScenarioCategories = []ScenarioCategory{ScenarioPositive, ScenarioNegative, ScenarioError}

// TestScenario is one generated scenario. SourceAC indexes the criterion it
// was derived from, when there is one.
type TestScenario struct {
	Category    ScenarioCategory `json:"category"`
	Description string           `json:"description"`
	SourceAC    *int             `json:"source_ac,omitempty"`
	Tag         string           `json:"tag,omitempty"`
}

// ScenarioSet groups scenarios by category.
type ScenarioSet map[ScenarioCategory][]TestScenario

// Count returns the number of scenarios across all categories.
func (s ScenarioSet) Count() int {
	n := 0
	for _, v := range s {
		n += len(v)
	}
	return n
}

// Role is the audience of a recommendation.
type Role string

const (
	RoleProductOwner Role = "ProductOwner"
	RoleQA           Role = "QA"
	RoleDevLead      Role = "DevLead"
)

// Roles lists roles in rendering order.
var Roles = []Role{RoleProductOwner, RoleQA, RoleDevLead}

// Label returns the human-readable role name.
func (r Role) Label() string {
	switch r {
	case RoleProductOwner:
		return "Product Owner"
	case RoleDevLead:
		return "Dev Lead"
	default:
		return string(r)
	}
}

// GapKind classifies the concrete problem a recommendation points at.
type GapKind string

const (
	GapMissingField     GapKind = "missing_field"
	GapWeakField        GapKind = "weak_field"
	GapWeakCriterion    GapKind = "weak_criterion"
	GapConflict         GapKind = "conflict"
	GapMissingScenarios GapKind = "missing_scenarios"
	GapEmptyInput       GapKind = "empty_input"
)

// Gap is a concrete, named shortcoming of a ticket.
type Gap struct {
	Kind      GapKind  `json:"kind"`
	Field     FieldKey `json:"field,omitempty"`
	Criterion *int     `json:"criterion,omitempty"`
	Name      string   `json:"name"`
	Detail    string   `json:"detail,omitempty"`
}

// IsConcrete reports whether the gap names something specific.
func (g Gap) IsConcrete() bool {
	return g.Kind != "" && g.Name != ""
}

// Recommendation is a role-tagged action item tied to a gap.
type Recommendation struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
	Gap  Gap    `json:"gap"`
}

// DegradationKind names a recoverable quality problem in the report.
type DegradationKind string

const (
	DegradedInputEmpty          DegradationKind = "input_empty"
	DegradedExtractionAmbiguous DegradationKind = "extraction_ambiguous"
	DegradedSynthesisFailure    DegradationKind = "synthesis_failure"
	DegradedInconsistent        DegradationKind = "internal_inconsistency"
)

// Degradation flags a report whose quality is reduced but which is still complete.
type Degradation struct {
	Kind   DegradationKind `json:"kind"`
	Detail string          `json:"detail"`
}

// EnrichmentStatus records what happened to the optional LLM step.
type EnrichmentStatus string

const (
	EnrichmentDisabled    EnrichmentStatus = "disabled"
	EnrichmentApplied     EnrichmentStatus = "applied"
	EnrichmentUnavailable EnrichmentStatus = "unavailable"
	EnrichmentRejected    EnrichmentStatus = "rejected"
)

// Enrichment holds LLM output layered on top of the rule-based report.
// It never replaces rule-based fields.
type Enrichment struct {
	Status             EnrichmentStatus `json:"status"`
	StoryRewrite       string           `json:"story_rewrite,omitempty"`
	AdditionalCriteria []string         `json:"additional_criteria,omitempty"`
	Notes              []string         `json:"notes,omitempty"`
	Detail             string           `json:"detail,omitempty"`
}

// GroomReport is the final output of one analysis.
type GroomReport struct {
	TicketID        string                `json:"ticket_id,omitempty"`
	Title           string                `json:"title,omitempty"`
	CardType        CardType              `json:"card_type"`
	Status          Status                `json:"status"`
	Fields          ExtractedFields       `json:"fields"`
	DoR             DoRResult             `json:"dor"`
	StoryRewrite    string                `json:"story_rewrite,omitempty"`
	Criteria        []AcceptanceCriterion `json:"criteria"`
	SuggestedAC     []string              `json:"suggested_criteria,omitempty"`
	Scenarios       ScenarioSet           `json:"scenarios"`
	DesignLinks     []DesignLink          `json:"design_links,omitempty"`
	Recommendations []Recommendation      `json:"recommendations"`
	Gaps            []Gap                 `json:"gaps"`
	UIRelevant      bool                  `json:"ui_relevant"`
	Degradations    []Degradation         `json:"degradations,omitempty"`
	Mode            Mode                  `json:"mode"`
	Enrichment      *Enrichment           `json:"enrichment,omitempty"`
}

// Coverage is a shortcut for DoR.Coverage().
func (r *GroomReport) Coverage() int { return r.DoR.Coverage() }

// IsDegraded reports whether any degradation flag is set.
func (r *GroomReport) IsDegraded() bool { return len(r.Degradations) > 0 }

// RecommendationsFor returns the recommendations addressed to role.
func (r *GroomReport) RecommendationsFor(role Role) []Recommendation {
	var out []Recommendation
	for _, rec := range r.Recommendations {
		if rec.Role == role {
			out = append(out, rec)
		}
	}
	return out
}
