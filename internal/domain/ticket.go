package domain

import "strings"

// Ticket is a single analysis request. It is never mutated after construction.
type Ticket struct {
	ID    string `json:"id,omitempty"    yaml:"id"`
	Title string `json:"title,omitempty" yaml:"title"`
	Body  string `json:"body"            yaml:"body"`
	Type  string `json:"type,omitempty"  yaml:"type"`
}

// IsEmpty reports whether the ticket carries no analysable text.
func (t Ticket) IsEmpty() bool {
	return strings.TrimSpace(t.Body) == "" && strings.TrimSpace(t.Title) == ""
}

// Text returns title and body joined, the form every analysis stage reads.
func (t Ticket) Text() string {
	title := strings.TrimSpace(t.Title)
	if title == "" {
		return t.Body
	}
	if strings.TrimSpace(t.Body) == "" {
		return title
	}
	return title + "\n" + t.Body
}

// CardType is the ticket category that decides which fields are required.
type CardType string

const (
	CardStory   CardType = "Story"
	CardBug     CardType = "Bug"
	CardTask    CardType = "Task"
	CardFeature CardType = "Feature"
)

// IsStoryLike reports whether the card is expected to carry a user story.
func (c CardType) IsStoryLike() bool {
	return c == CardStory || c == CardFeature
}

// FieldKey is the canonical name of a ticket section.
type FieldKey string

const (
	FieldUserStory             FieldKey = "user_story"
	FieldAcceptanceCriteria    FieldKey = "acceptance_criteria"
	FieldTestScenarios         FieldKey = "test_scenarios"
	FieldImplementationDetails FieldKey = "implementation_details"
	FieldArchitecturalSolution FieldKey = "architectural_solution"
	FieldAdaCriteria           FieldKey = "ada_criteria"
	FieldBrands                FieldKey = "brands"
	FieldComponents            FieldKey = "components"
	FieldAgileTeam             FieldKey = "agile_team"
	FieldStoryPoints           FieldKey = "story_points"
	FieldCurrentBehaviour      FieldKey = "current_behaviour"
	FieldStepsToReproduce      FieldKey = "steps_to_reproduce"
	FieldExpectedBehaviour     FieldKey = "expected_behaviour"
	FieldEnvironment           FieldKey = "environment"
	FieldLinksToStory          FieldKey = "links_to_story"
	FieldSeverityPriority      FieldKey = "severity_priority"
	FieldOutcomeDefinition     FieldKey = "outcome_definition"
	FieldDependencies          FieldKey = "dependencies"

	// FieldDescription holds text that precedes the first recognised heading.
	// It is never required and never scored.
	FieldDescription FieldKey = "description"
)

// AllFields lists every scoreable field in a stable order.
var AllFields = []FieldKey{
	FieldUserStory, FieldAcceptanceCriteria, FieldTestScenarios,
	FieldImplementationDetails, FieldArchitecturalSolution, FieldAdaCriteria,
	FieldBrands, FieldComponents, FieldAgileTeam, FieldStoryPoints,
	FieldCurrentBehaviour, FieldStepsToReproduce, FieldExpectedBehaviour,
	FieldEnvironment, FieldLinksToStory, FieldSeverityPriority,
	FieldOutcomeDefinition, FieldDependencies,
}

// IsKnownField reports whether key is one of AllFields.
func IsKnownField(key FieldKey) bool {
	for _, k := range AllFields {
		if k == key {
			return true
		}
	}
	return false
}

// FieldStatus distinguishes "not found" from "found but placeholder".
type FieldStatus string

const (
	FieldAbsent      FieldStatus = "absent"
	FieldPlaceholder FieldStatus = "placeholder"
	FieldPresent     FieldStatus = "present"
)

// Field is one extracted section.
type Field struct {
	Key     FieldKey    `json:"key"`
	Status  FieldStatus `json:"status"`
	Heading string      `json:"heading,omitempty"`
	Content string      `json:"content,omitempty"`
}

// ExtractedFields maps canonical keys to extracted sections. Keys that were
// not found are simply missing from the map and read back as Absent.
type ExtractedFields struct {
	Fields      map[FieldKey]Field `json:"fields"`
	Ambiguities []string           `json:"ambiguities,omitempty"`
}

// NewExtractedFields returns an empty set where every field is Absent.
func NewExtractedFields() ExtractedFields {
	return ExtractedFields{Fields: make(map[FieldKey]Field)}
}

// Get returns the field for key, or an Absent field when it was not found.
func (e ExtractedFields) Get(key FieldKey) Field {
	if f, ok := e.Fields[key]; ok {
		return f
	}
	return Field{Key: key, Status: FieldAbsent}
}

// Status returns the status of key.
func (e ExtractedFields) Status(key FieldKey) FieldStatus {
	return e.Get(key).Status
}

// IsPresent reports whether key holds real (non-placeholder) content.
func (e ExtractedFields) IsPresent(key FieldKey) bool {
	return e.Status(key) == FieldPresent
}

// Text returns the content of key when Present, otherwise "".
func (e ExtractedFields) Text(key FieldKey) string {
	f := e.Get(key)
	if f.Status != FieldPresent {
		return ""
	}
	return f.Content
}

// Without returns a copy with key removed.
func (e ExtractedFields) Without(key FieldKey) ExtractedFields {
	out := ExtractedFields{Fields: make(map[FieldKey]Field, len(e.Fields)), Ambiguities: e.Ambiguities}
	for k, v := range e.Fields {
		if k != key {
			out.Fields[k] = v
		}
	}
	return out
}

// Confidence grades how sure the link detector is that a URL is a design artifact.
type Confidence string

const (
	ConfidenceStrong Confidence = "strong"
	ConfidenceWeak   Confidence = "weak"
)

// DesignLink is a reference to an external visual-design artifact.
type DesignLink struct {
	URL        string     `json:"url"`
	Section    FieldKey   `json:"section"`
	Anchor     string     `json:"anchor,omitempty"`
	Confidence Confidence `json:"confidence"`
}
