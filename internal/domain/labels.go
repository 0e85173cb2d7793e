package domain

import (
	"strings"

	"github.com/fatih/camelcase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var fieldLabels = map[FieldKey]string{
	FieldUserStory:             "User Story",
	FieldAcceptanceCriteria:    "Acceptance Criteria",
	FieldTestScenarios:         "Test Scenarios",
	FieldImplementationDetails: "Implementation Details",
	FieldArchitecturalSolution: "Architectural Solution",
	FieldAdaCriteria:           "ADA Criteria",
	FieldBrands:                "Brands",
	FieldComponents:            "Components",
	FieldAgileTeam:             "Agile Team",
	FieldStoryPoints:           "Story Points",
	FieldCurrentBehaviour:      "Current Behaviour",
	FieldStepsToReproduce:      "Steps to Reproduce",
	FieldExpectedBehaviour:     "Expected Behaviour",
	FieldEnvironment:           "Environment",
	FieldLinksToStory:          "Links to Story",
	FieldSeverityPriority:      "Severity / Priority",
	FieldOutcomeDefinition:     "Outcome Definition",
	FieldDependencies:          "Dependencies",
	FieldDescription:           "Description",
}

// Label returns the human-readable name of the field.
func (k FieldKey) Label() string { return FieldLabel(string(k)) }

// FieldLabel renders any field key for humans. Unmapped keys are split on
// underscores, dashes and camelCase boundaries and title-cased.
func FieldLabel(key string) string {
	if l, ok := fieldLabels[FieldKey(key)]; ok {
		return l
	}

	var words []string
	for _, part := range strings.FieldsFunc(key, func(r rune) bool {
		return r == '_' || r == '-' || r == ' ' || r == '.'
	}) {
		words = append(words, camelcase.Split(part)...)
	}
	return cases.Title(language.Und).String(strings.Join(words, " "))
}
