package application

import (
	"fmt"
	"strings"

	"github.com/groomroom/groomroom/internal/domain"
	"github.com/groomroom/groomroom/internal/domain/report"
)

// TestGenieService derives test scenarios from acceptance criteria alone.
type TestGenieService struct {
	configLoader domain.ConfigLoader
}

func NewTestGenieService(configLoader domain.ConfigLoader) *TestGenieService {
	return &TestGenieService{configLoader: configLoader}
}

// TestGenieResult is the criteria analysis and scenario set for one AC block.
type TestGenieResult struct {
	Title        string                       `json:"title,omitempty"`
	Criteria     []domain.AcceptanceCriterion `json:"criteria"`
	SuggestedAC  []string                     `json:"suggested_criteria,omitempty"`
	Scenarios    domain.ScenarioSet           `json:"scenarios"`
	Degradations []domain.Degradation         `json:"degradations,omitempty"`
}

// Generate treats acText as the Acceptance Criteria section of a ticket
// titled title and returns the criteria and scenarios derived from it.
func (s *TestGenieService) Generate(dir, acText, title string) (*TestGenieResult, error) {
	if strings.TrimSpace(acText) == "" {
		return nil, fmt.Errorf("acceptance criteria text is empty")
	}

	cfg, err := s.configLoader.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	t := domain.Ticket{Title: title, Body: "Acceptance Criteria:\n" + acText}
	r := report.Analyze(t, domain.BuildVocabulary(cfg), domain.ModeActionable)

	return &TestGenieResult{
		Title:        title,
		Criteria:     r.Criteria,
		SuggestedAC:  r.SuggestedAC,
		Scenarios:    r.Scenarios,
		Degradations: r.Degradations,
	}, nil
}

// Markdown renders the result as a scenario checklist.
func (r *TestGenieResult) Markdown() string {
	var b strings.Builder
	title := r.Title
	if title == "" {
		title = "Acceptance criteria"
	}
	fmt.Fprintf(&b, "# TestGenie: %s\n", title)
	for _, cat := range domain.ScenarioCategories {
		list := r.Scenarios[cat]
		if len(list) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n## %s\n\n", cat)
		for _, sc := range list {
			fmt.Fprintf(&b, "- [ ] %s", sc.Description)
			if sc.SourceAC != nil {
				fmt.Fprintf(&b, " (AC #%d)", *sc.SourceAC+1)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}
