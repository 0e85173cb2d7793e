package config

import (
	"fmt"
	"strings"

	"github.com/groomroom/groomroom/internal/domain"
)

// Starter returns a commented .groomroom.yaml for the given default mode.
// Everything except mode and enrichment defaults is commented out.
func Starter(mode domain.Mode) string {
	if mode == "" {
		mode = domain.ModeActionable
	}
	modes := make([]string, len(domain.ValidModes))
	for i, m := range domain.ValidModes {
		modes[i] = string(m)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# GroomRoom configuration (vocabulary v%s)\n\n", domain.VocabularyVersion)
	fmt.Fprintf(&b, "# Default output mode: %s\n", strings.Join(modes, ", "))
	fmt.Fprintf(&b, "mode: %s\n\n", mode)
	b.WriteString(`# Extra vocabulary, appended to the built-in tables.
# vocabulary:
#   brands: [acme, acme-outlet]
#   personas: [merchandiser]
#   heading_synonyms:
#     acceptance_criteria: ["done when"]
#     test_scenarios: ["qa checklist"]
#   vague_phrases:
#     - phrase: "as per the mockup"
#       kind: matches_design
#   ui_markers: [carousel]
#   placeholders: ["to follow"]
#   design_hosts: [xd.adobe.com]

# Optional LLM enrichment. Rule-based output never depends on it.
enrichment:
  enabled: false
  timeout_seconds: 20
  max_attempts: 2

# The API token comes from JIRA_API_TOKEN only.
# jira:
#   base_url: https://example.atlassian.net
#   email: you@example.com

# The API key comes from AZURE_OPENAI_API_KEY only.
# llm:
#   endpoint: https://example.openai.azure.com
#   deployment: gpt-4o
#   api_version: 2024-06-01
`)
	return b.String()
}
