package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/felixgeelhaar/fortify/timeout"
	"github.com/xeipuuv/gojsonschema"

	"github.com/groomroom/groomroom/internal/domain"
	"github.com/groomroom/groomroom/internal/domain/synth"
)

const enrichmentSchemaJSON = `{
  "type": "object",
  "minProperties": 1,
  "additionalProperties": false,
  "properties": {
    "story_rewrite": { "type": "string" },
    "criteria": { "type": "array", "items": { "type": "string", "minLength": 1 } },
    "notes": { "type": "array", "items": { "type": "string", "minLength": 1 } }
  }
}`

var enrichmentSchemaLoader = gojsonschema.NewStringLoader(enrichmentSchemaJSON)

type enrichmentReply struct {
	StoryRewrite string   `json:"story_rewrite"`
	Criteria     []string `json:"criteria"`
	Notes        []string `json:"notes"`
}

// callEnricher bounds the enrichment call by the configured timeout. Any
// failure is reported as ErrEnrichmentUnavailable.
func callEnricher(ctx context.Context, e domain.Enricher, cfg domain.EnrichmentConfig, pc domain.PromptContext) (string, error) {
	t := timeout.New[string](timeout.Config{DefaultTimeout: cfg.Timeout()})
	reply, err := t.Execute(ctx, cfg.Timeout(), func(ctx context.Context) (string, error) {
		return e.Enrich(ctx, pc)
	})
	if err != nil {
		if errors.Is(err, domain.ErrEnrichmentUnavailable) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", domain.ErrEnrichmentUnavailable, err)
	}
	return reply, nil
}

// parseEnrichment validates the reply against the schema and keeps only
// what can be layered on top of the rule-based report. A story rewrite that
// mentions none of the ticket's domain terms is dropped.
func parseEnrichment(reply, ticketText string, vocab domain.Vocabulary) *domain.Enrichment {
	payload := extractJSON(reply)
	result, err := gojsonschema.Validate(enrichmentSchemaLoader, gojsonschema.NewStringLoader(payload))
	if err != nil {
		return &domain.Enrichment{Status: domain.EnrichmentRejected, Detail: fmt.Sprintf("reply is not JSON: %v", err)}
	}
	if !result.Valid() {
		var issues []string
		for _, desc := range result.Errors() {
			issues = append(issues, desc.String())
		}
		return &domain.Enrichment{Status: domain.EnrichmentRejected, Detail: "reply does not match schema: " + strings.Join(issues, "; ")}
	}

	var parsed enrichmentReply
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return &domain.Enrichment{Status: domain.EnrichmentRejected, Detail: fmt.Sprintf("decoding reply: %v", err)}
	}

	e := &domain.Enrichment{Status: domain.EnrichmentApplied}
	story := strings.TrimSpace(parsed.StoryRewrite)
	if story != "" {
		if synth.ContainsTerm(story, synth.DomainTerms(ticketText, vocab)) {
			e.StoryRewrite = story
		} else {
			e.Detail = "story rewrite dropped: it mentions none of the ticket's domain terms"
		}
	}
	for _, c := range parsed.Criteria {
		if c = strings.TrimSpace(c); c != "" {
			e.AdditionalCriteria = append(e.AdditionalCriteria, c)
		}
	}
	for _, n := range parsed.Notes {
		if n = strings.TrimSpace(n); n != "" {
			e.Notes = append(e.Notes, n)
		}
	}
	if e.StoryRewrite == "" && len(e.AdditionalCriteria) == 0 && len(e.Notes) == 0 {
		e.Status = domain.EnrichmentRejected
		if e.Detail == "" {
			e.Detail = "reply carried no usable content"
		}
	}
	return e
}

// extractJSON strips markdown fences and surrounding prose from a model reply.
func extractJSON(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, "```"); i >= 0 {
		rest := s[i+3:]
		rest = strings.TrimPrefix(rest, "json")
		if j := strings.Index(rest, "```"); j >= 0 {
			s = strings.TrimSpace(rest[:j])
		}
	}
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}
