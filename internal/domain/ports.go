package domain

import (
	"context"
	"errors"
)

// ErrEnrichmentUnavailable is returned by enrichers that cannot answer.
var ErrEnrichmentUnavailable = errors.New("enrichment unavailable")

// ConfigLoader loads .groomroom.yaml from a directory.
type ConfigLoader interface {
	Load(dir string) (Config, error)
}

// PromptContext is what the enrichment step sees of an analysis.
type PromptContext struct {
	TicketID      string   `json:"ticket_id,omitempty"`
	Title         string   `json:"title,omitempty"`
	CardType      CardType `json:"card_type"`
	Status        Status   `json:"status"`
	Text          string   `json:"text"`
	MissingFields []string `json:"missing_fields,omitempty"`
	WeakCriteria  []string `json:"weak_criteria,omitempty"`
	StoryRewrite  string   `json:"story_rewrite,omitempty"`
	Purpose       string   `json:"purpose"`
}

// Enricher is the optional hosted-LLM hook. Implementations return
// ErrEnrichmentUnavailable (possibly wrapped) when they cannot answer.
type Enricher interface {
	Enrich(ctx context.Context, pc PromptContext) (string, error)
}

// TicketSource fetches ticket payloads from an issue tracker.
type TicketSource interface {
	Fetch(ctx context.Context, key string) (Ticket, error)
}

// RunEntry is one persisted analysis run.
type RunEntry struct {
	ID        string   `json:"id"`
	Timestamp string   `json:"timestamp"`
	TicketID  string   `json:"ticket_id,omitempty"`
	Title     string   `json:"title,omitempty"`
	CardType  CardType `json:"card_type"`
	Status    Status   `json:"status"`
	Coverage  int      `json:"coverage"`
}

// RunHistory persists analysis runs.
type RunHistory interface {
	Save(dir string, entry RunEntry) error
	Load(dir string) ([]RunEntry, error)
}

// TicketCacheStore persists fetched tickets between runs.
type TicketCacheStore interface {
	Load(dir string) (*TicketCache, error)
	Save(c *TicketCache) error
	Invalidate(dir string) error
}
