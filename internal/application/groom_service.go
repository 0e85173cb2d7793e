package application

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/groomroom/groomroom/internal/domain"
	"github.com/groomroom/groomroom/internal/domain/report"
	"github.com/groomroom/groomroom/internal/logging"
)

// GroomService orchestrates one grooming analysis:
// load config → build vocabulary → rule-based report → optional enrichment.
type GroomService struct {
	configLoader domain.ConfigLoader
	enricher     domain.Enricher
	log          *slog.Logger
}

// NewGroomService wires the service. enricher may be nil, in which case
// reports carry a disabled enrichment status.
func NewGroomService(configLoader domain.ConfigLoader, enricher domain.Enricher) *GroomService {
	return &GroomService{
		configLoader: configLoader,
		enricher:     enricher,
		log:          logging.New("groom"),
	}
}

// Request is one analysis call. An empty Mode falls back to the configured one.
type Request struct {
	Dir    string
	Ticket domain.Ticket
	Mode   domain.Mode
}

// Settings is the loaded configuration plus the vocabulary built from it.
type Settings struct {
	Config     domain.Config
	Vocabulary domain.Vocabulary
}

// LoadSettings reads .groomroom.yaml from dir and builds the vocabulary.
func (s *GroomService) LoadSettings(dir string) (Settings, error) {
	cfg, err := s.configLoader.Load(dir)
	if err != nil {
		return Settings{}, fmt.Errorf("loading config: %w", err)
	}
	return Settings{Config: cfg, Vocabulary: domain.BuildVocabulary(cfg)}, nil
}

// Analyze produces the report for one ticket. Only config errors fail the
// call; the analysis itself always yields a complete report.
func (s *GroomService) Analyze(ctx context.Context, req Request) (*domain.GroomReport, error) {
	st, err := s.LoadSettings(req.Dir)
	if err != nil {
		return nil, err
	}
	return s.analyze(ctx, st, req.Ticket, req.Mode), nil
}

// AnalyzeBatch analyses tickets independently, at most parallel at a time.
// Results are returned in input order.
func (s *GroomService) AnalyzeBatch(ctx context.Context, dir string, tickets []domain.Ticket, mode domain.Mode, parallel int) ([]*domain.GroomReport, error) {
	st, err := s.LoadSettings(dir)
	if err != nil {
		return nil, err
	}
	if parallel < 1 {
		parallel = 1
	}

	results := make([]*domain.GroomReport, len(tickets))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, t := range tickets {
		i, t := i, t
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			results[i] = s.analyze(gCtx, st, t, mode)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch analysis: %w", err)
	}
	s.log.Debug("batch analysed", "tickets", len(tickets), "parallel", parallel)
	return results, nil
}

func (s *GroomService) analyze(ctx context.Context, st Settings, t domain.Ticket, mode domain.Mode) *domain.GroomReport {
	if mode == "" {
		mode = st.Config.EffectiveMode()
	}

	r := report.Analyze(t, st.Vocabulary, mode)
	s.log.Debug("ticket analysed",
		"ticket", t.ID,
		"card_type", r.CardType,
		"status", r.Status,
		"coverage", r.Coverage(),
		"degradations", len(r.Degradations),
	)

	r.Enrichment = s.enrich(ctx, st, t, r)
	return r
}

func (s *GroomService) enrich(ctx context.Context, st Settings, t domain.Ticket, r *domain.GroomReport) *domain.Enrichment {
	if s.enricher == nil || !st.Config.Enrichment.Enabled {
		return &domain.Enrichment{Status: domain.EnrichmentDisabled}
	}
	if t.IsEmpty() {
		return &domain.Enrichment{Status: domain.EnrichmentDisabled, Detail: "nothing to enrich"}
	}

	reply, err := callEnricher(ctx, s.enricher, st.Config.Enrichment, promptContext(t, r, "groom"))
	if err != nil {
		s.log.Warn("enrichment unavailable", "ticket", t.ID, "error", err)
		return &domain.Enrichment{Status: domain.EnrichmentUnavailable, Detail: err.Error()}
	}

	e := parseEnrichment(reply, t.Text(), st.Vocabulary)
	if e.Status == domain.EnrichmentRejected {
		s.log.Warn("enrichment rejected", "ticket", t.ID, "reason", e.Detail)
	}
	return e
}

func promptContext(t domain.Ticket, r *domain.GroomReport, purpose string) domain.PromptContext {
	pc := domain.PromptContext{
		TicketID:     t.ID,
		Title:        t.Title,
		CardType:     r.CardType,
		Status:       r.Status,
		Text:         t.Text(),
		StoryRewrite: r.StoryRewrite,
		Purpose:      purpose,
	}
	for _, k := range r.DoR.Missing {
		pc.MissingFields = append(pc.MissingFields, k.Label())
	}
	for _, c := range r.Criteria {
		if c.NeedsRewrite() {
			pc.WeakCriteria = append(pc.WeakCriteria, c.Text)
		}
	}
	return pc
}
