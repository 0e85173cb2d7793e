package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"github.com/felixgeelhaar/fortify/timeout"

	"github.com/groomroom/groomroom/internal/domain"
)

// ResilienceConfig bounds an enricher with retry and an overall timeout.
type ResilienceConfig struct {
	MaxAttempts int
	RetryDelay  time.Duration
	Timeout     time.Duration
}

// ResilienceFromConfig derives the wrapper settings from the enrichment config.
func ResilienceFromConfig(cfg domain.EnrichmentConfig) ResilienceConfig {
	return ResilienceConfig{
		MaxAttempts: cfg.Attempts(),
		RetryDelay:  time.Second,
		Timeout:     cfg.Timeout(),
	}
}

// ResilientEnricher wraps another enricher with fortify retry and timeout.
type ResilientEnricher struct {
	inner domain.Enricher
	cfg   ResilienceConfig
}

func NewResilientEnricher(inner domain.Enricher, cfg ResilienceConfig) *ResilientEnricher {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 2
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	return &ResilientEnricher{inner: inner, cfg: cfg}
}

func (e *ResilientEnricher) Enrich(ctx context.Context, pc domain.PromptContext) (string, error) {
	r := retry.New[string](retry.Config{
		MaxAttempts:   e.cfg.MaxAttempts,
		InitialDelay:  e.cfg.RetryDelay,
		BackoffPolicy: retry.BackoffExponential,
	})
	t := timeout.New[string](timeout.Config{DefaultTimeout: e.cfg.Timeout})

	reply, err := t.Execute(ctx, e.cfg.Timeout, func(ctx context.Context) (string, error) {
		return r.Do(ctx, func(ctx context.Context) (string, error) {
			return e.inner.Enrich(ctx, pc)
		})
	})
	if err != nil {
		if errors.Is(err, domain.ErrEnrichmentUnavailable) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", domain.ErrEnrichmentUnavailable, err)
	}
	return reply, nil
}
