package domain

import (
	"fmt"
	"time"
)

// Config holds settings loaded from .groomroom.yaml.
type Config struct {
	Mode       Mode               `yaml:"mode"       json:"mode,omitempty"`
	Vocabulary VocabularyOverride `yaml:"vocabulary" json:"vocabulary,omitempty"`
	Enrichment EnrichmentConfig   `yaml:"enrichment" json:"enrichment,omitempty"`
	Jira       JiraConfig         `yaml:"jira"       json:"jira,omitempty"`
	LLM        LLMConfig          `yaml:"llm"        json:"llm,omitempty"`
}

// VocabularyOverride extends the built-in phrase tables. Lists are appended
// to the defaults; they never replace them.
type VocabularyOverride struct {
	Brands          []string              `yaml:"brands,omitempty"           json:"brands,omitempty"`
	Personas        []string              `yaml:"personas,omitempty"         json:"personas,omitempty"`
	HeadingSynonyms map[FieldKey][]string `yaml:"heading_synonyms,omitempty" json:"heading_synonyms,omitempty"`
	VaguePhrases    []VaguePhrase         `yaml:"vague_phrases,omitempty"    json:"vague_phrases,omitempty"`
	UIMarkers       []string              `yaml:"ui_markers,omitempty"       json:"ui_markers,omitempty"`
	Placeholders    []string              `yaml:"placeholders,omitempty"     json:"placeholders,omitempty"`
	DesignHosts     []string              `yaml:"design_hosts,omitempty"     json:"design_hosts,omitempty"`
}

// EnrichmentConfig controls the optional LLM step.
type EnrichmentConfig struct {
	Enabled        bool `yaml:"enabled"         json:"enabled"`
	TimeoutSeconds int  `yaml:"timeout_seconds" json:"timeout_seconds,omitempty"`
	MaxAttempts    int  `yaml:"max_attempts"    json:"max_attempts,omitempty"`
}

// Timeout returns the enrichment deadline, defaulting to 20s.
func (c EnrichmentConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 20 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Attempts returns the retry budget, defaulting to 2.
func (c EnrichmentConfig) Attempts() int {
	if c.MaxAttempts <= 0 {
		return 2
	}
	return c.MaxAttempts
}

// JiraConfig locates the Jira instance. The API token only comes from the environment.
type JiraConfig struct {
	BaseURL string `yaml:"base_url" json:"base_url,omitempty"`
	Email   string `yaml:"email"    json:"email,omitempty"`
}

// LLMConfig locates the Azure OpenAI deployment. The API key only comes from the environment.
type LLMConfig struct {
	Endpoint   string `yaml:"endpoint"    json:"endpoint,omitempty"`
	Deployment string `yaml:"deployment"  json:"deployment,omitempty"`
	APIVersion string `yaml:"api_version" json:"api_version,omitempty"`
}

// DefaultConfig returns a zero-value config that changes nothing.
func DefaultConfig() Config {
	return Config{}
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c Config) Validate() error {
	if c.Mode != "" {
		if _, err := ParseMode(string(c.Mode)); err != nil {
			return err
		}
	}

	for key, syns := range c.Vocabulary.HeadingSynonyms {
		if !IsKnownField(key) {
			return fmt.Errorf("unknown field %q in vocabulary.heading_synonyms", key)
		}
		for i, s := range syns {
			if NormalizeLabel(s) == "" {
				return fmt.Errorf("vocabulary.heading_synonyms[%s][%d] must not be empty", key, i)
			}
		}
	}

	for i, vp := range c.Vocabulary.VaguePhrases {
		if NormalizeLabel(vp.Phrase) == "" {
			return fmt.Errorf("vocabulary.vague_phrases[%d].phrase must not be empty", i)
		}
	}

	if c.Enrichment.TimeoutSeconds < 0 {
		return fmt.Errorf("enrichment.timeout_seconds must be >= 0 (got %d)", c.Enrichment.TimeoutSeconds)
	}
	if c.Enrichment.MaxAttempts < 0 {
		return fmt.Errorf("enrichment.max_attempts must be >= 0 (got %d)", c.Enrichment.MaxAttempts)
	}

	return nil
}

// EffectiveMode returns the configured mode, falling back to actionable.
func (c Config) EffectiveMode() Mode {
	if c.Mode == "" {
		return ModeActionable
	}
	return c.Mode
}

// BuildVocabulary merges user overrides on top of DefaultVocabulary.
func BuildVocabulary(cfg Config) Vocabulary {
	v := DefaultVocabulary()
	o := cfg.Vocabulary

	v.Brands = append(v.Brands, o.Brands...)
	v.Personas = append(append([]string{}, o.Personas...), v.Personas...)
	v.UIMarkers = append(v.UIMarkers, o.UIMarkers...)
	v.Placeholders = append(v.Placeholders, o.Placeholders...)
	v.DesignHosts = append(v.DesignHosts, o.DesignHosts...)

	for _, vp := range o.VaguePhrases {
		if vp.Kind == "" {
			vp.Kind = VagueWorksCorrectly
		}
		vp.Phrase = NormalizeLabel(vp.Phrase)
		v.VaguePhrases = append(v.VaguePhrases, vp)
	}

	if len(o.HeadingSynonyms) > 0 {
		merged := make(map[FieldKey][]string, len(v.HeadingSynonyms))
		for k, syns := range v.HeadingSynonyms {
			merged[k] = append([]string{}, syns...)
		}
		for k, syns := range o.HeadingSynonyms {
			merged[k] = append(merged[k], syns...)
		}
		v.HeadingSynonyms = merged
	}

	return v
}
