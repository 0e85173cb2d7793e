package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/groomroom/groomroom/internal/domain"
	"gopkg.in/yaml.v3"
)

// FileName is the per-directory config file.
const FileName = ".groomroom.yaml"

// Environment variables. Secrets are never read from the config file.
const (
	EnvJiraBaseURL   = "JIRA_BASE_URL"
	EnvJiraEmail     = "JIRA_EMAIL"
	EnvJiraToken     = "JIRA_API_TOKEN"
	EnvLLMEndpoint   = "AZURE_OPENAI_ENDPOINT"
	EnvLLMDeployment = "AZURE_OPENAI_DEPLOYMENT"
	EnvLLMKey        = "AZURE_OPENAI_API_KEY"
)

// YAMLLoader implements domain.ConfigLoader by reading .groomroom.yaml.
type YAMLLoader struct {
	path   string
	getenv func(string) string
}

// New creates a YAMLLoader that reads FileName from the directory passed to Load.
func New() *YAMLLoader { return &YAMLLoader{getenv: os.Getenv} }

// NewWithPath creates a YAMLLoader that always reads path, ignoring the
// directory passed to Load. An empty path behaves like New.
func NewWithPath(path string) *YAMLLoader {
	return &YAMLLoader{path: path, getenv: os.Getenv}
}

// Load reads .groomroom.yaml from dir, then applies environment overrides.
// Returns DefaultConfig if the file does not exist.
func (l *YAMLLoader) Load(dir string) (domain.Config, error) {
	fp := l.path
	if fp == "" {
		fp = filepath.Join(dir, FileName)
	}

	cfg, err := readFile(fp)
	if err != nil {
		return domain.Config{}, err
	}
	applyEnv(&cfg, l.getenv)
	return cfg, nil
}

func readFile(fp string) (domain.Config, error) {
	data, err := os.ReadFile(fp)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.Config{}, err
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parsing %s: %w", filepath.Base(fp), err)
	}

	// Validate before env overrides so errors point at the user's file.
	if err := cfg.Validate(); err != nil {
		return domain.Config{}, fmt.Errorf("invalid %s: %w", filepath.Base(fp), err)
	}
	return cfg, nil
}

func applyEnv(cfg *domain.Config, getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	set(&cfg.Jira.BaseURL, EnvJiraBaseURL)
	set(&cfg.Jira.Email, EnvJiraEmail)
	set(&cfg.LLM.Endpoint, EnvLLMEndpoint)
	set(&cfg.LLM.Deployment, EnvLLMDeployment)
}

// JiraToken returns the Jira API token from the environment.
func JiraToken() string { return strings.TrimSpace(os.Getenv(EnvJiraToken)) }

// LLMKey returns the Azure OpenAI API key from the environment.
func LLMKey() string { return strings.TrimSpace(os.Getenv(EnvLLMKey)) }
