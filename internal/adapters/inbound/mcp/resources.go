package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/groomroom/groomroom/internal/domain"
	"github.com/groomroom/groomroom/internal/domain/classify"
)

var cardTypes = []domain.CardType{domain.CardStory, domain.CardFeature, domain.CardBug, domain.CardTask}

// registerResources registers all GroomRoom MCP resources on the given server.
func registerResources(s *server.MCPServer, svc Services) {
	// 1. groomroom://vocabulary - effective phrase tables
	s.AddResource(
		mcplib.NewResource(
			"groomroom://vocabulary",
			"Vocabulary",
			mcplib.WithResourceDescription("Effective vocabulary: built-in tables merged with .groomroom.yaml overrides"),
			mcplib.WithMIMEType("application/json"),
		),
		handleVocabularyResource(svc),
	)

	// 2. groomroom://checklists - Definition-of-Ready fields per card type
	s.AddResource(
		mcplib.NewResource(
			"groomroom://checklists",
			"Definition of Ready checklists",
			mcplib.WithResourceDescription("Required fields for every card type"),
			mcplib.WithMIMEType("application/json"),
		),
		handleChecklistsResource(),
	)

	// 3. groomroom://checklists/{card_type} - one checklist (resource template)
	s.AddResourceTemplate(
		mcplib.NewResourceTemplate(
			"groomroom://checklists/{card_type}",
			"Checklist",
			mcplib.WithTemplateDescription("Required fields for one card type (story, feature, bug, task)"),
			mcplib.WithTemplateMIMEType("application/json"),
		),
		handleChecklistResource(),
	)
}

func handleVocabularyResource(svc Services) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		st, err := svc.Groom.LoadSettings(svc.Dir)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		return jsonContents("groomroom://vocabulary", st.Vocabulary)
	}
}

type checklist struct {
	CardType domain.CardType   `json:"card_type"`
	Fields   []string          `json:"fields"`
	Keys     []domain.FieldKey `json:"keys"`
}

func checklistFor(ct domain.CardType) checklist {
	keys := classify.RequiredFields(ct)
	c := checklist{CardType: ct, Keys: keys, Fields: make([]string, len(keys))}
	for i, k := range keys {
		c.Fields[i] = k.Label()
	}
	return c
}

func handleChecklistsResource() server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		out := make([]checklist, 0, len(cardTypes))
		for _, ct := range cardTypes {
			out = append(out, checklistFor(ct))
		}
		return jsonContents("groomroom://checklists", out)
	}
}

func handleChecklistResource() server.ResourceTemplateHandlerFunc {
	return func(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		// Populated by template matching; some clients send a single-element slice.
		var name string
		switch v := request.Params.Arguments["card_type"].(type) {
		case string:
			name = v
		case []string:
			if len(v) > 0 {
				name = v[0]
			}
		}
		if name == "" {
			return nil, fmt.Errorf("card type is required")
		}

		for _, ct := range cardTypes {
			if strings.EqualFold(string(ct), name) {
				return jsonContents(request.Params.URI, checklistFor(ct))
			}
		}
		return nil, fmt.Errorf("unknown card type %q", name)
	}
}

func jsonContents(uri string, v any) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
