package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/groomroom/groomroom/internal/application"
	"github.com/groomroom/groomroom/internal/domain"
	"github.com/groomroom/groomroom/internal/domain/classify"
	"github.com/groomroom/groomroom/internal/domain/extract"
	"github.com/groomroom/groomroom/internal/domain/report"
)

// registerTools registers all GroomRoom MCP tools on the given server.
func registerTools(s *server.MCPServer, svc Services) {
	// 1. groomroom_analyze
	s.AddTool(
		mcplib.NewTool("groomroom_analyze",
			mcplib.WithDescription("Analyse a Jira ticket against its Definition of Ready. Returns status, coverage, gaps, criteria rewrites, test scenarios and role-tagged recommendations."),
			mcplib.WithString("ticket_text", mcplib.Required(), mcplib.Description("Ticket body: description, user story, acceptance criteria and other sections")),
			mcplib.WithString("title", mcplib.Description("Ticket summary line")),
			mcplib.WithString("ticket_id", mcplib.Description("Ticket key, e.g. SHOP-123")),
			mcplib.WithString("type", mcplib.Description("Issue type from the tracker (Story, Bug, Task, Feature)")),
			mcplib.WithString("mode", mcplib.Description("actionable, insight or summary (default: configured mode)")),
			mcplib.WithString("format", mcplib.Description("Output format: json or md (default: json)")),
		),
		handleAnalyze(svc),
	)

	// 2. groomroom_testgenie
	s.AddTool(
		mcplib.NewTool("groomroom_testgenie",
			mcplib.WithDescription("Generate positive, negative and error test scenarios from acceptance criteria text"),
			mcplib.WithString("criteria", mcplib.Required(), mcplib.Description("Acceptance criteria, one per line or bullet")),
			mcplib.WithString("title", mcplib.Description("Feature or ticket title used for context")),
			mcplib.WithString("format", mcplib.Description("Output format: json or md (default: json)")),
		),
		handleTestGenie(svc),
	)

	// 3. groomroom_roast
	s.AddTool(
		mcplib.NewTool("groomroom_roast",
			mcplib.WithDescription("A light-hearted critique of a ticket's gaps, for retros"),
			mcplib.WithString("ticket_text", mcplib.Required(), mcplib.Description("Ticket body")),
			mcplib.WithString("title", mcplib.Description("Ticket summary line")),
			mcplib.WithString("ticket_id", mcplib.Description("Ticket key")),
		),
		handleRoast(svc),
	)

	// 4. groomroom_fields
	s.AddTool(
		mcplib.NewTool("groomroom_fields",
			mcplib.WithDescription("Extract the ticket's sections and report each field as present, placeholder or absent, plus the card type and its required fields"),
			mcplib.WithString("ticket_text", mcplib.Required(), mcplib.Description("Ticket body")),
			mcplib.WithString("title", mcplib.Description("Ticket summary line")),
			mcplib.WithString("type", mcplib.Description("Issue type from the tracker")),
		),
		handleFields(svc),
	)
}

func ticketFrom(request mcplib.CallToolRequest) (domain.Ticket, error) {
	body, err := request.RequireString("ticket_text")
	if err != nil {
		return domain.Ticket{}, err
	}
	return domain.Ticket{
		ID:    request.GetString("ticket_id", ""),
		Title: request.GetString("title", ""),
		Body:  body,
		Type:  request.GetString("type", ""),
	}, nil
}

func handleAnalyze(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		ticket, err := ticketFrom(request)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		var mode domain.Mode
		if m := request.GetString("mode", ""); m != "" {
			mode, err = domain.ParseMode(m)
			if err != nil {
				return errorResult(err.Error()), nil
			}
		}

		r, err := svc.Groom.Analyze(ctx, application.Request{Dir: svc.Dir, Ticket: ticket, Mode: mode})
		if err != nil {
			return errorResult(fmt.Sprintf("analysis failed: %v", err)), nil
		}

		if request.GetString("format", "json") == "md" {
			return textResult(report.RenderMarkdown(r, r.Mode)), nil
		}
		return jsonResult(r)
	}
}

func handleTestGenie(svc Services) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		criteria, err := request.RequireString("criteria")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		res, err := svc.TestGenie.Generate(svc.Dir, criteria, request.GetString("title", ""))
		if err != nil {
			return errorResult(fmt.Sprintf("testgenie failed: %v", err)), nil
		}

		if request.GetString("format", "json") == "md" {
			return textResult(res.Markdown()), nil
		}
		return jsonResult(res)
	}
}

func handleRoast(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		ticket, err := ticketFrom(request)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		roast, err := svc.Roast.Roast(ctx, svc.Dir, ticket)
		if err != nil {
			return errorResult(fmt.Sprintf("roast failed: %v", err)), nil
		}
		return textResult(roast.Markdown()), nil
	}
}

// fieldsReport is the groomroom_fields payload.
type fieldsReport struct {
	CardType domain.CardType            `json:"card_type"`
	Required []domain.FieldKey          `json:"required"`
	Fields   []domain.Field             `json:"fields"`
	Labels   map[string]string          `json:"labels"`
	Summary  map[domain.FieldStatus]int `json:"summary"`
}

func handleFields(svc Services) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		ticket, err := ticketFrom(request)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		st, err := svc.Groom.LoadSettings(svc.Dir)
		if err != nil {
			return errorResult(fmt.Sprintf("loading config: %v", err)), nil
		}

		fields := extract.New(st.Vocabulary).Extract(ticket.Text())
		ct := classify.Classify(ticket, fields, st.Vocabulary)

		out := fieldsReport{
			CardType: ct,
			Required: classify.RequiredFields(ct),
			Labels:   make(map[string]string, len(domain.AllFields)),
			Summary:  make(map[domain.FieldStatus]int),
		}
		for _, k := range domain.AllFields {
			f := fields.Get(k)
			out.Fields = append(out.Fields, f)
			out.Labels[string(k)] = k.Label()
			out.Summary[f.Status]++
		}
		return jsonResult(out)
	}
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// textResult returns a plain text content result.
func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
