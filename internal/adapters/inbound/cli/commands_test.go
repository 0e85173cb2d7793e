package cli_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groomroom/groomroom/internal/adapters/inbound/cli"
	"github.com/groomroom/groomroom/internal/domain"
)

const checkoutStory = `As a returning shopper, I want to save my card at checkout, so that I can pay faster next time.

Acceptance Criteria:
- Given a signed-in shopper, when they tick "Save card" and pay, then the card appears under Saved cards
- Works as expected
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := cli.NewRootCmdForTest()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestVersionCmd(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "groomroom "))
}

func TestAnalyzeCmd_JSON(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "ticket.txt", checkoutStory)

	out, err := run(t, "analyze", "--dir", dir, "--file", file, "--id", "SHOP-9", "--json")
	require.NoError(t, err)

	var r domain.GroomReport
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, "SHOP-9", r.TicketID)
	assert.Equal(t, domain.CardStory, r.CardType)
	assert.Equal(t, domain.ModeActionable, r.Mode)
	require.NotNil(t, r.Enrichment)
	assert.Equal(t, domain.EnrichmentDisabled, r.Enrichment.Status)
}

func TestAnalyzeCmd_RecordsHistory(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, "analyze", "--dir", dir, "--id", "SHOP-9", checkoutStory)
	require.NoError(t, err)

	out, err := run(t, "analyze", "--dir", dir, "--history")
	require.NoError(t, err)
	assert.Contains(t, out, "Run History")
	assert.Contains(t, out, "SHOP-9")
}

func TestAnalyzeCmd_NoHistory(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, "analyze", "--dir", dir, "--no-history", checkoutStory)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, ".groomroom", "history", "runs.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestAnalyzeCmd_Markdown(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, "analyze", "--dir", dir, "--markdown", "--mode", "summary", checkoutStory)
	require.NoError(t, err)
	assert.Contains(t, out, "#")
}

func TestAnalyzeCmd_ConfigModeApplies(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, t.TempDir(), "custom.yaml", "mode: insight\n")

	out, err := run(t, "--config", cfg, "analyze", "--dir", dir, "--json", checkoutStory)
	require.NoError(t, err)

	var r domain.GroomReport
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, domain.ModeInsight, r.Mode)
}

func TestAnalyzeCmd_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no input", []string{"analyze", "--dir", dir}, "no ticket text"},
		{"unknown mode", []string{"analyze", "--dir", dir, "--mode", "verbose", "x"}, "unknown mode"},
		{"missing file", []string{"analyze", "--dir", dir, "--file", filepath.Join(dir, "nope.txt")}, "reading"},
		{"jira not configured", []string{"analyze", "--dir", dir, "--jira", "SHOP-1"}, "not configured"},
		{"bad log level", []string{"--log-level", "loud", "analyze", "--dir", dir, "x"}, "unknown log level"},
		{"bad log format", []string{"--log-format", "xml", "analyze", "--dir", dir, "x"}, "unknown log format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if strings.Contains(tt.name, "jira") {
				t.Setenv("JIRA_BASE_URL", "")
				t.Setenv("JIRA_EMAIL", "")
				t.Setenv("JIRA_API_TOKEN", "")
			}
			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestBatchCmd(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "tickets.yaml", `tickets:
  - id: SHOP-1
    title: Save card
    body: |
      As a returning shopper, I want to save my card, so that I can pay faster.
      Acceptance Criteria:
      - Given a signed-in shopper, when they pay, then the card is saved
  - id: SHOP-2
    body: ""
`)

	out, err := run(t, "batch", file, "--dir", dir, "--json", "--parallel", "2")
	require.NoError(t, err)

	var reports []domain.GroomReport
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 2)
	assert.Equal(t, "SHOP-1", reports[0].TicketID)
	assert.Equal(t, "SHOP-2", reports[1].TicketID)
	assert.Equal(t, domain.StatusNotReady, reports[1].Status)

	out, err = run(t, "batch", file, "--dir", dir, "--no-history")
	require.NoError(t, err)
	assert.Contains(t, out, "2 tickets")
}

func TestBatchCmd_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "tickets.yaml", "tickets: []\n")

	_, err := run(t, "batch", file, "--dir", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lists no tickets")
}

func TestTestGenieCmd(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, "testgenie", "--dir", dir, "--title", "Saved cards",
		"Given a signed-in shopper, when they pay, then the card is saved")
	require.NoError(t, err)
	assert.Contains(t, out, "# TestGenie: Saved cards")
	assert.Contains(t, out, "## Positive")
}

func TestTestGenieCmd_EmptyCriteria(t *testing.T) {
	_, err := run(t, "testgenie", "--dir", t.TempDir())
	assert.Error(t, err)
}

func TestRoastCmd(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, "roast", "--dir", dir, "--title", "Dashboard", "Make the dashboard better.")
	require.NoError(t, err)
	assert.Contains(t, out, "# EpicRoast")
}

func TestFieldsCmd(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, "fields", "--dir", dir, "--json", checkoutStory)
	require.NoError(t, err)

	var payload struct {
		CardType domain.CardType   `json:"card_type"`
		Required []domain.FieldKey `json:"required"`
		Fields   []domain.Field    `json:"fields"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Equal(t, domain.CardStory, payload.CardType)
	assert.Contains(t, payload.Required, domain.FieldAcceptanceCriteria)
	assert.Len(t, payload.Fields, len(domain.AllFields))

	out, err = run(t, "fields", "--dir", dir, checkoutStory)
	require.NoError(t, err)
	assert.Contains(t, out, "Present")
}

func TestAnalyzeCmd_LogFile(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "groomroom.log")

	_, err := run(t, "--log-level", "debug", "--log-file", logPath, "analyze", "--dir", dir, "--no-history", checkoutStory)
	require.NoError(t, err)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "component=groom")
}

func TestAnalyzeCmd_JiraIsCached(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"key": "SHOP-5",
			"fields": map[string]any{
				"summary":     "Save card at checkout",
				"description": checkoutStory,
				"issuetype":   map[string]any{"name": "Story"},
			},
		})
	}))
	defer srv.Close()

	t.Setenv("JIRA_BASE_URL", srv.URL)
	t.Setenv("JIRA_EMAIL", "po@acme.test")
	t.Setenv("JIRA_API_TOKEN", "secret")

	dir := t.TempDir()
	for i := 0; i < 2; i++ {
		out, err := run(t, "analyze", "--dir", dir, "--jira", "SHOP-5", "--json", "--no-history")
		require.NoError(t, err)

		var r domain.GroomReport
		require.NoError(t, json.Unmarshal([]byte(out), &r))
		assert.Equal(t, "SHOP-5", r.TicketID)
		assert.Equal(t, "Save card at checkout", r.Title)
	}
	assert.Equal(t, int32(1), calls.Load())

	_, err := run(t, "analyze", "--dir", dir, "--jira", "SHOP-5", "--refresh", "--no-history")
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestBatchCmd_Backlog(t *testing.T) {
	out, err := run(t, "batch", "../../../../testdata/tickets/backlog.yaml", "--dir", t.TempDir(), "--json", "--no-history")
	require.NoError(t, err)

	var reports []domain.GroomReport
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 3)

	want := []domain.Status{domain.StatusReady, domain.StatusNeedsRefinement, domain.StatusNotReady}
	for i, r := range reports {
		assert.Equal(t, want[i], r.Status, r.TicketID)
	}
}

func TestAnalyzeCmd_FixtureFiles(t *testing.T) {
	tests := []struct {
		file string
		want domain.Status
	}{
		{"ready-story.txt", domain.StatusReady},
		{"filter-story.txt", domain.StatusNeedsRefinement},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			out, err := run(t, "analyze", "--dir", t.TempDir(), "--no-history", "--json",
				"--file", filepath.Join("../../../../testdata/tickets", tt.file))
			require.NoError(t, err)

			var r domain.GroomReport
			require.NoError(t, json.Unmarshal([]byte(out), &r))
			assert.Equal(t, tt.want, r.Status)
		})
	}
}
