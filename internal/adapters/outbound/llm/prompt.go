package llm

import (
	"fmt"
	"strings"

	"github.com/groomroom/groomroom/internal/domain"
)

const groomSystem = `You review Jira tickets for a refinement session.
Reply with a single JSON object and nothing else. Allowed keys:
  "story_rewrite": one user story sentence "As a <persona>, I want <goal>, so that <benefit>." using the ticket's own terms,
  "criteria": extra acceptance criteria, each with a trigger, an observable outcome and a pass/fail check,
  "notes": short open questions for the team.
Omit keys you have nothing for. Never invent product names that are not in the ticket.`

const roastSystem = `You write one short, good-natured joke about a Jira ticket's quality for a team retro.
Reply with a single line of plain text. No insults aimed at people.`

// Prompt returns the system and user messages for pc.
func Prompt(pc domain.PromptContext) (string, string) {
	var b strings.Builder
	if pc.TicketID != "" || pc.Title != "" {
		fmt.Fprintf(&b, "Ticket: %s\n", strings.TrimSpace(pc.TicketID+" "+pc.Title))
	}
	fmt.Fprintf(&b, "Card type: %s\nStatus: %s\n", pc.CardType, pc.Status.Label())
	if len(pc.MissingFields) > 0 {
		fmt.Fprintf(&b, "Missing sections: %s\n", strings.Join(pc.MissingFields, ", "))
	}
	if len(pc.WeakCriteria) > 0 {
		b.WriteString("Weak acceptance criteria:\n")
		for _, c := range pc.WeakCriteria {
			fmt.Fprintf(&b, "- %s\n", c)
		}
	}
	if pc.StoryRewrite != "" {
		fmt.Fprintf(&b, "Rule-based story suggestion: %s\n", pc.StoryRewrite)
	}
	fmt.Fprintf(&b, "\nTicket text:\n%s\n", pc.Text)

	if pc.Purpose == "roast" {
		return roastSystem, b.String()
	}
	return groomSystem, b.String()
}
