package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/groomroom/groomroom/internal/domain"
	"github.com/groomroom/groomroom/internal/logging"
)

const maxRoastLines = 6

// RoastService turns a grooming report into a light-hearted critique.
// The lines are deterministic; only the optional punch-line comes from
// the enricher.
type RoastService struct {
	groom    *GroomService
	enricher domain.Enricher
	log      *slog.Logger
}

func NewRoastService(configLoader domain.ConfigLoader, enricher domain.Enricher) *RoastService {
	return &RoastService{
		// The report itself is built without enrichment; the punch-line is the only LLM call.
		groom:    NewGroomService(configLoader, nil),
		enricher: enricher,
		log:      logging.New("roast"),
	}
}

// Roast is the critique for one ticket.
type Roast struct {
	TicketID  string        `json:"ticket_id,omitempty"`
	Title     string        `json:"title,omitempty"`
	Status    domain.Status `json:"status"`
	Coverage  int           `json:"coverage"`
	Opener    string        `json:"opener"`
	Lines     []string      `json:"lines"`
	PunchLine string        `json:"punch_line,omitempty"`
}

var gapJokes = map[domain.GapKind][]string{
	domain.GapMissingField: {
		"%s? Never heard of it, and neither has this ticket.",
		"The %s section went out for coffee and never came back.",
		"%s is missing. Bold strategy.",
	},
	domain.GapWeakField: {
		"%s is technically there, in the way a ghost is technically in the room.",
		"%s exists, but only just.",
	},
	domain.GapWeakCriterion: {
		"%s reads like a horoscope: everyone can agree it came true.",
		"%s has the testability of a vibe.",
		"QA will need a crystal ball for %s.",
	},
	domain.GapConflict: {
		"%s: the criteria are arguing and nobody invited a referee.",
		"%s want opposite things. Schrodinger would be proud.",
	},
	domain.GapMissingScenarios: {
		"%s are missing, so apparently nothing can go wrong.",
		"No %s. The happy path is very happy and very lonely.",
	},
	domain.GapEmptyInput: {
		"This ticket is a blank canvas. Minimalism, but for requirements.",
	},
}

var openers = map[domain.Status]string{
	domain.StatusReady:           "Annoyingly well groomed. There is little left to roast.",
	domain.StatusNeedsRefinement: "Close, but this ticket still needs a trip to the groomer.",
	domain.StatusNotReady:        "This ticket walked into refinement wearing pyjamas.",
}

// Roast analyses ticket and critiques its concrete gaps.
func (s *RoastService) Roast(ctx context.Context, dir string, ticket domain.Ticket) (*Roast, error) {
	st, err := s.groom.LoadSettings(dir)
	if err != nil {
		return nil, err
	}
	r := s.groom.analyze(ctx, st, ticket, domain.ModeSummary)

	out := &Roast{
		TicketID: r.TicketID,
		Title:    r.Title,
		Status:   r.Status,
		Coverage: r.Coverage(),
		Opener:   openers[r.Status],
		Lines:    RoastLines(r.Gaps),
	}

	if s.enricher != nil && st.Config.Enrichment.Enabled && !ticket.IsEmpty() {
		reply, err := callEnricher(ctx, s.enricher, st.Config.Enrichment, promptContext(ticket, r, "roast"))
		if err != nil {
			s.log.Warn("punch-line unavailable", "ticket", ticket.ID, "error", err)
		} else {
			out.PunchLine = punchLine(reply)
		}
	}
	return out, nil
}

// RoastLines maps gaps to joke lines. The template is picked by the gap's
// position among gaps of the same kind, so output is stable for a given report.
func RoastLines(gaps []domain.Gap) []string {
	lines := []string{}
	seen := make(map[domain.GapKind]int)
	for _, g := range gaps {
		if len(lines) == maxRoastLines {
			break
		}
		jokes := gapJokes[g.Kind]
		if len(jokes) == 0 || !g.IsConcrete() {
			continue
		}
		tmpl := jokes[seen[g.Kind]%len(jokes)]
		seen[g.Kind]++
		if strings.Contains(tmpl, "%s") {
			lines = append(lines, fmt.Sprintf(tmpl, g.Name))
		} else {
			lines = append(lines, tmpl)
		}
	}
	return lines
}

// Markdown renders the roast.
func (r *Roast) Markdown() string {
	var b strings.Builder
	name := r.Title
	if r.TicketID != "" {
		name = strings.TrimSpace(r.TicketID + " " + r.Title)
	}
	if name == "" {
		name = "Untitled ticket"
	}
	fmt.Fprintf(&b, "# EpicRoast: %s\n\n", name)
	fmt.Fprintf(&b, "%s (%s, %d%% coverage)\n", r.Opener, r.Status.Label(), r.Coverage)
	if len(r.Lines) > 0 {
		b.WriteString("\n")
		for _, l := range r.Lines {
			fmt.Fprintf(&b, "- %s\n", l)
		}
	}
	if r.PunchLine != "" {
		fmt.Fprintf(&b, "\n> %s\n", r.PunchLine)
	}
	return b.String()
}

func punchLine(reply string) string {
	for _, line := range strings.Split(reply, "\n") {
		line = strings.Trim(strings.TrimSpace(line), "\"`*")
		if line == "" {
			continue
		}
		if len(line) > 200 {
			line = line[:200]
		}
		return line
	}
	return ""
}
