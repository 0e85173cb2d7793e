package domain

import (
	"sort"
	"strings"
)

// VocabularyVersion identifies the built-in lookup tables. Bump it whenever a
// default table changes so reports can be traced to the tables that produced them.
const VocabularyVersion = "2025.2"

// VaguePhrase is one banned generic phrase.
type VaguePhrase struct {
	Phrase string    `yaml:"phrase" json:"phrase"`
	Kind   VagueKind `yaml:"kind"   json:"kind"`
}

// Vocabulary carries every phrase table the analysis stages consult.
// Built from DefaultVocabulary merged with user overrides and passed
// explicitly into each stage.
type Vocabulary struct {
	Version string

	// Extraction
	HeadingSynonyms map[FieldKey][]string
	Placeholders    []string

	// Links
	DesignHosts []string
	DesignWords []string

	// Classification
	TypeAliases map[string]CardType
	BugMarkers  []string
	TaskVerbs   []string

	// Criteria
	TriggerMarkers     []string
	ImplicitTriggers   []string
	OutcomeMarkers     []string
	PassFailMarkers    []string
	VaguePhrases       []VaguePhrase
	ImmediateMarkers   []string
	DelayedMarkers     []string
	OppositeOutcomes   [][2]string
	PerformanceMarkers []string
	ValidationMarkers  []string
	FailureMarkers     []string

	// Weak-area checks
	AdaMechanisms []string
	Brands        []string

	// Synthesis
	Personas     []string
	UIMarkers    []string
	GenericNouns []string
	StopWords    []string
	VerbForms    map[string]string
}

// DefaultVocabulary returns the built-in tables.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Version: VocabularyVersion,
		HeadingSynonyms: map[FieldKey][]string{
			FieldUserStory:             {"user story", "story", "story statement", "user story statement", "description / user story"},
			FieldAcceptanceCriteria:    {"acceptance criteria", "ac", "acs", "criteria", "acceptance criterion", "definition of done", "success criteria"},
			FieldTestScenarios:         {"test scenarios", "test scenario", "test cases", "test case", "testing scenarios", "qa scenarios", "test plan", "testing notes"},
			FieldImplementationDetails: {"implementation details", "implementation", "implementation notes", "technical details", "tech details", "dev notes", "technical notes"},
			FieldArchitecturalSolution: {"architectural solution", "architecture", "architecture solution", "solution design", "technical design", "architectural approach"},
			FieldAdaCriteria:           {"ada criteria", "ada", "accessibility criteria", "accessibility", "a11y", "wcag", "accessibility requirements"},
			FieldBrands:                {"brands", "brand", "brand(s)", "applicable brands", "sites"},
			FieldComponents:            {"components", "component", "component(s)", "affected components", "modules"},
			FieldAgileTeam:             {"agile team", "team", "squad", "scrum team", "owning team"},
			FieldStoryPoints:           {"story points", "story point", "points", "estimate", "estimation", "sp"},
			FieldCurrentBehaviour:      {"current behaviour", "current behavior", "actual behaviour", "actual behavior", "actual result", "observed behaviour", "observed behavior"},
			FieldStepsToReproduce:      {"steps to reproduce", "steps to recreate", "repro steps", "reproduction steps"},
			FieldExpectedBehaviour:     {"expected behaviour", "expected behavior", "expected result", "expected results", "expected outcome"},
			FieldEnvironment:           {"environment", "environments", "env", "browser / device", "device", "platform"},
			FieldLinksToStory:          {"links to story", "link to story", "related story", "linked story", "parent story", "related stories"},
			FieldSeverityPriority:      {"severity / priority", "severity/priority", "severity", "priority", "severity and priority"},
			FieldOutcomeDefinition:     {"outcome definition", "outcome", "definition of outcome", "expected deliverable", "deliverable", "goal"},
			FieldDependencies:          {"dependencies", "dependency", "depends on", "blocked by", "prerequisites"},
		},
		Placeholders: []string{"tbd", "tba", "n/a", "na", "todo", "to do", "none", "pending", "to be determined", "to be defined", "wip", "-", "?", "xxx", "placeholder", "coming soon"},

		DesignHosts: []string{"figma.com", "sketch.com", "invisionapp.com", "zeplin.io", "xd.adobe.com", "miro.com", "framer.com", "balsamiq.cloud", "lucid.app"},
		DesignWords: []string{"figma", "design", "designs", "mockup", "mockups", "mock-up", "prototype", "wireframe", "wireframes", "comp", "comps", "ux", "ui spec", "redline", "sketch", "zeplin", "invision"},

		TypeAliases: map[string]CardType{
			"story": CardStory, "user story": CardStory,
			"bug": CardBug, "defect": CardBug, "incident": CardBug,
			"task": CardTask, "sub-task": CardTask, "subtask": CardTask, "chore": CardTask, "spike": CardTask,
			"feature": CardFeature, "epic": CardFeature, "improvement": CardFeature, "new feature": CardFeature,
		},
		BugMarkers: []string{"current behaviour", "current behavior", "steps to reproduce", "actual behaviour", "actual behavior", "actual result"},
		TaskVerbs:  []string{"enable", "configure", "document", "set up", "setup", "migrate", "upgrade", "install", "provision", "rotate", "archive", "deprecate", "update", "remove", "clean up", "investigate", "automate"},

		TriggerMarkers:   []string{"when", "if", "given", "after", "upon", "once", "whenever", "while", "before"},
		ImplicitTriggers: []string{"on click", "on tap", "on submit", "on load", "on hover", "on focus", "on change", "on select", "on save", "clicking", "tapping", "selecting", "submitting", "entering", "typing", "choosing", "pressing", "hovering", "scrolling", "uploading", "saving"},
		OutcomeMarkers: []string{
			"then", "shows", "show", "displays", "display", "displayed", "returns", "receives", "updates", "updated",
			"appears", "redirects", "navigates", "renders", "shown", "saved", "sends", "sent", "creates", "created",
			"removes", "removed", "hides", "hidden", "visible", "enabled", "disabled", "is able to", "can see",
			"lists", "opens", "closes", "triggers", "stores", "emits", "highlights", "filters", "sorts", "loads",
		},
		PassFailMarkers: []string{"success", "successful", "successfully", "error", "errors", "fails", "failed", "failure", "invalid", "valid", "rejected", "accepted", "denied", "confirmation", "succeeds"},
		VaguePhrases: []VaguePhrase{
			{"should match figma", VagueMatchesDesign},
			{"matches figma", VagueMatchesDesign},
			{"match figma", VagueMatchesDesign},
			{"matches the design", VagueMatchesDesign},
			{"match the design", VagueMatchesDesign},
			{"matches design", VagueMatchesDesign},
			{"match design", VagueMatchesDesign},
			{"matches the mockup", VagueMatchesDesign},
			{"as per design", VagueMatchesDesign},
			{"per design", VagueMatchesDesign},
			{"per figma", VagueMatchesDesign},
			{"pixel perfect", VagueMatchesDesign},
			{"looks like the design", VagueMatchesDesign},
			{"works as expected", VagueAsExpected},
			{"behaves as expected", VagueAsExpected},
			{"functions as expected", VagueAsExpected},
			{"as expected", VagueAsExpected},
			{"works correctly", VagueWorksCorrectly},
			{"work correctly", VagueWorksCorrectly},
			{"functions correctly", VagueWorksCorrectly},
			{"works fine", VagueWorksCorrectly},
			{"works well", VagueWorksCorrectly},
			{"as designed", VagueAsDesigned},
			{"properly", VagueProperly},
			{"correctly", VagueCorrectly},
			{"user friendly", VagueUserFriendly},
			{"user-friendly", VagueUserFriendly},
			{"intuitive", VagueUserFriendly},
			{"seamless", VagueUserFriendly},
			{"quickly", VagueFast},
			{"fast", VagueFast},
			{"snappy", VagueFast},
		},
		ImmediateMarkers: []string{"immediately", "instantly", "instant", "synchronously", "synchronous", "in real time", "real-time", "right away", "without delay", "at once", "without waiting"},
		DelayedMarkers:   []string{"delay", "delayed", "asynchronously", "asynchronous", "eventually", "later", "queued", "in the background", "batch", "next day", "overnight"},
		OppositeOutcomes: [][2]string{
			{"enabled", "disabled"},
			{"shows", "hides"},
			{"visible", "hidden"},
			{"allowed", "blocked"},
			{"required", "optional"},
			{"accepted", "rejected"},
			{"expanded", "collapsed"},
			{"displayed", "hidden"},
		},
		PerformanceMarkers: []string{"fast", "quickly", "quick", "immediately", "instantly", "performance", "load time", "loads", "latency", "responsive", "snappy", "slow", "delay", "timeout"},
		ValidationMarkers:  []string{"invalid", "valid", "validation", "required", "must", "cannot", "can't", "only", "limit", "maximum", "minimum", "empty", "format", "reject", "rejected", "not allowed", "mandatory"},
		FailureMarkers:     []string{"error", "fail", "fails", "failure", "timeout", "unavailable", "offline", "network", "server", "outage", "retry", "exception", "500", "api"},

		AdaMechanisms: []string{"aria", "keyboard", "screen reader", "screenreader", "focus", "contrast", "alt text", "alt-text", "wcag", "tab order", "tabindex", "voiceover", "nvda", "jaws", "label", "announce", "role="},
		Brands:        nil,

		Personas: []string{"shopper", "customer", "admin", "administrator", "editor", "agent", "guest", "member", "visitor", "merchant", "buyer", "seller", "subscriber", "patient", "student", "teacher", "operator", "manager", "developer", "reviewer", "author", "driver", "rider", "traveller", "traveler", "user"},
		UIMarkers: []string{
			"button", "page", "screen", "modal", "dialog", "form", "field", "click", "tap", "layout", "grid", "ui",
			"dropdown", "menu", "link", "icon", "banner", "tab", "checkbox", "input", "tooltip", "carousel", "header",
			"footer", "navigation", "nav", "toggle", "slider", "card", "popup", "pop-up", "figma", "css", "responsive",
			"mobile", "desktop", "viewport", "font", "colour", "color", "image", "select", "filter",
		},
		GenericNouns: []string{
			"user", "users", "system", "page", "feature", "story", "ticket", "data", "thing", "things", "item", "stuff",
			"application", "app", "functionality", "function", "value", "process", "option", "options", "information",
			"details", "requirement", "requirements", "work", "change", "changes", "issue", "task", "team", "able",
			"criteria", "acceptance", "scenario", "scenarios", "test", "tests", "behaviour", "behavior", "expected",
			"current", "steps", "reproduce", "environment", "points", "implementation", "architecture", "solution",
			"components", "component", "brands", "brand", "agile", "should", "would", "could", "want", "need",
			"given", "when", "then", "that", "this", "with", "from", "into", "have", "will", "must", "shall",
		},
		StopWords: []string{
			"a", "an", "the", "and", "or", "but", "to", "of", "in", "on", "at", "by", "for", "with", "as", "is", "are",
			"be", "been", "being", "was", "were", "it", "its", "i", "me", "my", "we", "our", "you", "your", "they",
			"their", "so", "that", "this", "these", "those", "there", "here", "can", "do", "does", "did", "not", "no",
			"yes", "if", "when", "then", "than", "also", "any", "all", "some", "each", "every", "more", "most", "less",
			"very", "just", "only", "into", "onto", "from", "out", "up", "down", "over", "under", "after", "before",
			"about", "which", "who", "whom", "what", "where", "why", "how", "should", "would", "could", "will", "shall",
			"must", "may", "might", "want", "need", "like", "get", "gets", "got", "make", "makes", "made", "use",
			"used", "using", "able", "order", "per", "via", "etc", "e.g", "i.e", "tbd", "n/a", "have", "has", "had",
			"them", "him", "her", "his", "hers", "itself", "such", "same", "other", "another", "both", "either",
			"neither", "while", "upon", "once", "given", "without", "within", "between", "through", "during",
		},
		VerbForms: map[string]string{
			"selecting": "selects", "clicking": "clicks", "tapping": "taps", "entering": "enters", "typing": "types",
			"saving": "saves", "submitting": "submits", "changing": "changes", "choosing": "chooses",
			"uploading": "uploads", "scrolling": "scrolls", "hovering": "hovers", "opening": "opens",
			"closing": "closes", "removing": "removes", "adding": "adds", "updating": "updates",
			"creating": "creates", "deleting": "deletes", "filtering": "filters", "sorting": "sorts",
			"searching": "searches", "pressing": "presses", "navigating": "navigates", "loading": "loads",
			"applying": "applies", "toggling": "toggles", "dragging": "drags", "dropping": "drops",
			"logging": "logs", "signing": "signs", "checking": "checks", "editing": "edits", "viewing": "views",
			"placing": "places", "paying": "pays", "booking": "books", "sharing": "shares", "downloading": "downloads",
		},
	}
}

// HeadingIndex returns a lookup from normalised heading text to field key.
// When two fields claim the same synonym the first in AllFields order wins.
func (v Vocabulary) HeadingIndex() map[string]FieldKey {
	idx := make(map[string]FieldKey)
	for _, key := range AllFields {
		for _, syn := range v.HeadingSynonyms[key] {
			norm := NormalizeLabel(syn)
			if _, taken := idx[norm]; !taken {
				idx[norm] = key
			}
		}
	}
	return idx
}

// SortedVaguePhrases returns vague phrases longest first so that
// "works correctly" wins over "correctly".
func (v Vocabulary) SortedVaguePhrases() []VaguePhrase {
	out := make([]VaguePhrase, len(v.VaguePhrases))
	copy(out, v.VaguePhrases)
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i].Phrase) > len(out[j].Phrase)
	})
	return out
}

// NormalizeLabel lowercases s and collapses internal whitespace.
func NormalizeLabel(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
