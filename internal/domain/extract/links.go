package extract

import (
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/groomroom/groomroom/internal/domain"
)

var (
	markdownLink = regexp.MustCompile(`\[([^\]]*)\]\((https?://[^\s)]+)\)`)
	wikiLink     = regexp.MustCompile(`\[([^\]|]*)\|(https?://[^\s\]]+)\]`)
	bareURL      = regexp.MustCompile(`https?://[^\s<>()\[\]|"']+`)
)

type linkHit struct {
	url    string
	anchor string
	line   string
}

// DetectLinks scans every extracted section for design-tool URLs. A link
// is kept when its host is a known design host or design words surround
// it; confidence is Strong when the anchor or line names a design
// artifact. Each URL is reported once, from the first section in field
// order that carries it.
func DetectLinks(fields domain.ExtractedFields, vocab domain.Vocabulary) []domain.DesignLink {
	keys := make([]domain.FieldKey, 0, len(fields.Fields))
	for k := range fields.Fields {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return fieldOrder(keys[i]) < fieldOrder(keys[j]) })

	seen := make(map[string]bool)
	var out []domain.DesignLink
	for _, key := range keys {
		f := fields.Fields[key]
		if f.Content == "" {
			continue
		}
		for _, hit := range findLinks(f.Content) {
			if seen[hit.url] {
				continue
			}
			hostMatch := isDesignHost(hit.url, vocab.DesignHosts)
			anchorWords := domain.ContainsAny(hit.anchor, vocab.DesignWords)
			lineWords := domain.ContainsAny(stripURLs(hit.line), vocab.DesignWords)
			if !hostMatch && !anchorWords && !lineWords {
				continue
			}
			conf := domain.ConfidenceWeak
			if anchorWords || lineWords {
				conf = domain.ConfidenceStrong
			}
			seen[hit.url] = true
			out = append(out, domain.DesignLink{
				URL:        hit.url,
				Section:    key,
				Anchor:     hit.anchor,
				Confidence: conf,
			})
		}
	}
	return out
}

func findLinks(content string) []linkHit {
	var hits []linkHit
	for _, line := range strings.Split(content, "\n") {
		claimed := make(map[string]bool)
		for _, m := range markdownLink.FindAllStringSubmatch(line, -1) {
			u := trimURL(m[2])
			claimed[u] = true
			hits = append(hits, linkHit{url: u, anchor: strings.TrimSpace(m[1]), line: line})
		}
		for _, m := range wikiLink.FindAllStringSubmatch(line, -1) {
			u := trimURL(m[2])
			claimed[u] = true
			hits = append(hits, linkHit{url: u, anchor: strings.TrimSpace(m[1]), line: line})
		}
		for _, m := range bareURL.FindAllString(line, -1) {
			u := trimURL(m)
			if claimed[u] {
				continue
			}
			claimed[u] = true
			hits = append(hits, linkHit{url: u, line: line})
		}
	}
	return hits
}

func trimURL(u string) string {
	return strings.TrimRight(u, ".,;:!?")
}

func stripURLs(line string) string {
	return bareURL.ReplaceAllString(line, " ")
}

func isDesignHost(raw string, hosts []string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, h := range hosts {
		h = strings.ToLower(h)
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}

// fieldOrder sorts the description section first, then canonical fields.
func fieldOrder(k domain.FieldKey) int {
	if k == domain.FieldDescription {
		return -1
	}
	for i, f := range domain.AllFields {
		if f == k {
			return i
		}
	}
	return len(domain.AllFields)
}
