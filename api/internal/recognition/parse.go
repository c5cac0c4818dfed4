package recognition

import (
	"regexp"
	"strings"

	"landmark-lens/api/internal/util"
)

var (
	reName    = regexp.MustCompile(`(?m)^NAME:[ \t]*(.*)$`)
	reHistory = regexp.MustCompile(`(?ms)^HISTORY:[ \t]*(.*)$`)

	// The steps end at the MAP_URL line, not at the end of the reply.
	reDirections = regexp.MustCompile(`(?ms)^DIRECTIONS:(.*?)(?:^MAP_URL:|\z)`)
	reMapURL     = regexp.MustCompile(`(?m)^MAP_URL:[ \t]*(.*)$`)
)

// ParseError reports a reply that lacks one of the expected markers.
type ParseError struct {
	Field string
}

func (e *ParseError) Error() string {
	return "reply has no " + e.Field + " field"
}

func parseLandmark(text string) (name, history string, err error) {
	text = util.StripCodeFences(text)

	nm := reName.FindStringSubmatch(text)
	if nm == nil || strings.TrimSpace(nm[1]) == "" {
		return "", "", &ParseError{Field: "NAME"}
	}
	hm := reHistory.FindStringSubmatch(text)
	if hm == nil {
		return "", "", &ParseError{Field: "HISTORY"}
	}
	return strings.TrimSpace(nm[1]), strings.TrimSpace(hm[1]), nil
}

func parseDirections(text string) (DirectionsInfo, error) {
	text = util.StripCodeFences(text)

	dm := reDirections.FindStringSubmatch(text)
	if dm == nil {
		return DirectionsInfo{}, &ParseError{Field: "DIRECTIONS"}
	}
	um := reMapURL.FindStringSubmatch(text)
	if um == nil || strings.TrimSpace(um[1]) == "" {
		return DirectionsInfo{}, &ParseError{Field: "MAP_URL"}
	}
	return DirectionsInfo{
		Directions: strings.TrimSpace(dm[1]),
		MapURL:     strings.TrimSpace(um[1]),
	}, nil
}

// DedupeSources keeps citations that carry both a URI and a title, once per
// URI, in the order they were first seen. The result is never nil.
func DedupeSources(cits []Citation) []Source {
	out := make([]Source, 0, len(cits))
	seen := make(map[string]struct{}, len(cits))
	for _, c := range cits {
		if c.URI == "" || c.Title == "" {
			continue
		}
		if _, ok := seen[c.URI]; ok {
			continue
		}
		seen[c.URI] = struct{}{}
		out = append(out, Source{Title: c.Title, URI: c.URI})
	}
	return out
}
