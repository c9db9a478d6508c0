package catalog

import (
	"strings"

	"github.com/yukikurage/workboard-api/internal/constants"
)

const embeddedParam = "embedded"

// Resolver rewrites Looker Studio report URLs into their embeddable form.
type Resolver struct {
	base string
}

// NewResolver creates a Resolver that points short and full report links at
// embedBase. An empty base falls back to the Looker Studio embed endpoint.
func NewResolver(embedBase string) *Resolver {
	if embedBase == "" {
		embedBase = constants.DefaultEmbedBaseURL
	}
	return &Resolver{base: strings.TrimSuffix(embedBase, "/")}
}

var defaultResolver = NewResolver(constants.DefaultEmbedBaseURL)

// ResolveEmbedURL resolves sourceURL against the default embed endpoint.
func ResolveEmbedURL(sourceURL string) string {
	return defaultResolver.Resolve(sourceURL)
}

// Base returns the embed endpoint used for short and full report links.
func (r *Resolver) Base() string {
	return r.base
}

// Resolve returns the embed URL for sourceURL. Short links ("/s/<id>") and
// full links ("/reporting/<id>...") are re-rooted at the embed endpoint; any
// other URL is kept as is. URLs already under the embed endpoint only get
// their flag normalized. The result always carries exactly one
// embedded=true parameter, so resolving an embed URL returns it unchanged.
// The identifier is not validated.
func (r *Resolver) Resolve(sourceURL string) string {
	u := strings.TrimSuffix(stripEmbeddedParam(sourceURL), "/")

	if strings.HasPrefix(u, r.base+"/") {
		return withEmbeddedParam(u)
	}

	if _, id, ok := strings.Cut(u, "/s/"); ok {
		return withEmbeddedParam(r.base + "/s/" + id)
	}

	if _, id, ok := strings.Cut(u, "/reporting/"); ok {
		return withEmbeddedParam(r.base + "/reporting/" + id)
	}

	return withEmbeddedParam(u)
}

func withEmbeddedParam(u string) string {
	if strings.Contains(u, "?") {
		return u + "&" + embeddedParam + "=true"
	}
	return u + "?" + embeddedParam + "=true"
}

// stripEmbeddedParam drops every "embedded" query parameter and leaves the
// rest of the URL byte for byte.
func stripEmbeddedParam(u string) string {
	path, query, ok := strings.Cut(u, "?")
	if !ok {
		return u
	}

	kept := make([]string, 0, strings.Count(query, "&")+1)
	for _, param := range strings.Split(query, "&") {
		if param == "" {
			continue
		}
		key, _, _ := strings.Cut(param, "=")
		if key == embeddedParam {
			continue
		}
		kept = append(kept, param)
	}

	if len(kept) == 0 {
		return path
	}
	return path + "?" + strings.Join(kept, "&")
}
