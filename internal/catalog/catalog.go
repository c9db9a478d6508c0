package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/workboard-api/internal/models"
)

var (
	ErrReportNotFound    = errors.New("report not found")
	ErrReportIDRequired  = errors.New("report id is required")
	ErrDuplicateReportID = errors.New("duplicate report id")
	ErrSourceURLRequired = errors.New("report source url is required")
)

// Definition is the static description of a report before its embed URL is
// derived.
type Definition struct {
	ID          string
	Title       string
	Description string
	SourceURL   string
	Icon        string
}

// Catalog is an immutable set of embeddable reports keyed by ID.
type Catalog struct {
	entries map[string]models.ReportEntry
	order   []string
}

// New builds a catalog from defs, deriving each embed URL with resolver.
func New(resolver *Resolver, defs []Definition) (*Catalog, error) {
	if resolver == nil {
		resolver = defaultResolver
	}

	c := &Catalog{
		entries: make(map[string]models.ReportEntry, len(defs)),
		order:   make([]string, 0, len(defs)),
	}

	for _, def := range defs {
		id := strings.TrimSpace(def.ID)
		if id == "" {
			return nil, ErrReportIDRequired
		}
		if _, exists := c.entries[id]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateReportID, id)
		}
		if strings.TrimSpace(def.SourceURL) == "" {
			return nil, fmt.Errorf("%w: %s", ErrSourceURLRequired, id)
		}

		c.entries[id] = models.ReportEntry{
			ID:          id,
			Title:       def.Title,
			Description: def.Description,
			SourceURL:   def.SourceURL,
			EmbedURL:    resolver.Resolve(def.SourceURL),
			Icon:        def.Icon,
		}
		c.order = append(c.order, id)
	}

	return c, nil
}

// Lookup returns the report registered under id.
func (c *Catalog) Lookup(id string) (models.ReportEntry, error) {
	entry, ok := c.entries[id]
	if !ok {
		return models.ReportEntry{}, ErrReportNotFound
	}
	return entry, nil
}

// List returns every report in definition order.
func (c *Catalog) List() []models.ReportEntry {
	entries := make([]models.ReportEntry, 0, len(c.order))
	for _, id := range c.order {
		entries = append(entries, c.entries[id])
	}
	return entries
}

// Len returns the number of reports in the catalog.
func (c *Catalog) Len() int {
	return len(c.order)
}

// DefaultDefinitions returns the Looker Studio reports shipped with the
// dashboard.
func DefaultDefinitions() []Definition {
	return []Definition{
		{
			ID:          "looker-general",
			Title:       "General Report",
			Description: "Overview of the main performance indicators.",
			SourceURL:   "https://lookerstudio.google.com/embed/reporting/e174ad99-d59e-4495-be03-448de13f09b4/page/p_trqal6aapd",
			Icon:        "chart-bar",
		},
		{
			ID:          "looker-ventas",
			Title:       "Sales Analysis",
			Description: "Detailed sales figures and commercial projections.",
			SourceURL:   "https://lookerstudio.google.com/reporting/TU-ID-DE-INFORME-2/page/tuPagina",
			Icon:        "currency-dollar",
		},
		{
			ID:          "looker-usuarios",
			Title:       "User Data",
			Description: "Demographic and behavioural analysis of users.",
			SourceURL:   "https://lookerstudio.google.com/reporting/TU-ID-DE-INFORME-3/page/tuPagina",
			Icon:        "user-group",
		},
		{
			ID:          "looker-actividad",
			Title:       "Recent Activity",
			Description: "Monitoring of recent activity and notable system events.",
			SourceURL:   "https://lookerstudio.google.com/reporting/TU-ID-DE-INFORME-4/page/tuPagina",
			Icon:        "clock",
		},
		{
			ID:          "looker-ejemplo",
			Title:       "Example Report",
			Description: "Example using a short Looker Studio link.",
			SourceURL:   "https://lookerstudio.google.com/s/p3C951mk4xQ",
			Icon:        "chart-bar",
		},
	}
}
