package models

// ReportEntry describes an embeddable BI report. EmbedURL is derived from
// SourceURL when the catalog is built and is never set on its own.
type ReportEntry struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	SourceURL   string `json:"source_url"`
	EmbedURL    string `json:"embed_url"`
	Icon        string `json:"icon,omitempty"`
}
