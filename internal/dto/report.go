package dto

import (
	"github.com/yukikurage/workboard-api/internal/models"
)

// ReportDTO represents a catalog report in API responses
type ReportDTO struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	SourceURL   string `json:"source_url"`
	EmbedURL    string `json:"embed_url"`
	Icon        string `json:"icon,omitempty"`
}

// ResolvedURLDTO is the answer to an ad-hoc resolve request
type ResolvedURLDTO struct {
	SourceURL string `json:"source_url"`
	EmbedURL  string `json:"embed_url"`
}

// ToReportDTO converts a ReportEntry model to ReportDTO
func ToReportDTO(report models.ReportEntry) ReportDTO {
	return ReportDTO{
		ID:          report.ID,
		Title:       report.Title,
		Description: report.Description,
		SourceURL:   report.SourceURL,
		EmbedURL:    report.EmbedURL,
		Icon:        report.Icon,
	}
}

// ToReportDTOs converts a slice of reports
func ToReportDTOs(reports []models.ReportEntry) []ReportDTO {
	dtos := make([]ReportDTO, len(reports))
	for i, report := range reports {
		dtos[i] = ToReportDTO(report)
	}
	return dtos
}
