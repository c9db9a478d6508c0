package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/workboard-api/internal/catalog"
	"github.com/yukikurage/workboard-api/internal/dto"
	apierrors "github.com/yukikurage/workboard-api/internal/errors"
	"github.com/yukikurage/workboard-api/internal/logging"
)

// ReportListPath is where unknown report links are sent
const ReportListPath = "/api/reports"

type ReportHandler struct {
	catalog  *catalog.Catalog
	resolver *catalog.Resolver
}

func NewReportHandler(reports *catalog.Catalog, resolver *catalog.Resolver) *ReportHandler {
	return &ReportHandler{
		catalog:  reports,
		resolver: resolver,
	}
}

// ListReports returns the catalog in display order
func (h *ReportHandler) ListReports(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"reports": dto.ToReportDTOs(h.catalog.List()),
	})
}

// GetReport returns a single report with its embed URL
func (h *ReportHandler) GetReport(c *gin.Context) {
	report, err := h.catalog.Lookup(c.Param("id"))
	if err != nil {
		respondError(c, err, "fetch report")
		return
	}

	c.JSON(http.StatusOK, dto.ToReportDTO(report))
}

// ResolveURL rewrites an arbitrary report link into its embed form
func (h *ReportHandler) ResolveURL(c *gin.Context) {
	source := strings.TrimSpace(c.Query("url"))
	if source == "" {
		apierrors.MissingField(c, "url")
		return
	}

	c.JSON(http.StatusOK, dto.ResolvedURLDTO{
		SourceURL: source,
		EmbedURL:  h.resolver.Resolve(source),
	})
}

// OpenReport redirects to the embeddable report. Unknown IDs fall back to the
// report list.
func (h *ReportHandler) OpenReport(c *gin.Context) {
	report, err := h.catalog.Lookup(c.Param("id"))
	if err != nil {
		if !errors.Is(err, catalog.ErrReportNotFound) {
			logging.Logger.WithError(err).Error("failed to look up report")
		}
		c.Redirect(http.StatusFound, ReportListPath)
		return
	}

	c.Redirect(http.StatusFound, report.EmbedURL)
}
