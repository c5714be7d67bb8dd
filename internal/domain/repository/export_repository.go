package repository

import (
	"github.com/diillson/campaign-attribution-go/internal/domain/entity"
)

// ExportRepository writes the campaign report to files.
type ExportRepository interface {
	ExportToXLSX(rows []entity.CampaignReportRow, filename, outputDir string) (string, error)
	ExportToCSV(rows []entity.CampaignReportRow, filename, outputDir string) (string, error)
	ExportToJSON(rows []entity.CampaignReportRow, filename, outputDir string) (string, error)
	ExportToPDF(rows []entity.CampaignReportRow, filename, outputDir string) (string, error)
}
