package repository

import (
	"github.com/diillson/cf-analytics-report/internal/domain/entity"
)

type ExportRepository interface {
	ExportToText(reports []entity.AccountReport, texts []string, filename, outputDir string) (string, error)
	ExportToJSON(reports []entity.AccountReport, filename, outputDir string) (string, error)
	ExportToCSV(reports []entity.AccountReport, filename, outputDir string) (string, error)
	ExportToPDF(reports []entity.AccountReport, texts []string, filename, outputDir string) (string, error)
}
