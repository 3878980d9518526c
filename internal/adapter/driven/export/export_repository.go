package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/diillson/cf-analytics-report/internal/domain/entity"
	"github.com/diillson/cf-analytics-report/internal/domain/repository"
	"github.com/jung-kurt/gofpdf"
)

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct {
	now func() time.Time
}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{now: time.Now}
}

// ExportToText grava os relatórios em texto, na mesma forma devolvida pelo HTTP.
func (r *ExportRepositoryImpl) ExportToText(reports []entity.AccountReport, texts []string, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "txt")
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(outputFilename, []byte(strings.Join(texts, "\n")), 0644); err != nil {
		return "", fmt.Errorf("error writing text file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

type zoneExport struct {
	ZoneID  string                 `json:"zone_id"`
	Zone    string                 `json:"zone"`
	Outcome string                 `json:"outcome"`
	Summary *entity.TrafficSummary `json:"summary,omitempty"`
	Error   string                 `json:"error,omitempty"`
}

type accountExport struct {
	AccountID string                 `json:"account_id"`
	Account   string                 `json:"account"`
	Date      string                 `json:"date"`
	Summary   *entity.TrafficSummary `json:"summary,omitempty"`
	Zones     []zoneExport           `json:"zones"`
}

func toExport(report entity.AccountReport) accountExport {
	out := accountExport{
		AccountID: report.Account.ID,
		Account:   report.Account.Name,
		Date:      report.Date.QueryString(),
		Summary:   report.AccountSummary,
		Zones:     make([]zoneExport, 0, len(report.ZoneReports)),
	}
	for _, zr := range report.ZoneReports {
		z := zoneExport{
			ZoneID:  zr.Zone.ID,
			Zone:    zr.Zone.Name,
			Outcome: zr.Outcome.String(),
			Summary: zr.Summary,
		}
		if zr.Err != nil {
			z.Error = zr.Err.Error()
		}
		out.Zones = append(out.Zones, z)
	}
	return out
}

func (r *ExportRepositoryImpl) ExportToJSON(reports []entity.AccountReport, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	data := make([]accountExport, 0, len(reports))
	for _, report := range reports {
		data = append(data, toExport(report))
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// ExportToCSV escreve uma linha por conta (zone vazio) seguida de uma linha por zona.
func (r *ExportRepositoryImpl) ExportToCSV(reports []entity.AccountReport, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	headers := []string{
		"Account ID", "Account", "Date", "Zone ID", "Zone", "Outcome",
		"Requests", "Cached Requests", "Request Cache Rate",
		"Bytes", "Cached Bytes", "Bandwidth Cache Rate", "Error",
	}
	if err := writer.Write(headers); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}

	for _, report := range reports {
		base := []string{report.Account.ID, report.Account.Name, report.Date.QueryString()}

		record := append(append([]string{}, base...), "", "", "")
		record = append(record, summaryColumns(report.AccountSummary)...)
		record = append(record, "")
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("error writing CSV record: %w", err)
		}

		for _, zr := range report.ZoneReports {
			errText := ""
			if zr.Err != nil {
				errText = zr.Err.Error()
			}
			record := append(append([]string{}, base...), zr.Zone.ID, zr.Zone.Name, zr.Outcome.String())
			record = append(record, summaryColumns(zr.Summary)...)
			record = append(record, errText)
			if err := writer.Write(record); err != nil {
				return "", fmt.Errorf("error writing CSV record: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("error flushing CSV file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func summaryColumns(s *entity.TrafficSummary) []string {
	if s == nil {
		return []string{"", "", "", "", "", ""}
	}
	return []string{
		strconv.FormatUint(s.Requests, 10),
		strconv.FormatUint(s.CachedRequests, 10),
		fmt.Sprintf("%.1f", s.RequestCacheRate()),
		strconv.FormatUint(s.Bytes, 10),
		strconv.FormatUint(s.CachedBytes, 10),
		fmt.Sprintf("%.1f", s.BandwidthCacheRate()),
	}
}

// ExportToPDF gera uma página por conta com o relatório em fonte monoespaçada.
func (r *ExportRepositoryImpl) ExportToPDF(reports []entity.AccountReport, texts []string, filename, outputDir string) (string, error) {
	if len(texts) != len(reports) {
		return "", fmt.Errorf("PDF export needs one text per report (got %d texts for %d reports)", len(texts), len(reports))
	}

	outputFilename, err := r.generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	bodyTextColor := [3]int{50, 50, 50}

	for i, report := range reports {
		pdf.AddPage()

		pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
		pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
		pdf.SetFont("Arial", "B", 14)
		accountName := report.Account.Name
		if len(accountName) > 80 {
			accountName = accountName[:77] + "..."
		}
		pdf.CellFormat(0, 12, tr(fmt.Sprintf("  %s", accountName)), "", 1, "L", true, 0, "")

		pdf.SetFont("Arial", "", 10)
		pdf.SetFillColor(240, 240, 240)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		pdf.CellFormat(0, 8, tr(fmt.Sprintf("  Account ID: %s  |  %s", report.Account.ID, report.Date.Display())), "", 1, "L", true, 0, "")
		pdf.Ln(6)

		pdf.SetFont("Courier", "", 9)
		pdf.MultiCell(190, 4.5, tr(strings.TrimLeft(texts[i], "\n")), "", "L", false)

		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		footerText := fmt.Sprintf("Generated by Cloudflare Analytics Report | %s", r.now().Format("2006-01-02"))
		pdf.CellFormat(0, 10, tr(footerText), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Page %d", i+1)), "", 0, "R", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := r.now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}
