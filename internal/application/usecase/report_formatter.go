package usecase

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/diillson/cf-analytics-report/internal/domain/entity"
)

var byteUnits = []string{"Bytes", "KB", "MB", "GB", "TB"}

// ReportFormatter renders an AccountReport as the plain-text report.
// Format has no side effects and never mutates its input.
type ReportFormatter struct {
	printer *message.Printer
}

func NewReportFormatter() *ReportFormatter {
	return &ReportFormatter{printer: message.NewPrinter(language.English)}
}

// Format gera o texto do relatório. O layout é fixo e começa com uma quebra de linha.
func (f *ReportFormatter) Format(report entity.AccountReport) string {
	stats := entity.TrafficSummary{}
	if report.AccountSummary != nil {
		stats = *report.AccountSummary
	}

	ranked := RankZones(report.ZoneReports)
	lines := make([]string, 0, len(ranked))
	for _, zr := range ranked {
		lines = append(lines, fmt.Sprintf("  %s: %d requests / %s", zr.Zone.Name, zr.Summary.Requests, FormatBytes(zr.Summary.Bytes)))
	}

	var b strings.Builder
	b.WriteString("\n")
	fmt.Fprintf(&b, "CLOUDFLARE ANALYTICS FOR %s\n", report.Account.Name)
	b.WriteString("========================================\n")
	fmt.Fprintf(&b, "Generated for: %s\n", report.Date.Display())
	b.WriteString("\n")
	b.WriteString("TRAFFIC\n")
	b.WriteString("-------\n")
	fmt.Fprintf(&b, "    Total Requests: %s\n", f.printer.Sprintf("%d", stats.Requests))
	fmt.Fprintf(&b, "    Cached Requests: %s\n", f.printer.Sprintf("%d", stats.CachedRequests))
	fmt.Fprintf(&b, "    Cache Rate: %s%%\n", CacheRate(stats.CachedRequests, stats.Requests))
	b.WriteString("\n")
	b.WriteString("BANDWIDTH\n")
	b.WriteString("---------\n")
	fmt.Fprintf(&b, "    Total Bandwidth: %s\n", FormatBytes(stats.Bytes))
	fmt.Fprintf(&b, "    Cached Bandwidth: %s\n", FormatBytes(stats.CachedBytes))
	fmt.Fprintf(&b, "    Cache Rate: %s%%\n", CacheRate(stats.CachedBytes, stats.Bytes))
	b.WriteString("\n")
	b.WriteString("ZONES ANALYTICS\n")
	b.WriteString("------------\n")
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n")

	return b.String()
}

// FormatBytes converte bytes para a maior unidade em que o valor fica >= 1 (até TB),
// com no máximo duas casas decimais e sem zeros à direita.
func FormatBytes(bytes uint64) string {
	if bytes == 0 {
		return "0 Bytes"
	}

	value := float64(bytes)
	i := 0
	for value >= 1024 && i < len(byteUnits)-1 {
		value /= 1024
		i++
	}

	rounded := math.Round(value*100) / 100
	return strconv.FormatFloat(rounded, 'f', -1, 64) + " " + byteUnits[i]
}

// CacheRate returns cached/total as a percentage with one decimal; "0.0" when total is 0.
func CacheRate(cached, total uint64) string {
	if total == 0 {
		return "0.0"
	}
	rate := float64(cached) / float64(total) * 100
	return strconv.FormatFloat(math.Round(rate*10)/10, 'f', 1, 64)
}

// RankZones keeps the zones with a summary, ordered by requests (desc), then name, then id.
func RankZones(zones []entity.ZoneReport) []entity.ZoneReport {
	ranked := make([]entity.ZoneReport, 0, len(zones))
	for _, zr := range zones {
		if zr.Summary != nil {
			ranked = append(ranked, zr)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Summary.Requests != b.Summary.Requests {
			return a.Summary.Requests > b.Summary.Requests
		}
		if a.Zone.Name != b.Zone.Name {
			return a.Zone.Name < b.Zone.Name
		}
		return a.Zone.ID < b.Zone.ID
	})

	return ranked
}
