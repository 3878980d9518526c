package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/diillson/cf-analytics-report/internal/domain/entity"
	"github.com/diillson/cf-analytics-report/internal/domain/repository"
	"github.com/diillson/cf-analytics-report/internal/shared/types"
	"github.com/diillson/cf-analytics-report/pkg/metrics"
)

// ReportUseCase handles interactive and scheduled report delivery.
type ReportUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	mailRepo      repository.MailRepository
	exportRepo    repository.ExportRepository
	aggregator    *AnalyticsAggregator
	formatter     *ReportFormatter
	console       types.ConsoleInterface
	metrics       *metrics.Metrics
	config        *types.Config
}

// NewReportUseCase creates a new report use case. mailRepo and exportRepo may be nil
// when the caller never sends or exports.
func NewReportUseCase(
	analyticsRepo repository.AnalyticsRepository,
	mailRepo repository.MailRepository,
	exportRepo repository.ExportRepository,
	console types.ConsoleInterface,
	m *metrics.Metrics,
	config *types.Config,
	clock Clock,
) *ReportUseCase {
	return &ReportUseCase{
		analyticsRepo: analyticsRepo,
		mailRepo:      mailRepo,
		exportRepo:    exportRepo,
		aggregator:    NewAnalyticsAggregator(analyticsRepo, console, m, clock),
		formatter:     NewReportFormatter(),
		console:       console,
		metrics:       m,
		config:        config,
	}
}

// RunInteractive gera o relatório de todas as contas acessíveis.
func (uc *ReportUseCase) RunInteractive(ctx context.Context) (string, []entity.AccountResult, error) {
	return uc.RunInteractiveFor(ctx, nil)
}

// RunInteractiveFor é o RunInteractive restrito às contas em accountIDs (vazio = todas).
// Só a falha na listagem de contas é fatal; cada conta que falha é registrada e pulada.
func (uc *ReportUseCase) RunInteractiveFor(ctx context.Context, accountIDs []string) (string, []entity.AccountResult, error) {
	started := time.Now()

	accounts, err := uc.analyticsRepo.ListAccounts(ctx)
	if err != nil {
		err = fmt.Errorf("failed to list accounts: %w", err)
		uc.console.LogError("%v", err)
		uc.metrics.ObserveRun(metrics.ModeInteractive, started, err)
		return "", nil, err
	}

	if len(accountIDs) > 0 {
		accounts = uc.filterAccounts(accounts, accountIDs)
		if len(accounts) == 0 {
			uc.metrics.ObserveRun(metrics.ModeInteractive, started, types.ErrNoMatchingAccounts)
			return "", nil, types.ErrNoMatchingAccounts
		}
	}

	results := make([]entity.AccountResult, 0, len(accounts))
	texts := make([]string, 0, len(accounts))

	for _, account := range accounts {
		result := uc.processAccount(ctx, account)
		if result.Err != nil {
			uc.console.LogError("Error processing account %s (%s): %v", account.Name, account.ID, result.Err)
			uc.metrics.AccountFailed()
		} else {
			texts = append(texts, result.Text)
		}
		results = append(results, result)
	}

	uc.metrics.ObserveRun(metrics.ModeInteractive, started, nil)
	return strings.Join(texts, "\n"), results, nil
}

func (uc *ReportUseCase) processAccount(ctx context.Context, account entity.Account) entity.AccountResult {
	report, err := uc.aggregator.Aggregate(ctx, account)
	if err != nil {
		return entity.AccountResult{Account: account, Err: err}
	}
	return entity.AccountResult{
		Account: account,
		Report:  &report,
		Text:    uc.formatter.Format(report),
	}
}

func (uc *ReportUseCase) filterAccounts(accounts []entity.Account, ids []string) []entity.Account {
	byID := make(map[string]entity.Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}

	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			uc.console.LogWarning("Account '%s' not found for this token", id)
			continue
		}
		wanted[id] = true
	}

	// mantém a ordem do catálogo
	filtered := make([]entity.Account, 0, len(wanted))
	for _, a := range accounts {
		if wanted[a.ID] {
			filtered = append(filtered, a)
		}
	}
	return filtered
}

// RunScheduled gera o relatório da conta configurada e envia por email.
// Qualquer falha no pipeline impede o envio; falha no envio vira *types.DeliveryError.
func (uc *ReportUseCase) RunScheduled(ctx context.Context) error {
	started := time.Now()
	err := uc.runScheduled(ctx)
	uc.metrics.ObserveRun(metrics.ModeScheduled, started, err)
	return err
}

func (uc *ReportUseCase) runScheduled(ctx context.Context) error {
	if err := uc.config.ValidateScheduled(); err != nil {
		uc.console.LogError("Scheduled report not configured: %v", err)
		return err
	}
	if uc.mailRepo == nil {
		return fmt.Errorf("scheduled report: no mail sender configured")
	}

	account := entity.Account{
		ID:   uc.config.Scheduled.AccountID,
		Name: uc.config.Scheduled.AccountName,
	}

	report, err := uc.aggregator.Aggregate(ctx, account)
	if err != nil {
		uc.console.LogError("Scheduled report for %s failed: %v", account.Name, err)
		uc.metrics.AccountFailed()
		return err
	}

	msg := entity.EmailMessage{
		FromName:    uc.config.Email.SenderName,
		FromAddress: uc.config.Email.SenderAddress,
		To:          uc.config.Email.Recipient,
		Subject:     uc.config.Email.Subject,
		Body:        uc.formatter.Format(report),
	}

	if err := uc.mailRepo.Send(ctx, msg); err != nil {
		uc.metrics.EmailSent(err)
		deliveryErr := &types.DeliveryError{Err: err}
		uc.console.LogError("%v", deliveryErr)
		return deliveryErr
	}

	uc.metrics.EmailSent(nil)
	uc.console.LogSuccess("Report for %s sent to %s", account.Name, msg.To)
	return nil
}

// RunReport executa o modo interativo para a CLI: exibe o resumo, gráficos opcionais,
// exporta os formatos pedidos e devolve o texto do relatório.
func (uc *ReportUseCase) RunReport(ctx context.Context, args *types.CLIArgs) (string, error) {
	status := uc.console.Status("Fetching Cloudflare analytics...")
	text, results, err := uc.RunInteractiveFor(ctx, args.Accounts)
	status.Stop()
	if err != nil {
		return "", err
	}

	uc.console.Print(uc.summaryTable(results).Render())

	if args.Chart {
		for _, result := range results {
			if !result.Success() {
				continue
			}
			uc.console.DisplayZoneBars(fmt.Sprintf("Zone requests: %s", result.Account.Name), ZoneBars(*result.Report))
		}
	}

	if args.ReportName != "" && len(args.ReportType) > 0 {
		uc.exportReports(results, args)
	}

	return text, nil
}

func (uc *ReportUseCase) summaryTable(results []entity.AccountResult) types.TableInterface {
	table := uc.console.CreateTable()
	table.AddColumn("Account")
	table.AddColumn("Account ID")
	table.AddColumn("Status")
	table.AddColumn("Zones Ranked")
	table.AddColumn("Zones Skipped")
	table.AddColumn("Error")

	for _, result := range results {
		if !result.Success() {
			table.AddRow(result.Account.Name, result.Account.ID, "failed", "-", "-", result.Err.Error())
			continue
		}
		ranked := len(RankZones(result.Report.ZoneReports))
		skipped := len(result.Report.ZoneReports) - ranked
		table.AddRow(result.Account.Name, result.Account.ID, "ok", ranked, skipped, "")
	}
	return table
}

// ZoneBars converte o ranking de zonas em barras para o gráfico.
func ZoneBars(report entity.AccountReport) []types.ZoneBar {
	ranked := RankZones(report.ZoneReports)
	bars := make([]types.ZoneBar, 0, len(ranked))
	for _, zr := range ranked {
		bars = append(bars, types.ZoneBar{Zone: zr.Zone.Name, Requests: zr.Summary.Requests})
	}
	return bars
}

func (uc *ReportUseCase) exportReports(results []entity.AccountResult, args *types.CLIArgs) {
	if uc.exportRepo == nil {
		uc.console.LogWarning("Export requested but no exporter is configured")
		return
	}

	var reports []entity.AccountReport
	var texts []string
	for _, result := range results {
		if result.Success() {
			reports = append(reports, *result.Report)
			texts = append(texts, result.Text)
		}
	}

	if len(reports) == 0 {
		uc.console.LogWarning("No successful account reports to export")
		return
	}

	for _, reportType := range args.ReportType {
		var (
			path string
			err  error
		)
		switch strings.ToLower(reportType) {
		case "txt":
			path, err = uc.exportRepo.ExportToText(reports, texts, args.ReportName, args.Dir)
		case "json":
			path, err = uc.exportRepo.ExportToJSON(reports, args.ReportName, args.Dir)
		case "csv":
			path, err = uc.exportRepo.ExportToCSV(reports, args.ReportName, args.Dir)
		case "pdf":
			path, err = uc.exportRepo.ExportToPDF(reports, texts, args.ReportName, args.Dir)
		default:
			uc.console.LogWarning("Unsupported report type: %s", reportType)
			continue
		}

		if err != nil {
			uc.console.LogError("Failed to export to %s: %s", strings.ToUpper(reportType), err)
		} else {
			uc.console.LogSuccess("Successfully exported to %s: %s", strings.ToUpper(reportType), path)
		}
	}
}
