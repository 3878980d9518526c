package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/diillson/cf-analytics-report/internal/domain/entity"
	"github.com/diillson/cf-analytics-report/internal/domain/repository"
	"github.com/diillson/cf-analytics-report/internal/shared/types"
	"github.com/diillson/cf-analytics-report/pkg/metrics"
)

// Clock returns the current time; the report date is derived from it.
type Clock func() time.Time

// AnalyticsAggregator monta o AccountReport de uma conta para o dia anterior.
type AnalyticsAggregator struct {
	repo    repository.AnalyticsRepository
	console types.ConsoleInterface
	metrics *metrics.Metrics
	clock   Clock
}

// NewAnalyticsAggregator creates an aggregator. A nil clock means time.Now.
func NewAnalyticsAggregator(
	repo repository.AnalyticsRepository,
	console types.ConsoleInterface,
	m *metrics.Metrics,
	clock Clock,
) *AnalyticsAggregator {
	if clock == nil {
		clock = time.Now
	}
	return &AnalyticsAggregator{
		repo:    repo,
		console: console,
		metrics: m,
		clock:   clock,
	}
}

// Aggregate busca analytics da conta, lista as zonas e busca cada zona em sequência.
// Falhas na conta ou na listagem de zonas abortam; falha de uma zona só marca aquela zona.
func (a *AnalyticsAggregator) Aggregate(ctx context.Context, account entity.Account) (entity.AccountReport, error) {
	date := entity.NewReportDate(a.clock())

	summary, err := a.repo.GetAccountAnalytics(ctx, account.ID, date)
	if err != nil {
		return entity.AccountReport{}, fmt.Errorf("account analytics for %s: %w", account.ID, err)
	}

	zones, err := a.repo.ListZones(ctx, account.ID)
	if err != nil {
		return entity.AccountReport{}, fmt.Errorf("zones of account %s: %w", account.ID, err)
	}

	report := entity.AccountReport{
		Account:        account,
		Date:           date,
		AccountSummary: &summary,
		ZoneReports:    make([]entity.ZoneReport, 0, len(zones)),
	}

	for _, zone := range zones {
		report.ZoneReports = append(report.ZoneReports, a.fetchZone(ctx, zone, date))
	}

	return report, nil
}

func (a *AnalyticsAggregator) fetchZone(ctx context.Context, zone entity.Zone, date entity.ReportDate) entity.ZoneReport {
	summary, err := a.repo.GetZoneAnalytics(ctx, zone.ID, date)
	if err == nil {
		return entity.ZoneReport{Zone: zone, Summary: &summary, Outcome: entity.ZoneOK}
	}

	outcome := entity.ZoneFailed
	if types.IsNoData(err) {
		outcome = entity.ZoneNoData
	}

	a.console.LogWarning("Skipping zone %s (%s): %v", zone.Name, outcome, err)
	a.metrics.ZoneFailed(outcome.String())

	return entity.ZoneReport{Zone: zone, Outcome: outcome, Err: err}
}
