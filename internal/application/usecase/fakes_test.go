package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/diillson/cf-analytics-report/internal/domain/entity"
	"github.com/diillson/cf-analytics-report/internal/shared/types"
)

var fixedNow = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// fakeAnalyticsRepo é um AnalyticsRepository em memória que registra a ordem das chamadas.
type fakeAnalyticsRepo struct {
	mu sync.Mutex

	accounts       []entity.Account
	listErr        error
	accountSummary map[string]entity.TrafficSummary
	accountErr     map[string]error
	zones          map[string][]entity.Zone
	zonesErr       map[string]error
	zoneSummary    map[string]entity.TrafficSummary
	zoneErr        map[string]error
	calls          []string
	queriedDates   []string
}

func newFakeRepo() *fakeAnalyticsRepo {
	return &fakeAnalyticsRepo{
		accountSummary: map[string]entity.TrafficSummary{},
		accountErr:     map[string]error{},
		zones:          map[string][]entity.Zone{},
		zonesErr:       map[string]error{},
		zoneSummary:    map[string]entity.TrafficSummary{},
		zoneErr:        map[string]error{},
	}
}

func (f *fakeAnalyticsRepo) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeAnalyticsRepo) ListAccounts(_ context.Context) ([]entity.Account, error) {
	f.record("accounts")
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.accounts, nil
}

func (f *fakeAnalyticsRepo) ListZones(_ context.Context, accountID string) ([]entity.Zone, error) {
	f.record("zones:" + accountID)
	if err := f.zonesErr[accountID]; err != nil {
		return nil, err
	}
	zones := f.zones[accountID]
	if len(zones) == 0 {
		return nil, &types.EmptyResultError{Entity: "zones of account", ID: accountID}
	}
	return zones, nil
}

func (f *fakeAnalyticsRepo) GetAccountAnalytics(_ context.Context, accountID string, date entity.ReportDate) (entity.TrafficSummary, error) {
	f.record("account:" + accountID)
	f.mu.Lock()
	f.queriedDates = append(f.queriedDates, date.QueryString())
	f.mu.Unlock()
	if err := f.accountErr[accountID]; err != nil {
		return entity.TrafficSummary{}, err
	}
	return f.accountSummary[accountID], nil
}

func (f *fakeAnalyticsRepo) GetZoneAnalytics(_ context.Context, zoneID string, date entity.ReportDate) (entity.TrafficSummary, error) {
	f.record("zone:" + zoneID)
	f.mu.Lock()
	f.queriedDates = append(f.queriedDates, date.QueryString())
	f.mu.Unlock()
	if err := f.zoneErr[zoneID]; err != nil {
		return entity.TrafficSummary{}, err
	}
	return f.zoneSummary[zoneID], nil
}

type fakeMailRepo struct {
	sent []entity.EmailMessage
	err  error
}

func (f *fakeMailRepo) Send(_ context.Context, msg entity.EmailMessage) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fakeExportRepo struct {
	calls   []string
	reports int
	texts   []string
}

func (f *fakeExportRepo) ExportToText(reports []entity.AccountReport, texts []string, filename, outputDir string) (string, error) {
	f.calls = append(f.calls, "txt")
	f.reports = len(reports)
	f.texts = texts
	return outputDir + "/" + filename + ".txt", nil
}

func (f *fakeExportRepo) ExportToJSON(reports []entity.AccountReport, filename, outputDir string) (string, error) {
	f.calls = append(f.calls, "json")
	f.reports = len(reports)
	return outputDir + "/" + filename + ".json", nil
}

func (f *fakeExportRepo) ExportToCSV(reports []entity.AccountReport, filename, outputDir string) (string, error) {
	f.calls = append(f.calls, "csv")
	f.reports = len(reports)
	return outputDir + "/" + filename + ".csv", nil
}

func (f *fakeExportRepo) ExportToPDF(reports []entity.AccountReport, texts []string, filename, outputDir string) (string, error) {
	f.calls = append(f.calls, "pdf")
	f.reports = len(reports)
	f.texts = texts
	return outputDir + "/" + filename + ".pdf", nil
}
