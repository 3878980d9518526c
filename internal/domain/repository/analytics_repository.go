package repository

import (
	"context"

	"github.com/diillson/cf-analytics-report/internal/domain/entity"
)

// AnalyticsRepository defines the interface for Cloudflare catalog and analytics lookups.
type AnalyticsRepository interface {
	// Catalog Operations
	ListAccounts(ctx context.Context) ([]entity.Account, error)
	ListZones(ctx context.Context, accountID string) ([]entity.Zone, error)

	// Analytics Operations
	GetAccountAnalytics(ctx context.Context, accountID string, date entity.ReportDate) (entity.TrafficSummary, error)
	GetZoneAnalytics(ctx context.Context, zoneID string, date entity.ReportDate) (entity.TrafficSummary, error)
}
