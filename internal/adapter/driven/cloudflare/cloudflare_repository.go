package cloudflare

import (
	"context"

	"github.com/diillson/cf-analytics-report/internal/domain/entity"
	"github.com/diillson/cf-analytics-report/internal/domain/repository"
)

// CloudflareRepositoryImpl implementa o AnalyticsRepository sobre o Client e os catálogos.
type CloudflareRepositoryImpl struct {
	client   *Client
	accounts *AccountCatalog
	zones    *ZoneCatalog
}

// NewCloudflareRepository cria uma nova implementação do AnalyticsRepository.
func NewCloudflareRepository(baseURL, token string) repository.AnalyticsRepository {
	return NewCloudflareRepositoryWithClient(NewClient(baseURL, token))
}

// NewCloudflareRepositoryWithClient wires the catalogs around an existing client.
func NewCloudflareRepositoryWithClient(client *Client) repository.AnalyticsRepository {
	return &CloudflareRepositoryImpl{
		client:   client,
		accounts: NewAccountCatalog(client),
		zones:    NewZoneCatalog(client),
	}
}

func (r *CloudflareRepositoryImpl) ListAccounts(ctx context.Context) ([]entity.Account, error) {
	return r.accounts.List(ctx)
}

func (r *CloudflareRepositoryImpl) ListZones(ctx context.Context, accountID string) ([]entity.Zone, error) {
	return r.zones.List(ctx, accountID)
}

func (r *CloudflareRepositoryImpl) GetAccountAnalytics(ctx context.Context, accountID string, date entity.ReportDate) (entity.TrafficSummary, error) {
	return r.client.QueryAccountAnalytics(ctx, accountID, date)
}

func (r *CloudflareRepositoryImpl) GetZoneAnalytics(ctx context.Context, zoneID string, date entity.ReportDate) (entity.TrafficSummary, error) {
	return r.client.QueryZoneAnalytics(ctx, zoneID, date)
}
