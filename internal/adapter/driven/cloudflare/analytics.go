package cloudflare

import (
	"context"
	"fmt"

	"github.com/diillson/cf-analytics-report/internal/domain/entity"
	"github.com/diillson/cf-analytics-report/internal/shared/types"
)

// QueryAccountAnalytics fetches the account-level traffic sums for date.
func (c *Client) QueryAccountAnalytics(ctx context.Context, accountID string, date entity.ReportDate) (entity.TrafficSummary, error) {
	resp, err := c.query(ctx, accountAnalyticsQuery, map[string]string{
		"accountTag": accountID,
		"date":       date.QueryString(),
	})
	if err != nil {
		return entity.TrafficSummary{}, err
	}

	var scopes []analyticsScope
	if resp.Data != nil {
		scopes = resp.Data.Viewer.Accounts
	}
	return firstSummary(scopes, "account", accountID)
}

// QueryZoneAnalytics fetches the zone-level traffic sums for date.
func (c *Client) QueryZoneAnalytics(ctx context.Context, zoneID string, date entity.ReportDate) (entity.TrafficSummary, error) {
	resp, err := c.query(ctx, zoneAnalyticsQuery, map[string]string{
		"zoneTag": zoneID,
		"date":    date.QueryString(),
	})
	if err != nil {
		return entity.TrafficSummary{}, err
	}

	var scopes []analyticsScope
	if resp.Data != nil {
		scopes = resp.Data.Viewer.Zones
	}
	return firstSummary(scopes, "zone", zoneID)
}

// firstSummary distingue "sem dados" (grupo ausente) de "tráfego zero" (grupo com somas zeradas).
func firstSummary(scopes []analyticsScope, kind, id string) (entity.TrafficSummary, error) {
	if len(scopes) == 0 || len(scopes[0].Groups) == 0 {
		return entity.TrafficSummary{}, &types.EmptyResultError{Entity: kind + " analytics", ID: id}
	}

	sum := scopes[0].Groups[0].Sum
	if sum == nil || sum.Requests == nil || sum.Bytes == nil {
		return entity.TrafficSummary{}, fmt.Errorf("%s %s: %w", kind, id, types.ErrMalformedSummary)
	}

	return entity.TrafficSummary{
		Requests:       *sum.Requests,
		Bytes:          *sum.Bytes,
		CachedRequests: valueOrZero(sum.CachedRequests),
		CachedBytes:    valueOrZero(sum.CachedBytes),
	}, nil
}

func valueOrZero(v *uint64) uint64 {
	if v == nil {
		return 0
	}
	return *v
}
