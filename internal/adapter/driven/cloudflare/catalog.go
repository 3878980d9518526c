package cloudflare

import (
	"context"

	"github.com/diillson/cf-analytics-report/internal/domain/entity"
)

// AccountCatalog enumerates the accounts reachable by the API token.
// Every call re-fetches; nothing is cached.
type AccountCatalog struct {
	client *Client
}

func NewAccountCatalog(client *Client) *AccountCatalog {
	return &AccountCatalog{client: client}
}

// List maps memberships to accounts using the nested account identity.
func (c *AccountCatalog) List(ctx context.Context) ([]entity.Account, error) {
	memberships, err := c.client.ListMemberships(ctx)
	if err != nil {
		return nil, err
	}

	accounts := make([]entity.Account, 0, len(memberships))
	for _, m := range memberships {
		accounts = append(accounts, entity.Account{ID: m.Account.ID, Name: m.Account.Name})
	}
	return accounts, nil
}

// ZoneCatalog enumerates the zones of one account.
type ZoneCatalog struct {
	client *Client
}

func NewZoneCatalog(client *Client) *ZoneCatalog {
	return &ZoneCatalog{client: client}
}

func (c *ZoneCatalog) List(ctx context.Context, accountID string) ([]entity.Zone, error) {
	records, err := c.client.ListZones(ctx, accountID)
	if err != nil {
		return nil, err
	}

	zones := make([]entity.Zone, 0, len(records))
	for _, r := range records {
		zones = append(zones, entity.Zone{ID: r.ID, Name: r.Name})
	}
	return zones, nil
}
