package cloudflare

import "encoding/json"

// restEnvelope is the standard v4 REST response wrapper.
type restEnvelope struct {
	Success  bool            `json:"success"`
	Errors   []apiMessage    `json:"errors"`
	Messages []apiMessage    `json:"messages"`
	Result   json.RawMessage `json:"result"`
}

type apiMessage struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Membership é um registro de /memberships; a identidade da conta vem aninhada.
type Membership struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Account struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"account"`
}

// ZoneRecord is one record of /zones.
type ZoneRecord struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

type graphQLRequest struct {
	Query     string            `json:"query"`
	Variables map[string]string `json:"variables"`
}

type graphQLResponse struct {
	Data *struct {
		Viewer struct {
			Accounts []analyticsScope `json:"accounts"`
			Zones    []analyticsScope `json:"zones"`
		} `json:"viewer"`
	} `json:"data"`
	Errors []graphQLMessage `json:"errors"`
}

type graphQLMessage struct {
	Message string   `json:"message"`
	Path    []string `json:"path,omitempty"`
}

type analyticsScope struct {
	Groups []adaptiveGroup `json:"httpRequestsOverviewAdaptiveGroups"`
}

type adaptiveGroup struct {
	Sum *rawSum `json:"sum"`
}

// rawSum usa ponteiros para distinguir campo ausente/nulo de zero.
type rawSum struct {
	Requests       *uint64 `json:"requests"`
	Bytes          *uint64 `json:"bytes"`
	CachedRequests *uint64 `json:"cachedRequests"`
	CachedBytes    *uint64 `json:"cachedBytes"`
}

const accountAnalyticsQuery = `
query GetAnalytics($accountTag: String!, $date: String!) {
  viewer {
    accounts(filter: { accountTag: $accountTag }) {
      httpRequestsOverviewAdaptiveGroups(limit: 1, filter: { date: $date }) {
        sum {
          requests
          bytes
          cachedRequests
          cachedBytes
        }
      }
    }
  }
}`

const zoneAnalyticsQuery = `
query GetAnalytics($zoneTag: String!, $date: String!) {
  viewer {
    zones(filter: { zoneTag: $zoneTag }) {
      httpRequestsOverviewAdaptiveGroups(limit: 1, filter: { date: $date }) {
        sum {
          requests
          bytes
          cachedRequests
          cachedBytes
        }
      }
    }
  }
}`
