package cloudflare

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"

	"github.com/diillson/cf-analytics-report/internal/shared/types"
)

const listPageSize = "50"

// HTTPDoer is the interface for executing HTTP requests.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client fala com a API REST (listagens) e com o endpoint GraphQL de analytics.
// Cada chamada é uma única tentativa, sem retry.
type Client struct {
	baseURL    string
	httpClient HTTPDoer
}

// NewClient creates a client that attaches token as a bearer credential on every request.
func NewClient(baseURL, token string) *Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: oauth2.NewClient(context.Background(), src),
	}
}

// SetHTTPClient troca o cliente HTTP (útil para testes).
func (c *Client) SetHTTPClient(client HTTPDoer) {
	c.httpClient = client
}

// ListMemberships returns the accepted memberships of the token owner.
// An empty result is not an error here: no accounts simply yields an empty report.
func (c *Client) ListMemberships(ctx context.Context) ([]Membership, error) {
	params := url.Values{}
	params.Set("status", "accepted")
	params.Set("page", "1")
	params.Set("per_page", listPageSize)
	params.Set("order", "account.name")
	params.Set("direction", "desc")

	var memberships []Membership
	if err := c.getList(ctx, "/memberships", params, &memberships); err != nil {
		return nil, err
	}
	return memberships, nil
}

// ListZones returns the zones of accountID. An empty list is reported as *types.EmptyResultError.
func (c *Client) ListZones(ctx context.Context, accountID string) ([]ZoneRecord, error) {
	params := url.Values{}
	params.Set("account.id", accountID)
	params.Set("order", "method")
	params.Set("direction", "desc")
	params.Set("page", "1")
	params.Set("per_page", listPageSize)

	var zones []ZoneRecord
	if err := c.getList(ctx, "/zones", params, &zones); err != nil {
		return nil, err
	}
	if len(zones) == 0 {
		return nil, &types.EmptyResultError{Entity: "zones of account", ID: accountID}
	}
	return zones, nil
}

// doRequest executa uma requisição autenticada e devolve o corpo e o status HTTP.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, params url.Values, body interface{}) ([]byte, int, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	reqURL := c.baseURL + endpoint
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request to %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response body: %w", err)
	}
	return respBody, resp.StatusCode, nil
}

func (c *Client) getList(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	respBody, status, err := c.doRequest(ctx, http.MethodGet, endpoint, params, nil)
	if err != nil {
		return err
	}

	var envelope restEnvelope
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		if !isSuccess(status) {
			return &types.APIError{Status: status, Messages: []string{snippet(respBody)}}
		}
		return fmt.Errorf("failed to parse %s response: %w", endpoint, err)
	}

	if len(envelope.Errors) > 0 {
		return &types.APIError{Status: statusIfFailed(status), Messages: messages(envelope.Errors)}
	}
	if !isSuccess(status) {
		return &types.APIError{Status: status, Messages: []string{http.StatusText(status)}}
	}

	if len(envelope.Result) == 0 || string(envelope.Result) == "null" {
		return nil
	}
	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return fmt.Errorf("failed to parse %s result: %w", endpoint, err)
	}
	return nil
}

func (c *Client) query(ctx context.Context, query string, variables map[string]string) (*graphQLResponse, error) {
	respBody, status, err := c.doRequest(ctx, http.MethodPost, "/graphql", nil, graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, err
	}

	var resp graphQLResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		if !isSuccess(status) {
			return nil, &types.APIError{Status: status, Messages: []string{snippet(respBody)}}
		}
		return nil, fmt.Errorf("failed to parse graphql response: %w", err)
	}

	if len(resp.Errors) > 0 {
		msgs := make([]string, 0, len(resp.Errors))
		for _, e := range resp.Errors {
			msgs = append(msgs, e.Message)
		}
		return nil, &types.GraphQLError{Messages: msgs}
	}
	if !isSuccess(status) {
		return nil, &types.APIError{Status: status, Messages: []string{http.StatusText(status)}}
	}
	return &resp, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

func statusIfFailed(status int) int {
	if isSuccess(status) {
		return 0
	}
	return status
}

func messages(list []apiMessage) []string {
	out := make([]string, 0, len(list))
	for _, m := range list {
		if m.Code != 0 {
			out = append(out, fmt.Sprintf("%d: %s", m.Code, m.Message))
			continue
		}
		out = append(out, m.Message)
	}
	return out
}

func snippet(body []byte) string {
	const max = 200
	s := strings.TrimSpace(string(body))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
