package types

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingAPIToken         = errors.New("missing Cloudflare API token (set api.token or CF_API_TOKEN)")
	ErrMissingScheduledAccount = errors.New("missing scheduled account (set scheduled.account_id or CF_ACCOUNT_ID)")
	ErrMissingEmailConfig      = errors.New("incomplete email configuration: sender address and recipient are required")
	ErrNoMatchingAccounts      = errors.New("none of the requested accounts is accessible with this token")

	// ErrMalformedSummary indica um grupo de analytics presente cuja soma não traz requests/bytes válidos.
	ErrMalformedSummary = errors.New("malformed analytics summary")
)

// APIError is returned when a REST listing call reports a non-empty error list
// or an unexpected HTTP status.
type APIError struct {
	Status   int
	Messages []string
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("API Error (status %d): %s", e.Status, strings.Join(e.Messages, "; "))
	}
	return fmt.Sprintf("API Error: %s", strings.Join(e.Messages, "; "))
}

// GraphQLError is returned when the analytics endpoint answers with a top-level error list.
type GraphQLError struct {
	Messages []string
}

func (e *GraphQLError) Error() string {
	return fmt.Sprintf("GraphQL Error: %s", strings.Join(e.Messages, "; "))
}

// EmptyResultError sinaliza que o grupo de dados esperado não existe
// (conta sem zonas, ou nenhum dado coletado para a data).
type EmptyResultError struct {
	Entity string
	ID     string
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("empty result for %s %s", e.Entity, e.ID)
}

// DeliveryError wraps a mail send failure.
type DeliveryError struct {
	Err error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("failed to send email: %v", e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// IsNoData reports whether err means "no data for this entity" rather than a failure.
func IsNoData(err error) bool {
	var empty *EmptyResultError
	return errors.As(err, &empty) || errors.Is(err, ErrMalformedSummary)
}
