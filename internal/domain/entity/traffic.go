package entity

import "time"

// TrafficSummary holds the request and byte counters for one calendar day.
// Cached values are expected to be <= their totals; the upstream API guarantees it,
// nothing here enforces it.
type TrafficSummary struct {
	Requests       uint64 `json:"requests"`
	Bytes          uint64 `json:"bytes"`
	CachedRequests uint64 `json:"cached_requests"`
	CachedBytes    uint64 `json:"cached_bytes"`
}

// RequestCacheRate returns the share of cached requests as a percentage (0 when there were no requests).
func (s TrafficSummary) RequestCacheRate() float64 {
	return percentage(s.CachedRequests, s.Requests)
}

// BandwidthCacheRate returns the share of cached bytes as a percentage (0 when no bytes were served).
func (s TrafficSummary) BandwidthCacheRate() float64 {
	return percentage(s.CachedBytes, s.Bytes)
}

func percentage(part, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// ReportDate é o dia de referência do relatório (sempre o dia anterior à execução).
type ReportDate struct {
	Day time.Time
}

// NewReportDate returns the calendar day immediately preceding now, in now's location.
func NewReportDate(now time.Time) ReportDate {
	y, m, d := now.Date()
	return ReportDate{Day: time.Date(y, m, d-1, 0, 0, 0, 0, now.Location())}
}

// QueryString formata a data como exigido pela API GraphQL (YYYY-MM-DD).
func (d ReportDate) QueryString() string {
	return d.Day.Format("2006-01-02")
}

// Display formats the date like "Monday, January 2, 2006".
func (d ReportDate) Display() string {
	return d.Day.Format("Monday, January 2, 2006")
}

// ZoneOutcome classifica o resultado da busca de analytics de uma zona.
type ZoneOutcome int

const (
	ZoneOK ZoneOutcome = iota
	// ZoneNoData: a API respondeu, mas sem grupo de dados (ou com soma malformada) para a data.
	ZoneNoData
	// ZoneFailed: erro de transporte, de API ou GraphQL.
	ZoneFailed
)

func (o ZoneOutcome) String() string {
	switch o {
	case ZoneOK:
		return "ok"
	case ZoneNoData:
		return "no_data"
	case ZoneFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ZoneReport pairs a zone with the outcome of its analytics fetch.
// Summary is nil whenever Outcome is not ZoneOK.
type ZoneReport struct {
	Zone    Zone            `json:"zone"`
	Summary *TrafficSummary `json:"summary,omitempty"`
	Outcome ZoneOutcome     `json:"-"`
	Err     error           `json:"-"`
}

// AccountReport é o resultado agregado de uma conta para a data do relatório.
type AccountReport struct {
	Account        Account         `json:"account"`
	Date           ReportDate      `json:"-"`
	AccountSummary *TrafficSummary `json:"account_summary,omitempty"`
	ZoneReports    []ZoneReport    `json:"zone_reports"`
}

// AccountResult is the (account, outcome) pair produced by an interactive run.
type AccountResult struct {
	Account Account
	Report  *AccountReport
	Text    string
	Err     error
}

// Success reports whether the account produced a report.
func (r AccountResult) Success() bool {
	return r.Err == nil && r.Report != nil
}
