package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/cf-analytics-report/internal/domain/entity"
)

func summary(requests, bytes, cachedRequests, cachedBytes uint64) *entity.TrafficSummary {
	return &entity.TrafficSummary{Requests: requests, Bytes: bytes, CachedRequests: cachedRequests, CachedBytes: cachedBytes}
}

func TestFormatFullReport(t *testing.T) {
	report := entity.AccountReport{
		Account:        entity.Account{ID: "acc-1", Name: "Acme"},
		Date:           entity.NewReportDate(fixedNow),
		AccountSummary: summary(1234567, 1073741824, 234567, 536870912),
		ZoneReports: []entity.ZoneReport{
			{Zone: entity.Zone{ID: "z-a", Name: "alpha.com"}, Summary: summary(500, 1536, 0, 0)},
			{Zone: entity.Zone{ID: "z-b", Name: "beta.com"}, Summary: summary(1000, 2048, 0, 0)},
			{Zone: entity.Zone{ID: "z-c", Name: "broken.com"}, Outcome: entity.ZoneFailed},
			{Zone: entity.Zone{ID: "z-d", Name: "gamma.com"}, Summary: summary(500, 0, 0, 0)},
		},
	}

	expected := "\n" +
		"CLOUDFLARE ANALYTICS FOR Acme\n" +
		"========================================\n" +
		"Generated for: Thursday, March 14, 2024\n" +
		"\n" +
		"TRAFFIC\n" +
		"-------\n" +
		"    Total Requests: 1,234,567\n" +
		"    Cached Requests: 234,567\n" +
		"    Cache Rate: 19.0%\n" +
		"\n" +
		"BANDWIDTH\n" +
		"---------\n" +
		"    Total Bandwidth: 1 GB\n" +
		"    Cached Bandwidth: 512 MB\n" +
		"    Cache Rate: 50.0%\n" +
		"\n" +
		"ZONES ANALYTICS\n" +
		"------------\n" +
		"  beta.com: 1000 requests / 2 KB\n" +
		"  alpha.com: 500 requests / 1.5 KB\n" +
		"  gamma.com: 500 requests / 0 Bytes\n"

	assert.Equal(t, expected, NewReportFormatter().Format(report))
}

func TestFormatAbsentSummaryAndNoZones(t *testing.T) {
	report := entity.AccountReport{
		Account: entity.Account{ID: "acc-1", Name: "Empty"},
		Date:    entity.NewReportDate(fixedNow),
	}

	text := NewReportFormatter().Format(report)

	assert.Contains(t, text, "    Total Requests: 0\n")
	assert.Contains(t, text, "    Cached Requests: 0\n")
	assert.Contains(t, text, "    Total Bandwidth: 0 Bytes\n")
	assert.Contains(t, text, "    Cache Rate: 0.0%\n")
	assert.NotContains(t, text, "NaN")
	assert.True(t, len(text) > 0 && text[len(text)-1] == '\n')
	assert.Contains(t, text, "ZONES ANALYTICS\n------------\n\n")
}

func TestFormatDoesNotMutateInput(t *testing.T) {
	zones := []entity.ZoneReport{
		{Zone: entity.Zone{ID: "1", Name: "small.com"}, Summary: summary(1, 1, 0, 0)},
		{Zone: entity.Zone{ID: "2", Name: "big.com"}, Summary: summary(100, 1, 0, 0)},
	}
	report := entity.AccountReport{Account: entity.Account{Name: "A"}, ZoneReports: zones}

	f := NewReportFormatter()
	first := f.Format(report)
	second := f.Format(report)

	assert.Equal(t, first, second)
	assert.Equal(t, "small.com", report.ZoneReports[0].Zone.Name)
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes    uint64
		expected string
	}{
		{0, "0 Bytes"},
		{1, "1 Bytes"},
		{1000, "1000 Bytes"},
		{1023, "1023 Bytes"},
		{1024, "1 KB"},
		{1126, "1.1 KB"},
		{1500, "1.46 KB"},
		{1536, "1.5 KB"},
		{1048576, "1 MB"},
		{1610612736, "1.5 GB"},
		{1099511627776, "1 TB"},
		{1125899906842624, "1024 TB"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatBytes(tt.bytes))
		})
	}
}

func TestCacheRate(t *testing.T) {
	assert.Equal(t, "0.0", CacheRate(0, 0))
	assert.Equal(t, "0.0", CacheRate(5, 0))
	assert.Equal(t, "25.0", CacheRate(25, 100))
	assert.Equal(t, "33.3", CacheRate(1, 3))
	assert.Equal(t, "66.7", CacheRate(2, 3))
	assert.Equal(t, "100.0", CacheRate(7, 7))
}

func TestRankZones(t *testing.T) {
	zones := []entity.ZoneReport{
		{Zone: entity.Zone{ID: "3", Name: "b.com"}, Summary: summary(10, 0, 0, 0)},
		{Zone: entity.Zone{ID: "1", Name: "nodata.com"}, Outcome: entity.ZoneNoData},
		{Zone: entity.Zone{ID: "2", Name: "a.com"}, Summary: summary(10, 0, 0, 0)},
		{Zone: entity.Zone{ID: "5", Name: "top.com"}, Summary: summary(99, 0, 0, 0)},
		{Zone: entity.Zone{ID: "4", Name: "a.com"}, Summary: summary(10, 0, 0, 0)},
		{Zone: entity.Zone{ID: "6", Name: "zero.com"}, Summary: summary(0, 0, 0, 0)},
	}

	ranked := RankZones(zones)
	require.Len(t, ranked, 5)

	var ids []string
	for _, zr := range ranked {
		ids = append(ids, zr.Zone.ID)
	}
	assert.Equal(t, []string{"5", "2", "4", "3", "6"}, ids)

	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Summary.Requests, ranked[i].Summary.Requests)
	}
}

func TestZoneBars(t *testing.T) {
	report := entity.AccountReport{ZoneReports: []entity.ZoneReport{
		{Zone: entity.Zone{ID: "1", Name: "a.com"}, Summary: summary(1, 0, 0, 0)},
		{Zone: entity.Zone{ID: "2", Name: "b.com"}, Summary: summary(5, 0, 0, 0)},
		{Zone: entity.Zone{ID: "3", Name: "c.com"}, Outcome: entity.ZoneFailed},
	}}

	bars := ZoneBars(report)
	require.Len(t, bars, 2)
	assert.Equal(t, "b.com", bars[0].Zone)
	assert.Equal(t, uint64(5), bars[0].Requests)
}
