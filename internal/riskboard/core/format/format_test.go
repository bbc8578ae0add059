package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/autopeer-io/riskboard/internal/riskboard/core/model"
)

func TestRiskBadgeClass(t *testing.T) {
	tests := []struct {
		bucket model.RiskBucket
		want   string
	}{
		{model.RiskBucketHigh, BadgeHigh},
		{model.RiskBucketMedium, BadgeMedium},
		{model.RiskBucketLow, BadgeLow},
		{"", BadgeLow},
		{"high", BadgeLow},
		{"Critical", BadgeLow},
	}

	for _, tt := range tests {
		t.Run(string(tt.bucket), func(t *testing.T) {
			assert.Equal(t, tt.want, RiskBadgeClass(tt.bucket))
		})
	}

	assert.Len(t, map[string]struct{}{BadgeHigh: {}, BadgeMedium: {}, BadgeLow: {}}, 3)
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{999, "$999"},
		{1000, "$1,000"},
		{1234567, "$1,234,567"},
		{1234.6, "$1,235"},
		{1500.5, "$1,501"},
		{1500.4, "$1,500"},
		{999.5, "$1,000"},
		{42.49, "$42"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCurrency(tt.in), "FormatCurrency(%v)", tt.in)
	}
}

func TestRiskPercent(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0, "0%"},
		{1, "100%"},
		{0.734, "73%"},
		{0.125, "13%"},
		{0.375, "38%"},
		{0.0049, "0%"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RiskPercent(tt.score), "RiskPercent(%v)", tt.score)
	}
}

func TestNumbers(t *testing.T) {
	assert.Equal(t, "48,210 mi", FormatMileage(48210))
	assert.Equal(t, "512 mi", FormatMileage(512))
	assert.Equal(t, "12.0", FormatDecimal(12, 1))
	assert.Equal(t, "1.35", FormatDecimal(1.349, 2))
	assert.Equal(t, "0.812", FormatAUC(0.8123))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "-", FormatDate(""))
	assert.Equal(t, "not-a-date", FormatDate("not-a-date"))
	assert.Equal(t, "5/1/2023", FormatDate("2023-05-01"))
	assert.NotEqual(t, "2023-05-01", FormatDate("2023-05-01"))
	assert.Equal(t, "12/31/2022", FormatDate("2022-12-31T23:30:00Z"))
}

func TestDateFormatterLocales(t *testing.T) {
	tests := []struct {
		locale string
		want   string
	}{
		{"en-US", "5/1/2023"},
		{"en-GB", "01/05/2023"},
		{"de-DE", "1.5.2023"},
		{"ja-JP", "2023/5/1"},
		{"", "5/1/2023"},
		{"zz-invalid", "5/1/2023"},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			f := NewDateFormatter(tt.locale, time.UTC)
			assert.Equal(t, tt.want, f.Format("2023-05-01"))
		})
	}
}

func TestDateFormatterTimezone(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	f := NewDateFormatter("en-US", tokyo)

	// Timestamps move to the target zone, calendar dates do not.
	assert.Equal(t, "1/1/2023", f.Format("2022-12-31T20:00:00Z"))
	assert.Equal(t, "12/31/2022", f.Format("2022-12-31"))
}
