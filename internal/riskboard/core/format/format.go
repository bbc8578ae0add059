// Package format turns raw scoring-service values into display strings.
//
// Numbers are always grouped the en-US way ("1,234,567"), matching the
// dashboard's currency and mileage columns. Dates follow a configurable locale.
package format

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/autopeer-io/riskboard/internal/riskboard/core/model"
)

// CSS classes of the risk badge.
const (
	BadgeHigh   = "risk-badge risk-high"
	BadgeMedium = "risk-badge risk-medium"
	BadgeLow    = "risk-badge risk-low"
)

var numbers = message.NewPrinter(language.AmericanEnglish)

// RiskBadgeClass maps a bucket to its badge class. Unknown buckets render as low risk.
func RiskBadgeClass(bucket model.RiskBucket) string {
	switch bucket {
	case model.RiskBucketHigh:
		return BadgeHigh
	case model.RiskBucketMedium:
		return BadgeMedium
	default:
		return BadgeLow
	}
}

// RiskPercent renders a score in [0, 1] as a whole percentage, rounding half up.
func RiskPercent(score float64) string {
	return strconv.FormatInt(roundHalfUp(score*100), 10) + "%"
}

// FormatCurrency rounds to the nearest dollar (halves away from zero) and
// groups thousands: 1234.6 -> "$1,235".
func FormatCurrency(v float64) string {
	return "$" + FormatInt(int64(math.Round(v)))
}

// FormatInt groups thousands: 1234567 -> "1,234,567".
func FormatInt(n int64) string {
	return numbers.Sprintf("%d", n)
}

// FormatMileage renders an odometer reading: 48210 -> "48,210 mi".
func FormatMileage(miles int64) string {
	return FormatInt(miles) + " mi"
}

// FormatDecimal renders v with a fixed number of decimals.
func FormatDecimal(v float64, places int) string {
	return strconv.FormatFloat(v, 'f', places, 64)
}

// FormatAUC renders a model's AUC with three decimals.
func FormatAUC(auc float64) string {
	return fmt.Sprintf("%.3f", auc)
}

func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}
