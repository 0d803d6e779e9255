package output

import (
	"github.com/dustin/go-humanize"
)

// FormatCurrency formats an amount as USD with thousands separators and 2 decimals.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount float64) string {
	if amount < 0 {
		return "-$" + humanize.FormatFloat("#,###.##", -amount)
	}
	return "$" + humanize.FormatFloat("#,###.##", amount)
}

// FormatPercentage formats a decimal ratio (0.0585) as a percentage (5.85%).
func FormatPercentage(ratio float64) string {
	return humanize.FormatFloat("#,###.##", ratio*100) + "%"
}

// FormatCoverage formats a coverage ratio as "0.96x", or "n/a" when undefined.
func FormatCoverage(ratio *float64) string {
	if ratio == nil {
		return "n/a"
	}
	return humanize.FormatFloat("#.##", *ratio) + "x"
}
