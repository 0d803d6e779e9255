package output

import (
	"fmt"

	"github.com/rpgo/rental-proforma/internal/domain"
)

// MinimumCoverage is the debt service coverage most lenders require.
const MinimumCoverage = 1.25

// Assessment flags how a pro forma reads against common underwriting checks.
type Assessment struct {
	CashFlowPositive bool
	Leveraged        bool
	// MeetsCoverage is true when DSCR >= MinimumCoverage or there is no debt.
	MeetsCoverage bool
	Notes         []string
}

// AnalyzeProForma derives the assessment from computed figures only.
// Extracted from the formatters for testability.
func AnalyzeProForma(out *domain.ProFormaOutput) Assessment {
	a := Assessment{
		CashFlowPositive: out.CashFlow.CashFlowBeforeTax >= 0,
		Leveraged:        out.Metrics.DebtServiceCoverageRatio != nil,
		MeetsCoverage:    true,
	}
	if !a.CashFlowPositive {
		a.Notes = append(a.Notes, fmt.Sprintf("Negative cash flow before tax of %s per year", FormatCurrency(-out.CashFlow.CashFlowBeforeTax)))
	}
	if dscr := out.Metrics.DebtServiceCoverageRatio; dscr != nil && *dscr < MinimumCoverage {
		a.MeetsCoverage = false
		a.Notes = append(a.Notes, fmt.Sprintf("Debt service coverage %s is below the %.2fx lender minimum", FormatCoverage(dscr), MinimumCoverage))
	}
	if !a.Leveraged {
		a.Notes = append(a.Notes, "No debt service: purchase is all cash")
	}
	return a
}

// Summary is a one-line verdict.
func (a Assessment) Summary() string {
	switch {
	case a.CashFlowPositive && a.MeetsCoverage:
		return "cash flow positive"
	case a.CashFlowPositive:
		return "cash flow positive, thin coverage"
	default:
		return "cash flow negative"
	}
}
