package output

import (
	"fmt"

	"github.com/rpgo/rental-proforma/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultAssumptions lists modeling assumptions rendered when the input is not at hand.
var DefaultAssumptions = []string{
	"Figures are a stabilized first year, before income taxes",
	"Vacancy applies to gross potential rent",
	"A percentage management fee applies to effective gross income",
	"Debt service is a fixed-rate loan amortized monthly",
	"Capital expenditures and reserves are not modeled",
}

// GenerateAssumptions creates the assumptions list from the actual input values.
func GenerateAssumptions(in domain.ProFormaInput) []string {
	var fee string
	switch e := in.Expenses; {
	case e.UsesPercentFee():
		fee = fmt.Sprintf("Management fee: %s%% of effective gross income", percent(*e.ManagementFeePercent))
	case e.ManagementFeeFixed != nil:
		fee = fmt.Sprintf("Management fee: %s fixed per year", FormatCurrency(e.ManagementFeeFixed.InexactFloat64()))
	}
	loan := "Financing: all cash, no debt service"
	if in.Financing.LoanAmount().IsPositive() {
		loan = fmt.Sprintf("Financing: %s loan at %s%% fixed over %d years, monthly payments",
			FormatCurrency(in.Financing.LoanAmount().InexactFloat64()), percent(in.Financing.InterestRate), in.Financing.LoanTermYears)
	}
	out := []string{fmt.Sprintf("Occupancy: %s%% of %d units", percent(in.Property.OccupancyRate), in.Property.Units)}
	if fee != "" {
		out = append(out, fee)
	}
	return append(out, loan,
		"Figures are a stabilized first year, before income taxes",
		"Capital expenditures and reserves are not modeled",
	)
}

var decimalHundred = decimal.NewFromInt(100)

func percent(rate decimal.Decimal) string {
	return rate.Mul(decimalHundred).StringFixed(2)
}
