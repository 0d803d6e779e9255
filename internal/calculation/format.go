package calculation

import (
	"github.com/rpgo/rental-proforma/internal/domain"
	money "github.com/rpgo/rental-proforma/pkg/decimal"
)

// Format rounds raw figures into the output record. Money is rounded to
// cents and ratios to four places, both half away from zero. Undefined
// ratios become 0, except the debt service coverage ratio, which becomes
// nil when there is no debt service. Figures too large for a float64 are
// written as 0, so the record always encodes. The monthly summary divides the
// unrounded annual figures by 12 before rounding.
func Format(raw RawOutput) domain.ProFormaOutput {
	cents := func(m money.Money) float64 { return m.Round().Float64() }
	monthly := func(m money.Money) float64 { return cents(m.Monthly()) }

	var dscr *float64
	if raw.DebtServiceCoverageRatio.Defined {
		v := raw.DebtServiceCoverageRatio.Float64()
		dscr = &v
	}

	return domain.ProFormaOutput{
		Revenue: domain.RevenueSummary{
			GrossPotentialRent:   cents(raw.GrossPotentialRent),
			VacancyLoss:          cents(raw.VacancyLoss),
			EffectiveGrossIncome: cents(raw.EffectiveGrossIncome),
		},
		Expenses: domain.ExpenseSummary{
			Management:             cents(raw.Management),
			Maintenance:            cents(raw.Maintenance),
			PropertyTaxes:          cents(raw.PropertyTaxes),
			Insurance:              cents(raw.Insurance),
			Utilities:              cents(raw.Utilities),
			HOA:                    cents(raw.HOA),
			Other:                  cents(raw.Other),
			TotalOperatingExpenses: cents(raw.TotalOperatingExpenses),
		},
		CashFlow: domain.CashFlowSummary{
			NetOperatingIncome: cents(raw.NetOperatingIncome),
			AnnualDebtService:  cents(raw.AnnualDebtService),
			CashFlowBeforeTax:  cents(raw.CashFlowBeforeTax),
		},
		Metrics: domain.Metrics{
			CapRate:                  raw.CapRate.Float64(),
			CashOnCashReturn:         raw.CashOnCashReturn.Float64(),
			DebtServiceCoverageRatio: dscr,
		},
		MonthlySummary: domain.MonthlySummary{
			GrossRent:         monthly(raw.GrossPotentialRent),
			EffectiveRent:     monthly(raw.EffectiveGrossIncome),
			OperatingExpenses: monthly(raw.TotalOperatingExpenses),
			NOI:               monthly(raw.NetOperatingIncome),
			DebtService:       monthly(raw.AnnualDebtService),
			CashFlow:          monthly(raw.CashFlowBeforeTax),
		},
	}
}
